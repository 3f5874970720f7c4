package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BartekS5/csvmap/pkg/models"
	"github.com/BartekS5/csvmap/pkg/utils"
)

// TransformFactory builds a transform from the optional argument written after
// the colon in a document, e.g. "2" for "zero_pad:2".
type TransformFactory func(arg string) (models.TransformFunc, error)

// TestFactory builds a predicate from its optional argument.
type TestFactory func(arg string) (models.TestFunc, error)

// Functions resolves the function names used by mapping documents.
type Functions struct {
	transforms map[string]TransformFactory
	tests      map[string]TestFactory
}

// DefaultFunctions returns a registry holding the built-in functions.
func DefaultFunctions() *Functions {
	f := &Functions{
		transforms: make(map[string]TransformFactory),
		tests:      make(map[string]TestFactory),
	}

	f.RegisterTransform("zero_pad", func(arg string) (models.TransformFunc, error) {
		width := 2
		if arg != "" {
			w, err := strconv.Atoi(arg)
			if err != nil || w <= 0 {
				return nil, fmt.Errorf("invalid width %q", arg)
			}
			width = w
		}
		return func(raw string) any { return utils.ZeroPad(raw, width) }, nil
	})
	f.RegisterTransform("float", noArgTransform(func(raw string) any { return utils.ConvertToFloat(raw) }))
	f.RegisterTransform("int", noArgTransform(func(raw string) any { return utils.ConvertToInt(raw) }))
	f.RegisterTransform("trim", noArgTransform(func(raw string) any { return strings.TrimSpace(raw) }))
	f.RegisterTransform("upper", noArgTransform(func(raw string) any { return strings.ToUpper(raw) }))
	f.RegisterTransform("lower", noArgTransform(func(raw string) any { return strings.ToLower(raw) }))
	f.RegisterTransform("date", func(layout string) (models.TransformFunc, error) {
		return func(raw string) any {
			t, err := utils.ConvertDateTime(raw, layout)
			if err != nil {
				return nil
			}
			return t
		}, nil
	})

	f.RegisterTest("numeric", noArgTest(utils.IsNumeric))
	f.RegisterTest("integer", noArgTest(utils.IsInteger))
	f.RegisterTest("not_empty", noArgTest(func(raw string) bool { return strings.TrimSpace(raw) != "" }))
	f.RegisterTest("date", func(layout string) (models.TestFunc, error) {
		return func(raw string) bool {
			_, err := utils.ConvertDateTime(raw, layout)
			return err == nil
		}, nil
	})

	return f
}

func noArgTransform(fn models.TransformFunc) TransformFactory {
	return func(arg string) (models.TransformFunc, error) {
		if arg != "" {
			return nil, fmt.Errorf("unexpected argument %q", arg)
		}
		return fn, nil
	}
}

func noArgTest(fn models.TestFunc) TestFactory {
	return func(arg string) (models.TestFunc, error) {
		if arg != "" {
			return nil, fmt.Errorf("unexpected argument %q", arg)
		}
		return fn, nil
	}
}

// RegisterTransform adds or replaces a named transform.
func (f *Functions) RegisterTransform(name string, factory TransformFactory) {
	f.transforms[name] = factory
}

// RegisterTest adds or replaces a named predicate.
func (f *Functions) RegisterTest(name string, factory TestFactory) {
	f.tests[name] = factory
}

// Transform resolves a reference such as "zero_pad:2".
func (f *Functions) Transform(ref string) (models.TransformFunc, error) {
	name, arg := splitRef(ref)
	factory, ok := f.transforms[name]
	if !ok {
		return nil, fmt.Errorf("unknown transform %q", name)
	}
	fn, err := factory(arg)
	if err != nil {
		return nil, fmt.Errorf("transform %q: %w", name, err)
	}
	return fn, nil
}

// Test resolves a predicate reference such as "numeric".
func (f *Functions) Test(ref string) (models.TestFunc, error) {
	name, arg := splitRef(ref)
	factory, ok := f.tests[name]
	if !ok {
		return nil, fmt.Errorf("unknown test %q", name)
	}
	fn, err := factory(arg)
	if err != nil {
		return nil, fmt.Errorf("test %q: %w", name, err)
	}
	return fn, nil
}

func splitRef(ref string) (name, arg string) {
	name, arg, _ = strings.Cut(strings.TrimSpace(ref), ":")
	return name, arg
}
