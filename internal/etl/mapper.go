package etl

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BartekS5/csvmap/internal/config"
	"github.com/BartekS5/csvmap/pkg/models"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Mapper reads a delimited file and maps each row to a Record.
// Each Mapper owns its settings, mapping and reporter; Run holds no state
// between calls.
type Mapper struct {
	settings config.SettingsProvider
	mapping  config.MappingProvider
	reporter ErrorReporter
	fs       afero.Fs
	strict   bool
	log      *zap.Logger
}

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

// WithFs reads the source through fs instead of the OS filesystem.
func WithFs(fs afero.Fs) MapperOption {
	return func(m *Mapper) {
		m.fs = fs
	}
}

// WithStrictValidation makes a failed field test abort the run.
func WithStrictValidation() MapperOption {
	return func(m *Mapper) {
		m.strict = true
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(log *zap.Logger) MapperOption {
	return func(m *Mapper) {
		m.log = log
	}
}

// NewMapper returns a Mapper. A nil mapping maps nothing and a nil reporter
// discards violations.
func NewMapper(settings config.SettingsProvider, mapping config.MappingProvider, reporter ErrorReporter, opts ...MapperOption) *Mapper {
	if mapping == nil {
		mapping = config.NewMapping()
	}
	if reporter == nil {
		reporter = NopReporter{}
	}
	m := &Mapper{
		settings: settings,
		mapping:  mapping,
		reporter: reporter,
		fs:       afero.NewOsFs(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// sourceOptions are the settings a run needs, after defaults.
type sourceOptions struct {
	Folder         string `mapstructure:"folder"`
	Filename       string `mapstructure:"filename"`
	Separator      string `mapstructure:"separator"`
	ColumnsAllowed *int   `mapstructure:"columns_allowed"`
}

// Run maps every row of the configured source.
// Configuration errors and column count mismatches abort the run and no table
// is returned.
func (m *Mapper) Run() (models.Table, error) {
	opts, err := m.resolve()
	if err != nil {
		return nil, err
	}

	bound := 0
	if opts.ColumnsAllowed != nil {
		bound = *opts.ColumnsAllowed
	}

	fields := m.mapping.All()
	if err := NewValidator(fields).ValidateMapping(); err != nil {
		return nil, err
	}

	path := filepath.Join(opts.Folder, opts.Filename)
	lines, err := m.readLines(path)
	if err != nil {
		return nil, err
	}

	transformer := NewTransformer(fields, m.reporter, m.strict)
	table := make(models.Table, 0, len(lines))

	for i, line := range lines {
		row := i + 1
		tokens := strings.Split(line, opts.Separator)

		if bound > 0 && len(tokens) != bound {
			return nil, &WrongColumnCountError{Row: row, Got: len(tokens), Want: bound}
		}

		rec, err := transformer.TransformRow(row, tokens)
		if err != nil {
			return nil, err
		}
		table = append(table, rec)
	}

	m.log.Debug("mapped source",
		zap.String("path", path),
		zap.Int("rows", len(table)),
		zap.Int("fields", len(fields)),
	)
	return table, nil
}

// resolve checks the required settings and applies defaults. Nothing is
// opened before it succeeds.
func (m *Mapper) resolve() (sourceOptions, error) {
	var opts sourceOptions
	if m.settings == nil {
		return opts, &config.ConfigurationMissingError{Key: config.SettingFolder}
	}

	raw := make(map[string]any)
	for _, key := range []string{config.SettingFolder, config.SettingFilename} {
		v := m.settings.Get(key)
		if isBlank(v) {
			return opts, &config.ConfigurationMissingError{Key: key}
		}
		raw[key] = v
	}

	raw[config.SettingSeparator] = m.settings.Get(config.SettingSeparator)
	if raw[config.SettingSeparator] == nil {
		raw[config.SettingSeparator] = config.DefaultSeparator
	}
	if v := m.settings.Get(config.SettingColumnsAllowed); v != nil {
		raw[config.SettingColumnsAllowed] = v
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &opts,
	})
	if err != nil {
		return opts, err
	}
	if err := dec.Decode(raw); err != nil {
		return opts, &config.ConfigurationMissingError{Key: "settings", Cause: err}
	}

	if opts.Separator == "" {
		return opts, &config.ConfigurationMissingError{
			Key:   config.SettingSeparator,
			Cause: errors.New("separator must not be empty"),
		}
	}
	if opts.ColumnsAllowed != nil && *opts.ColumnsAllowed <= 0 {
		return opts, &config.ConfigurationMissingError{
			Key:   config.SettingColumnsAllowed,
			Cause: fmt.Errorf("must be positive, got %d", *opts.ColumnsAllowed),
		}
	}
	return opts, nil
}

// readLines reads the whole source and releases it before returning.
func (m *Mapper) readLines(path string) ([]string, error) {
	f, err := m.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", path, err)
	}
	return splitLines(string(data)), nil
}

// splitLines splits on \n, drops a trailing \r from each line and ignores the
// empty line left by a final newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
