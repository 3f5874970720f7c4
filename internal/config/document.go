package config

import (
	"fmt"

	"github.com/BartekS5/csvmap/pkg/models"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// LoadDocument reads and parses a mapping document from the given path.
// JSON documents are accepted as well, JSON being valid YAML.
func LoadDocument(path string) (*models.Document, error) {
	return LoadDocumentFs(afero.NewOsFs(), path)
}

// LoadDocumentFs is LoadDocument reading through fs.
func LoadDocumentFs(fs afero.Fs, path string) (*models.Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, missing(path, fmt.Errorf("failed to read document: %w", err))
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, missing(path, err)
	}
	return doc, nil
}

// ParseDocument parses YAML data into a Document.
func ParseDocument(data []byte) (*models.Document, error) {
	var doc models.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &doc, nil
}

// DocumentSettings is a SettingsProvider populated from the settings section
// of a document. After loading it behaves like MemorySettings.
type DocumentSettings struct {
	*MemorySettings
	Path string
}

// NewDocumentSettings loads the settings section of the document at path.
func NewDocumentSettings(path string) (*DocumentSettings, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return DocumentSettingsFrom(path, doc)
}

// DocumentSettingsFrom builds settings from an already parsed document.
func DocumentSettingsFrom(path string, doc *models.Document) (*DocumentSettings, error) {
	if doc.Settings == nil {
		return nil, missing("settings", fmt.Errorf("no settings section in %s", path))
	}

	s := &DocumentSettings{MemorySettings: NewSettings(), Path: path}
	for k, v := range doc.Settings {
		s.Set(k, v)
	}
	return s, nil
}

// DocumentMapping is a MappingProvider populated from the mapping section of
// a document, in document order.
type DocumentMapping struct {
	*MemoryMapping
	Path string
}

// NewDocumentMapping loads the mapping section of the document at path.
// Function names are resolved with fns, or DefaultFunctions when nil.
func NewDocumentMapping(path string, fns *Functions) (*DocumentMapping, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return DocumentMappingFrom(path, doc, fns)
}

// DocumentMappingFrom builds a mapping from an already parsed document.
func DocumentMappingFrom(path string, doc *models.Document, fns *Functions) (*DocumentMapping, error) {
	if fns == nil {
		fns = DefaultFunctions()
	}

	node := &doc.Mapping
	if node.Kind == 0 {
		return nil, missing("mapping", fmt.Errorf("no mapping section in %s", path))
	}
	if node.Kind != yaml.MappingNode {
		return nil, missing("mapping", fmt.Errorf("line %d: mapping must be an object", node.Line))
	}

	m := &DocumentMapping{MemoryMapping: NewMapping(), Path: path}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value

		var rc models.RuleConfig
		if err := node.Content[i+1].Decode(&rc); err != nil {
			return nil, missing("mapping."+name, err)
		}

		rule, err := buildRule(rc, fns)
		if err != nil {
			return nil, missing("mapping."+name, err)
		}
		m.Set(name, rule)
	}
	return m, nil
}

func buildRule(rc models.RuleConfig, fns *Functions) (models.Rule, error) {
	rule := models.Rule{Key: rc.Key, Value: rc.Value}

	if rc.Fn != "" {
		fn, err := fns.Transform(rc.Fn)
		if err != nil {
			return models.Rule{}, err
		}
		rule.Fn = fn
	}
	if rc.Test != "" {
		test, err := fns.Test(rc.Test)
		if err != nil {
			return models.Rule{}, err
		}
		rule.Test = test
	}
	return rule, nil
}
