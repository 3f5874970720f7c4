package config

import (
	"errors"
	"testing"

	"github.com/BartekS5/csvmap/pkg/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySettingsDefaults(t *testing.T) {
	s := NewSettings()

	assert.Equal(t, DefaultSeparator, s.Get(SettingSeparator))
	assert.Nil(t, s.Get(SettingFolder))
	assert.Nil(t, s.Get(SettingColumnsAllowed))

	s.Set(SettingSeparator, ";")
	s.Set(SettingColumnsAllowed, 3)
	assert.Equal(t, ";", s.Get(SettingSeparator))
	assert.Equal(t, 3, s.Get(SettingColumnsAllowed))
}

func TestMemoryMappingKeepsOrder(t *testing.T) {
	m := NewMapping()
	m.Set("month", models.Column(0))
	m.Set("year", models.Column(1))
	m.Set("fixed_field", models.Constant("default_value"))
	m.Set("month", models.Column(5))

	all := m.All()
	require.Len(t, all, 3)
	assert.Equal(t, "month", all[0].Name)
	assert.Equal(t, 5, *all[0].Rule.Key)
	assert.Equal(t, "year", all[1].Name)
	assert.Equal(t, "fixed_field", all[2].Name)

	r, ok := m.Get("fixed_field")
	require.True(t, ok)
	assert.Equal(t, "default_value", r.Value)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestDocumentSettings(t *testing.T) {
	s, err := NewDocumentSettings("testdata/mapping.yml")
	require.NoError(t, err)

	assert.Equal(t, "testdata", s.Get(SettingFolder))
	assert.Equal(t, "temperatures.csv", s.Get(SettingFilename))
	assert.Equal(t, ";", s.Get(SettingSeparator))
	assert.Equal(t, 3, s.Get(SettingColumnsAllowed))

	s.Set(SettingSeparator, ",")
	assert.Equal(t, ",", s.Get(SettingSeparator))
}

func TestDocumentMapping(t *testing.T) {
	m, err := NewDocumentMapping("testdata/mapping.yml", nil)
	require.NoError(t, err)

	all := m.All()
	require.Len(t, all, 4)
	assert.Equal(t, []string{"month", "year", "temperature", "fixed_field"},
		[]string{all[0].Name, all[1].Name, all[2].Name, all[3].Name})

	month := all[0].Rule
	require.True(t, month.HasKey())
	assert.Equal(t, 0, *month.Key)
	require.NotNil(t, month.Fn)
	require.NotNil(t, month.Test)
	assert.Equal(t, "01", month.Fn("1"))
	assert.True(t, month.Test("1"))
	assert.False(t, month.Test("Jan"))

	year := all[1].Rule
	assert.Nil(t, year.Fn)
	assert.Nil(t, year.Test)

	assert.Equal(t, 0.2, all[2].Rule.Fn("0.2"))

	fixed := all[3].Rule
	assert.False(t, fixed.HasKey())
	assert.Equal(t, "default_value", fixed.Value)
}

func TestDocumentMappingJSON(t *testing.T) {
	m, err := NewDocumentMapping("testdata/mapping.json", nil)
	require.NoError(t, err)

	all := m.All()
	require.Len(t, all, 3)
	assert.Equal(t, "temperature", all[0].Name)
	assert.Equal(t, "month", all[1].Name)
	assert.Equal(t, "fixed_field", all[2].Name)
	assert.Equal(t, "07", all[1].Rule.Fn("7"))
}

func TestDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		load func() error
	}{
		{"missing file", func() error {
			_, err := NewDocumentSettings("testdata/nope.yml")
			return err
		}},
		{"broken yaml", func() error {
			_, err := NewDocumentMapping("testdata/broken.yml", nil)
			return err
		}},
		{"unknown function", func() error {
			_, err := NewDocumentMapping("testdata/unknown_fn.yml", nil)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfigurationMissing), "got %v", err)
		})
	}
}

func TestLoadDocumentFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := "settings:\n  folder: in\n  filename: data.csv\nmapping:\n  b:\n    key: 1\n  a:\n    value: x\n"
	require.NoError(t, afero.WriteFile(fs, "docs/map.yml", []byte(doc), 0644))

	parsed, err := LoadDocumentFs(fs, "docs/map.yml")
	require.NoError(t, err)

	settings, err := DocumentSettingsFrom("docs/map.yml", parsed)
	require.NoError(t, err)
	assert.Equal(t, "in", settings.Get(SettingFolder))
	assert.Equal(t, DefaultSeparator, settings.Get(SettingSeparator))

	mapping, err := DocumentMappingFrom("docs/map.yml", parsed, nil)
	require.NoError(t, err)
	all := mapping.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].Name)
	assert.Equal(t, "a", all[1].Name)

	_, err = LoadDocumentFs(fs, "docs/absent.yml")
	assert.ErrorIs(t, err, ErrConfigurationMissing)
}

func TestDocumentMissingSections(t *testing.T) {
	doc, err := ParseDocument([]byte("mapping:\n  a:\n    key: 0\n"))
	require.NoError(t, err)

	_, err = DocumentSettingsFrom("inline", doc)
	var cfgErr *ConfigurationMissingError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "settings", cfgErr.Key)

	doc, err = ParseDocument([]byte("settings:\n  folder: x\n"))
	require.NoError(t, err)

	_, err = DocumentMappingFrom("inline", doc, nil)
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "mapping", cfgErr.Key)
}

func TestFunctions(t *testing.T) {
	fns := DefaultFunctions()

	pad, err := fns.Transform("zero_pad:3")
	require.NoError(t, err)
	assert.Equal(t, "007", pad("7"))

	_, err = fns.Transform("zero_pad:x")
	assert.Error(t, err)

	_, err = fns.Transform("float:1")
	assert.Error(t, err)

	upper, err := fns.Transform("upper")
	require.NoError(t, err)
	assert.Equal(t, "ABC", upper("abc"))

	isDate, err := fns.Test("date:2006-01-02")
	require.NoError(t, err)
	assert.True(t, isDate("2013-01-31"))
	assert.False(t, isDate("31/01/2013"))

	fns.RegisterTest("even", func(string) (models.TestFunc, error) {
		return func(raw string) bool { return len(raw)%2 == 0 }, nil
	})
	even, err := fns.Test("even")
	require.NoError(t, err)
	assert.True(t, even("ab"))

	_, err = fns.Test("odd")
	assert.Error(t, err)
}

func TestRequireSink(t *testing.T) {
	t.Setenv("SQL_CONNECTION_STRING", "")
	t.Setenv("MONGO_CONNECTION_STRING", "mongodb://localhost:27017")
	t.Setenv("MONGO_DATABASE", "")

	cfg := LoadConfig()
	assert.Equal(t, DefaultMongoDatabase, cfg.MongoDatabase)
	assert.Equal(t, "info", cfg.LogLevel)

	assert.NoError(t, cfg.RequireSink("json"))
	assert.NoError(t, cfg.RequireSink("mongo"))

	err := cfg.RequireSink("sql")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigurationMissing)
	assert.Contains(t, err.Error(), "SQL_CONNECTION_STRING")
}
