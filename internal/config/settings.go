package config

// Recognized setting names.
const (
	SettingFolder         = "folder"
	SettingFilename       = "filename"
	SettingSeparator      = "separator"
	SettingColumnsAllowed = "columns_allowed"
)

// DefaultSeparator is used when no separator is configured.
const DefaultSeparator = ","

var settingDefaults = map[string]any{
	SettingSeparator: DefaultSeparator,
}

// SettingsProvider exposes named options to the mapper.
// Values are not validated when set; the mapper checks them before a run.
type SettingsProvider interface {
	// Get returns the value of name, its default when unset, or nil.
	Get(name string) any
	Set(name string, value any)
}

// MemorySettings is a SettingsProvider seeded by Set calls.
type MemorySettings struct {
	values map[string]any
}

// NewSettings returns settings holding only the defaults.
func NewSettings() *MemorySettings {
	return &MemorySettings{values: make(map[string]any)}
}

// Get implements SettingsProvider.
func (s *MemorySettings) Get(name string) any {
	if v, ok := s.values[name]; ok && v != nil {
		return v
	}
	return settingDefaults[name]
}

// Set implements SettingsProvider.
func (s *MemorySettings) Set(name string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[name] = value
}
