package etl

import "strings"

// StripQuotes removes one pair of enclosing double quotes from raw.
// Anything not wrapped in a balanced pair is returned unchanged.
func StripQuotes(raw string) string {
	if len(raw) >= 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) {
		return raw[1 : len(raw)-1]
	}
	return raw
}
