package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// DateLayouts are tried in order by ConvertDateTime when no layout is given.
var DateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// IsNumeric reports whether s is a decimal number, optionally signed and with
// an exponent. Surrounding whitespace is ignored.
func IsNumeric(s string) bool {
	return numericRegex.MatchString(strings.TrimSpace(s))
}

// IsInteger reports whether s parses as a base-10 integer.
func IsInteger(s string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil
}

// ZeroPad left-pads s with zeros up to width characters.
func ZeroPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// ConvertToFloat reads the leading number in s. Text without one converts to 0.
func ConvertToFloat(s string) float64 {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}

// ConvertToInt reads s as an integer, truncating any fractional part.
func ConvertToInt(s string) int {
	if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return i
	}
	return int(ConvertToFloat(s))
}

// ConvertDateTime parses s with the given layout, or with DateLayouts when
// layout is empty.
func ConvertDateTime(s string, layout string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if layout != "" {
		return time.Parse(layout, s)
	}
	for _, f := range DateLayouts {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse datetime: %s", s)
}
