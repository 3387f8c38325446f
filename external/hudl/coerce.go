package hudl

import (
	"strconv"
	"strings"
)

// Int converts a cell to an integer. Empty, absent, non-numeric and
// out-of-range cells become nil; values must fit the 32-bit INTEGER columns
// they are stored in. A cell never coerces to zero unless it says zero.
func Int(raw string) *int {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return nil
	}
	out := int(parsed)
	return &out
}

// String trims a cell and maps empty text to nil.
func String(raw string) *string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	return &value
}

// malformedInt reports a non-empty cell that Int could not parse.
func malformedInt(raw string) bool {
	return strings.TrimSpace(raw) != "" && Int(raw) == nil
}
