package shared

import "regexp"

var periodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ValidPeriod reports whether s has the YYYY-MM shape. Beyond the shape the
// value is an opaque key: no calendar validation is performed.
func ValidPeriod(s string) bool {
	return periodPattern.MatchString(s)
}
