package util

import "regexp"

// gstinPattern matches the 15-character GSTIN layout: 2-digit state code,
// 10-character PAN, entity number, the literal "Z", and a check character.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)

// IsValidGSTIN reports whether s is a well-formed GSTIN.
func IsValidGSTIN(s string) bool {
	return gstinPattern.MatchString(s)
}
