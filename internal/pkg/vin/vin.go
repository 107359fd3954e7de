// Package vin validates Vehicle Identification Numbers.
package vin

// Length is the mandated VIN length.
const Length = 17

// Valid reports whether s is a syntactically valid VIN: exactly 17
// alphanumeric characters, with the letters I, O and Q disallowed in
// either case anywhere in the string.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
			if c == 'i' || c == 'o' || c == 'q' {
				return false
			}
		case c >= 'A' && c <= 'Z':
			if c == 'I' || c == 'O' || c == 'Q' {
				return false
			}
		default:
			return false
		}
	}

	return true
}
