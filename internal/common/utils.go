package common

import "strings"

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Use it to drop passwords from memory once they are no longer needed.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}

// SanitizeKey turns an email into a storage-safe key fragment: every rune
// outside [A-Za-z0-9._-] is replaced with '_'.
//
//	SanitizeKey("a+b@x.com") == "a_b_x.com"
func SanitizeKey(email string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		}
		return '_'
	}, email)
}
