package domain

import "unicode"

// StrongPassword reports whether a candidate password passes the credential
// strength rule: at least one upper-case letter, one lower-case letter, and
// one digit or special character.
func StrongPassword(password string) bool {
	var upper, lower, digitOrSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r) || !unicode.IsLetter(r):
			digitOrSpecial = true
		}
	}
	return upper && lower && digitOrSpecial
}
