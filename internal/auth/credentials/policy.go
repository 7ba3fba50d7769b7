package credentials

import "unicode"

const minPasswordLength = 8

// IsValidPassword reports whether a plaintext password meets the structural
// policy: at least 8 characters, at least one letter, at least one digit.
// Enforced only when a password is set or changed. Login never re-checks
// the policy, so a password accepted under an older rule keeps working.
func IsValidPassword(plaintext string) bool {
	runes := []rune(plaintext)
	if len(runes) < minPasswordLength {
		return false
	}

	var hasLetter, hasDigit bool
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	return hasLetter && hasDigit
}
