package identity

import "strings"

// Normalize canonicalizes an identity email. Every path that touches the
// store must go through this, otherwise otp:<identity> keys diverge between
// issue and verify.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
