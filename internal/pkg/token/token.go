package token

import "github.com/google/uuid"

// NewSessionToken generates an opaque, unguessable session token. uuid.NewRandom
// draws from crypto/rand, so the token carries 122 bits of entropy.
func NewSessionToken() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
