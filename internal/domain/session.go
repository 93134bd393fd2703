package domain

import "time"

// SessionTTL is the single session expiry policy. The store enforces it;
// there is no explicit revoke path.
const SessionTTL = 7 * 24 * time.Hour

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "session"

// Session binds an opaque bearer token to a normalized identity.
// The token is the lookup key; the identity is the stored value.
type Session struct {
	Token    string    `json:"token"`
	Identity string    `json:"identity"`
	IssuedAt time.Time `json:"issued_at"`
}
