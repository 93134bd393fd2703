package domain

import "time"

// OTPTTL is how long an issued one-time code stays verifiable.
const OTPTTL = 5 * time.Minute

// OneTimeCode is a short-lived numeric credential bound to an identity.
// The store keeps it under otp:<identity>, so at most one code is live per
// identity at any instant; a new issuance overwrites the previous one.
type OneTimeCode struct {
	Code     string    `json:"code"`
	Identity string    `json:"identity"`
	IssuedAt time.Time `json:"issued_at"`
}
