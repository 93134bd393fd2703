package domain

import "time"

// Event kinds published to the notification sink.
const (
	EventOTPIssued      = "otp.issued"
	EventOTPResent      = "otp.resent"
	EventSessionCreated = "session.created"
)

// Event describes a single state transition in the login flow. Events are
// transient: published to the webhook sink best-effort and never stored.
// Code is set only on issuance events, for out-of-band delivery.
type Event struct {
	ID       string    `json:"id"`
	Kind     string    `json:"kind"`
	Identity string    `json:"identity"`
	Provider string    `json:"provider,omitempty"`
	Code     string    `json:"code,omitempty"`
	At       time.Time `json:"at"`
}
