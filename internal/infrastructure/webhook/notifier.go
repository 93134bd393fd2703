package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/otp-login-api/internal/domain"
)

const queueSize = 64

// payload is the wire form of a notification event. Summary is a free-text
// line for sinks that only render plain messages.
type payload struct {
	domain.Event
	Summary string `json:"summary"`
}

// Notifier delivers login-flow events to an operator-configured webhook.
// Publish is fire-and-forget: events are queued and posted by a background
// worker with its own timeout, so a slow or failing sink can never add
// latency or failure risk to the request path.
type Notifier struct {
	url     string
	token   string
	client  *http.Client
	events  chan domain.Event
	stopped chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewNotifier(url, token string, timeout time.Duration) *Notifier {
	n := &Notifier{
		url:     url,
		token:   token,
		client:  &http.Client{Timeout: timeout},
		events:  make(chan domain.Event, queueSize),
		stopped: make(chan struct{}),
	}
	go n.run()
	return n
}

// Publish enqueues an event without blocking. When the queue is full, or the
// notifier is already closed, the event is dropped and logged; the caller's
// request must not wait on the sink.
func (n *Notifier) Publish(ev domain.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		slog.Warn("notifier closed, dropping event", "kind", ev.Kind, "id", ev.ID)
		return
	}
	select {
	case n.events <- ev:
	default:
		slog.Warn("notification queue full, dropping event", "kind", ev.Kind, "id", ev.ID)
	}
}

// Close drains queued events and stops the worker. Safe to call more than
// once and safe against concurrent Publish, which drops instead of panicking.
func (n *Notifier) Close() {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.events)
	}
	n.mu.Unlock()
	<-n.stopped
}

func (n *Notifier) run() {
	defer close(n.stopped)
	for ev := range n.events {
		if err := n.post(ev); err != nil {
			slog.Warn("notification delivery failed", "kind", ev.Kind, "id", ev.ID, "err", err)
		}
	}
}

func (n *Notifier) post(ev domain.Event) error {
	body, err := json.Marshal(payload{Event: ev, Summary: summarize(ev)})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func summarize(ev domain.Event) string {
	switch ev.Kind {
	case domain.EventOTPIssued:
		return fmt.Sprintf("one-time code %s issued to %s (provider %s)", ev.Code, ev.Identity, ev.Provider)
	case domain.EventOTPResent:
		return fmt.Sprintf("one-time code %s re-sent to %s (provider %s)", ev.Code, ev.Identity, ev.Provider)
	case domain.EventSessionCreated:
		return fmt.Sprintf("session created for %s", ev.Identity)
	default:
		return fmt.Sprintf("%s for %s", ev.Kind, ev.Identity)
	}
}
