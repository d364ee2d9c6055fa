// Package notify is the notification boundary: the core emits
// (severity, title, description) triples and the consumer decides how to
// present them.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
)

type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
)

type Event struct {
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

// Sink receives notification events. Delivery failures must not propagate
// into the operation that emitted the event.
type Sink interface {
	Notify(ctx context.Context, event Event)
}

// NopSink drops everything.
type NopSink struct{}

func (NopSink) Notify(context.Context, Event) {}

// WebhookSink posts each event as JSON to a webhook URL.
type WebhookSink struct {
	URL    string
	Client *http.Client
	Logger *slog.Logger
}

func NewWebhookSink(url string, logger *slog.Logger) *WebhookSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookSink{URL: url, Client: http.DefaultClient, Logger: logger}
}

func (s *WebhookSink) Notify(ctx context.Context, event Event) {
	body, _ := json.Marshal(event)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		s.Logger.Error("failed to build notification request", "err", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		s.Logger.Error("failed to deliver notification", "err", err)
		return
	}
	defer resp.Body.Close()
}

// WriterSink prints events to a writer, used by the CLI.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Notify(_ context.Context, event Event) {
	fmt.Fprintf(s.W, "[%s] %s: %s\n", event.Severity, event.Title, event.Description)
}

// Recorder captures events for tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Notify(_ context.Context, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
