// Package events publishes job-board domain events to a message broker so
// that downstream consumers (notification senders, analytics) can react to
// them. Publishing is best-effort from the API's point of view: a failed
// publish never fails the request that produced the event.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// ChannelApplicationSubmitted carries ApplicationSubmitted events.
const ChannelApplicationSubmitted = "application.submitted"

// ApplicationSubmitted is emitted after an application row is committed.
type ApplicationSubmitted struct {
	ApplicationID int       `json:"application_id"`
	JobID         int       `json:"job_id"`
	ApplicantID   int       `json:"applicant_id"`
	EmployerID    int       `json:"employer_id"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// Message represents a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, msg Message) error

// Backend defines the broker-agnostic operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// Publisher wraps a backend with typed publish operations.
type Publisher struct {
	backend Backend
}

// NewPublisher constructs a Publisher for the provided backend.
func NewPublisher(backend Backend) *Publisher {
	return &Publisher{backend: backend}
}

// ApplicationSubmitted publishes the event as JSON.
func (p *Publisher) ApplicationSubmitted(ctx context.Context, event ApplicationSubmitted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = p.backend.Publish(ctx, ChannelApplicationSubmitted, data, map[string]string{
		"event": ChannelApplicationSubmitted,
	})
	return err
}

// Subscribe consumes messages from the named channel.
func (p *Publisher) Subscribe(ctx context.Context, channel string, handler Handler) error {
	return p.backend.Subscribe(ctx, channel, handler)
}

// Close closes the underlying backend.
func (p *Publisher) Close() error {
	return p.backend.Close()
}
