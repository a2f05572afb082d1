package events

import (
	"context"
	"time"
)

const (
	TypeBookingCreated       = "booking.created"
	TypeBookingUpdated       = "booking.updated"
	TypeBookingStatusChanged = "booking.status_changed"
)

// Event is published after the transaction that produced it commits.
type Event struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"bookingId"`
	BookingCode string    `json:"bookingCode"`
	From        string    `json:"from,omitempty"`
	To          string    `json:"to"`
	ActorID     string    `json:"actorId,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops events. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
