package history

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// Entry is one status transition. Rows are append-only.
type Entry struct {
	ID             string    `json:"id"`
	BookingID      string    `json:"bookingId"`
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	ChangedBy      *string   `json:"changedBy,omitempty"`
	Comment        string    `json:"comment,omitempty"`
	HandledByRole  string    `json:"handledByRole,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Insert appends a transition row and returns its id. The timestamp is
// assigned by the database clock at insert time, after the booking row lock
// is held, so it never goes backwards for a booking.
func Insert(ctx context.Context, tx pgx.Tx, e Entry) (string, error) {
	const q = `
INSERT INTO booking_history (booking_id, previous_status, new_status, changed_by, comment, handled_by_role)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`
	var id string
	err := tx.QueryRow(ctx, q, e.BookingID, e.PreviousStatus, e.NewStatus, e.ChangedBy, e.Comment, e.HandledByRole).Scan(&id)
	return id, err
}
