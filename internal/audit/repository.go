package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Actions recorded in audit_logs.
const (
	ActionBookingCreated   = "BOOKING_CREATED"
	ActionBookingUpdated   = "BOOKING_UPDATED"
	ActionStatusChanged    = "STATUS_CHANGED"
	ActionDocumentUploaded = "DOCUMENT_UPLOADED"
	ActionDocumentVerified = "DOCUMENT_VERIFIED"
	ActionFeedbackAdded    = "FEEDBACK_ADDED"
	ActionPaymentRecorded  = "PAYMENT_RECORDED"
	ActionEventDetailsSet  = "EVENT_DETAILS_SET"
)

type Record struct {
	ID        string          `json:"id"`
	BookingID *string         `json:"bookingId,omitempty"`
	Action    string          `json:"action"`
	ActorID   *string         `json:"actorId,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func Insert(ctx context.Context, tx pgx.Tx, bookingID *string, action, actorID string, metadata any) error {
	var s *string
	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		str := string(b)
		s = &str
	}
	var actor *string
	if actorID != "" {
		actor = &actorID
	}
	const q = `
INSERT INTO audit_logs (booking_id, action, actor_id, metadata)
VALUES ($1, $2, $3, CAST($4 AS jsonb))
`
	_, err := tx.Exec(ctx, q, bookingID, action, actor, s)
	return err
}

func (r *Repository) ListByBooking(ctx context.Context, bookingID string) ([]Record, error) {
	const q = `
SELECT id, booking_id, action, actor_id, metadata, created_at
FROM audit_logs
WHERE booking_id = $1
ORDER BY created_at ASC
`
	rows, err := r.db.Query(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.BookingID, &rec.Action, &rec.ActorID, &rec.Metadata, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
