package feedback

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func Insert(ctx context.Context, tx pgx.Tx, d Draft) (*Feedback, error) {
	const q = `
INSERT INTO booking_feedback (booking_id, staff_id, content, is_internal, feedback_type)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, booking_id, staff_id, content, is_internal, feedback_type, created_at
`
	var f Feedback
	if err := tx.QueryRow(ctx, q, d.BookingID, d.StaffID, d.Content, d.IsInternal, string(d.Type)).Scan(
		&f.ID, &f.BookingID, &f.StaffID, &f.Content, &f.IsInternal, &f.Type, &f.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *Repository) ListByBooking(ctx context.Context, bookingID string) ([]Feedback, error) {
	const q = `
SELECT id, booking_id, staff_id, content, is_internal, feedback_type, created_at
FROM booking_feedback
WHERE booking_id = $1
ORDER BY created_at ASC, id ASC
`
	rows, err := r.db.Query(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Feedback
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.BookingID, &f.StaffID, &f.Content, &f.IsInternal, &f.Type, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
