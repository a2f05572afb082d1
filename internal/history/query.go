package history

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ListByBooking returns the ledger newest first.
func ListByBooking(ctx context.Context, db *pgxpool.Pool, bookingID string) ([]Entry, error) {
	const q = `
SELECT id, booking_id, previous_status, new_status, changed_by, comment, handled_by_role, created_at
FROM booking_history
WHERE booking_id = $1
ORDER BY created_at DESC, id DESC
`
	rows, err := db.Query(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.BookingID, &e.PreviousStatus, &e.NewStatus, &e.ChangedBy, &e.Comment, &e.HandledByRole, &e.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
