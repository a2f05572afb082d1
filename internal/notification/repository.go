package notification

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

func Insert(ctx context.Context, tx pgx.Tx, recipientID string, typ Type, title, message string, bookingID *string) error {
	const q = `
INSERT INTO notifications (recipient_id, title, message, notification_type, booking_id)
VALUES ($1, $2, $3, $4, $5)
`
	_, err := tx.Exec(ctx, q, recipientID, title, message, string(typ), bookingID)
	return err
}

// InsertForDepartment notifies every staff member of department.
func InsertForDepartment(ctx context.Context, tx pgx.Tx, department string, typ Type, title, message string, bookingID *string) (int64, error) {
	const q = `
INSERT INTO notifications (recipient_id, title, message, notification_type, booking_id)
SELECT id, $2, $3, $4, $5
FROM users
WHERE role = 'staff' AND department = $1
`
	tag, err := tx.Exec(ctx, q, department, title, message, string(typ), bookingID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error) {
	const q = `
SELECT id, recipient_id, title, message, notification_type, booking_id, is_read, created_at
FROM notifications
WHERE recipient_id = $1 AND ($2 = FALSE OR is_read = FALSE)
ORDER BY created_at DESC
LIMIT 200
`
	rows, err := r.db.Query(ctx, q, recipientID, unreadOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Notification{}
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Type, &n.BookingID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead returns false when the notification does not belong to recipientID.
func (r *Repository) MarkRead(ctx context.Context, recipientID, id string) (bool, error) {
	const q = `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2`
	tag, err := r.db.Exec(ctx, q, id, recipientID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
