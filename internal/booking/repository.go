package booking

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const selectColumns = `
SELECT b.id, b.booking_code, b.owner_id, b.venue_id, v.name, v.handled_by,
       b.title, b.description, b.start_time, b.end_time, b.attendees_count, b.status,
       b.payment_required, b.payment_amount::text, b.payment_completed, b.payment_reference,
       b.documents_required, b.documents_verified, b.requires_approval,
       b.approved_by, b.approval_date, b.created_at, b.updated_at
FROM bookings b
JOIN venues v ON v.id = b.venue_id
`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var amount string
	if err := row.Scan(
		&b.ID, &b.BookingCode, &b.OwnerID, &b.VenueID, &b.VenueName, &b.HandledBy,
		&b.Title, &b.Description, &b.StartTime, &b.EndTime, &b.AttendeesCount, &b.Status,
		&b.PaymentRequired, &amount, &b.PaymentCompleted, &b.PaymentReference,
		&b.DocumentsRequired, &b.DocumentsVerified, &b.RequiresApproval,
		&b.ApprovedBy, &b.ApprovalDate, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}
	b.PaymentAmount = amt
	return &b, nil
}

func scanAll(rows pgx.Rows) ([]Booking, error) {
	defer rows.Close()

	out := []Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, selectColumns+`WHERE b.id = $1`, id))
}

type Filter struct {
	// OwnerID restricts to one owner; empty means all owners.
	OwnerID string
	Status  Status
	Limit   int
}

func (r *Repository) List(ctx context.Context, f Filter) ([]Booking, error) {
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	q := selectColumns + `
WHERE ($1 = '' OR b.owner_id::text = $1)
  AND ($2 = '' OR b.status = $2)
ORDER BY b.created_at DESC
LIMIT $3
`
	rows, err := r.db.Query(ctx, q, f.OwnerID, string(f.Status), limit)
	if err != nil {
		return nil, err
	}
	return scanAll(rows)
}

// ListQueue returns approval-routed bookings waiting in statuses, oldest
// first. An empty department means every department.
func (r *Repository) ListQueue(ctx context.Context, department string, statuses []Status) ([]Booking, error) {
	st := make([]string, 0, len(statuses))
	for _, s := range statuses {
		st = append(st, string(s))
	}
	q := selectColumns + `
WHERE b.requires_approval
  AND b.status = ANY($1)
  AND ($2 = '' OR v.handled_by = $2)
ORDER BY b.created_at ASC
LIMIT 500
`
	rows, err := r.db.Query(ctx, q, st, department)
	if err != nil {
		return nil, err
	}
	return scanAll(rows)
}

// GetForUpdate locks the booking row (not the venue) until tx ends. Every
// status writer goes through this first.
func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Booking, error) {
	return scanBooking(tx.QueryRow(ctx, selectColumns+`WHERE b.id = $1 FOR UPDATE OF b`, id))
}

func Insert(ctx context.Context, tx pgx.Tx, b *Booking) error {
	const q = `
INSERT INTO bookings (
  booking_code, owner_id, venue_id, title, description, start_time, end_time, attendees_count, status,
  payment_required, payment_amount, documents_required, requires_approval
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id, created_at, updated_at
`
	return tx.QueryRow(ctx, q,
		b.BookingCode, b.OwnerID, b.VenueID, b.Title, b.Description, b.StartTime, b.EndTime, b.AttendeesCount, string(b.Status),
		b.PaymentRequired, b.PaymentAmount.StringFixed(2), b.DocumentsRequired, b.RequiresApproval,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// UpdateStatus writes next. approvedBy and approvalDate are only written when
// non-nil.
func UpdateStatus(ctx context.Context, tx pgx.Tx, id string, next Status, approvedBy *string, approvalDate *time.Time) error {
	const q = `
UPDATE bookings
SET status = $2,
    approved_by = COALESCE($3, approved_by),
    approval_date = COALESCE($4, approval_date),
    updated_at = NOW()
WHERE id = $1
`
	_, err := tx.Exec(ctx, q, id, string(next), approvedBy, approvalDate)
	return err
}

// MarkDocumentsVerified records that every document passed review and moves
// the booking to next.
func MarkDocumentsVerified(ctx context.Context, tx pgx.Tx, id string, next Status) error {
	const q = `
UPDATE bookings
SET status = $2, documents_verified = TRUE, updated_at = NOW()
WHERE id = $1
`
	_, err := tx.Exec(ctx, q, id, string(next))
	return err
}

// UpdateDetails writes the editable columns only. Status, routing flags and
// payment fields stay as they were at creation.
func UpdateDetails(ctx context.Context, tx pgx.Tx, id string, in CreateInput) (time.Time, error) {
	const q = `
UPDATE bookings
SET title = $2,
    description = $3,
    start_time = $4,
    end_time = $5,
    attendees_count = $6,
    updated_at = NOW()
WHERE id = $1
RETURNING updated_at
`
	var updatedAt time.Time
	err := tx.QueryRow(ctx, q, id, in.Title, in.Description, in.StartTime, in.EndTime, in.AttendeesCount).Scan(&updatedAt)
	return updatedAt, err
}
