package eventdetail

import (
	"context"

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

const columns = `
id, booking_id, event_type, purpose, equipment_needed, special_requests,
setup_time, teardown_time, budget::text, organizer_name, organizer_contact, event_schedule,
created_at, updated_at
`

func scan(row pgx.Row) (*EventDetails, error) {
	var (
		d      EventDetails
		budget *string
	)
	if err := row.Scan(
		&d.ID, &d.BookingID, &d.EventType, &d.Purpose, &d.EquipmentNeeded, &d.SpecialRequests,
		&d.SetupTime, &d.TeardownTime, &budget, &d.OrganizerName, &d.OrganizerContact, &d.EventSchedule,
		&d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if budget != nil {
		amt, err := decimal.NewFromString(*budget)
		if err != nil {
			return nil, err
		}
		d.Budget = &amt
	}
	return &d, nil
}

func budgetArg(b *decimal.Decimal) *string {
	if b == nil {
		return nil
	}
	s := b.StringFixed(2)
	return &s
}

func (r *Repository) GetByBooking(ctx context.Context, bookingID string) (*EventDetails, error) {
	return scan(r.db.QueryRow(ctx, `SELECT`+columns+`FROM event_details WHERE booking_id = $1`, bookingID))
}

func GetForUpdate(ctx context.Context, tx pgx.Tx, bookingID string) (*EventDetails, error) {
	return scan(tx.QueryRow(ctx, `SELECT`+columns+`FROM event_details WHERE booking_id = $1 FOR UPDATE`, bookingID))
}

// Insert fails with a unique violation when the booking already has details.
func Insert(ctx context.Context, tx pgx.Tx, d EventDetails) (*EventDetails, error) {
	const q = `
INSERT INTO event_details (
  booking_id, event_type, purpose, equipment_needed, special_requests,
  setup_time, teardown_time, budget, organizer_name, organizer_contact, event_schedule
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING` + columns
	return scan(tx.QueryRow(ctx, q,
		d.BookingID, d.EventType, d.Purpose, d.EquipmentNeeded, d.SpecialRequests,
		d.SetupTime, d.TeardownTime, budgetArg(d.Budget), d.OrganizerName, d.OrganizerContact, d.EventSchedule,
	))
}

func Update(ctx context.Context, tx pgx.Tx, d EventDetails) (*EventDetails, error) {
	const q = `
UPDATE event_details
SET event_type = $2,
    purpose = $3,
    equipment_needed = $4,
    special_requests = $5,
    setup_time = $6,
    teardown_time = $7,
    budget = $8,
    organizer_name = $9,
    organizer_contact = $10,
    event_schedule = $11,
    updated_at = NOW()
WHERE booking_id = $1
RETURNING` + columns
	return scan(tx.QueryRow(ctx, q,
		d.BookingID, d.EventType, d.Purpose, d.EquipmentNeeded, d.SpecialRequests,
		d.SetupTime, d.TeardownTime, budgetArg(d.Budget), d.OrganizerName, d.OrganizerContact, d.EventSchedule,
	))
}
