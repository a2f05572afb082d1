package venue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Venue struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Location    string          `json:"location,omitempty"`
	Capacity    int             `json:"capacity"`
	HandledBy   string          `json:"handledBy"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
	IsAvailable bool            `json:"isAvailable"`
	Features    json.RawMessage `json:"features"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const selectColumns = `
SELECT id, name, description, category, location, capacity, handled_by, hourly_rate::text,
       is_available, features, created_at, updated_at
FROM venues
`

func scanVenue(row pgx.Row) (*Venue, error) {
	var v Venue
	var rate string
	if err := row.Scan(
		&v.ID, &v.Name, &v.Description, &v.Category, &v.Location, &v.Capacity, &v.HandledBy, &rate,
		&v.IsAvailable, &v.Features, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	amt, err := decimal.NewFromString(rate)
	if err != nil {
		return nil, err
	}
	v.HourlyRate = amt
	return &v, nil
}

func (r *Repository) List(ctx context.Context, availableOnly bool) ([]Venue, error) {
	q := selectColumns + `WHERE ($1 = FALSE OR is_available) ORDER BY name ASC`
	rows, err := r.db.Query(ctx, q, availableOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Venue, error) {
	return scanVenue(r.db.QueryRow(ctx, selectColumns+`WHERE id = $1`, id))
}

// GetShared reads the venue inside tx with FOR SHARE so routing cannot change
// underneath a booking being created.
func GetShared(ctx context.Context, tx pgx.Tx, id string) (*Venue, error) {
	return scanVenue(tx.QueryRow(ctx, selectColumns+`WHERE id = $1 FOR SHARE`, id))
}

// Upsert creates the venue or, when one with the same name exists, replaces
// its attributes. Used by seeding tools.
func (r *Repository) Upsert(ctx context.Context, v Venue) (*Venue, error) {
	features := v.Features
	if len(features) == 0 {
		features = json.RawMessage(`{}`)
	}
	const q = `
INSERT INTO venues (name, description, category, location, capacity, handled_by, hourly_rate, is_available, features)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (name) DO UPDATE SET
  description  = EXCLUDED.description,
  category     = EXCLUDED.category,
  location     = EXCLUDED.location,
  capacity     = EXCLUDED.capacity,
  handled_by   = EXCLUDED.handled_by,
  hourly_rate  = EXCLUDED.hourly_rate,
  is_available = EXCLUDED.is_available,
  features     = EXCLUDED.features,
  updated_at   = NOW()
RETURNING id, name, description, category, location, capacity, handled_by, hourly_rate::text,
          is_available, features, created_at, updated_at
`
	return scanVenue(r.db.QueryRow(ctx, q,
		v.Name, v.Description, v.Category, v.Location, v.Capacity, v.HandledBy, v.HourlyRate.StringFixed(2), v.IsAvailable, features,
	))
}
