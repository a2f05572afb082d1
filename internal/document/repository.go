package document

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const selectColumns = `
SELECT id, booking_id, uploaded_by, file_url, file_name, document_type, description,
       is_verified, verified_by, verified_at, uploaded_at
FROM booking_documents
`

func scanDocument(row pgx.Row) (*Document, error) {
	var d Document
	if err := row.Scan(
		&d.ID, &d.BookingID, &d.UploadedBy, &d.FileURL, &d.FileName, &d.Type, &d.Description,
		&d.IsVerified, &d.VerifiedBy, &d.VerifiedAt, &d.UploadedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) ListByBooking(ctx context.Context, bookingID string) ([]Document, error) {
	rows, err := r.db.Query(ctx, selectColumns+`WHERE booking_id = $1 ORDER BY uploaded_at ASC, id ASC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func Insert(ctx context.Context, tx pgx.Tx, d Document) (*Document, error) {
	const q = `
INSERT INTO booking_documents (booking_id, uploaded_by, file_url, file_name, document_type, description)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, booking_id, uploaded_by, file_url, file_name, document_type, description,
          is_verified, verified_by, verified_at, uploaded_at
`
	return scanDocument(tx.QueryRow(ctx, q, d.BookingID, d.UploadedBy, d.FileURL, d.FileName, string(d.Type), d.Description))
}

// GetForUpdate locks one document of bookingID.
func GetForUpdate(ctx context.Context, tx pgx.Tx, bookingID, id string) (*Document, error) {
	return scanDocument(tx.QueryRow(ctx, selectColumns+`WHERE id = $1 AND booking_id = $2 FOR UPDATE`, id, bookingID))
}

// MarkVerified stamps verifier and time. Re-verifying overwrites both.
func MarkVerified(ctx context.Context, tx pgx.Tx, id, verifierID string, at time.Time) error {
	const q = `
UPDATE booking_documents
SET is_verified = TRUE, verified_by = $2, verified_at = $3
WHERE id = $1
`
	_, err := tx.Exec(ctx, q, id, verifierID, at)
	return err
}

func CountUnverified(ctx context.Context, tx pgx.Tx, bookingID string) (int, error) {
	const q = `SELECT COUNT(*) FROM booking_documents WHERE booking_id = $1 AND NOT is_verified`
	var n int
	err := tx.QueryRow(ctx, q, bookingID).Scan(&n)
	return n, err
}
