package user

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Upsert creates or refreshes a user by email. Used by seeding tools.
func (r *Repository) Upsert(ctx context.Context, email, fullName, role, department string) (*User, error) {
	const q = `
INSERT INTO users (email, full_name, role, department)
VALUES ($1, $2, $3, NULLIF($4, ''))
ON CONFLICT (email) DO UPDATE SET
  full_name = EXCLUDED.full_name,
  role = EXCLUDED.role,
  department = EXCLUDED.department
RETURNING id, email, full_name, role, COALESCE(department,''), created_at
`
	u := &User{}
	if err := r.db.QueryRow(ctx, q, email, fullName, role, department).Scan(
		&u.ID, &u.Email, &u.FullName, &u.Role, &u.Department, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*User, error) {
	const q = `
SELECT id, email, full_name, role, COALESCE(department,''), created_at
FROM users
WHERE id = $1
`
	u := &User{}
	if err := r.db.QueryRow(ctx, q, id).Scan(
		&u.ID, &u.Email, &u.FullName, &u.Role, &u.Department, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}
