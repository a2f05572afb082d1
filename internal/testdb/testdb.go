// Package testdb gives integration tests a migrated Postgres pool and seed
// helpers. Tests that use it are skipped unless TEST_DATABASE_URL or
// DATABASE_URL is set.
package testdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"venuebooking/internal/actor"
	"venuebooking/internal/user"
	"venuebooking/internal/venue"
	"venuebooking/pkg/config"
	"venuebooking/pkg/db"
)

var (
	migrateOnce sync.Once
	migrateErr  error
)

func databaseURL() string {
	if u := strings.TrimSpace(os.Getenv("TEST_DATABASE_URL")); u != "" {
		return u
	}
	return strings.TrimSpace(os.Getenv("DATABASE_URL"))
}

func migrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return "file://" + filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

// Open returns a pool on a migrated database. Packages share the database,
// so seeded rows use unique names and nothing is truncated.
func Open(t testing.TB) *pgxpool.Pool {
	t.Helper()
	u := databaseURL()
	if u == "" {
		t.Skip("TEST_DATABASE_URL or DATABASE_URL not set")
	}
	cfg := config.Config{DatabaseURL: u}

	migrateOnce.Do(func() { migrateErr = db.Migrate(migrationsPath(), cfg) })
	if migrateErr != nil {
		t.Fatalf("migrate: %v", migrateErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := db.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// User seeds a user with a fresh email and returns its actor.
func User(t testing.TB, pool *pgxpool.Pool, role, department string) actor.Actor {
	t.Helper()
	email := fmt.Sprintf("%s-%s@test.local", role, uuid.NewString())
	u, err := user.NewRepository(pool).Upsert(context.Background(), email, "Test "+role, role, department)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	a, err := u.Actor()
	if err != nil {
		t.Fatalf("seed user actor: %v", err)
	}
	return a
}

// Venue seeds an available venue handled by department.
func Venue(t testing.TB, pool *pgxpool.Pool, department, hourlyRate string) *venue.Venue {
	t.Helper()
	v, err := venue.NewRepository(pool).Upsert(context.Background(), venue.Venue{
		Name:        "Test Venue " + uuid.NewString(),
		Category:    "hall",
		Capacity:    100,
		HandledBy:   department,
		HourlyRate:  decimal.RequireFromString(hourlyRate),
		IsAvailable: true,
	})
	if err != nil {
		t.Fatalf("seed venue: %v", err)
	}
	return v
}

// Count runs a single-value COUNT query.
func Count(t testing.TB, pool *pgxpool.Pool, q string, args ...any) int {
	t.Helper()
	var n int
	if err := pool.QueryRow(context.Background(), q, args...).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

// FailInserts makes every insert into table for bookingID raise until the
// test ends. Other bookings are unaffected.
func FailInserts(t testing.TB, pool *pgxpool.Pool, table, bookingID string) {
	t.Helper()
	name := "fail_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	ctx := context.Background()

	stmts := []string{
		fmt.Sprintf(`
CREATE FUNCTION %[1]s() RETURNS trigger LANGUAGE plpgsql AS $$
BEGIN
  IF NEW.booking_id = '%[2]s'::uuid THEN
    RAISE EXCEPTION 'insert into %[3]s refused';
  END IF;
  RETURN NEW;
END
$$`, name, bookingID, table),
		fmt.Sprintf(`CREATE TRIGGER %[1]s BEFORE INSERT ON %[2]s FOR EACH ROW EXECUTE FUNCTION %[1]s()`, name, table),
	}
	for _, q := range stmts {
		if _, err := pool.Exec(ctx, q); err != nil {
			t.Fatalf("install failing trigger: %v", err)
		}
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), fmt.Sprintf(`DROP TRIGGER IF EXISTS %s ON %s`, name, table))
		_, _ = pool.Exec(context.Background(), fmt.Sprintf(`DROP FUNCTION IF EXISTS %s()`, name))
	})
}
