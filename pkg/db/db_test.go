package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"venuebooking/pkg/config"
)

func TestRuntimeConnString_PrefersDatabaseURL(t *testing.T) {
	cfg := config.Config{
		DatabaseURL: "postgres://pooler/db",
		DB:          config.DBConfig{Host: "h", Port: "1", Name: "n", User: "u", Password: "p"},
	}
	if got := runtimeConnString(cfg); got != "postgres://pooler/db" {
		t.Fatalf("expected DATABASE_URL, got %q", got)
	}
}

func TestMigrationConnString_FallsBackToDSN(t *testing.T) {
	cfg := config.Config{DB: config.DBConfig{Host: "h", Port: "1", Name: "n", User: "u", Password: "p"}}
	want := "postgres://u:p@h:1/n?sslmode=disable"
	if got := migrationConnString(cfg); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestErrorClassifiers(t *testing.T) {
	if !IsNoRows(fmt.Errorf("load: %w", pgx.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to match")
	}
	if !IsUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatalf("expected 23505 to be a unique violation")
	}
	if IsUniqueViolation(errors.New("boom")) {
		t.Fatalf("plain error is not a unique violation")
	}
}
