package payment

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"venuebooking/internal/apperr"
)

func TestQuote_WholeHours(t *testing.T) {
	start := time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)
	got, err := Quote(decimal.RequireFromString("150.00"), start, start.Add(3*time.Hour), DefaultCurrencyScale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("450.00")) {
		t.Fatalf("expected 450.00, got %s", got)
	}
}

func TestQuote_FractionalHoursRounded(t *testing.T) {
	start := time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)
	// 100 minutes at 10.00/h = 16.666.. -> 16.67
	got, err := Quote(decimal.RequireFromString("10"), start, start.Add(100*time.Minute), DefaultCurrencyScale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StringFixed(2) != "16.67" {
		t.Fatalf("expected 16.67, got %s", got.StringFixed(2))
	}
}

func TestQuote_PartialMinuteBillsWholeMinute(t *testing.T) {
	start := time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)
	got, err := Quote(decimal.RequireFromString("60"), start, start.Add(30*time.Second), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("1")) {
		t.Fatalf("expected 1.00, got %s", got)
	}
}

func TestQuote_Rejects(t *testing.T) {
	start := time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)
	if _, err := Quote(decimal.RequireFromString("-1"), start, start.Add(time.Hour), DefaultCurrencyScale); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for negative rate, got %v", err)
	}
	if _, err := Quote(decimal.RequireFromString("10"), start, start, DefaultCurrencyScale); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for empty window, got %v", err)
	}
}
