package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIs_MatchesByKind(t *testing.T) {
	err := fmt.Errorf("apply: %w", PermissionDenied("department mismatch"))
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected wrapped error to match ErrPermissionDenied")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("permission error must not match ErrNotFound")
	}
}

func TestAs_ExposesCode(t *testing.T) {
	err := fmt.Errorf("create: %w", Validation("TIME_WINDOW_INVALID", "start must be before end"))
	var ae *Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *Error")
	}
	if ae.Code != "TIME_WINDOW_INVALID" || ae.Kind != KindValidation {
		t.Fatalf("unexpected error: %+v", ae)
	}
}

func TestValidation_DefaultCode(t *testing.T) {
	if got := Validation("", "bad").Code; got != "VALIDATION_FAILED" {
		t.Fatalf("expected default code, got %q", got)
	}
}
