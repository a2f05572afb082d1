package document

import (
	"context"
	"errors"
	"testing"

	"venuebooking/internal/actor"
	"venuebooking/internal/apperr"
	"venuebooking/internal/booking"
)

func TestEvaluate(t *testing.T) {
	g := Evaluate(booking.StatusDocumentsPending, true)
	if !g.Transition || g.To != booking.StatusPending {
		t.Fatalf("expected transition to pending, got %+v", g)
	}

	if g := Evaluate(booking.StatusDocumentsPending, false); g.Transition {
		t.Fatalf("non-last document must not transition")
	}

	for _, st := range []booking.Status{
		booking.StatusPending, booking.StatusUnderReview, booking.StatusApproved,
		booking.StatusRejected, booking.StatusCancelled, booking.StatusCompleted, booking.StatusPaymentPending,
	} {
		if g := Evaluate(st, true); g.Transition {
			t.Fatalf("%s: must not transition", st)
		}
	}
}

func TestParseType(t *testing.T) {
	if got, err := ParseType("Dean_Approval"); err != nil || got != TypeDeanApproval {
		t.Fatalf("got %q, %v", got, err)
	}
	if got, err := ParseType(""); err != nil || got != TypeOther {
		t.Fatalf("empty should default to other, got %q, %v", got, err)
	}
	if _, err := ParseType("passport"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCanUpload(t *testing.T) {
	owner := actor.Actor{ID: "student-1", Role: actor.Student{}}
	stranger := actor.Actor{ID: "student-2", Role: actor.Student{}}
	staff := actor.Actor{ID: "staff-1", Role: actor.Staff{Department: "ppk"}}

	b := &booking.Booking{ID: "b1", OwnerID: owner.ID, Status: booking.StatusDocumentsPending}
	if err := CanUpload(b, owner); err != nil {
		t.Fatalf("owner in documents_pending: %v", err)
	}
	if err := CanUpload(b, stranger); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("stranger: expected not found, got %v", err)
	}

	b.Status = booking.StatusRejected
	if err := CanUpload(b, owner); !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Fatalf("owner on rejected booking: expected invalid transition, got %v", err)
	}
	if err := CanUpload(b, staff); err != nil {
		t.Fatalf("staff may always upload: %v", err)
	}
}

func TestVerify_RequiresStaff(t *testing.T) {
	s := &Service{}
	_, err := s.Verify(context.Background(), "b1", "d1", actor.Actor{ID: "student-1", Role: actor.Student{}})
	if !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}
