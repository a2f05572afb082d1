package approval

import (
	"strings"
	"time"

	"venuebooking/internal/actor"
	"venuebooking/internal/apperr"
	"venuebooking/internal/booking"
	"venuebooking/internal/feedback"
)

const (
	CommentCancelled = "Booking cancelled by user"
	CommentCompleted = "Booking completed"
)

// Outcome is everything a transition writes, computed before any write.
type Outcome struct {
	From          booking.Status
	To            booking.Status
	ApprovedBy    *string
	ApprovalDate  *time.Time
	Comment       string
	HandledByRole string
	Feedback      *feedback.Draft
}

var nextStatus = map[Action]booking.Status{
	ActionReview:           booking.StatusUnderReview,
	ActionApprove:          booking.StatusApproved,
	ActionReject:           booking.StatusRejected,
	ActionRequestDocuments: booking.StatusDocumentsPending,
}

func feedbackTypeFor(action Action) feedback.Type {
	switch action {
	case ActionApprove:
		return feedback.TypeApproval
	case ActionReject:
		return feedback.TypeRejection
	default:
		return feedback.TypeRequirement
	}
}

// Decide applies the moderation rules to b without touching storage.
// The permission guard runs before the terminal-state guard.
func Decide(b *booking.Booking, action Action, a actor.Actor, comment string, now time.Time) (Outcome, error) {
	to, ok := nextStatus[action]
	if !ok {
		return Outcome{}, apperr.InvalidAction(string(action))
	}
	if err := actor.CanModerate(a, b.HandledBy); err != nil {
		return Outcome{}, err
	}
	if b.Status.IsTerminal() {
		return Outcome{}, apperr.InvalidTransition("booking is " + string(b.Status) + " and cannot change")
	}

	out := Outcome{
		From:          b.Status,
		To:            to,
		Comment:       comment,
		HandledByRole: a.RoleLabel(),
	}
	if action == ActionApprove {
		by := a.ID
		at := now
		out.ApprovedBy = &by
		out.ApprovalDate = &at
	}
	if strings.TrimSpace(comment) != "" {
		out.Feedback = &feedback.Draft{
			BookingID:  b.ID,
			StaffID:    a.ID,
			Content:    comment,
			IsInternal: false,
			Type:       feedbackTypeFor(action),
		}
	}
	return out, nil
}

// DecideCancel lets the owner, staff or an admin cancel a live booking.
// From is read before anything changes.
func DecideCancel(b *booking.Booking, a actor.Actor) (Outcome, error) {
	if err := actor.CanCancel(a, b.OwnerID); err != nil {
		return Outcome{}, err
	}
	if b.Status.IsTerminal() {
		return Outcome{}, apperr.InvalidTransition("booking is " + string(b.Status) + " and cannot be cancelled")
	}
	return Outcome{
		From:          b.Status,
		To:            booking.StatusCancelled,
		Comment:       CommentCancelled,
		HandledByRole: a.RoleLabel(),
	}, nil
}

// DecideComplete closes an approved booking after the event. Admin only.
func DecideComplete(b *booking.Booking, a actor.Actor) (Outcome, error) {
	if !a.IsAdmin() {
		return Outcome{}, apperr.PermissionDenied("only admins may complete bookings")
	}
	if b.Status != booking.StatusApproved {
		return Outcome{}, apperr.InvalidTransition("only approved bookings can be completed")
	}
	return Outcome{
		From:          b.Status,
		To:            booking.StatusCompleted,
		Comment:       CommentCompleted,
		HandledByRole: a.RoleLabel(),
	}, nil
}
