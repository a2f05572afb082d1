package approval

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"venuebooking/internal/actor"
	"venuebooking/internal/apperr"
	"venuebooking/internal/audit"
	"venuebooking/internal/booking"
	"venuebooking/internal/events"
	"venuebooking/internal/feedback"
	"venuebooking/internal/history"
	"venuebooking/internal/metrics"
	"venuebooking/internal/notification"
	"venuebooking/pkg/db"
)

type Service struct {
	DB      *pgxpool.Pool
	Events  events.Publisher
	Metrics *metrics.Metrics
	Now     func() time.Time
}

type Result struct {
	Action    string         `json:"action"`
	Status    booking.Status `json:"bookingStatus"`
	HistoryID string         `json:"historyId"`
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ApplyAction moves an approval-routed booking according to action. All
// writes share one transaction; the event goes out only after commit.
func (s *Service) ApplyAction(ctx context.Context, bookingID, rawAction string, a actor.Actor, comment string) (*Result, error) {
	action, err := ParseAction(rawAction)
	if err != nil {
		s.Metrics.Transition("unknown", outcomeLabel(err))
		return nil, err
	}

	return s.run(ctx, bookingID, string(action), a, func(b *booking.Booking, now time.Time) (Outcome, error) {
		if !b.RequiresApproval {
			return Outcome{}, apperr.NotFound("booking")
		}
		return Decide(b, action, a, comment, now)
	})
}

// Cancel is available to the owner, staff and admins until the booking
// reaches a terminal status.
func (s *Service) Cancel(ctx context.Context, bookingID string, a actor.Actor) (*Result, error) {
	return s.run(ctx, bookingID, "cancel", a, func(b *booking.Booking, _ time.Time) (Outcome, error) {
		return DecideCancel(b, a)
	})
}

func (s *Service) Complete(ctx context.Context, bookingID string, a actor.Actor) (*Result, error) {
	return s.run(ctx, bookingID, "complete", a, func(b *booking.Booking, _ time.Time) (Outcome, error) {
		return DecideComplete(b, a)
	})
}

func (s *Service) run(ctx context.Context, bookingID, label string, a actor.Actor, decide func(*booking.Booking, time.Time) (Outcome, error)) (*Result, error) {
	now := s.now()

	var (
		b         *booking.Booking
		out       Outcome
		historyID string
	)
	err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		var err error
		b, err = booking.GetForUpdate(ctx, tx, bookingID)
		if err != nil {
			if db.IsNoRows(err) {
				return apperr.NotFound("booking")
			}
			return err
		}

		out, err = decide(b, now)
		if err != nil {
			return err
		}

		historyID, err = write(ctx, tx, b, out, a)
		return err
	})
	if err != nil {
		s.Metrics.Transition(label, outcomeLabel(err))
		return nil, err
	}

	events.Emit(ctx, s.Events, events.Event{
		Type:        events.TypeBookingStatusChanged,
		BookingID:   b.ID,
		BookingCode: b.BookingCode,
		From:        string(out.From),
		To:          string(out.To),
		ActorID:     a.ID,
		OccurredAt:  now,
	})
	s.Metrics.Transition(label, "ok")

	return &Result{Action: label, Status: out.To, HistoryID: historyID}, nil
}

// write persists an outcome. The caller holds the booking row lock.
func write(ctx context.Context, tx pgx.Tx, b *booking.Booking, out Outcome, a actor.Actor) (string, error) {
	if err := booking.UpdateStatus(ctx, tx, b.ID, out.To, out.ApprovedBy, out.ApprovalDate); err != nil {
		return "", err
	}

	changedBy := a.ID
	historyID, err := history.Insert(ctx, tx, history.Entry{
		BookingID:      b.ID,
		PreviousStatus: string(out.From),
		NewStatus:      string(out.To),
		ChangedBy:      &changedBy,
		Comment:        out.Comment,
		HandledByRole:  out.HandledByRole,
	})
	if err != nil {
		return "", err
	}

	if out.Feedback != nil {
		if _, err := feedback.Insert(ctx, tx, *out.Feedback); err != nil {
			return "", err
		}
	}

	if b.OwnerID != a.ID {
		title, msg := notification.StatusMessage(b.BookingCode, b.Title, string(out.To), out.Comment)
		if err := notification.Insert(ctx, tx, b.OwnerID, notification.TypeBookingStatus, title, msg, &b.ID); err != nil {
			return "", err
		}
	}

	if err := audit.Insert(ctx, tx, &b.ID, audit.ActionStatusChanged, a.ID, map[string]any{
		"from": out.From, "to": out.To, "historyId": historyID,
	}); err != nil {
		return "", err
	}
	return historyID, nil
}

func outcomeLabel(err error) string {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae.Kind.String()
	}
	return "error"
}
