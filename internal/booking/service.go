package booking

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"venuebooking/internal/actor"
	"venuebooking/internal/apperr"
	"venuebooking/internal/audit"
	"venuebooking/internal/events"
	"venuebooking/internal/metrics"
	"venuebooking/internal/notification"
	"venuebooking/internal/payment"
	"venuebooking/internal/venue"
	"venuebooking/pkg/db"
)

type Service struct {
	DB      *pgxpool.Pool
	Events  events.Publisher
	Metrics *metrics.Metrics
	Now     func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Derive freezes the venue routing onto a new booking. It is only called at
// creation; later venue changes never reach existing bookings.
func Derive(v *venue.Venue, in CreateInput) (*Booking, error) {
	if !v.IsAvailable {
		return nil, apperr.Validation("VENUE_UNAVAILABLE", "venue is not available for booking")
	}
	if v.Capacity > 0 && in.AttendeesCount > v.Capacity {
		return nil, apperr.Validation("CAPACITY_EXCEEDED", "attendees count exceeds venue capacity")
	}

	req := venue.Route(v.HandledBy)
	amount := decimal.Zero
	if req.PaymentRequired {
		q, err := payment.Quote(v.HourlyRate, in.StartTime, in.EndTime, payment.DefaultCurrencyScale)
		if err != nil {
			return nil, err
		}
		amount = q
	}

	return &Booking{
		VenueID:           v.ID,
		VenueName:         v.Name,
		HandledBy:         v.HandledBy,
		Title:             in.Title,
		Description:       in.Description,
		StartTime:         in.StartTime,
		EndTime:           in.EndTime,
		AttendeesCount:    in.AttendeesCount,
		Status:            StatusPending,
		PaymentRequired:   req.PaymentRequired,
		PaymentAmount:     amount,
		DocumentsRequired: req.DocumentsRequired,
		RequiresApproval:  req.RequiresApproval,
	}, nil
}

func (s *Service) Create(ctx context.Context, a actor.Actor, in CreateInput) (*Booking, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.now()

	var b *Booking
	err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		v, err := venue.GetShared(ctx, tx, in.VenueID)
		if err != nil {
			if db.IsNoRows(err) {
				return apperr.NotFound("venue")
			}
			return err
		}

		b, err = Derive(v, in)
		if err != nil {
			return err
		}
		b.OwnerID = a.ID

		code, err := NextCode(ctx, tx)
		if err != nil {
			return err
		}
		b.BookingCode = code

		if err := Insert(ctx, tx, b); err != nil {
			if db.IsUniqueViolation(err) {
				return apperr.Conflict("BOOKING_CODE_TAKEN", "booking code already issued")
			}
			return err
		}

		if err := audit.Insert(ctx, tx, &b.ID, audit.ActionBookingCreated, a.ID, map[string]any{
			"bookingCode":       b.BookingCode,
			"handledBy":         b.HandledBy,
			"paymentRequired":   b.PaymentRequired,
			"documentsRequired": b.DocumentsRequired,
			"requiresApproval":  b.RequiresApproval,
		}); err != nil {
			return err
		}

		if b.RequiresApproval {
			title, msg := notification.ApprovalRequestMessage(b.BookingCode, b.Title, b.VenueName)
			if _, err := notification.InsertForDepartment(ctx, tx, b.HandledBy, notification.TypeApprovalRequest, title, msg, &b.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.Events, events.Event{
		Type:        events.TypeBookingCreated,
		BookingID:   b.ID,
		BookingCode: b.BookingCode,
		To:          string(b.Status),
		ActorID:     a.ID,
		OccurredAt:  now,
	})
	s.Metrics.Created(b.HandledBy)
	return b, nil
}

// Update edits the details of a pending booking. The venue is re-read only to
// check capacity; routing flags and the quoted amount were fixed at creation
// and are not recomputed.
func (s *Service) Update(ctx context.Context, id string, a actor.Actor, in UpdateInput) (*Booking, error) {
	var b *Booking
	err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		var err error
		b, err = GetForUpdate(ctx, tx, id)
		if err != nil {
			if db.IsNoRows(err) {
				return apperr.NotFound("booking")
			}
			return err
		}
		if err := CanEdit(b, a); err != nil {
			return err
		}

		details := in.Apply(b)
		if err := details.Validate(); err != nil {
			return err
		}
		if details.AttendeesCount != b.AttendeesCount {
			v, err := venue.GetShared(ctx, tx, b.VenueID)
			if err != nil {
				return err
			}
			if v.Capacity > 0 && details.AttendeesCount > v.Capacity {
				return apperr.Validation("CAPACITY_EXCEEDED", "attendees count exceeds venue capacity")
			}
		}

		b.UpdatedAt, err = UpdateDetails(ctx, tx, b.ID, details)
		if err != nil {
			return err
		}
		b.Title = details.Title
		b.Description = details.Description
		b.StartTime = details.StartTime
		b.EndTime = details.EndTime
		b.AttendeesCount = details.AttendeesCount

		return audit.Insert(ctx, tx, &b.ID, audit.ActionBookingUpdated, a.ID, map[string]any{
			"title":          b.Title,
			"startTime":      b.StartTime,
			"endTime":        b.EndTime,
			"attendeesCount": b.AttendeesCount,
		})
	})
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.Events, events.Event{
		Type:        events.TypeBookingUpdated,
		BookingID:   b.ID,
		BookingCode: b.BookingCode,
		To:          string(b.Status),
		ActorID:     a.ID,
		OccurredAt:  s.now(),
	})
	return b, nil
}
