package eventdetail

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"venuebooking/internal/actor"
	"venuebooking/internal/apperr"
	"venuebooking/internal/audit"
	"venuebooking/internal/booking"
	"venuebooking/pkg/db"
)

type Service struct {
	DB       *pgxpool.Pool
	Bookings *booking.Repository
	Repo     *Repository
}

// Get returns the details to anyone who may view the booking.
func (s *Service) Get(ctx context.Context, bookingID string, a actor.Actor) (*EventDetails, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, apperr.NotFound("booking")
		}
		return nil, err
	}
	if err := actor.CanView(a, b.OwnerID); err != nil {
		return nil, err
	}

	d, err := s.Repo.GetByBooking(ctx, bookingID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, apperr.NotFound("event details")
		}
		return nil, err
	}
	return d, nil
}

// Create attaches details to a booking that has none yet.
func (s *Service) Create(ctx context.Context, bookingID string, a actor.Actor, in Input) (*EventDetails, error) {
	return s.write(ctx, bookingID, a, func(tx pgx.Tx, b *booking.Booking) (*EventDetails, error) {
		d, err := in.Apply(EventDetails{BookingID: b.ID})
		if err != nil {
			return nil, err
		}
		created, err := Insert(ctx, tx, d)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return nil, apperr.Conflict("EVENT_DETAILS_EXIST", "event details already exist for this booking")
			}
			return nil, err
		}
		return created, nil
	})
}

// Update applies a partial edit to existing details.
func (s *Service) Update(ctx context.Context, bookingID string, a actor.Actor, in Input) (*EventDetails, error) {
	return s.write(ctx, bookingID, a, func(tx pgx.Tx, b *booking.Booking) (*EventDetails, error) {
		cur, err := GetForUpdate(ctx, tx, b.ID)
		if err != nil {
			if db.IsNoRows(err) {
				return nil, apperr.NotFound("event details")
			}
			return nil, err
		}
		d, err := in.Apply(*cur)
		if err != nil {
			return nil, err
		}
		return Update(ctx, tx, d)
	})
}

func (s *Service) write(
	ctx context.Context,
	bookingID string,
	a actor.Actor,
	fn func(tx pgx.Tx, b *booking.Booking) (*EventDetails, error),
) (*EventDetails, error) {
	var out *EventDetails
	err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		b, err := booking.GetForUpdate(ctx, tx, bookingID)
		if err != nil {
			if db.IsNoRows(err) {
				return apperr.NotFound("booking")
			}
			return err
		}
		if err := CanManage(b, a); err != nil {
			return err
		}

		out, err = fn(tx, b)
		if err != nil {
			return err
		}
		return audit.Insert(ctx, tx, &b.ID, audit.ActionEventDetailsSet, a.ID, map[string]any{
			"eventDetailsId": out.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
