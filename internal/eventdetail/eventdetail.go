package eventdetail

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"venuebooking/internal/actor"
	"venuebooking/internal/apperr"
	"venuebooking/internal/booking"
)

// EventDetails is the optional planning sheet attached to a booking.
type EventDetails struct {
	ID               string           `json:"id"`
	BookingID        string           `json:"bookingId"`
	EventType        string           `json:"eventType"`
	Purpose          string           `json:"purpose"`
	EquipmentNeeded  string           `json:"equipmentNeeded"`
	SpecialRequests  string           `json:"specialRequests"`
	SetupTime        *time.Time       `json:"setupTime,omitempty"`
	TeardownTime     *time.Time       `json:"teardownTime,omitempty"`
	Budget           *decimal.Decimal `json:"budget,omitempty"`
	OrganizerName    string           `json:"organizerName"`
	OrganizerContact string           `json:"organizerContact"`
	EventSchedule    string           `json:"eventSchedule"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// Input is a create or partial update. Nil fields are left as they are.
type Input struct {
	EventType        *string
	Purpose          *string
	EquipmentNeeded  *string
	SpecialRequests  *string
	SetupTime        *time.Time
	TeardownTime     *time.Time
	Budget           *decimal.Decimal
	OrganizerName    *string
	OrganizerContact *string
	EventSchedule    *string
}

// Apply lays in over d and checks the result.
func (in Input) Apply(d EventDetails) (EventDetails, error) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setStr(&d.EventType, in.EventType)
	setStr(&d.Purpose, in.Purpose)
	setStr(&d.EquipmentNeeded, in.EquipmentNeeded)
	setStr(&d.SpecialRequests, in.SpecialRequests)
	setStr(&d.OrganizerName, in.OrganizerName)
	setStr(&d.OrganizerContact, in.OrganizerContact)
	setStr(&d.EventSchedule, in.EventSchedule)
	if in.SetupTime != nil {
		d.SetupTime = in.SetupTime
	}
	if in.TeardownTime != nil {
		d.TeardownTime = in.TeardownTime
	}
	if in.Budget != nil {
		d.Budget = in.Budget
	}

	if d.Budget != nil && d.Budget.IsNegative() {
		return d, apperr.Validation("BUDGET_INVALID", "budget must not be negative")
	}
	if d.SetupTime != nil && d.TeardownTime != nil && !d.SetupTime.Before(*d.TeardownTime) {
		return d, apperr.Validation("SETUP_WINDOW_INVALID", "setup time must be before teardown time")
	}
	return d, nil
}

// CanManage lets staff and admins edit event details at any time and the
// owner while the booking is pending or approved.
func CanManage(b *booking.Booking, a actor.Actor) error {
	if a.IsStaffOrAdmin() {
		return nil
	}
	if err := actor.CanView(a, b.OwnerID); err != nil {
		return err
	}
	if b.Status != booking.StatusPending && b.Status != booking.StatusApproved {
		return apperr.PermissionDenied("event details cannot be changed while the booking is " + string(b.Status))
	}
	return nil
}
