package booking

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"venuebooking/internal/actor"
	"venuebooking/internal/apperr"
)

type Booking struct {
	ID                string          `json:"id"`
	BookingCode       string          `json:"bookingCode"`
	OwnerID           string          `json:"ownerId"`
	VenueID           string          `json:"venueId"`
	VenueName         string          `json:"venueName"`
	HandledBy         string          `json:"handledBy"`
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	StartTime         time.Time       `json:"startTime"`
	EndTime           time.Time       `json:"endTime"`
	AttendeesCount    int             `json:"attendeesCount"`
	Status            Status          `json:"status"`
	PaymentRequired   bool            `json:"paymentRequired"`
	PaymentAmount     decimal.Decimal `json:"paymentAmount"`
	PaymentCompleted  bool            `json:"paymentCompleted"`
	PaymentReference  *string         `json:"paymentReference,omitempty"`
	DocumentsRequired bool            `json:"documentsRequired"`
	DocumentsVerified bool            `json:"documentsVerified"`
	RequiresApproval  bool            `json:"requiresApproval"`
	ApprovedBy        *string         `json:"approvedBy,omitempty"`
	ApprovalDate      *time.Time      `json:"approvalDate,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

type CreateInput struct {
	VenueID        string
	Title          string
	Description    string
	StartTime      time.Time
	EndTime        time.Time
	AttendeesCount int
}

// Validate checks the request-level rules that do not need the venue.
func (in CreateInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return apperr.Validation("TITLE_REQUIRED", "title is required")
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return apperr.Validation("TIME_WINDOW_INVALID", "start and end time are required")
	}
	if !in.StartTime.Before(in.EndTime) {
		return apperr.Validation("TIME_WINDOW_INVALID", "start time must be before end time")
	}
	if in.AttendeesCount <= 0 {
		return apperr.Validation("ATTENDEES_INVALID", "attendees count must be > 0")
	}
	return nil
}

// UpdateInput carries an owner's edit. Nil fields keep their current value.
// Routing flags, payment and status are not editable.
type UpdateInput struct {
	Title          *string
	Description    *string
	StartTime      *time.Time
	EndTime        *time.Time
	AttendeesCount *int
}

// Apply returns b's details with the edit laid over them, ready for Validate.
func (in UpdateInput) Apply(b *Booking) CreateInput {
	out := CreateInput{
		VenueID:        b.VenueID,
		Title:          b.Title,
		Description:    b.Description,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		AttendeesCount: b.AttendeesCount,
	}
	if in.Title != nil {
		out.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		out.Description = *in.Description
	}
	if in.StartTime != nil {
		out.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		out.EndTime = *in.EndTime
	}
	if in.AttendeesCount != nil {
		out.AttendeesCount = *in.AttendeesCount
	}
	return out
}

// CanEdit allows the owner, staff and admins to change a booking's details
// while it is still pending. Strangers see not found.
func CanEdit(b *Booking, a actor.Actor) error {
	if err := actor.CanView(a, b.OwnerID); err != nil {
		return err
	}
	if b.Status != StatusPending {
		return apperr.Validation("BOOKING_NOT_EDITABLE", "only pending bookings can be edited")
	}
	return nil
}
