package notification

import (
	"fmt"
	"strings"
	"time"
)

type Type string

const (
	TypeBookingStatus   Type = "booking_status"
	TypeApprovalRequest Type = "approval_request"
	TypeReminder        Type = "reminder"
	TypeSystem          Type = "system"
)

// Notification is a stored record only; nothing is delivered from here.
type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipientId"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Type        Type      `json:"notificationType"`
	BookingID   *string   `json:"bookingId,omitempty"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StatusMessage builds the owner-facing title and message for a transition.
func StatusMessage(bookingCode, title, newStatus, comment string) (string, string) {
	label := strings.ReplaceAll(newStatus, "_", " ")
	subject := fmt.Sprintf("Booking %s is now %s", bookingCode, label)
	msg := fmt.Sprintf("Your booking %q (%s) changed status to %s.", title, bookingCode, label)
	if c := strings.TrimSpace(comment); c != "" {
		msg += " Comment: " + c
	}
	return subject, msg
}

// ApprovalRequestMessage builds the staff-facing message for a new booking
// waiting in the approval queue.
func ApprovalRequestMessage(bookingCode, title, venueName string) (string, string) {
	subject := fmt.Sprintf("Approval requested for %s", bookingCode)
	msg := fmt.Sprintf("Booking %q at %s (%s) is waiting for review.", title, venueName, bookingCode)
	return subject, msg
}
