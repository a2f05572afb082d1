package document

import (
	"fmt"
	"strings"
	"time"

	"venuebooking/internal/booking"
)

type Type string

const (
	TypeDeanApproval   Type = "dean_approval"
	TypeEventProposal  Type = "event_proposal"
	TypeIdentification Type = "identification"
	TypePaymentReceipt Type = "payment_receipt"
	TypeOther          Type = "other"
)

func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeDeanApproval, TypeEventProposal, TypeIdentification, TypePaymentReceipt, TypeOther:
		return t, nil
	case "":
		return TypeOther, nil
	default:
		return "", fmt.Errorf("unknown document type: %s", s)
	}
}

// Document is a reference to an uploaded file. Storage lives elsewhere.
type Document struct {
	ID          string     `json:"id"`
	BookingID   string     `json:"bookingId"`
	UploadedBy  string     `json:"uploadedBy"`
	FileURL     string     `json:"fileUrl"`
	FileName    string     `json:"fileName"`
	Type        Type       `json:"documentType"`
	Description string     `json:"description,omitempty"`
	IsVerified  bool       `json:"isVerified"`
	VerifiedBy  *string    `json:"verifiedBy,omitempty"`
	VerifiedAt  *time.Time `json:"verifiedAt,omitempty"`
	UploadedAt  time.Time  `json:"uploadedAt"`
}

// Gate is the booking-level consequence of a verification.
type Gate struct {
	Transition bool
	To         booking.Status
}

// Evaluate fires only from documents_pending, and only once nothing is left
// unverified.
func Evaluate(status booking.Status, allVerified bool) Gate {
	if allVerified && status == booking.StatusDocumentsPending {
		return Gate{Transition: true, To: booking.StatusPending}
	}
	return Gate{}
}

// ownerUploadStatuses are the statuses in which a booking owner may attach
// documents.
var ownerUploadStatuses = map[booking.Status]bool{
	booking.StatusPending:          true,
	booking.StatusApproved:         true,
	booking.StatusDocumentsPending: true,
}
