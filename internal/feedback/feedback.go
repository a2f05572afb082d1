package feedback

import (
	"fmt"
	"time"
)

type Type string

const (
	TypeGeneral     Type = "general"
	TypeRejection   Type = "rejection"
	TypeApproval    Type = "approval"
	TypeRequirement Type = "requirement"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeGeneral, TypeRejection, TypeApproval, TypeRequirement:
		return Type(s), nil
	case "":
		return TypeGeneral, nil
	default:
		return "", fmt.Errorf("unknown feedback type: %s", s)
	}
}

// Feedback is a staff-authored message on a booking. Append-only.
type Feedback struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"bookingId"`
	StaffID    string    `json:"staffId"`
	Content    string    `json:"content"`
	IsInternal bool      `json:"isInternal"`
	Type       Type      `json:"feedbackType"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Draft is feedback not yet persisted.
type Draft struct {
	BookingID  string
	StaffID    string
	Content    string
	IsInternal bool
	Type       Type
}

// Visible filters out internal entries unless includeInternal is set.
func Visible(items []Feedback, includeInternal bool) []Feedback {
	out := make([]Feedback, 0, len(items))
	for _, f := range items {
		if f.IsInternal && !includeInternal {
			continue
		}
		out = append(out, f)
	}
	return out
}
