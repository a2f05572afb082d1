package booking

import "fmt"

type Status string

const (
	StatusPending          Status = "pending"
	StatusUnderReview      Status = "under_review"
	StatusApproved         Status = "approved"
	StatusRejected         Status = "rejected"
	StatusCancelled        Status = "cancelled"
	StatusCompleted        Status = "completed"
	StatusPaymentPending   Status = "payment_pending"
	StatusDocumentsPending Status = "documents_pending"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected,
		StatusCancelled, StatusCompleted, StatusPaymentPending, StatusDocumentsPending:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

// IsTerminal reports whether no further workflow action may move the booking.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusRejected:
		return true
	default:
		return false
	}
}

// QueueStatuses are the statuses a booking waits in for a moderator.
var QueueStatuses = []Status{StatusPending, StatusUnderReview, StatusDocumentsPending}

func IsQueueStatus(s Status) bool {
	for _, q := range QueueStatuses {
		if q == s {
			return true
		}
	}
	return false
}
