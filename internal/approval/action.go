package approval

import (
	"strings"

	"venuebooking/internal/apperr"
)

type Action string

const (
	ActionReview           Action = "review"
	ActionApprove          Action = "approve"
	ActionReject           Action = "reject"
	ActionRequestDocuments Action = "request_documents"
)

// ParseAction accepts the canonical names plus the hyphenated URL spelling
// of request_documents.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionReview, ActionApprove, ActionReject, ActionRequestDocuments:
		return a, nil
	case "request-documents":
		return ActionRequestDocuments, nil
	default:
		return "", apperr.InvalidAction(s)
	}
}
