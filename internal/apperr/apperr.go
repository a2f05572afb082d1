package apperr

import "fmt"

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvalidAction
	KindPermissionDenied
	KindInvalidTransition
	KindValidation
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidAction:
		return "invalid_action"
	case KindPermissionDenied:
		return "permission_denied"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is a workflow failure the caller can branch on.
// errors.Is matches any *Error of the same Kind, so the sentinels below
// work against errors carrying a more specific Code or Message.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrNotFound          = &Error{Kind: KindNotFound, Code: "NOT_FOUND", Message: "not found"}
	ErrInvalidAction     = &Error{Kind: KindInvalidAction, Code: "INVALID_ACTION", Message: "invalid action"}
	ErrPermissionDenied  = &Error{Kind: KindPermissionDenied, Code: "FORBIDDEN", Message: "permission denied"}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition, Code: "INVALID_STATE_TRANSITION", Message: "invalid state transition"}
	ErrValidation        = &Error{Kind: KindValidation, Code: "VALIDATION_FAILED", Message: "validation failed"}
	ErrConflict          = &Error{Kind: KindConflict, Code: "CONFLICT", Message: "conflict"}
)

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Code: "NOT_FOUND", Message: what + " not found"}
}

func InvalidAction(action string) *Error {
	return &Error{Kind: KindInvalidAction, Code: "INVALID_ACTION", Message: fmt.Sprintf("invalid action %q", action)}
}

func PermissionDenied(msg string) *Error {
	return &Error{Kind: KindPermissionDenied, Code: "FORBIDDEN", Message: msg}
}

func InvalidTransition(msg string) *Error {
	return &Error{Kind: KindInvalidTransition, Code: "INVALID_STATE_TRANSITION", Message: msg}
}

func Validation(code, msg string) *Error {
	if code == "" {
		code = "VALIDATION_FAILED"
	}
	return &Error{Kind: KindValidation, Code: code, Message: msg}
}

func Conflict(code, msg string) *Error {
	if code == "" {
		code = "CONFLICT"
	}
	return &Error{Kind: KindConflict, Code: code, Message: msg}
}
