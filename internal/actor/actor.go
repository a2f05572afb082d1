package actor

import (
	"fmt"
	"strings"

	"venuebooking/internal/apperr"
)

// Role is a closed set: Student, Staff or Admin.
type Role interface {
	Label() string
	sealed()
}

type Student struct{}

type Staff struct {
	Department string
}

type Admin struct{}

func (Student) Label() string { return "student" }
func (Staff) Label() string   { return "staff" }
func (Admin) Label() string   { return "admin" }

func (Student) sealed() {}
func (Staff) sealed()   {}
func (Admin) sealed()   {}

// Actor is the authenticated principal behind a request.
type Actor struct {
	ID    string
	Email string
	Role  Role
}

// New builds an Actor from stored user attributes.
func New(id, email, role, department string) (Actor, error) {
	var r Role
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "student":
		r = Student{}
	case "staff":
		dept := strings.ToLower(strings.TrimSpace(department))
		if dept == "" {
			return Actor{}, fmt.Errorf("staff user %s has no department", id)
		}
		r = Staff{Department: dept}
	case "admin":
		r = Admin{}
	default:
		return Actor{}, fmt.Errorf("unknown role %q", role)
	}
	return Actor{ID: id, Email: email, Role: r}, nil
}

func (a Actor) RoleLabel() string {
	if a.Role == nil {
		return ""
	}
	return a.Role.Label()
}

func (a Actor) IsAdmin() bool {
	_, ok := a.Role.(Admin)
	return ok
}

func (a Actor) IsStaffOrAdmin() bool {
	switch a.Role.(type) {
	case Staff, Admin:
		return true
	default:
		return false
	}
}

// Department returns the staff department, or "" for other roles.
func (a Actor) Department() string {
	if s, ok := a.Role.(Staff); ok {
		return s.Department
	}
	return ""
}

// CanModerate reports whether a may act on bookings for venues handled by
// handledBy. Admins always may; staff only for their own department.
func CanModerate(a Actor, handledBy string) error {
	switch r := a.Role.(type) {
	case Admin:
		return nil
	case Staff:
		if r.Department == strings.ToLower(strings.TrimSpace(handledBy)) {
			return nil
		}
		return apperr.PermissionDenied("staff department does not handle this venue")
	default:
		return apperr.PermissionDenied("only staff or admin may act on bookings")
	}
}

// CanCancel allows the owner, staff and admins.
func CanCancel(a Actor, ownerID string) error {
	if a.IsStaffOrAdmin() || a.ID == ownerID {
		return nil
	}
	return apperr.PermissionDenied("only the owner or staff may cancel this booking")
}

// CanView allows the owner, staff and admins to read a booking.
func CanView(a Actor, ownerID string) error {
	if a.IsStaffOrAdmin() || a.ID == ownerID {
		return nil
	}
	return apperr.NotFound("booking")
}
