package actor

import (
	"errors"
	"testing"

	"venuebooking/internal/apperr"
)

func TestNew_ParsesRoles(t *testing.T) {
	a, err := New("u1", "s@uni.edu", "Staff", " PPK ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Department() != "ppk" {
		t.Fatalf("expected normalized department, got %q", a.Department())
	}
	if a.RoleLabel() != "staff" {
		t.Fatalf("expected staff label, got %q", a.RoleLabel())
	}

	if _, err := New("u2", "x@uni.edu", "staff", ""); err == nil {
		t.Fatalf("expected error for staff without department")
	}
	if _, err := New("u3", "x@uni.edu", "advisor", ""); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestCanModerate(t *testing.T) {
	cases := []struct {
		name      string
		role      Role
		handledBy string
		allowed   bool
	}{
		{"admin any venue", Admin{}, "sa", true},
		{"staff same department", Staff{Department: "sa"}, "sa", true},
		{"staff case-insensitive venue", Staff{Department: "ppk"}, "PPK", true},
		{"staff other department", Staff{Department: "ppk"}, "sa", false},
		{"student never", Student{}, "sa", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanModerate(Actor{ID: "a", Role: tc.role}, tc.handledBy)
			if tc.allowed && err != nil {
				t.Fatalf("expected allowed, got %v", err)
			}
			if !tc.allowed && !errors.Is(err, apperr.ErrPermissionDenied) {
				t.Fatalf("expected permission denied, got %v", err)
			}
		})
	}
}

func TestCanCancel(t *testing.T) {
	owner := Actor{ID: "owner", Role: Student{}}
	other := Actor{ID: "other", Role: Student{}}
	staff := Actor{ID: "staff", Role: Staff{Department: "sa"}}

	if err := CanCancel(owner, "owner"); err != nil {
		t.Fatalf("owner should cancel: %v", err)
	}
	if err := CanCancel(staff, "owner"); err != nil {
		t.Fatalf("staff should cancel: %v", err)
	}
	if err := CanCancel(other, "owner"); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}
