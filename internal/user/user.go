package user

import (
	"time"

	"venuebooking/internal/actor"
)

type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Role       string    `json:"role"`
	Department string    `json:"department,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (u *User) Actor() (actor.Actor, error) {
	return actor.New(u.ID, u.Email, u.Role, u.Department)
}
