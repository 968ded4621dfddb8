package entity

import (
	"time"
)

// Role is the closed set of back office roles.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User is an operator of the back office.
// Password always holds the bcrypt hash, never the plain text.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) GetID() int64 { return u.ID }
