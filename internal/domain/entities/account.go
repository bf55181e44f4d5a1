package entities

import (
	"time"
)

// Role determines which operations an account may invoke. It is fixed at
// registration time.
type Role string

const (
	RolePatient Role = "Patient"
	RoleDoctor  Role = "Doctor"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

// Account represents a registered user in the system
type Account struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
