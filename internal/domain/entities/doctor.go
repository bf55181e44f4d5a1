package entities

import (
	"time"
)

// Doctor represents a doctor registration in the directory. A doctor may
// register for several departments, but only once per department.
type Doctor struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Department string    `json:"department" db:"department"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
