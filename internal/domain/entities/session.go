package entities

import (
	"time"
)

// Session is the authenticated identity attached to an opaque token. All
// role checks downstream of login are evaluated against it.
type Session struct {
	Token     string    `json:"token"`
	AccountID int64     `json:"account_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
