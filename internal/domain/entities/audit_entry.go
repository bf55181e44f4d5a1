package entities

import (
	"time"
)

// AuditAction is the kind of mutating action recorded against the booking
// ledger. Edits are deliberately not audited.
type AuditAction string

const (
	AuditActionInsert   AuditAction = "INSERT"
	AuditActionDelete   AuditAction = "DELETE"
	AuditActionAttended AuditAction = "ATTENDED"
)

// AuditEntry is an append-only record of a mutating ledger action. Entries
// are never updated or deleted; ordering by id is append order. BookingID
// references the booking at the time of the action and is intentionally not
// a foreign key, since the booking may no longer exist.
type AuditEntry struct {
	ID        int64       `json:"id" db:"id"`
	BookingID int64       `json:"booking_id" db:"booking_id"`
	Email     string      `json:"email" db:"email"`
	Name      string      `json:"name" db:"name"`
	Action    AuditAction `json:"action" db:"action"`
	Timestamp time.Time   `json:"timestamp" db:"timestamp"`
}
