package entities

import (
	"time"
)

// Booking represents a pending appointment request. It exists only while
// pending: it is removed when deleted explicitly or promoted into an
// ArchivedBooking by the attend transition.
type Booking struct {
	ID           int64     `json:"id" db:"id"`
	PatientEmail string    `json:"patient_email" db:"patient_email"`
	PatientName  string    `json:"patient_name" db:"patient_name"`
	Gender       string    `json:"gender" db:"gender"`
	Slot         string    `json:"slot" db:"slot"`
	Disease      string    `json:"disease" db:"disease"`
	Date         string    `json:"date" db:"date"`
	Time         string    `json:"time" db:"time"`
	Department   string    `json:"department" db:"department"`
	PhoneNumber  string    `json:"phone_number" db:"phone_number"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
