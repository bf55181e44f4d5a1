package entities

import (
	"time"
)

// ArchivedBooking is a booking that has completed the attend transition.
// It is immutable except for the feedback field, which starts empty and is
// overwritten wholesale on each submission.
type ArchivedBooking struct {
	ID           int64     `json:"id" db:"id"`
	BookingID    int64     `json:"booking_id" db:"booking_id"`
	Doctor       string    `json:"doctor" db:"doctor"`
	PatientName  string    `json:"patient_name" db:"patient_name"`
	PatientEmail string    `json:"patient_email" db:"patient_email"`
	Disease      string    `json:"disease" db:"disease"`
	Department   string    `json:"department" db:"department"`
	Date         string    `json:"date" db:"date"`
	Time         string    `json:"time" db:"time"`
	Feedback     *string   `json:"feedback" db:"feedback"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
