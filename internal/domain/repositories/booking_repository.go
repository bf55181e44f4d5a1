package repositories

import (
	"context"

	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
)

// BookingRepository defines the interface for booking ledger operations.
// Create, Delete and Attend are compound writes: the booking mutation and
// its audit entry commit in one transaction, so readers never observe a
// ledger state that disagrees with the audit log.
type BookingRepository interface {
	// Create inserts a new booking together with its INSERT audit entry
	Create(ctx context.Context, booking *entities.Booking) error

	// GetByID retrieves a booking by ID
	GetByID(ctx context.Context, id int64) (*entities.Booking, error)

	// Update overwrites the mutable fields of a booking in place. The id is
	// immutable and no audit entry is produced.
	Update(ctx context.Context, booking *entities.Booking) error

	// Delete records a DELETE audit entry (capturing the booking's email and
	// name before removal) and removes the booking
	Delete(ctx context.Context, id int64) error

	// List retrieves all pending bookings in storage order
	List(ctx context.Context) ([]*entities.Booking, error)

	// SearchByDepartment retrieves pending bookings whose department
	// contains the substring, case-insensitively
	SearchByDepartment(ctx context.Context, department string) ([]*entities.Booking, error)

	// Attend archives the booking under the acting doctor's username,
	// records an ATTENDED audit entry and removes the booking, all in one
	// transaction. The transition is one-way.
	Attend(ctx context.Context, id int64, doctorUsername string) (*entities.ArchivedBooking, error)
}

// AuditRepository is the read side of the audit log. Audit rows are written
// only inside booking ledger transactions; there is no write API.
type AuditRepository interface {
	// List retrieves all audit entries, newest first
	List(ctx context.Context) ([]*entities.AuditEntry, error)

	// ListByBookingID retrieves audit entries for a booking, oldest first
	ListByBookingID(ctx context.Context, bookingID int64) ([]*entities.AuditEntry, error)
}
