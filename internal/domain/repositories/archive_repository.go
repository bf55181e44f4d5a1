package repositories

import (
	"context"

	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
)

// ArchiveRepository defines the interface for completed booking operations
type ArchiveRepository interface {
	// GetByID retrieves an archived booking by ID
	GetByID(ctx context.Context, id int64) (*entities.ArchivedBooking, error)

	// List retrieves all archived bookings
	List(ctx context.Context) ([]*entities.ArchivedBooking, error)

	// ListByDoctor retrieves archived bookings attended by the doctor
	ListByDoctor(ctx context.Context, doctorUsername string) ([]*entities.ArchivedBooking, error)

	// ListByPatientEmail retrieves archived bookings for the patient
	ListByPatientEmail(ctx context.Context, email string) ([]*entities.ArchivedBooking, error)

	// SetFeedback overwrites the feedback text of an archived booking
	SetFeedback(ctx context.Context, id int64, feedback string) error
}
