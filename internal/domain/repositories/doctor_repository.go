package repositories

import (
	"context"

	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
)

// DoctorRepository defines the interface for doctor directory operations
type DoctorRepository interface {
	// Create creates a new doctor registration
	Create(ctx context.Context, doctor *entities.Doctor) error

	// List retrieves all doctor registrations
	List(ctx context.Context) ([]*entities.Doctor, error)

	// ExistsByEmailAndDepartment reports whether the (email, department)
	// pair is already registered
	ExistsByEmailAndDepartment(ctx context.Context, email, department string) (bool, error)
}
