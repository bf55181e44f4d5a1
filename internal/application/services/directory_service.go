package services

import (
	"context"
	"strings"
	"time"

	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/hospitalmanagement/backend/pkg/errors"
)

// DirectoryService manages the doctor directory.
type DirectoryService struct {
	repo repositories.DoctorRepository
}

// NewDirectoryService creates a new directory service.
func NewDirectoryService(repo repositories.DoctorRepository) *DirectoryService {
	return &DirectoryService{repo: repo}
}

// RegisterDoctor registers the caller for a department. Only accounts with
// the Doctor role may register, and a doctor cannot register twice for the
// same department.
func (s *DirectoryService) RegisterDoctor(ctx context.Context, caller *entities.Session, name, email, department string) (*entities.Doctor, error) {
	if caller == nil || caller.Role != entities.RoleDoctor {
		return nil, apperrors.NewForbiddenError("doctor role required")
	}

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	department = strings.TrimSpace(department)

	if name == "" || email == "" || department == "" {
		return nil, apperrors.NewValidationError("name, email and department are required")
	}

	exists, err := s.repo.ExistsByEmailAndDepartment(ctx, email, department)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("already registered for this department")
	}

	doctor := &entities.Doctor{
		Name:       name,
		Email:      email,
		Department: department,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, err
	}

	return doctor, nil
}

// ListDoctors returns all doctor registrations, used to populate department
// choices when booking.
func (s *DirectoryService) ListDoctors(ctx context.Context) ([]*entities.Doctor, error) {
	return s.repo.List(ctx)
}
