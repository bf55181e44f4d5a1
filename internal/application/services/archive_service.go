package services

import (
	"context"

	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/hospitalmanagement/backend/pkg/errors"
)

// ArchiveService serves completed bookings and their feedback.
type ArchiveService struct {
	repo repositories.ArchiveRepository
}

// NewArchiveService creates a new archive service.
func NewArchiveService(repo repositories.ArchiveRepository) *ArchiveService {
	return &ArchiveService{repo: repo}
}

// ListCompleted returns archived bookings filtered by the caller's role:
// patients see their own records (matched on the email captured at attend
// time), doctors see the bookings they attended, anything else sees all.
func (s *ArchiveService) ListCompleted(ctx context.Context, caller *entities.Session) ([]*entities.ArchivedBooking, error) {
	if caller == nil {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}

	switch caller.Role {
	case entities.RolePatient:
		return s.repo.ListByPatientEmail(ctx, caller.Email)
	case entities.RoleDoctor:
		return s.repo.ListByDoctor(ctx, caller.Username)
	default:
		return s.repo.List(ctx)
	}
}

// SubmitFeedback overwrites the feedback of an archived booking. Last write
// wins; no history is kept. Any authenticated caller may submit, matching
// the original behavior (a known policy gap).
func (s *ArchiveService) SubmitFeedback(ctx context.Context, id int64, feedback string) error {
	return s.repo.SetFeedback(ctx, id, feedback)
}

// ListForDoctor returns the caller's attended bookings including feedback,
// backing the doctor profile view. Doctor role required.
func (s *ArchiveService) ListForDoctor(ctx context.Context, caller *entities.Session) ([]*entities.ArchivedBooking, error) {
	if caller == nil || caller.Role != entities.RoleDoctor {
		return nil, apperrors.NewForbiddenError("doctor role required")
	}
	return s.repo.ListByDoctor(ctx, caller.Username)
}
