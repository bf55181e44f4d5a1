package services

import (
	"context"
	"strings"

	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/repositories"
	"github.com/zatekoja/hospitalmanagement/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/hospitalmanagement/backend/pkg/errors"
)

// BookingService is the operational core: it owns the booking ledger and the
// audit trail around it. Creation, deletion and attendance are audited;
// edits deliberately are not.
type BookingService struct {
	repo      repositories.BookingRepository
	auditRepo repositories.AuditRepository
	metrics   *observability.Metrics
}

// NewBookingService creates a new booking service. metrics may be nil when
// observability is disabled.
func NewBookingService(repo repositories.BookingRepository, auditRepo repositories.AuditRepository, metrics *observability.Metrics) *BookingService {
	return &BookingService{
		repo:      repo,
		auditRepo: auditRepo,
		metrics:   metrics,
	}
}

// CreateBooking inserts a pending booking. The INSERT audit entry commits in
// the same transaction, so a successfully returned booking is always visible
// together with its audit record.
func (s *BookingService) CreateBooking(ctx context.Context, booking *entities.Booking) error {
	normalizeBooking(booking)
	if err := validateBooking(booking); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return err
	}

	observability.RecordLedgerAction(ctx, s.metrics, string(entities.AuditActionInsert))
	return nil
}

// GetBooking retrieves a pending booking by id.
func (s *BookingService) GetBooking(ctx context.Context, id int64) (*entities.Booking, error) {
	return s.repo.GetByID(ctx, id)
}

// EditBooking overwrites all mutable fields of a pending booking. The id is
// immutable and edits produce no audit entry.
func (s *BookingService) EditBooking(ctx context.Context, id int64, fields *entities.Booking) error {
	normalizeBooking(fields)
	if err := validateBooking(fields); err != nil {
		return err
	}

	// Ensure the target exists before overwriting; keeps the id immutable.
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	fields.ID = existing.ID
	fields.CreatedAt = existing.CreatedAt
	return s.repo.Update(ctx, fields)
}

// DeleteBooking removes a pending booking, recording the DELETE audit entry
// in the same transaction.
func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	observability.RecordLedgerAction(ctx, s.metrics, string(entities.AuditActionDelete))
	return nil
}

// ListBookings returns all pending bookings in storage order.
func (s *BookingService) ListBookings(ctx context.Context) ([]*entities.Booking, error) {
	return s.repo.List(ctx)
}

// SearchBookings returns pending bookings whose department contains the
// given substring, case-insensitively. The search term is required.
func (s *BookingService) SearchBookings(ctx context.Context, department string) ([]*entities.Booking, error) {
	department = strings.TrimSpace(department)
	if department == "" {
		return nil, apperrors.NewValidationError("search term is required")
	}
	return s.repo.SearchByDepartment(ctx, department)
}

// Attend performs the one-way pending → attended transition: the booking is
// archived under the acting doctor's username, an ATTENDED audit entry is
// recorded and the booking is removed, atomically. Doctor role required.
func (s *BookingService) Attend(ctx context.Context, caller *entities.Session, id int64) (*entities.ArchivedBooking, error) {
	if caller == nil || caller.Role != entities.RoleDoctor {
		return nil, apperrors.NewForbiddenError("doctor role required")
	}

	archived, err := s.repo.Attend(ctx, id, caller.Username)
	if err != nil {
		return nil, err
	}

	observability.RecordLedgerAction(ctx, s.metrics, string(entities.AuditActionAttended))
	return archived, nil
}

// ListAudit returns all audit entries, newest first.
func (s *BookingService) ListAudit(ctx context.Context) ([]*entities.AuditEntry, error) {
	return s.auditRepo.List(ctx)
}

func normalizeBooking(booking *entities.Booking) {
	booking.PatientEmail = strings.ToLower(strings.TrimSpace(booking.PatientEmail))
	booking.PatientName = strings.TrimSpace(booking.PatientName)
	booking.Gender = strings.TrimSpace(booking.Gender)
	booking.Slot = strings.TrimSpace(booking.Slot)
	booking.Disease = strings.TrimSpace(booking.Disease)
	booking.Date = strings.TrimSpace(booking.Date)
	booking.Time = strings.TrimSpace(booking.Time)
	booking.Department = strings.TrimSpace(booking.Department)
	booking.PhoneNumber = strings.TrimSpace(booking.PhoneNumber)
}

func validateBooking(booking *entities.Booking) error {
	required := map[string]string{
		"patient_email": booking.PatientEmail,
		"patient_name":  booking.PatientName,
		"gender":        booking.Gender,
		"slot":          booking.Slot,
		"disease":       booking.Disease,
		"date":          booking.Date,
		"time":          booking.Time,
		"department":    booking.Department,
		"phone_number":  booking.PhoneNumber,
	}
	for field, value := range required {
		if value == "" {
			return apperrors.NewValidationError(field + " is required")
		}
	}
	return nil
}
