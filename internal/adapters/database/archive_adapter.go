package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/repositories"
	"github.com/zatekoja/hospitalmanagement/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/hospitalmanagement/backend/pkg/errors"
)

var archiveColumns = []interface{}{
	"id", "booking_id", "doctor", "patient_name", "patient_email",
	"disease", "department", "date", "time", "feedback", "created_at",
}

// ArchiveAdapter implements the ArchiveRepository interface. Archive rows are
// created by the attend transition in BookingAdapter; the only mutation this
// adapter allows is overwriting feedback.
type ArchiveAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewArchiveAdapter creates a new archive adapter
func NewArchiveAdapter(client *postgres.Client) repositories.ArchiveRepository {
	return &ArchiveAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves an archived booking by ID
func (a *ArchiveAdapter) GetByID(ctx context.Context, id int64) (*entities.ArchivedBooking, error) {
	query, args, err := a.db.Select(archiveColumns...).
		From("archived_bookings").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build archive query", err)
	}

	archived := &entities.ArchivedBooking{}
	var feedback sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&archived.ID,
		&archived.BookingID,
		&archived.Doctor,
		&archived.PatientName,
		&archived.PatientEmail,
		&archived.Disease,
		&archived.Department,
		&archived.Date,
		&archived.Time,
		&feedback,
		&archived.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("archived booking with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get archived booking", err)
	}

	if feedback.Valid {
		archived.Feedback = &feedback.String
	}

	return archived, nil
}

// List retrieves all archived bookings
func (a *ArchiveAdapter) List(ctx context.Context) ([]*entities.ArchivedBooking, error) {
	return a.listWhere(ctx, nil)
}

// ListByDoctor retrieves archived bookings attended by the doctor
func (a *ArchiveAdapter) ListByDoctor(ctx context.Context, doctorUsername string) ([]*entities.ArchivedBooking, error) {
	return a.listWhere(ctx, goqu.Ex{"doctor": doctorUsername})
}

// ListByPatientEmail retrieves archived bookings for the patient
func (a *ArchiveAdapter) ListByPatientEmail(ctx context.Context, email string) ([]*entities.ArchivedBooking, error) {
	return a.listWhere(ctx, goqu.Ex{"patient_email": email})
}

// SetFeedback overwrites the feedback text of an archived booking
func (a *ArchiveAdapter) SetFeedback(ctx context.Context, id int64, feedback string) error {
	query, args, err := a.db.Update("archived_bookings").
		Set(goqu.Record{"feedback": feedback}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build feedback update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to set feedback", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("archived booking with id %d not found", id))
	}

	return nil
}

func (a *ArchiveAdapter) listWhere(ctx context.Context, where goqu.Ex) ([]*entities.ArchivedBooking, error) {
	ds := a.db.Select(archiveColumns...).
		From("archived_bookings").
		Order(goqu.I("id").Asc())
	if where != nil {
		ds = ds.Where(where)
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build archive list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list archived bookings", err)
	}
	defer rows.Close()

	var archives []*entities.ArchivedBooking
	for rows.Next() {
		archived := &entities.ArchivedBooking{}
		var feedback sql.NullString
		if err := rows.Scan(
			&archived.ID,
			&archived.BookingID,
			&archived.Doctor,
			&archived.PatientName,
			&archived.PatientEmail,
			&archived.Disease,
			&archived.Department,
			&archived.Date,
			&archived.Time,
			&feedback,
			&archived.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan archived booking", err)
		}
		if feedback.Valid {
			archived.Feedback = &feedback.String
		}
		archives = append(archives, archived)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate archived bookings", err)
	}

	return archives, nil
}
