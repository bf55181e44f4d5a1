package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/repositories"
	"github.com/zatekoja/hospitalmanagement/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/hospitalmanagement/backend/pkg/errors"
)

// DoctorAdapter implements the DoctorRepository interface
type DoctorAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDoctorAdapter creates a new doctor adapter
func NewDoctorAdapter(client *postgres.Client) repositories.DoctorRepository {
	return &DoctorAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new doctor registration
func (a *DoctorAdapter) Create(ctx context.Context, doctor *entities.Doctor) error {
	record := goqu.Record{
		"name":       doctor.Name,
		"email":      doctor.Email,
		"department": doctor.Department,
		"created_at": doctor.CreatedAt,
	}

	query, args, err := a.db.Insert("doctors").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build doctor insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&doctor.ID); err != nil {
		return apperrors.NewInternalError("failed to create doctor", err)
	}

	return nil
}

// List retrieves all doctor registrations
func (a *DoctorAdapter) List(ctx context.Context) ([]*entities.Doctor, error) {
	query, args, err := a.db.Select(
		"id", "name", "email", "department", "created_at",
	).From("doctors").
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build doctor list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list doctors", err)
	}
	defer rows.Close()

	var doctors []*entities.Doctor
	for rows.Next() {
		doctor := &entities.Doctor{}
		if err := rows.Scan(
			&doctor.ID,
			&doctor.Name,
			&doctor.Email,
			&doctor.Department,
			&doctor.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan doctor", err)
		}
		doctors = append(doctors, doctor)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate doctors", err)
	}

	return doctors, nil
}

// ExistsByEmailAndDepartment reports whether the (email, department) pair is
// already registered
func (a *DoctorAdapter) ExistsByEmailAndDepartment(ctx context.Context, email, department string) (bool, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("doctors").
		Where(goqu.Ex{
			"email":      email,
			"department": department,
		}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build doctor exists query", err)
	}

	var count int64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to check doctor existence", err)
	}

	return count > 0, nil
}
