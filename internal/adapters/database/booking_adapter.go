package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/repositories"
	"github.com/zatekoja/hospitalmanagement/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/hospitalmanagement/backend/pkg/errors"
)

var bookingColumns = []interface{}{
	"id", "patient_email", "patient_name", "gender", "slot", "disease",
	"date", "time", "department", "phone_number", "created_at",
}

// BookingAdapter implements the BookingRepository interface. The compound
// operations (Create, Delete, Attend) commit the ledger mutation and its
// audit entry in a single transaction.
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new booking together with its INSERT audit entry
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	now := time.Now().UTC()
	booking.CreatedAt = now

	record := goqu.Record{
		"patient_email": booking.PatientEmail,
		"patient_name":  booking.PatientName,
		"gender":        booking.Gender,
		"slot":          booking.Slot,
		"disease":       booking.Disease,
		"date":          booking.Date,
		"time":          booking.Time,
		"department":    booking.Department,
		"phone_number":  booking.PhoneNumber,
		"created_at":    booking.CreatedAt,
	}

	insertSQL, insertArgs, err := a.db.Insert("bookings").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build booking insert query", err)
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, insertSQL, insertArgs...).Scan(&booking.ID); err != nil {
		return apperrors.NewInternalError("failed to create booking", err)
	}

	if err := a.insertAudit(ctx, tx, booking, entities.AuditActionInsert, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit booking create", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id int64) (*entities.Booking, error) {
	query, args, err := a.db.Select(bookingColumns...).
		From("bookings").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build booking query", err)
	}

	booking, err := scanBooking(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}

	return booking, nil
}

// Update overwrites the mutable fields of a booking in place. No audit entry
// is produced for edits.
func (a *BookingAdapter) Update(ctx context.Context, booking *entities.Booking) error {
	record := goqu.Record{
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

	query, args, err := a.db.Update("bookings").
		Set(record).
		Where(goqu.Ex{"id": booking.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build booking update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update booking", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking with id %d not found", booking.ID))
	}

	return nil
}

// Delete records a DELETE audit entry and removes the booking. The booking's
// email and name are captured before removal since the row ceases to exist.
func (a *BookingAdapter) Delete(ctx context.Context, id int64) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	booking, err := a.getForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := a.insertAudit(ctx, tx, booking, entities.AuditActionDelete, time.Now().UTC()); err != nil {
		return err
	}

	if err := a.deleteRow(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit booking delete", err)
	}

	return nil
}

// List retrieves all pending bookings in storage order
func (a *BookingAdapter) List(ctx context.Context) ([]*entities.Booking, error) {
	ds := a.db.Select(bookingColumns...).
		From("bookings").
		Order(goqu.I("id").Asc())
	return a.queryBookings(ctx, ds)
}

// SearchByDepartment retrieves pending bookings whose department contains
// the substring, case-insensitively
func (a *BookingAdapter) SearchByDepartment(ctx context.Context, department string) ([]*entities.Booking, error) {
	ds := a.db.Select(bookingColumns...).
		From("bookings").
		Where(goqu.I("department").ILike("%" + department + "%")).
		Order(goqu.I("id").Asc())
	return a.queryBookings(ctx, ds)
}

// Attend archives the booking, records an ATTENDED audit entry and removes
// the booking, all in one transaction.
func (a *BookingAdapter) Attend(ctx context.Context, id int64, doctorUsername string) (*entities.ArchivedBooking, error) {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	booking, err := a.getForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	archived := &entities.ArchivedBooking{
		BookingID:    booking.ID,
		Doctor:       doctorUsername,
		PatientName:  booking.PatientName,
		PatientEmail: booking.PatientEmail,
		Disease:      booking.Disease,
		Department:   booking.Department,
		Date:         booking.Date,
		Time:         booking.Time,
		Feedback:     nil,
		CreatedAt:    now,
	}

	archiveSQL, archiveArgs, err := a.db.Insert("archived_bookings").Rows(goqu.Record{
		"booking_id":    archived.BookingID,
		"doctor":        archived.Doctor,
		"patient_name":  archived.PatientName,
		"patient_email": archived.PatientEmail,
		"disease":       archived.Disease,
		"department":    archived.Department,
		"date":          archived.Date,
		"time":          archived.Time,
		"feedback":      sql.NullString{},
		"created_at":    archived.CreatedAt,
	}).Returning("id").ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build archive insert query", err)
	}

	if err := tx.QueryRowContext(ctx, archiveSQL, archiveArgs...).Scan(&archived.ID); err != nil {
		return nil, apperrors.NewInternalError("failed to archive booking", err)
	}

	if err := a.insertAudit(ctx, tx, booking, entities.AuditActionAttended, now); err != nil {
		return nil, err
	}

	if err := a.deleteRow(ctx, tx, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewInternalError("failed to commit attend", err)
	}

	return archived, nil
}

// getForUpdate loads and locks a booking row inside the transaction so a
// concurrent delete or attend of the same id serializes behind it.
func (a *BookingAdapter) getForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*entities.Booking, error) {
	query, args, err := a.db.Select(bookingColumns...).
		From("bookings").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build booking query", err)
	}

	booking, err := scanBooking(tx.QueryRowContext(ctx, query+" FOR UPDATE", args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}

	return booking, nil
}

func (a *BookingAdapter) insertAudit(ctx context.Context, tx *sql.Tx, booking *entities.Booking, action entities.AuditAction, at time.Time) error {
	auditSQL, auditArgs, err := a.db.Insert("audit_log").Rows(goqu.Record{
		"booking_id": booking.ID,
		"email":      booking.PatientEmail,
		"name":       booking.PatientName,
		"action":     action,
		"timestamp":  at,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build audit insert query", err)
	}

	if _, err := tx.ExecContext(ctx, auditSQL, auditArgs...); err != nil {
		return apperrors.NewInternalError("failed to record audit entry", err)
	}

	return nil
}

func (a *BookingAdapter) deleteRow(ctx context.Context, tx *sql.Tx, id int64) error {
	deleteSQL, deleteArgs, err := a.db.Delete("bookings").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build booking delete query", err)
	}

	result, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete booking", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking with id %d not found", id))
	}

	return nil
}

func (a *BookingAdapter) queryBookings(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Booking, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build booking list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	var bookings []*entities.Booking
	for rows.Next() {
		booking := &entities.Booking{}
		if err := rows.Scan(
			&booking.ID,
			&booking.PatientEmail,
			&booking.PatientName,
			&booking.Gender,
			&booking.Slot,
			&booking.Disease,
			&booking.Date,
			&booking.Time,
			&booking.Department,
			&booking.PhoneNumber,
			&booking.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bookings", err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*entities.Booking, error) {
	booking := &entities.Booking{}
	err := row.Scan(
		&booking.ID,
		&booking.PatientEmail,
		&booking.PatientName,
		&booking.Gender,
		&booking.Slot,
		&booking.Disease,
		&booking.Date,
		&booking.Time,
		&booking.Department,
		&booking.PhoneNumber,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return booking, nil
}
