package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/repositories"
	"github.com/zatekoja/hospitalmanagement/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/hospitalmanagement/backend/pkg/errors"
)

// AuditAdapter implements the read side of the audit log. Rows are written
// only inside booking ledger transactions (see BookingAdapter); this adapter
// deliberately exposes no write or delete path.
type AuditAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAuditAdapter creates a new audit adapter
func NewAuditAdapter(client *postgres.Client) repositories.AuditRepository {
	return &AuditAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List retrieves all audit entries, newest first
func (a *AuditAdapter) List(ctx context.Context) ([]*entities.AuditEntry, error) {
	ds := a.db.Select(
		"id", "booking_id", "email", "name", "action", "timestamp",
	).From("audit_log").
		Order(goqu.I("id").Desc())
	return a.queryEntries(ctx, ds)
}

// ListByBookingID retrieves audit entries for a booking, oldest first
func (a *AuditAdapter) ListByBookingID(ctx context.Context, bookingID int64) ([]*entities.AuditEntry, error) {
	ds := a.db.Select(
		"id", "booking_id", "email", "name", "action", "timestamp",
	).From("audit_log").
		Where(goqu.Ex{"booking_id": bookingID}).
		Order(goqu.I("id").Asc())
	return a.queryEntries(ctx, ds)
}

func (a *AuditAdapter) queryEntries(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.AuditEntry, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build audit query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list audit entries", err)
	}
	defer rows.Close()

	var entries []*entities.AuditEntry
	for rows.Next() {
		entry := &entities.AuditEntry{}
		if err := rows.Scan(
			&entry.ID,
			&entry.BookingID,
			&entry.Email,
			&entry.Name,
			&entry.Action,
			&entry.Timestamp,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan audit entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate audit entries", err)
	}

	return entries, nil
}
