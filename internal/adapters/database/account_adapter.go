package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/repositories"
	"github.com/zatekoja/hospitalmanagement/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/hospitalmanagement/backend/pkg/errors"
)

// AccountAdapter implements the AccountRepository interface
type AccountAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAccountAdapter creates a new account adapter
func NewAccountAdapter(client *postgres.Client) repositories.AccountRepository {
	return &AccountAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new account
func (a *AccountAdapter) Create(ctx context.Context, account *entities.Account) error {
	record := goqu.Record{
		"username":      account.Username,
		"email":         account.Email,
		"password_hash": account.PasswordHash,
		"role":          account.Role,
		"created_at":    account.CreatedAt,
	}

	query, args, err := a.db.Insert("accounts").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build account insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&account.ID); err != nil {
		return apperrors.NewInternalError("failed to create account", err)
	}

	return nil
}

// GetByEmail retrieves an account by email
func (a *AccountAdapter) GetByEmail(ctx context.Context, email string) (*entities.Account, error) {
	return a.getBy(ctx, goqu.Ex{"email": email}, fmt.Sprintf("account with email %s not found", email))
}

// GetByUsername retrieves an account by username
func (a *AccountAdapter) GetByUsername(ctx context.Context, username string) (*entities.Account, error) {
	return a.getBy(ctx, goqu.Ex{"username": username}, fmt.Sprintf("account with username %s not found", username))
}

func (a *AccountAdapter) getBy(ctx context.Context, where goqu.Ex, notFoundMsg string) (*entities.Account, error) {
	query, args, err := a.db.Select(
		"id", "username", "email", "password_hash", "role", "created_at",
	).From("accounts").
		Where(where).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build account query", err)
	}

	account := &entities.Account{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(notFoundMsg)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get account", err)
	}

	return account, nil
}

// ExistsByUsernameOrEmail reports whether an account with the given username
// or email is already registered
func (a *AccountAdapter) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("accounts").
		Where(goqu.ExOr{
			"username": username,
			"email":    email,
		}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build account exists query", err)
	}

	var count int64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to check account existence", err)
	}

	return count > 0, nil
}
