package services

import (
	"context"
	"strings"
	"time"

	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/hospitalmanagement/backend/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// invalidCredentialsMessage is deliberately uniform: authentication failures
// must not reveal whether the email was unknown or the password wrong.
const invalidCredentialsMessage = "invalid credentials"

// AccountService handles registration and authentication.
type AccountService struct {
	repo repositories.AccountRepository
}

// NewAccountService creates a new account service.
func NewAccountService(repo repositories.AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

// Register creates a new account with a bcrypt hash of the password. The
// plaintext password is never stored.
func (s *AccountService) Register(ctx context.Context, username, email, password string, role entities.Role) (*entities.Account, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return nil, apperrors.NewValidationError("username, email and password are required")
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("role must be Patient or Doctor")
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("username or email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	account := &entities.Account{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Authenticate verifies email and password and returns the matching account.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*entities.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.NewUnauthorizedError(invalidCredentialsMessage)
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewUnauthorizedError(invalidCredentialsMessage)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.NewUnauthorizedError(invalidCredentialsMessage)
	}

	return account, nil
}
