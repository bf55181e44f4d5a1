package repositories

import (
	"context"

	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
)

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	// Create creates a new account
	Create(ctx context.Context, account *entities.Account) error

	// GetByEmail retrieves an account by email
	GetByEmail(ctx context.Context, email string) (*entities.Account, error)

	// GetByUsername retrieves an account by username
	GetByUsername(ctx context.Context, username string) (*entities.Account, error)

	// ExistsByUsernameOrEmail reports whether an account with the given
	// username or email is already registered
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
