package account

import "context"

// Repository provides account persistence.  Implementations live in the
// postgres infrastructure layer.
type Repository interface {
	// GetByID loads an account with its variant profile.
	GetByID(ctx context.Context, id int64) (*Account, error)

	// GetByUsername loads an account by its unique username.
	GetByUsername(ctx context.Context, username string) (*Account, error)

	// Create persists a new account and fills in its generated ID.
	Create(ctx context.Context, acc *Account) error

	// EmailExists and UsernameExists back the registration uniqueness checks.
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}
