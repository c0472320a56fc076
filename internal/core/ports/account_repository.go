package ports

import (
	"context"

	"deliverybroker/internal/core/domain/model/account"
	"deliverybroker/internal/core/domain/model/kernel"
)

// AccountRepository defines the persistence contract for account aggregates.
type AccountRepository interface {
	// Add persists a new account aggregate to storage.
	Add(ctx context.Context, aggregate *account.Account) error

	// Update persists changes to an existing account aggregate. The stored
	// row's version must match the version the aggregate was loaded with;
	// a mismatch fails with a version conflict error and writes nothing.
	Update(ctx context.Context, aggregate *account.Account) error

	// Get retrieves an account aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)

	// GetByEmail retrieves an account aggregate by its unique email.
	GetByEmail(ctx context.Context, email string) (*account.Account, error)

	// GetByStatus retrieves all accounts in the given status, oldest first.
	// Used by the admin review queue.
	GetByStatus(ctx context.Context, status account.Status) ([]*account.Account, error)
}
