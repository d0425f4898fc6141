package repositories

import (
	"context"
	"time"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
)

// AccountReader defines read operations for bank-account data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountsByPerson retrieves all accounts registered to a person.
	ListAccountsByPerson(ctx context.Context, personID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for bank-account data.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
