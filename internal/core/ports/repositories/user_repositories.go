package repositories

import (
	"context"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
)

// UserReader defines read operations for user data. Users are owned by the
// external identity provider; this system never writes them.
type UserReader interface {
	// FindUserByID retrieves a user by its unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// UserExists reports whether a user with the given ID exists.
	UserExists(ctx context.Context, userID string) (bool, error)
}

// UserRepositoryFacade is the full user repository surface.
type UserRepositoryFacade interface {
	UserReader
}
