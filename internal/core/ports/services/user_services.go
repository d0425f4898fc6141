package services

import (
	"context"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
)

// UserSvcFacade exposes the read-only user surface. Users are managed by the
// external identity provider; here they back identity resolution and lookups.
type UserSvcFacade interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ResolveIdentity loads a user and resolves its raw role names into the
	// closed RoleKind set. Inactive users yield ErrUnauthorized.
	ResolveIdentity(ctx context.Context, userID string) (domain.Identity, error)
}
