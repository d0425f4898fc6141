package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vidanueva/church_admin_app/internal/apperrors"
	"github.com/vidanueva/church_admin_app/internal/core/domain"
	portsrepo "github.com/vidanueva/church_admin_app/internal/core/ports/repositories"
	portssvc "github.com/vidanueva/church_admin_app/internal/core/ports/services"
)

// userService implements the read-only UserSvcFacade interface.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service with the provided dependencies
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetUserByID retrieves a user by its ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID",
				slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// ResolveIdentity loads a user and resolves its role names into the closed
// role kind set. It backs the auth middleware: every request carries a fully
// resolved identity before reaching a handler.
func (s *userService) ResolveIdentity(ctx context.Context, userID string) (domain.Identity, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Identity{}, fmt.Errorf("%w: unknown user", apperrors.ErrUnauthorized)
		}
		return domain.Identity{}, err
	}
	if !user.IsActive {
		return domain.Identity{}, fmt.Errorf("%w: user %s is inactive", apperrors.ErrUnauthorized, userID)
	}
	return domain.IdentityOf(*user), nil
}
