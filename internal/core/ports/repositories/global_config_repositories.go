package repositories

import (
	"context"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
)

// GlobalConfigRepositoryFacade persists the singleton configuration record.
type GlobalConfigRepositoryFacade interface {
	// FindConfig retrieves the configuration row, or ErrNotFound when none
	// has been created yet.
	FindConfig(ctx context.Context) (*domain.GlobalConfig, error)

	SaveConfig(ctx context.Context, config domain.GlobalConfig) error
	UpdateConfig(ctx context.Context, config domain.GlobalConfig) error
}
