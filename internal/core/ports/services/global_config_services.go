package services

import (
	"context"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
	"github.com/vidanueva/church_admin_app/internal/dto"
)

// GlobalConfigSvcFacade manages the singleton financial configuration.
// GetConfig lazily creates the record with defaults on first read; workflow
// use-cases call it fresh on every invocation so threshold changes apply
// immediately.
type GlobalConfigSvcFacade interface {
	GetConfig(ctx context.Context) (*domain.GlobalConfig, error)
	UpdateConfig(ctx context.Context, req dto.UpdateGlobalConfigRequest, actor domain.Identity) (*domain.GlobalConfig, error)
}
