package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidanueva/church_admin_app/internal/apperrors"
	"github.com/vidanueva/church_admin_app/internal/core/domain"
	portsrepo "github.com/vidanueva/church_admin_app/internal/core/ports/repositories"
	portssvc "github.com/vidanueva/church_admin_app/internal/core/ports/services"
	"github.com/vidanueva/church_admin_app/internal/dto"
)

// globalConfigService manages the singleton financial configuration record.
type globalConfigService struct {
	BaseService
	configRepo portsrepo.GlobalConfigRepositoryFacade
}

// NewGlobalConfigService creates a new global config service with the provided dependencies
func NewGlobalConfigService(configRepo portsrepo.GlobalConfigRepositoryFacade) portssvc.GlobalConfigSvcFacade {
	return &globalConfigService{configRepo: configRepo}
}

var _ portssvc.GlobalConfigSvcFacade = (*globalConfigService)(nil)

// GetConfig returns the configuration, creating it with defaults on first
// read. The record is always read fresh; callers must not cache it.
func (s *globalConfigService) GetConfig(ctx context.Context) (*domain.GlobalConfig, error) {
	config, err := s.configRepo.FindConfig(ctx)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to read global config")
		return nil, err
	}

	now := time.Now()
	seeded := domain.DefaultGlobalConfig()
	seeded.ConfigID = uuid.NewString()
	seeded.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     "system",
		LastUpdatedAt: now,
		LastUpdatedBy: "system",
	}

	if err := s.configRepo.SaveConfig(ctx, seeded); err != nil {
		// A concurrent first read may have seeded the row already.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.configRepo.FindConfig(ctx)
		}
		s.LogError(ctx, err, "Failed to seed default global config")
		return nil, err
	}

	s.LogInfo(ctx, "Seeded default global config",
		slog.String("config_id", seeded.ConfigID),
		slog.String("max_amount_lead_approval", seeded.MaxAmountLeadApproval.String()))
	return &seeded, nil
}

// UpdateConfig applies a partial update to the configuration. Admin only.
func (s *globalConfigService) UpdateConfig(ctx context.Context, req dto.UpdateGlobalConfigRequest, actor domain.Identity) (*domain.GlobalConfig, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only an admin may change the financial configuration", apperrors.ErrForbidden)
	}

	config, err := s.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	// Zero is a valid threshold, it routes every request through the lead.
	if req.MaxAmountLeadApproval != nil {
		if req.MaxAmountLeadApproval.IsNegative() {
			return nil, fmt.Errorf("%w: maxAmountLeadApproval cannot be negative", apperrors.ErrValidation)
		}
		config.MaxAmountLeadApproval = *req.MaxAmountLeadApproval
	}
	if req.DefaultCurrency != nil {
		currency := domain.Currency(strings.ToUpper(strings.TrimSpace(*req.DefaultCurrency)))
		if !domain.ValidCurrency(currency) {
			return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, *req.DefaultCurrency)
		}
		config.DefaultCurrency = currency
	}
	if req.RemainderTarget != nil {
		config.RemainderTarget = domain.RemainderTarget{
			AccountName:   req.RemainderTarget.AccountName,
			BankName:      req.RemainderTarget.BankName,
			AccountNumber: req.RemainderTarget.AccountNumber,
			Notes:         req.RemainderTarget.Notes,
		}
	}

	config.LastUpdatedAt = time.Now()
	config.LastUpdatedBy = actor.UserID

	if err := s.configRepo.UpdateConfig(ctx, *config); err != nil {
		s.LogError(ctx, err, "Failed to update global config")
		return nil, err
	}

	s.LogInfo(ctx, "Global config updated",
		slog.String("updated_by", actor.UserID),
		slog.String("max_amount_lead_approval", config.MaxAmountLeadApproval.String()))
	return config, nil
}
