package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidanueva/church_admin_app/internal/apperrors"
	"github.com/vidanueva/church_admin_app/internal/core/domain"
	portsrepo "github.com/vidanueva/church_admin_app/internal/core/ports/repositories"
	"github.com/vidanueva/church_admin_app/internal/models"
)

type PgxGlobalConfigRepository struct {
	pool *pgxpool.Pool
}

// newPgxGlobalConfigRepository creates a repository over the singleton
// global_config table.
func newPgxGlobalConfigRepository(pool *pgxpool.Pool) portsrepo.GlobalConfigRepositoryFacade {
	return &PgxGlobalConfigRepository{pool: pool}
}

var _ portsrepo.GlobalConfigRepositoryFacade = (*PgxGlobalConfigRepository)(nil)

func toModelGlobalConfig(d domain.GlobalConfig) (models.GlobalConfig, error) {
	target, err := json.Marshal(d.RemainderTarget)
	if err != nil {
		return models.GlobalConfig{}, fmt.Errorf("failed to marshal remainder target: %w", err)
	}
	return models.GlobalConfig{
		ConfigID:              d.ConfigID,
		MaxAmountLeadApproval: d.MaxAmountLeadApproval,
		DefaultCurrency:       string(d.DefaultCurrency),
		RemainderTarget:       target,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}, nil
}

func toDomainGlobalConfig(m models.GlobalConfig) (domain.GlobalConfig, error) {
	var target domain.RemainderTarget
	if len(m.RemainderTarget) > 0 {
		if err := json.Unmarshal(m.RemainderTarget, &target); err != nil {
			return domain.GlobalConfig{}, fmt.Errorf("failed to unmarshal remainder target: %w", err)
		}
	}
	return domain.GlobalConfig{
		ConfigID:              m.ConfigID,
		MaxAmountLeadApproval: m.MaxAmountLeadApproval,
		DefaultCurrency:       domain.Currency(m.DefaultCurrency),
		RemainderTarget:       target,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

// FindConfig retrieves the configuration row. There is at most one.
func (r *PgxGlobalConfigRepository) FindConfig(ctx context.Context) (*domain.GlobalConfig, error) {
	query := `
		SELECT config_id, max_amount_lead_approval, default_currency, remainder_target, created_at, created_by, last_updated_at, last_updated_by
		FROM global_config
		LIMIT 1;
	`
	var m models.GlobalConfig
	err := r.pool.QueryRow(ctx, query).Scan(
		&m.ConfigID,
		&m.MaxAmountLeadApproval,
		&m.DefaultCurrency,
		&m.RemainderTarget,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find global config: %w", err)
	}

	d, err := toDomainGlobalConfig(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// SaveConfig inserts the configuration row.
func (r *PgxGlobalConfigRepository) SaveConfig(ctx context.Context, config domain.GlobalConfig) error {
	m, err := toModelGlobalConfig(config)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO global_config (config_id, max_amount_lead_approval, default_currency, remainder_target, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.pool.Exec(ctx, query,
		m.ConfigID,
		m.MaxAmountLeadApproval,
		m.DefaultCurrency,
		m.RemainderTarget,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: global config already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save global config: %w", err)
	}
	return nil
}

// UpdateConfig rewrites the configuration row.
func (r *PgxGlobalConfigRepository) UpdateConfig(ctx context.Context, config domain.GlobalConfig) error {
	m, err := toModelGlobalConfig(config)
	if err != nil {
		return err
	}

	query := `
		UPDATE global_config
		SET max_amount_lead_approval = $2, default_currency = $3, remainder_target = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE config_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.ConfigID,
		m.MaxAmountLeadApproval,
		m.DefaultCurrency,
		m.RemainderTarget,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update global config: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
