package pgsql

import (
	"context"
	"database/sql"
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

type PgxFinancialRequestRepository struct {
	pool *pgxpool.Pool
}

// newPgxFinancialRequestRepository creates a new repository for financial request data.
func newPgxFinancialRequestRepository(pool *pgxpool.Pool) portsrepo.FinancialRequestRepositoryFacade {
	return &PgxFinancialRequestRepository{pool: pool}
}

// Ensure PgxFinancialRequestRepository implements the facade
var _ portsrepo.FinancialRequestRepositoryFacade = (*PgxFinancialRequestRepository)(nil)

// Helper to convert domain.FinancialRequest to models.FinancialRequest for DB storage.
// Items and status history are marshalled to JSONB documents.
func toModelFinancialRequest(d domain.FinancialRequest) (models.FinancialRequest, error) {
	items, err := json.Marshal(d.Items)
	if err != nil {
		return models.FinancialRequest{}, fmt.Errorf("failed to marshal request items: %w", err)
	}
	history, err := json.Marshal(d.StatusHistory)
	if err != nil {
		return models.FinancialRequest{}, fmt.Errorf("failed to marshal status history: %w", err)
	}
	return models.FinancialRequest{
		RequestID:            d.RequestID,
		BranchID:             d.BranchID,
		SupervisorUserID:     d.SupervisorUserID,
		RequesterUserID:      d.RequesterUserID,
		Description:          d.Description,
		Currency:             string(d.Currency),
		CostCenterID:         d.CostCenterID,
		Items:                items,
		TotalAmount:          d.TotalAmount,
		DepositType:          string(d.DepositType),
		OwnAccountID:         d.OwnAccountID,
		BankName:             d.BankName,
		AccountNumber:        d.AccountNumber,
		AccountNumberCCI:     d.AccountNumberCCI,
		DocType:              d.DocType,
		DocNumber:            d.DocNumber,
		RequiresLeadApproval: d.RequiresLeadApproval,
		CurrentStatus:        string(d.CurrentStatus),
		StatusHistory:        history,
		RemainderAmount:      d.RemainderAmount,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}, nil
}

// Helper to convert models.FinancialRequest from DB to domain.FinancialRequest
func toDomainFinancialRequest(m models.FinancialRequest) (domain.FinancialRequest, error) {
	var items []domain.RequestItem
	if len(m.Items) > 0 {
		if err := json.Unmarshal(m.Items, &items); err != nil {
			return domain.FinancialRequest{}, fmt.Errorf("failed to unmarshal items for request %s: %w", m.RequestID, err)
		}
	}
	var history []domain.StatusHistoryEntry
	if len(m.StatusHistory) > 0 {
		if err := json.Unmarshal(m.StatusHistory, &history); err != nil {
			return domain.FinancialRequest{}, fmt.Errorf("failed to unmarshal status history for request %s: %w", m.RequestID, err)
		}
	}
	return domain.FinancialRequest{
		RequestID:            m.RequestID,
		BranchID:             m.BranchID,
		SupervisorUserID:     m.SupervisorUserID,
		RequesterUserID:      m.RequesterUserID,
		Description:          m.Description,
		Currency:             domain.Currency(m.Currency),
		CostCenterID:         m.CostCenterID,
		Items:                items,
		TotalAmount:          m.TotalAmount,
		DepositType:          domain.DepositType(m.DepositType),
		OwnAccountID:         m.OwnAccountID,
		BankName:             m.BankName,
		AccountNumber:        m.AccountNumber,
		AccountNumberCCI:     m.AccountNumberCCI,
		DocType:              m.DocType,
		DocNumber:            m.DocNumber,
		RequiresLeadApproval: m.RequiresLeadApproval,
		CurrentStatus:        domain.RequestStatus(m.CurrentStatus),
		StatusHistory:        history,
		RemainderAmount:      m.RemainderAmount,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

const financialRequestColumns = `request_id, branch_id, supervisor_user_id, requester_user_id, description, currency, cost_center_id, items, total_amount, deposit_type, own_account_id, bank_name, account_number, account_number_cci, doc_type, doc_number, requires_lead_approval, current_status, status_history, remainder_amount, created_at, created_by, last_updated_at, last_updated_by`

func scanFinancialRequest(row pgx.Row) (models.FinancialRequest, error) {
	var m models.FinancialRequest
	var supervisorID, ownAccountID sql.NullString
	err := row.Scan(
		&m.RequestID,
		&m.BranchID,
		&supervisorID,
		&m.RequesterUserID,
		&m.Description,
		&m.Currency,
		&m.CostCenterID,
		&m.Items,
		&m.TotalAmount,
		&m.DepositType,
		&ownAccountID,
		&m.BankName,
		&m.AccountNumber,
		&m.AccountNumberCCI,
		&m.DocType,
		&m.DocNumber,
		&m.RequiresLeadApproval,
		&m.CurrentStatus,
		&m.StatusHistory,
		&m.RemainderAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.FinancialRequest{}, err
	}
	m.SupervisorUserID = supervisorID.String
	m.OwnAccountID = ownAccountID.String
	return m, nil
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// SaveRequest inserts a new financial request aggregate as one row.
func (r *PgxFinancialRequestRepository) SaveRequest(ctx context.Context, request domain.FinancialRequest) error {
	m, err := toModelFinancialRequest(request)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO financial_requests (` + financialRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	_, err = r.pool.Exec(ctx, query,
		m.RequestID,
		m.BranchID,
		nullableString(m.SupervisorUserID),
		m.RequesterUserID,
		m.Description,
		m.Currency,
		m.CostCenterID,
		m.Items,
		m.TotalAmount,
		m.DepositType,
		nullableString(m.OwnAccountID),
		m.BankName,
		m.AccountNumber,
		m.AccountNumberCCI,
		m.DocType,
		m.DocNumber,
		m.RequiresLeadApproval,
		m.CurrentStatus,
		m.StatusHistory,
		m.RemainderAmount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: financial request with ID %s already exists", apperrors.ErrDuplicate, m.RequestID)
		}
		return fmt.Errorf("failed to save financial request %s: %w", m.RequestID, err)
	}
	return nil
}

// UpdateRequest rewrites the whole aggregate row, keeping items, status
// history and derived fields consistent in a single write.
func (r *PgxFinancialRequestRepository) UpdateRequest(ctx context.Context, request domain.FinancialRequest) error {
	m, err := toModelFinancialRequest(request)
	if err != nil {
		return err
	}

	query := `
		UPDATE financial_requests
		SET branch_id = $2, supervisor_user_id = $3, description = $4, currency = $5,
		    cost_center_id = $6, items = $7, total_amount = $8, deposit_type = $9,
		    own_account_id = $10, bank_name = $11, account_number = $12, account_number_cci = $13,
		    doc_type = $14, doc_number = $15, requires_lead_approval = $16, current_status = $17,
		    status_history = $18, remainder_amount = $19, last_updated_at = $20, last_updated_by = $21
		WHERE request_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.RequestID,
		m.BranchID,
		nullableString(m.SupervisorUserID),
		m.Description,
		m.Currency,
		m.CostCenterID,
		m.Items,
		m.TotalAmount,
		m.DepositType,
		nullableString(m.OwnAccountID),
		m.BankName,
		m.AccountNumber,
		m.AccountNumberCCI,
		m.DocType,
		m.DocNumber,
		m.RequiresLeadApproval,
		m.CurrentStatus,
		m.StatusHistory,
		m.RemainderAmount,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update financial request %s: %w", m.RequestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindRequestByID retrieves a financial request by its ID.
func (r *PgxFinancialRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.FinancialRequest, error) {
	query := `
		SELECT ` + financialRequestColumns + `
		FROM financial_requests
		WHERE request_id = $1;
	`
	m, err := scanFinancialRequest(r.pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find financial request by ID %s: %w", requestID, err)
	}

	d, err := toDomainFinancialRequest(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListRequests retrieves financial requests matching the filter, newest first.
func (r *PgxFinancialRequestRepository) ListRequests(ctx context.Context, filter portsrepo.FinancialRequestFilter) ([]domain.FinancialRequest, error) {
	query := `
		SELECT ` + financialRequestColumns + `
		FROM financial_requests
		WHERE 1=1
	`
	args := []any{}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND current_status = $%d", len(args))
	}
	if filter.BranchID != "" {
		args = append(args, filter.BranchID)
		query += fmt.Sprintf(" AND branch_id = $%d", len(args))
	}
	if filter.RequesterUserID != "" {
		args = append(args, filter.RequesterUserID)
		query += fmt.Sprintf(" AND requester_user_id = $%d", len(args))
	}
	query += " ORDER BY created_at DESC;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query financial requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.FinancialRequest{}
	for rows.Next() {
		m, err := scanFinancialRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan financial request row: %w", err)
		}
		d, err := toDomainFinancialRequest(m)
		if err != nil {
			return nil, err
		}
		requests = append(requests, d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating financial request rows: %w", rows.Err())
	}

	return requests, nil
}
