package pgsql

import (
	"context"
	"database/sql"
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

type PgxBranchRepository struct {
	BaseRepository
}

// newPgxBranchRepository creates a new repository for branch data.
func newPgxBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepositoryFacade {
	return &PgxBranchRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BranchRepositoryFacade = (*PgxBranchRepository)(nil)

func toModelBranch(d domain.Branch) models.Branch {
	return models.Branch{
		BranchID:        d.BranchID,
		Name:            d.Name,
		Address:         d.Address,
		ParentBranchID:  d.ParentBranchID,
		ManagerPersonID: d.ManagerPersonID,
		ManagerUserID:   d.ManagerUserID,
		Ancestors:       d.Ancestors,
		Depth:           d.Depth,
		NodePath:        d.NodePath,
		IsActive:        d.IsActive,
		IsChurch:        d.IsChurch,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainBranch(m models.Branch) domain.Branch {
	return domain.Branch{
		BranchID:        m.BranchID,
		Name:            m.Name,
		Address:         m.Address,
		ParentBranchID:  m.ParentBranchID,
		ManagerPersonID: m.ManagerPersonID,
		ManagerUserID:   m.ManagerUserID,
		Ancestors:       m.Ancestors,
		Depth:           m.Depth,
		NodePath:        m.NodePath,
		IsActive:        m.IsActive,
		IsChurch:        m.IsChurch,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const branchColumns = `branch_id, name, address, parent_branch_id, manager_person_id, manager_user_id, ancestors, depth, node_path, is_active, is_church, created_at, created_by, last_updated_at, last_updated_by`

func scanBranch(row pgx.Row) (models.Branch, error) {
	var m models.Branch
	var parentID, managerPersonID, managerUserID sql.NullString
	err := row.Scan(
		&m.BranchID,
		&m.Name,
		&m.Address,
		&parentID,
		&managerPersonID,
		&managerUserID,
		&m.Ancestors,
		&m.Depth,
		&m.NodePath,
		&m.IsActive,
		&m.IsChurch,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Branch{}, err
	}
	m.ParentBranchID = parentID.String
	m.ManagerPersonID = managerPersonID.String
	m.ManagerUserID = managerUserID.String
	return m, nil
}

// SaveBranch inserts a new branch.
func (r *PgxBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	m := toModelBranch(branch)

	query := `
		INSERT INTO branches (` + branchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BranchID,
		m.Name,
		m.Address,
		nullableString(m.ParentBranchID),
		nullableString(m.ManagerPersonID),
		nullableString(m.ManagerUserID),
		m.Ancestors,
		m.Depth,
		m.NodePath,
		m.IsActive,
		m.IsChurch,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: branch %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save branch %s: %w", m.BranchID, err)
	}
	return nil
}

const updateBranchQuery = `
	UPDATE branches
	SET name = $2, address = $3, parent_branch_id = $4, manager_person_id = $5,
	    manager_user_id = $6, ancestors = $7, depth = $8, node_path = $9,
	    is_active = $10, is_church = $11, last_updated_at = $12, last_updated_by = $13
	WHERE branch_id = $1;
`

// pgxExecutor is satisfied by both the pool and a transaction.
type pgxExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func execUpdateBranch(ctx context.Context, db pgxExecutor, branch domain.Branch) error {
	m := toModelBranch(branch)
	cmdTag, err := db.Exec(ctx, updateBranchQuery,
		m.BranchID,
		m.Name,
		m.Address,
		nullableString(m.ParentBranchID),
		nullableString(m.ManagerPersonID),
		nullableString(m.ManagerUserID),
		m.Ancestors,
		m.Depth,
		m.NodePath,
		m.IsActive,
		m.IsChurch,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update branch %s: %w", m.BranchID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateBranch rewrites an existing branch row, including its hierarchy fields.
func (r *PgxBranchRepository) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	return execUpdateBranch(ctx, r.Pool, branch)
}

// UpdateBranches rewrites a set of branch rows in a single transaction. Used
// when a re-parent must move a whole subtree without leaving a half-updated
// hierarchy behind.
func (r *PgxBranchRepository) UpdateBranches(ctx context.Context, branches []domain.Branch) error {
	if len(branches) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	for _, branch := range branches {
		if err := execUpdateBranch(ctx, tx, branch); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// FindBranchByID retrieves a branch by its ID.
func (r *PgxBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	query := `
		SELECT ` + branchColumns + `
		FROM branches
		WHERE branch_id = $1;
	`
	m, err := scanBranch(r.Pool.QueryRow(ctx, query, branchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find branch by ID %s: %w", branchID, err)
	}
	d := toDomainBranch(m)
	return &d, nil
}

// ListBranches retrieves all branches ordered by depth, roots first.
func (r *PgxBranchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	query := `
		SELECT ` + branchColumns + `
		FROM branches
		ORDER BY depth, name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	defer rows.Close()

	branches := []domain.Branch{}
	for rows.Next() {
		m, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branch row: %w", err)
		}
		branches = append(branches, toDomainBranch(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating branch rows: %w", rows.Err())
	}
	return branches, nil
}

// ListChildBranches retrieves the direct children of a branch.
func (r *PgxBranchRepository) ListChildBranches(ctx context.Context, parentBranchID string) ([]domain.Branch, error) {
	query := `
		SELECT ` + branchColumns + `
		FROM branches
		WHERE parent_branch_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, parentBranchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query child branches of %s: %w", parentBranchID, err)
	}
	defer rows.Close()

	branches := []domain.Branch{}
	for rows.Next() {
		m, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan child branch row: %w", err)
		}
		branches = append(branches, toDomainBranch(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating child branch rows: %w", rows.Err())
	}
	return branches, nil
}
