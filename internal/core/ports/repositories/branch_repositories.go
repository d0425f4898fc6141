package repositories

import (
	"context"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
)

// BranchReader defines read operations for branch data.
type BranchReader interface {
	// FindBranchByID retrieves a branch by its unique identifier.
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)

	// ListBranches retrieves all branches, roots first.
	ListBranches(ctx context.Context) ([]domain.Branch, error)

	// ListChildBranches retrieves the direct children of a branch.
	ListChildBranches(ctx context.Context, parentBranchID string) ([]domain.Branch, error)
}

// BranchWriter defines write operations for branch data.
type BranchWriter interface {
	SaveBranch(ctx context.Context, branch domain.Branch) error
	UpdateBranch(ctx context.Context, branch domain.Branch) error

	// UpdateBranches rewrites multiple branches in a single transaction,
	// used to move a whole subtree atomically.
	UpdateBranches(ctx context.Context, branches []domain.Branch) error
}

// BranchRepositoryFacade combines all branch repository interfaces.
type BranchRepositoryFacade interface {
	BranchReader
	BranchWriter
}
