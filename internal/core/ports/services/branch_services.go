package services

import (
	"context"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
	"github.com/vidanueva/church_admin_app/internal/dto"
)

// BranchReaderSvc defines read operations for the branch directory.
type BranchReaderSvc interface {
	GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}

// BranchWriterSvc defines write operations for the branch directory.
type BranchWriterSvc interface {
	CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error)
	UpdateBranch(ctx context.Context, branchID string, req dto.UpdateBranchRequest, updaterUserID string) (*domain.Branch, error)
}

// BranchSvcFacade combines all branch service interfaces.
type BranchSvcFacade interface {
	BranchReaderSvc
	BranchWriterSvc
}
