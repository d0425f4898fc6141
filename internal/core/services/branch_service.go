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

// branchService implements the BranchSvcFacade interface. Branches form a
// tree; ancestors, depth and node path are materialized on every write so
// reads never need to walk the hierarchy.
type branchService struct {
	BaseService
	branchRepo portsrepo.BranchRepositoryFacade
	userRepo   portsrepo.UserReader
}

// NewBranchService creates a new branch service with the provided dependencies
func NewBranchService(branchRepo portsrepo.BranchRepositoryFacade, userRepo portsrepo.UserReader) portssvc.BranchSvcFacade {
	return &branchService{branchRepo: branchRepo, userRepo: userRepo}
}

var _ portssvc.BranchSvcFacade = (*branchService)(nil)

// GetBranchByID retrieves a branch by its ID.
func (s *branchService) GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	branch, err := s.branchRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find branch by ID",
				slog.String("branch_id", branchID))
		}
		return nil, err
	}
	return branch, nil
}

// ListBranches retrieves all branches, roots first.
func (s *branchService) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	branches, err := s.branchRepo.ListBranches(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list branches")
		return nil, err
	}
	if branches == nil {
		return []domain.Branch{}, nil
	}
	return branches, nil
}

// applyHierarchy materializes ancestors, depth and node path from the parent.
func applyHierarchy(branch *domain.Branch, parent *domain.Branch) {
	if parent == nil {
		branch.ParentBranchID = ""
		branch.Ancestors = []string{}
		branch.Depth = 0
		branch.NodePath = "/" + branch.BranchID
		return
	}
	branch.ParentBranchID = parent.BranchID
	branch.Ancestors = append(append([]string{}, parent.Ancestors...), parent.BranchID)
	branch.Depth = parent.Depth + 1
	branch.NodePath = parent.NodePath + "/" + branch.BranchID
}

func (s *branchService) loadParent(ctx context.Context, parentBranchID string) (*domain.Branch, error) {
	if parentBranchID == "" {
		return nil, nil
	}
	parent, err := s.branchRepo.FindBranchByID(ctx, parentBranchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: parent branch %s not found", apperrors.ErrValidation, parentBranchID)
		}
		return nil, err
	}
	if !parent.IsActive {
		return nil, fmt.Errorf("%w: parent branch %s is inactive", apperrors.ErrValidation, parentBranchID)
	}
	return parent, nil
}

func (s *branchService) validateManagerUser(ctx context.Context, managerUserID string) error {
	if managerUserID == "" {
		return nil
	}
	exists, err := s.userRepo.UserExists(ctx, managerUserID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: manager user %s not found", apperrors.ErrValidation, managerUserID)
	}
	return nil
}

// CreateBranch registers a new branch under an optional parent.
func (s *branchService) CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: branch name is required", apperrors.ErrValidation)
	}

	parent, err := s.loadParent(ctx, req.ParentBranchID)
	if err != nil {
		return nil, err
	}
	if err := s.validateManagerUser(ctx, req.ManagerUserID); err != nil {
		return nil, err
	}

	now := time.Now()
	isChurch := true
	if req.IsChurch != nil {
		isChurch = *req.IsChurch
	}
	branch := domain.Branch{
		BranchID:        uuid.NewString(),
		Name:            name,
		Address:         req.Address,
		ManagerPersonID: req.ManagerPersonID,
		ManagerUserID:   req.ManagerUserID,
		IsActive:        true,
		IsChurch:        isChurch,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	applyHierarchy(&branch, parent)

	if err := s.branchRepo.SaveBranch(ctx, branch); err != nil {
		s.LogError(ctx, err, "Failed to save branch",
			slog.String("branch_id", branch.BranchID))
		return nil, err
	}

	s.LogInfo(ctx, "Branch created",
		slog.String("branch_id", branch.BranchID),
		slog.String("name", branch.Name),
		slog.Int("depth", branch.Depth))
	return &branch, nil
}

// UpdateBranch edits a branch. Re-parenting rejects cycles and refreshes the
// materialized hierarchy of every descendant.
func (s *branchService) UpdateBranch(ctx context.Context, branchID string, req dto.UpdateBranchRequest, updaterUserID string) (*domain.Branch, error) {
	branch, err := s.branchRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: branch name cannot be emptied", apperrors.ErrValidation)
		}
		branch.Name = name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.ManagerPersonID != nil {
		branch.ManagerPersonID = *req.ManagerPersonID
	}
	if req.ManagerUserID != nil {
		if err := s.validateManagerUser(ctx, *req.ManagerUserID); err != nil {
			return nil, err
		}
		branch.ManagerUserID = *req.ManagerUserID
	}
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}
	if req.IsChurch != nil {
		branch.IsChurch = *req.IsChurch
	}

	reparented := req.ParentBranchID != nil && *req.ParentBranchID != branch.ParentBranchID
	if reparented {
		if *req.ParentBranchID == branchID {
			return nil, fmt.Errorf("%w: a branch cannot be its own parent", apperrors.ErrValidation)
		}
		parent, err := s.loadParent(ctx, *req.ParentBranchID)
		if err != nil {
			return nil, err
		}
		if parent != nil {
			for _, ancestorID := range parent.Ancestors {
				if ancestorID == branchID {
					return nil, fmt.Errorf("%w: moving branch %s under %s would create a cycle", apperrors.ErrValidation, branchID, parent.BranchID)
				}
			}
		}
		applyHierarchy(branch, parent)
	}

	branch.LastUpdatedAt = time.Now()
	branch.LastUpdatedBy = updaterUserID

	if reparented {
		// Re-parenting moves the whole subtree; write it as one transaction
		// so the hierarchy never ends up half-updated.
		subtree, err := s.collectSubtreeRefresh(ctx, branch, updaterUserID)
		if err != nil {
			s.LogError(ctx, err, "Failed to collect descendant hierarchy",
				slog.String("branch_id", branchID))
			return nil, err
		}
		if err := s.branchRepo.UpdateBranches(ctx, subtree); err != nil {
			s.LogError(ctx, err, "Failed to update branch subtree",
				slog.String("branch_id", branchID))
			return nil, err
		}
	} else if err := s.branchRepo.UpdateBranch(ctx, *branch); err != nil {
		s.LogError(ctx, err, "Failed to update branch",
			slog.String("branch_id", branchID))
		return nil, err
	}

	s.LogInfo(ctx, "Branch updated", slog.String("branch_id", branchID))
	return branch, nil
}

// collectSubtreeRefresh walks the subtree below root level by level and
// returns root plus every descendant with its hierarchy fields recomputed.
func (s *branchService) collectSubtreeRefresh(ctx context.Context, root *domain.Branch, updaterUserID string) ([]domain.Branch, error) {
	now := time.Now()
	updated := []domain.Branch{*root}
	queue := []*domain.Branch{root}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		children, err := s.branchRepo.ListChildBranches(ctx, parent.BranchID)
		if err != nil {
			return nil, err
		}
		for i := range children {
			child := children[i]
			applyHierarchy(&child, parent)
			child.LastUpdatedAt = now
			child.LastUpdatedBy = updaterUserID
			updated = append(updated, child)
			queue = append(queue, &child)
		}
	}
	return updated, nil
}
