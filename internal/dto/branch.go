package dto

import (
	"time"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
)

// CreateBranchRequest defines the payload to register a branch.
type CreateBranchRequest struct {
	Name            string `json:"name" binding:"required"`
	Address         string `json:"address,omitempty"`
	ParentBranchID  string `json:"parentBranchId,omitempty"`
	ManagerPersonID string `json:"managerPersonId,omitempty"`
	ManagerUserID   string `json:"managerUserId,omitempty"`
	IsChurch        *bool  `json:"isChurch,omitempty"`
}

// UpdateBranchRequest defines the editable fields of a branch. Nil fields are
// left untouched.
type UpdateBranchRequest struct {
	Name            *string `json:"name,omitempty"`
	Address         *string `json:"address,omitempty"`
	ParentBranchID  *string `json:"parentBranchId,omitempty"`
	ManagerPersonID *string `json:"managerPersonId,omitempty"`
	ManagerUserID   *string `json:"managerUserId,omitempty"`
	IsActive        *bool   `json:"isActive,omitempty"`
	IsChurch        *bool   `json:"isChurch,omitempty"`
}

// BranchResponse is the API representation of a branch.
type BranchResponse struct {
	BranchID        string    `json:"branchId"`
	Name            string    `json:"name"`
	Address         string    `json:"address,omitempty"`
	ParentBranchID  string    `json:"parentBranchId,omitempty"`
	ManagerPersonID string    `json:"managerPersonId,omitempty"`
	ManagerUserID   string    `json:"managerUserId,omitempty"`
	Ancestors       []string  `json:"ancestors"`
	Depth           int       `json:"depth"`
	NodePath        string    `json:"nodePath"`
	IsActive        bool      `json:"isActive"`
	IsChurch        bool      `json:"isChurch"`
	CreatedAt       time.Time `json:"createdAt"`
	LastUpdatedAt   time.Time `json:"lastUpdatedAt"`
}

// ListBranchesResponse wraps a branch listing.
type ListBranchesResponse struct {
	Branches []BranchResponse `json:"branches"`
}

// ToBranchResponse converts a domain branch to its API representation.
func ToBranchResponse(b domain.Branch) BranchResponse {
	return BranchResponse{
		BranchID:        b.BranchID,
		Name:            b.Name,
		Address:         b.Address,
		ParentBranchID:  b.ParentBranchID,
		ManagerPersonID: b.ManagerPersonID,
		ManagerUserID:   b.ManagerUserID,
		Ancestors:       b.Ancestors,
		Depth:           b.Depth,
		NodePath:        b.NodePath,
		IsActive:        b.IsActive,
		IsChurch:        b.IsChurch,
		CreatedAt:       b.CreatedAt,
		LastUpdatedAt:   b.LastUpdatedAt,
	}
}

// ToBranchResponses converts a slice of domain branches.
func ToBranchResponses(branches []domain.Branch) []BranchResponse {
	out := make([]BranchResponse, 0, len(branches))
	for _, b := range branches {
		out = append(out, ToBranchResponse(b))
	}
	return out
}
