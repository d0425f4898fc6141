package dto

import (
	"time"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
)

// UserResponse is the API representation of a user.
type UserResponse struct {
	UserID        string    `json:"userId"`
	Username      string    `json:"username"`
	Email         string    `json:"email,omitempty"`
	PersonID      string    `json:"personId,omitempty"`
	BranchID      string    `json:"branchId,omitempty"`
	RoleNames     []string  `json:"roleNames"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToUserResponse converts a domain user to its API representation.
func ToUserResponse(u domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		Username:      u.Username,
		Email:         u.Email,
		PersonID:      u.PersonID,
		BranchID:      u.BranchID,
		RoleNames:     u.RoleNames,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
		LastUpdatedAt: u.LastUpdatedAt,
	}
}
