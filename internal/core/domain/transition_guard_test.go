package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vidanueva/church_admin_app/internal/apperrors"
	"github.com/vidanueva/church_admin_app/internal/core/domain"
)

var (
	admin = domain.Identity{UserID: "admin-1", BranchID: "hq", Roles: []domain.RoleKind{domain.RoleAdmin}}

	networkSameBranch  = domain.Identity{UserID: "net-1", BranchID: "branch-1", Roles: []domain.RoleKind{domain.RoleNetworkPastor}}
	networkOtherBranch = domain.Identity{UserID: "net-2", BranchID: "branch-2", Roles: []domain.RoleKind{domain.RoleNetworkPastor}}
	leadPastor         = domain.Identity{UserID: "lead-1", BranchID: "hq", Roles: []domain.RoleKind{domain.RoleLeadPastor}}
	requester          = domain.Identity{UserID: "user-1", PersonID: "person-1", BranchID: "branch-1", Roles: []domain.RoleKind{domain.RoleRequester}}
	otherRequester     = domain.Identity{UserID: "user-9", BranchID: "branch-1", Roles: []domain.RoleKind{domain.RoleRequester}}
)

func TestAuthorizeTransition_Matrix(t *testing.T) {
	tests := []struct {
		name         string
		current      domain.RequestStatus
		requiresLead bool
		target       domain.RequestStatus
		actor        domain.Identity
		wantErr      bool
	}{
		{"network approval by branch network pastor", domain.StatusCreated, false, domain.StatusApprovedNetwork, networkSameBranch, false},
		{"network approval by admin", domain.StatusCreated, false, domain.StatusApprovedNetwork, admin, false},
		{"network approval by network pastor of another branch", domain.StatusCreated, false, domain.StatusApprovedNetwork, networkOtherBranch, true},
		{"network approval by requester", domain.StatusCreated, false, domain.StatusApprovedNetwork, requester, true},
		{"lead approval by lead pastor", domain.StatusApprovedNetwork, true, domain.StatusApprovedLead, leadPastor, false},
		{"lead approval by network pastor", domain.StatusApprovedNetwork, true, domain.StatusApprovedLead, networkSameBranch, true},
		{"admin approval by admin", domain.StatusApprovedNetwork, false, domain.StatusApprovedAdmin, admin, false},
		{"admin approval by lead pastor", domain.StatusApprovedNetwork, false, domain.StatusApprovedAdmin, leadPastor, true},
		{"money delivery by admin", domain.StatusApprovedAdmin, false, domain.StatusMoneyDelivered, admin, false},
		{"expenses by requester", domain.StatusMoneyDelivered, false, domain.StatusExpensesSubmitted, requester, false},
		{"expenses by admin is refused", domain.StatusMoneyDelivered, false, domain.StatusExpensesSubmitted, admin, true},
		{"expenses by another requester", domain.StatusMoneyDelivered, false, domain.StatusExpensesSubmitted, otherRequester, true},
		{"remainder by requester", domain.StatusExpensesSubmitted, false, domain.StatusRemainderRefunded, requester, false},
		{"remainder by admin", domain.StatusExpensesSubmitted, false, domain.StatusRemainderRefunded, admin, false},
		{"remainder by lead pastor", domain.StatusExpensesSubmitted, false, domain.StatusRemainderRefunded, leadPastor, true},
		{"close by admin", domain.StatusExpensesSubmitted, false, domain.StatusClosed, admin, false},
		{"close by requester", domain.StatusExpensesSubmitted, false, domain.StatusClosed, requester, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := newRequest(tc.current, tc.requiresLead)
			err := domain.AuthorizeTransition(req, tc.target, tc.actor)
			if tc.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthorizeTransition_RejectionDependsOnCurrentStatus(t *testing.T) {
	tests := []struct {
		name         string
		current      domain.RequestStatus
		requiresLead bool
		actor        domain.Identity
		wantErr      bool
	}{
		{"reject from created by branch network pastor", domain.StatusCreated, false, networkSameBranch, false},
		{"reject from created by other-branch network pastor", domain.StatusCreated, false, networkOtherBranch, true},
		{"reject from created by requester", domain.StatusCreated, false, requester, true},
		{"reject from network stage needs lead when threshold exceeded", domain.StatusApprovedNetwork, true, leadPastor, false},
		{"reject from network stage refuses network pastor when threshold exceeded", domain.StatusApprovedNetwork, true, networkSameBranch, true},
		{"reject from network stage needs admin below threshold", domain.StatusApprovedNetwork, false, leadPastor, true},
		{"reject from network stage by admin below threshold", domain.StatusApprovedNetwork, false, admin, false},
		{"reject from later stage by admin", domain.StatusMoneyDelivered, false, admin, false},
		{"reject from later stage by lead pastor", domain.StatusMoneyDelivered, false, leadPastor, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := newRequest(tc.current, tc.requiresLead)
			err := domain.AuthorizeTransition(req, domain.StatusRejected, tc.actor)
			if tc.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthorizeTransition_GuardDoesNotMutate(t *testing.T) {
	req := newRequest(domain.StatusApprovedNetwork, false)
	before := len(req.StatusHistory)
	status := req.CurrentStatus

	_ = domain.AuthorizeTransition(req, domain.StatusApprovedAdmin, requester)

	assert.Equal(t, before, len(req.StatusHistory))
	assert.Equal(t, status, req.CurrentStatus)
}
