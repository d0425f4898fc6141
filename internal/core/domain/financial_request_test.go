package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
)

func newRequest(current domain.RequestStatus, requiresLead bool) *domain.FinancialRequest {
	r := &domain.FinancialRequest{
		RequestID:            "req-1",
		BranchID:             "branch-1",
		RequesterUserID:      "user-1",
		CurrentStatus:        domain.StatusCreated,
		RequiresLeadApproval: requiresLead,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusCreated, ChangedBy: "user-1", Approved: true},
		},
	}
	// Walk the history forward so CurrentStatus and StatusHistory stay in lockstep.
	for _, s := range pathTo(current, requiresLead) {
		r.AppendStatus(domain.StatusHistoryEntry{Status: s, ChangedBy: "user-1", Approved: s != domain.StatusRejected})
	}
	return r
}

func pathTo(target domain.RequestStatus, requiresLead bool) []domain.RequestStatus {
	main := []domain.RequestStatus{
		domain.StatusApprovedNetwork,
		domain.StatusApprovedLead,
		domain.StatusApprovedAdmin,
		domain.StatusMoneyDelivered,
		domain.StatusExpensesSubmitted,
		domain.StatusRemainderRefunded,
		domain.StatusClosed,
	}
	if target == domain.StatusCreated {
		return nil
	}
	if target == domain.StatusRejected {
		return []domain.RequestStatus{domain.StatusRejected}
	}
	path := make([]domain.RequestStatus, 0, len(main))
	for _, s := range main {
		if s == domain.StatusApprovedLead && !requiresLead {
			continue
		}
		path = append(path, s)
		if s == target {
			return path
		}
	}
	return path
}

func TestCanTransitionTo_MainPath(t *testing.T) {
	tests := []struct {
		name         string
		current      domain.RequestStatus
		requiresLead bool
		target       domain.RequestStatus
		want         bool
	}{
		{"created to network", domain.StatusCreated, false, domain.StatusApprovedNetwork, true},
		{"created cannot skip to admin", domain.StatusCreated, false, domain.StatusApprovedAdmin, false},
		{"network to admin below threshold", domain.StatusApprovedNetwork, false, domain.StatusApprovedAdmin, true},
		{"network to lead below threshold blocked", domain.StatusApprovedNetwork, false, domain.StatusApprovedLead, false},
		{"network to lead above threshold", domain.StatusApprovedNetwork, true, domain.StatusApprovedLead, true},
		{"network to admin above threshold blocked", domain.StatusApprovedNetwork, true, domain.StatusApprovedAdmin, false},
		{"lead to admin", domain.StatusApprovedLead, true, domain.StatusApprovedAdmin, true},
		{"admin to delivered", domain.StatusApprovedAdmin, false, domain.StatusMoneyDelivered, true},
		{"delivered to expenses", domain.StatusMoneyDelivered, false, domain.StatusExpensesSubmitted, true},
		{"expenses to remainder", domain.StatusExpensesSubmitted, false, domain.StatusRemainderRefunded, true},
		{"expenses straight to closed", domain.StatusExpensesSubmitted, false, domain.StatusClosed, true},
		{"remainder to closed", domain.StatusRemainderRefunded, false, domain.StatusClosed, true},
		{"closed is terminal", domain.StatusClosed, false, domain.StatusRejected, false},
		{"rejected is terminal", domain.StatusRejected, false, domain.StatusApprovedNetwork, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRequest(tc.current, tc.requiresLead)
			assert.Equal(t, tc.want, r.CanTransitionTo(tc.target))
		})
	}
}

func TestCanTransitionTo_RejectedFromEveryNonTerminalState(t *testing.T) {
	nonTerminal := []domain.RequestStatus{
		domain.StatusCreated,
		domain.StatusApprovedNetwork,
		domain.StatusApprovedLead,
		domain.StatusApprovedAdmin,
		domain.StatusMoneyDelivered,
		domain.StatusExpensesSubmitted,
		domain.StatusRemainderRefunded,
	}
	for _, s := range nonTerminal {
		r := newRequest(s, true)
		assert.True(t, r.CanTransitionTo(domain.StatusRejected), "expected REJECTED reachable from %s", s)
	}
}

func TestRecalculateDerived(t *testing.T) {
	r := &domain.FinancialRequest{
		Items: []domain.RequestItem{
			{Description: "Taxi", Amount: decimal.NewFromInt(50)},
			{Description: "Food", Amount: decimal.NewFromInt(30)},
		},
	}

	r.RecalculateDerived(decimal.NewFromInt(100))
	assert.True(t, r.TotalAmount.Equal(decimal.NewFromInt(80)))
	assert.False(t, r.RequiresLeadApproval)

	// Same items, lower threshold: the flag must be re-derived, not cached.
	r.RecalculateDerived(decimal.NewFromInt(50))
	assert.True(t, r.RequiresLeadApproval)

	// Exactly at the threshold does not require lead approval.
	r.RecalculateDerived(decimal.NewFromInt(80))
	assert.False(t, r.RequiresLeadApproval)
}

func TestAppendStatus_KeepsHistoryInvariant(t *testing.T) {
	r := newRequest(domain.StatusCreated, false)
	r.AppendStatus(domain.StatusHistoryEntry{Status: domain.StatusApprovedNetwork, ChangedBy: "user-2", Approved: true})

	require.NotEmpty(t, r.StatusHistory)
	assert.Equal(t, domain.StatusCreated, r.StatusHistory[0].Status)
	assert.Equal(t, r.CurrentStatus, r.StatusHistory[len(r.StatusHistory)-1].Status)
}

func TestStateStepper(t *testing.T) {
	t.Run("skips lead step when not required", func(t *testing.T) {
		r := newRequest(domain.StatusApprovedNetwork, false)
		steps := r.StateStepper()

		statuses := make([]domain.RequestStatus, len(steps))
		for i, s := range steps {
			statuses[i] = s.Status
		}
		assert.Equal(t, []domain.RequestStatus{
			domain.StatusCreated,
			domain.StatusApprovedNetwork,
			domain.StatusApprovedAdmin,
			domain.StatusMoneyDelivered,
			domain.StatusExpensesSubmitted,
			domain.StatusClosed,
		}, statuses)
		assert.True(t, steps[0].Completed)
		assert.True(t, steps[1].Completed)
		assert.False(t, steps[2].Completed)
	})

	t.Run("includes lead step when required", func(t *testing.T) {
		r := newRequest(domain.StatusCreated, true)
		steps := r.StateStepper()
		found := false
		for _, s := range steps {
			if s.Status == domain.StatusApprovedLead {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("includes remainder step once recorded", func(t *testing.T) {
		r := newRequest(domain.StatusRemainderRefunded, false)
		r.RemainderAmount = decimal.NewFromInt(5)
		steps := r.StateStepper()
		found := false
		for _, s := range steps {
			if s.Status == domain.StatusRemainderRefunded {
				found = true
				assert.True(t, s.Completed)
			}
		}
		assert.True(t, found)
	})

	t.Run("includes rejected only when it occurred", func(t *testing.T) {
		r := newRequest(domain.StatusCreated, false)
		for _, s := range r.StateStepper() {
			assert.NotEqual(t, domain.StatusRejected, s.Status)
		}

		r.AppendStatus(domain.StatusHistoryEntry{Status: domain.StatusRejected, ChangedBy: "user-2", RejectionReason: "no budget"})
		last := r.StateStepper()
		assert.Equal(t, domain.StatusRejected, last[len(last)-1].Status)
		assert.True(t, last[len(last)-1].Completed)
	})
}

func TestParseRoleKinds(t *testing.T) {
	kinds := domain.ParseRoleKinds([]string{"admin", "Network_Pastor", "usher", "ADMIN"})
	assert.Equal(t, []domain.RoleKind{domain.RoleAdmin, domain.RoleNetworkPastor}, kinds)
}
