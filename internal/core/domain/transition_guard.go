package domain

import (
	"fmt"

	"github.com/vidanueva/church_admin_app/internal/apperrors"
)

// AuthorizeTransition is the transition guard: a pure predicate answering
// whether the actor may move the given request to targetStatus. It never
// mutates state and must be evaluated before any mutation occurs. Transition
// legality (the graph hop itself) is checked separately via CanTransitionTo.
//
// Network-level approval is branch-scoped: a network pastor may only act on
// requests from their own branch; the admin role bypasses the branch check.
func AuthorizeTransition(req *FinancialRequest, targetStatus RequestStatus, actor Identity) error {
	isRequester := req.RequesterUserID != "" && req.RequesterUserID == actor.UserID
	hasAdmin := actor.IsAdmin()
	hasNetwork := hasAdmin || (actor.HasRole(RoleNetworkPastor) && actor.BranchID == req.BranchID)
	hasLead := hasAdmin || actor.HasRole(RoleLeadPastor)

	switch targetStatus {
	case StatusApprovedNetwork:
		if !hasNetwork {
			return fmt.Errorf("%w: network-level approval requires the network pastor role for this branch or an admin", apperrors.ErrForbidden)
		}
	case StatusApprovedLead:
		if !hasLead {
			return fmt.Errorf("%w: lead-level approval requires the lead pastor or admin role", apperrors.ErrForbidden)
		}
	case StatusApprovedAdmin, StatusMoneyDelivered, StatusClosed:
		if !hasAdmin {
			return fmt.Errorf("%w: only an admin may perform this step", apperrors.ErrForbidden)
		}
	case StatusExpensesSubmitted:
		if !isRequester {
			return fmt.Errorf("%w: only the requester may submit expense evidence", apperrors.ErrForbidden)
		}
	case StatusRemainderRefunded:
		if !isRequester && !hasAdmin {
			return fmt.Errorf("%w: only the requester or an admin may report a remainder refund", apperrors.ErrForbidden)
		}
	case StatusRejected:
		return authorizeRejection(req, hasNetwork, hasLead, hasAdmin)
	}
	return nil
}

// authorizeRejection gates REJECTED by the request's current status: the
// earlier the stage, the lower the role needed to reject.
func authorizeRejection(req *FinancialRequest, hasNetwork, hasLead, hasAdmin bool) error {
	switch req.CurrentStatus {
	case StatusCreated:
		if !hasNetwork {
			return fmt.Errorf("%w: only a network pastor of this branch or an admin may reject at this stage", apperrors.ErrForbidden)
		}
	case StatusApprovedNetwork:
		if req.RequiresLeadApproval {
			if !hasLead {
				return fmt.Errorf("%w: only the lead pastor or an admin may reject at this stage", apperrors.ErrForbidden)
			}
		} else if !hasAdmin {
			return fmt.Errorf("%w: only an admin may reject at this stage", apperrors.ErrForbidden)
		}
	case StatusApprovedLead, StatusApprovedAdmin, StatusMoneyDelivered,
		StatusExpensesSubmitted, StatusRemainderRefunded:
		if !hasAdmin {
			return fmt.Errorf("%w: only an admin may reject at this stage", apperrors.ErrForbidden)
		}
	default:
		// Terminal states are blocked upstream by the transition-graph check.
		return fmt.Errorf("%w: rejection is not possible at this stage", apperrors.ErrStateConflict)
	}
	return nil
}
