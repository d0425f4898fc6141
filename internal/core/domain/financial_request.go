package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus is the workflow position of a financial request.
type RequestStatus string

const (
	StatusCreated           RequestStatus = "CREATED"
	StatusApprovedNetwork   RequestStatus = "APPROVED_NETWORK"
	StatusApprovedLead      RequestStatus = "APPROVED_LEAD"
	StatusApprovedAdmin     RequestStatus = "APPROVED_ADMIN"
	StatusMoneyDelivered    RequestStatus = "MONEY_DELIVERED"
	StatusExpensesSubmitted RequestStatus = "EXPENSES_SUBMITTED"
	StatusRemainderRefunded RequestStatus = "REMAINDER_REFUNDED"
	StatusClosed            RequestStatus = "CLOSED"
	StatusRejected          RequestStatus = "REJECTED"
)

// AllRequestStatuses lists every status in workflow order, REJECTED last.
var AllRequestStatuses = []RequestStatus{
	StatusCreated,
	StatusApprovedNetwork,
	StatusApprovedLead,
	StatusApprovedAdmin,
	StatusMoneyDelivered,
	StatusExpensesSubmitted,
	StatusRemainderRefunded,
	StatusClosed,
	StatusRejected,
}

// ValidRequestStatus reports whether s is a known status value.
func ValidRequestStatus(s RequestStatus) bool {
	for _, known := range AllRequestStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s admits no further transitions.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusClosed || s == StatusRejected
}

// RequiresEvidence reports whether a transition into s must carry at least
// one evidence URL.
func (s RequestStatus) RequiresEvidence() bool {
	switch s {
	case StatusMoneyDelivered, StatusExpensesSubmitted, StatusRemainderRefunded:
		return true
	}
	return false
}

// DepositType selects the funds-disbursement destination kind.
type DepositType string

const (
	DepositOwnAccount DepositType = "OWN_ACCOUNT"
	DepositExternal   DepositType = "EXTERNAL"
)

// ValidDepositType reports whether t is a known deposit type.
func ValidDepositType(t DepositType) bool {
	return t == DepositOwnAccount || t == DepositExternal
}

// RequestItem is a single expense line inside a request. It has no identity
// of its own and is owned exclusively by its request.
type RequestItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// StatusHistoryEntry is one step of the append-only audit trail. Entries are
// never edited or removed after creation.
type StatusHistoryEntry struct {
	Status          RequestStatus  `json:"status"`
	ChangedAt       time.Time      `json:"changedAt"`
	ChangedBy       string         `json:"changedBy"` // UserID of the actor
	Approved        bool           `json:"approved"`  // false only for REJECTED entries
	RejectionReason string         `json:"rejectionReason,omitempty"`
	EvidenceURLs    []string       `json:"evidenceUrls"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// FinancialRequest is the aggregate root of the approval workflow.
//
// Invariants: CurrentStatus always equals the status of the last history
// entry, the first entry is CREATED, and TotalAmount equals the sum of the
// item amounts. Terminal requests are immutable.
type FinancialRequest struct {
	RequestID            string               `json:"requestID"`
	BranchID             string               `json:"branchID"`
	SupervisorUserID     string               `json:"supervisorUserID"` // defaults to the branch manager user
	RequesterUserID      string               `json:"requesterUserID"`
	Description          string               `json:"description"`
	Currency             Currency             `json:"currency"`
	CostCenterID         string               `json:"costCenterID,omitempty"`
	Items                []RequestItem        `json:"items"`
	TotalAmount          decimal.Decimal      `json:"totalAmount"`
	DepositType          DepositType          `json:"depositType"`
	OwnAccountID         string               `json:"ownAccountID,omitempty"`
	BankName             string               `json:"bankName,omitempty"`
	AccountNumber        string               `json:"accountNumber,omitempty"`
	AccountNumberCCI     string               `json:"accountNumberCCI,omitempty"`
	DocType              string               `json:"docType,omitempty"`
	DocNumber            string               `json:"docNumber,omitempty"`
	RequiresLeadApproval bool                 `json:"requiresLeadApproval"`
	CurrentStatus        RequestStatus        `json:"currentStatus"`
	StatusHistory        []StatusHistoryEntry `json:"statusHistory"`
	RemainderAmount      decimal.Decimal      `json:"remainderAmount"`
	AuditFields
}

// IsTerminal reports whether the request is in a terminal state.
func (r *FinancialRequest) IsTerminal() bool {
	return r.CurrentStatus.IsTerminal()
}

// CanTransitionTo reports whether nextStatus is reachable in one hop from the
// current status. The main table is threshold-aware: from APPROVED_NETWORK
// the next hop is APPROVED_LEAD only when lead approval is required,
// APPROVED_ADMIN otherwise. REJECTED is reachable from every non-terminal
// state independent of the table.
func (r *FinancialRequest) CanTransitionTo(nextStatus RequestStatus) bool {
	var allowed []RequestStatus

	switch r.CurrentStatus {
	case StatusCreated:
		allowed = []RequestStatus{StatusApprovedNetwork}
	case StatusApprovedNetwork:
		if r.RequiresLeadApproval {
			allowed = []RequestStatus{StatusApprovedLead}
		} else {
			allowed = []RequestStatus{StatusApprovedAdmin}
		}
	case StatusApprovedLead:
		allowed = []RequestStatus{StatusApprovedAdmin}
	case StatusApprovedAdmin:
		allowed = []RequestStatus{StatusMoneyDelivered}
	case StatusMoneyDelivered:
		allowed = []RequestStatus{StatusExpensesSubmitted}
	case StatusExpensesSubmitted:
		allowed = []RequestStatus{StatusRemainderRefunded, StatusClosed}
	case StatusRemainderRefunded:
		allowed = []RequestStatus{StatusClosed}
	}

	if !r.IsTerminal() {
		allowed = append(allowed, StatusRejected)
	}

	for _, s := range allowed {
		if s == nextStatus {
			return true
		}
	}
	return false
}

// RecalculateDerived recomputes TotalAmount from the items and
// RequiresLeadApproval against the given threshold. Invoked explicitly at
// the start of every mutating use-case; never a hidden persistence hook.
func (r *FinancialRequest) RecalculateDerived(leadApprovalThreshold decimal.Decimal) {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.Amount)
	}
	r.TotalAmount = total
	r.RequiresLeadApproval = total.GreaterThan(leadApprovalThreshold)
}

// AppendStatus appends a history entry and moves CurrentStatus to its status,
// keeping the two in lockstep.
func (r *FinancialRequest) AppendStatus(entry StatusHistoryEntry) {
	r.StatusHistory = append(r.StatusHistory, entry)
	r.CurrentStatus = entry.Status
}

// HasReached reports whether the given status appears in the history.
func (r *FinancialRequest) HasReached(status RequestStatus) bool {
	for _, entry := range r.StatusHistory {
		if entry.Status == status {
			return true
		}
	}
	return false
}

// StateStep is one entry of the derived state stepper returned on fetch.
type StateStep struct {
	Status    RequestStatus `json:"status"`
	Completed bool          `json:"completed"`
}

// StateStepper derives the ordered list of statuses relevant to this request:
// APPROVED_LEAD only when lead approval is required, REMAINDER_REFUNDED only
// when a remainder was recorded, REJECTED only when it occurred.
func (r *FinancialRequest) StateStepper() []StateStep {
	steps := make([]StateStep, 0, len(AllRequestStatuses))
	for _, status := range AllRequestStatuses {
		switch status {
		case StatusApprovedLead:
			if !r.RequiresLeadApproval {
				continue
			}
		case StatusRemainderRefunded:
			if !r.RemainderAmount.IsPositive() && !r.HasReached(StatusRemainderRefunded) {
				continue
			}
		case StatusRejected:
			if !r.HasReached(StatusRejected) {
				continue
			}
		}
		steps = append(steps, StateStep{Status: status, Completed: r.HasReached(status)})
	}
	return steps
}
