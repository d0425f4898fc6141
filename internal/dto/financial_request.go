package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
)

// RequestItemInput represents a single requested line item.
type RequestItemInput struct {
	Description string          `json:"description" binding:"required,min=3,max=200"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// CreateFinancialRequestRequest defines the payload to open a financial request.
// RequesterUserID is optional and only honored for admin callers; everyone else
// creates requests on their own behalf.
type CreateFinancialRequestRequest struct {
	BranchID         string             `json:"branchId,omitempty"`
	RequesterUserID  string             `json:"requesterUserId,omitempty"`
	Description      string             `json:"description" binding:"required,min=10,max=500"`
	Currency         string             `json:"currency,omitempty" binding:"omitempty,currencycode"`
	CostCenterID     string             `json:"costCenterId,omitempty"`
	Items            []RequestItemInput `json:"items" binding:"required,min=1,dive"`
	DepositType      string             `json:"depositType" binding:"required,deposittype"`
	OwnAccountID     string             `json:"ownAccountId,omitempty"`
	BankName         string             `json:"bankName,omitempty"`
	AccountNumber    string             `json:"accountNumber,omitempty"`
	AccountNumberCCI string             `json:"accountNumberCci,omitempty" binding:"omitempty,max=20"`
	DocType          string             `json:"docType,omitempty"`
	DocNumber        string             `json:"docNumber,omitempty"`
	SupervisorUserID string             `json:"supervisorUserId,omitempty"`
}

// UpdateFinancialRequestRequest defines the editable fields of a request still
// in its initial state. Nil fields are left untouched.
type UpdateFinancialRequestRequest struct {
	BranchID         *string            `json:"branchId,omitempty"`
	Description      *string            `json:"description,omitempty" binding:"omitempty,min=10,max=500"`
	Currency         *string            `json:"currency,omitempty" binding:"omitempty,currencycode"`
	CostCenterID     *string            `json:"costCenterId,omitempty"`
	Items            []RequestItemInput `json:"items,omitempty" binding:"omitempty,min=1,dive"`
	DepositType      *string            `json:"depositType,omitempty" binding:"omitempty,deposittype"`
	OwnAccountID     *string            `json:"ownAccountId,omitempty"`
	BankName         *string            `json:"bankName,omitempty"`
	AccountNumber    *string            `json:"accountNumber,omitempty"`
	AccountNumberCCI *string            `json:"accountNumberCci,omitempty" binding:"omitempty,max=20"`
	DocType          *string            `json:"docType,omitempty"`
	DocNumber        *string            `json:"docNumber,omitempty"`
	SupervisorUserID *string            `json:"supervisorUserId,omitempty"`
}

// ChangeRequestStatusRequest drives a single workflow transition.
type ChangeRequestStatusRequest struct {
	Status          string           `json:"status" binding:"required,requeststatus"`
	EvidenceURLs    []string         `json:"evidenceUrls,omitempty"`
	RejectionReason string           `json:"rejectionReason,omitempty"`
	RemainderAmount *decimal.Decimal `json:"remainderAmount,omitempty"`
	Metadata        map[string]any   `json:"metadata,omitempty"`
}

// ListFinancialRequestsParams holds the supported list filters.
type ListFinancialRequestsParams struct {
	Status          string `form:"status"`
	BranchID        string `form:"branchId"`
	RequesterUserID string `form:"requesterUserId"`
}

// StatusHistoryEntryResponse is one audit trail entry.
type StatusHistoryEntryResponse struct {
	Status          string         `json:"status"`
	ChangedAt       time.Time      `json:"changedAt"`
	ChangedBy       string         `json:"changedBy"`
	Approved        bool           `json:"approved"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
	EvidenceURLs    []string       `json:"evidenceUrls,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// RequestItemResponse is one requested line item.
type RequestItemResponse struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// StateStepResponse is one step of the derived progress view.
type StateStepResponse struct {
	Status    string `json:"status"`
	Completed bool   `json:"completed"`
}

// FinancialRequestResponse is the API representation of a financial request.
type FinancialRequestResponse struct {
	RequestID            string                       `json:"requestId"`
	BranchID             string                       `json:"branchId"`
	RequesterUserID      string                       `json:"requesterUserId"`
	SupervisorUserID     string                       `json:"supervisorUserId,omitempty"`
	Description          string                       `json:"description"`
	Currency             string                       `json:"currency"`
	CostCenterID         string                       `json:"costCenterId,omitempty"`
	Items                []RequestItemResponse        `json:"items"`
	TotalAmount          decimal.Decimal              `json:"totalAmount"`
	RequiresLeadApproval bool                         `json:"requiresLeadApproval"`
	DepositType          string                       `json:"depositType"`
	OwnAccountID         string                       `json:"ownAccountId,omitempty"`
	BankName             string                       `json:"bankName,omitempty"`
	AccountNumber        string                       `json:"accountNumber,omitempty"`
	AccountNumberCCI     string                       `json:"accountNumberCci,omitempty"`
	DocType              string                       `json:"docType,omitempty"`
	DocNumber            string                       `json:"docNumber,omitempty"`
	CurrentStatus        string                       `json:"currentStatus"`
	StatusHistory        []StatusHistoryEntryResponse `json:"statusHistory"`
	RemainderAmount      decimal.Decimal              `json:"remainderAmount"`
	CreatedAt            time.Time                    `json:"createdAt"`
	CreatedBy            string                       `json:"createdBy"`
	LastUpdatedAt        time.Time                    `json:"lastUpdatedAt"`
	LastUpdatedBy        string                       `json:"lastUpdatedBy"`
}

// FinancialRequestDetailResponse augments the base representation with the
// derived progress stepper for single-request reads.
type FinancialRequestDetailResponse struct {
	FinancialRequestResponse
	StateStepper []StateStepResponse `json:"stateStepper"`
}

// ListFinancialRequestsResponse wraps a request listing.
type ListFinancialRequestsResponse struct {
	Requests []FinancialRequestResponse `json:"requests"`
}

// ToFinancialRequestResponse converts a domain financial request to its API representation.
func ToFinancialRequestResponse(r domain.FinancialRequest) FinancialRequestResponse {
	items := make([]RequestItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, RequestItemResponse{Description: it.Description, Amount: it.Amount})
	}
	history := make([]StatusHistoryEntryResponse, 0, len(r.StatusHistory))
	for _, h := range r.StatusHistory {
		history = append(history, StatusHistoryEntryResponse{
			Status:          string(h.Status),
			ChangedAt:       h.ChangedAt,
			ChangedBy:       h.ChangedBy,
			Approved:        h.Approved,
			RejectionReason: h.RejectionReason,
			EvidenceURLs:    h.EvidenceURLs,
			Metadata:        h.Metadata,
		})
	}
	return FinancialRequestResponse{
		RequestID:            r.RequestID,
		BranchID:             r.BranchID,
		RequesterUserID:      r.RequesterUserID,
		SupervisorUserID:     r.SupervisorUserID,
		Description:          r.Description,
		Currency:             string(r.Currency),
		CostCenterID:         r.CostCenterID,
		Items:                items,
		TotalAmount:          r.TotalAmount,
		RequiresLeadApproval: r.RequiresLeadApproval,
		DepositType:          string(r.DepositType),
		OwnAccountID:         r.OwnAccountID,
		BankName:             r.BankName,
		AccountNumber:        r.AccountNumber,
		AccountNumberCCI:     r.AccountNumberCCI,
		DocType:              r.DocType,
		DocNumber:            r.DocNumber,
		CurrentStatus:        string(r.CurrentStatus),
		StatusHistory:        history,
		RemainderAmount:      r.RemainderAmount,
		CreatedAt:            r.CreatedAt,
		CreatedBy:            r.CreatedBy,
		LastUpdatedAt:        r.LastUpdatedAt,
		LastUpdatedBy:        r.LastUpdatedBy,
	}
}

// ToFinancialRequestResponses converts a slice of domain requests.
func ToFinancialRequestResponses(requests []domain.FinancialRequest) []FinancialRequestResponse {
	out := make([]FinancialRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, ToFinancialRequestResponse(r))
	}
	return out
}

// ToFinancialRequestDetailResponse converts a domain request including its stepper.
func ToFinancialRequestDetailResponse(r domain.FinancialRequest) FinancialRequestDetailResponse {
	steps := r.StateStepper()
	stepper := make([]StateStepResponse, 0, len(steps))
	for _, s := range steps {
		stepper = append(stepper, StateStepResponse{Status: string(s.Status), Completed: s.Completed})
	}
	return FinancialRequestDetailResponse{
		FinancialRequestResponse: ToFinancialRequestResponse(r),
		StateStepper:             stepper,
	}
}
