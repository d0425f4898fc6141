package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
)

// RemainderTargetPayload describes where leftover funds must be refunded.
type RemainderTargetPayload struct {
	AccountName   string `json:"accountName,omitempty"`
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// UpdateGlobalConfigRequest defines the PATCH payload for the finance
// configuration. Nil fields are left untouched.
type UpdateGlobalConfigRequest struct {
	MaxAmountLeadApproval *decimal.Decimal        `json:"maxAmountLeadApproval,omitempty"`
	DefaultCurrency       *string                 `json:"defaultCurrency,omitempty" binding:"omitempty,currencycode"`
	RemainderTarget       *RemainderTargetPayload `json:"remainderTarget,omitempty"`
}

// GlobalConfigResponse is the API representation of the finance configuration.
type GlobalConfigResponse struct {
	ConfigID              string                 `json:"configId"`
	MaxAmountLeadApproval decimal.Decimal        `json:"maxAmountLeadApproval"`
	DefaultCurrency       string                 `json:"defaultCurrency"`
	RemainderTarget       RemainderTargetPayload `json:"remainderTarget"`
	CreatedAt             time.Time              `json:"createdAt"`
	CreatedBy             string                 `json:"createdBy"`
	LastUpdatedAt         time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy         string                 `json:"lastUpdatedBy"`
}

// ToGlobalConfigResponse converts the domain configuration to its API representation.
func ToGlobalConfigResponse(c domain.GlobalConfig) GlobalConfigResponse {
	return GlobalConfigResponse{
		ConfigID:              c.ConfigID,
		MaxAmountLeadApproval: c.MaxAmountLeadApproval,
		DefaultCurrency:       string(c.DefaultCurrency),
		RemainderTarget: RemainderTargetPayload{
			AccountName:   c.RemainderTarget.AccountName,
			BankName:      c.RemainderTarget.BankName,
			AccountNumber: c.RemainderTarget.AccountNumber,
			Notes:         c.RemainderTarget.Notes,
		},
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}
