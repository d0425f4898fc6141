package dto

import (
	"time"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
)

// CreateAccountRequest defines the payload to register a bank account.
type CreateAccountRequest struct {
	PersonID         string `json:"personId" binding:"required"`
	Alias            string `json:"alias,omitempty"`
	BankName         string `json:"bankName" binding:"required"`
	AccountNumber    string `json:"accountNumber" binding:"required"`
	AccountNumberCCI string `json:"accountNumberCci,omitempty"`
	DocType          string `json:"docType,omitempty"`
	DocNumber        string `json:"docNumber,omitempty"`
}

// AccountResponse is the API representation of a bank account.
type AccountResponse struct {
	AccountID        string    `json:"accountId"`
	PersonID         string    `json:"personId"`
	Alias            string    `json:"alias,omitempty"`
	BankName         string    `json:"bankName"`
	AccountNumber    string    `json:"accountNumber"`
	AccountNumberCCI string    `json:"accountNumberCci,omitempty"`
	DocType          string    `json:"docType,omitempty"`
	DocNumber        string    `json:"docNumber,omitempty"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	LastUpdatedAt    time.Time `json:"lastUpdatedAt"`
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain account to its API representation.
func ToAccountResponse(a domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        a.AccountID,
		PersonID:         a.PersonID,
		Alias:            a.Alias,
		BankName:         a.BankName,
		AccountNumber:    a.AccountNumber,
		AccountNumberCCI: a.AccountNumberCCI,
		DocType:          a.DocType,
		DocNumber:        a.DocNumber,
		IsActive:         a.IsActive,
		CreatedAt:        a.CreatedAt,
		LastUpdatedAt:    a.LastUpdatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, ToAccountResponse(a))
	}
	return out
}
