package models

import "github.com/shopspring/decimal"

// FinancialRequest is the financial_requests table row. The aggregate's
// items and status history are stored as JSONB documents so every save is a
// single atomic row write.
type FinancialRequest struct {
	RequestID            string          `db:"request_id"`
	BranchID             string          `db:"branch_id"`
	SupervisorUserID     string          `db:"supervisor_user_id"`
	RequesterUserID      string          `db:"requester_user_id"`
	Description          string          `db:"description"`
	Currency             string          `db:"currency"`
	CostCenterID         string          `db:"cost_center_id"`
	Items                []byte          `db:"items"`          // JSONB array of request items
	TotalAmount          decimal.Decimal `db:"total_amount"`
	DepositType          string          `db:"deposit_type"`
	OwnAccountID         string          `db:"own_account_id"`
	BankName             string          `db:"bank_name"`
	AccountNumber        string          `db:"account_number"`
	AccountNumberCCI     string          `db:"account_number_cci"`
	DocType              string          `db:"doc_type"`
	DocNumber            string          `db:"doc_number"`
	RequiresLeadApproval bool            `db:"requires_lead_approval"`
	CurrentStatus        string          `db:"current_status"`
	StatusHistory        []byte          `db:"status_history"` // JSONB array of history entries
	RemainderAmount      decimal.Decimal `db:"remainder_amount"`
	AuditFields
}
