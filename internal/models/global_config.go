package models

import "github.com/shopspring/decimal"

// GlobalConfig is the global_config table row (singleton).
// The remainder target is stored as a JSONB document.
type GlobalConfig struct {
	ConfigID              string          `db:"config_id"`
	MaxAmountLeadApproval decimal.Decimal `db:"max_amount_lead_approval"`
	DefaultCurrency       string          `db:"default_currency"`
	RemainderTarget       []byte          `db:"remainder_target"` // JSONB
	AuditFields
}
