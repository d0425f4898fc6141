package domain

import "github.com/shopspring/decimal"

// Currency is the set of currencies requests may be expressed in.
type Currency string

const (
	CurrencyPEN Currency = "PEN"
	CurrencyUSD Currency = "USD"
)

// ValidCurrency reports whether c is a supported currency.
func ValidCurrency(c Currency) bool {
	return c == CurrencyPEN || c == CurrencyUSD
}

// RemainderTarget describes where refunded remainders are deposited.
type RemainderTarget struct {
	AccountName   string `json:"accountName"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	Notes         string `json:"notes"`
}

// GlobalConfig is the singleton financial configuration record. It is lazily
// created with defaults on first read and re-read on every workflow use-case
// so threshold changes take effect immediately.
type GlobalConfig struct {
	ConfigID              string          `json:"configID"`
	MaxAmountLeadApproval decimal.Decimal `json:"maxAmountLeadApproval"`
	DefaultCurrency       Currency        `json:"defaultCurrency"`
	RemainderTarget       RemainderTarget `json:"remainderTarget"`
	AuditFields
}

// DefaultGlobalConfig returns the configuration seeded on first read.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		MaxAmountLeadApproval: decimal.NewFromInt(500),
		DefaultCurrency:       CurrencyPEN,
	}
}
