package models

// Account is the accounts table row (person-owned bank accounts).
type Account struct {
	AccountID        string `db:"account_id"`
	PersonID         string `db:"person_id"`
	Alias            string `db:"alias"`
	BankName         string `db:"bank_name"`
	AccountNumber    string `db:"account_number"`
	AccountNumberCCI string `db:"account_number_cci"`
	DocType          string `db:"doc_type"`
	DocNumber        string `db:"doc_number"`
	IsActive         bool   `db:"is_active"`
	AuditFields
}
