package domain

// Account is a bank account registered to a person. The workflow engine uses
// it to validate OWN_ACCOUNT deposit destinations: the account must be active
// and owned by the requester's person.
type Account struct {
	AccountID        string `json:"accountID"` // Primary Key (e.g., UUID)
	PersonID         string `json:"personID"`  // Owning person
	Alias            string `json:"alias"`     // Optional friendly name
	BankName         string `json:"bankName"`
	AccountNumber    string `json:"accountNumber"`
	AccountNumberCCI string `json:"accountNumberCCI"` // Interbank account code, max 20 chars
	DocType          string `json:"docType"`
	DocNumber        string `json:"docNumber"`
	IsActive         bool   `json:"isActive"`
	AuditFields
}
