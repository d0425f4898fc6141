package models

// User is the users table row. Credentials live with the external identity
// provider; this system only reads users for identity resolution and
// supervisor defaulting.
type User struct {
	UserID    string   `db:"user_id"`
	Username  string   `db:"username"`
	Email     string   `db:"email"`
	PersonID  string   `db:"person_id"`
	BranchID  string   `db:"branch_id"`
	RoleNames []string `db:"role_names"`
	IsActive  bool     `db:"is_active"`
	AuditFields
}
