package models

// Branch is the branches table row.
type Branch struct {
	BranchID        string   `db:"branch_id"`
	Name            string   `db:"name"`
	Address         string   `db:"address"`
	ParentBranchID  string   `db:"parent_branch_id"`
	ManagerPersonID string   `db:"manager_person_id"`
	ManagerUserID   string   `db:"manager_user_id"`
	Ancestors       []string `db:"ancestors"`
	Depth           int      `db:"depth"`
	NodePath        string   `db:"node_path"`
	IsActive        bool     `db:"is_active"`
	IsChurch        bool     `db:"is_church"`
	AuditFields
}
