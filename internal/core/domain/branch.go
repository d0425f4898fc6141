package domain

// Branch is a node in the organizational hierarchy (a church or a ministry).
// The ancestors chain, depth and node path are recomputed explicitly whenever
// the parent changes; see BranchService.
type Branch struct {
	BranchID        string   `json:"branchID"`        // Primary Key (e.g., UUID)
	Name            string   `json:"name"`            // Unique display name
	Address         string   `json:"address"`         // Optional physical address
	ParentBranchID  string   `json:"parentBranchID"`  // Empty for a root branch
	ManagerPersonID string   `json:"managerPersonID"` // Person in charge of the branch
	ManagerUserID   string   `json:"managerUserID"`   // System user of the manager (may be empty)
	Ancestors       []string `json:"ancestors"`       // Root-to-parent chain of branch IDs
	Depth           int      `json:"depth"`           // 0 for a root branch
	NodePath        string   `json:"nodePath"`        // Dotted chain of IDs from root to this node
	IsActive        bool     `json:"isActive"`
	IsChurch        bool     `json:"isChurch"` // true for a church, false for a ministry
	AuditFields
}
