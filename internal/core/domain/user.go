package domain

import "strings"

// RoleKind is the closed set of role kinds the workflow engine understands.
// Raw role names coming from the identity provider are resolved into this
// enum once at the auth boundary; the guard never re-parses strings.
type RoleKind string

const (
	RoleRequester     RoleKind = "REQUESTER"
	RoleNetworkPastor RoleKind = "NETWORK_PASTOR"
	RoleLeadPastor    RoleKind = "LEAD_PASTOR"
	RoleAdmin         RoleKind = "ADMIN"
)

// ParseRoleKind resolves a raw role name (case-insensitive) into a RoleKind.
// Unknown names yield ok=false and are ignored by the caller.
func ParseRoleKind(raw string) (RoleKind, bool) {
	switch RoleKind(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleRequester:
		return RoleRequester, true
	case RoleNetworkPastor:
		return RoleNetworkPastor, true
	case RoleLeadPastor:
		return RoleLeadPastor, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// ParseRoleKinds resolves a list of raw role names, dropping unknown ones
// and duplicates while preserving order.
func ParseRoleKinds(raw []string) []RoleKind {
	seen := make(map[RoleKind]struct{}, len(raw))
	kinds := make([]RoleKind, 0, len(raw))
	for _, name := range raw {
		kind, ok := ParseRoleKind(name)
		if !ok {
			continue
		}
		if _, dup := seen[kind]; dup {
			continue
		}
		seen[kind] = struct{}{}
		kinds = append(kinds, kind)
	}
	return kinds
}

// User represents a system user as provided by the identity store.
// Users are managed outside this system; we only read them.
type User struct {
	UserID    string   `json:"userID"`   // Primary Key (e.g., UUID)
	Username  string   `json:"username"` // Unique login name
	Email     string   `json:"email"`
	PersonID  string   `json:"personID"` // Reference to the person record
	BranchID  string   `json:"branchID"` // Branch the user is assigned to (may be empty)
	RoleNames []string `json:"roleNames"`
	IsActive  bool     `json:"isActive"`
	AuditFields
}

// Identity is the authenticated actor as seen by the workflow engine:
// the user reference plus its branch, person and resolved role kinds.
type Identity struct {
	UserID   string     `json:"userID"`
	PersonID string     `json:"personID"`
	BranchID string     `json:"branchID"`
	Roles    []RoleKind `json:"roles"`
}

// HasRole reports whether the identity holds any of the given role kinds.
func (id Identity) HasRole(kinds ...RoleKind) bool {
	for _, have := range id.Roles {
		for _, want := range kinds {
			if have == want {
				return true
			}
		}
	}
	return false
}

// IsAdmin reports whether the identity holds the admin role.
func (id Identity) IsAdmin() bool {
	return id.HasRole(RoleAdmin)
}

// IdentityOf builds an Identity from a stored user record.
func IdentityOf(u User) Identity {
	return Identity{
		UserID:   u.UserID,
		PersonID: u.PersonID,
		BranchID: u.BranchID,
		Roles:    ParseRoleKinds(u.RoleNames),
	}
}
