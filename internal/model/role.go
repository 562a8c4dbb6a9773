package model

// Role is the closed set of user roles. All roles except RoleSuperAdmin
// participate in the rank order used for community-scoped authorization;
// RoleSuperAdmin sits deliberately outside that order (see the authz
// package for the data-sovereignty rule).
type Role string

const (
	RoleViewer     Role = "viewer"
	RoleElder      Role = "elder"
	RoleEditor     Role = "editor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// IsValid returns true if the role is a recognized role
func (r Role) IsValid() bool {
	switch r {
	case RoleViewer, RoleElder, RoleEditor, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// IsCommunityRole returns true for roles that may hold community data access.
// The top-level system role is categorically excluded.
func (r Role) IsCommunityRole() bool {
	return r.IsValid() && r != RoleSuperAdmin
}
