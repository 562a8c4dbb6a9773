// Package authz implements the role hierarchy and permission matrix that
// govern community data access.
//
// # Role Hierarchy
//
// Four community roles form a total order:
//
//	viewer < elder < editor < admin
//
// The fifth role, super_admin, is excluded from the order entirely. It is the
// data-sovereignty rule: the most powerful system identity is categorically
// weaker than every community role whenever community data is in question.
// HasRoleHierarchy returns false for super_admin against every required role.
//
// # Permission Matrix
//
// Each role maps to a set of permission strings in domain:verb form. A set
// may contain domain wildcards (places:*) or the universal wildcard (*).
// admin holds the universal wildcard; super_admin holds only system:*, which
// is disjoint from every community permission.
//
// # Cultural Override
//
// Elders rank below editors, but carry cultural:read and cultural:validate
// out of band, and may be configured to override content restriction flags
// that block higher-ranked roles. Rank governs generic CRUD gating; cultural
// access is granted to elders specifically.
//
// Rules are built once at startup with NewRules (or NewCustomRules in tests)
// and are read-only afterwards, safe for unsynchronized concurrent reads.
package authz

import (
	"strings"

	"github.com/longhouse/storymap/api/internal/model"
)

// Permission strings in domain:verb form.
const (
	PermAll    = "*"
	PermSystem = "system:*"

	PermStoriesRead   = "stories:read"
	PermStoriesWrite  = "stories:write"
	PermStoriesDelete = "stories:delete"

	PermPlacesRead   = "places:read"
	PermPlacesWrite  = "places:write"
	PermPlacesDelete = "places:delete"

	PermSpeakersRead   = "speakers:read"
	PermSpeakersWrite  = "speakers:write"
	PermSpeakersDelete = "speakers:delete"

	PermCulturalRead     = "cultural:read"
	PermCulturalValidate = "cultural:validate"
)

// Rules holds the static role hierarchy and permission matrix.
// Immutable after construction.
type Rules struct {
	ranks       map[model.Role]int
	permissions map[model.Role][]string
	override    map[model.Role]bool
}

// NewRules builds the default rule tables.
func NewRules() *Rules {
	return &Rules{
		ranks: map[model.Role]int{
			model.RoleViewer: 1,
			model.RoleElder:  2,
			model.RoleEditor: 3,
			model.RoleAdmin:  4,
			// super_admin is deliberately absent from the ranked set
		},
		permissions: map[model.Role][]string{
			model.RoleViewer: {
				PermStoriesRead,
				PermPlacesRead,
				PermSpeakersRead,
			},
			model.RoleElder: {
				PermStoriesRead,
				PermPlacesRead,
				PermSpeakersRead,
				PermCulturalRead,
				PermCulturalValidate,
			},
			model.RoleEditor: {
				"stories:*",
				"places:*",
				"speakers:*",
			},
			model.RoleAdmin: {
				PermAll,
			},
			model.RoleSuperAdmin: {
				PermSystem,
			},
		},
		override: map[model.Role]bool{
			model.RoleElder: true,
		},
	}
}

// NewCustomRules builds rules from caller-supplied tables. Used by tests to
// exercise the authorization components with alternate hierarchies.
func NewCustomRules(ranks map[model.Role]int, permissions map[model.Role][]string, override map[model.Role]bool) *Rules {
	return &Rules{ranks: ranks, permissions: permissions, override: override}
}

// Rank returns the role's position in the community order. The second return
// is false for super_admin and unknown roles, which have no rank.
func (r *Rules) Rank(role model.Role) (int, bool) {
	rank, ok := r.ranks[role]
	return rank, ok
}

// HasRoleHierarchy reports whether userRole meets or exceeds requiredRole in
// the community order. The top-level system role always fails, regardless of
// the required role: sovereignty is checked before rank.
func (r *Rules) HasRoleHierarchy(userRole, requiredRole model.Role) bool {
	if userRole == model.RoleSuperAdmin {
		return false
	}
	userRank, ok := r.ranks[userRole]
	if !ok {
		return false
	}
	requiredRank, ok := r.ranks[requiredRole]
	if !ok {
		return false
	}
	return userRank >= requiredRank
}

// CheckPermission reports whether the role holds every required permission.
// All required permissions must pass; there is no partial credit.
func (r *Rules) CheckPermission(role model.Role, required ...string) bool {
	granted := r.permissions[role]
	for _, need := range required {
		if !permitted(granted, need) {
			return false
		}
	}
	return true
}

// HasCulturalOverride reports whether the role may bypass content restriction
// flags on culturally protected resources.
func (r *Rules) HasCulturalOverride(role model.Role) bool {
	return r.override[role]
}

// permitted checks one permission against a granted set: universal wildcard,
// literal match, or a domain:* wildcard covering the permission's domain.
func permitted(granted []string, need string) bool {
	domain := ""
	if i := strings.IndexByte(need, ':'); i > 0 {
		domain = need[:i]
	}
	for _, have := range granted {
		if have == PermAll || have == need {
			return true
		}
		if domain != "" && have == domain+":*" {
			return true
		}
	}
	return false
}
