package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/longhouse/storymap/api/internal/audit"
	"github.com/longhouse/storymap/api/internal/authz"
	"github.com/longhouse/storymap/api/internal/model"
	"github.com/longhouse/storymap/api/internal/obs"
)

// Access builds the authorization middleware chain over the rule tables and
// the audit trail. Guards evaluate in a fixed order on every request:
//
//  1. authentication presence
//  2. data sovereignty: super_admin is categorically barred from community
//     data, its own token's community included
//  3. community isolation: the path's community must match the token's
//  4. role hierarchy or permission matrix, per route
//  5. cultural protocol, where the route touches restricted content
//
// Sovereignty and isolation are not opt-out: every community guard re-checks
// them before its own concern, so a misordered chain cannot skip them.
type Access struct {
	rules *authz.Rules
	audit *audit.Logger
}

// NewAccess creates the access guard set
func NewAccess(rules *authz.Rules, auditLog *audit.Logger) *Access {
	return &Access{rules: rules, audit: auditLog}
}

// RequireAuth rejects requests that did not pass the Auth middleware.
func (a *Access) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetIdentity(r.Context()) == nil {
			model.NewUnauthorizedError("authentication required").WriteJSON(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CommunityAccess guards community-scoped routes. It expects a {communityId}
// path parameter, blocks super_admin unconditionally, and rejects any
// identity whose community does not match the path. The resolved community
// id is placed in the request context.
func (a *Access) CommunityAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, targetID, ok := a.admit(w, r)
		if !ok {
			return
		}

		if identity.CommunityID != targetID {
			a.audit.Record(r.Context(), audit.Decision{
				Event:             audit.EventIsolationViolation,
				ActorID:           identity.UserID,
				Role:              identity.Role,
				CommunityID:       identity.CommunityID,
				TargetCommunityID: targetID,
				Action:            action(r),
				Allowed:           false,
				Reason:            "identity belongs to a different community",
			})
			obs.AuthzDecision("isolation", false)
			model.NewCommunityMismatchError().WriteJSON(w)
			return
		}

		ctx := context.WithValue(r.Context(), CommunityKey, targetID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole returns a guard that admits identities ranking at or above the
// required community role. super_admin never ranks.
func (a *Access) RequireRole(required model.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _, ok := a.admit(w, r)
			if !ok {
				return
			}

			if !a.rules.HasRoleHierarchy(identity.Role, required) {
				a.audit.Record(r.Context(), audit.Decision{
					Event:       audit.EventRoleDenied,
					ActorID:     identity.UserID,
					Role:        identity.Role,
					CommunityID: identity.CommunityID,
					Action:      action(r),
					Allowed:     false,
					Reason:      "role ranks below " + string(required),
				})
				obs.AuthzDecision("role", false)
				model.NewInsufficientRoleError(required, identity.Role).WriteJSON(w)
				return
			}

			a.audit.Record(r.Context(), audit.Decision{
				Event:       audit.EventRoleGranted,
				ActorID:     identity.UserID,
				Role:        identity.Role,
				CommunityID: identity.CommunityID,
				Action:      action(r),
				Allowed:     true,
			})
			obs.AuthzDecision("role", true)
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission returns a guard that admits identities holding every one
// of the required permissions. There is no partial credit.
func (a *Access) RequirePermission(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _, ok := a.admit(w, r)
			if !ok {
				return
			}

			if !a.rules.CheckPermission(identity.Role, required...) {
				a.audit.Record(r.Context(), audit.Decision{
					Event:       audit.EventPermissionDenied,
					ActorID:     identity.UserID,
					Role:        identity.Role,
					CommunityID: identity.CommunityID,
					Action:      action(r),
					Allowed:     false,
					Reason:      "missing required permissions: " + strings.Join(required, ", "),
				})
				obs.AuthzDecision("permission", false)
				model.NewInsufficientPermissionsError(required, identity.Role).WriteJSON(w)
				return
			}

			a.audit.Record(r.Context(), audit.Decision{
				Event:       audit.EventPermissionGranted,
				ActorID:     identity.UserID,
				Role:        identity.Role,
				CommunityID: identity.CommunityID,
				Action:      action(r),
				Allowed:     true,
			})
			obs.AuthzDecision("permission", true)
			next.ServeHTTP(w, r)
		})
	}
}

// RequireCulturalAccess guards routes over culturally restricted content.
// Identities holding the cultural override pass regardless of the required
// permissions; every override is audited. Others must hold every required
// permission.
func (a *Access) RequireCulturalAccess(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _, ok := a.admit(w, r)
			if !ok {
				return
			}

			if a.rules.HasCulturalOverride(identity.Role) {
				a.audit.Record(r.Context(), audit.Decision{
					Event:       audit.EventCulturalOverride,
					ActorID:     identity.UserID,
					Role:        identity.Role,
					CommunityID: identity.CommunityID,
					Action:      action(r),
					Allowed:     true,
				})
				obs.AuthzDecision("cultural", true)
				next.ServeHTTP(w, r)
				return
			}

			if !a.rules.CheckPermission(identity.Role, required...) {
				a.audit.Record(r.Context(), audit.Decision{
					Event:       audit.EventCulturalDenied,
					ActorID:     identity.UserID,
					Role:        identity.Role,
					CommunityID: identity.CommunityID,
					Action:      action(r),
					Allowed:     false,
				})
				obs.AuthzDecision("cultural", false)
				model.NewCulturalProtocolError().WriteJSON(w)
				return
			}

			a.audit.Record(r.Context(), audit.Decision{
				Event:       audit.EventCulturalAttempt,
				ActorID:     identity.UserID,
				Role:        identity.Role,
				CommunityID: identity.CommunityID,
				Action:      action(r),
				Allowed:     true,
			})
			obs.AuthzDecision("cultural", true)
			next.ServeHTTP(w, r)
		})
	}
}

// admit runs the checks every community guard shares: the caller must be
// authenticated, must not be super_admin, and the {communityId} path
// parameter (when present) must parse. The sovereignty block fires before
// community comparison so super_admin is denied even for the community its
// own token names.
func (a *Access) admit(w http.ResponseWriter, r *http.Request) (*model.SessionIdentity, int64, bool) {
	identity := GetIdentity(r.Context())
	if identity == nil {
		model.NewUnauthorizedError("authentication required").WriteJSON(w)
		return nil, 0, false
	}

	targetID := GetCommunityID(r.Context())
	raw := r.PathValue("communityId")
	if targetID == 0 && raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			model.NewBadRequestError("invalid community ID").WriteJSON(w)
			return nil, 0, false
		}
		targetID = id
	}

	if identity.Role == model.RoleSuperAdmin {
		a.audit.Record(r.Context(), audit.Decision{
			Event:             audit.EventSovereigntyBlocked,
			ActorID:           identity.UserID,
			Role:              identity.Role,
			CommunityID:       identity.CommunityID,
			TargetCommunityID: targetID,
			Action:            action(r),
			Allowed:           false,
			Reason:            "super_admin cannot access community data",
		})
		obs.AuthzDecision("sovereignty", false)
		model.NewSovereigntyError().WriteJSON(w)
		return nil, 0, false
	}

	return identity, targetID, true
}

func action(r *http.Request) string {
	return r.Method + " " + r.URL.Path
}
