// Package audit records authorization decisions as structured log events.
//
// Every decision that reaches the role/permission or cultural-protocol stage
// of the middleware chain is recorded here, granted or denied. The audit
// trail is the only durable side effect of authorization; writing it is
// fire-and-forget relative to the decision path and can never fail or block
// the request.
package audit

import (
	"context"
	"log/slog"

	"github.com/longhouse/storymap/api/internal/model"
)

// Audit event names.
const (
	EventSovereigntyBlocked  = "community_data_access_blocked"
	EventIsolationViolation  = "community_isolation_violation"
	EventPermissionGranted   = "permission_granted"
	EventPermissionDenied    = "permission_denied"
	EventRoleGranted         = "role_check_granted"
	EventRoleDenied          = "role_check_denied"
	EventCulturalOverride    = "cultural_override_applied"
	EventCulturalAttempt     = "cultural_access_attempt"
	EventCulturalDenied      = "cultural_access_denied"
)

type ctxKey string

const requestIDKey ctxKey = "audit_request_id"

// WithRequestID attaches the request identifier to the context so decisions
// can be correlated with request logs.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// Decision is one authorization outcome.
type Decision struct {
	Event             string
	ActorID           int64
	Role              model.Role
	CommunityID       int64
	TargetCommunityID int64
	Action            string
	Allowed           bool
	Reason            string
}

// Logger writes decisions to a structured log sink.
type Logger struct {
	log *slog.Logger
}

// New creates an audit logger over the given slog logger.
// A nil logger falls back to slog.Default().
func New(log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}
	return &Logger{log: log}
}

// Record writes one decision. Denied decisions log at warn, granted at info.
// Sink panics are swallowed: audit failures must never mask the decision.
func (l *Logger) Record(ctx context.Context, d Decision) {
	defer func() { _ = recover() }()

	attrs := []any{
		slog.String("event", d.Event),
		slog.Int64("user_id", d.ActorID),
		slog.String("role", string(d.Role)),
		slog.String("action", d.Action),
		slog.Bool("allowed", d.Allowed),
	}
	if d.CommunityID != 0 {
		attrs = append(attrs, slog.Int64("community_id", d.CommunityID))
	}
	if d.TargetCommunityID != 0 && d.TargetCommunityID != d.CommunityID {
		attrs = append(attrs, slog.Int64("target_community_id", d.TargetCommunityID))
	}
	if d.Reason != "" {
		attrs = append(attrs, slog.String("reason", d.Reason))
	}
	if rid := requestIDFromContext(ctx); rid != "" {
		attrs = append(attrs, slog.String("request_id", rid))
	}

	if d.Allowed {
		l.log.InfoContext(ctx, "authorization decision", attrs...)
	} else {
		l.log.WarnContext(ctx, "authorization decision", attrs...)
	}
}
