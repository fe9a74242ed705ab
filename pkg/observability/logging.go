package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/storedesk/pkg/domain"
)

// LogHooks returns hooks that trace session events at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActionStart: func(ctx context.Context, e *domain.ActionEvent) {
			logger.DebugContext(ctx, "Action Start", "session_id", e.SessionID, "path", e.Path)
		},
		OnActionDone: func(ctx context.Context, e *domain.ActionEvent) {
			if e.Err != nil {
				logger.DebugContext(ctx, "Action Done", "path", e.Path, "outcome", e.Outcome(), "duration", e.Duration, "error", e.Err)
				return
			}
			logger.DebugContext(ctx, "Action Done", "path", e.Path, "outcome", e.Outcome(), "duration", e.Duration)
		},
		OnResolve: func(ctx context.Context, e *domain.ResolveEvent) {
			logger.DebugContext(ctx, "Resolve", "noun", e.Noun, "path", e.Path, "candidates", e.Candidates, "found", e.Found)
		},
		OnSessionEnd: func(ctx context.Context, e *domain.SessionEvent) {
			logger.DebugContext(ctx, "Session End", "session_id", e.SessionID, "actions", e.Actions)
		},
	}
}
