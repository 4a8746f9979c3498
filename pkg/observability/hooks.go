package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/docent/pkg/domain"
)

// LoggingHooks logs every lifecycle event at debug level, and oracle
// fallbacks at warn.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			logger.Debug("turn", "session_id", e.SessionID, "turn", e.Turn, "exhibit", e.Exhibit, "step", e.StepID)
		},
		OnExhibitSelected: func(ctx context.Context, e *domain.SelectionEvent) {
			logger.Debug("exhibit_selected", "session_id", e.SessionID, "from", e.From, "to", e.To, "verdict", e.Verdict)
		},
		OnQuestionAsked: func(ctx context.Context, e *domain.QuestionEvent) {
			logger.Debug("question_asked", "session_id", e.SessionID, "exhibit", e.Exhibit, "question_id", e.QuestionID)
		},
		OnConversationClosed: func(ctx context.Context, e *domain.CloseEvent) {
			logger.Debug("conversation_closed", "session_id", e.SessionID, "reason", e.Reason)
		},
		OnOracleFallback: func(ctx context.Context, e *domain.OracleEvent) {
			logger.Warn("oracle_fallback", "session_id", e.SessionID, "purpose", e.Purpose, "error", e.Err)
		},
	}
}

// Combine fans every event out to each set of hooks in order.
func Combine(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			for _, h := range all {
				if h.OnTurn != nil {
					h.OnTurn(ctx, e)
				}
			}
		},
		OnExhibitSelected: func(ctx context.Context, e *domain.SelectionEvent) {
			for _, h := range all {
				if h.OnExhibitSelected != nil {
					h.OnExhibitSelected(ctx, e)
				}
			}
		},
		OnQuestionAsked: func(ctx context.Context, e *domain.QuestionEvent) {
			for _, h := range all {
				if h.OnQuestionAsked != nil {
					h.OnQuestionAsked(ctx, e)
				}
			}
		},
		OnConversationClosed: func(ctx context.Context, e *domain.CloseEvent) {
			for _, h := range all {
				if h.OnConversationClosed != nil {
					h.OnConversationClosed(ctx, e)
				}
			}
		},
		OnOracleFallback: func(ctx context.Context, e *domain.OracleEvent) {
			for _, h := range all {
				if h.OnOracleFallback != nil {
					h.OnOracleFallback(ctx, e)
				}
			}
		},
	}
}
