package runtime

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/aretw0/docent/internal/logging"
	"github.com/aretw0/docent/pkg/catalog"
	"github.com/aretw0/docent/pkg/domain"
	"github.com/aretw0/docent/pkg/intent"
	"github.com/aretw0/docent/pkg/ports"
	"github.com/aretw0/docent/pkg/prompt"
	"github.com/aretw0/docent/pkg/resolver"
	"github.com/aretw0/docent/pkg/session"
	"github.com/aretw0/docent/pkg/survey"
)

// DefaultMaxTurns is the number of visitor utterances before the conversation closes.
const DefaultMaxTurns = 5

// FallbackReply replaces any reply the oracle failed to produce.
const FallbackReply = "I'm having trouble connecting to my memory. What did you say?"

// Reply is the outcome of a single turn.
type Reply struct {
	Text string
	// StepID is the step the reply pursues; empty for closing replies.
	StepID string
	// Exhibit is the selection after the turn.
	Exhibit string
	// Closed is true when the reply ends the conversation.
	Closed bool
}

// Engine binds the resolver, classifier and state machine to one utterance
// at a time. Turns for the same session are serialized by the session manager.
type Engine struct {
	catalog    *domain.Catalog
	knowledge  string
	resolver   *resolver.Resolver
	classifier *intent.Classifier
	oracle     ports.Oracle
	sessions   *session.Manager
	recorder   ports.FeedbackRecorder
	stats      ports.VisitStats
	maxTurns   int
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	intn       func(n int) int
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRecorder sets the feedback sink.
func WithRecorder(r ports.FeedbackRecorder) EngineOption {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithVisitStats sets the source of exhibit suggestions.
func WithVisitStats(s ports.VisitStats) EngineOption {
	return func(e *Engine) {
		e.stats = s
	}
}

// WithMaxTurns overrides DefaultMaxTurns.
func WithMaxTurns(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxTurns = n
		}
	}
}

// WithResolver replaces the default keyword resolver.
func WithResolver(r *resolver.Resolver) EngineOption {
	return func(e *Engine) {
		e.resolver = r
	}
}

// WithRandom replaces the greeting picker. fn must return a value in [0, n).
func WithRandom(fn func(n int) int) EngineOption {
	return func(e *Engine) {
		e.intn = fn
	}
}

// NewEngine creates an engine over an immutable catalog.
func NewEngine(cat *domain.Catalog, oracle ports.Oracle, sessions *session.Manager, opts ...EngineOption) *Engine {
	e := &Engine{
		catalog:   cat,
		knowledge: catalog.KnowledgeBase(cat),
		oracle:    oracle,
		sessions:  sessions,
		maxTurns:  DefaultMaxTurns,
		logger:    logging.NewNop(),
		intn:      rand.IntN,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.resolver == nil {
		e.resolver = resolver.New(cat)
	}
	e.classifier = intent.New(oracle,
		intent.WithLogger(e.logger),
		intent.WithFailureHook(e.oracleFailed),
	)
	return e
}

// Catalog returns the catalog the engine was built with.
func (e *Engine) Catalog() *domain.Catalog {
	return e.catalog
}

// Sessions returns the session manager.
func (e *Engine) Sessions() *session.Manager {
	return e.sessions
}

// Start discards prior state for the session and returns a greeting, which
// also becomes the first assistant message.
func (e *Engine) Start(ctx context.Context, sessionID string) (string, error) {
	greeting := Greeting(e.intn)
	err := e.sessions.Reset(ctx, sessionID, func(ctx context.Context, s *domain.Session) error {
		s.Append(domain.RoleAssistant, greeting)
		return nil
	})
	if err != nil {
		return "", err
	}
	e.logger.Info("Session started", "session_id", sessionID)
	return greeting, nil
}

// Turn processes one visitor utterance.
func (e *Engine) Turn(ctx context.Context, sessionID, text string) (*Reply, error) {
	var reply *Reply
	ctx = withSession(ctx, sessionID)
	err := e.sessions.Update(ctx, sessionID, func(ctx context.Context, s *domain.Session) error {
		reply = e.turn(ctx, s, text)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reply, nil
}

func (e *Engine) turn(ctx context.Context, s *domain.Session, text string) *Reply {
	s.Append(domain.RoleUser, text)

	if s.LastQuestionID != "" && !domain.IsNavigational(s.LastQuestionID) {
		e.record(ctx, domain.NewAnswerRecord(s.ID, s.SelectedExhibit, s.LastQuestionID, text))
	}

	detected, found := e.resolver.Resolve(text)
	if !found && !s.HasSelection() {
		d := e.classifier.DetectExhibit(ctx, text, e.resolver.ClosedSet())
		detected, found = d.Exhibit, d.Found
	}

	if !found && intent.WantsToChoose(text) {
		s.ForceOpenChoice = true
		e.logger.Info("User explicitly asked to choose an exhibit", "session_id", s.ID)
	}

	var note, verdict string
	current := s.SelectedExhibit
	if found && current != "" && detected != current {
		arb := e.classifier.Arbitrate(ctx, current, detected, text)
		detected, note, verdict = arb.Exhibit, arb.Note, arb.Verdict.String()
	}

	if found {
		if detected != s.SelectedExhibit {
			s.SelectedExhibit = detected
			s.SelectionAttempts = 0
			e.record(ctx, domain.NewSelectRecord(s.ID, detected))
			if e.hooks.OnExhibitSelected != nil {
				e.hooks.OnExhibitSelected(ctx, &domain.SelectionEvent{
					SessionID: s.ID,
					From:      current,
					To:        detected,
					Verdict:   verdict,
				})
			}
		}
	} else if intent.MentionsOverall(text) {
		s.SelectedExhibit = domain.OverallExhibition
	}

	s.TurnCount++

	if s.TurnCount > e.maxTurns {
		return e.close(ctx, s, domain.CloseTurnLimit)
	}
	if intent.WantsToLeave(text) {
		return e.close(ctx, s, domain.CloseUserRequest)
	}

	var suggestions []string
	if !s.HasSelection() && !s.ForceOpenChoice && e.stats != nil {
		suggestions = e.stats.TopExhibits(ctx, survey.MaxSuggestions)
	}

	next, step := survey.NextStep(*s, e.catalog, suggestions)
	*s = next

	if step.EndConversation {
		return e.close(ctx, s, domain.CloseDisengaged)
	}

	out := e.generate(ctx, s, prompt.Interview(prompt.InterviewParams{
		Knowledge:      e.knowledge,
		Topic:          s.SelectedExhibit,
		Question:       step.Text,
		OneLiner:       step.OneLiner,
		TransitionNote: note,
	}))

	s.LastQuestionID = step.ID
	if !domain.IsNavigational(step.ID) {
		s.MarkAsked(step.ID)
		if e.hooks.OnQuestionAsked != nil {
			e.hooks.OnQuestionAsked(ctx, &domain.QuestionEvent{
				SessionID:  s.ID,
				Exhibit:    s.SelectedExhibit,
				QuestionID: step.ID,
			})
		}
	}
	s.Append(domain.RoleAssistant, out)

	e.emitTurn(ctx, s, step.ID)
	return &Reply{Text: out, StepID: step.ID, Exhibit: s.SelectedExhibit}
}

func (e *Engine) close(ctx context.Context, s *domain.Session, reason domain.CloseReason) *Reply {
	text := e.generate(ctx, s, prompt.Closing(e.knowledge))
	s.Append(domain.RoleAssistant, text)

	e.logger.Info("Conversation closed", "session_id", s.ID, "reason", reason, "turn", s.TurnCount)
	if e.hooks.OnConversationClosed != nil {
		e.hooks.OnConversationClosed(ctx, &domain.CloseEvent{SessionID: s.ID, Reason: reason})
	}
	e.emitTurn(ctx, s, "")
	return &Reply{Text: text, Exhibit: s.SelectedExhibit, Closed: true}
}

func (e *Engine) emitTurn(ctx context.Context, s *domain.Session, stepID string) {
	if e.hooks.OnTurn != nil {
		e.hooks.OnTurn(ctx, &domain.TurnEvent{
			SessionID: s.ID,
			Turn:      s.TurnCount,
			Exhibit:   s.SelectedExhibit,
			StepID:    stepID,
		})
	}
}

// generate calls the oracle with the session window. Failures never escape.
func (e *Engine) generate(ctx context.Context, s *domain.Session, system string) string {
	if e.oracle == nil {
		e.oracleFailed(ctx, "reply", domain.ErrOracleUnavailable)
		return FallbackReply
	}
	out, err := e.oracle.Generate(ctx, system, s.Messages)
	if err != nil {
		e.logger.Error("LLM error", "session_id", s.ID, "err", err)
		e.oracleFailed(ctx, "reply", err)
		return FallbackReply
	}
	return strings.TrimSpace(out)
}

func (e *Engine) oracleFailed(ctx context.Context, purpose string, err error) {
	if e.hooks.OnOracleFallback != nil {
		e.hooks.OnOracleFallback(ctx, &domain.OracleEvent{
			SessionID: sessionFromContext(ctx),
			Purpose:   purpose,
			Err:       err,
		})
	}
}

func (e *Engine) record(ctx context.Context, rec domain.FeedbackRecord) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.Record(ctx, rec); err != nil {
		e.logger.Error("Log failed", "session_id", rec.SessionID, "err", err)
	}
}
