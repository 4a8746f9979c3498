package intent

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/aretw0/docent/internal/logging"
	"github.com/aretw0/docent/pkg/ports"
	"github.com/aretw0/docent/pkg/prompt"
)

// Detection is the outcome of closed-set exhibit classification.
type Detection struct {
	Exhibit string
	Found   bool
}

// Verdict is the outcome of switch-vs-stay arbitration.
type Verdict int

const (
	// VerdictSwitch moves the conversation to the newly mentioned exhibit.
	VerdictSwitch Verdict = iota
	// VerdictStay keeps the current exhibit; the mention was incidental.
	VerdictStay
)

func (v Verdict) String() string {
	if v == VerdictStay {
		return "stay"
	}
	return "switch"
}

// Arbitration is the verdict together with the transition note the reply
// must honour.
type Arbitration struct {
	Verdict Verdict
	Exhibit string
	Note    string
}

// Classifier delegates ambiguous intent to the oracle. Oracle failures never
// escape: detection degrades to "not found" and arbitration to a switch.
type Classifier struct {
	oracle ports.Oracle
	logger *slog.Logger
	onFail func(ctx context.Context, purpose string, err error)
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the classifier logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		c.logger = logger
	}
}

// WithFailureHook is called whenever an oracle call fails.
func WithFailureHook(fn func(ctx context.Context, purpose string, err error)) Option {
	return func(c *Classifier) {
		c.onFail = fn
	}
}

// New creates a Classifier.
func New(oracle ports.Oracle, opts ...Option) *Classifier {
	c := &Classifier{
		oracle: oracle,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Classifier) failed(ctx context.Context, purpose string, err error) {
	c.logger.Error("Oracle call failed", "purpose", purpose, "err", err)
	if c.onFail != nil {
		c.onFail(ctx, purpose, err)
	}
}

// DetectExhibit asks the oracle which of names the text refers to. The answer
// is accepted only if it matches one of names exactly.
func (c *Classifier) DetectExhibit(ctx context.Context, text string, names []string) Detection {
	if c.oracle == nil || len(names) == 0 {
		return Detection{}
	}
	out, err := c.oracle.Generate(ctx, prompt.Classification(text, names), nil)
	if err != nil {
		c.failed(ctx, "classify", err)
		return Detection{}
	}

	label := strings.Trim(strings.TrimSpace(out), `."'`)
	if slices.Contains(names, label) {
		c.logger.Info("Oracle fallback detected exhibit", "exhibit", label)
		return Detection{Exhibit: label, Found: true}
	}
	return Detection{}
}

// Arbitrate decides whether a mention of detected, while current is under
// discussion, is a genuine switch. Only an answer containing "stay" keeps
// the current exhibit.
func (c *Classifier) Arbitrate(ctx context.Context, current, detected, text string) Arbitration {
	verdict := VerdictSwitch
	if c.oracle != nil {
		out, err := c.oracle.Generate(ctx, prompt.Arbitration(current, detected, text), nil)
		if err != nil {
			c.failed(ctx, "arbitrate", err)
		} else if strings.Contains(strings.ToLower(out), "stay") {
			verdict = VerdictStay
		}
		c.logger.Info("Switch validation", "current", current, "detected", detected, "verdict", verdict)
	}

	if verdict == VerdictStay {
		return Arbitration{
			Verdict: VerdictStay,
			Exhibit: current,
			Note: fmt.Sprintf("The user mentioned '%s' but we are sticking to '%s'. "+
				"Start your reply with: 'Okay, let's stick to this exhibit for now...'", text, current),
		}
	}
	return Arbitration{
		Verdict: VerdictSwitch,
		Exhibit: detected,
		Note: fmt.Sprintf("The user explicitly switched from '%s' to '%s'. "+
			"Start your reply with: 'Okay, we can switch to the %s...'", current, detected, detected),
	}
}
