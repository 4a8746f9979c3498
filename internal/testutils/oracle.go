package testutils

import (
	"context"
	"strings"
	"sync"

	"github.com/aretw0/docent/pkg/domain"
)

// Reply is one scripted oracle answer.
type Reply struct {
	Text string
	Err  error
}

// Call captures one oracle invocation.
type Call struct {
	System  string
	History []domain.Message
}

type rule struct {
	marker string
	reply  Reply
}

// FakeOracle is a deterministic ports.Oracle. Rules registered with On are
// matched against the system instruction first; otherwise scripted replies
// are consumed in order, and once exhausted Default is returned.
type FakeOracle struct {
	mu      sync.Mutex
	rules   []rule
	replies []Reply
	calls   []Call

	Default Reply
}

// NewFakeOracle creates an oracle that answers with replies in order.
func NewFakeOracle(replies ...Reply) *FakeOracle {
	return &FakeOracle{
		replies: replies,
		Default: Reply{Text: "ok"},
	}
}

// On answers every call whose system instruction contains marker with reply.
func (f *FakeOracle) On(marker string, reply Reply) *FakeOracle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, rule{marker: marker, reply: reply})
	return f
}

// Generate implements ports.Oracle.
func (f *FakeOracle) Generate(ctx context.Context, system string, history []domain.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{
		System:  system,
		History: append([]domain.Message(nil), history...),
	})

	for _, r := range f.rules {
		if strings.Contains(system, r.marker) {
			return r.reply.Text, r.reply.Err
		}
	}
	if len(f.replies) > 0 {
		r := f.replies[0]
		f.replies = f.replies[1:]
		return r.Text, r.Err
	}
	return f.Default.Text, f.Default.Err
}

// Calls returns every recorded invocation.
func (f *FakeOracle) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// LastSystem returns the system instruction of the most recent call.
func (f *FakeOracle) LastSystem() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1].System
}
