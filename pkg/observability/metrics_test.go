package observability_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/docent/internal/testutils"
	"github.com/aretw0/docent/pkg/domain"
	"github.com/aretw0/docent/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnTurn(ctx, &domain.TurnEvent{SessionID: "s1", Turn: 1})
	hooks.OnTurn(ctx, &domain.TurnEvent{SessionID: "s1", Turn: 2})
	hooks.OnExhibitSelected(ctx, &domain.SelectionEvent{To: "Faces"})
	hooks.OnExhibitSelected(ctx, &domain.SelectionEvent{From: "Faces", To: "Sandbox", Verdict: "switch"})
	hooks.OnQuestionAsked(ctx, &domain.QuestionEvent{Exhibit: "Faces", QuestionID: "faces_q1"})
	hooks.OnConversationClosed(ctx, &domain.CloseEvent{Reason: domain.CloseTurnLimit})
	hooks.OnOracleFallback(ctx, &domain.OracleEvent{Purpose: "reply"})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Turns))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Selections.WithLabelValues("Faces", "none")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Selections.WithLabelValues("Sandbox", "switch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Questions.WithLabelValues("Faces")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Closings.WithLabelValues("turn_limit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OracleFailures.WithLabelValues("reply")))
}

func TestMetrics_InstrumentOracle(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	fake := testutils.NewFakeOracle(testutils.Reply{Text: "hi"}, testutils.Reply{Err: errors.New("down")})
	oracle := m.InstrumentOracle(fake)

	out, err := oracle.Generate(context.Background(), "sys", nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
	_, err = oracle.Generate(context.Background(), "sys", nil)
	assert.Error(t, err)

	assert.Equal(t, 2, testutil.CollectAndCount(m.OracleLatency))
}

func TestCombine(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{OnTurn: func(ctx context.Context, e *domain.TurnEvent) { calls = append(calls, "a") }}
	b := domain.LifecycleHooks{OnTurn: func(ctx context.Context, e *domain.TurnEvent) { calls = append(calls, "b") }}

	combined := observability.Combine(a, domain.LifecycleHooks{}, b)
	combined.OnTurn(context.Background(), &domain.TurnEvent{})
	combined.OnQuestionAsked(context.Background(), &domain.QuestionEvent{})

	assert.Equal(t, []string{"a", "b"}, calls)
}
