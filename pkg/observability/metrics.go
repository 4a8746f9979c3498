package observability

import (
	"context"
	"time"

	"github.com/aretw0/docent/pkg/domain"
	"github.com/aretw0/docent/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by engine lifecycle hooks.
type Metrics struct {
	Turns          prometheus.Counter
	Selections     *prometheus.CounterVec
	Questions      *prometheus.CounterVec
	Closings       *prometheus.CounterVec
	OracleFailures *prometheus.CounterVec
	OracleLatency  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Turns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "docent_turns_total",
			Help: "Total number of visitor utterances processed",
		}),
		Selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docent_exhibit_selections_total",
				Help: "Exhibit selections, by exhibit and arbitration verdict",
			},
			[]string{"exhibit", "verdict"},
		),
		Questions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docent_questions_asked_total",
				Help: "Feedback questions asked, by exhibit",
			},
			[]string{"exhibit"},
		),
		Closings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docent_conversations_closed_total",
				Help: "Closed conversations, by reason",
			},
			[]string{"reason"},
		),
		OracleFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docent_oracle_fallbacks_total",
				Help: "Oracle calls replaced by a fallback, by purpose",
			},
			[]string{"purpose"},
		),
		OracleLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docent_oracle_duration_seconds",
				Help:    "Duration of oracle calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"},
		),
	}
	reg.MustRegister(m.Turns, m.Selections, m.Questions, m.Closings, m.OracleFailures, m.OracleLatency)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			m.Turns.Inc()
		},
		OnExhibitSelected: func(ctx context.Context, e *domain.SelectionEvent) {
			verdict := e.Verdict
			if verdict == "" {
				verdict = "none"
			}
			m.Selections.WithLabelValues(e.To, verdict).Inc()
		},
		OnQuestionAsked: func(ctx context.Context, e *domain.QuestionEvent) {
			m.Questions.WithLabelValues(e.Exhibit).Inc()
		},
		OnConversationClosed: func(ctx context.Context, e *domain.CloseEvent) {
			m.Closings.WithLabelValues(string(e.Reason)).Inc()
		},
		OnOracleFallback: func(ctx context.Context, e *domain.OracleEvent) {
			m.OracleFailures.WithLabelValues(e.Purpose).Inc()
		},
	}
}

type instrumentedOracle struct {
	next    ports.Oracle
	latency *prometheus.HistogramVec
}

// InstrumentOracle wraps oracle so every call is timed.
func (m *Metrics) InstrumentOracle(oracle ports.Oracle) ports.Oracle {
	return &instrumentedOracle{next: oracle, latency: m.OracleLatency}
}

func (o *instrumentedOracle) Generate(ctx context.Context, system string, history []domain.Message) (string, error) {
	start := time.Now()
	out, err := o.next.Generate(ctx, system, history)
	status := "ok"
	if err != nil {
		status = "error"
	}
	o.latency.WithLabelValues(status).Observe(time.Since(start).Seconds())
	return out, err
}
