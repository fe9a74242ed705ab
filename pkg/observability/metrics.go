package observability

import (
	"context"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/storedesk/pkg/domain"
)

// Namespace prefixes every metric name.
const Namespace = "storedesk"

// Metrics holds the collectors fed by session hooks.
type Metrics struct {
	actions        *prometheus.CounterVec
	actionDuration *prometheus.HistogramVec
	resolves       *prometheus.CounterVec
	sessions       *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "actions_total",
				Help:      "Menu actions invoked, by menu path and outcome.",
			},
			[]string{"path", "outcome"},
		),
		actionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "action_duration_seconds",
				Help:      "Wall time of menu actions, operator think time included.",
				Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 300},
			},
			[]string{"path"},
		),
		resolves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "resolves_total",
				Help:      "Entity resolutions, by entity, lookup path and result.",
			},
			[]string{"noun", "path", "found"},
		),
		sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "sessions_total",
				Help:      "Finished desk sessions, by result.",
			},
			[]string{"result"},
		),
	}

	for _, c := range []prometheus.Collector{m.actions, m.actionDuration, m.resolves, m.sessions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActionDone: func(_ context.Context, e *domain.ActionEvent) {
			path := strings.Join(e.Path, " > ")
			m.actions.WithLabelValues(path, e.Outcome()).Inc()
			m.actionDuration.WithLabelValues(path).Observe(e.Duration.Seconds())
		},
		OnResolve: func(_ context.Context, e *domain.ResolveEvent) {
			m.resolves.WithLabelValues(e.Noun, e.Path, strconv.FormatBool(e.Found)).Inc()
		},
		OnSessionEnd: func(_ context.Context, e *domain.SessionEvent) {
			result := "ok"
			if e.Err != nil {
				result = "error"
			}
			m.sessions.WithLabelValues(result).Inc()
		},
	}
}
