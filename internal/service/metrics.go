package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the pipeline-level Prometheus collectors.
type Metrics struct {
	RunsTotal    *prometheus.CounterVec
	CommitsTotal prometheus.Counter
}

// NewMetrics registers the pipeline collectors on the given registry.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "verification_runs_total",
				Help: "Total number of completed document-processing runs, by extraction source.",
			},
			[]string{"source"},
		),
		CommitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ledger_commits_total",
				Help: "Total number of simulated ledger commits.",
			},
		),
	}

	if err := reg.Register(m.RunsTotal); err != nil {
		return nil, err
	}
	if err := reg.Register(m.CommitsTotal); err != nil {
		return nil, err
	}
	return m, nil
}
