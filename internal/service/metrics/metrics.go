package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK        = "ok"
	OutcomeUserError = "user_error"
	OutcomeFault     = "fault"

	MethodUnresolved = "unresolved"
)

// Dialogue holds the counters recorded for every handled utterance.
type Dialogue struct {
	resolutions  *prometheus.CounterVec
	steps        *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
}

// NewDialogue creates the collectors and registers them on reg.
func NewDialogue(reg prometheus.Registerer) *Dialogue {
	m := &Dialogue{
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asisten_resolutions_total",
				Help: "Intent resolutions by method",
			},
			[]string{"method"},
		),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asisten_steps_total",
				Help: "Dialogue steps by command and outcome",
			},
			[]string{"command", "outcome"},
		),
		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "asisten_step_duration_seconds",
				Help:    "Duration of dialogue steps including store round-trips",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
	}
	reg.MustRegister(m.resolutions, m.steps, m.stepDuration)
	return m
}

func (m *Dialogue) Resolved(method string) {
	m.resolutions.WithLabelValues(method).Inc()
}

func (m *Dialogue) Stepped(command, outcome string, elapsed time.Duration) {
	m.steps.WithLabelValues(command, outcome).Inc()
	m.stepDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}
