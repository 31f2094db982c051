package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDialogue(t *testing.T) {
	m := NewDialogue(prometheus.NewRegistry())

	m.Resolved("exact")
	m.Resolved("exact")
	m.Resolved(MethodUnresolved)
	m.Stepped("daftar", OutcomeOK, 10*time.Millisecond)
	m.Stepped("daftar", OutcomeUserError, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.resolutions.WithLabelValues("exact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resolutions.WithLabelValues(MethodUnresolved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.steps.WithLabelValues("daftar", OutcomeOK)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.stepDuration))
}
