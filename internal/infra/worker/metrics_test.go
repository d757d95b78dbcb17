package worker

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordJobRun(t *testing.T) {
	m := NewMetrics()
	before := testutil.ToFloat64(jobRuns.WithLabelValues("success"))

	m.RecordJobRun("success")
	m.RecordJobRun("success")

	assert.Equal(t, before+2, testutil.ToFloat64(jobRuns.WithLabelValues("success")))
}

func TestMetrics_RecordRegenerated(t *testing.T) {
	m := NewMetrics()
	ok := testutil.ToFloat64(summariesRegenerated.WithLabelValues("success"))
	bad := testutil.ToFloat64(summariesRegenerated.WithLabelValues("failure"))

	m.RecordRegenerated(3, 1)

	assert.Equal(t, ok+3, testutil.ToFloat64(summariesRegenerated.WithLabelValues("success")))
	assert.Equal(t, bad+1, testutil.ToFloat64(summariesRegenerated.WithLabelValues("failure")))
}

func TestMetrics_Timestamps(t *testing.T) {
	m := NewMetrics()
	m.RecordLastSuccess()
	m.RecordLoadTimestamp()
	m.RecordJobDuration(1.5)

	assert.Greater(t, testutil.ToFloat64(lastSuccess), 0.0)
	assert.Greater(t, testutil.ToFloat64(configLoadTimestamp), 0.0)
	assert.Equal(t, 1, testutil.CollectAndCount(jobDuration))
}

func TestMetrics_NilIsNoOp(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordJobRun("success")
		m.RecordJobDuration(1)
		m.RecordRegenerated(1, 1)
		m.RecordLastSuccess()
		m.RecordLoadTimestamp()
		m.RecordFallback("x", true)
	})
}

func TestMetrics_ConcurrentAccess(t *testing.T) {
	m := NewMetrics()
	before := testutil.ToFloat64(jobRuns.WithLabelValues("failure"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordJobRun("failure")
		}()
	}
	wg.Wait()

	assert.Equal(t, before+50, testutil.ToFloat64(jobRuns.WithLabelValues("failure")))
}
