package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	next:
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveReport(12, 40*time.Millisecond)
	m.ScheduleStored(false)
	m.ScheduleStored(true)
	m.CronRun("payroll_snapshot", nil)
	m.CronRun("payroll_snapshot", errors.New("boom"))

	assert.Equal(t, 12.0, counterValue(t, reg, "payroll_rows_computed_total", nil))
	assert.Equal(t, 2.0, counterValue(t, reg, "payroll_cash_advance_schedules_stored_total", nil))
	assert.Equal(t, 1.0, counterValue(t, reg, "payroll_cash_advance_schedules_truncated_total", nil))
	assert.Equal(t, 1.0, counterValue(t, reg, "payroll_cron_runs_total", map[string]string{"job": "payroll_snapshot", "result": "failure"}))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveReport(1, time.Second)
		m.ScheduleStored(true)
		m.CronRun("job", nil)
	})
}
