package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "payroll"

// Metrics holds the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	rowsComputed       prometheus.Counter
	reportDuration     prometheus.Histogram
	schedulesStored    prometheus.Counter
	schedulesTruncated prometheus.Counter
	cronRuns           *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rowsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_computed_total",
			Help:      "Employee payroll rows computed.",
		}),
		reportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Time spent loading and computing a payroll report.",
			Buckets:   prometheus.DefBuckets,
		}),
		schedulesStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cash_advance_schedules_stored_total",
			Help:      "Cash advance schedules that replaced an employee's installments.",
		}),
		schedulesTruncated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cash_advance_schedules_truncated_total",
			Help:      "Cash advance schedules that hit the installment cap with a balance left.",
		}),
		cronRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cron_runs_total",
			Help:      "Background job runs by job and result.",
		}, []string{"job", "result"}),
	}
	reg.MustRegister(m.rowsComputed, m.reportDuration, m.schedulesStored, m.schedulesTruncated, m.cronRuns)
	return m
}

func (m *Metrics) ObserveReport(rows int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rowsComputed.Add(float64(rows))
	m.reportDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) ScheduleStored(truncated bool) {
	if m == nil {
		return
	}
	m.schedulesStored.Inc()
	if truncated {
		m.schedulesTruncated.Inc()
	}
}

func (m *Metrics) CronRun(job string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.cronRuns.WithLabelValues(job, result).Inc()
}
