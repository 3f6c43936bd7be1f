package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Business metrics
	LeadsScored       *prometheus.CounterVec
	LeadsImported     prometheus.Counter
	OutreachGenerated *prometheus.CounterVec
	CallsScheduled    prometheus.Counter
	WorkflowTriggers  *prometheus.CounterVec
	ExportsCreated    prometheus.Counter
}

// New creates a new Metrics instance with all metrics registered
func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		LeadsScored: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leads_scored_total",
				Help: "Total number of lead scoring runs",
			},
			[]string{"status"}, // success, failed
		),
		LeadsImported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "leads_imported_total",
			Help: "Total number of leads imported",
		}),
		OutreachGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outreach_generated_total",
				Help: "Total number of outreach messages generated",
			},
			[]string{"channel"}, // email, linkedin, sms
		),
		CallsScheduled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "calls_scheduled_total",
			Help: "Total number of voice calls scheduled",
		}),
		WorkflowTriggers: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workflow_triggers_total",
				Help: "Total number of automation workflow triggers",
			},
			[]string{"trigger"},
		),
		ExportsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "exports_created_total",
			Help: "Total number of lead exports created",
		}),
	}
}

// Middleware creates an Echo middleware for Prometheus metrics
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			path := c.Path() // Use route pattern, not actual path (e.g., /api/v1/leads/:id)

			err := next(c)

			status := c.Response().Status
			duration := time.Since(start).Seconds()

			m.HTTPRequestsTotal.WithLabelValues(req.Method, path, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(req.Method, path, strconv.Itoa(status)).Observe(duration)

			return err
		}
	}
}

// RecordLeadScored increments the scoring counter
func (m *Metrics) RecordLeadScored(success bool) {
	status := "failed"
	if success {
		status = "success"
	}
	m.LeadsScored.WithLabelValues(status).Inc()
}

// RecordLeadsImported adds to the import counter
func (m *Metrics) RecordLeadsImported(count int) {
	m.LeadsImported.Add(float64(count))
}

// RecordOutreachGenerated increments the outreach counter
func (m *Metrics) RecordOutreachGenerated(channel string) {
	m.OutreachGenerated.WithLabelValues(channel).Inc()
}

// RecordCallScheduled increments the calls scheduled counter
func (m *Metrics) RecordCallScheduled() {
	m.CallsScheduled.Inc()
}

// RecordWorkflowTrigger increments the workflow trigger counter
func (m *Metrics) RecordWorkflowTrigger(trigger string) {
	m.WorkflowTriggers.WithLabelValues(trigger).Inc()
}

// RecordExportCreated increments exports created counter
func (m *Metrics) RecordExportCreated() {
	m.ExportsCreated.Inc()
}
