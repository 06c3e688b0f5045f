package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const prefix = "immotrust"

// Metrics groups the service collectors. A nil *Metrics records nothing, so
// domain services and tests can run without a registry.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	QuotaDecisions      *prometheus.CounterVec
	PermissionDecisions *prometheus.CounterVec
	TrustScore          *prometheus.HistogramVec
	BadgesAwarded       *prometheus.CounterVec
	LeadsClassified     *prometheus.CounterVec
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		QuotaDecisions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_quota_decisions_total",
				Help: "Quota checks by resource and outcome",
			},
			[]string{"resource", "outcome"},
		),
		PermissionDecisions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_permission_decisions_total",
				Help: "Team permission checks by outcome",
			},
			[]string{"outcome"},
		),
		TrustScore: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_trust_score",
				Help:    "Recalculated trust scores",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
			[]string{"entity"},
		),
		BadgesAwarded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_badges_awarded_total",
				Help: "Badges awarded by code",
			},
			[]string{"code"},
		),
		LeadsClassified: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_leads_classified_total",
				Help: "Submitted leads by tier",
			},
			[]string{"tier"},
		),
	}
}

func (m *Metrics) ObserveHTTP(method, path, status string, started time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(started).Seconds())
}

// RecordQuota counts one quota outcome: allowed, denied or error.
func (m *Metrics) RecordQuota(resource, outcome string) {
	if m == nil {
		return
	}
	m.QuotaDecisions.WithLabelValues(resource, outcome).Inc()
}

func (m *Metrics) RecordPermission(outcome string) {
	if m == nil {
		return
	}
	m.PermissionDecisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveTrustScore(entity string, score int) {
	if m == nil {
		return
	}
	m.TrustScore.WithLabelValues(entity).Observe(float64(score))
}

func (m *Metrics) RecordBadgeAwarded(code string) {
	if m == nil {
		return
	}
	m.BadgesAwarded.WithLabelValues(code).Inc()
}

func (m *Metrics) RecordLead(tier string) {
	if m == nil {
		return
	}
	m.LeadsClassified.WithLabelValues(tier).Inc()
}
