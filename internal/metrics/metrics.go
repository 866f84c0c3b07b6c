package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/terraincognita07/pregcare/internal/services"
)

const namespace = "pregcare"

// Metrics owns a private registry. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration   *prometheus.HistogramVec
	requestsTotal     *prometheus.CounterVec
	phaseComputations *prometheus.CounterVec
	phaseFallbacks    prometheus.Counter
	rolloverRuns      *prometheus.CounterVec
	rolloverDuration  prometheus.Histogram
	phasesUpdated     prometheus.Counter
	notificationsSent prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		phaseComputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phase_computations_total",
			Help:      "Phase descriptors computed, by phase.",
		}, []string{"phase"}),
		phaseFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phase_fallback_total",
			Help:      "Unknown phase tags rendered as normal.",
		}),
		rolloverRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rollover_runs_total",
			Help:      "Daily rollover runs, by result.",
		}, []string{"result"}),
		rolloverDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rollover_duration_seconds",
			Help:      "Duration of daily rollover runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		phasesUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rollover_phases_updated_total",
			Help:      "Current cycles whose stored phase changed during rollover.",
		}),
		notificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rollover_notifications_created_total",
			Help:      "Notifications raised by rollover runs.",
		}),
	}

	registry.MustRegister(
		m.requestDuration,
		m.requestsTotal,
		m.phaseComputations,
		m.phaseFallbacks,
		m.rolloverRuns,
		m.rolloverDuration,
		m.phasesUpdated,
		m.notificationsSent,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	m.requestDuration.With(labels).Observe(duration.Seconds())
	m.requestsTotal.With(labels).Inc()
}

// ObservePhase counts a computed descriptor. Only the normalized phase becomes
// a label; stored tags are free text and stay in the logs.
func (m *Metrics) ObservePhase(descriptor services.PhaseDescriptor) {
	if m == nil || !descriptor.HasCycle {
		return
	}
	m.phaseComputations.WithLabelValues(descriptor.Phase).Inc()
	if descriptor.Fallback {
		m.phaseFallbacks.Inc()
	}
}

// ObserveRollover implements services.RolloverObserver.
func (m *Metrics) ObserveRollover(report services.RolloverReport, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.rolloverRuns.WithLabelValues(result).Inc()
	m.rolloverDuration.Observe(report.Duration.Seconds())
	m.phasesUpdated.Add(float64(report.PhasesUpdated))
	m.notificationsSent.Add(float64(report.NotificationsCreated))
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// FiberHandler serves the registry on a fiber route.
func (m *Metrics) FiberHandler() fiber.Handler {
	return adaptor.HTTPHandler(m.Handler())
}

// FiberMiddleware records request count and latency keyed by route pattern.
func (m *Metrics) FiberMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		path := c.Route().Path
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTPRequest(c.Method(), path, status, time.Since(start))
		return err
	}
}
