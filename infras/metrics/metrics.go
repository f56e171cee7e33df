package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
)

const namespace = "bayleaf"

const (
	KindReservation    = "reservation"
	KindContactMessage = "contact_message"

	ModeDemo      = "demo"
	ModeConnected = "connected"

	ResultSuccess   = "success"
	ResultDuplicate = "duplicate"
	ResultInvalid   = "invalid"
	ResultError     = "error"
	ResultTimeout   = "timeout"

	SinkContactMessage = "contact_message"
	SinkKafka          = "kafka"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	reg *prometheus.Registry

	Submissions          *prometheus.CounterVec
	NotificationFailures *prometheus.CounterVec
	FailedLogins         prometheus.Counter
	PanicsRecovered      prometheus.Counter
	RequestDuration      *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		reg: reg,
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_submissions_total",
			Help:      "Reservation and contact form submissions by kind, mode and result.",
		}, []string{"kind", "mode", "result"}),
		NotificationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_notification_failures_total",
			Help:      "Staff notifications that could not be delivered after a reservation was stored.",
		}, []string{"sink"}),
		FailedLogins: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failed_login_attempts_total",
			Help:      "Total number of failed staff login attempts.",
		}),
		PanicsRecovered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_panics_recovered_total",
			Help:      "Total number of HTTP requests recovered from internal panic.",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern and status code.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.3, 0.6, 1, 3, 6, 10, 30},
		}, []string{"method", "route", "code"}),
	}
}

// ObserveRequest records a request, attaching the trace id as an exemplar when sampled.
func (m *Metrics) ObserveRequest(ctx context.Context, method, route string, code int, elapsed time.Duration) {
	observer := m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(code))

	if exemplar := exemplarFromContext(ctx); exemplar != nil {
		if eo, ok := observer.(prometheus.ExemplarObserver); ok {
			eo.ObserveWithExemplar(elapsed.Seconds(), exemplar)

			return
		}
	}

	observer.Observe(elapsed.Seconds())
}

func (m *Metrics) Submission(kind, mode, result string) {
	m.Submissions.WithLabelValues(kind, mode, result).Inc()
}

func (m *Metrics) NotificationFailed(sink string) {
	m.NotificationFailures.WithLabelValues(sink).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

func exemplarFromContext(ctx context.Context) prometheus.Labels {
	if span := trace.SpanContextFromContext(ctx); span.IsSampled() {
		return prometheus.Labels{"traceID": span.TraceID().String()}
	}

	return nil
}
