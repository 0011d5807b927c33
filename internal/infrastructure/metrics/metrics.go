// Package metrics colectores Prometheus del libro de bodega y de la capa HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jhoicas/kitchen-ledger/internal/application/ledger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ ledger.Metrics = (*Recorder)(nil)

// Recorder agrupa los colectores sobre un registro propio, para que varias instancias
// (tests, procesos) no choquen en el registro global.
type Recorder struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	approvalsTotal      *prometheus.CounterVec
	menuIssuesTotal     *prometheus.CounterVec
	menuIssueLines      prometheus.Histogram
}

// NewRecorder crea los colectores con el prefijo configurado (METRICS_PREFIX).
func NewRecorder(prefix string) *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		approvalsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_document_approvals_total",
				Help: "Document approval attempts by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		menuIssuesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_menu_issues_total",
				Help: "Issues generated or refreshed from a daily menu, by outcome",
			},
			[]string{"outcome"},
		),
		menuIssueLines: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    prefix + "_menu_issue_lines",
				Help:    "Number of lines of issues generated from a daily menu",
				Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
			},
		),
	}
}

// ObserveApproval cuenta un intento de aprobación.
func (r *Recorder) ObserveApproval(kind, outcome string) {
	if kind == "" {
		kind = "unknown"
	}
	r.approvalsTotal.WithLabelValues(kind, outcome).Inc()
}

// ObserveMenuIssue cuenta una generación de salida desde menú; lines solo se registra si se creó.
func (r *Recorder) ObserveMenuIssue(outcome string, lines int) {
	r.menuIssuesTotal.WithLabelValues(outcome).Inc()
	if outcome == ledger.OutcomeCreated {
		r.menuIssueLines.Observe(float64(lines))
	}
}

// ObserveHTTP registra una petición. path debe ser la ruta registrada, no la URL, para acotar cardinalidad.
func (r *Recorder) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	r.httpRequestsTotal.WithLabelValues(method, path, code).Inc()
	r.httpRequestDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}

// Handler expone el registro en formato de texto de Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer acceso al registro (tests).
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}
