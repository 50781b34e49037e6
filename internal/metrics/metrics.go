package metrics

import (
	"fmt"
	"net/http"

	"vacuum_packaging/internal/packaging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vacuum_packaging"

// rejections_total reasons.
const (
	reasonConfiguration = "configuration"
	reasonBusy          = "busy"
)

// Registry owns the Prometheus registry exposed on /metrics and the
// packaging collectors fed by controller events.
type Registry struct {
	prom *prometheus.Registry

	runs       *prometheus.CounterVec
	rejections *prometheus.CounterVec
	stageTime  *prometheus.HistogramVec
	running    prometheus.Gauge
}

// NewRegistry creates a registry with Go/process collectors and the packaging metrics.
func NewRegistry() (*Registry, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("registering go collector: %w", err)
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("registering process collector: %w", err)
	}

	r := &Registry{
		prom: reg,
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished packaging runs by outcome.",
		}, []string{"outcome"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Packaging requests refused before any stage ran, by reason.",
		}, []string{"reason"}),
		stageTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Time spent in each packaging stage.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 1.5, 2, 3, 5, 10},
		}, []string{"stage", "result"}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "running",
			Help:      "1 while a packaging run holds the machine.",
		}),
	}

	for _, c := range []prometheus.Collector{r.runs, r.rejections, r.stageTime, r.running} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering packaging collector: %w", err)
		}
	}
	return r, nil
}

// Handler returns an http.Handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prom, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// PrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.prom
}

// Observe implements packaging.Observer.
func (r *Registry) Observe(e packaging.Event) {
	switch e.Kind {
	case packaging.EventRunRejected:
		r.rejections.WithLabelValues(reasonConfiguration).Inc()
	case packaging.EventRunBusy:
		r.rejections.WithLabelValues(reasonBusy).Inc()
	case packaging.EventRunStarted:
		r.running.Set(1)
	case packaging.EventStageCompleted:
		r.stageTime.WithLabelValues(string(e.Stage), "completed").Observe(e.Elapsed.Seconds())
	case packaging.EventStageFailed:
		r.stageTime.WithLabelValues(string(e.Stage), "failed").Observe(e.Elapsed.Seconds())
	case packaging.EventRunCompleted:
		r.runs.WithLabelValues(string(packaging.OutcomeSuccess)).Inc()
		r.running.Set(0)
	case packaging.EventRunFailed:
		r.runs.WithLabelValues(string(packaging.OutcomeStageFailure)).Inc()
		r.running.Set(0)
	}
}
