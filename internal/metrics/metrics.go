package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"modelswitch/pkg/types"
)

const namespace = "modelswitch"

// Rejection reasons for the selection prompt.
const (
	ReasonNonNumeric = "non_numeric"
	ReasonOutOfRange = "out_of_range"
)

// Recorder holds the series for a single invocation. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	reg *prometheus.Registry

	fetchDuration prometheus.Histogram
	fetchErrors   *prometheus.CounterVec
	catalogModels prometheus.Gauge
	rejected      *prometheus.CounterVec
	selections    *prometheus.CounterVec
}

// New creates a Recorder backed by its own registry.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the backend catalog request in seconds",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		fetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "fetch_errors_total",
			Help:      "Catalog fetches that failed, by error kind",
		}, []string{"kind"}),
		catalogModels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "models",
			Help:      "Number of models reported by the backend",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "selection",
			Name:      "rejected_total",
			Help:      "Prompt answers that were rejected, by reason",
		}, []string{"reason"}),
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_total",
			Help:      "Completed selections, by requested frontend target",
		}, []string{"target"}),
	}
	r.reg.MustRegister(r.fetchDuration, r.fetchErrors, r.catalogModels, r.rejected, r.selections)
	return r
}

// ObserveFetch records a completed catalog request and the number of models it returned.
func (r *Recorder) ObserveFetch(d time.Duration, models int) {
	if r == nil {
		return
	}
	r.fetchDuration.Observe(d.Seconds())
	r.catalogModels.Set(float64(models))
}

// FetchFailed counts a failed catalog request.
func (r *Recorder) FetchFailed(kind string) {
	if r == nil {
		return
	}
	r.fetchErrors.WithLabelValues(kind).Inc()
}

// Rejected counts one rejected prompt answer.
func (r *Recorder) Rejected(reason string) {
	if r == nil {
		return
	}
	r.rejected.WithLabelValues(reason).Inc()
}

// Selected counts a completed selection once per requested target.
func (r *Recorder) Selected(targets []types.Frontend) {
	if r == nil {
		return
	}
	for _, t := range targets {
		r.selections.WithLabelValues(string(t)).Inc()
	}
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.reg }

// WriteTextfile writes the registry in the text exposition format, suitable for
// the node_exporter textfile collector. The write is atomic.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.reg)
}
