package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// Operation outcome labels.
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusCanceled = "canceled"
)

// Recorder owns a Prometheus registry with the bigcalc collectors.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	resultBits *prometheus.HistogramVec
	mismatches prometheus.Counter
}

// NewRecorder creates a Recorder with a fresh registry that also carries the
// Go runtime collector and a heap gauge fed by a MemoryCollector.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	r := &Recorder{
		registry: reg,
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bigcalc_operations_total",
				Help: "The total number of integer operations evaluated",
			},
			[]string{"op", "algorithm", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bigcalc_operation_duration_seconds",
				Help:    "The duration of integer operations in seconds",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 14),
			},
			[]string{"op", "algorithm"},
		),
		resultBits: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bigcalc_result_bits",
				Help:    "Bit length of successful results",
				Buckets: prometheus.ExponentialBuckets(32, 4, 12),
			},
			[]string{"op"},
		),
		mismatches: factory.NewCounter(prometheus.CounterOpts{
			Name: "bigcalc_result_mismatches_total",
			Help: "Comparisons where multipliers disagreed on a result",
		}),
	}
	mc := NewMemoryCollector()
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "bigcalc_heap_alloc_bytes",
		Help: "Bytes of allocated heap objects",
	}, func() float64 { return float64(mc.Snapshot().HeapAlloc) })
	reg.MustRegister(collectors.NewGoCollector())
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveOperation records one evaluation of op by algorithm.
func (r *Recorder) ObserveOperation(op, algorithm string, elapsed time.Duration, bitLen int, err error) {
	if r == nil {
		return
	}
	status := StatusSuccess
	switch {
	case apperrors.IsContextError(err):
		status = StatusCanceled
	case err != nil:
		status = StatusError
	}
	r.operations.WithLabelValues(op, algorithm, status).Inc()
	r.duration.WithLabelValues(op, algorithm).Observe(elapsed.Seconds())
	if err == nil {
		r.resultBits.WithLabelValues(op).Observe(float64(bitLen))
	}
}

// ObserveMismatch records a disagreement between strategies.
func (r *Recorder) ObserveMismatch() {
	if r == nil {
		return
	}
	r.mismatches.Inc()
}

// RegisterFallbackCounter exports a monotonically increasing count, such as
// multiplier.Selector.Fallbacks, as bigcalc_fft_fallbacks_total.
func (r *Recorder) RegisterFallbackCounter(count func() uint64) error {
	if r == nil {
		return nil
	}
	c := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "bigcalc_fft_fallbacks_total",
		Help: "FFT products that fell back to Karatsuba after a precision error",
	}, func() float64 { return float64(count()) })
	if err := r.registry.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return nil
		}
		return err
	}
	return nil
}

// WriteToTextfile writes the current metrics to path in the text exposition
// format. The file is written atomically.
func (r *Recorder) WriteToTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
