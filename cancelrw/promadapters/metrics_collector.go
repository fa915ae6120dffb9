// Package promadapters provides a Prometheus adapter for the cancelrw
// MetricsCollector interface. Cancellation counts, refused operations, and
// copy durations become regular Prometheus metrics on the registry you choose.
package promadapters

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rodrigorc/cancel-rw/cancelrw"
)

// durationBuckets covers the range from sub-millisecond buffer copies to
// multi-second large-object transfers.
var durationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// MetricsCollector implements cancelrw.MetricsCollector using Prometheus vectors.
// Vectors are created lazily on the first observation of each metric name, with
// the label names taken from that first call. Prometheus requires a fixed label
// set per metric, so later calls with different label names are dropped.
type MetricsCollector struct {
	registerer prometheus.Registerer
	histograms map[string]*prometheus.HistogramVec
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	mu         sync.Mutex
}

// NewMetricsCollector creates a new Prometheus metrics collector registering
// its vectors with the given registerer. A nil registerer falls back to
// prometheus.DefaultRegisterer.
func NewMetricsCollector(registerer prometheus.Registerer) *MetricsCollector {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &MetricsCollector{
		registerer: registerer,
		histograms: make(map[string]*prometheus.HistogramVec),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}
}

// RecordDuration records a duration measurement using a Prometheus histogram.
func (m *MetricsCollector) RecordDuration(metricName string, duration time.Duration, labels map[string]string) {
	histogram := m.getOrCreateHistogram(metricName, labels)
	if histogram == nil {
		return
	}

	observer, err := histogram.GetMetricWith(prometheus.Labels(labels))
	if err != nil {
		// Label names diverged from the first observation
		return
	}

	observer.Observe(duration.Seconds())
}

// IncrementCounter increments a Prometheus counter.
func (m *MetricsCollector) IncrementCounter(metricName string, labels map[string]string) {
	counter := m.getOrCreateCounter(metricName, labels)
	if counter == nil {
		return
	}

	child, err := counter.GetMetricWith(prometheus.Labels(labels))
	if err != nil {
		return
	}

	child.Inc()
}

// RecordValue records a float64 value using a Prometheus gauge.
func (m *MetricsCollector) RecordValue(metricName string, value float64, labels map[string]string) {
	gauge := m.getOrCreateGauge(metricName, labels)
	if gauge == nil {
		return
	}

	child, err := gauge.GetMetricWith(prometheus.Labels(labels))
	if err != nil {
		return
	}

	child.Set(value)
}

// labelNames returns the sorted label names of a label set. Prometheus keys a
// vector by its label names, so the order must be deterministic.
func labelNames(labels map[string]string) []string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// getOrCreateHistogram gets an existing histogram vector or creates and registers a new one.
func (m *MetricsCollector) getOrCreateHistogram(name string, labels map[string]string) *prometheus.HistogramVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	if histogram, exists := m.histograms[name]; exists {
		return histogram
	}

	histogram := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    name,
		Help:    "Cancellable I/O operation duration in seconds",
		Buckets: durationBuckets,
	}, labelNames(labels))

	if err := m.registerer.Register(histogram); err != nil {
		// In production, you might want to log this error
		return nil
	}

	m.histograms[name] = histogram
	return histogram
}

// getOrCreateCounter gets an existing counter vector or creates and registers a new one.
func (m *MetricsCollector) getOrCreateCounter(name string, labels map[string]string) *prometheus.CounterVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	if counter, exists := m.counters[name]; exists {
		return counter
	}

	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: "Cancellable I/O operation counter",
	}, labelNames(labels))

	if err := m.registerer.Register(counter); err != nil {
		// In production, you might want to log this error
		return nil
	}

	m.counters[name] = counter
	return counter
}

// getOrCreateGauge gets an existing gauge vector or creates and registers a new one.
func (m *MetricsCollector) getOrCreateGauge(name string, labels map[string]string) *prometheus.GaugeVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gauge, exists := m.gauges[name]; exists {
		return gauge
	}

	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: name,
		Help: "Cancellable I/O current value",
	}, labelNames(labels))

	if err := m.registerer.Register(gauge); err != nil {
		// In production, you might want to log this error
		return nil
	}

	m.gauges[name] = gauge
	return gauge
}

// Ensure MetricsCollector implements cancelrw.MetricsCollector.
var _ cancelrw.MetricsCollector = (*MetricsCollector)(nil)
