package cancelrw

// Option defines a functional option for configuring a Token at creation.
type Option func(*Token)

// WithLogger sets the logger for the token and everything built on top of it.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: cancellation transitions (development use)
// Info level: copy completion and cancellation summaries (production-safe)
// Error level: copy failures caused by the underlying resources.
func WithLogger(logger Logger) Option {
	return func(t *Token) {
		t.state.obs.logger = logger
	}
}

// WithMetrics sets the metrics collector for the token.
// The metrics collector will receive cancellation counts, refused-operation
// counts, and copy durations and byte totals.
func WithMetrics(collector MetricsCollector) Option {
	return func(t *Token) {
		t.state.obs.metrics = collector
	}
}

// WithTracing sets the tracing collector for the token.
// The tracing collector will receive span lifecycle information for copy
// operations, including context propagation and cancellation tracking.
func WithTracing(collector TracingCollector) Option {
	return func(t *Token) {
		t.state.obs.tracing = collector
	}
}
