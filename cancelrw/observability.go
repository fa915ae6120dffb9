package cancelrw

import (
	"context"
	"math"
	"time"
)

const (
	logMsgTokenCancelled = "cancellation token cancelled"
	logMsgCopyCompleted  = "copy completed"
	logMsgCopyCancelled  = "copy cancelled"
	logMsgCopyFailed     = "copy failed"
	logMsgOperation      = "cancelrw operation: "

	logAttrToken      = "token"
	logAttrBytes      = "bytes"
	logAttrDurationMS = "duration_ms"
	logAttrError      = "error"

	metricCancellations = "cancelrw_cancellations_total"
	metricAbortedOps    = "cancelrw_aborted_operations_total"
	metricCopyDuration  = "cancelrw_copy_duration_seconds"
	metricCopyBytes     = "cancelrw_copy_bytes_total"

	spanNameCopy      = "cancelrw.copy"
	spanAttrOperation = "operation"
	spanAttrToken     = "token"
	spanAttrBytes     = "bytes"
	spanAttrErrorType = "error_type"

	labelStatus = "status"

	statusSuccess   = "success"
	statusCancelled = "cancelled"
	statusError     = "error"

	operationRead        = "read"
	operationReadByte    = "read_byte"
	operationPeek        = "peek"
	operationDiscard     = "discard"
	operationWrite       = "write"
	operationWriteString = "write_string"
	operationFlush       = "flush"
	operationSeek        = "seek"
	operationCopy        = "copy"
)

// Logger interface for cancellation logging, operational summaries, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting cancellation and copy metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// SpanContext represents an active tracing span that can be finished and updated with attributes.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector interface for collecting distributed tracing information from copy operations.
// This interface follows the same dependency-free pattern as MetricsCollector, allowing users to
// integrate with any tracing backend (OpenTelemetry, Jaeger, Zipkin, etc.) by implementing it.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}

// observers bundles the optional collectors a Token carries. All helpers are
// nil-safe so call sites never guard; the zero observers value is fully inert.
type observers struct {
	logger  Logger
	metrics MetricsCollector
	tracing TracingCollector
}

// logDebug logs at debug level if the logger is configured.
func (o observers) logDebug(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Debug(msg, args...)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (o observers) logOperation(action string, args ...any) {
	if o.logger != nil {
		o.logger.Info(logMsgOperation+action, args...)
	}
}

// logError logs error information at the error level if the logger is configured.
func (o observers) logError(message string, err error, args ...any) {
	if o.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		o.logger.Error(message, allArgs...)
	}
}

// incrementCounter increments a counter metric if the metrics collector is configured.
func (o observers) incrementCounter(metric string, labels map[string]string) {
	if o.metrics != nil {
		o.metrics.IncrementCounter(metric, labels)
	}
}

// recordDuration records a duration metric if the metrics collector is configured.
func (o observers) recordDuration(metric string, duration time.Duration, labels map[string]string) {
	if o.metrics != nil {
		o.metrics.RecordDuration(metric, duration, labels)
	}
}

// recordValue records a value metric if the metrics collector is configured.
func (o observers) recordValue(metric string, value float64, labels map[string]string) {
	if o.metrics != nil {
		o.metrics.RecordValue(metric, value, labels)
	}
}

// recordAborted counts a gated operation that was refused because the token
// was already cancelled.
func (o observers) recordAborted(operation string) {
	if o.metrics != nil {
		o.metrics.IncrementCounter(metricAbortedOps, map[string]string{spanAttrOperation: operation})
	}
}

// startSpan starts a tracing span if the tracing collector is configured.
func (o observers) startSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext) {
	if o.tracing != nil {
		return o.tracing.StartSpan(ctx, name, attrs)
	}

	return ctx, nil
}

// finishSpan finishes a tracing span if the tracing collector is configured.
func (o observers) finishSpan(spanCtx SpanContext, status string, attrs map[string]string) {
	if o.tracing != nil && spanCtx != nil {
		o.tracing.FinishSpan(spanCtx, status, attrs)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
