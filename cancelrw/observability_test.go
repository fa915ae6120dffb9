package cancelrw_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/rodrigorc/cancel-rw/cancelrw"
	"github.com/rodrigorc/cancel-rw/testutil/helper"
)

func Test_Observability_Token_WithLogger_LogsCancellationExactlyOnce(t *testing.T) {
	// setup
	loggerSpy := helper.NewLoggerSpy()
	token := New(WithLogger(loggerSpy))

	// act
	token.Cancel()
	token.Cancel()
	token.Cancel()

	// assert
	assert.True(t, loggerSpy.HasRecord("debug", "cancellation token cancelled"),
		"should log cancellation at debug level")
	assert.Equal(t, 1, loggerSpy.CountRecordsForMessage("cancellation token cancelled"),
		"repeated cancels should not log again")
}

func Test_Observability_Token_WithMetrics_CountsCancellationExactlyOnce(t *testing.T) {
	// setup
	metricsSpy := helper.NewMetricsCollectorSpy()
	token := New(WithMetrics(metricsSpy))

	// act
	token.Cancel()
	token.Cancel()

	// assert
	assert.Equal(t, 1, metricsSpy.CountCounterRecordsForMetric("cancelrw_cancellations_total"),
		"repeated cancels should count a single cancellation")
}

func Test_Observability_Wrapper_WithMetrics_CountsRefusedOperations(t *testing.T) {
	// setup
	metricsSpy := helper.NewMetricsCollectorSpy()
	token := New(WithMetrics(metricsSpy))
	reader := NewReader(token, strings.NewReader("refused"))
	writer := NewWriter(token, &bytes.Buffer{})

	// arrange
	token.Cancel()

	// act
	_, _ = reader.Read(make([]byte, 4))
	_, _ = reader.Read(make([]byte, 4))
	_, _ = writer.Write([]byte("refused"))

	// assert
	assert.Equal(t, 3, metricsSpy.CountCounterRecordsForMetric("cancelrw_aborted_operations_total"),
		"every refused call should count once")
	assert.True(t, metricsSpy.HasCounterRecordForMetric("cancelrw_aborted_operations_total").
		WithOperation("read").
		Assert(), "should label refused reads with the read operation")

	metricsSpy.Reset()
	_, _ = writer.Write([]byte("refused"))
	assert.True(t, metricsSpy.HasCounterRecordForMetric("cancelrw_aborted_operations_total").
		WithOperation("write").
		Assert(), "should label refused writes with the write operation")
}

func Test_Observability_Wrapper_SuccessfulOperations_StayOffTheCollectors(t *testing.T) {
	// setup
	loggerSpy := helper.NewLoggerSpy()
	metricsSpy := helper.NewMetricsCollectorSpy()
	token := New(WithLogger(loggerSpy), WithMetrics(metricsSpy))
	reader := NewReader(token, strings.NewReader("quiet"))

	// act: successful reads and flag polls on a live token
	_, err := reader.Read(make([]byte, 5))
	require.NoError(t, err)
	for range 100 {
		_ = token.Cancelled()
		_ = token.Check()
	}

	// assert
	assert.Zero(t, loggerSpy.GetRecordCount(), "the happy path should not log")
	assert.Empty(t, metricsSpy.GetCounterRecords(), "the happy path should not record metrics")

	// act: after cancellation, polling still records nothing beyond the cancel itself
	token.Cancel()
	for range 100 {
		_ = token.Cancelled()
		_ = token.Check()
	}

	// assert
	assert.Equal(t, 1, loggerSpy.GetRecordCount(), "only the cancel should log")
	assert.Len(t, metricsSpy.GetCounterRecords(), 1, "only the cancel should count")
}

func Test_Observability_Copy_WithLogger_LogsCompletion(t *testing.T) {
	// setup
	loggerSpy := helper.NewLoggerSpy()
	token := New(WithLogger(loggerSpy))
	var dst bytes.Buffer

	// act
	_, err := Copy(context.Background(), token, &dst, strings.NewReader("payload"))

	// assert
	assert.NoError(t, err)
	assert.True(t, loggerSpy.HasRecord("info", "cancelrw operation: copy completed"),
		"should log copy completion with the operational prefix")
}

func Test_Observability_Copy_WithLogger_LogsCancellation(t *testing.T) {
	// setup
	loggerSpy := helper.NewLoggerSpy()
	token := New(WithLogger(loggerSpy))
	content := helper.GivenTestContent(t, 1024*1024)
	src := &cancelAfterFirstRead{token: token, inner: bytes.NewReader(content)}
	var dst bytes.Buffer

	// act
	_, err := Copy(context.Background(), token, &dst, src)

	// assert
	assert.ErrorIs(t, err, ErrCancelled)
	assert.True(t, loggerSpy.HasRecord("info", "cancelrw operation: copy cancelled"),
		"a cancelled copy should log as cancelled, not as an error")
	assert.False(t, loggerSpy.HasRecord("error", "copy failed"),
		"a cancelled copy is not a failure")
}

func Test_Observability_Copy_WithLogger_LogsFailures(t *testing.T) {
	// setup
	loggerSpy := helper.NewLoggerSpy()
	token := New(WithLogger(loggerSpy))
	var dst bytes.Buffer

	// act
	_, err := Copy(context.Background(), token, &dst, iotest.ErrReader(errors.New("backend detached")))

	// assert
	assert.Error(t, err)
	assert.True(t, loggerSpy.HasRecord("error", "copy failed"),
		"an inner error should log at error level")
}

func Test_Observability_Copy_WithMetrics_RecordsDurationAndBytes(t *testing.T) {
	// setup
	metricsSpy := helper.NewMetricsCollectorSpy()
	token := New(WithMetrics(metricsSpy))
	content := helper.GivenTestContent(t, 64*1024)
	var dst bytes.Buffer

	// act
	_, err := Copy(context.Background(), token, &dst, bytes.NewReader(content))

	// assert
	assert.NoError(t, err)
	assert.True(t, metricsSpy.HasDurationRecordForMetric("cancelrw_copy_duration_seconds").
		WithOperation("copy").
		WithStatus("success").
		Assert(), "should record copy duration metric with correct labels")
	assert.True(t, metricsSpy.HasValueRecordForMetric("cancelrw_copy_bytes_total").
		WithOperation("copy").
		WithStatus("success").
		Assert(), "should record copied bytes metric with correct labels")
}

func Test_Observability_Copy_WithMetrics_RecordsCancelledStatus(t *testing.T) {
	// setup
	metricsSpy := helper.NewMetricsCollectorSpy()
	token := New(WithMetrics(metricsSpy))
	content := helper.GivenTestContent(t, 1024*1024)
	src := &cancelAfterFirstRead{token: token, inner: bytes.NewReader(content)}
	var dst bytes.Buffer

	// act
	_, err := Copy(context.Background(), token, &dst, src)

	// assert
	assert.ErrorIs(t, err, ErrCancelled)
	assert.True(t, metricsSpy.HasDurationRecordForMetric("cancelrw_copy_duration_seconds").
		WithOperation("copy").
		WithStatus("cancelled").
		Assert(), "should record copy duration metric with cancelled status")
	assert.True(t, metricsSpy.HasCounterRecordForMetric("cancelrw_aborted_operations_total").
		WithOperation("copy").
		Assert(), "should count the refused copy chunk")
}

func Test_Observability_Copy_WithTracing_RecordsSpans(t *testing.T) {
	// setup
	tracingSpy := helper.NewTracingCollectorSpy()
	token := New(WithTracing(tracingSpy))
	var dst bytes.Buffer

	// act
	_, err := Copy(context.Background(), token, &dst, strings.NewReader("payload"))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, tracingSpy.GetSpanRecordCount(), "one copy should record one span")
	assert.True(t, tracingSpy.HasSpanRecordForName("cancelrw.copy").
		WithStatus("success").
		WithStartAttribute("operation", "copy").
		WithStartAttribute("token", token.ID().String()).
		WithEndAttribute("bytes", "7").
		Assert(), "should record copy span with correct attributes")
}

func Test_Observability_Copy_WithTracing_MarksCancelledSpans(t *testing.T) {
	// setup
	tracingSpy := helper.NewTracingCollectorSpy()
	token := New(WithTracing(tracingSpy))
	content := helper.GivenTestContent(t, 1024*1024)
	src := &cancelAfterFirstRead{token: token, inner: bytes.NewReader(content)}
	var dst bytes.Buffer

	// act
	_, err := Copy(context.Background(), token, &dst, src)

	// assert
	assert.ErrorIs(t, err, ErrCancelled)
	assert.True(t, tracingSpy.HasSpanRecordForName("cancelrw.copy").
		WithStatus("cancelled").
		Assert(), "a cancelled copy should finish its span with cancelled status")
}

func Test_Observability_Copy_WithTracing_MarksErrorSpans(t *testing.T) {
	// setup
	tracingSpy := helper.NewTracingCollectorSpy()
	token := New(WithTracing(tracingSpy))
	var dst bytes.Buffer

	// act
	_, err := Copy(context.Background(), token, &dst, iotest.ErrReader(errors.New("backend detached")))

	// assert
	assert.Error(t, err)
	assert.True(t, tracingSpy.HasSpanRecordForName("cancelrw.copy").
		WithStatus("error").
		Assert(), "an inner error should finish its span with error status")
}

func Test_Observability_AllCollectorsTogether_ObserveACancelledCopy(t *testing.T) {
	// setup
	loggerSpy := helper.NewLoggerSpy()
	metricsSpy := helper.NewMetricsCollectorSpy()
	tracingSpy := helper.NewTracingCollectorSpy()
	token := New(WithLogger(loggerSpy), WithMetrics(metricsSpy), WithTracing(tracingSpy))
	content := helper.GivenTestContent(t, 1024*1024)
	src := &cancelAfterFirstRead{token: token, inner: bytes.NewReader(content)}
	var dst bytes.Buffer

	// act
	_, err := Copy(context.Background(), token, &dst, src)

	// assert
	assert.ErrorIs(t, err, ErrCancelled)
	assert.True(t, loggerSpy.HasRecord("debug", "cancellation token cancelled"),
		"the logger should see the cancel")
	assert.True(t, loggerSpy.HasRecord("info", "cancelrw operation: copy cancelled"),
		"the logger should see the copy outcome")
	assert.True(t, metricsSpy.HasCounterRecord("cancelrw_cancellations_total"),
		"the metrics collector should see the cancel")
	assert.True(t, metricsSpy.HasValueRecordForMetric("cancelrw_copy_bytes_total").
		WithStatus("cancelled").
		Assert(), "the metrics collector should see the partial byte count")
	assert.True(t, tracingSpy.HasSpanRecordForName("cancelrw.copy").
		WithStatus("cancelled").
		Assert(), "the tracing collector should see the span")
}

func Test_Observability_WithoutCollectors_EverythingStaysSilent(t *testing.T) {
	// setup: a bare token with no collectors attached
	token := New()
	reader := NewReader(token, strings.NewReader("quiet"))
	var dst bytes.Buffer

	// act: exercise every instrumented path
	token.Cancel()
	token.Cancel()
	_, readErr := reader.Read(make([]byte, 4))
	_, copyErr := Copy(context.Background(), token, &dst, strings.NewReader("quiet"))

	// assert: the instrumented paths behave identically without observers
	assert.ErrorIs(t, readErr, ErrCancelled)
	assert.ErrorIs(t, copyErr, ErrCancelled)
}
