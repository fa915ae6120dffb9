package cancelrw_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/rodrigorc/cancel-rw/cancelrw"
	"github.com/rodrigorc/cancel-rw/testutil/helper"
)

func Test_Writer_DelegatesWrites_WhileTokenIsLive(t *testing.T) {
	// arrange
	content := helper.GivenTestContent(t, 512)
	inner := helper.NewRecordingWriter()
	writer := NewWriter(New(), inner)

	// act
	n, err := writer.Write(content)

	// assert
	require.NoError(t, err)
	assert.Equal(t, len(content), n)
	assert.Equal(t, content, inner.Written)
}

func Test_Writer_RefusesWrites_AfterCancellation(t *testing.T) {
	// arrange
	token := New()
	inner := helper.NewRecordingWriter()
	writer := NewWriter(token, inner)

	// act
	token.Cancel()
	n, err := writer.Write([]byte("too late"))

	// assert
	assert.Zero(t, n)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Zero(t, inner.WriteCalls) // the underlying writer was never touched
}

func Test_Writer_WriteString_DelegatesToStringWriters(t *testing.T) {
	// arrange
	inner := helper.NewRecordingWriter()
	writer := NewWriter(New(), inner)

	// act
	n, err := writer.WriteString("hello")

	// assert
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 1, inner.WriteStringCalls)
	assert.Zero(t, inner.WriteCalls)
	assert.Equal(t, "hello", string(inner.Written))
}

func Test_Writer_WriteString_FallsBackToWrite(t *testing.T) {
	// arrange: RecordingFile has no WriteString method
	inner := helper.NewRecordingFile(nil)
	writer := NewWriter(New(), inner)

	// act
	n, err := writer.WriteString("hola")

	// assert
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 1, inner.WriteCalls)
	assert.Equal(t, "hola", string(inner.Content))
}

func Test_Writer_RefusesWriteString_AfterCancellation(t *testing.T) {
	// arrange
	token := New()
	inner := helper.NewRecordingWriter()
	writer := NewWriter(token, inner)

	// act
	token.Cancel()
	n, err := writer.WriteString("too late")

	// assert
	assert.Zero(t, n)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Zero(t, inner.WriteStringCalls)
}

func Test_Writer_FormattedWrites_AreGated(t *testing.T) {
	// arrange
	token := New()
	inner := helper.NewRecordingWriter()
	writer := NewWriter(token, inner)

	// act
	_, err := fmt.Fprintf(writer, "attempt %d", 1)
	require.NoError(t, err)

	token.Cancel()
	_, err = fmt.Fprintf(writer, "attempt %d", 2)

	// assert
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, "attempt 1", string(inner.Written))
}

func Test_Writer_Flush_DelegatesToFlushableWriters(t *testing.T) {
	// arrange
	var sink bytes.Buffer
	gz := gzip.NewWriter(&sink)
	writer := NewWriter(New(), gz)

	// act
	_, err := writer.Write([]byte("compress me"))
	require.NoError(t, err)
	require.NoError(t, writer.Flush())

	// assert: flushed bytes reach the sink before Close
	assert.Greater(t, sink.Len(), 0)
	assert.NoError(t, writer.Close())
}

func Test_Writer_Flush_IsANoOpWithoutFlushSupport(t *testing.T) {
	// arrange
	writer := NewWriter(New(), helper.NewRecordingFile(nil))

	// assert
	assert.NoError(t, writer.Flush())
}

func Test_Writer_RefusesFlush_AfterCancellation(t *testing.T) {
	// arrange
	token := New()
	inner := helper.NewRecordingWriter()
	writer := NewWriter(token, inner)

	// act
	token.Cancel()
	err := writer.Flush()

	// assert
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Zero(t, inner.FlushCalls)
}

func Test_Writer_PassesInnerErrorsThrough(t *testing.T) {
	// arrange
	innerErr := errors.New("quota exceeded")
	inner := helper.NewRecordingWriter()
	inner.FailWith = innerErr
	writer := NewWriter(New(), inner)

	// act
	_, err := writer.Write([]byte("x"))

	// assert
	assert.ErrorIs(t, err, innerErr)
	assert.NotErrorIs(t, err, ErrCancelled)
}

func Test_Writer_Close_IsNeverGated(t *testing.T) {
	// arrange
	token := New()
	inner := helper.NewRecordingWriter()
	writer := NewWriter(token, inner)

	// act
	token.Cancel()
	err := writer.Close()

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, inner.CloseCalls)
}

func Test_Writer_AccessorsExposeTokenAndInner(t *testing.T) {
	// arrange
	token := New()
	inner := helper.NewRecordingWriter()
	writer := NewWriter(token, inner)

	// assert
	assert.True(t, token.Equal(writer.Token()))
	assert.Same(t, inner, writer.Unwrap())
}

func Test_Writer_CrossGoroutineCancellation_StopsAWriteLoop(t *testing.T) {
	// arrange
	token := New()
	inner := helper.NewRecordingWriter()
	writer := NewWriter(token, inner)
	chunk := helper.GivenTestContent(t, 256)

	started := make(chan struct{})
	done := make(chan error, 1)

	// act: a producer writes until its token is cancelled from the outside
	go func() {
		close(started)
		for {
			if _, err := writer.Write(chunk); err != nil {
				done <- err
				return
			}
		}
	}()

	<-started
	token.Cancel()
	err := <-done

	// assert
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, inner.WriteCalls*len(chunk), len(inner.Written)) // every accepted write was complete
}
