package cancelrw

import "io"

// Writer gates an io.Writer with a cancellation Token: Write, WriteString,
// and Flush check the token first and report ErrCancelled without touching
// the underlying writer once the token is cancelled.
//
// Writer deliberately does not implement io.ReaderFrom, so io.Copy into it
// uses its chunked loop and the token is checked once per chunk.
type Writer struct {
	token Token
	inner io.Writer
}

var (
	_ io.WriteCloser  = (*Writer)(nil)
	_ io.StringWriter = (*Writer)(nil)
)

// NewWriter wraps inner so that every write is gated by token.
func NewWriter(token Token, inner io.Writer) *Writer {
	return &Writer{token: token, inner: inner}
}

// Write delegates to the underlying writer and returns its results
// unmodified. Once the token is cancelled it returns 0 and ErrCancelled;
// the underlying writer is not touched.
func (w *Writer) Write(p []byte) (int, error) {
	if w.token.Cancelled() {
		return 0, w.token.abort(operationWrite)
	}

	return w.inner.Write(p)
}

// WriteString writes s, delegating to the underlying io.StringWriter when
// the writer has one. Implementing io.StringWriter keeps fmt.Fprintf and
// io.WriteString over the wrapper on their fast path, gated like Write.
func (w *Writer) WriteString(s string) (int, error) {
	if w.token.Cancelled() {
		return 0, w.token.abort(operationWriteString)
	}

	if sw, ok := w.inner.(io.StringWriter); ok {
		return sw.WriteString(s)
	}

	return w.inner.Write([]byte(s))
}

// Flush flushes the underlying writer if it has a Flush method
// (bufio.Writer, gzip.Writer) and returns nil otherwise. Flushing pushes
// buffered bytes into the resource, so it is gated like Write.
func (w *Writer) Flush() error {
	if w.token.Cancelled() {
		return w.token.abort(operationFlush)
	}

	if flusher, ok := w.inner.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}

	return nil
}

// Close closes the underlying writer if it is an io.Closer and returns nil
// otherwise. Closing is never gated: cleanup must keep working after
// cancellation.
func (w *Writer) Close() error {
	return closeInner(w.inner)
}

// Token returns the token gating this writer.
func (w *Writer) Token() Token {
	return w.token
}

// Unwrap returns the underlying writer.
func (w *Writer) Unwrap() io.Writer {
	return w.inner
}
