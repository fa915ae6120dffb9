package cancelrw

import "io"

// Reader gates an io.Reader with a cancellation Token: every Read checks the
// token first and reports ErrCancelled without touching the underlying
// reader once the token is cancelled.
//
// Reader deliberately does not implement io.WriterTo, so io.Copy falls back
// to its chunked loop and the token is checked once per chunk. Use Copy for
// an instrumented copy with the same guarantee.
type Reader struct {
	token Token
	inner io.Reader
}

var _ io.ReadCloser = (*Reader)(nil)

// NewReader wraps inner so that every Read is gated by token.
func NewReader(token Token, inner io.Reader) *Reader {
	return &Reader{token: token, inner: inner}
}

// Read delegates to the underlying reader and returns its results
// unmodified. Once the token is cancelled it returns 0 and ErrCancelled;
// the underlying reader is not touched.
func (r *Reader) Read(p []byte) (int, error) {
	if r.token.Cancelled() {
		return 0, r.token.abort(operationRead)
	}

	return r.inner.Read(p)
}

// Close closes the underlying reader if it is an io.Closer and returns nil
// otherwise. Closing is never gated: cleanup must keep working after
// cancellation.
func (r *Reader) Close() error {
	return closeInner(r.inner)
}

// Token returns the token gating this reader.
func (r *Reader) Token() Token {
	return r.token
}

// Unwrap returns the underlying reader.
func (r *Reader) Unwrap() io.Reader {
	return r.inner
}
