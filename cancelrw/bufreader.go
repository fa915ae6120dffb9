package cancelrw

import "io"

// BufferedReader is the buffered byte source a BufReader gates.
// *bufio.Reader satisfies it.
type BufferedReader interface {
	io.Reader
	io.ByteReader
	Peek(n int) ([]byte, error)
	Discard(n int) (int, error)
	Buffered() int
}

// BufReader gates a buffered reader with a cancellation Token. Read,
// ReadByte, and Peek may pull bytes from the underlying resource, so they
// are gated. Discarding bytes that are already buffered is bookkeeping and
// always succeeds, so a parser is never stranded between a successful Peek
// and the matching Discard.
type BufReader struct {
	token Token
	inner BufferedReader
}

var (
	_ io.Reader     = (*BufReader)(nil)
	_ io.ByteReader = (*BufReader)(nil)
)

// NewBufReader wraps inner so that every buffer-filling operation is gated
// by token.
func NewBufReader(token Token, inner BufferedReader) *BufReader {
	return &BufReader{token: token, inner: inner}
}

// Read delegates to the underlying reader and returns its results
// unmodified. Once the token is cancelled it returns 0 and ErrCancelled.
func (b *BufReader) Read(p []byte) (int, error) {
	if b.token.Cancelled() {
		return 0, b.token.abort(operationRead)
	}

	return b.inner.Read(p)
}

// ReadByte reads a single byte, gated like Read.
func (b *BufReader) ReadByte() (byte, error) {
	if b.token.Cancelled() {
		return 0, b.token.abort(operationReadByte)
	}

	return b.inner.ReadByte()
}

// Peek returns the next n bytes without consuming them. Peek may have to
// fill the buffer from the underlying resource, so it is gated.
func (b *BufReader) Peek(n int) ([]byte, error) {
	if b.token.Cancelled() {
		return nil, b.token.abort(operationPeek)
	}

	return b.inner.Peek(n)
}

// Discard skips the next n bytes. Skipping bytes that are already in the
// buffer is bookkeeping and is not gated, even after cancellation. A Discard
// reaching past the buffer has to read from the underlying resource and is
// gated like Read.
func (b *BufReader) Discard(n int) (int, error) {
	if n > b.inner.Buffered() && b.token.Cancelled() {
		return 0, b.token.abort(operationDiscard)
	}

	return b.inner.Discard(n)
}

// Buffered reports the number of bytes that can be read from the buffer
// without touching the underlying resource. Never gated.
func (b *BufReader) Buffered() int {
	return b.inner.Buffered()
}

// Close closes the underlying reader if it is an io.Closer and returns nil
// otherwise. Closing is never gated.
func (b *BufReader) Close() error {
	return closeInner(b.inner)
}

// Token returns the token gating this reader.
func (b *BufReader) Token() Token {
	return b.token
}

// Unwrap returns the underlying buffered reader.
func (b *BufReader) Unwrap() BufferedReader {
	return b.inner
}
