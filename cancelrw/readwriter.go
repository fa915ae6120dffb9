package cancelrw

import "io"

// The combined wrappers share one token across the capability wrappers they
// embed, the way bufio.ReadWriter combines its halves. Gated operations
// promote from the embedded wrappers; Token, Close, and Unwrap are defined
// explicitly because they exist on more than one embedded wrapper.

// ReadWriter gates both sides of an io.ReadWriter with one token.
type ReadWriter struct {
	*Reader
	*Writer
	inner io.ReadWriter
}

var _ io.ReadWriteCloser = (*ReadWriter)(nil)

// NewReadWriter wraps inner so that reads and writes are gated by token.
func NewReadWriter(token Token, inner io.ReadWriter) *ReadWriter {
	return &ReadWriter{
		Reader: NewReader(token, inner),
		Writer: NewWriter(token, inner),
		inner:  inner,
	}
}

// Token returns the token gating both sides.
func (rw *ReadWriter) Token() Token {
	return rw.Reader.Token()
}

// Close closes the underlying resource once, if it is an io.Closer.
// Never gated.
func (rw *ReadWriter) Close() error {
	return closeInner(rw.inner)
}

// Unwrap returns the underlying resource.
func (rw *ReadWriter) Unwrap() io.ReadWriter {
	return rw.inner
}

// ReadSeeker gates an io.ReadSeeker with one token.
type ReadSeeker struct {
	*Reader
	*Seeker
	inner io.ReadSeeker
}

var _ io.ReadSeeker = (*ReadSeeker)(nil)

// NewReadSeeker wraps inner so that reads and seeks are gated by token.
func NewReadSeeker(token Token, inner io.ReadSeeker) *ReadSeeker {
	return &ReadSeeker{
		Reader: NewReader(token, inner),
		Seeker: NewSeeker(token, inner),
		inner:  inner,
	}
}

// Token returns the token gating this resource.
func (rs *ReadSeeker) Token() Token {
	return rs.Reader.Token()
}

// Close closes the underlying resource once, if it is an io.Closer.
// Never gated.
func (rs *ReadSeeker) Close() error {
	return closeInner(rs.inner)
}

// Unwrap returns the underlying resource.
func (rs *ReadSeeker) Unwrap() io.ReadSeeker {
	return rs.inner
}

// WriteSeeker gates an io.WriteSeeker with one token.
type WriteSeeker struct {
	*Writer
	*Seeker
	inner io.WriteSeeker
}

var _ io.WriteSeeker = (*WriteSeeker)(nil)

// NewWriteSeeker wraps inner so that writes and seeks are gated by token.
func NewWriteSeeker(token Token, inner io.WriteSeeker) *WriteSeeker {
	return &WriteSeeker{
		Writer: NewWriter(token, inner),
		Seeker: NewSeeker(token, inner),
		inner:  inner,
	}
}

// Token returns the token gating this resource.
func (ws *WriteSeeker) Token() Token {
	return ws.Writer.Token()
}

// Close closes the underlying resource once, if it is an io.Closer.
// Never gated.
func (ws *WriteSeeker) Close() error {
	return closeInner(ws.inner)
}

// Unwrap returns the underlying resource.
func (ws *WriteSeeker) Unwrap() io.WriteSeeker {
	return ws.inner
}

// ReadWriteSeeker gates the full surface of an io.ReadWriteSeeker, such as
// an os.File, with one token.
type ReadWriteSeeker struct {
	*Reader
	*Writer
	*Seeker
	inner io.ReadWriteSeeker
}

var _ io.ReadWriteSeeker = (*ReadWriteSeeker)(nil)

// NewReadWriteSeeker wraps inner so that reads, writes, and seeks are gated
// by token.
func NewReadWriteSeeker(token Token, inner io.ReadWriteSeeker) *ReadWriteSeeker {
	return &ReadWriteSeeker{
		Reader: NewReader(token, inner),
		Writer: NewWriter(token, inner),
		Seeker: NewSeeker(token, inner),
		inner:  inner,
	}
}

// Token returns the token gating this resource.
func (rws *ReadWriteSeeker) Token() Token {
	return rws.Reader.Token()
}

// Close closes the underlying resource once, if it is an io.Closer.
// Never gated.
func (rws *ReadWriteSeeker) Close() error {
	return closeInner(rws.inner)
}

// Unwrap returns the underlying resource.
func (rws *ReadWriteSeeker) Unwrap() io.ReadWriteSeeker {
	return rws.inner
}

// closeInner closes a wrapped resource if it is an io.Closer.
func closeInner(inner any) error {
	if closer, ok := inner.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}
