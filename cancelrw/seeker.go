package cancelrw

import "io"

// Seeker gates an io.Seeker with a cancellation Token. A single gated Seek
// covers the whole repositioning surface: rewinding is Seek(0, io.SeekStart),
// reading the current position is Seek(0, io.SeekCurrent), and relative
// seeks are Seek(offset, io.SeekCurrent).
type Seeker struct {
	token Token
	inner io.Seeker
}

var _ io.Seeker = (*Seeker)(nil)

// NewSeeker wraps inner so that every Seek is gated by token.
func NewSeeker(token Token, inner io.Seeker) *Seeker {
	return &Seeker{token: token, inner: inner}
}

// Seek delegates to the underlying seeker and returns its results
// unmodified. Once the token is cancelled it returns 0 and ErrCancelled;
// the underlying seeker is not touched.
func (s *Seeker) Seek(offset int64, whence int) (int64, error) {
	if s.token.Cancelled() {
		return 0, s.token.abort(operationSeek)
	}

	return s.inner.Seek(offset, whence)
}

// Token returns the token gating this seeker.
func (s *Seeker) Token() Token {
	return s.token
}

// Unwrap returns the underlying seeker.
func (s *Seeker) Unwrap() io.Seeker {
	return s.inner
}
