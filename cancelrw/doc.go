// Package cancelrw provides cooperative cancellation for blocking I/O.
//
// This package defines a shared cancellation Token, wrapper types that make
// any io.Reader, io.Writer, io.Seeker, or buffered reader cancellable, and a
// Guard that cancels a token when a scope is left.
//
// Cancellation is cooperative: a wrapper checks its token before delegating
// each operation and reports ErrCancelled instead of touching the underlying
// resource once the token is cancelled. An underlying call that is already
// in flight is never interrupted, so cancellation latency is bounded by the
// duration of one underlying call. Closing a wrapper is never gated, because
// cleanup must work after cancellation.
//
// Key types:
//   - Token: a cheap handle around a shared atomic flag; copies share the flag
//   - Reader, Writer, Seeker, BufReader: cancellable wrappers per capability
//   - ReadWriter, ReadSeeker, WriteSeeker, ReadWriteSeeker: combined wrappers
//   - Guard: an io.Closer that cancels its token exactly once
//
// Common usage pattern:
//
//	token := cancelrw.New()
//	reader := cancelrw.NewReader(token, conn)
//
//	go func() {
//		<-shutdown
//		token.Cancel()
//	}()
//
//	buf := make([]byte, 32*1024)
//	for {
//		n, err := reader.Read(buf)
//		if errors.Is(err, cancelrw.ErrCancelled) {
//			break // cancelled between chunks
//		}
//		// handle n, err as with any io.Reader
//	}
//
// Tokens interoperate with context.Context through LinkContext and
// TokenFromContext, and Copy provides a token-aware io.Copy with per-chunk
// cancellation checks.
package cancelrw
