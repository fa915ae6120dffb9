package cancelrw

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Copy copies from src to dst until EOF, cancellation, or error, and returns
// the number of bytes written and the first error encountered. The read side
// is gated per chunk: the token and ctx are both checked before every read,
// so neither side's fast-path interfaces can hand the whole stream to the
// underlying resource in a single call.
//
// A token cancellation surfaces as ErrCancelled, a context cancellation as
// the context's error. The token's observers receive a span, duration and
// byte metrics, and a completion or cancellation log line.
func Copy(ctx context.Context, token Token, dst io.Writer, src io.Reader) (int64, error) {
	obs := token.state.obs

	spanCtx, span := obs.startSpan(ctx, spanNameCopy, map[string]string{
		spanAttrOperation: operationCopy,
		spanAttrToken:     token.ID().String(),
	})

	source := &copySource{ctx: spanCtx, token: token, inner: src}

	start := time.Now()
	written, err := io.Copy(dst, source)
	duration := time.Since(start)

	status := copyStatus(err)
	labels := map[string]string{spanAttrOperation: operationCopy, labelStatus: status}
	obs.recordDuration(metricCopyDuration, duration, labels)
	obs.recordValue(metricCopyBytes, float64(written), labels)

	switch status {
	case statusSuccess:
		obs.logOperation(logMsgCopyCompleted,
			logAttrBytes, written,
			logAttrDurationMS, toMilliseconds(duration))
		obs.finishSpan(span, statusSuccess, map[string]string{
			spanAttrBytes: fmt.Sprintf("%d", written),
		})

	case statusCancelled:
		obs.logOperation(logMsgCopyCancelled,
			logAttrBytes, written,
			logAttrDurationMS, toMilliseconds(duration))
		obs.finishSpan(span, statusCancelled, map[string]string{
			spanAttrBytes: fmt.Sprintf("%d", written),
		})

	default:
		obs.logError(logMsgCopyFailed, err, logAttrBytes, written)
		obs.finishSpan(span, statusError, map[string]string{
			spanAttrErrorType: fmt.Sprintf("%T", err),
		})
	}

	return written, err
}

// copyStatus classifies a copy result for metrics labels and span status.
func copyStatus(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case errors.Is(err, ErrCancelled),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return statusCancelled
	default:
		return statusError
	}
}

// copySource gates a reader with both a token and a context. It intentionally
// hides any io.WriterTo on the inner reader so io.Copy runs its chunked loop
// and both checks happen once per chunk.
type copySource struct {
	ctx   context.Context
	token Token
	inner io.Reader
}

func (s *copySource) Read(p []byte) (int, error) {
	if s.token.Cancelled() {
		return 0, s.token.abort(operationCopy)
	}

	if err := s.ctx.Err(); err != nil {
		return 0, err
	}

	return s.inner.Read(p)
}
