package cancelrw

import "context"

// LinkContext arranges for token to be cancelled when ctx is done. The
// returned stop function detaches the link and reports whether it detached
// before the cancellation ran; after stop returns true, ctx can no longer
// cancel the token.
//
// If ctx is already done, the cancellation runs promptly in its own
// goroutine (the contract of context.AfterFunc), so it is observed
// near-immediately but not synchronously.
func LinkContext(ctx context.Context, token Token) (stop func() bool) {
	return context.AfterFunc(ctx, token.Cancel)
}

// TokenFromContext creates a new Token that is cancelled when ctx is done:
// New followed by LinkContext, for the token-per-request case. The bridge is
// one-way; cancelling the token does not affect ctx.
func TokenFromContext(ctx context.Context, options ...Option) (Token, func() bool) {
	token := New(options...)
	stop := LinkContext(ctx, token)

	return token, stop
}
