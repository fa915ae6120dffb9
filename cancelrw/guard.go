package cancelrw

import (
	"io"
	"sync"
)

// Guard cancels its token when closed, for defer-based scope-exit
// cancellation:
//
//	guard := cancelrw.NewGuard(token)
//	defer guard.Close()
//
// The deferred Close runs on every exit path, including panics, and cancels
// exactly once per guard. Closing early is allowed; later calls are no-ops.
// There is no way to disarm a guard — a caller who needs conditional
// cancellation holds the token directly.
type Guard struct {
	token Token
	once  sync.Once
}

var _ io.Closer = (*Guard)(nil)

// NewGuard returns a Guard that cancels token on Close.
func NewGuard(token Token) *Guard {
	return &Guard{token: token}
}

// Close cancels the token. It always returns nil; the error return makes a
// Guard an io.Closer so it composes with defer and cleanup helpers.
func (g *Guard) Close() error {
	g.once.Do(g.token.Cancel)

	return nil
}

// Token returns the guarded token.
func (g *Guard) Token() Token {
	return g.token
}
