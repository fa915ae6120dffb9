package cancelrw

import (
	"bytes"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/google/uuid"
)

// ErrCancelled is reported by every gated operation once the token behind it
// has been cancelled. It wraps io.ErrClosedPipe, so callers that already
// treat closed-pipe errors as orderly shutdown need no special case:
//
//	errors.Is(err, cancelrw.ErrCancelled)  // cancellation, precisely
//	errors.Is(err, io.ErrClosedPipe)       // any pipe-closed condition
var ErrCancelled = fmt.Errorf("i/o cancelled: %w", io.ErrClosedPipe)

// Token is a handle to a shared cancellation flag.
//
// Copying a Token (assignment, argument passing, storing it in a struct or
// map) produces another handle to the same flag: cancelling any copy cancels
// them all. Tokens compare by identity — two tokens are equal iff they share
// a flag — so == and map keys work as expected.
//
// The zero Token is not usable; create tokens with New.
type Token struct {
	state *state
}

type state struct {
	cancelled atomic.Bool
	id        uuid.UUID
	obs       observers
}

// New creates an un-cancelled Token with a fresh identity.
// Options attach observability; a Token created without options is silent.
func New(options ...Option) Token {
	t := Token{state: &state{id: uuid.New()}}

	for _, option := range options {
		option(&t)
	}

	return t
}

// Cancel sets the flag. The transition happens once: the first call flips
// the flag and emits the cancellation log line and counter increment; every
// later call, from any goroutine, is a no-op. There is no reset.
func (t Token) Cancel() {
	if !t.state.cancelled.CompareAndSwap(false, true) {
		return
	}

	t.state.obs.logDebug(logMsgTokenCancelled, logAttrToken, t.state.id.String())
	t.state.obs.incrementCounter(metricCancellations, nil)
}

// Cancelled reports whether the token has been cancelled. It is a single
// atomic load, cheap enough to poll per chunk in an I/O loop.
func (t Token) Cancelled() bool {
	return t.state.cancelled.Load()
}

// Check returns nil while the token is live and ErrCancelled afterwards.
// Like Cancelled, it never touches the observers.
func (t Token) Check() error {
	if t.state.cancelled.Load() {
		return ErrCancelled
	}

	return nil
}

// ID returns the token's stable identity.
func (t Token) ID() uuid.UUID {
	return t.state.id
}

// Equal reports whether both handles share the same flag. This is identity
// equality (the same as ==): two independently created tokens are never
// equal, regardless of their cancellation state.
func (t Token) Equal(other Token) bool {
	return t.state == other.state
}

// Compare orders tokens by their identity bytes and returns 0 iff both
// handles share a flag. The order is arbitrary but consistent, for use with
// slices.SortFunc and ordered containers.
func (t Token) Compare(other Token) int {
	if t.state == other.state {
		return 0
	}

	return bytes.Compare(t.state.id[:], other.state.id[:])
}

// String implements fmt.Stringer for log output and test failure messages.
func (t Token) String() string {
	if t.Cancelled() {
		return fmt.Sprintf("Token(%s, cancelled)", t.state.id)
	}

	return fmt.Sprintf("Token(%s)", t.state.id)
}

// abort records a refused operation and returns ErrCancelled. Gated wrapper
// methods call it on their failure path only, so the counter never costs
// anything while the token is live.
func (t Token) abort(operation string) error {
	t.state.obs.recordAborted(operation)

	return ErrCancelled
}
