package cancelrw

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LinkContext_CancelsTokenWhenContextIsDone(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	token := New()
	stop := LinkContext(ctx, token)
	defer stop()

	require.False(t, token.Cancelled())

	// act
	cancel()

	// assert: the cancellation runs in its own goroutine
	require.Eventually(t, token.Cancelled, time.Second, time.Millisecond)
	assert.ErrorIs(t, token.Check(), ErrCancelled)
}

func Test_LinkContext_StopDetachesTheLink(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	token := New()
	stop := LinkContext(ctx, token)

	// act
	assert.True(t, stop())
	cancel()

	// assert: the cancellation must not arrive; give it a moment to prove it
	time.Sleep(20 * time.Millisecond)
	assert.False(t, token.Cancelled())
}

func Test_LinkContext_AlreadyDoneContext_CancelsPromptly(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	token := New()
	_ = LinkContext(ctx, token)

	// assert
	require.Eventually(t, token.Cancelled, time.Second, time.Millisecond)
}

func Test_LinkContext_IsOneWay(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := New()
	stop := LinkContext(ctx, token)
	defer stop()

	// act
	token.Cancel()

	// assert: cancelling the token leaves the context alone
	assert.NoError(t, ctx.Err())
}

func Test_TokenFromContext_DeliversACancellableToken(t *testing.T) {
	// arrange
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// act
	token, stop := TokenFromContext(ctx)
	defer stop()

	// assert
	require.Eventually(t, token.Cancelled, time.Second, time.Millisecond)
	assert.ErrorIs(t, token.Check(), ErrCancelled)
}
