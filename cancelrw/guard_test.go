package cancelrw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Guard_Close_CancelsTheToken(t *testing.T) {
	// arrange
	token := New()
	guard := NewGuard(token)

	// act
	err := guard.Close()

	// assert
	assert.NoError(t, err)
	assert.True(t, token.Cancelled())
}

func Test_Guard_DeferredClose_CancelsOnScopeExit(t *testing.T) {
	// arrange
	token := New()

	// act
	func() {
		guard := NewGuard(token)
		defer guard.Close()

		assert.False(t, token.Cancelled()) // still live inside the scope
	}()

	// assert
	assert.True(t, token.Cancelled())
}

func Test_Guard_Close_IsIdempotent(t *testing.T) {
	// arrange
	token := New()
	guard := NewGuard(token)

	// act
	assert.NoError(t, guard.Close())
	assert.NoError(t, guard.Close())

	// assert
	assert.True(t, token.Cancelled())
}

func Test_Guard_CancelsOnPanicPath(t *testing.T) {
	// arrange
	token := New()

	// act
	func() {
		defer func() { _ = recover() }()

		guard := NewGuard(token)
		defer guard.Close()

		panic("boom")
	}()

	// assert
	assert.True(t, token.Cancelled())
}

func Test_Guard_EarlyClose_CancelsBeforeScopeExit(t *testing.T) {
	// arrange
	token := New()
	guard := NewGuard(token)
	defer guard.Close()

	// act
	guard.Close()

	// assert
	assert.True(t, token.Cancelled())
}

func Test_Guard_Token_ReturnsTheGuardedToken(t *testing.T) {
	// arrange
	token := New()
	guard := NewGuard(token)

	// assert
	assert.True(t, token.Equal(guard.Token()))
}
