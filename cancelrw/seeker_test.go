package cancelrw_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/rodrigorc/cancel-rw/cancelrw"
	"github.com/rodrigorc/cancel-rw/testutil/helper"
)

func Test_Seeker_DelegatesSeeks_WhileTokenIsLive(t *testing.T) {
	// arrange
	file := helper.NewRecordingFile(helper.GivenTestContent(t, 100))
	seeker := NewSeeker(New(), file)

	// act + assert: the whole repositioning surface through one method
	pos, err := seeker.Seek(40, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(40), pos)

	pos, err = seeker.Seek(-10, io.SeekCurrent) // relative
	require.NoError(t, err)
	assert.Equal(t, int64(30), pos)

	pos, err = seeker.Seek(0, io.SeekCurrent) // current position
	require.NoError(t, err)
	assert.Equal(t, int64(30), pos)

	pos, err = seeker.Seek(0, io.SeekStart) // rewind
	require.NoError(t, err)
	assert.Zero(t, pos)

	pos, err = seeker.Seek(0, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(100), pos)

	assert.Equal(t, 5, file.SeekCalls)
}

func Test_Seeker_RefusesSeeks_AfterCancellation(t *testing.T) {
	// arrange
	token := New()
	file := helper.NewRecordingFile(helper.GivenTestContent(t, 100))
	seeker := NewSeeker(token, file)

	// act
	token.Cancel()
	pos, err := seeker.Seek(10, io.SeekStart)

	// assert
	assert.Zero(t, pos)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Zero(t, file.SeekCalls)
}

func Test_Seeker_PassesInnerErrorsThrough(t *testing.T) {
	// arrange
	seeker := NewSeeker(New(), helper.NewRecordingFile(nil))

	// act: a negative absolute position errors in the underlying seeker
	_, err := seeker.Seek(-5, io.SeekStart)

	// assert
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCancelled)
}

func Test_Seeker_AccessorsExposeTokenAndInner(t *testing.T) {
	// arrange
	token := New()
	file := helper.NewRecordingFile(nil)
	seeker := NewSeeker(token, file)

	// assert
	assert.True(t, token.Equal(seeker.Token()))
	assert.Same(t, file, seeker.Unwrap())
}
