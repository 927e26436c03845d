package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMatchesOnCategory(t *testing.T) {
	err := NewNoSuchRemoteFile("hw3:foo.c")
	assert.True(t, IsType(err, ErrTypeAmbiguity))
	assert.False(t, IsType(err, ErrTypeServer))
}

func TestIsTypeSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("while listing: %w", NewUnknownHomework(7))
	assert.True(t, IsType(err, ErrTypeServer))

	var unknown *UnknownHomeworkError
	require.True(t, stderrors.As(err, &unknown))
	assert.Equal(t, 7, unknown.Number)
}

func TestIsCanceled(t *testing.T) {
	assert.True(t, IsCanceled(NewCanceled()))
	assert.True(t, IsCanceled(fmt.Errorf("aborted: %w", NewCanceled())))
	assert.False(t, IsCanceled(NewWouldOverwrite("foo.c")))
	assert.False(t, IsCanceled(nil))
}

func TestAsServerError(t *testing.T) {
	err := fmt.Errorf("request failed: %w", NewServerError(404, "Not Found", "no such file"))

	var serverErr *ServerError
	require.True(t, AsServerError(err, &serverErr))
	assert.Equal(t, 404, serverErr.Status)
	assert.Equal(t, "Not Found", serverErr.Title)

	assert.False(t, AsServerError(NewCanceled(), &serverErr))
}

func TestWrapFileKeepsCause(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := WrapFile("/tmp/x", cause)

	assert.True(t, IsType(err, ErrTypeFile))
	assert.Contains(t, err.Error(), "/tmp/x")
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{NewSyntaxError("homework spec (hw<N>)", "hw"), "expected homework spec"},
		{NewNoSuchRemoteFile("hw3:nope"), "no such remote file: ‘hw3:nope’"},
		{NewCannotCopyLocalToLocalHint("foo.c", "hw3"), "did you mean ‘hw3:’?"},
		{NewCannotCopyRemoteToRemote("hw3:a", "hw4:b"), "cannot copy remote file"},
		{NewSourceHwToDestinationFile(3, "out.c"), "whole homework hw3"},
		{NewDestinationPatternIsMultiple("hw3:f*", []string{"foo.c", "fib.c"}), "foo.c, fib.c"},
		{NewWouldOverwrite("x.c"), "not overwriting existing file"},
		{NewUnknownHomework(9), "unknown homework: hw9"},
		{NewLoginPlease(), "not logged in"},
	}

	for _, tt := range tests {
		assert.Contains(t, tt.err.Error(), tt.want)
	}
}
