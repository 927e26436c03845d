package glob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gsc/internal/errors"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		file    string
		want    bool
	}{
		{"literal hit", "foo.c", "foo.c", true},
		{"literal miss", "foo.c", "bar.c", false},
		{"star suffix", "*.c", "foo.c", true},
		{"star suffix miss", "*.c", "foo.h", false},
		{"star alone", "*", "anything", true},
		{"question mark", "foo.?", "foo.c", true},
		{"char class", "foo.[ch]", "foo.h", true},
		{"char class miss", "foo.[ch]", "foo.o", false},
		{"brace alternation", "*.{c,h}", "foo.h", true},
		{"empty matches all", "", "whatever", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.file))
		})
	}
}

func TestNewRejectsBadPattern(t *testing.T) {
	_, err := New("foo.[c")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSyntax))
}
