package overwrite

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gsc/internal/errors"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"ask", Ask, false},
		{"always", Always, false},
		{"never", Never, false},
		{"yes", Ask, true},
		{"", Ask, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func confirmWith(t *testing.T, mode Mode, input string, target string) (Decision, *Policy, error) {
	t.Helper()
	var out bytes.Buffer
	p := NewWithPrompt(mode, strings.NewReader(input), &out)
	decision, err := p.Confirm(target)
	return decision, p, err
}

func TestConfirmAlways(t *testing.T) {
	decision, _, err := confirmWith(t, Always, "", "foo.c")
	require.NoError(t, err)
	assert.Equal(t, Proceed, decision)
}

func TestConfirmNever(t *testing.T) {
	decision, _, err := confirmWith(t, Never, "", "foo.c")
	assert.Equal(t, Skip, decision)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeOverwrite))
}

func TestConfirmAskYes(t *testing.T) {
	decision, _, err := confirmWith(t, Ask, "y\n", "foo.c")
	require.NoError(t, err)
	assert.Equal(t, Proceed, decision)
}

func TestConfirmAskNoSkipsSilently(t *testing.T) {
	decision, _, err := confirmWith(t, Ask, "n\n", "foo.c")
	require.NoError(t, err)
	assert.Equal(t, Skip, decision)
}

func TestConfirmAskAllSwitchesMode(t *testing.T) {
	decision, p, err := confirmWith(t, Ask, "a\n", "foo.c")
	require.NoError(t, err)
	assert.Equal(t, Proceed, decision)
	assert.Equal(t, Always, p.Mode())

	// the rest of the batch proceeds without further prompting
	decision, err = p.Confirm("bar.c")
	require.NoError(t, err)
	assert.Equal(t, Proceed, decision)
}

func TestConfirmAskQuitCancels(t *testing.T) {
	_, _, err := confirmWith(t, Ask, "q\n", "foo.c")
	require.Error(t, err)
	assert.True(t, errors.IsCanceled(err))
}

func TestConfirmAskEOFCancels(t *testing.T) {
	_, _, err := confirmWith(t, Ask, "", "foo.c")
	require.Error(t, err)
	assert.True(t, errors.IsCanceled(err))
}

func TestConfirmAskRepromptsOnJunk(t *testing.T) {
	var out bytes.Buffer
	p := NewWithPrompt(Ask, strings.NewReader("maybe\nYES\n"), &out)

	decision, err := p.Confirm("foo.c")
	require.NoError(t, err)
	assert.Equal(t, Proceed, decision)
	assert.Contains(t, out.String(), "Please answer")
}

func TestConfirmPromptNamesTarget(t *testing.T) {
	var out bytes.Buffer
	p := NewWithPrompt(Ask, strings.NewReader("n\n"), &out)
	_, err := p.Confirm("src/main.c")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "src/main.c")
}
