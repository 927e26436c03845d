package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gsc/internal/api"
	"gsc/internal/errors"
	"gsc/internal/overwrite"
	"gsc/internal/remote"
)

func TestFetchFileListFilters(t *testing.T) {
	f := newFixture(t)
	f.addFile(3, "foo.c", api.PurposeSource, "a\n")
	f.addFile(3, "bar.c", api.PurposeSource, "b\n")
	f.addFile(3, "notes.txt", api.PurposeResource, "c\n")
	c := f.client(t, overwrite.Ask, "")

	files, err := c.FetchFileList("", remote.Pattern{HW: 3, Name: "*.c"})
	require.NoError(t, err)
	names := make([]string, len(files))
	for i, file := range files {
		names[i] = file.Name
	}
	assert.ElementsMatch(t, []string{"foo.c", "bar.c"}, names)
}

func TestFetchFileListWholeHomework(t *testing.T) {
	f := newFixture(t)
	f.addFile(3, "foo.c", api.PurposeSource, "a\n")
	f.addFile(3, "notes.txt", api.PurposeResource, "b\n")
	c := f.client(t, overwrite.Ask, "")

	files, err := c.FetchFileList("", remote.Pattern{HW: 3})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFetchFileListBadGlob(t *testing.T) {
	f := newFixture(t)
	f.addSubmission(3)
	c := f.client(t, overwrite.Ask, "")

	_, err := c.FetchFileList("", remote.Pattern{HW: 3, Name: "foo.["})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSyntax))
}

func TestFetchOneMatching(t *testing.T) {
	f := newFixture(t)
	f.addFile(3, "foo.c", api.PurposeSource, "a\n")
	f.addFile(3, "fib.c", api.PurposeSource, "b\n")
	c := f.client(t, overwrite.Ask, "")

	meta, err := c.fetchOneMatching("", remote.Pattern{HW: 3, Name: "foo.c"})
	require.NoError(t, err)
	assert.Equal(t, "foo.c", meta.Name)

	_, err = c.fetchOneMatching("", remote.Pattern{HW: 3, Name: "f*"})
	assert.True(t, errors.IsType(err, errors.ErrTypeAmbiguity))

	_, err = c.fetchOneMatching("", remote.Pattern{HW: 3, Name: "zzz"})
	assert.True(t, errors.IsType(err, errors.ErrTypeAmbiguity))
}

func TestSubmissionURICache(t *testing.T) {
	f := newFixture(t)
	f.addSubmission(3)
	c := f.client(t, overwrite.Ask, "")

	first, err := c.submissionURI("", 3)
	require.NoError(t, err)

	// later lookups for the same user come from the cache, so removing
	// the server-side record does not change the answer
	delete(f.files, 3)
	second, err := c.submissionURI("", 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// a different user bypasses the alice cache and sees the new state
	_, err = c.submissionURI("bob", 3)
	require.Error(t, err)
}

func TestSubmissionURIUnknownHomework(t *testing.T) {
	f := newFixture(t)
	f.addSubmission(3)
	c := f.client(t, overwrite.Ask, "")

	_, err := c.submissionURI("", 8)
	require.Error(t, err)

	var unknown *errors.UnknownHomeworkError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, 8, unknown.Number)
}
