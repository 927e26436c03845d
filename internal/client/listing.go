package client

import (
	"fmt"
	"net/url"

	"gsc/internal/api"
	"gsc/internal/errors"
	"gsc/internal/glob"
	"gsc/internal/remote"
)

// userURI returns the account resource for a username.
func (c *Client) userURI(user string) string {
	return fmt.Sprintf("%s/api/users/%s", c.config.Endpoint, url.PathEscape(user))
}

// fetchSubmissions lists the user's submissions, one per assignment.
func (c *Client) fetchSubmissions(user string) ([]api.SubmissionShort, error) {
	var subs []api.SubmissionShort
	if err := c.getJSON(c.userURI(user)+"/submissions", &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// submissionURIsFor resolves every submission URI for a user, through
// the per-invocation cache. The cache is keyed by username, so acting on
// behalf of a different user always triggers a fresh fetch; entries live
// only for this one command.
func (c *Client) submissionURIsFor(user string) ([]string, error) {
	if uris, ok := c.submissionURIs[user]; ok {
		return uris, nil
	}

	subs, err := c.fetchSubmissions(user)
	if err != nil {
		return nil, err
	}

	var uris []string
	for _, sub := range subs {
		for sub.AssignmentNumber >= len(uris) {
			uris = append(uris, "")
		}
		uris[sub.AssignmentNumber] = c.absoluteURI(sub.URI)
	}

	c.submissionURIs[user] = uris
	return uris, nil
}

// submissionURI resolves the submission resource for one homework,
// failing with UnknownHomework when the user has no such submission.
func (c *Client) submissionURI(user string, hw int) (string, error) {
	selected, err := c.selectUser(user)
	if err != nil {
		return "", err
	}
	uris, err := c.submissionURIsFor(selected)
	if err != nil {
		return "", err
	}
	if hw >= len(uris) || uris[hw] == "" {
		return "", errors.NewUnknownHomework(hw)
	}
	return uris[hw], nil
}

// submissionFilesURI resolves the file collection of one homework.
func (c *Client) submissionFilesURI(user string, hw int) (string, error) {
	uri, err := c.submissionURI(user, hw)
	if err != nil {
		return "", err
	}
	return uri + "/files", nil
}

// FetchFileList fetches the file metadata for a homework and filters it
// through the pattern. A whole-homework pattern returns every file.
func (c *Client) FetchFileList(user string, pat remote.Pattern) ([]api.FileMeta, error) {
	matcher, err := glob.New(pat.Name)
	if err != nil {
		return nil, err
	}

	uri, err := c.submissionFilesURI(user, pat.HW)
	if err != nil {
		return nil, err
	}

	var files []api.FileMeta
	if err := c.getJSON(uri, &files); err != nil {
		return nil, err
	}

	matched := files[:0]
	for _, file := range files {
		if matcher.Match(file.Name) {
			matched = append(matched, file)
		}
	}
	return matched, nil
}

// fetchNonEmptyMatching is FetchFileList for contexts where the user
// expects at least one file to exist.
func (c *Client) fetchNonEmptyMatching(user string, pat remote.Pattern) ([]api.FileMeta, error) {
	files, err := c.FetchFileList(user, pat)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.NewNoSuchRemoteFile(pat.String())
	}
	return files, nil
}

// fetchOneMatching resolves a pattern that must name exactly one remote
// file, as when it is the source of a move or a single-file copy.
func (c *Client) fetchOneMatching(user string, pat remote.Pattern) (api.FileMeta, error) {
	files, err := c.fetchNonEmptyMatching(user, pat)
	if err != nil {
		return api.FileMeta{}, err
	}
	if len(files) > 1 {
		return api.FileMeta{}, errors.NewMultipleSourcesOneDestination(pat.String())
	}
	return files[0], nil
}
