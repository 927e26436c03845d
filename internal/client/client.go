// Package client implements the gsc client proper: the file listing
// service, the copy resolution engine, and the per-command operations the
// CLI façade invokes. All I/O is synchronous and sequential; multi-file
// batches run one file at a time so overwrite prompts are unambiguous.
package client

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/term"

	"gsc/internal/config"
	"gsc/internal/errors"
	"gsc/internal/log"
	"gsc/internal/overwrite"
)

// Client talks to one gsc server on behalf of one user. It carries the
// per-invocation submission-URI cache and the shared overwrite policy,
// and accumulates the had-warning flag that decides the process exit
// code.
type Client struct {
	http           *http.Client
	config         *config.Config
	out            io.Writer
	overwrite      *overwrite.Policy
	submissionURIs map[string][]string
	hadWarning     bool
}

// New creates a client for the configured endpoint. The overwrite policy
// is shared with the caller so a single batch observes one policy state.
func New(cfg *config.Config, policy *overwrite.Policy) *Client {
	return &Client{
		http:           &http.Client{},
		config:         cfg,
		out:            os.Stdout,
		overwrite:      policy,
		submissionURIs: make(map[string][]string),
	}
}

// SetOut redirects user-facing output, used by tests.
func (c *Client) SetOut(w io.Writer) {
	c.out = w
}

// HadWarning reports whether any non-fatal per-file failure occurred
// during this invocation. The dispatcher turns it into exit status 2.
func (c *Client) HadWarning() bool {
	return c.hadWarning
}

// selectUser picks the explicit username when given, otherwise the
// logged-in one. Commands that reach the server need one or the other.
func (c *Client) selectUser(user string) (string, error) {
	if user != "" {
		return user, nil
	}
	if c.config.Username == "" {
		return "", errors.NewLoginPlease()
	}
	return c.config.Username, nil
}

// warn logs a non-fatal error and raises the had-warning flag.
func (c *Client) warn(err error) {
	log.Warn("%v", err)
	c.hadWarning = true
}

// tryWarn runs one item of a batch, downgrading its failure to a warning
// so the batch continues. Cancellation is never downgraded; it is
// returned so it unwinds through every enclosing loop.
func (c *Client) tryWarn(f func() error) error {
	err := f()
	if err == nil {
		return nil
	}
	if errors.IsCanceled(err) {
		return err
	}
	c.warn(err)
	return nil
}

// promptPassword reads a password without echo. A variable so tests can
// substitute scripted input.
var promptPassword = func(prompt, user string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s for %s: ", prompt, user)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", errors.WrapFile("stdin", err)
	}
	return string(raw), nil
}

// matchingPasswords prompts twice and insists the entries agree.
func matchingPasswords(user string) (string, error) {
	first, err := promptPassword("New password", user)
	if err != nil {
		return "", err
	}
	second, err := promptPassword("Confirm password", user)
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.NewPasswordMismatch()
	}
	return first, nil
}
