// Package overwrite implements the tri-state policy that guards every
// write onto an existing file during copy and move operations. One Policy
// value is shared by pointer across a whole batch so that an "overwrite
// all" answer persists for the remaining files.
package overwrite

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gsc/internal/errors"
)

// Mode is the policy state. The only transition is Ask to Always, made
// when the user answers "a"; Never and Always are terminal.
type Mode int

const (
	Ask Mode = iota
	Always
	Never
)

// ParseMode parses the --overwrite flag value.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "ask":
		return Ask, nil
	case "always":
		return Always, nil
	case "never":
		return Never, nil
	}
	return Ask, fmt.Errorf("overwrite mode must be ‘always’, ‘never’, or ‘ask’")
}

// Decision is the outcome of consulting the policy for one file.
type Decision int

const (
	// Proceed means write the file.
	Proceed Decision = iota
	// Skip means leave the existing file alone and continue the batch.
	Skip
)

// Policy decides, per file, whether an existing target may be
// overwritten. The prompt reader and writer are injected so tests can
// script the interaction.
type Policy struct {
	mode Mode
	in   *bufio.Reader
	out  io.Writer
}

// New creates a policy prompting on the process's terminal.
func New(mode Mode) *Policy {
	return NewWithPrompt(mode, os.Stdin, os.Stderr)
}

// NewWithPrompt creates a policy with explicit prompt streams.
func NewWithPrompt(mode Mode, in io.Reader, out io.Writer) *Policy {
	return &Policy{
		mode: mode,
		in:   bufio.NewReader(in),
		out:  out,
	}
}

// Mode returns the current state, reflecting any Ask-to-Always
// transition made earlier in the batch.
func (p *Policy) Mode() Mode {
	return p.mode
}

// Confirm decides whether the file at target may be overwritten.
// Always proceeds, Never skips with a recoverable per-file error, and
// Ask prompts: y proceeds, n skips silently, a switches the policy to
// Always for the rest of the batch, q cancels the whole process. A
// closed input stream counts as cancellation.
func (p *Policy) Confirm(target string) (Decision, error) {
	switch p.mode {
	case Always:
		return Proceed, nil
	case Never:
		return Skip, errors.NewWouldOverwrite(target)
	}

	fmt.Fprintf(p.out, "Overwrite ‘%s’? [ynaq] ", target)
	for {
		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			// closed stream: there is nobody to answer for the rest
			// of the batch either
			fmt.Fprintln(p.out)
			return Skip, errors.NewCanceled()
		}

		switch strings.TrimSpace(strings.ToLower(line)) {
		case "y", "yes":
			return Proceed, nil
		case "n", "no":
			return Skip, nil
		case "a", "all":
			p.mode = Always
			return Proceed, nil
		case "q", "quit", "cancel":
			return Skip, errors.NewCanceled()
		}

		fmt.Fprintf(p.out, "Please answer y (overwrite), n (skip), a (overwrite all), or q (cancel): ")
	}
}
