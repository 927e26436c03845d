// Package errors provides a hierarchical error system for gsc operations.
// It implements typed errors that can be inspected and handled differently
// based on their category, enabling the command dispatcher to distinguish
// fatal errors from per-file warnings and user cancellation.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorType represents the category of error for classification and handling.
// Categories determine propagation: syntax, copy, and server errors are
// always fatal to the enclosing command; ambiguity and overwrite errors may
// be downgraded to warnings inside multi-file batch loops; canceled errors
// unwind unconditionally.
type ErrorType string

// Error type constants define the categories of errors that can occur
// during gsc operations.
const (
	ErrTypeSyntax    ErrorType = "syntax"
	ErrTypeAmbiguity ErrorType = "ambiguity"
	ErrTypeCopy      ErrorType = "copy"
	ErrTypeFile      ErrorType = "file"
	ErrTypeServer    ErrorType = "server"
	ErrTypeAuth      ErrorType = "auth"
	ErrTypeOverwrite ErrorType = "overwrite"
	ErrTypeCanceled  ErrorType = "canceled"
)

// GscError is the base error type that provides structured error
// information. Concrete error types embed it and add the fields that
// scripts and tests need to distinguish (pattern text, homework number,
// HTTP status, and so on).
type GscError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *GscError) Error() string {
	return e.Message
}

func (e *GscError) Unwrap() error {
	return e.Cause
}

// Is implements error identity checking for errors.Is, matching on the
// error category rather than on pointer identity.
func (e *GscError) Is(target error) bool {
	t, ok := target.(*GscError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// SyntaxError reports a malformed command-line token. Class names the
// grammatical form that was expected ("homework spec", "remote file spec")
// and Literal preserves the offending token for the user.
type SyntaxError struct {
	*GscError
	Class   string
	Literal string
}

// NewSyntaxError creates a syntax error for a token that does not match
// the expected form. Syntax errors are always fatal and are reported
// before any network activity.
func NewSyntaxError(class, literal string) *SyntaxError {
	return &SyntaxError{
		GscError: &GscError{
			Type:    ErrTypeSyntax,
			Message: fmt.Sprintf("syntax error: expected %s, got ‘%s’", class, literal),
		},
		Class:   class,
		Literal: literal,
	}
}

// PatternError reports an invalid glob pattern. It surfaces matcher
// compilation failures as user-facing errors rather than panics.
type PatternError struct {
	*GscError
	Pattern string
}

// NewPatternError creates a pattern error wrapping the matcher's own
// diagnosis of the bad glob syntax.
func NewPatternError(pattern string, cause error) *PatternError {
	return &PatternError{
		GscError: &GscError{
			Type:    ErrTypeSyntax,
			Message: fmt.Sprintf("invalid glob pattern ‘%s’", pattern),
			Cause:   cause,
		},
		Pattern: pattern,
	}
}

// NoSuchRemoteFileError reports a remote pattern that matched no files
// where at least one was expected. Pattern holds the rendered form
// ("hw3:foo.c") the user typed.
type NoSuchRemoteFileError struct {
	*GscError
	Pattern string
}

// NewNoSuchRemoteFile creates a no-match error for the given rendered
// remote pattern.
func NewNoSuchRemoteFile(pattern string) *NoSuchRemoteFileError {
	return &NoSuchRemoteFileError{
		GscError: &GscError{
			Type:    ErrTypeAmbiguity,
			Message: fmt.Sprintf("no such remote file: ‘%s’", pattern),
		},
		Pattern: pattern,
	}
}

// MultipleSourcesOneDestinationError reports more than one source supplied
// for a destination that can hold only a single file.
type MultipleSourcesOneDestinationError struct {
	*GscError
	Dest string
}

// NewMultipleSourcesOneDestination creates an error for a multi-source
// copy into a single-file destination.
func NewMultipleSourcesOneDestination(dest string) *MultipleSourcesOneDestinationError {
	return &MultipleSourcesOneDestinationError{
		GscError: &GscError{
			Type:    ErrTypeAmbiguity,
			Message: fmt.Sprintf("multiple sources for one destination: ‘%s’", dest),
		},
		Dest: dest,
	}
}

// DestinationPatternError reports an upload destination pattern that
// matches several existing remote files, so the client refuses to guess
// which one to overwrite.
type DestinationPatternError struct {
	*GscError
	Pattern string
	Matches []string
}

// NewDestinationPatternIsMultiple creates an ambiguous-destination error
// listing every remote file the pattern matched.
func NewDestinationPatternIsMultiple(pattern string, matches []string) *DestinationPatternError {
	return &DestinationPatternError{
		GscError: &GscError{
			Type: ErrTypeAmbiguity,
			Message: fmt.Sprintf("destination pattern ‘%s’ is ambiguous, matches: %s",
				pattern, strings.Join(matches, ", ")),
		},
		Pattern: pattern,
		Matches: matches,
	}
}

// CannotCopyLocalToLocalError reports a cp invocation where both the
// source and the destination are local paths. gsc is not a substitute for
// cp(1), so this command can never succeed.
type CannotCopyLocalToLocalError struct {
	*GscError
	Src string
	Dst string
}

// NewCannotCopyLocalToLocal creates a local-to-local rejection error.
func NewCannotCopyLocalToLocal(src, dst string) *CannotCopyLocalToLocalError {
	return &CannotCopyLocalToLocalError{
		GscError: &GscError{
			Type:    ErrTypeCopy,
			Message: fmt.Sprintf("cannot copy local file ‘%s’ to local file ‘%s’", src, dst),
		},
		Src: src,
		Dst: dst,
	}
}

// NewCannotCopyLocalToLocalHint creates the local-to-local rejection with
// a hint for the common mistake of writing ‘hw3’ instead of ‘hw3:’ as the
// destination.
func NewCannotCopyLocalToLocalHint(src, dst string) *CannotCopyLocalToLocalError {
	return &CannotCopyLocalToLocalError{
		GscError: &GscError{
			Type: ErrTypeCopy,
			Message: fmt.Sprintf("cannot copy local file ‘%s’ to local file ‘%s’ (did you mean ‘%s:’?)",
				src, dst, dst),
		},
		Src: src,
		Dst: dst,
	}
}

// CannotCopyRemoteToRemoteError reports a cp invocation with both a remote
// source and a remote destination. Remote-to-remote copy is a deliberate
// scope limit, preserved from every version of the protocol.
type CannotCopyRemoteToRemoteError struct {
	*GscError
	Src string
	Dst string
}

// NewCannotCopyRemoteToRemote creates a remote-to-remote rejection error.
func NewCannotCopyRemoteToRemote(src, dst string) *CannotCopyRemoteToRemoteError {
	return &CannotCopyRemoteToRemoteError{
		GscError: &GscError{
			Type:    ErrTypeCopy,
			Message: fmt.Sprintf("cannot copy remote file ‘%s’ to remote file ‘%s’", src, dst),
		},
		Src: src,
		Dst: dst,
	}
}

// SourceHwToDestinationFileError reports an attempt to download an entire
// homework onto a single plain-file destination, which would flatten the
// homework into one file and is rejected instead.
type SourceHwToDestinationFileError struct {
	*GscError
	HW  int
	Dst string
}

// NewSourceHwToDestinationFile creates a whole-homework-onto-file
// rejection error.
func NewSourceHwToDestinationFile(hw int, dst string) *SourceHwToDestinationFileError {
	return &SourceHwToDestinationFileError{
		GscError: &GscError{
			Type:    ErrTypeCopy,
			Message: fmt.Sprintf("cannot copy whole homework hw%d onto file ‘%s’", hw, dst),
		},
		HW:  hw,
		Dst: dst,
	}
}

// BadLocalPathError reports a local path with no final filename component,
// so no remote name can be derived for it.
type BadLocalPathError struct {
	*GscError
	Path string
}

// NewBadLocalPath creates a bad-local-path error.
func NewBadLocalPath(path string) *BadLocalPathError {
	return &BadLocalPathError{
		GscError: &GscError{
			Type:    ErrTypeFile,
			Message: fmt.Sprintf("not a file name: ‘%s’", path),
		},
		Path: path,
	}
}

// FilenameNotUTF8Error reports an OS filename that is not valid UTF-8 and
// therefore cannot be sent to the server as a remote name.
type FilenameNotUTF8Error struct {
	*GscError
	Path string
}

// NewFilenameNotUTF8 creates a non-UTF-8-filename error.
func NewFilenameNotUTF8(path string) *FilenameNotUTF8Error {
	return &FilenameNotUTF8Error{
		GscError: &GscError{
			Type:    ErrTypeFile,
			Message: fmt.Sprintf("filename is not valid UTF-8: ‘%s’", path),
		},
		Path: path,
	}
}

// UnknownHomeworkError reports a homework number with no submission on
// the server for the selected user.
type UnknownHomeworkError struct {
	*GscError
	Number int
}

// NewUnknownHomework creates an unknown-homework error.
func NewUnknownHomework(number int) *UnknownHomeworkError {
	return &UnknownHomeworkError{
		GscError: &GscError{
			Type:    ErrTypeServer,
			Message: fmt.Sprintf("unknown homework: hw%d", number),
		},
		Number: number,
	}
}

// ServerError carries a non-2xx response with the server-supplied status,
// title, and message preserved verbatim for diagnosis. Server errors are
// never retried.
type ServerError struct {
	*GscError
	Status int
	Title  string
}

// NewServerError creates a server error from the decoded response body.
func NewServerError(status int, title, message string) *ServerError {
	text := fmt.Sprintf("server error %d", status)
	if title != "" {
		text += ": " + title
	}
	if message != "" {
		text += ": " + message
	}
	return &ServerError{
		GscError: &GscError{
			Type:    ErrTypeServer,
			Message: text,
		},
		Status: status,
		Title:  title,
	}
}

// WouldOverwriteError reports a write that the overwrite policy refused.
// It is the one file-class error that batch loops treat as recoverable.
type WouldOverwriteError struct {
	*GscError
	Path string
}

// NewWouldOverwrite creates a policy-refused-overwrite error.
func NewWouldOverwrite(path string) *WouldOverwriteError {
	return &WouldOverwriteError{
		GscError: &GscError{
			Type:    ErrTypeOverwrite,
			Message: fmt.Sprintf("not overwriting existing file ‘%s’", path),
		},
		Path: path,
	}
}

// NewLoginPlease creates the not-logged-in error shown whenever a command
// needs credentials that are not present.
func NewLoginPlease() *GscError {
	return &GscError{
		Type:    ErrTypeAuth,
		Message: "you are not logged in (use ‘gsc auth’)",
	}
}

// NewPasswordMismatch creates the error for two password entries that do
// not agree.
func NewPasswordMismatch() *GscError {
	return &GscError{
		Type:    ErrTypeAuth,
		Message: "passwords do not match",
	}
}

// NewNoUsernameGiven creates the error for commands that need a username
// and were given none, either on the command line or in the dotfile.
func NewNoUsernameGiven() *GscError {
	return &GscError{
		Type:    ErrTypeAuth,
		Message: "please specify a username",
	}
}

// NewCanceled creates the cancellation error produced when the user
// answers the overwrite prompt with ‘q’ or closes the input stream. It
// unwinds through every batch loop and terminates the process.
func NewCanceled() *GscError {
	return &GscError{
		Type:    ErrTypeCanceled,
		Message: "canceled",
	}
}

// WrapFile converts a raw filesystem error into a typed file error with
// path context.
func WrapFile(path string, cause error) *GscError {
	return &GscError{
		Type:    ErrTypeFile,
		Message: fmt.Sprintf("file error for ‘%s’: %v", path, cause),
		Cause:   cause,
	}
}

// AsServerError extracts a ServerError from err's chain, for callers
// that need the preserved HTTP status.
func AsServerError(err error, target **ServerError) bool {
	return stderrors.As(err, target)
}

// IsCanceled reports whether err is, or wraps, a user cancellation.
// Warning-catching loops must check this before downgrading an error to
// a warning.
func IsCanceled(err error) bool {
	return stderrors.Is(err, &GscError{Type: ErrTypeCanceled})
}

// IsType reports whether err belongs to the given category anywhere in
// its chain.
func IsType(err error, t ErrorType) bool {
	return stderrors.Is(err, &GscError{Type: t})
}
