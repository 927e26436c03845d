// Package remote implements the textual remote-path syntax that gsc
// surfaces to users: ‘hw<N>’ names a whole homework, ‘hw<N>:<name>’ names
// a remote file or glob pattern within it, ‘:<path>’ is an explicit local
// path, and a bare token is a local path. This syntax is a durable
// user-facing contract; parse errors name the form that was expected.
package remote

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"gsc/internal/errors"
)

// Pattern addresses files within one homework: the homework number plus a
// filename or glob pattern. An empty Name means the whole homework.
// Whether the homework exists is resolved lazily against the server,
// never assumed here.
type Pattern struct {
	HW   int
	Name string
}

// IsWholeHW reports whether the pattern addresses the entire homework
// rather than particular files.
func (p Pattern) IsWholeHW() bool {
	return p.Name == ""
}

// WithName returns a copy of the pattern addressing the given filename.
func (p Pattern) WithName(name string) Pattern {
	return Pattern{HW: p.HW, Name: name}
}

func (p Pattern) String() string {
	return fmt.Sprintf("hw%d:%s", p.HW, p.Name)
}

// NoHW marks a Destination whose homework number is inherited from the
// source.
const NoHW = -1

// Destination is a copy/move target. Unlike Pattern, the homework number
// may be left unset (NoHW), in which case it is inherited from the
// source; mv uses this for renames within a homework.
type Destination struct {
	HW   int
	Name string
}

// HasHW reports whether the destination names its own homework.
func (d Destination) HasHW() bool {
	return d.HW != NoHW
}

func (d Destination) String() string {
	if d.HasHW() {
		return fmt.Sprintf("hw%d:%s", d.HW, d.Name)
	}
	return ":" + d.Name
}

// Resolve fills in the destination's missing parts from the given source
// file, producing the concrete pattern the move targets.
func (d Destination) Resolve(src Pattern) Pattern {
	out := src
	if d.HasHW() {
		out.HW = d.HW
	}
	if d.Name != "" {
		out.Name = d.Name
	}
	return out
}

type cpKind int

const (
	cpLocal cpKind = iota
	cpRemote
)

// CpArg is one parsed cp operand: either a local path or a remote
// pattern. It is a two-variant tagged value constructed once per
// command-line token.
type CpArg struct {
	kind   cpKind
	local  string
	remote Pattern
}

// LocalArg creates a cp operand naming a local path.
func LocalArg(path string) CpArg {
	return CpArg{kind: cpLocal, local: path}
}

// RemoteArg creates a cp operand naming a remote pattern.
func RemoteArg(p Pattern) CpArg {
	return CpArg{kind: cpRemote, remote: p}
}

// IsLocal reports whether the operand is a local path.
func (a CpArg) IsLocal() bool {
	return a.kind == cpLocal
}

// IsRemote reports whether the operand is a remote pattern.
func (a CpArg) IsRemote() bool {
	return a.kind == cpRemote
}

// Local returns the local path. Valid only when IsLocal.
func (a CpArg) Local() string {
	return a.local
}

// Remote returns the remote pattern. Valid only when IsRemote.
func (a CpArg) Remote() Pattern {
	return a.remote
}

func (a CpArg) String() string {
	if a.kind == cpLocal {
		return ":" + a.local
	}
	return a.remote.String()
}

// splitHW splits a ‘hw<N>…’ prefix off a token, returning the homework
// number and the remainder. ok is false when the token does not begin
// with ‘hw’ followed by at least one digit.
func splitHW(token string) (hw int, rest string, ok bool) {
	if !strings.HasPrefix(token, "hw") {
		return 0, "", false
	}
	i := 2
	for i < len(token) && token[i] >= '0' && token[i] <= '9' {
		hw = hw*10 + int(token[i]-'0')
		i++
	}
	if i == 2 {
		return 0, "", false
	}
	return hw, token[i:], true
}

// ParseHW parses a bare homework token (‘hw3’ or ‘hw3:’) into its
// number. Used by commands that address a submission rather than files
// (status, partner operations).
func ParseHW(token string) (int, error) {
	hw, rest, ok := splitHW(token)
	if !ok || (rest != "" && rest != ":") {
		return 0, errors.NewSyntaxError("homework spec (hw<N>)", token)
	}
	return hw, nil
}

// ParsePattern parses a homework file spec: ‘hw3’, ‘hw3:’ (whole
// homework), or ‘hw3:<name-or-glob>’.
func ParsePattern(token string) (Pattern, error) {
	hw, rest, ok := splitHW(token)
	if !ok {
		return Pattern{}, errors.NewSyntaxError("remote file spec (hw<N>:<file>)", token)
	}
	switch {
	case rest == "":
		return Pattern{HW: hw}, nil
	case rest[0] == ':':
		return Pattern{HW: hw, Name: rest[1:]}, nil
	default:
		return Pattern{}, errors.NewSyntaxError("remote file spec (hw<N>:<file>)", token)
	}
}

// ParseCpArg parses one cp operand. A leading colon forces a local path,
// any other token containing a colon is a remote pattern, and a bare
// token is a local path.
func ParseCpArg(token string) (CpArg, error) {
	switch {
	case strings.HasPrefix(token, ":"):
		if len(token) == 1 {
			return CpArg{}, errors.NewSyntaxError("local file name after ‘:’", token)
		}
		return LocalArg(token[1:]), nil
	case strings.Contains(token, ":"):
		pat, err := ParsePattern(token)
		if err != nil {
			return CpArg{}, err
		}
		return RemoteArg(pat), nil
	default:
		return LocalArg(token), nil
	}
}

// ParseDestination parses a mv target, where the homework number may be
// omitted to inherit it from the source: ‘hw4:name’, ‘hw4:’, ‘:name’, or
// a bare ‘name’.
func ParseDestination(token string) (Destination, error) {
	if strings.HasPrefix(token, ":") {
		if len(token) == 1 {
			return Destination{}, errors.NewSyntaxError("destination file name after ‘:’", token)
		}
		return Destination{HW: NoHW, Name: token[1:]}, nil
	}
	if hw, rest, ok := splitHW(token); ok {
		switch {
		case rest == "":
			return Destination{HW: hw}, nil
		case rest[0] == ':':
			return Destination{HW: hw, Name: rest[1:]}, nil
		}
		return Destination{}, errors.NewSyntaxError("destination spec (hw<N>:<file>)", token)
	}
	if strings.Contains(token, ":") {
		return Destination{}, errors.NewSyntaxError("destination spec (hw<N>:<file>)", token)
	}
	if token == "" {
		return Destination{}, errors.NewSyntaxError("destination spec (hw<N>:<file>)", token)
	}
	return Destination{HW: NoHW, Name: token}, nil
}

// LooksLikeHW reports whether a token is exactly a bare homework spec
// (‘hw3’). cp uses this to hint that a local destination was probably
// meant to be remote.
func LooksLikeHW(token string) bool {
	_, rest, ok := splitHW(token)
	return ok && rest == ""
}

// BaseFilename derives the remote name for a local path from its final
// path component. It fails when the path has no filename component or
// when the component is not valid UTF-8.
func BaseFilename(path string) (string, error) {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return "", errors.NewBadLocalPath(path)
	}
	base := trimmed
	if i := strings.LastIndexByte(trimmed, '/'); i >= 0 {
		base = trimmed[i+1:]
	}
	if base == "" || base == "." || base == ".." {
		return "", errors.NewBadLocalPath(path)
	}
	if !utf8.ValidString(base) {
		return "", errors.NewFilenameNotUTF8(path)
	}
	return base, nil
}
