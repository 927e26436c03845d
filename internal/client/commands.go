package client

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"gsc/internal/api"
	"gsc/internal/errors"
	"gsc/internal/log"
	"gsc/internal/remote"
)

// Auth logs in, prompting for the password until the server accepts it.
// The session cookie from the response is persisted to the dotfile by
// the transport layer.
func (c *Client) Auth(user string) error {
	c.config.Username = user

	for {
		password, err := promptPassword("Password", user)
		if err != nil {
			return err
		}

		req, err := c.newRequest(http.MethodGet, c.userURI(user), nil)
		if err != nil {
			return err
		}
		req.SetBasicAuth(user, password)

		resp, err := c.do(req)
		if err != nil {
			var serverErr *errors.ServerError
			if errors.AsServerError(err, &serverErr) && serverErr.Status == http.StatusUnauthorized {
				log.Error("%v", err)
				continue
			}
			return err
		}
		resp.Body.Close()

		if err := c.config.Save(); err != nil {
			return err
		}
		log.Info("Authenticated as %s.", user)
		return nil
	}
}

// Deauth forgets the session: cookie and username both.
func (c *Client) Deauth() error {
	c.config.ClearSession()
	if err := c.config.Save(); err != nil {
		return err
	}
	log.Info("Deauthenticated.")
	return nil
}

// Create registers a new account, then holds its session like Auth.
func (c *Client) Create(user string) error {
	c.config.Username = user

	password, err := matchingPasswords(user)
	if err != nil {
		return err
	}

	req, err := c.newRequest(http.MethodPost, c.config.Endpoint+"/api/users", nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(user, password)

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if err := c.config.Save(); err != nil {
		return err
	}
	log.Info("Created account: %s.", user)
	return nil
}

// Passwd changes the password for the selected user.
func (c *Client) Passwd(user string) error {
	selected, err := c.selectUser(user)
	if err != nil {
		return err
	}

	password, err := matchingPasswords(selected)
	if err != nil {
		return err
	}

	change := api.PasswordChange{Password: password}
	if err := c.sendJSON(http.MethodPatch, c.userURI(selected), &change); err != nil {
		return err
	}
	log.Info("Changed password for user %s.", selected)
	return nil
}

// Whoami prints the logged-in username.
func (c *Client) Whoami() error {
	if c.config.Username == "" {
		return errors.NewLoginPlease()
	}
	fmt.Fprintln(c.out, c.config.Username)
	return nil
}

// Ls lists the files each pattern matches: size, upload time, purpose
// code, name. A pattern matching nothing is a warning, and the
// remaining patterns still print.
func (c *Client) Ls(user string, pats []remote.Pattern) error {
	for _, pat := range pats {
		pat := pat
		if err := c.tryWarn(func() error {
			files, err := c.fetchNonEmptyMatching(user, pat)
			if err != nil {
				return err
			}

			if len(pats) > 1 {
				fmt.Fprintf(c.out, "%s:\n", pat)
			}
			printFileTable(c.out, files)
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// printFileTable renders an ls listing with the byte counts
// right-aligned and comma-grouped.
func printFileTable(out io.Writer, files []api.FileMeta) {
	sizes := make([]string, len(files))
	width := 0
	for i, file := range files {
		sizes[i] = humanize.Comma(file.ByteCount)
		if len(sizes[i]) > width {
			width = len(sizes[i])
		}
	}
	for i, file := range files {
		fmt.Fprintf(out, "%*s  %s  [%c] %s\n",
			width, sizes[i], file.UploadTime, file.Purpose.Char(), file.Name)
	}
}

// Cat prints the contents of every matched file to standard output.
// When numbering is requested, files whose purpose marks them as code or
// configuration get line numbers; resources and logs stream raw.
func (c *Client) Cat(user string, pats []remote.Pattern, numbered bool) error {
	for _, pat := range pats {
		files, err := c.FetchFileList(user, pat)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			c.warn(errors.NewNoSuchRemoteFile(pat.String()))
			continue
		}

		for _, file := range files {
			uri := c.absoluteURI(file.URI)
			if numbered && numberedPurpose(file.Purpose) {
				if err := c.streamNumbered(uri, c.out); err != nil {
					return err
				}
			} else if err := c.stream(uri, c.out); err != nil {
				return err
			}
		}
	}
	return nil
}

func numberedPurpose(p api.FilePurpose) bool {
	switch p {
	case api.PurposeSource, api.PurposeTest, api.PurposeConfig:
		return true
	}
	return false
}

// streamNumbered copies a remote file to w with a line number prefixed
// to each line.
func (c *Client) streamNumbered(uri string, w io.Writer) error {
	pipe := &lineNumberWriter{w: w, line: 1}
	if err := c.stream(uri, pipe); err != nil {
		return err
	}
	return pipe.flush()
}

// lineNumberWriter prefixes each output line with its number. It
// buffers partial lines across Write calls so chunk boundaries inside a
// line do not split the numbering.
type lineNumberWriter struct {
	w       io.Writer
	line    int
	partial []byte
}

func (lw *lineNumberWriter) Write(p []byte) (int, error) {
	written := len(p)
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			lw.partial = append(lw.partial, p...)
			break
		}
		if err := lw.emit(append(lw.partial, p[:i+1]...)); err != nil {
			return 0, err
		}
		lw.partial = lw.partial[:0]
		p = p[i+1:]
	}
	return written, nil
}

func (lw *lineNumberWriter) emit(line []byte) error {
	if _, err := fmt.Fprintf(lw.w, "%6d  ", lw.line); err != nil {
		return err
	}
	lw.line++
	_, err := lw.w.Write(line)
	return err
}

func (lw *lineNumberWriter) flush() error {
	if len(lw.partial) == 0 {
		return nil
	}
	err := lw.emit(append(lw.partial, '\n'))
	lw.partial = lw.partial[:0]
	return err
}

// Rm deletes every file each pattern matches. A pattern matching
// nothing is a warning; the remaining patterns are still processed.
func (c *Client) Rm(user string, pats []remote.Pattern) error {
	for _, pat := range pats {
		pat := pat
		if err := c.tryWarn(func() error {
			files, err := c.fetchNonEmptyMatching(user, pat)
			if err != nil {
				return err
			}
			for _, file := range files {
				req, err := c.newRequest(http.MethodDelete, c.absoluteURI(file.URI), nil)
				if err != nil {
					return err
				}
				log.Info("Deleting remote file ‘hw%d:%s’...", pat.HW, file.Name)
				resp, err := c.do(req)
				if err != nil {
					return err
				}
				resp.Body.Close()
			}
			return nil
		}); err != nil {
			return err
		}
	}
	log.Info("Done.")
	return nil
}

// Status shows the state of one submission: phase, dates, quota, and
// owners.
func (c *Client) Status(user string, hw int) error {
	uri, err := c.submissionURI(user, hw)
	if err != nil {
		return err
	}

	var sub api.Submission
	if err := c.getJSON(uri, &sub); err != nil {
		return err
	}

	owners := sub.Owner1.Name
	if sub.Owner2 != nil {
		owners += " and " + sub.Owner2.Name
	}
	fmt.Fprintf(c.out, "hw%d (%s)\n", hw, owners)

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Submission status:\t%s\n", sub.Status)
	if sub.Status.IsSelfEval() {
		fmt.Fprintf(tw, "  Evaluation status:\t%s\n", sub.EvalStatus)
	}
	fmt.Fprintf(tw, "  Open date:\t%s\n", sub.OpenDate)
	fmt.Fprintf(tw, "  Submission due date:\t%s\n", sub.DueDate)
	fmt.Fprintf(tw, "  Self-eval due date:\t%s\n", sub.EvalDate)
	fmt.Fprintf(tw, "  Last modified:\t%s\n", sub.LastModified)
	fmt.Fprintf(tw, "  Quota remaining:\t%.1f%% (%s/%s bytes used)\n",
		sub.QuotaRemaining(),
		humanize.Comma(sub.BytesUsed), humanize.Comma(sub.BytesQuota))
	return tw.Flush()
}

// Submissions prints an overview of every submission the user has.
func (c *Client) Submissions(user string) error {
	selected, err := c.selectUser(user)
	if err != nil {
		return err
	}

	subs, err := c.fetchSubmissions(selected)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for _, sub := range subs {
		owners := sub.Owner1.Name
		if sub.Owner2 != nil {
			owners += " and " + sub.Owner2.Name
		}
		fmt.Fprintf(tw, "hw%d\t%s\t%s\n", sub.AssignmentNumber, sub.Status, owners)
	}
	return tw.Flush()
}
