package client

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gsc/internal/api"
	"gsc/internal/errors"
	"gsc/internal/log"
	"gsc/internal/overwrite"
	"gsc/internal/remote"
)

// Cp resolves a cp-style copy: any number of sources into one
// destination. The destination's tag picks the direction; mixed
// directions are structural errors that fail before any transfer.
func (c *Client) Cp(user string, srcs []remote.CpArg, dst remote.CpArg) error {
	if dst.IsLocal() {
		return c.cpDown(user, srcs, dst.Local())
	}
	return c.cpUp(user, srcs, dst.Remote())
}

// cpUp is the upload direction: every source must be local.
//
// A whole-homework destination uploads each source under its own base
// filename; failures there are per-source warnings so one bad file does
// not abort the rest. A destination naming a file takes exactly one
// source, and resolves against the server's existing files: no match
// creates the literal name, one match overwrites that exact file
// (server-side, not subject to the local overwrite policy), and several
// matches are refused rather than guessed at.
func (c *Client) cpUp(user string, srcs []remote.CpArg, dst remote.Pattern) error {
	var paths []string
	for _, src := range srcs {
		if src.IsRemote() {
			return errors.NewCannotCopyRemoteToRemote(src.Remote().String(), dst.String())
		}
		paths = append(paths, src.Local())
	}

	if dst.IsWholeHW() {
		for _, path := range paths {
			path := path
			if err := c.tryWarn(func() error {
				name, err := remote.BaseFilename(path)
				if err != nil {
					return err
				}
				return c.uploadFile(user, path, dst.WithName(name))
			}); err != nil {
				return err
			}
		}
		log.Info("Done.")
		return nil
	}

	if len(paths) != 1 {
		return errors.NewMultipleSourcesOneDestination(dst.String())
	}

	existing, err := c.FetchFileList(user, dst)
	if err != nil {
		return err
	}

	name := dst.Name
	switch len(existing) {
	case 0:
		// nothing matches: the upload creates dst.Name as given
	case 1:
		name = existing[0].Name
	default:
		names := make([]string, len(existing))
		for i, file := range existing {
			names[i] = file.Name
		}
		return errors.NewDestinationPatternIsMultiple(dst.String(), names)
	}

	if err := c.uploadFile(user, paths[0], dst.WithName(name)); err != nil {
		return err
	}
	log.Info("Done.")
	return nil
}

// cpDown is the download direction: every source must be remote. The
// destination is classified by filesystem probe into directory, plain
// file, or nonexistent, and the nonexistent case is disambiguated by a
// trailing path separator or a whole-homework source, either of which
// forces directory semantics.
func (c *Client) cpDown(user string, srcs []remote.CpArg, dst string) error {
	var rpats []remote.Pattern
	for _, src := range srcs {
		if src.IsLocal() {
			if remote.LooksLikeHW(dst) {
				return errors.NewCannotCopyLocalToLocalHint(src.Local(), dst)
			}
			return errors.NewCannotCopyLocalToLocal(src.Local(), dst)
		}
		rpats = append(rpats, src.Remote())
	}

	kind, err := classifyDst(dst)
	if err != nil {
		return err
	}

	switch kind {
	case dstFile:
		if len(rpats) != 1 {
			return errors.NewMultipleSourcesOneDestination(dst)
		}
		return c.downloadOneTo(user, rpats[0], dst, true)

	case dstDoesNotExist:
		if len(rpats) == 1 && !rpats[0].IsWholeHW() && !endsInSeparator(dst) {
			// a single named file into a fresh path: plain create,
			// nothing to overwrite
			return c.downloadOneTo(user, rpats[0], dst, false)
		}
		if err := os.MkdirAll(dst, 0o755); err != nil {
			return errors.WrapFile(dst, err)
		}
	}

	for _, rpat := range rpats {
		rpat := rpat
		if err := c.tryWarn(func() error {
			return c.downloadPatternToDir(user, rpat, dst)
		}); err != nil {
			return err
		}
	}
	log.Info("Done.")
	return nil
}

// downloadOneTo writes the single file a pattern resolves to onto one
// local path. exists says whether something is already there, in which
// case the overwrite policy decides.
func (c *Client) downloadOneTo(user string, src remote.Pattern, dst string, exists bool) error {
	if src.IsWholeHW() {
		return errors.NewSourceHwToDestinationFile(src.HW, dst)
	}

	meta, err := c.fetchOneMatching(user, src)
	if err != nil {
		return err
	}

	if exists {
		decision, err := c.overwrite.Confirm(dst)
		if err != nil {
			return err
		}
		if decision == overwrite.Skip {
			log.Info("Skipping ‘%s’.", dst)
			return nil
		}
	}

	if err := c.downloadFile(src.WithName(meta.Name), meta.URI, dst); err != nil {
		return err
	}
	log.Info("Done.")
	return nil
}

// downloadPatternToDir fans one source pattern out under a directory.
// Whole-homework sources get one subdirectory per file purpose and skip
// files the server may delete on its own (logs); named patterns land
// their matches directly in the directory. Per-file failures are
// warnings, so the rest of the batch still transfers.
func (c *Client) downloadPatternToDir(user string, src remote.Pattern, dir string) error {
	wholeHW := src.IsWholeHW()

	var files []api.FileMeta
	var err error
	if wholeHW {
		files, err = c.FetchFileList(user, src)
	} else {
		files, err = c.fetchNonEmptyMatching(user, src)
	}
	if err != nil {
		return err
	}

	for _, file := range files {
		file := file
		if wholeHW && file.Purpose.AutoDeletable() {
			continue
		}

		target := dir
		if wholeHW {
			target = filepath.Join(target, file.Purpose.Dir())
		}
		target = filepath.Join(target, file.Name)

		if err := c.tryWarn(func() error {
			return c.downloadFileChecked(src.WithName(file.Name), file.URI, target)
		}); err != nil {
			return err
		}
	}
	return nil
}

// downloadFileChecked downloads one file, consulting the overwrite
// policy when the target already exists.
func (c *Client) downloadFileChecked(src remote.Pattern, relURI, target string) error {
	if info, err := os.Stat(target); err == nil {
		if info.IsDir() {
			return errors.WrapFile(target, fmt.Errorf("is a directory"))
		}
		decision, err := c.overwrite.Confirm(target)
		if err != nil {
			return err
		}
		if decision == overwrite.Skip {
			log.Info("Skipping ‘%s’.", target)
			return nil
		}
	} else if !os.IsNotExist(err) {
		return errors.WrapFile(target, err)
	}

	return c.downloadFile(src, relURI, target)
}

// downloadFile streams one remote file to a local path, creating parent
// directories on demand.
func (c *Client) downloadFile(src remote.Pattern, relURI, dst string) error {
	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapFile(dir, err)
		}
	}

	file, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.WrapFile(dst, err)
	}
	defer file.Close()

	log.Info("Downloading ‘%s’ -> ‘%s’...", src, dst)
	return c.stream(c.absoluteURI(relURI), file)
}

// uploadFile streams one local file into a named remote slot.
func (c *Client) uploadFile(user, path string, dst remote.Pattern) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.WrapFile(path, err)
	}
	defer file.Close()

	base, err := c.submissionFilesURI(user, dst.HW)
	if err != nil {
		return err
	}

	req, err := c.newRequest(http.MethodPut, base+"/"+url.PathEscape(dst.Name), file)
	if err != nil {
		return err
	}
	if info, err := file.Stat(); err == nil {
		req.ContentLength = info.Size()
	}

	log.Info("Uploading ‘%s’ -> ‘%s’...", path, dst)
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

type dstKind int

const (
	dstDir dstKind = iota
	dstFile
	dstDoesNotExist
)

// classifyDst probes the local destination. Only "does not exist" is
// special-cased; other stat failures (permissions, bad parent) are real
// errors.
func classifyDst(path string) (dstKind, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return dstDoesNotExist, nil
		}
		return 0, errors.WrapFile(path, err)
	}
	if info.IsDir() {
		return dstDir, nil
	}
	return dstFile, nil
}

func endsInSeparator(path string) bool {
	return strings.HasSuffix(path, "/") ||
		strings.HasSuffix(path, string(os.PathSeparator))
}
