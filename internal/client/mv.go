package client

import (
	"net/http"

	"gsc/internal/api"
	"gsc/internal/log"
	"gsc/internal/overwrite"
	"gsc/internal/remote"
)

// Mv renames or moves one remote file by PATCHing its metadata. The
// destination may leave out the homework number (rename in place) or
// the filename (move keeping the name); missing parts come from the
// source. Replacing an existing remote file goes through the overwrite
// policy before the server is asked to do it.
func (c *Client) Mv(user string, src remote.Pattern, dst remote.Destination) error {
	meta, err := c.fetchOneMatching(user, src)
	if err != nil {
		return err
	}

	srcPat := src.WithName(meta.Name)
	resolved := dst.Resolve(srcPat)

	var change api.FileMetaChange
	if resolved.HW != srcPat.HW {
		change.AssignmentNumber = &resolved.HW
	}
	if resolved.Name != srcPat.Name {
		change.Name = &resolved.Name
	}
	if change.IsEmpty() {
		log.Info("Source and destination are identical.")
		return nil
	}

	exists, err := c.remoteFileExists(user, resolved)
	if err != nil {
		return err
	}
	if exists {
		decision, err := c.overwrite.Confirm(resolved.String())
		if err != nil {
			return err
		}
		if decision == overwrite.Skip {
			log.Info("Skipping ‘%s’.", resolved)
			return nil
		}
		change.Overwrite = true
	}

	log.Info("Moving remote file ‘%s’ to ‘%s’...", srcPat, resolved)
	if err := c.sendJSON(http.MethodPatch, c.absoluteURI(meta.URI), &change); err != nil {
		return err
	}
	log.Info("Done.")
	return nil
}

// remoteFileExists checks for an exact filename in a homework. The name
// is compared literally, not as a pattern, so a move target containing
// glob metacharacters is still one specific name.
func (c *Client) remoteFileExists(user string, target remote.Pattern) (bool, error) {
	files, err := c.FetchFileList(user, remote.Pattern{HW: target.HW})
	if err != nil {
		return false, err
	}
	for _, file := range files {
		if file.Name == target.Name {
			return true, nil
		}
	}
	return false, nil
}
