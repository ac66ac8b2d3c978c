// Package export writes rendered sheets to disk under collision-free names.
//
// A sheet exported for the 1-inch photo on 6-inch paper at a given instant
// is named
//
//	1-inch-6-inch-4R-1760000000000.png
//
// i.e. the display names of both catalog entries followed by the Unix time
// in milliseconds.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/idphoto/pkg/catalog"
	"github.com/matzehuels/idphoto/pkg/errors"
)

// Ext is the extension of every exported sheet.
const Ext = ".png"

// maxAttempts bounds the number of timestamps Save tries before giving up.
const maxAttempts = 1000

// Filename returns the export name for a sheet of photo on paper taken at t.
func Filename(photo catalog.PhotoSpec, paper catalog.PaperSpec, t time.Time) string {
	return fmt.Sprintf("%s-%s-%d%s", photo.DisplayName(), paper.DisplayName(), t.UnixMilli(), Ext)
}

// Write stores data as dir/name, creating dir if needed. Existing files are
// replaced.
func Write(dir, name string, data []byte) (string, error) {
	if err := errors.ValidateOutputPath(name); err != nil {
		return "", err
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return path, nil
}

// Save writes data into dir under [Filename] for the current time of clock
// and returns the path. If that name is taken the timestamp is advanced one
// millisecond at a time, so two exports never overwrite each other.
// A nil clock means time.Now.
func Save(dir string, photo catalog.PhotoSpec, paper catalog.PaperSpec, data []byte, clock func() time.Time) (string, error) {
	if clock == nil {
		clock = time.Now
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}

	t := clock()
	for range maxAttempts {
		path := filepath.Join(dir, Filename(photo, paper, t))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			t = t.Add(time.Millisecond)
			continue
		}
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		if err := f.Close(); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "close %s", path)
		}
		return path, nil
	}
	return "", errors.New(errors.ErrCodeResourceUnavailable, "no free file name for %s on %s in %s", photo.ID, paper.ID, dir)
}
