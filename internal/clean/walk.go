package clean

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// lstat uses Lstat when the filesystem supports it so symlinks are never
// followed.
func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}

// exists reports whether path is present. Any error other than
// "not exist" counts as present, since the entry may merely be unreadable.
func exists(fsys afero.Fs, path string) bool {
	if path == "" {
		return false
	}
	_, err := lstat(fsys, longPath(path))
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// walkFiles calls fn for every non-directory entry below root. Unreadable
// entries are logged and skipped, and junctions/reparse points are never
// descended into. An error returned by fn stops the walk.
func walkFiles(fsys afero.Fs, root string, log zerolog.Logger, fn func(path string) error) error {
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("skipping unreadable entry")
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if path != root && isReparsePoint(path) {
				log.Debug().Str("path", path).Msg("skipping junction/reparse point")
				return filepath.SkipDir
			}
			return nil
		}
		return fn(path)
	})
	if errors.Is(err, filepath.SkipDir) {
		return nil
	}
	return err
}

// countFiles returns the number of files below root. Directories are not
// counted.
func countFiles(ctx context.Context, fsys afero.Fs, root string, log zerolog.Logger) (int64, error) {
	var n int64
	err := walkFiles(fsys, root, log, func(string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}
