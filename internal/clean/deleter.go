package clean

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/lakshaymaurya-felt/wclean/internal/logger"
	"github.com/lakshaymaurya-felt/wclean/internal/metrics"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const (
	// DefaultElevateWait is how long to wait for an elevated helper to make
	// a path disappear.
	DefaultElevateWait = 2 * time.Second

	pollInterval = 100 * time.Millisecond
)

// Deleter removes a single file or directory tree.
type Deleter interface {
	// Delete returns true if the path is gone afterwards, including when it
	// was already absent.
	Delete(path string) bool
}

// ForceDeleter removes paths by granting full permissions and retrying, and
// falls back to an elevated helper when that is not enough.
type ForceDeleter struct {
	fs       afero.Fs
	elevator Elevator
	wait     time.Duration
	metrics  *metrics.Recorder
	log      zerolog.Logger
}

// NewForceDeleter creates a deleter on fsys. A nil elevator disables the
// elevated fallback. A non-positive wait uses DefaultElevateWait.
func NewForceDeleter(fsys afero.Fs, elevator Elevator, wait time.Duration, rec *metrics.Recorder) *ForceDeleter {
	if wait <= 0 {
		wait = DefaultElevateWait
	}
	return &ForceDeleter{
		fs:       fsys,
		elevator: elevator,
		wait:     wait,
		metrics:  rec,
		log:      logger.WithComponent("deleter"),
	}
}

// Delete implements Deleter. Errors are logged, never returned.
func (d *ForceDeleter) Delete(path string) bool {
	err := d.Remove(path)
	if err != nil {
		d.log.Debug().Err(err).Str("path", path).Msg("delete failed")
	}
	return err == nil
}

// Remove deletes path and reports why it is still present if it could not.
// The returned error wraps ErrDeleteFailed.
func (d *ForceDeleter) Remove(path string) error {
	err := d.removeDirect(path)
	if err == nil {
		return nil
	}
	if d.elevator == nil {
		return fmt.Errorf("%w: %s: %w", ErrDeleteFailed, path, err)
	}

	d.log.Debug().Err(err).Str("path", path).Msg("direct delete failed, trying elevated helper")
	if elevErr := d.removeElevated(path); elevErr != nil {
		return fmt.Errorf("%w: %s: %w", ErrDeleteFailed, path, errors.Join(err, elevErr))
	}
	return nil
}

func (d *ForceDeleter) removeDirect(path string) error {
	p := longPath(path)
	info, err := lstat(d.fs, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() && !isReparsePoint(p) {
		return d.removeTree(p)
	}
	return d.removeEntry(p, info.Mode())
}

// removeTree deletes a directory bottom-up. Each entry that refuses to go
// gets permissive bits on itself and its parent and one retry.
func (d *ForceDeleter) removeTree(dir string) error {
	entries, err := afero.ReadDir(d.fs, dir)
	if err != nil {
		_ = d.fs.Chmod(dir, 0o777)
		if entries, err = afero.ReadDir(d.fs, dir); err != nil {
			return err
		}
	}

	for _, e := range entries {
		child := filepath.Join(dir, e.Name())
		if e.IsDir() && e.Mode()&os.ModeSymlink == 0 && !isReparsePoint(child) {
			if err := d.removeTree(child); err != nil {
				return err
			}
			continue
		}
		if err := d.removeEntry(child, e.Mode()); err != nil {
			return err
		}
	}
	return d.removeEntry(dir, os.ModeDir)
}

func (d *ForceDeleter) removeEntry(path string, mode os.FileMode) error {
	// Chmod follows symlinks, so links are never touched.
	if mode&os.ModeSymlink == 0 && !mode.IsDir() {
		_ = d.fs.Chmod(path, 0o777)
	}
	err := d.fs.Remove(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if mode&os.ModeSymlink == 0 {
		_ = d.fs.Chmod(path, 0o777)
	}
	_ = d.fs.Chmod(filepath.Dir(path), 0o777)
	if err := d.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (d *ForceDeleter) removeElevated(path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("elevated helper panicked: %v", r)
		}
		d.metrics.ElevatedFallback(err == nil)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), elevateTimeout)
	defer cancel()

	if err := d.elevator.ForceDelete(ctx, path); err != nil {
		return err
	}
	if !d.waitGone(path) {
		return fmt.Errorf("still present %s after elevated delete", d.wait)
	}
	d.log.Info().Str("path", path).Msg("removed with elevated helper")
	return nil
}

// waitGone polls until path disappears or the wait elapses.
func (d *ForceDeleter) waitGone(path string) bool {
	deadline := time.Now().Add(d.wait)
	for {
		if _, err := lstat(d.fs, longPath(path)); errors.Is(err, fs.ErrNotExist) {
			return true
		}
		if !time.Now().Before(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}
