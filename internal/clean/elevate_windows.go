//go:build windows

package clean

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// shellElevator re-launches cmd.exe through the "runas" verb. The UAC prompt
// is shown by Windows; the helper's window stays hidden.
type shellElevator struct{}

// NewElevator returns the platform's elevated delete helper.
func NewElevator() Elevator { return shellElevator{} }

func (shellElevator) ForceDelete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Lstat(longPath(path))
	isDir := err == nil && info.IsDir()

	verb, _ := windows.UTF16PtrFromString("runas")
	exe, _ := windows.UTF16PtrFromString("cmd.exe")
	args, err := windows.UTF16PtrFromString(elevatedDeleteArgs(path, isDir))
	if err != nil {
		return fmt.Errorf("encode arguments for %s: %w", path, err)
	}

	if err := windows.ShellExecute(0, verb, exe, args, nil, windows.SW_HIDE); err != nil {
		return fmt.Errorf("%w: ShellExecute runas: %v", ErrElevationUnavailable, err)
	}
	return nil
}
