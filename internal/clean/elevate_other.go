//go:build !windows

package clean

import (
	"context"
	"fmt"
	"os/exec"
)

// sudoElevator runs a non-interactive sudo rm. It never prompts: without a
// cached credential or NOPASSWD rule it simply fails.
type sudoElevator struct{}

// NewElevator returns the platform's elevated delete helper.
func NewElevator() Elevator { return sudoElevator{} }

func (sudoElevator) ForceDelete(ctx context.Context, path string) error {
	sudo, err := exec.LookPath("sudo")
	if err != nil {
		return fmt.Errorf("%w: sudo not found", ErrElevationUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, elevateTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, sudo, "-n", "rm", "-rf", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return handleExitError(ctx.Err(), output)
		}
		return handleExitError(err, output)
	}
	return nil
}
