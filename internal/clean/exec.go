package clean

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"
)

// elevateTimeout bounds how long an elevated helper may run.
const elevateTimeout = 30 * time.Second

// maxOutput is how much helper output is kept in an error message.
const maxOutput = 200

// handleExitError converts a failed helper command into a readable error.
func handleExitError(err error, output []byte) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("elevated delete timed out after %s", elevateTimeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		outputStr := truncateOutput(strings.TrimSpace(string(output)))
		if outputStr != "" {
			return fmt.Errorf("elevated delete failed (exit code %d): %s", code, outputStr)
		}
		return fmt.Errorf("elevated delete failed (exit code %d)", code)
	}

	return fmt.Errorf("elevated delete command error: %w", err)
}

// truncateOutput cuts s at a valid UTF-8 boundary.
func truncateOutput(s string) string {
	if len(s) <= maxOutput {
		return s
	}
	s = s[:maxOutput]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s + "..."
}
