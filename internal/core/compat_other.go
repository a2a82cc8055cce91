//go:build !windows

package core

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/host"
)

// IsElevated reports whether the process runs as root.
func IsElevated() bool {
	return os.Geteuid() == 0
}

// OSVersion returns a human-readable OS version string, e.g. "ubuntu 24.04".
func OSVersion() string {
	platform, _, version, err := host.PlatformInformation()
	if err != nil || platform == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s %s", platform, version)
}
