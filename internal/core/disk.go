package core

import (
	"fmt"
	"path/filepath"

	"github.com/shirou/gopsutil/v4/disk"
)

// DiskSpace is a snapshot of one volume's capacity.
type DiskSpace struct {
	Path  string
	Total uint64
	Free  uint64
}

// FreeSpace reports capacity for the volume holding path.
func FreeSpace(path string) (DiskSpace, error) {
	usage, err := disk.Usage(volumeRoot(path))
	if err != nil {
		return DiskSpace{}, fmt.Errorf("disk usage for %s: %w", path, err)
	}
	return DiskSpace{Path: usage.Path, Total: usage.Total, Free: usage.Free}, nil
}

// Reclaimed returns how many bytes were freed between two snapshots of the
// same volume, or 0 if free space shrank.
func Reclaimed(before, after DiskSpace) uint64 {
	if after.Free <= before.Free {
		return 0
	}
	return after.Free - before.Free
}

// volumeRoot turns "C:\Users\x" into "C:\" and leaves other paths alone.
func volumeRoot(path string) string {
	if vol := filepath.VolumeName(path); vol != "" {
		return vol + string(filepath.Separator)
	}
	return path
}
