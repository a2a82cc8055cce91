//go:build !windows

package core

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/process"
)

// processNames lists running executables. Processes that exit while being
// listed are skipped.
func processNames() ([]string, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	names := make([]string, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
