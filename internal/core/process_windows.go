//go:build windows

package core

import (
	"fmt"

	"github.com/yusufpapurcu/wmi"
)

type win32Process struct {
	Name string
}

// processNames lists running executables through WMI.
func processNames() ([]string, error) {
	var procs []win32Process
	q := wmi.CreateQuery(&procs, "", "Win32_Process")
	if err := wmi.Query(q, &procs); err != nil {
		return nil, fmt.Errorf("query Win32_Process: %w", err)
	}

	names := make([]string, 0, len(procs))
	for _, p := range procs {
		names = append(names, p.Name)
	}
	return names, nil
}
