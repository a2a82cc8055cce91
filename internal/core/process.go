package core

import (
	"path/filepath"
	"sort"
	"strings"
)

// RunningProcesses returns which of names (executable names, matched
// case-insensitively with or without ".exe") are currently running.
func RunningProcesses(names ...string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	running, err := processNames()
	if err != nil {
		return nil, err
	}
	return matchProcesses(running, names), nil
}

func normalizeProcessName(name string) string {
	name = strings.ToLower(filepath.Base(name))
	return strings.TrimSuffix(name, ".exe")
}

// matchProcesses returns the wanted names present in running, sorted and
// without duplicates.
func matchProcesses(running, wanted []string) []string {
	seen := make(map[string]bool, len(running))
	for _, r := range running {
		seen[normalizeProcessName(r)] = true
	}

	var out []string
	added := make(map[string]bool)
	for _, w := range wanted {
		key := normalizeProcessName(w)
		if seen[key] && !added[key] {
			added[key] = true
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}
