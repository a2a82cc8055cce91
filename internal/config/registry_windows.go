//go:build windows

package config

import (
	"golang.org/x/sys/windows/registry"
)

// appPathSources are where installers register an executable's location.
var appPathSources = []struct {
	root registry.Key
	path string
}{
	{registry.CURRENT_USER, `SOFTWARE\Microsoft\Windows\CurrentVersion\App Paths`},
	{registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows\CurrentVersion\App Paths`},
	{registry.LOCAL_MACHINE, `SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\App Paths`},
}

// registeredExecutables returns the App Paths entries for exe, e.g.
// "chrome.exe". Missing keys are skipped.
func registeredExecutables(exe string) []string {
	var paths []string
	for _, src := range appPathSources {
		key, err := registry.OpenKey(src.root, src.path+`\`+exe, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		if val := readStringValue(key, ""); val != "" {
			paths = append(paths, val)
		}
		key.Close()
	}
	return paths
}

// readStringValue safely reads a string value from a registry key.
// Returns an empty string on any error.
func readStringValue(key registry.Key, name string) string {
	val, _, err := key.GetStringValue(name)
	if err != nil {
		return ""
	}
	return val
}
