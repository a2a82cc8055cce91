//go:build !windows

package clean

// Symlinks are already reported by Lstat; there are no junctions here.
func isReparsePoint(string) bool { return false }

func longPath(path string) string { return path }
