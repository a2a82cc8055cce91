//go:build !windows

package config

// There is no App Paths registry outside Windows.
func registeredExecutables(string) []string { return nil }
