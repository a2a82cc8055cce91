package core

import "fmt"

// windowsVersionName maps NT version numbers to a marketing name. Windows 11
// still reports major 10 and is told apart by build >= 22000.
func windowsVersionName(major, minor, build uint32) string {
	var name string
	switch {
	case major == 10 && build >= 22000:
		name = "Windows 11"
	case major == 10:
		name = "Windows 10"
	case major == 6 && minor == 3:
		name = "Windows 8.1"
	case major == 6 && minor == 2:
		name = "Windows 8"
	case major == 6 && minor == 1:
		name = "Windows 7"
	default:
		name = fmt.Sprintf("Windows %d.%d", major, minor)
	}
	return fmt.Sprintf("%s (Build %d)", name, build)
}
