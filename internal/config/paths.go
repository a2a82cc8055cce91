package config

import (
	"os"
	"path/filepath"
)

// Built-in category identifiers.
const (
	CategorySystemTemp = "系统临时文件"
	CategoryChrome     = "Chrome浏览器缓存"
	CategoryEdge       = "Edge浏览器缓存"
	CategoryRecycleBin = "回收站"
	CategoryDownloads  = "下载文件夹"
	CategoryCustom     = "自定义路径"
)

// Risk levels.
const (
	RiskLow  = "low"
	RiskHigh = "high"
)

// Category is a named group of cleanup targets.
type Category struct {
	// Name is the unique identifier for this category.
	Name string

	// Alias is a short ASCII name accepted on the command line.
	Alias string

	// Paths is the list of filesystem roots to clean.
	// Ignored when Trash or Custom is set.
	Paths []string

	// Description is a human-readable description.
	Description string

	// Trash marks the category as the platform Recycle Bin, which is
	// emptied via the shell API instead of walking a directory.
	Trash bool

	// Custom marks the mutable, operator-supplied path list.
	Custom bool

	// RiskLevel is one of "low" or "high". High-risk categories need
	// operator confirmation before a run.
	RiskLevel string

	// Default marks the category as selected by default.
	Default bool

	// Processes are executables that hold files under Paths open while
	// running.
	Processes []string
}

// HighRisk reports whether the category requires confirmation.
func (c Category) HighRisk() bool {
	return c.RiskLevel == RiskHigh
}

// userProfile returns the user profile directory.
func userProfile() string {
	if p := os.Getenv("USERPROFILE"); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return home
}

// localAppData returns the local app data directory.
func localAppData() string {
	if p := os.Getenv("LOCALAPPDATA"); p != "" {
		return p
	}
	return filepath.Join(userProfile(), "AppData", "Local")
}

// winDir returns the Windows directory (e.g., C:\Windows).
// Falls back to C:\Windows only if %WINDIR% is not set.
func winDir() string {
	if w := os.Getenv("WINDIR"); w != "" {
		return w
	}
	return `C:\Windows`
}

// programFiles returns the Program Files directory.
func programFiles() string {
	if p := os.Getenv("PROGRAMFILES"); p != "" {
		return p
	}
	return `C:\Program Files`
}

// programFilesX86 returns the Program Files (x86) directory.
func programFilesX86() string {
	if p := os.Getenv("PROGRAMFILES(X86)"); p != "" {
		return p
	}
	return `C:\Program Files (x86)`
}

// tempDir returns %TEMP%, or the OS temp dir when unset.
func tempDir() string {
	if t := os.Getenv("TEMP"); t != "" {
		return t
	}
	return os.TempDir()
}

// browserExecutables lists the probe locations for each browser. A browser
// counts as installed when any of them exists.
func browserExecutables() map[string][]string {
	return map[string][]string{
		CategoryChrome: {
			filepath.Join(programFiles(), "Google", "Chrome", "Application", "chrome.exe"),
			filepath.Join(programFilesX86(), "Google", "Chrome", "Application", "chrome.exe"),
			filepath.Join(localAppData(), "Google", "Chrome", "Application", "chrome.exe"),
		},
		CategoryEdge: {
			filepath.Join(programFiles(), "Microsoft", "Edge", "Application", "msedge.exe"),
			filepath.Join(programFilesX86(), "Microsoft", "Edge", "Application", "msedge.exe"),
			filepath.Join(localAppData(), "Microsoft", "Edge", "Application", "msedge.exe"),
		},
	}
}

// BrowserInstalled reports whether the browser behind a browser cache
// category is installed, by probing the usual install locations and the
// App Paths registry. Non-browser categories always report true.
func BrowserInstalled(category string) bool {
	paths, ok := browserExecutables()[category]
	if !ok {
		return true
	}
	paths = append(paths, registeredExecutables(filepath.Base(paths[0]))...)
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}

// GetCleanCategories returns every built-in category with paths expanded,
// in display order. Browser caches are included regardless of whether
// the browser is installed; see DefaultCategories.
func GetCleanCategories() []Category {
	home := userProfile()
	local := localAppData()

	return []Category{
		// ── Temp ────────────────────────────────────────────────
		{
			Name:        CategorySystemTemp,
			Alias:       "temp",
			Paths:       []string{tempDir(), filepath.Join(winDir(), "Temp")},
			Description: "User and system temporary files",
			RiskLevel:   RiskLow,
			Default:     true,
		},

		// ── Browser Caches ──────────────────────────────────────
		{
			Name:        CategoryChrome,
			Alias:       "chrome",
			Paths:       []string{filepath.Join(local, "Google", "Chrome", "User Data", "Default", "Cache")},
			Description: "Google Chrome browser cache",
			RiskLevel:   RiskLow,
			Processes:   []string{"chrome.exe"},
		},
		{
			Name:        CategoryEdge,
			Alias:       "edge",
			Paths:       []string{filepath.Join(local, "Microsoft", "Edge", "User Data", "Default", "Cache")},
			Description: "Microsoft Edge browser cache",
			RiskLevel:   RiskLow,
			Processes:   []string{"msedge.exe"},
		},

		// ── Recycle Bin ─────────────────────────────────────────
		{
			Name:        CategoryRecycleBin,
			Alias:       "recyclebin",
			Description: "Windows Recycle Bin (emptied via system API)",
			Trash:       true,
			RiskLevel:   RiskHigh,
		},

		// ── Downloads ───────────────────────────────────────────
		{
			Name:        CategoryDownloads,
			Alias:       "downloads",
			Paths:       []string{filepath.Join(home, "Downloads")},
			Description: "Everything in the Downloads folder",
			RiskLevel:   RiskHigh,
		},

		// ── Custom ──────────────────────────────────────────────
		{
			Name:        CategoryCustom,
			Alias:       "custom",
			Description: "Directories added with --path",
			Custom:      true,
			RiskLevel:   RiskHigh,
		},
	}
}

// DefaultCategories returns the built-in categories, leaving out browser
// caches whose browser is not installed.
func DefaultCategories() []Category {
	var out []Category
	for _, c := range GetCleanCategories() {
		if !BrowserInstalled(c.Name) {
			continue
		}
		out = append(out, c)
	}
	return out
}
