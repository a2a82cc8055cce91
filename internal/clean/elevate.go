package clean

import (
	"context"
	"fmt"
)

// Elevator deletes a path with elevated privileges. It may return before the
// deletion has finished; callers confirm by checking the path afterwards.
type Elevator interface {
	ForceDelete(ctx context.Context, path string) error
}

// elevatedDeleteArgs builds the cmd.exe argument line for an elevated
// delete. Files are deleted without /s so same-named files in subfolders
// are left alone; directories get their contents forced out first.
func elevatedDeleteArgs(path string, isDir bool) string {
	if isDir {
		return fmt.Sprintf(`/c del /f /s /q "%s\*" & rd /s /q "%s"`, path, path)
	}
	return fmt.Sprintf(`/c del /f /q "%s"`, path)
}
