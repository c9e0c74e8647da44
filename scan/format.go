package scan

import "fmt"

// TruncatePath shortens a path for display, keeping the end which is more
// informative.
func TruncatePath(path string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return path[:min(len(path), maxLen)]
	}
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

// FormatSummary formats one line describing an extracted document.
func FormatSummary(path string, deps, missing int) string {
	if missing == 0 {
		return fmt.Sprintf("%s: %d deps", path, deps)
	}
	return fmt.Sprintf("%s: %d deps (%d missing)", path, deps, missing)
}
