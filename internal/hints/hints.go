// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import "strings"

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-paste2md/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-paste2md) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-paste2md") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForPresetNotFound returns hints for preset not found errors.
func ForPresetNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForInvalidPattern returns a hint about replacement pattern syntax.
func ForInvalidPattern() string {
	return format("patterns use Go RE2 syntax; lookarounds and backreferences are not supported")
}

// ForNoInput returns a hint when no input source could be determined.
func ForNoInput() string {
	return format("pass a file, a directory, or pipe content on stdin")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
