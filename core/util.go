package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// ContainsFold reports whether `substr` is within `s`, ignoring case.
// An empty `substr` always matches.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// AnyContainsFold reports whether `substr` is within any of `fields`, ignoring case.
func AnyContainsFold(substr string, fields ...string) bool {
	if substr == "" {
		return true
	}
	for _, f := range fields {
		if ContainsFold(f, substr) {
			return true
		}
	}
	return false
}

// SplitLines splits `s` on newlines, trimming each line and dropping the blank ones.
func SplitLines(s string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
