// Package helpers provides shared utility functions used across the application.
// These are generic helpers that don't belong to a specific domain package.
package helpers

import (
	"fmt"
	"strings"
)

// TruncateText shortens text to the specified maximum length in runes, adding
// "..." if truncated. Returns empty string if input is empty or only whitespace.
// A maxLen below 4 leaves the text untouched.
func TruncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	runes := []rune(text)
	if maxLen < 4 || len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen-3]) + "..."
}

// TruncatePath shortens a path for display by keeping its tail, which holds
// the file name. Adds a "..." prefix if the path exceeds maxLen.
func TruncatePath(path string, maxLen int) string {
	if maxLen < 4 || len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-(maxLen-3):]
}

// FirstLines returns at most n lines of text and whether anything was cut.
func FirstLines(text string, n int) (string, bool) {
	if n <= 0 {
		return "", text != ""
	}
	lines := strings.SplitAfterN(text, "\n", n+1)
	if len(lines) <= n || lines[n] == "" {
		return text, false
	}
	return strings.TrimSuffix(strings.Join(lines[:n], ""), "\n"), true
}

// Pluralize formats a count with a noun, adding "s" unless count is 1.
func Pluralize(count int, noun string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, noun)
	}
	return fmt.Sprintf("%d %ss", count, noun)
}
