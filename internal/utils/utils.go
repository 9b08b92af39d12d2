package utils

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// GetFileIcon returns the list icon for an entry
func GetFileIcon(name string, isDir bool) string {
	if isDir {
		return "▶"
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return "■"
	case ".txt", ".log":
		return "□"
	default:
		return "·"
	}
}

// IsMarkdown reports whether name should be rendered as markdown in the preview
func IsMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// HighlightMatches renders the characters at the given byte offsets with style.
// Offsets are byte positions into text, as reported by the fuzzy matcher.
func HighlightMatches(text string, matches []int, style lipgloss.Style) string {
	if len(matches) == 0 {
		return text
	}

	matchMap := make(map[int]bool, len(matches))
	for _, idx := range matches {
		matchMap[idx] = true
	}

	var result strings.Builder
	for i, r := range text {
		if matchMap[i] {
			result.WriteString(style.Render(string(r)))
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// Truncate shortens s to at most width terminal cells, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to exactly width cells, truncating if needed
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	return runewidth.FillRight(s, width)
}
