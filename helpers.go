package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/skratchdot/open-golang/open"

	"github.com/LFroesch/quill/internal/fileops"
	"github.com/LFroesch/quill/internal/logger"
	"github.com/LFroesch/quill/internal/utils"
)

const (
	welcomeFile     = "welcome.md"
	maxPreviewBytes = 32 * 1024 // Larger notes are cut before rendering
	maxPreviewItems = 20        // Maximum entries shown when previewing a directory
)

const welcomeContent = `# Welcome to Quill

A retro notes manager for your terminal.

## Controls

- Up/Down: navigate files
- Left: go up one directory level
- Right/Enter: open file or enter directory
- n: create a new note
- Shift+T: new note from a template
- /: fuzzy search (Tab locks the results)
- c: change directory
- r: rename the selected note
- d: delete the selected note
- m: move the note to a workflow stage (Uploaded, Rendered, Ready to Upload, Printed)
- o: open the note in its default application
- s: choose a color scheme
- Esc: save and leave the editor, or cancel any prompt
- Ctrl+C while editing: copy the note to the clipboard
- q: quit
`

// clipboardExporter copies editor text to the system clipboard
type clipboardExporter struct{}

func (clipboardExporter) Export(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard unavailable: %w", err)
	}
	return nil
}

// systemOpener opens a path with the platform default application
type systemOpener struct{}

func (systemOpener) Open(path string) error {
	// Use system default opener (handles Linux/macOS/Windows automatically)
	return open.Start(path)
}

// writeWelcome drops the welcome note into root unless one is already there
func writeWelcome(root string) {
	_, err := fileops.CreateNote(root, welcomeFile, welcomeContent)
	switch {
	case errors.Is(err, fileops.ErrExists):
	case err != nil:
		logger.Warn("Failed to write welcome note: %v", err)
	default:
		logger.Info("Wrote welcome note to %s", filepath.Join(root, welcomeFile))
	}
}

// previewEntry builds the right-hand preview for a list entry
func previewEntry(entry fileops.Entry, width int) string {
	if entry.IsDir {
		return previewDirectory(entry.Path)
	}

	content, err := fileops.ReadText(entry.Path)
	if err != nil {
		return "Cannot read file: " + err.Error()
	}
	if strings.TrimSpace(content) == "" {
		return "(empty note)"
	}
	content = truncateBytes(content, maxPreviewBytes)
	if utils.IsMarkdown(entry.Name) {
		return renderMarkdown(content, width)
	}
	return content
}

// truncateBytes cuts s to at most n bytes without splitting a rune
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func previewDirectory(path string) string {
	entries := fileops.ListNotes(path)
	if len(entries) == 0 {
		return "(empty directory)"
	}

	var lines []string
	for i, e := range entries {
		if i == maxPreviewItems {
			lines = append(lines, fmt.Sprintf("... and %d more", len(entries)-maxPreviewItems))
			break
		}
		lines = append(lines, utils.GetFileIcon(e.Name, e.IsDir)+" "+e.Name)
	}
	return strings.Join(lines, "\n")
}

// renderMarkdown renders note text with glamour, falling back to the raw text
func renderMarkdown(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(20, width)),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		logger.Debug("glamour renderer unavailable: %v", err)
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		logger.Debug("markdown render failed: %v", err)
		return content
	}
	return strings.Trim(out, "\n")
}
