package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/LFroesch/quill/internal/app"
	"github.com/LFroesch/quill/internal/fileops"
)

// previewUpdateMsg asks for the preview of path once the cursor has settled on it
type previewUpdateMsg struct{ path string }

// Terminal dimension constants
const (
	minTerminalWidth  = 60 // Minimum usable width
	minTerminalHeight = 20 // Minimum usable height
	uiOverhead        = 9  // Header (1) + status (1) + borders (4) + padding (3)
)

const previewUpdateDelay = 150 * time.Millisecond // Delay before updating preview after cursor move

// previewCache holds the wrapped preview of one entry
type previewCache struct {
	path  string
	lines []string
}

// model adapts a Session to the bubbletea program loop and owns layout state
type model struct {
	session *app.Session
	help    help.Model
	width   int
	height  int
	preview previewCache
	started time.Time
}

func newModel(s *app.Session) *model {
	return &model{
		session: s,
		help:    help.New(),
		started: time.Now(),
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("Quill"), m.schedulePreview())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.getSafeWidth()
		m.session.SetEditorSize(m.getSafeWidth()-4, m.getContentHeight())
		// Wrapping depends on width
		m.preview = previewCache{}
		return m, m.schedulePreview()

	case previewUpdateMsg:
		if entry, ok := m.session.Selected(); ok && entry.Path == msg.path {
			m.updatePreview(entry)
		}
		return m, nil
	}

	wasEditing := m.session.Mode() == app.Editing
	cmd := m.session.Update(msg)

	if _, ok := msg.(tea.KeyMsg); ok {
		if wasEditing && m.session.Mode() != app.Editing {
			// The note may have changed on disk
			m.preview = previewCache{}
		}
		return m, tea.Batch(cmd, m.schedulePreview())
	}
	return m, cmd
}

// schedulePreview debounces the preview render for the selected entry
func (m *model) schedulePreview() tea.Cmd {
	entry, ok := m.session.Selected()
	if !ok {
		m.preview = previewCache{}
		return nil
	}
	if entry.Path == m.preview.path {
		return nil
	}

	path := entry.Path
	return tea.Tick(previewUpdateDelay, func(time.Time) tea.Msg {
		return previewUpdateMsg{path: path}
	})
}

func (m *model) updatePreview(entry fileops.Entry) {
	width := m.previewWidth()
	m.preview = previewCache{
		path:  entry.Path,
		lines: wrapTextToLines(previewEntry(entry, width), width),
	}
}

// Helper methods for safe dimensions
func (m *model) getSafeWidth() int {
	if m.width < minTerminalWidth {
		return minTerminalWidth
	}
	return m.width
}

func (m *model) getSafeHeight() int {
	if m.height < minTerminalHeight {
		return minTerminalHeight
	}
	return m.height
}

// getContentHeight returns available height for content (total - UI overhead)
func (m *model) getContentHeight() int {
	return max(3, m.getSafeHeight()-uiOverhead-m.bannerHeight())
}

// bannerHeight is the number of lines the banner takes, zero on short terminals
func (m *model) bannerHeight() int {
	if m.getSafeHeight() < bannerMinHeight {
		return 0
	}
	return strings.Count(banner, "\n") + 1
}

// previewWidth is the text width inside the preview panel
func (m *model) previewWidth() int {
	return max(10, m.getSafeWidth()/2-4)
}

// wrapTextToLines splits text into lines and wraps long lines to fit width.
// Styled lines from the markdown renderer keep their escape sequences intact.
func wrapTextToLines(text string, width int) []string {
	if width <= 0 {
		width = 50
	}

	var wrapped []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\t", "    "), "\n") {
		if ansi.StringWidth(line) <= width {
			wrapped = append(wrapped, line)
			continue
		}
		wrapped = append(wrapped, strings.Split(ansi.Hardwrap(line, width, true), "\n")...)
	}
	return wrapped
}
