package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/LFroesch/quill/internal/app"
	"github.com/LFroesch/quill/internal/fileops"
	"github.com/LFroesch/quill/internal/theme"
	"github.com/LFroesch/quill/internal/utils"
)

const dialogWidth = 60

// bannerMinHeight is the terminal height from which the banner is shown
const bannerMinHeight = 40

const banner = ` ██████  ██    ██ ██ ██      ██
██    ██ ██    ██ ██ ██      ██
██    ██ ██    ██ ██ ██      ██
██ ▄▄ ██ ██    ██ ██ ██      ██
 ██████   ██████  ██ ███████ ███████
    ▀▀`

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var mainContent string
	switch m.session.Mode() {
	case app.Editing:
		mainContent = m.renderEditor()
	case app.Naming:
		mainContent = m.renderNamingDialog()
	case app.Renaming:
		mainContent = m.renderRenameDialog()
	case app.ConfirmingDelete:
		mainContent = m.renderConfirmDeleteDialog()
	case app.SelectingMoveDestination:
		mainContent = m.renderMoveDialog()
	case app.Settings:
		mainContent = m.renderSettingsDialog()
	case app.ChangingDirectory, app.SelectingTemplateFolder:
		mainContent = m.renderBrowser()
	case app.SelectingTemplate:
		mainContent = m.renderTemplates()
	default:
		// Split view with preview - ensure both panels have same height
		panelHeight := m.getContentHeight() + 2
		half := m.getSafeWidth() / 2

		fileList := lipgloss.NewStyle().Height(panelHeight).Render(m.renderFileList(half))
		preview := lipgloss.NewStyle().Height(panelHeight).Render(m.renderPreview(m.getSafeWidth() - half))
		mainContent = lipgloss.JoinHorizontal(lipgloss.Top, fileList, preview)
	}

	sections := []string{m.renderHeader(), mainContent, m.renderStatusBar()}
	if m.bannerHeight() > 0 {
		sections = append([]string{m.renderBanner()}, sections...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *model) renderBanner() string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(m.scheme().Primary()).
		Width(m.getSafeWidth()).
		Align(lipgloss.Center).
		Render(banner)
}

// systemClock is the header readout of wall-clock time and session uptime
func systemClock(now, started time.Time) string {
	up := now.Sub(started).Truncate(time.Second)
	return fmt.Sprintf("%s UP %s", now.Format("15:04:05"), up)
}

func (m *model) scheme() theme.Scheme {
	return m.session.Scheme()
}

func (m *model) renderHeader() string {
	width := m.getSafeWidth()
	rightStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(m.scheme().Secondary())

	right := rightStyle.Render(systemClock(time.Now(), m.started) + " ")
	if m.session.Mode() == app.Search {
		_, typing := m.session.Query()
		state := "[LOCKED]"
		if typing {
			state = "[TYPING]"
		}
		right = rightStyle.Render("/ "+state+"  ") + right
	}

	titleWidth := max(10, width-lipgloss.Width(right))
	title := "✎ Quill - " + m.session.Root()
	titlePart := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.scheme().Primary()).
		Background(lipgloss.Color("235")).
		Width(titleWidth).
		Padding(0, 1).
		Render(utils.Truncate(title, titleWidth-2))
	return titlePart + right
}

func (m *model) renderStatusBar() string {
	width := m.getSafeWidth()
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("240")).
		Padding(0, 1).
		Width(width)

	modeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.scheme().Primary()).
		Background(lipgloss.Color("240"))

	statusText := modeStyle.Render(m.session.Mode().String())

	// File count and position info
	files := m.session.Files()
	if idx, ok := m.session.Cursor().Index(); ok && len(files) > 0 {
		statusText += fmt.Sprintf(" | %d/%d", idx+1, len(files))
	}
	if msg := m.session.Status(); msg != "" {
		statusText += " | " + msg
	}

	rightSide := m.help.ShortHelpView(m.hints())

	totalWidth := width - 2 // Account for padding
	padding := totalWidth - lipgloss.Width(statusText) - lipgloss.Width(rightSide)
	if padding < 1 {
		// Hints give way to the status message
		return statusStyle.Render(statusText)
	}
	return statusStyle.Render(statusText + strings.Repeat(" ", padding) + rightSide)
}

// hints lists the bindings shown on the right of the status bar
func (m *model) hints() []key.Binding {
	k := m.session.Keys()
	switch m.session.Mode() {
	case app.Editing:
		return []key.Binding{withHelp(k.Back, "save"), k.Export}
	case app.Naming, app.Renaming:
		return []key.Binding{withHelp(k.Enter, "confirm"), k.Back}
	case app.ChangingDirectory, app.SelectingTemplateFolder:
		return []key.Binding{withHelp(k.Enter, "enter"), k.Select, k.Back}
	case app.SelectingTemplate, app.SelectingMoveDestination, app.Settings:
		return []key.Binding{k.Up, k.Down, k.Enter, k.Back}
	case app.ConfirmingDelete:
		return []key.Binding{k.Confirm, k.Decline}
	case app.Search:
		if _, typing := m.session.Query(); typing {
			return []key.Binding{withHelp(k.Enter, "lock"), k.ToggleLock, k.Back}
		}
		return []key.Binding{k.Unlock, k.Right, k.Delete, k.Move, k.Rename, k.Back}
	}
	return []key.Binding{k.NewNote, k.Template, k.Search, k.ChangeDir, k.Rename, k.Delete, k.Move, k.Open, k.Settings, k.Quit}
}

// withHelp relabels a binding for the status bar without changing its keys
func withHelp(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}

// renderFileList renders the file list panel with the given width
func (m *model) renderFileList(width int) string {
	availableHeight := m.getContentHeight()

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.scheme().Primary()).
		Width(width - 4)

	dirName := filepath.Base(m.session.Root())
	header := headerStyle.Render(utils.Truncate("▶ "+dirName, width-4))

	if m.session.Mode() == app.Search {
		queryStyle := lipgloss.NewStyle().Foreground(m.scheme().Secondary())
		header += "\n" + queryStyle.Render(utils.Truncate(m.session.QueryView(), width-4))
		availableHeight--
	}

	files := m.session.Files()
	matches := m.session.Matches()
	cursor, hasCursor := m.session.Cursor().Index()

	var items []string
	if len(files) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
		msg := "No notes here. Press 'n' to create one."
		if m.session.Mode() == app.Search {
			msg = "No matches"
		}
		items = append(items, emptyStyle.Render(msg))
	} else {
		start, end := visibleRange(cursor, len(files), availableHeight)

		highlight := lipgloss.NewStyle().Foreground(m.scheme().Secondary()).Bold(true)
		selectedStyle := lipgloss.NewStyle().
			Background(m.scheme().Primary()).
			Foreground(lipgloss.Color("0"))
		normalStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
		dirStyle := lipgloss.NewStyle().Foreground(m.scheme().Primary())

		nameWidth := max(10, width-8)
		for i := start; i < end; i++ {
			f := files[i]
			name := utils.Truncate(f.Name, nameWidth)
			selected := hasCursor && i == cursor

			// Highlighting would be lost under the selection background
			if !selected && i < len(matches) && lipgloss.Width(name) == lipgloss.Width(f.Name) {
				name = utils.HighlightMatches(name, matches[i].MatchedIndexes, highlight)
			}

			line := utils.GetFileIcon(f.Name, f.IsDir) + " " + name
			switch {
			case selected:
				line = selectedStyle.Render(utils.PadRight(line, width-6))
			case f.IsDir:
				line = dirStyle.Render(line)
			default:
				line = normalStyle.Render(line)
			}
			items = append(items, line)
		}

		if start > 0 {
			items = append([]string{"▲"}, items...)
		}
		if end < len(files) {
			items = append(items, "▼")
		}
	}

	fileList := lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(items, "\n"))

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(width - 2).
		Height(m.getContentHeight() + 2)

	return borderStyle.Render(header + "\n" + fileList)
}

// visibleRange returns the window of a list of n items that keeps cursor on
// screen, reserving a line for each scroll indicator in use
func visibleRange(cursor, n, height int) (int, int) {
	height = max(1, height)
	if n <= height {
		return 0, n
	}

	rows := max(1, height-2)
	start := max(0, cursor-rows/2)
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}

func (m *model) renderPreview(width int) string {
	availableHeight := m.getContentHeight()

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.scheme().Primary()).
		Width(width - 4)

	title := "Preview"
	if entry, ok := m.session.Selected(); ok {
		title = "Preview: " + entry.Name
	}
	header := headerStyle.Render(utils.Truncate(title, width-4))

	previewStyle := lipgloss.NewStyle().
		Width(width-4).
		Padding(0, 1)

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(width - 2).
		Height(availableHeight + 2)

	var content string
	entry, ok := m.session.Selected()
	switch {
	case !ok:
		content = "No preview available"
	case entry.Path != m.preview.path:
		content = "Loading preview..."
	default:
		lines := m.preview.lines
		if len(lines) > availableHeight {
			lines = append(lines[:availableHeight-1:availableHeight-1], "▼")
		}
		content = strings.Join(lines, "\n")
	}

	return borderStyle.Render(header + "\n" + previewStyle.Render(content))
}

func (m *model) renderEditor() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.scheme().Primary())

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.scheme().Primary()).
		Width(m.getSafeWidth() - 2)

	header := headerStyle.Render("✎ " + filepath.Base(m.session.EditingPath()))
	return borderStyle.Render(header + "\n" + m.session.EditorView())
}

// renderDialog centers a bordered dialog in the main area
func (m *model) renderDialog(border lipgloss.Color, title, body, prompt string) string {
	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(dialogWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(border)

	contentStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(1, 0)

	promptStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	dialog := titleStyle.Render(title) + "\n" + contentStyle.Render(body)
	if prompt != "" {
		dialog += "\n" + promptStyle.Render(prompt)
	}
	rendered := dialogStyle.Render(dialog)

	return lipgloss.Place(m.getSafeWidth(), m.getContentHeight()+2,
		lipgloss.Center, lipgloss.Center, rendered)
}

func (m *model) renderNamingDialog() string {
	title := "New Note"
	if tmpl := m.session.PendingTemplate(); tmpl != "" {
		title = "New Note from " + filepath.Base(tmpl)
	}
	body := "Name (" + fileops.NoteExt + " is added if missing):\n\n" + m.session.InputView()
	return m.renderDialog(m.scheme().Primary(), title, body, "Enter to create, ESC to cancel")
}

func (m *model) renderRenameDialog() string {
	body := "Rename " + filepath.Base(m.session.Target()) + " to:\n\n" + m.session.InputView()
	return m.renderDialog(m.scheme().Primary(), "Rename Note", body, "Enter to rename, ESC to cancel")
}

func (m *model) renderConfirmDeleteDialog() string {
	target := m.session.Target()
	body := fmt.Sprintf("Are you sure you want to delete this note?\n\n%s\n(%s)",
		filepath.Base(target), utils.Truncate(target, dialogWidth-6))
	return m.renderDialog(lipgloss.Color("196"), "⚠️  Delete Note?", body, "Press 'y' to confirm, 'n' or ESC to cancel")
}

func (m *model) renderMoveDialog() string {
	var lines []string
	cursor, _ := m.session.MoveCursor().Index()
	for i, stage := range m.session.MoveDestinations() {
		lines = append(lines, m.choiceLine(stage, i == cursor))
	}
	title := "Move " + filepath.Base(m.session.Target())
	return m.renderDialog(m.scheme().Primary(), title, strings.Join(lines, "\n"), "Enter to move, ESC to cancel")
}

func (m *model) renderSettingsDialog() string {
	var lines []string
	all := theme.All()
	cursor, ok := m.session.SettingsCursor().Index()
	for i, s := range all {
		mark := "○"
		if s == m.scheme() {
			mark = "●"
		}
		lines = append(lines, m.choiceLine(mark+" "+s.Name(), i == cursor))
	}

	// Preview of the highlighted scheme before it is applied
	if ok && cursor < len(all) {
		s := all[cursor]
		primary := lipgloss.NewStyle().Foreground(s.Primary()).Bold(true)
		secondary := lipgloss.NewStyle().Foreground(s.Secondary())
		lines = append(lines, "",
			primary.Render("▶ "+s.Name()),
			primary.Render("██ primary")+"  "+secondary.Render("██ secondary"))
	}
	return m.renderDialog(m.scheme().Primary(), "Color Scheme", strings.Join(lines, "\n"), "Enter to apply, ESC to close")
}

func (m *model) renderBrowser() string {
	path, entries, cursor := m.session.Browser()
	title := "Change Directory"
	if m.session.Mode() == app.SelectingTemplateFolder {
		title = "Select Template Folder"
	}

	body := utils.Truncate(path, dialogWidth-6) + "\n\n" + m.renderChoices(entries, cursor)
	return m.renderDialog(m.scheme().Primary(), title, body, "Enter to open, 's' to select this folder, ESC to cancel")
}

func (m *model) renderTemplates() string {
	templates, cursor := m.session.Templates()
	body := m.renderChoices(templates, cursor)
	if len(templates) == 0 {
		body = "No templates in " + utils.Truncate(m.session.TemplateRoot(), dialogWidth-20)
	}
	return m.renderDialog(m.scheme().Primary(), "Select Template", body, "Enter to use, ESC to cancel")
}

// renderChoices lists entries in a dialog, windowed around the cursor
func (m *model) renderChoices(entries []fileops.Entry, cursor app.Cursor) string {
	if len(entries) == 0 {
		return "(empty)"
	}

	idx, _ := cursor.Index()
	start, end := visibleRange(idx, len(entries), m.getContentHeight()-10)

	var lines []string
	if start > 0 {
		lines = append(lines, "▲")
	}
	for i := start; i < end; i++ {
		e := entries[i]
		lines = append(lines, m.choiceLine(utils.GetFileIcon(e.Name, e.IsDir)+" "+e.Name, i == idx))
	}
	if end < len(entries) {
		lines = append(lines, "▼")
	}
	return strings.Join(lines, "\n")
}

func (m *model) choiceLine(text string, selected bool) string {
	text = utils.Truncate(text, dialogWidth-12)
	if selected {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(m.scheme().Secondary()).
			Render("> " + text)
	}
	return "  " + text
}
