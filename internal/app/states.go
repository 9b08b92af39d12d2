package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/LFroesch/quill/internal/fileops"
)

// state is the active mode together with the data only that mode uses
type state interface {
	Mode() Mode
}

type normalState struct{}

// editingState owns the open buffer until it is written back. original is
// the text as loaded (newlines normalized) and crlf records whether the file
// used CRLF line endings.
type editingState struct {
	path     string
	buffer   textarea.Model
	original string
	crlf     bool
}

// namingState asks for a new note name. template is empty for a blank note.
type namingState struct {
	template string
	input    textinput.Model
}

type renamingState struct {
	target string
	input  textinput.Model
}

// browseState walks directories, either to change root or to pick the
// template folder
type browseState struct {
	forTemplates bool
	path         string
	entries      []fileops.Entry
	cursor       Cursor
}

type templateState struct {
	templates []fileops.Entry
	cursor    Cursor
}

// searchState marks the search overlay; the query itself lives on the
// session so it survives operations started from the results
type searchState struct{}

type confirmDeleteState struct {
	target string
}

type moveState struct {
	target string
	cursor Cursor
}

type settingsState struct {
	cursor Cursor
}

func (*normalState) Mode() Mode        { return Normal }
func (*editingState) Mode() Mode       { return Editing }
func (*namingState) Mode() Mode        { return Naming }
func (*renamingState) Mode() Mode      { return Renaming }
func (*templateState) Mode() Mode      { return SelectingTemplate }
func (*searchState) Mode() Mode        { return Search }
func (*confirmDeleteState) Mode() Mode { return ConfirmingDelete }
func (*moveState) Mode() Mode          { return SelectingMoveDestination }
func (*settingsState) Mode() Mode      { return Settings }

func (b *browseState) Mode() Mode {
	if b.forTemplates {
		return SelectingTemplateFolder
	}
	return ChangingDirectory
}

// newInput builds a focused single-line input holding value
func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Prompt = "> "
	ti.Focus()
	ti.SetValue(value)
	ti.CursorEnd()
	return ti
}

// newBuffer builds a focused editor buffer holding content
func newBuffer(content string, width, height int) textarea.Model {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	if width > 0 {
		ta.SetWidth(width)
	}
	if height > 0 {
		ta.SetHeight(height)
	}
	ta.Focus()
	ta.SetValue(content)
	return ta
}

// maxEditLines is the row limit of the bubbles textarea
const maxEditLines = 10000

// normalizeNewlines converts CRLF line endings to LF and reports whether any
// were present
func normalizeNewlines(content string) (string, bool) {
	if !strings.Contains(content, "\r\n") {
		return content, false
	}
	return strings.ReplaceAll(content, "\r\n", "\n"), true
}

// editBlocker explains why text cannot be held by the edit buffer unchanged
func editBlocker(text string) string {
	switch {
	case strings.ContainsRune(text, '\t'):
		return "it contains tabs"
	case strings.Count(text, "\n") >= maxEditLines:
		return fmt.Sprintf("it has more than %d lines", maxEditLines)
	case strings.ContainsRune(text, '\r'):
		return "it contains bare carriage returns"
	default:
		return "it contains characters the editor would drop"
	}
}
