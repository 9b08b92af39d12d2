package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/quill/internal/fileops"
	"github.com/LFroesch/quill/internal/logger"
	"github.com/LFroesch/quill/internal/search"
	"github.com/LFroesch/quill/internal/theme"
)

func schemes() []theme.Scheme {
	return theme.All()
}

// selectedFile returns the highlighted entry's path if it is a regular note
func (s *Session) selectedFile() (string, bool) {
	entry, ok := s.Selected()
	if !ok || entry.IsDir {
		return "", false
	}
	return entry.Path, true
}

// selectPath points the file cursor at path in the active list
func (s *Session) selectPath(path string) bool {
	for i, e := range s.Files() {
		if e.Path == path {
			return s.fileCursor.Select(i, len(s.Files()))
		}
	}
	return false
}

// changeRoot switches the listed directory and persists it
func (s *Session) changeRoot(dir string) {
	s.cfg.Root = dir
	s.savedRoot = ""
	s.persist()
	s.loadFiles()
	s.fileCursor = NewCursor(len(s.files))
}

func (s *Session) navigateUp() {
	parent := filepath.Dir(s.cfg.Root)
	if parent == s.cfg.Root {
		return
	}
	wasSearching := s.Mode() == Search
	s.changeRoot(parent)
	if wasSearching {
		s.exitSearch()
	}
}

// openSelected opens a note in the editor or descends into a directory
func (s *Session) openSelected() tea.Cmd {
	entry, ok := s.Selected()
	if !ok {
		return nil
	}
	if entry.IsDir {
		wasSearching := s.Mode() == Search
		s.changeRoot(entry.Path)
		if wasSearching {
			s.exitSearch()
		}
		return nil
	}
	return s.startEditing(entry.Path)
}

// startEditing loads path into the edit buffer. Content the buffer would
// alter on the way in (tabs, control characters, too many lines) is not
// opened, so saving can never rewrite it.
func (s *Session) startEditing(path string) tea.Cmd {
	content, err := fileops.ReadText(path)
	if err != nil {
		s.fail("read failed", err)
		content = ""
	}

	text, crlf := normalizeNewlines(content)
	buffer := newBuffer(text, s.editorWidth, s.editorHeight)
	if buffer.Value() != text {
		reason := editBlocker(text)
		logger.Warn("Not editing %s: %s", path, reason)
		s.status = fmt.Sprintf("cannot edit %s: %s (o opens it externally)", filepath.Base(path), reason)
		return nil
	}

	s.state = &editingState{
		path:     path,
		buffer:   buffer,
		original: text,
		crlf:     crlf,
	}
	logger.Debug("Editing %s", path)
	return textarea.Blink
}

// stopEditing writes the buffer back, if it changed, and returns to the file list
func (s *Session) stopEditing(st *editingState) {
	if value := st.buffer.Value(); value == st.original {
		s.status = "no changes to " + filepath.Base(st.path)
	} else {
		if st.crlf {
			value = strings.ReplaceAll(value, "\n", "\r\n")
		}
		if err := fileops.WriteText(st.path, value); err != nil {
			s.fail("save failed", err)
		} else {
			s.status = "saved " + filepath.Base(st.path)
		}
	}

	s.state = &normalState{}
	s.loadFiles()
	if !s.selectPath(st.path) {
		s.fileCursor.Clamp(len(s.files))
	}
}

func (s *Session) export(text string) {
	if s.exporter == nil {
		return
	}
	if err := s.exporter.Export(text); err != nil {
		s.fail("export failed", err)
		return
	}
	s.status = "copied to clipboard"
}

func (s *Session) openExternal() {
	entry, ok := s.Selected()
	if !ok || s.opener == nil {
		return
	}
	if err := s.opener.Open(entry.Path); err != nil {
		s.fail("open failed", err)
		return
	}
	s.status = "opened " + entry.Name
}

// createNote turns the naming prompt into a file and opens it. The
// pending template is consumed here whatever the outcome.
func (s *Session) createNote(st *namingState) tea.Cmd {
	name := strings.TrimSpace(st.input.Value())
	s.state = &normalState{}
	if name == "" {
		return nil
	}
	if !s.validName(name) {
		return nil
	}
	name = fileops.WithNoteExt(name)

	content := ""
	if st.template != "" {
		text, err := fileops.ReadText(st.template)
		if err != nil {
			s.fail("template unreadable", err)
		} else {
			content = text
		}
	}

	path, err := fileops.CreateNote(s.cfg.Root, name, content)
	switch {
	case errors.Is(err, fileops.ErrExists) && fileops.IsDir(path):
		s.status = name + " is a directory"
		return nil
	case errors.Is(err, fileops.ErrExists):
		logger.Info("Note %s already exists, opening it", path)
	case err != nil:
		s.fail("create failed", err)
		return nil
	default:
		logger.Info("Created note %s", path)
	}

	s.loadFiles()
	if s.selectPath(path) {
		return s.startEditing(path)
	}
	return nil
}

// validName refuses names that would place a note outside its directory
func (s *Session) validName(name string) bool {
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		s.status = "note names cannot contain " + string(filepath.Separator)
		return false
	}
	return true
}

func (s *Session) startRename() tea.Cmd {
	path, ok := s.selectedFile()
	if !ok {
		return nil
	}
	s.state = &renamingState{
		target: path,
		input:  newInput("new name", fileops.Stem(path)),
	}
	return textinput.Blink
}

func (s *Session) executeRename(st *renamingState) {
	s.state = &normalState{}
	name := strings.TrimSpace(st.input.Value())
	if name == "" {
		return
	}
	if !s.validName(name) {
		return
	}

	newPath := filepath.Join(filepath.Dir(st.target), fileops.WithNoteExt(name))
	if err := fileops.Rename(st.target, newPath); err != nil {
		if errors.Is(err, fileops.ErrExists) {
			logger.Info("Rename of %s to %s skipped: %v", st.target, newPath, err)
			return
		}
		s.fail("rename failed", err)
		return
	}

	s.status = "renamed to " + filepath.Base(newPath)
	s.loadFiles()
	if !s.selectPath(newPath) {
		s.fileCursor.Clamp(len(s.files))
	}
	s.refreshFilter()
}

func (s *Session) startBrowse(forTemplates bool) {
	st := &browseState{forTemplates: forTemplates, path: s.cfg.Root}
	st.entries = fileops.ListDirs(st.path)
	st.cursor = NewCursor(len(st.entries))
	s.state = st
}

func (s *Session) descendBrowser(st *browseState) {
	idx, ok := st.cursor.Index()
	if !ok || idx >= len(st.entries) {
		return
	}
	entry := st.entries[idx]
	if !entry.IsDir {
		return
	}
	st.path = fileops.Canonical(entry.Path)
	st.entries = fileops.ListDirs(st.path)
	st.cursor = NewCursor(len(st.entries))
}

// chooseFolder confirms the browsed path as root or as the template folder
func (s *Session) chooseFolder(st *browseState) {
	if st.forTemplates {
		s.cfg.TemplateRoot = st.path
		s.persist()
		s.startTemplates()
		return
	}
	s.changeRoot(st.path)
	s.state = &normalState{}
}

// startTemplates lists templates, or asks for a template folder first
func (s *Session) startTemplates() {
	if s.cfg.TemplateRoot == "" {
		s.startBrowse(true)
		return
	}
	templates := fileops.ListTemplates(s.cfg.TemplateRoot)
	s.state = &templateState{templates: templates, cursor: NewCursor(len(templates))}
}

func (s *Session) startSearch() tea.Cmd {
	s.search.input.Reset()
	s.search.typing = true
	s.state = &searchState{}
	s.applyFilter()
	return s.search.input.Focus()
}

func (s *Session) exitSearch() {
	s.search.input.Reset()
	s.search.typing = true
	s.search.filtered = nil
	s.search.matches = nil
	s.state = &normalState{}
	s.fileCursor = NewCursor(len(s.files))
}

func (s *Session) toggleLock() tea.Cmd {
	s.search.typing = !s.search.typing
	if s.search.typing {
		return s.search.input.Focus()
	}
	s.search.input.Blur()
	s.applyFilter()
	return nil
}

// applyFilter recomputes search results and selects the best match
func (s *Session) applyFilter() {
	s.search.filtered, s.search.matches = search.Filter(s.search.input.Value(), s.files)
	s.fileCursor = NewCursor(len(s.search.filtered))
}

// refreshFilter recomputes results after a file operation when a query is
// still set, leaving the file cursor alone
func (s *Session) refreshFilter() {
	if s.search.input.Value() == "" {
		return
	}
	s.search.filtered, s.search.matches = search.Filter(s.search.input.Value(), s.files)
}

func (s *Session) confirmDelete(st *confirmDeleteState) {
	if err := fileops.Remove(st.target); err != nil {
		s.fail("delete failed", err)
	} else {
		s.status = "deleted " + filepath.Base(st.target)
		logger.Info("Deleted %s", st.target)
	}
	s.state = &normalState{}
	s.loadFiles()
	s.fileCursor.Clamp(len(s.files))
	s.refreshFilter()
}

func (s *Session) executeMove(st *moveState) {
	s.state = &normalState{}
	idx, ok := st.cursor.Index()
	if !ok || idx >= len(s.cfg.Workflow) {
		return
	}
	stage := s.cfg.Workflow[idx]
	dest := filepath.Join(s.cfg.Root, stage)

	if _, err := fileops.MoveInto(st.target, dest); err != nil {
		if errors.Is(err, fileops.ErrExists) {
			s.status = fmt.Sprintf("%s already has %s", stage, filepath.Base(st.target))
			logger.Info("Move of %s into %s skipped: %v", st.target, dest, err)
			return
		}
		s.fail("move failed", err)
	} else {
		s.status = "moved to " + stage
	}

	s.loadFiles()
	s.fileCursor.Clamp(len(s.files))
	s.refreshFilter()
}

func (s *Session) applyScheme(st *settingsState) {
	s.state = &normalState{}
	idx, ok := st.cursor.Index()
	all := schemes()
	if !ok || idx >= len(all) {
		return
	}
	s.cfg.ColorScheme = all[idx]
	s.persist()
	s.status = "theme: " + s.cfg.ColorScheme.Name()
}
