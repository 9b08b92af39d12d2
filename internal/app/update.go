package app

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update applies one message to the session. Key messages are dispatched on
// the current mode; anything else (cursor blinks) goes to the focused widget.
func (s *Session) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s.forward(msg)
	}
	s.status = ""

	switch st := s.state.(type) {
	case *normalState:
		return s.updateNormal(keyMsg)
	case *editingState:
		return s.updateEditing(st, keyMsg)
	case *namingState:
		return s.updateNaming(st, keyMsg)
	case *renamingState:
		return s.updateRenaming(st, keyMsg)
	case *browseState:
		return s.updateBrowse(st, keyMsg)
	case *templateState:
		return s.updateTemplates(st, keyMsg)
	case *searchState:
		return s.updateSearch(keyMsg)
	case *confirmDeleteState:
		return s.updateConfirmDelete(st, keyMsg)
	case *moveState:
		return s.updateMove(st, keyMsg)
	case *settingsState:
		return s.updateSettings(st, keyMsg)
	}
	return nil
}

func (s *Session) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch st := s.state.(type) {
	case *editingState:
		st.buffer, cmd = st.buffer.Update(msg)
	case *namingState:
		st.input, cmd = st.input.Update(msg)
	case *renamingState:
		st.input, cmd = st.input.Update(msg)
	case *searchState:
		s.search.input, cmd = s.search.input.Update(msg)
	}
	return cmd
}

func (s *Session) updateNormal(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Quit):
		return tea.Quit
	case key.Matches(msg, s.keys.NewNote):
		s.state = &namingState{input: newInput("note name", "")}
		return textinput.Blink
	case key.Matches(msg, s.keys.ChangeDir):
		s.startBrowse(false)
	case key.Matches(msg, s.keys.Template):
		s.startTemplates()
	case key.Matches(msg, s.keys.Search):
		return s.startSearch()
	case key.Matches(msg, s.keys.Settings):
		cursor := Cursor{}
		cursor.Select(s.cfg.ColorScheme.Index(), len(schemes()))
		s.state = &settingsState{cursor: cursor}
	case key.Matches(msg, s.keys.Up):
		s.fileCursor.Prev(len(s.Files()))
	case key.Matches(msg, s.keys.Down):
		s.fileCursor.Next(len(s.Files()))
	case key.Matches(msg, s.keys.Left):
		s.navigateUp()
	case key.Matches(msg, s.keys.Right), key.Matches(msg, s.keys.Enter):
		return s.openSelected()
	default:
		return s.fileAction(msg)
	}
	return nil
}

// fileAction handles the keys that act on the selected file, shared by
// Normal and locked Search
func (s *Session) fileAction(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Delete):
		if path, ok := s.selectedFile(); ok {
			s.state = &confirmDeleteState{target: path}
		}
	case key.Matches(msg, s.keys.Move):
		if path, ok := s.selectedFile(); ok {
			s.state = &moveState{target: path, cursor: NewCursor(len(s.cfg.Workflow))}
		}
	case key.Matches(msg, s.keys.Rename):
		return s.startRename()
	case key.Matches(msg, s.keys.Open):
		s.openExternal()
	}
	return nil
}

func (s *Session) updateEditing(st *editingState, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Back):
		s.stopEditing(st)
		return nil
	case key.Matches(msg, s.keys.Export):
		s.export(st.buffer.Value())
		return nil
	}
	var cmd tea.Cmd
	st.buffer, cmd = st.buffer.Update(msg)
	return cmd
}

func (s *Session) updateNaming(st *namingState, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Back):
		s.state = &normalState{}
		return nil
	case key.Matches(msg, s.keys.Enter):
		return s.createNote(st)
	}
	var cmd tea.Cmd
	st.input, cmd = st.input.Update(msg)
	return cmd
}

func (s *Session) updateRenaming(st *renamingState, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Back):
		s.state = &normalState{}
		return nil
	case key.Matches(msg, s.keys.Enter):
		s.executeRename(st)
		return nil
	}
	var cmd tea.Cmd
	st.input, cmd = st.input.Update(msg)
	return cmd
}

func (s *Session) updateBrowse(st *browseState, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Back):
		s.state = &normalState{}
	case key.Matches(msg, s.keys.Select):
		s.chooseFolder(st)
	case key.Matches(msg, s.keys.Enter):
		s.descendBrowser(st)
	case key.Matches(msg, s.keys.Up):
		st.cursor.Prev(len(st.entries))
	case key.Matches(msg, s.keys.Down):
		st.cursor.Next(len(st.entries))
	}
	return nil
}

func (s *Session) updateTemplates(st *templateState, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Back):
		s.state = &normalState{}
	case key.Matches(msg, s.keys.Enter):
		if idx, ok := st.cursor.Index(); ok && idx < len(st.templates) {
			s.state = &namingState{
				template: st.templates[idx].Path,
				input:    newInput("note name", ""),
			}
			return textinput.Blink
		}
	case key.Matches(msg, s.keys.Up):
		st.cursor.Prev(len(st.templates))
	case key.Matches(msg, s.keys.Down):
		st.cursor.Next(len(st.templates))
	}
	return nil
}

func (s *Session) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Back):
		s.exitSearch()
		return nil
	case key.Matches(msg, s.keys.Up):
		s.fileCursor.Prev(len(s.search.filtered))
		return nil
	case key.Matches(msg, s.keys.Down):
		s.fileCursor.Next(len(s.search.filtered))
		return nil
	case key.Matches(msg, s.keys.ToggleLock):
		return s.toggleLock()
	}

	if s.search.typing {
		if key.Matches(msg, s.keys.Enter) {
			return s.toggleLock()
		}
		before := s.search.input.Value()
		var cmd tea.Cmd
		s.search.input, cmd = s.search.input.Update(msg)
		if s.search.input.Value() != before {
			s.applyFilter()
		}
		return cmd
	}

	switch {
	case key.Matches(msg, s.keys.Unlock):
		return s.toggleLock()
	case key.Matches(msg, s.keys.Left):
		s.navigateUp()
	case key.Matches(msg, s.keys.Right), key.Matches(msg, s.keys.Enter):
		return s.openSelected()
	default:
		return s.fileAction(msg)
	}
	return nil
}

func (s *Session) updateConfirmDelete(st *confirmDeleteState, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Confirm):
		s.confirmDelete(st)
	case key.Matches(msg, s.keys.Decline):
		s.state = &normalState{}
	}
	return nil
}

func (s *Session) updateMove(st *moveState, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Back):
		s.state = &normalState{}
	case key.Matches(msg, s.keys.Enter):
		s.executeMove(st)
	case key.Matches(msg, s.keys.Up):
		st.cursor.Prev(len(s.cfg.Workflow))
	case key.Matches(msg, s.keys.Down):
		st.cursor.Next(len(s.cfg.Workflow))
	}
	return nil
}

func (s *Session) updateSettings(st *settingsState, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Back):
		s.state = &normalState{}
	case key.Matches(msg, s.keys.Enter):
		s.applyScheme(st)
	case key.Matches(msg, s.keys.Up):
		st.cursor.Prev(len(schemes()))
	case key.Matches(msg, s.keys.Down):
		st.cursor.Next(len(schemes()))
	}
	return nil
}
