package app

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/LFroesch/quill/internal/config"
	"github.com/LFroesch/quill/internal/fileops"
	"github.com/LFroesch/quill/internal/logger"
	"github.com/LFroesch/quill/internal/search"
	"github.com/LFroesch/quill/internal/theme"
)

// Exporter receives the editor text on export (clipboard in the real app)
type Exporter interface {
	Export(text string) error
}

// Opener hands a note to the system's default application
type Opener interface {
	Open(path string) error
}

// Options configures a new Session
type Options struct {
	Config     *config.Config
	ConfigPath string // settings are not persisted when empty
	Exporter   Exporter
	Opener     Opener
	Keys       *KeyMap

	// RootOverride lists this directory instead of the configured root for
	// the session without persisting it
	RootOverride string
}

// query is the search text plus its current results
type query struct {
	input    textinput.Model
	typing   bool
	filtered []fileops.Entry
	matches  []search.MatchResult
}

// Session holds all mutable state for one run of the application
type Session struct {
	cfg        *config.Config
	configPath string
	savedRoot  string // persisted root while an override is listed
	exporter   Exporter
	opener     Opener
	keys       KeyMap

	state      state
	files      []fileops.Entry
	fileCursor Cursor
	search     query
	status     string

	editorWidth  int
	editorHeight int
}

// New builds a session from loaded config and lists its root
func New(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}

	s := &Session{
		cfg:        cfg,
		configPath: opts.ConfigPath,
		exporter:   opts.Exporter,
		opener:     opts.Opener,
		keys:       keys,
		state:      &normalState{},
	}
	if opts.RootOverride != "" {
		s.savedRoot = fileops.Canonical(s.cfg.Root)
		s.cfg.Root = opts.RootOverride
	}
	s.cfg.Root = fileops.Canonical(s.cfg.Root)
	if len(s.cfg.Workflow) == 0 {
		s.cfg.Workflow = append([]string(nil), config.DefaultWorkflow...)
	}
	s.search.input = newInput("type to filter", "")
	s.search.typing = true
	s.loadFiles()
	s.fileCursor = NewCursor(len(s.files))
	return s
}

// Mode returns the current interaction state
func (s *Session) Mode() Mode {
	return s.state.Mode()
}

// Root returns the directory whose notes are listed
func (s *Session) Root() string {
	return s.cfg.Root
}

// TemplateRoot returns the template folder, or "" if none is set
func (s *Session) TemplateRoot() string {
	return s.cfg.TemplateRoot
}

// Scheme returns the active color scheme
func (s *Session) Scheme() theme.Scheme {
	return s.cfg.ColorScheme
}

// Keys returns the active key bindings
func (s *Session) Keys() KeyMap {
	return s.keys
}

// Status returns the message describing the last operation or failure
func (s *Session) Status() string {
	return s.status
}

// SetEditorSize sets the dimensions used for the edit buffer
func (s *Session) SetEditorSize(width, height int) {
	s.editorWidth = width
	s.editorHeight = height
	if ed, ok := s.state.(*editingState); ok {
		ed.buffer.SetWidth(width)
		ed.buffer.SetHeight(height)
	}
}

// Files returns the active file list: search results while searching,
// otherwise every entry in root
func (s *Session) Files() []fileops.Entry {
	if s.Mode() == Search {
		return s.search.filtered
	}
	return s.files
}

// Matches returns highlight positions aligned with Files() during a search
func (s *Session) Matches() []search.MatchResult {
	if s.Mode() == Search {
		return s.search.matches
	}
	return nil
}

// Cursor returns the file list selection
func (s *Session) Cursor() Cursor {
	return s.fileCursor
}

// Selected returns the highlighted entry of the active file list
func (s *Session) Selected() (fileops.Entry, bool) {
	files := s.Files()
	idx, ok := s.fileCursor.Index()
	if !ok || idx >= len(files) {
		return fileops.Entry{}, false
	}
	return files[idx], true
}

// Query returns the search text and whether it is still being typed
func (s *Session) Query() (string, bool) {
	return s.search.input.Value(), s.search.typing
}

// QueryView renders the search input
func (s *Session) QueryView() string {
	return s.search.input.View()
}

// EditingPath returns the file open in the editor
func (s *Session) EditingPath() string {
	if ed, ok := s.state.(*editingState); ok {
		return ed.path
	}
	return ""
}

// EditorContent returns the current edit buffer text
func (s *Session) EditorContent() string {
	if ed, ok := s.state.(*editingState); ok {
		return ed.buffer.Value()
	}
	return ""
}

// EditorView renders the edit buffer
func (s *Session) EditorView() string {
	if ed, ok := s.state.(*editingState); ok {
		return ed.buffer.View()
	}
	return ""
}

// InputView renders the naming or renaming prompt
func (s *Session) InputView() string {
	switch st := s.state.(type) {
	case *namingState:
		return st.input.View()
	case *renamingState:
		return st.input.View()
	}
	return ""
}

// InputValue returns the text typed into the naming or renaming prompt
func (s *Session) InputValue() string {
	switch st := s.state.(type) {
	case *namingState:
		return st.input.Value()
	case *renamingState:
		return st.input.Value()
	}
	return ""
}

// PendingTemplate returns the template the note being named will copy
func (s *Session) PendingTemplate() string {
	if st, ok := s.state.(*namingState); ok {
		return st.template
	}
	return ""
}

// Target returns the file a pending delete, move or rename applies to
func (s *Session) Target() string {
	switch st := s.state.(type) {
	case *confirmDeleteState:
		return st.target
	case *moveState:
		return st.target
	case *renamingState:
		return st.target
	}
	return ""
}

// Browser returns the directory browser's path, entries and selection
func (s *Session) Browser() (string, []fileops.Entry, Cursor) {
	if st, ok := s.state.(*browseState); ok {
		return st.path, st.entries, st.cursor
	}
	return "", nil, Cursor{}
}

// Templates returns the template list and its selection
func (s *Session) Templates() ([]fileops.Entry, Cursor) {
	if st, ok := s.state.(*templateState); ok {
		return st.templates, st.cursor
	}
	return nil, Cursor{}
}

// MoveDestinations returns the workflow stage names
func (s *Session) MoveDestinations() []string {
	return s.cfg.Workflow
}

// MoveCursor returns the highlighted workflow stage
func (s *Session) MoveCursor() Cursor {
	if st, ok := s.state.(*moveState); ok {
		return st.cursor
	}
	return Cursor{}
}

// SettingsCursor returns the highlighted entry of theme.All()
func (s *Session) SettingsCursor() Cursor {
	if st, ok := s.state.(*settingsState); ok {
		return st.cursor
	}
	return Cursor{}
}

// loadFiles relists root
func (s *Session) loadFiles() {
	s.files = fileops.ListNotes(s.cfg.Root)
}

// SaveConfig writes the config file when a path is configured. A root
// override given at startup is not written; the configured root is kept.
func (s *Session) SaveConfig() error {
	if s.configPath == "" {
		return nil
	}
	cfg := *s.cfg
	if s.savedRoot != "" {
		cfg.Root = s.savedRoot
	}
	return config.SaveTo(s.configPath, &cfg)
}

func (s *Session) persist() {
	if err := s.SaveConfig(); err != nil {
		s.fail("config save failed", err)
	}
}

// fail records a swallowed error on the status line and in the log
func (s *Session) fail(what string, err error) {
	logger.Warn("%s: %v", what, err)
	s.status = what + ": " + err.Error()
}
