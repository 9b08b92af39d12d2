package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LFroesch/quill/internal/app"
	"github.com/LFroesch/quill/internal/config"
	"github.com/LFroesch/quill/internal/fileops"
)

func newTestModel(t *testing.T, files map[string]string) (*model, string) {
	t.Helper()
	root := fileops.Canonical(t.TempDir())
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	cfg := config.Default()
	cfg.Root = root
	return newModel(app.New(app.Options{Config: cfg})), root
}

func resize(m *model, w, h int) tea.Cmd {
	_, cmd := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return cmd
}

func TestViewBeforeResize(t *testing.T) {
	m, _ := newTestModel(t, nil)
	assert.Equal(t, "Loading...", m.View())
}

func TestResizeUsesMinimumDimensions(t *testing.T) {
	m, _ := newTestModel(t, nil)
	resize(m, 10, 5)

	assert.Equal(t, minTerminalWidth, m.getSafeWidth())
	assert.Equal(t, minTerminalHeight, m.getSafeHeight())
	assert.Equal(t, minTerminalHeight-uiOverhead, m.getContentHeight())
}

func TestPreviewAfterCursorSettles(t *testing.T) {
	m, root := newTestModel(t, map[string]string{"b.txt": "hello preview"})
	cmd := resize(m, 100, 30)
	require.NotNil(t, cmd, "resize should schedule a preview")
	assert.Contains(t, m.View(), "Loading preview...")

	m.Update(previewUpdateMsg{path: filepath.Join(root, "b.txt")})
	assert.Equal(t, filepath.Join(root, "b.txt"), m.preview.path)
	assert.Contains(t, m.View(), "hello preview")
	assert.Nil(t, m.schedulePreview(), "cached entry needs no new preview")
}

func TestStalePreviewIgnored(t *testing.T) {
	m, root := newTestModel(t, map[string]string{"a.txt": "first", "b.txt": "second"})
	resize(m, 100, 30)

	m.Update(previewUpdateMsg{path: filepath.Join(root, "b.txt")})
	assert.Empty(t, m.preview.path, "preview for an unselected entry must be dropped")
}

func TestEditingInvalidatesPreview(t *testing.T) {
	m, root := newTestModel(t, map[string]string{"a.txt": "body"})
	resize(m, 100, 30)
	m.Update(previewUpdateMsg{path: filepath.Join(root, "a.txt")})
	require.NotEmpty(t, m.preview.path)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, app.Editing, m.session.Mode())
	assert.Contains(t, m.View(), "a.txt")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, app.Normal, m.session.Mode())
	assert.Empty(t, m.preview.path)
	assert.NotNil(t, cmd)
}

func TestStatusBarShowsMode(t *testing.T) {
	m, _ := newTestModel(t, map[string]string{"a.md": "x"})
	resize(m, 120, 30)

	view := m.View()
	assert.Contains(t, view, "NAVIGATE")
	assert.Contains(t, view, "1/1")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	view = m.View()
	assert.Contains(t, view, "SEARCH")
	assert.Contains(t, view, "[TYPING]")
}

func TestDialogsRender(t *testing.T) {
	m, _ := newTestModel(t, map[string]string{"a.md": "x"})
	resize(m, 100, 30)

	tests := []struct {
		key  string
		want string
	}{
		{"d", "Delete Note?"},
		{"m", "Ready to Upload"},
		{"r", "Rename Note"},
		{"s", "Classic Green"},
		{"n", "New Note"},
		{"c", "Change Directory"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)})
			assert.Contains(t, m.View(), tt.want)
			m.Update(tea.KeyMsg{Type: tea.KeyEsc})
			require.Equal(t, app.Normal, m.session.Mode())
		})
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name              string
		cursor, n, height int
		start, end        int
	}{
		{"fits", 2, 5, 10, 0, 5},
		{"top", 0, 50, 10, 0, 8},
		{"middle", 25, 50, 10, 21, 29},
		{"bottom", 49, 50, 10, 42, 50},
		{"empty", 0, 0, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := visibleRange(tt.cursor, tt.n, tt.height)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
			if tt.n > 0 {
				assert.True(t, tt.cursor >= start && tt.cursor < end, "cursor off screen")
			}
		})
	}
}

func TestWrapTextToLines(t *testing.T) {
	lines := wrapTextToLines("short\n"+strings.Repeat("x", 25), 10)
	assert.Equal(t, []string{"short", "xxxxxxxxxx", "xxxxxxxxxx", "xxxxx"}, lines)

	assert.Equal(t, []string{"    tab"}, wrapTextToLines("\ttab", 20))
}

func TestWriteWelcome(t *testing.T) {
	root := t.TempDir()
	writeWelcome(root)

	data, err := os.ReadFile(filepath.Join(root, welcomeFile))
	require.NoError(t, err)
	assert.Equal(t, welcomeContent, string(data))

	// An existing welcome note is never overwritten
	require.NoError(t, os.WriteFile(filepath.Join(root, welcomeFile), []byte("mine"), 0644))
	writeWelcome(root)
	data, err = os.ReadFile(filepath.Join(root, welcomeFile))
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))
}

func TestPreviewEntry(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < maxPreviewItems+3; i++ {
		name := filepath.Join(root, "dir", strings.Repeat("n", i+1)+".md")
		require.NoError(t, os.MkdirAll(filepath.Dir(name), 0755))
		require.NoError(t, os.WriteFile(name, nil, 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "empty.txt"), []byte("  \n"), 0644))

	dir := previewEntry(fileops.Entry{Path: filepath.Join(root, "dir"), Name: "dir", IsDir: true}, 40)
	assert.Contains(t, dir, "... and 3 more")

	empty := previewEntry(fileops.Entry{Path: filepath.Join(root, "empty.txt"), Name: "empty.txt"}, 40)
	assert.Equal(t, "(empty note)", empty)

	missing := previewEntry(fileops.Entry{Path: filepath.Join(root, "gone.txt"), Name: "gone.txt"}, 40)
	assert.True(t, strings.HasPrefix(missing, "Cannot read file"))
}

func TestTruncateBytesKeepsRunes(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"short", 10, "short"},
		{"abc", 2, "ab"},
		{"aé", 2, "a"},
		{"aé", 3, "aé"},
		{"日本", 4, "日"},
	}

	for _, tt := range tests {
		got := truncateBytes(tt.input, tt.n)
		assert.Equal(t, tt.want, got, "truncateBytes(%q, %d)", tt.input, tt.n)
		assert.True(t, utf8.ValidString(got))
	}
}

func TestSystemClock(t *testing.T) {
	started := time.Date(2026, 3, 1, 9, 3, 37, 0, time.Local)
	now := started.Add(90*time.Second + 400*time.Millisecond)
	assert.Equal(t, "09:05:07 UP 1m30s", systemClock(now, started))
}

func TestHeaderShowsClock(t *testing.T) {
	m, _ := newTestModel(t, nil)
	resize(m, 100, 30)
	assert.Contains(t, m.View(), " UP ")
}

func TestBannerOnTallTerminals(t *testing.T) {
	m, _ := newTestModel(t, nil)

	resize(m, 100, 30)
	assert.Zero(t, m.bannerHeight())
	assert.NotContains(t, m.View(), "▀▀")

	resize(m, 100, 50)
	assert.Equal(t, 6, m.bannerHeight())
	assert.Equal(t, 50-uiOverhead-6, m.getContentHeight())
	assert.Contains(t, m.View(), "▀▀")
}

func TestSettingsPreviewFollowsCursor(t *testing.T) {
	m, _ := newTestModel(t, nil)
	resize(m, 100, 30)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Contains(t, m.View(), "▶ Classic Green")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Contains(t, m.View(), "▶ Terminal Blue")
}
