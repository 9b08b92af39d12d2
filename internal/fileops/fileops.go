package fileops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/LFroesch/quill/internal/logger"
)

// NoteExt is appended to note names that don't already carry it
const NoteExt = ".md"

// ErrExists is returned when an operation would overwrite an existing file
var ErrExists = errors.New("destination already exists")

// Entry is a single item in a directory listing
type Entry struct {
	Path  string
	Name  string
	IsDir bool
}

// ListNotes returns the immediate children of root, directories first.
// Hidden entries are skipped. An unreadable root yields an empty list.
func ListNotes(root string) []Entry {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		logger.Warn("Failed to read directory %s: %v", root, err)
		return []Entry{}
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if isHidden(de.Name()) {
			continue
		}
		path := filepath.Join(root, de.Name())
		entries = append(entries, Entry{
			Path:  path,
			Name:  de.Name(),
			IsDir: isDir(path),
		})
	}

	sortEntries(entries)
	return entries
}

// ListDirs returns the directories under path for the directory browser.
// A ".." entry pointing at the parent comes first whenever path has one.
func ListDirs(path string) []Entry {
	var entries []Entry

	if parent := filepath.Dir(path); parent != path {
		entries = append(entries, Entry{Path: parent, Name: "..", IsDir: true})
	}

	dirEntries, err := os.ReadDir(path)
	if err != nil {
		logger.Warn("Failed to read directory %s: %v", path, err)
		return entries
	}

	var dirs []Entry
	for _, de := range dirEntries {
		if isHidden(de.Name()) {
			continue
		}
		full := filepath.Join(path, de.Name())
		if !isDir(full) {
			continue
		}
		dirs = append(dirs, Entry{Path: full, Name: de.Name(), IsDir: true})
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Path < dirs[j].Path })

	return append(entries, dirs...)
}

// ListTemplates returns the regular files directly inside root
func ListTemplates(root string) []Entry {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		logger.Warn("Failed to read template directory %s: %v", root, err)
		return []Entry{}
	}

	templates := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if isHidden(de.Name()) || !de.Type().IsRegular() {
			continue
		}
		templates = append(templates, Entry{Path: filepath.Join(root, de.Name()), Name: de.Name()})
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].Path < templates[j].Path })
	return templates
}

// ReadText reads a whole note into memory
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", filepath.Base(path), err)
	}
	return string(data), nil
}

// WriteText replaces the contents of a note
func WriteText(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// CreateNote creates dir/name holding content. It never overwrites an
// existing file; in that case the path is still returned alongside ErrExists.
func CreateNote(dir, name, content string) (string, error) {
	path := filepath.Join(dir, name)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return path, ErrExists
		}
		return path, fmt.Errorf("cannot create %s: %w", name, err)
	}
	if _, err := file.WriteString(content); err != nil {
		file.Close()
		return path, fmt.Errorf("cannot write %s: %w", name, err)
	}
	return path, file.Close()
}

// Rename moves oldPath to newPath, refusing to replace an existing file
func Rename(oldPath, newPath string) error {
	if oldPath == newPath {
		return ErrExists
	}
	if exists(newPath) {
		return ErrExists
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("cannot rename %s: %w", filepath.Base(oldPath), err)
	}
	return nil
}

// MoveInto moves the file at path into destDir, creating destDir if needed.
// The filename is preserved; the new path is returned.
func MoveInto(path, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("cannot create %s: %w", destDir, err)
	}

	destPath := filepath.Join(destDir, filepath.Base(path))
	if exists(destPath) {
		return destPath, ErrExists
	}

	if err := os.Rename(path, destPath); err != nil {
		// If rename fails (cross-device), copy then delete
		if err := copyFile(path, destPath); err != nil {
			return "", fmt.Errorf("cannot move %s: %w", filepath.Base(path), err)
		}
		if err := os.Remove(path); err != nil {
			return destPath, fmt.Errorf("moved %s but cannot remove original: %w", filepath.Base(path), err)
		}
	}
	return destPath, nil
}

// Remove deletes a single file from disk
func Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("cannot delete %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Canonical resolves symlinks and relative parts. On failure the cleaned
// absolute form is returned, or path itself as a last resort.
func Canonical(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// IsDir reports whether path is a directory, following symlinks
func IsDir(path string) bool {
	return isDir(path)
}

// Stem returns the file name without its extension
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WithNoteExt appends NoteExt unless name already ends with it
func WithNoteExt(name string) string {
	if strings.HasSuffix(name, NoteExt) {
		return name
	}
	return name + NoteExt
}

// sortEntries puts directories first, each group ordered by full path
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Path < entries[j].Path
	})
}

// copyFile copies a single file
func copyFile(src, dst string) error {
	srcBytes, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, srcBytes, 0644)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
