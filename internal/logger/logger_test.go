package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cannot read log: %v", err)
	}
	return string(data)
}

func TestInitAtWritesLevels(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "quill.log")
	if err := InitAt(logPath); err != nil {
		t.Fatalf("InitAt failed: %v", err)
	}
	defer Close()

	Warn("rename of %s refused", "a.md")
	Error("write failed: %v", os.ErrPermission)
	Debug("hidden %d", 1)

	content := readLog(t, logPath)
	if !strings.Contains(content, "rename of a.md refused") {
		t.Errorf("warning missing from log: %q", content)
	}
	if !strings.Contains(content, "level=error") {
		t.Errorf("error level missing from log: %q", content)
	}
	if strings.Contains(content, "hidden 1") {
		t.Error("debug message written while debug is off")
	}

	SetDebug(true)
	defer SetDebug(false)
	Debug("visible %d", 2)
	if !strings.Contains(readLog(t, logPath), "visible 2") {
		t.Error("debug message missing after SetDebug(true)")
	}
}

func TestDisable(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "quill.log")
	if err := InitAt(logPath); err != nil {
		t.Fatalf("InitAt failed: %v", err)
	}
	defer Close()

	Disable()
	Warn("should not appear")
	Enable()
	Warn("should appear")

	content := readLog(t, logPath)
	if strings.Contains(content, "should not appear") {
		t.Error("message logged while disabled")
	}
	if !strings.Contains(content, "should appear") {
		t.Error("message missing after Enable")
	}
}

func TestRotation(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "quill.log")
	big := make([]byte, maxLogSize+1)
	if err := os.WriteFile(logPath, big, 0644); err != nil {
		t.Fatal(err)
	}

	if err := InitAt(logPath); err != nil {
		t.Fatalf("InitAt failed: %v", err)
	}
	defer Close()

	if _, err := os.Stat(logPath + ".old"); err != nil {
		t.Errorf("expected rotated log: %v", err)
	}
	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Errorf("fresh log size = %d, want 0", info.Size())
	}
}

func TestLoggingWithoutInit(t *testing.T) {
	Close()
	// Must be a silent no-op
	Error("nobody listening")
	Warn("nobody listening")
}
