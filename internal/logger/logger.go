package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logFile *os.File
	mu      sync.Mutex
	enabled = true
	log     = newLogrus()
)

const (
	maxLogSize = 5 * 1024 * 1024 // 5MB
)

func newLogrus() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02 15:04:05",
		DisableQuote:     true,
		QuoteEmptyFields: true,
	})
	return l
}

// DefaultPath returns ~/.config/quill/quill.log
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "quill", "quill.log"), nil
}

// Init opens the default log file
func Init() error {
	logPath, err := DefaultPath()
	if err != nil {
		return err
	}
	return InitAt(logPath)
}

// InitAt opens (or creates) the log file at logPath, rotating it first
// when it has grown past maxLogSize
func InitAt(logPath string) error {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}

	if info, err := os.Stat(logPath); err == nil {
		if info.Size() > maxLogSize {
			oldPath := logPath + ".old"
			os.Remove(oldPath)
			os.Rename(logPath, oldPath)
		}
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	applyOutput()
	return nil
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	applyOutput()
}

// Disable disables logging (useful for tests)
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
	applyOutput()
}

// Enable enables logging
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
	applyOutput()
}

// SetDebug toggles debug-level output
func SetDebug(debug bool) {
	if debug {
		log.SetLevel(logrus.DebugLevel)
		return
	}
	log.SetLevel(logrus.InfoLevel)
}

// Error logs an error message
func Error(format string, args ...any) {
	log.Errorf(format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...any) {
	log.Warnf(format, args...)
}

// Info logs an informational message
func Info(format string, args ...any) {
	log.Infof(format, args...)
}

// Debug logs a message only when debug output is on
func Debug(format string, args ...any) {
	log.Debugf(format, args...)
}

// applyOutput points logrus at the file, or discards when there is none.
// Callers hold mu.
func applyOutput() {
	if !enabled || logFile == nil {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(logFile)
}
