package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/LFroesch/quill/internal/logger"
	"github.com/LFroesch/quill/internal/theme"
)

// DefaultWorkflow lists the built-in move destinations, in display order
var DefaultWorkflow = []string{"Uploaded", "Rendered", "Ready to Upload", "Printed"}

// Config holds all persisted quill settings
type Config struct {
	Root         string       // directory shown in the main list
	TemplateRoot string       // empty when no template folder is set
	ColorScheme  theme.Scheme // cosmetic only
	Workflow     []string     // stage names, resolved to Root/<name> when moving
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Root:        ".",
		ColorScheme: theme.Default,
		Workflow:    append([]string(nil), DefaultWorkflow...),
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "quill", "quill.conf"), nil
}

// Exists reports whether a config file is present at path
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads config from ~/.config/quill/quill.conf
func Load() *Config {
	configPath, err := GetConfigPath()
	if err != nil {
		logger.Error("Failed to get home directory: %v", err)
		return Default()
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the config file at path. Missing files and missing keys
// fall back to defaults; nothing here is fatal.
func LoadFrom(path string) *Config {
	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read config file %s: %v, using defaults", path, err)
		}
		return Default()
	}
	defer file.Close()

	cfg, err := Parse(file)
	if err != nil {
		logger.Warn("Failed to parse config file %s: %v, using defaults", path, err)
		return Default()
	}
	return cfg
}

// Parse reads key=value lines. Unknown keys and lines without '=' are ignored.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	stages := map[int]string{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch {
		case key == "root":
			if value != "" {
				cfg.Root = value
			}
		case key == "template_root":
			// Only accepted when it still points at a directory
			if info, err := os.Stat(value); err == nil && info.IsDir() {
				cfg.TemplateRoot = value
			} else if value != "" {
				logger.Warn("Ignoring template_root %s: not a directory", value)
			}
		case key == "color_scheme":
			cfg.ColorScheme = theme.Parse(value)
		case strings.HasPrefix(key, "workflow_"):
			idx, err := strconv.Atoi(strings.TrimPrefix(key, "workflow_"))
			if err != nil || idx < 0 || value == "" {
				continue
			}
			stages[idx] = filepath.Base(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(stages) > 0 {
		cfg.Workflow = orderedStages(stages)
	}
	return cfg, nil
}

// orderedStages returns stage names sorted by their workflow index, dropping duplicates
func orderedStages(stages map[int]string) []string {
	indexes := make([]int, 0, len(stages))
	for idx := range stages {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	names := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		if !contains(names, stages[idx]) {
			names = append(names, stages[idx])
		}
	}
	return names
}

// Format renders cfg in the on-disk key=value form
func Format(cfg *Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "root=%s\n", cfg.Root)
	if cfg.TemplateRoot != "" {
		fmt.Fprintf(&b, "template_root=%s\n", cfg.TemplateRoot)
	}
	fmt.Fprintf(&b, "color_scheme=%s\n", cfg.ColorScheme)
	for i, stage := range cfg.Workflow {
		fmt.Fprintf(&b, "workflow_%d=%s\n", i, filepath.Join(cfg.Root, stage))
	}
	return b.String()
}

// Save writes config to ~/.config/quill/quill.conf
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		logger.Error("Failed to get home directory: %v", err)
		return fmt.Errorf("cannot get home directory: %w", err)
	}
	return SaveTo(configPath, cfg)
}

// SaveTo overwrites the config file at path with the full contents of cfg
func SaveTo(path string, cfg *Config) error {
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		logger.Error("Failed to create config directory %s: %v", configDir, err)
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(Format(cfg)), 0644); err != nil {
		logger.Error("Failed to write config file %s: %v", path, err)
		return fmt.Errorf("cannot write config file: %w", err)
	}

	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
