package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LFroesch/quill/internal/theme"
)

func TestLoadDefaultConfig(t *testing.T) {
	// Create a temporary directory for testing
	tempDir := t.TempDir()
	homeDir := filepath.Join(tempDir, "home")
	os.Setenv("HOME", homeDir)
	defer os.Unsetenv("HOME")

	cfg := Load()

	if cfg == nil {
		t.Fatal("Load() returned nil")
	}
	if cfg.Root != "." {
		t.Errorf("Root = %q, want \".\"", cfg.Root)
	}
	if cfg.TemplateRoot != "" {
		t.Errorf("TemplateRoot = %q, want empty", cfg.TemplateRoot)
	}
	if cfg.ColorScheme != theme.Green {
		t.Errorf("ColorScheme = %v, want Green", cfg.ColorScheme)
	}
	if strings.Join(cfg.Workflow, ",") != strings.Join(DefaultWorkflow, ",") {
		t.Errorf("Workflow = %v, want %v", cfg.Workflow, DefaultWorkflow)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	// Create a temporary directory for testing
	tempDir := t.TempDir()
	homeDir := filepath.Join(tempDir, "home")
	os.Setenv("HOME", homeDir)
	defer os.Unsetenv("HOME")

	templates := filepath.Join(tempDir, "templates")
	os.Mkdir(templates, 0755)

	cfg := &Config{
		Root:         "/test/notes",
		TemplateRoot: templates,
		ColorScheme:  theme.Amber,
		Workflow:     []string{"Draft", "Published"},
	}

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	configPath, _ := GetConfigPath()
	if !Exists(configPath) {
		t.Fatalf("config file not written at %s", configPath)
	}

	loadedCfg := Load()

	if loadedCfg.Root != cfg.Root {
		t.Errorf("Root mismatch: got %s, want %s", loadedCfg.Root, cfg.Root)
	}
	if loadedCfg.TemplateRoot != cfg.TemplateRoot {
		t.Errorf("TemplateRoot mismatch: got %s, want %s", loadedCfg.TemplateRoot, cfg.TemplateRoot)
	}
	if loadedCfg.ColorScheme != cfg.ColorScheme {
		t.Errorf("ColorScheme mismatch: got %v, want %v", loadedCfg.ColorScheme, cfg.ColorScheme)
	}
	if strings.Join(loadedCfg.Workflow, ",") != "Draft,Published" {
		t.Errorf("Workflow mismatch: got %v", loadedCfg.Workflow)
	}
}

func TestFormat(t *testing.T) {
	cfg := &Config{Root: "/notes", ColorScheme: theme.BrightRed, Workflow: []string{"Uploaded"}}
	want := "root=/notes\ncolor_scheme=BrightRed\nworkflow_0=/notes/Uploaded\n"
	if got := Format(cfg); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestParse(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name     string
		input    string
		root     string
		template string
		scheme   theme.Scheme
		workflow []string
	}{
		{
			name:     "empty",
			input:    "",
			root:     ".",
			scheme:   theme.Green,
			workflow: DefaultWorkflow,
		},
		{
			name:     "whitespace trimmed",
			input:    "  root = /home/me/notes  \ncolor_scheme= Blue\n",
			root:     "/home/me/notes",
			scheme:   theme.Blue,
			workflow: DefaultWorkflow,
		},
		{
			name:     "malformed and unknown lines ignored",
			input:    "garbage\nfoo=bar\nroot=/x\n",
			root:     "/x",
			scheme:   theme.Green,
			workflow: DefaultWorkflow,
		},
		{
			name:     "unknown scheme falls back",
			input:    "color_scheme=Purple\n",
			root:     ".",
			scheme:   theme.Green,
			workflow: DefaultWorkflow,
		},
		{
			name:     "template root must be a directory",
			input:    "template_root=" + filepath.Join(tempDir, "missing") + "\n",
			root:     ".",
			scheme:   theme.Green,
			workflow: DefaultWorkflow,
		},
		{
			name:     "template root accepted",
			input:    "template_root=" + tempDir + "\n",
			root:     ".",
			template: tempDir,
			scheme:   theme.Green,
			workflow: DefaultWorkflow,
		},
		{
			name:     "workflow ordered by index",
			input:    "workflow_1=/n/Second\nworkflow_0=/n/First\nworkflow_x=/n/Bad\nworkflow_2=/n/First\n",
			root:     ".",
			scheme:   theme.Green,
			workflow: []string{"First", "Second"},
		},
		{
			name:     "value may contain equals",
			input:    "root=/tmp/a=b\n",
			root:     "/tmp/a=b",
			scheme:   theme.Green,
			workflow: DefaultWorkflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if cfg.Root != tt.root {
				t.Errorf("Root = %q, want %q", cfg.Root, tt.root)
			}
			if cfg.TemplateRoot != tt.template {
				t.Errorf("TemplateRoot = %q, want %q", cfg.TemplateRoot, tt.template)
			}
			if cfg.ColorScheme != tt.scheme {
				t.Errorf("ColorScheme = %v, want %v", cfg.ColorScheme, tt.scheme)
			}
			if strings.Join(cfg.Workflow, ",") != strings.Join(tt.workflow, ",") {
				t.Errorf("Workflow = %v, want %v", cfg.Workflow, tt.workflow)
			}
		})
	}
}

func TestDefaultWorkflowNotShared(t *testing.T) {
	cfg := Default()
	cfg.Workflow[0] = "changed"
	if DefaultWorkflow[0] != "Uploaded" {
		t.Error("Default() must copy DefaultWorkflow")
	}
}

func TestSaveToCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "quill.conf")
	if err := SaveTo(path, Default()); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}
	if !Exists(path) {
		t.Error("config file not created")
	}
	if LoadFrom(path).Root != "." {
		t.Error("round trip of default config failed")
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name     string
		slice    []string
		item     string
		expected bool
	}{
		{"found", []string{"a", "b", "c"}, "b", true},
		{"not found", []string{"a", "b", "c"}, "d", false},
		{"empty slice", []string{}, "a", false},
		{"nil slice", nil, "a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := contains(tt.slice, tt.item)
			if result != tt.expected {
				t.Errorf("contains(%v, %s) = %v, want %v", tt.slice, tt.item, result, tt.expected)
			}
		})
	}
}
