package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/LFroesch/quill/internal/app"
	"github.com/LFroesch/quill/internal/config"
	"github.com/LFroesch/quill/internal/fileops"
	"github.com/LFroesch/quill/internal/logger"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var debug bool

	cmd := &cobra.Command{
		Use:          "quill [directory]",
		Short:        "A retro terminal notes manager",
		Long:         `Quill browses a folder of markdown notes, edits them in place and moves them between workflow stages.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return run(configPath, dir, debug)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/quill/quill.conf)")
	cmd.Flags().BoolVar(&debug, "debug", false, "write debug messages to the log")
	return cmd
}

func run(configPath, dir string, debug bool) error {
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	defer logger.Close()
	logger.SetDebug(debug)

	if configPath == "" {
		path, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("cannot locate config: %w", err)
		}
		configPath = path
	}

	firstRun := !config.Exists(configPath)
	cfg := config.LoadFrom(configPath)
	if dir != "" && !fileops.IsDir(dir) {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if firstRun {
		root := cfg.Root
		if dir != "" {
			root = dir
		}
		writeWelcome(fileops.Canonical(root))
	}

	session := app.New(app.Options{
		Config:       cfg,
		ConfigPath:   configPath,
		RootOverride: dir,
		Exporter:     clipboardExporter{},
		Opener:       systemOpener{},
	})

	if firstRun {
		if err := session.SaveConfig(); err != nil {
			logger.Warn("Failed to save initial config: %v", err)
		}
	}
	logger.Info("Starting quill %s in %s", version, session.Root())

	p := tea.NewProgram(newModel(session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui failed: %w", err)
	}
	return nil
}
