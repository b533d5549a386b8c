// Command roipaint is an interactive terminal painter for microscopy
// regions of interest. Annotations are painted with the mouse on a
// braille canvas and saved as JSON sessions.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	roi "github.com/microvis/roi"
	"github.com/microvis/roi/internal/tui"
)

func main() {
	var (
		configPath = flag.String("config", "", "configuration file (default: search for roipaint.yaml)")
		session    = flag.String("session", "", "session file to open and save (overrides config)")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "roipaint:", err)
		os.Exit(1)
	}
	if *session != "" {
		cfg.Session.Path = *session
	}
	if flag.NArg() > 0 {
		cfg.Session.Path = flag.Arg(0)
	}

	palette, err := cfg.colours()
	if err != nil {
		fmt.Fprintln(os.Stderr, "roipaint:", err)
		os.Exit(1)
	}

	// the TUI owns the terminal, so logs go to a file or nowhere
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "roipaint:", err)
			os.Exit(1)
		}
		defer f.Close()
		roi.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	m := tui.New(tui.Config{
		BrushRadius: cfg.Brush.Radius,
		SessionPath: cfg.Session.Path,
		AutosaveDir: cfg.Session.AutosaveDir,
		Palette:     palette,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "roipaint:", err)
		os.Exit(1)
	}
}
