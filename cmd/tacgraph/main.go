package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tacgraph/internal/config"
	"tacgraph/internal/diag"
	"tacgraph/internal/tui"
)

func main() {
	cfg := config.Default()
	if path, err := config.DefaultPath(); err == nil {
		if cfg, err = config.Load(path); err != nil {
			fmt.Fprintln(os.Stderr, "tacgraph:", err)
		}
	}

	// Clip and expansion failures are logged to a file when TACGRAPH_DEBUG
	// names one; the terminal belongs to the UI.
	if dbg := os.Getenv("TACGRAPH_DEBUG"); dbg != "" {
		f, err := tea.LogToFile(dbg, "tacgraph")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		diag.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var m tea.Model
	if len(os.Args) > 1 {
		m = tui.NewWithPath(cfg, os.Args[1])
	} else {
		m = tui.New(cfg)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}
