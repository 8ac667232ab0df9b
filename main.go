// Package main is the entry point for studiomon, the terminal monitoring
// dashboard for the studio media-processing pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopxl/beep/v2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"github.com/mitchschoolvic/Studio-Pipeline-sub001/config"
	"github.com/mitchschoolvic/Studio-Pipeline-sub001/logging"
	"github.com/mitchschoolvic/Studio-Pipeline-sub001/player"
	"github.com/mitchschoolvic/Studio-Pipeline-sub001/session"
	"github.com/mitchschoolvic/Studio-Pipeline-sub001/ui"
	"github.com/mitchschoolvic/Studio-Pipeline-sub001/waveform"
)

func run() error {
	apiFlag := flag.String("api", "", "pipeline API base URL (overrides config)")
	feedFlag := flag.String("feed", "", "pipeline websocket feed URL (overrides config)")
	cfgFlag := flag.String("config", "", "config file path")
	logFlag := flag.String("log", "", "log file path (overrides config)")
	listFlag := flag.Bool("list", false, "print the session table and exit")
	flag.Parse()

	cfgPath := *cfgFlag
	if cfgPath == "" {
		var err error
		if cfgPath, err = config.DefaultPath(); err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if *apiFlag != "" {
		cfg.API = *apiFlag
	}
	if *feedFlag != "" {
		cfg.Feed = *feedFlag
	}
	if *logFlag != "" {
		cfg.LogFile = *logFlag
	}

	log := logging.Nop()
	if cfg.LogFile != "" {
		var closer interface{ Close() error }
		if log, closer, err = logging.New(cfg.LogFile); err != nil {
			return err
		}
		defer closer.Close()
	}

	client := session.NewClient(cfg.API, log)

	// Plain table output for scripts and pipes; the TUI needs a terminal.
	if *listFlag || !isatty.IsTerminal(os.Stdout.Fd()) {
		return printSessions(client)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed := session.NewFeed(cfg.Feed, log)
	go feed.Run(ctx)

	store := waveform.NewStore(client, log)

	p := player.New(beep.SampleRate(44100))
	defer p.Close()

	m := ui.NewModel(cfg, cfgPath, log, client, feed, store, p)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// printSessions renders the session listing as a table on stdout.
func printSessions(client *session.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sessions, err := client.Sessions(ctx)
	if err != nil {
		return err
	}
	session.Sort(sessions, session.SortByDate)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Title", "Status", "Recorded", "Duration"})
	for _, s := range sessions {
		t.AppendRow(table.Row{
			s.ID,
			s.DisplayName(),
			s.Status.String(),
			s.RecordedAt.Format("2006-01-02 15:04"),
			time.Duration(s.Duration * float64(time.Second)).Round(time.Second),
		})
	}
	t.Render()
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
