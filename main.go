package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/tonhe/flo/cmd"
	"github.com/tonhe/flo/internal/config"
	"github.com/tonhe/flo/internal/engine"
	"github.com/tonhe/flo/tui"
)

func main() {
	if len(os.Args) > 1 && cmd.IsSubcommand(os.Args[1]) {
		cmd.Execute(os.Args[1:])
		return
	}
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run launches the TUI. Everything it opens is released before it returns.
func run(args []string) error {
	fs := flag.NewFlagSet("flo", flag.ContinueOnError)
	dashName := fs.String("dashboard", "", "Dashboard to open on start")
	themeName := fs.String("theme", "", "Theme override for this session")
	logPath := fs.String("log", "", "Write engine logs to this file")
	verbosity := fs.Int("v", 0, "Log verbosity")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.EnsureDirs(); err != nil {
		return err
	}
	cfgPath, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	if *themeName != "" {
		cfg.Theme = *themeName
	}
	dashDir, err := config.GetDashboardsDir()
	if err != nil {
		return err
	}

	logger := logr.Discard()
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = cmd.NewLogger(f, *verbosity)
	}

	vault, err := cmd.OpenVault()
	if err != nil {
		return fmt.Errorf("open credential vault: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mgr := engine.NewManager(
		engine.SNMPDialer(vault, 5*time.Second, 3),
		engine.WithLogger(logger),
		engine.WithStaleAfter(cfg.StaleAfter),
	)
	defer mgr.StopAll()

	model := tui.NewAppModel(ctx, cfg, mgr, dashDir, cmd.Version)
	if *dashName != "" {
		if err := model.Open(*dashName); err != nil {
			return err
		}
	}

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
