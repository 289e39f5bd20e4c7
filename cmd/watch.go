package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/tonhe/flo/internal/config"
	"github.com/tonhe/flo/internal/dashboard"
	"github.com/tonhe/flo/internal/engine"
	"github.com/tonhe/flo/tui/components"
	"golang.org/x/sync/errgroup"
)

// NewLogger returns a logr.Logger writing one line per entry to w.
func NewLogger(w io.Writer, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s %s: %s\n", time.Now().Format(time.TimeOnly), prefix, args)
			return
		}
		fmt.Fprintf(w, "%s %s\n", time.Now().Format(time.TimeOnly), args)
	}, funcr.Options{Verbosity: verbosity})
}

// LoadDashboard resolves name in the dashboards directory and applies the
// configured defaults.
func LoadDashboard(cfg *config.Config, name string) (*dashboard.Dashboard, error) {
	dir, err := config.GetDashboardsDir()
	if err != nil {
		return nil, err
	}
	return dashboard.LoadDashboardWithDefaults(dashboard.Resolve(dir, name), cfg.PollInterval, cfg.MaxHistory)
}

// watchCmd polls a dashboard without the TUI and logs every interface
// after each cycle.
func watchCmd(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	verbosity := fs.Int("v", 0, "Log verbosity (1: protocol detail, 2: evictions)")
	count := fs.Int("count", 0, "Exit after this many polls (0 runs until interrupted)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: flo watch [-v N] [--count N] DASHBOARD")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: DASHBOARD argument is required")
		fs.Usage()
		os.Exit(1)
	}

	cfg := loadOrDefaultConfig()
	dash, err := LoadDashboard(cfg, fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := NewLogger(os.Stderr, *verbosity)
	poller, err := engine.NewPoller(dash,
		engine.SNMPDialer(mustOpenVault(), 5*time.Second, 3),
		engine.WithLogger(logger),
		engine.WithStaleAfter(cfg.StaleAfter),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := poller.Subscribe()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		poller.Run(ctx)
		return nil
	})
	g.Go(func() error {
		for ev := range events {
			logSnapshot(logger, ev.Snapshot)
			if countReached(ev.Snapshot, *count) {
				poller.Stop()
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// countReached reports whether snap is at or past the requested number of
// polls. Events can be dropped for a slow reader, so the poller's own count
// is used rather than the number of events seen.
func countReached(snap *engine.DashboardSnapshot, count int) bool {
	return count > 0 && snap.PollCount >= count
}

func logSnapshot(logger logr.Logger, snap *engine.DashboardSnapshot) {
	log := logger.WithValues("poll", snap.PollCount)
	snap.Interfaces(func(t engine.TargetStats, iface engine.InterfaceStats) {
		kv := []any{"host", t.Label, "interface", iface.Name}
		if t.PollError != nil {
			log.Error(t.PollError, "target unreachable", kv...)
			return
		}
		if iface.PollError != nil {
			log.Error(iface.PollError, "interface poll failed", kv...)
			return
		}
		if !iface.HasSample {
			log.Info("waiting for second reading", kv...)
			return
		}
		w := iface.Window
		log.Info("rate", append(kv,
			"status", iface.Status,
			"in", components.FormatRate(iface.InRate),
			"out", components.FormatRate(iface.OutRate),
			"avgIn", components.FormatRate(w.AvgIn),
			"avgOut", components.FormatRate(w.AvgOut),
			"peakIn", components.FormatRate(w.PeakIn),
			"peakOut", components.FormatRate(w.PeakOut),
			"samples", fmt.Sprintf("%d/%d", w.Samples, w.Capacity),
			"age", iface.SampleAge.Round(time.Second).String(),
			"stale", iface.Stale,
		)...)
	})
}
