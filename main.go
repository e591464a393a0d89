package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"mazereplay/internal/config"
	"mazereplay/internal/discovery"
	"mazereplay/internal/eventbus"
	"mazereplay/internal/logic"
	"mazereplay/internal/ui"
	"mazereplay/internal/watch"
)

// options holds the command line flags
type options struct {
	events      string
	panes       []string
	dir         string
	maze        string
	speed       int
	batch       int
	play        bool
	watch       bool
	json        bool
	configPath  string
	writeConfig bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "mazereplay",
		Short: "Replay grid pathfinding search traces",
		Long: "mazereplay replays the event traces grid search solvers write " +
			"(one JSON object per line) and shows the frontier, visited cells and " +
			"the best path growing step by step. Several traces can be compared side by side.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.events, "events", "", "trace file to replay (pane label is the file stem)")
	f.StringArrayVar(&opts.panes, "pane", nil, "comparison pane as LABEL:PATH, repeatable")
	f.StringVarP(&opts.dir, "dir", "d", "", "directory to scan for *_events.jsonl traces")
	f.StringVar(&opts.maze, "maze", "", "maze description seeded into every pane")
	f.IntVar(&opts.speed, "speed", config.DefaultSpeedMs, "milliseconds between playback steps")
	f.IntVar(&opts.batch, "batch", config.DefaultBatch, "events applied per playback step")
	f.BoolVar(&opts.play, "play", false, "start playing right away")
	f.BoolVar(&opts.watch, "watch", false, "reload traces when they are rewritten on disk")
	f.BoolVar(&opts.json, "json", false, "replay every pane to the end and print the final state as JSON")
	f.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	f.BoolVar(&opts.writeConfig, "write-config", false, "write the effective configuration to the config file and exit")
	return cmd
}

// loadConfig reads the config file and lays the flags the user set on top
func loadConfig(cmd *cobra.Command, opts *options) (config.ConfigService, *config.Config, error) {
	svc := config.NewConfigService(opts.configPath)
	cfg, err := svc.Load()
	if err != nil {
		if opts.configPath != "" {
			return nil, nil, err
		}
		cfg = config.DefaultConfig()
	}

	f := cmd.Flags()
	if f.Changed("speed") {
		cfg.Playback.SpeedMs = opts.speed
	}
	if f.Changed("batch") {
		cfg.Playback.Batch = opts.batch
	}
	if f.Changed("play") {
		cfg.Playback.Autoplay = opts.play
	}
	cfg.Validate()
	return svc, cfg, nil
}

func run(cmd *cobra.Command, opts *options) error {
	loader, cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file
	logFile, err := tea.LogToFile(cfg.LogFile, "mazereplay")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(loader.Path(), bus)
	if opts.writeConfig {
		if err := configSvc.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configSvc.Path())
		return nil
	}

	discoverySvc := discovery.NewDiscoveryService(bus)
	specs, err := paneSpecs(opts)
	if err != nil {
		return err
	}

	if opts.json {
		if opts.dir != "" {
			found, err := discoverySvc.Scan(ctx, opts.dir)
			if err != nil {
				return err
			}
			specs = append(specs, found...)
		}
		store, err := loadPanes(specs, opts.maze, true)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), runHeadless(store, cfg.Playback.Batch))
	}

	// With --dir the panes arrive once the background scan is done
	store, err := loadPanes(specs, opts.maze, opts.dir == "")
	if err != nil {
		return err
	}
	return runUI(ctx, bus, cfg, store, discoverySvc, opts)
}

func runUI(ctx context.Context, bus eventbus.EventBus, cfg *config.Config, store logic.PaneStore,
	discoverySvc discovery.DiscoveryService, opts *options) error {
	model := ui.NewModel(bus, cfg, store)
	model.SetMazePath(opts.maze)

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	var watcher *watch.Watcher
	if opts.watch {
		w, err := watch.New(bus, tracePaths(store), watch.DefaultDebounce)
		if err != nil {
			return err
		}
		w.Start(ctx)
		defer w.Stop()
		watcher = w
	}

	// Forward bus events to the UI without blocking the bus
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventTraceChanged, forward)
	bus.Subscribe(eventbus.EventError, forward)
	bus.Subscribe(eventbus.EventTracesDiscovered, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.TracesDiscoveredEvent); ok && watcher != nil {
			for _, spec := range event.Specs {
				if err := watcher.Add(spec.TracePath); err != nil {
					log.Printf("Not watching %s: %v", spec.TracePath, err)
				}
			}
		}
		forward(e)
	})

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			}
		}
	}()

	if opts.dir != "" {
		if err := discoverySvc.StartScan(ctx, opts.dir); err != nil {
			log.Printf("Failed to start scan: %v", err)
		}
		defer discoverySvc.StopScan()
	}

	log.Printf("Starting UI with %d panes", store.Len())
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("failed to run UI: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}
