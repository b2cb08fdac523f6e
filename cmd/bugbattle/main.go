// Package main is the entry point for the BugBattle simulation server.
// It only handles configuration, dependency injection and lifecycle.
// NO business logic belongs here.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bugworks/bugbattle/internal/config"
	"github.com/bugworks/bugbattle/internal/domain/creature"
	"github.com/bugworks/bugbattle/internal/engine"
	"github.com/bugworks/bugbattle/internal/infra/storage"
	"github.com/bugworks/bugbattle/internal/network"
	"github.com/bugworks/bugbattle/internal/platform/logger"
	"github.com/bugworks/bugbattle/internal/species"
	"github.com/bugworks/bugbattle/internal/telemetry"
)

var (
	configPath   string
	listenAddr   string
	worldWidth   int
	intervalMS   int
	dbPath       string
	telemetryDir string
	autostart    bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "bugbattle",
	Short: "BugBattle authoritative simulation server",
	Long: `bugbattle runs the BugBattle creature-competition engine and exposes
its snapshot/command protocol to display clients over WebSocket.

The engine owns all world state on a single goroutine; displays connect
to /ws, receive latest-wins snapshots, and push Start/Pause/SetInterval/
Reset commands back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file overriding the defaults")
	rootCmd.Flags().StringVar(&listenAddr, "listen", "", "WebSocket listen address (overrides config)")
	rootCmd.Flags().IntVar(&worldWidth, "width", 0, "world width in cells (overrides config)")
	rootCmd.Flags().IntVar(&intervalMS, "interval", 0, "tick interval in milliseconds (overrides config)")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	rootCmd.Flags().StringVar(&telemetryDir, "telemetry-dir", "", "CSV telemetry output directory (overrides config)")
	rootCmd.Flags().BoolVar(&autostart, "autostart", false, "reset with all built-in species and start immediately")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func run() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlagOverrides(cfg)

	log, err := logger.New(verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reg := creature.NewRegistry()
	builtin := species.RegisterBuiltin(reg)
	names := make([]string, len(builtin))
	for i, sp := range builtin {
		names[i] = sp.Name
	}
	log.Info("registered built-in species", "species", names)

	world := engine.NewWorld(cfg.World.Width, reg)
	link := engine.NewLink()
	sim := engine.NewSimulation(world, link, engine.Params{
		InitialPlantProbability: cfg.Simulation.InitialPlantProbability,
		StartStrength:           cfg.Simulation.StartStrength,
		CreaturesPerSpecies:     cfg.Simulation.CreaturesPerSpecies,
	}, time.Duration(cfg.Simulation.IntervalMS)*time.Millisecond, log)

	if cfg.Storage.Path != "" {
		db, err := storage.InitSQLite(cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("initializing storage: %w", err)
		}
		defer db.Close()
		sim.AttachSink(storage.NewRecorder(db, log))
		log.Info("run recording enabled", "path", cfg.Storage.Path)
	}

	if cfg.Telemetry.Dir != "" {
		stats, err := telemetry.NewWriter(cfg.Telemetry.Dir)
		if err != nil {
			return fmt.Errorf("initializing telemetry: %w", err)
		}
		defer stats.Close()
		sim.AttachSink(stats)
		log.Info("telemetry enabled", "dir", cfg.Telemetry.Dir)
	}

	hub := network.NewHub(link, log)
	go hub.Run(ctx)
	hub.StartSnapshotPoller(ctx)

	go sim.Run(ctx)

	if cfg.Simulation.Autostart {
		link.Send(engine.ResetCommand{Species: names})
		link.Send(engine.StartCommand{})
		log.Info("autostart requested", "species", names)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		network.ServeWs(hub, w, r)
	})

	server := &http.Server{Addr: cfg.Server.Listen, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer shutdownCancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("listening for displays", "addr", cfg.Server.Listen)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func applyFlagOverrides(cfg *config.Config) {
	if listenAddr != "" {
		cfg.Server.Listen = listenAddr
	}
	if worldWidth > 0 {
		cfg.World.Width = worldWidth
	}
	if intervalMS > 0 {
		cfg.Simulation.IntervalMS = intervalMS
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}
	if telemetryDir != "" {
		cfg.Telemetry.Dir = telemetryDir
	}
	if autostart {
		cfg.Simulation.Autostart = true
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
