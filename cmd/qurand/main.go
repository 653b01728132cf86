// Package main is the entry point for the qurand daemon.
// qurand is a headless playback daemon for Quran recitations and live
// Islamic radio, controlled by clients over an IPC socket.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/deenmedia/qurand/internal/audio"
	"github.com/deenmedia/qurand/internal/config"
	"github.com/deenmedia/qurand/internal/engine"
	"github.com/deenmedia/qurand/internal/ipc"
	"github.com/deenmedia/qurand/internal/logging"
	"github.com/deenmedia/qurand/internal/prefs"
)

// Version is set at build time via ldflags
var Version = "dev"

// Config holds daemon configuration
type Config struct {
	SocketPath string
	ConfigDir  string
	Verbose    bool
}

func main() {
	cfg := parseFlags()

	configMgr := config.NewManager(cfg.ConfigDir)
	if err := configMgr.Load(); err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	fileCfg := configMgr.Get()

	// Flags win over the config file.
	if cfg.SocketPath == "" {
		cfg.SocketPath = fileCfg.SocketPath
	}
	if cfg.SocketPath == "" {
		cfg.SocketPath = fmt.Sprintf("/tmp/qurand-%d.sock", os.Getuid())
	}
	logging.Setup(cfg.Verbose || fileCfg.Verbose)

	logrus.Infof("qurand version %s starting", Version)

	// Create context that cancels on interrupt signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logrus.Infof("Received signal %v, shutting down", sig)
		cancel()
	}()

	if err := run(ctx, cfg, fileCfg.DefaultReciter); err != nil {
		logrus.Fatalf("Fatal error: %v", err)
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.SocketPath, "socket", "", "IPC socket path (default: auto-generated based on UID)")
	flag.StringVar(&cfg.ConfigDir, "config", "", "Configuration directory (default: ~/.config/qurand)")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	flag.Parse()

	if cfg.ConfigDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			logrus.Fatalf("Failed to get home directory: %v", err)
		}
		cfg.ConfigDir = homeDir + "/.config/qurand"
	}

	return cfg
}

func run(ctx context.Context, cfg *Config, defaultReciter string) error {
	store, err := prefs.NewStore(cfg.ConfigDir)
	if err != nil {
		return fmt.Errorf("failed to initialize preferences: %w", err)
	}
	logrus.Infof("Preferences loaded from %s", store.Path())

	pool := engine.NewPool(engine.NewBeepFactory())
	defer pool.Close()

	session := audio.NewSession(pool, store)
	defer session.Close()

	server := ipc.NewServer(cfg.SocketPath, session, pool, defaultReciter)

	logrus.Infof("Starting IPC server on %s", cfg.SocketPath)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("IPC server error: %w", err)
	}

	return nil
}
