// Package cmd provides the CLI commands for the drift application.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ewalden/drift/internal/adapters/audio"
	"github.com/ewalden/drift/internal/adapters/notification"
	"github.com/ewalden/drift/internal/adapters/storage"
	"github.com/ewalden/drift/internal/config"
	"github.com/ewalden/drift/internal/ports"
	"github.com/ewalden/drift/internal/services"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	jsonOutput bool

	// Global dependencies
	appConfig      *config.Config
	storageAdapter ports.Storage
	outbox         *services.Outbox
	libraryService *services.LibraryService
	historyService *services.HistoryService
	playerService  *services.PlayerService
	notifier       *notification.Notifier
	logger         *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "drift",
	Short: "Drift - a terminal player for guided audio sessions",
	Long: `Drift is a terminal player for guided meditations and other audio
sessions. It tracks what you listen to, collects moment-by-moment emotional
feedback during playback, and keeps your listening history locally.

Run "drift" with no arguments to pick a session and start listening.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runPlay,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.drift/drift.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Drift\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
}

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	var err error
	appConfig, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		appConfig = config.DefaultConfig()
	}

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	notifier = notification.New(&appConfig.Notifications)

	// Determine database path
	if dbPath == "" {
		dbPath = config.GetDBPath(appConfig)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	storageAdapter, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	outbox = services.NewOutbox(storage.NewGateway(storageAdapter), appConfig.UserID, "meditation", logger)
	outbox.Start(context.Background())

	libraryService = services.NewLibraryService(storageAdapter)
	historyService = services.NewHistoryService(storageAdapter)
	playerService = services.NewPlayerService(
		audio.NewSilentEngine(logger),
		outbox,
		appConfig.ToPlayerDomainConfig(),
		logger,
	)

	if appConfig.FirstRun {
		if err := seedLibrary(); err != nil {
			return fmt.Errorf("failed to seed library: %w", err)
		}
		appConfig.FirstRun = false
		_ = config.Save(appConfig)
	}

	return nil
}

// seedLibrary installs a small starter library on first run.
func seedLibrary() error {
	ctx := context.Background()
	starters := []services.AddItemRequest{
		{Title: "Morning Calm", Guide: "Ana Reyes", SourceRef: "builtin/morning-calm", DurationSeconds: 600},
		{Title: "Body Scan", Guide: "Miko Tanaka", SourceRef: "builtin/body-scan", DurationSeconds: 1200},
		{Title: "Evening Wind Down", Guide: "Ana Reyes", SourceRef: "builtin/wind-down", DurationSeconds: 900},
		{Title: "Deep Rest", Guide: "Sam Okafor", SourceRef: "builtin/deep-rest", DurationSeconds: 1800},
	}
	for _, req := range starters {
		if _, err := libraryService.AddItem(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if playerService != nil {
		playerService.Close()
	}
	if outbox != nil {
		outbox.Close()
	}
	if storageAdapter != nil {
		return storageAdapter.Close()
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
