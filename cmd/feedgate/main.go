package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/feedgate/feedgate/internal/api"
	"github.com/feedgate/feedgate/internal/config"
	"github.com/feedgate/feedgate/internal/log"
	"github.com/feedgate/feedgate/internal/storage"
	"github.com/feedgate/feedgate/internal/tui"
	"github.com/feedgate/feedgate/internal/webhook"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "start":
		os.Exit(runStart(args))
	case "config":
		os.Exit(runConfigNoun(args))
	case "watch":
		os.Exit(runWatch(args))
	case "version":
		fmt.Printf("feedgate version %s\n", version)
		os.Exit(0)
	case "help", "--help", "-h":
		printUsage()
		os.Exit(0)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`feedgate - Authenticated article-ingestion webhook gateway

Usage:
  feedgate <command> [flags]

Commands:
  start             Start the gateway service in foreground
  config check      Validate config syntax, policy, and integrity
  config lock       Authorize current config (update integrity hashes)
  watch             Live terminal view of recently ingested articles
  version           Show version information
  help              Show this help message

Use 'feedgate <command> -h' for command-specific flags.
`)
}

func runConfigNoun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: feedgate config <check|lock> [flags]")
		return 1
	}

	switch args[0] {
	case "check":
		return runConfigCheck(args[1:])
	case "lock":
		return runConfigLock(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown config action: %s\n", args[0])
		return 1
	}
}

func runStart(args []string) int {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Integrity gate: a tampered config is a hard failure, an unlocked one
	// is only a warning.
	warning, err := config.VerifyIntegrity(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config integrity check failed: %v\n", err)
		return 1
	}

	log.Setup(cfg.Service.LogLevel, cfg.Service.LogFormat)
	logger := log.WithComponent("main")
	logger.Info("feedgate starting", "version", version, "config", *configPath)

	if warning != "" {
		logger.Warn(warning)
	}
	for _, w := range config.Warnings(cfg) {
		logger.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.OpenSQLite(ctx, cfg.Storage.Path)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		return 1
	}
	defer db.Close()
	store := storage.NewArticleStore(db)

	webhookCfg, err := webhook.FromGlobalConfig(&cfg.Webhooks)
	if err != nil {
		logger.Error("invalid webhook config", "error", err)
		return 1
	}

	errCh := make(chan error, 2)

	webhookServer := webhook.New(webhookCfg, store, log.WithComponent("webhook"))
	go func() {
		errCh <- webhookServer.Start(ctx)
	}()

	if cfg.API.Enabled {
		apiServer := api.New(api.Config{
			Listen: cfg.API.Listen,
			APIKey: cfg.API.APIKey,
		}, store, log.WithComponent("api"))
		go func() {
			errCh <- apiServer.Start(ctx)
		}()
	}

	// Block until a server fails or a signal cancels the context. Servers
	// return ctx.Err() after a clean shutdown.
	err = <-errCh
	if err != nil && ctx.Err() == nil {
		logger.Error("server failed", "error", err)
		return 1
	}

	logger.Info("feedgate stopped")
	return 0
}

func runConfigCheck(args []string) int {
	fs := flag.NewFlagSet("config check", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		return 1
	}

	warning, err := config.VerifyIntegrity(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		return 1
	}
	if warning != "" {
		fmt.Printf("WARN: %s\n", warning)
	}
	for _, w := range config.Warnings(cfg) {
		fmt.Printf("WARN: %s\n", w)
	}

	fmt.Printf("OK: %s (%d sources)\n", *configPath, len(cfg.Webhooks.Sources))
	return 0
}

func runConfigLock(args []string) int {
	fs := flag.NewFlagSet("config lock", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	// Only lock configs that load.
	if _, err := config.Load(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		return 1
	}

	if err := config.Lock(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		return 1
	}

	fmt.Printf("Locked %s\n", *configPath)
	return 0
}

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	apiURL := fs.String("api", "http://127.0.0.1:8082", "Base URL of the feedgate read API")
	apiKey := fs.String("key", os.Getenv("FEEDGATE_API_KEY"), "API key (defaults to FEEDGATE_API_KEY)")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	p := tea.NewProgram(tui.NewWatch(*apiURL, *apiKey), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "watch failed: %v\n", err)
		return 1
	}
	return 0
}
