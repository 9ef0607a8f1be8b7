// ABOUTME: Entry point for the touchbase CLI
// ABOUTME: Loads config, builds the shared in-memory store and routes to the web UI, TUI or info commands
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/harperreed/touchbase/cli"
	"github.com/harperreed/touchbase/config"
	"github.com/harperreed/touchbase/db"
	"github.com/harperreed/touchbase/followups"
	"github.com/harperreed/touchbase/logger"
)

const version = "0.1.0"

type command func(ctx context.Context, rt *cli.Runtime, args []string) error

var commands = map[string]command{
	"serve":     cli.ServeCommand,
	"tui":       cli.TUICommand,
	"dashboard": cli.DashboardCommand,
	"methods":   cli.MethodsCommand,
	"config":    cli.ConfigCommand,
}

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	configPath := flag.String("config", "", "Config file (default: $XDG_CONFIG_HOME/touchbase/config.json)")

	// Parse global flags; the rest belongs to the subcommand
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("touchbase version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	run, ok := commands[args[0]]
	if !ok {
		fmt.Printf("Unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	l, err := logger.New(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure logging: %v\n", err)
		os.Exit(1)
	}
	log.Logger = l
	log.Debug().EmbedObject(cfg).Msg("Configuration loaded")

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid timezone")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := db.NewStore(ctx)
	if err != nil {
		log.Fatal().Stack().Err(err).Msg("Failed to open store")
	}

	rt := &cli.Runtime{
		Store:      store,
		Config:     cfg,
		ConfigPath: *configPath,
		Classifier: followups.NewClassifier(loc),
		Out:        os.Stdout,
	}

	err = run(ctx, rt, args[1:])
	_ = store.Close()
	if err != nil {
		log.Fatal().Stack().Err(err).Str("command", args[0]).Msg("Command failed")
	}
}

func printUsage() {
	fmt.Printf(`touchbase v%s - keep in touch with the companies you care about

USAGE:
  touchbase [global flags] <command> [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --config <path>        Config file (default: $XDG_CONFIG_HOME/touchbase/config.json)

COMMANDS:
  serve                  Start the web UI
    --port <n>             HTTP port (default: from config, 8080)
    --tui                  Also run the terminal UI against the same data
    --demo                 Start with sample data

  tui                    Start the terminal UI
    --demo                 Start with sample data

  dashboard              Print the dashboard as text
    --demo                 Render sample data

  methods                List communication methods
  config                 Print the effective configuration
    --write                Save it to the config file

ENVIRONMENT:
  TOUCHBASE_HTTP_PORT, TOUCHBASE_TIMEZONE, TOUCHBASE_RECENT_LIMIT,
  TOUCHBASE_DEFAULT_PERIODICITY, TOUCHBASE_LOG_LEVEL, TOUCHBASE_LOG_FORMAT
  (also read from a .env file in the working directory)

All companies and communications live in memory and are gone when touchbase exits.
`, version)
}
