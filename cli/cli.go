// ABOUTME: Shared runtime for CLI commands
// ABOUTME: Bundles the injected store, configuration and classifier every command needs
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/harperreed/touchbase/config"
	"github.com/harperreed/touchbase/db"
	"github.com/harperreed/touchbase/followups"
	"github.com/harperreed/touchbase/logger"
	"github.com/harperreed/touchbase/tui"
	"github.com/harperreed/touchbase/web"
)

// Runtime is created once in main and handed to every command.
type Runtime struct {
	Store      *db.Store
	Config     *config.Config
	ConfigPath string
	Classifier *followups.Classifier
	Out        io.Writer
}

func (rt *Runtime) webOptions() web.Options {
	return web.Options{
		RecentLimit:        rt.Config.RecentLimit,
		DefaultPeriodicity: rt.Config.DefaultPeriodicity,
	}
}

func (rt *Runtime) tuiOptions() tui.Options {
	return tui.Options{
		RecentLimit:        rt.Config.RecentLimit,
		DefaultPeriodicity: rt.Config.DefaultPeriodicity,
	}
}

func (rt *Runtime) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(rt.Out)
	return fs
}

func requireTerminal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the terminal UI needs an interactive terminal")
	}
	return nil
}

// redirectLogs points the global logger at the XDG state log file while the
// terminal UI owns the screen. The returned func restores the previous logger.
func redirectLogs(cfg *config.Config) (func(), error) {
	f, path, err := logger.OpenLogFile()
	if err != nil {
		return nil, err
	}

	fileLogger, err := logger.New(cfg, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	log.Info().Str("path", path).Msg("logging to file while the terminal UI runs")
	prev := log.Logger
	log.Logger = fileLogger

	return func() {
		log.Logger = prev
		_ = f.Close()
	}, nil
}
