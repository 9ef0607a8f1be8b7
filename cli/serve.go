// ABOUTME: Commands that start the interactive surfaces
// ABOUTME: Runs the web UI, the terminal UI, or both against one shared store
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/harperreed/touchbase/tui"
	"github.com/harperreed/touchbase/web"
)

// ServeCommand runs the web UI until ctx is cancelled.
func ServeCommand(ctx context.Context, rt *Runtime, args []string) error {
	fs := rt.newFlagSet("serve")
	port := fs.Int("port", rt.Config.HTTPPort, "HTTP port")
	withTUI := fs.Bool("tui", false, "Also run the terminal UI against the same data")
	demo := fs.Bool("demo", false, "Start with sample companies and communications")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *port < 0 || *port > 65535 {
		return fmt.Errorf("invalid --port %d", *port)
	}
	if *withTUI {
		if err := requireTerminal(); err != nil {
			return err
		}
	}

	if *demo {
		if err := SeedDemoData(ctx, rt); err != nil {
			return err
		}
	}

	server, err := web.NewServer(rt.Store, rt.Classifier, rt.webOptions())
	if err != nil {
		return err
	}
	defer server.Close()

	addr := fmt.Sprintf(":%d", *port)
	if !*withTUI {
		return server.Start(ctx, addr)
	}

	restore, err := redirectLogs(rt.Config)
	if err != nil {
		return err
	}
	defer restore()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	webErr := make(chan error, 1)
	go func() { webErr <- server.Start(ctx, addr) }()

	tuiErr := tui.Run(ctx, rt.Store, rt.Classifier, rt.tuiOptions())
	cancel()

	return errors.Join(tuiErr, <-webErr)
}

// TUICommand runs only the terminal UI.
func TUICommand(ctx context.Context, rt *Runtime, args []string) error {
	fs := rt.newFlagSet("tui")
	demo := fs.Bool("demo", false, "Start with sample companies and communications")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := requireTerminal(); err != nil {
		return err
	}

	if *demo {
		if err := SeedDemoData(ctx, rt); err != nil {
			return err
		}
	}

	restore, err := redirectLogs(rt.Config)
	if err != nil {
		return err
	}
	defer restore()

	log.Info().Msg("starting terminal UI")
	return tui.Run(ctx, rt.Store, rt.Classifier, rt.tuiOptions())
}
