// ABOUTME: Informational CLI commands
// ABOUTME: Prints communication methods, the effective configuration and a dashboard snapshot
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/harperreed/touchbase/config"
	"github.com/harperreed/touchbase/viz"
)

// MethodsCommand lists the seeded communication methods.
func MethodsCommand(ctx context.Context, rt *Runtime, args []string) error {
	fs := rt.newFlagSet("methods")
	if err := fs.Parse(args); err != nil {
		return err
	}

	methods, err := rt.Store.CommunicationMethods(ctx)
	if err != nil {
		return fmt.Errorf("failed to list communication methods: %w", err)
	}

	w := tabwriter.NewWriter(rt.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, m := range methods {
		fmt.Fprintf(w, "%s\t%s\n", m.ID, m.Name)
	}
	return w.Flush()
}

// ConfigCommand prints the effective configuration, optionally saving it.
func ConfigCommand(_ context.Context, rt *Runtime, args []string) error {
	fs := rt.newFlagSet("config")
	write := fs.Bool("write", false, "Write the effective configuration to the config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := json.MarshalIndent(rt.Config, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(rt.Out, string(data))

	if *write {
		path := rt.ConfigPath
		if path == "" {
			path = config.DefaultPath()
		}
		if err := rt.Config.Save(path); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(rt.Out, "✓ Config written to %s\n", path)
	}
	return nil
}

// DashboardCommand prints the dashboard as text.
func DashboardCommand(ctx context.Context, rt *Runtime, args []string) error {
	fs := rt.newFlagSet("dashboard")
	demo := fs.Bool("demo", false, "Render sample data instead of an empty store")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *demo {
		if err := SeedDemoData(ctx, rt); err != nil {
			return err
		}
	}

	dash, err := viz.BuildDashboard(ctx, rt.Store, rt.Classifier, rt.Config.RecentLimit)
	if err != nil {
		return err
	}

	fmt.Fprint(rt.Out, viz.RenderDashboard(dash))
	return nil
}
