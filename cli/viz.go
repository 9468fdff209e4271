// ABOUTME: Visualization CLI commands
// ABOUTME: Prints the terminal dashboard or renders the folder graph
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/harperreed/callbook/store"
	"github.com/harperreed/callbook/viz"
)

// VizDashboardCommand prints the ASCII dashboard.
func VizDashboardCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("viz dashboard", flag.ExitOnError)
	_ = fs.Parse(args)

	ctx := context.Background()
	stats := viz.GenerateDashboardStats(st.Contacts(ctx), st.Notes(ctx), st.Reminders(ctx), st.Orders(ctx), now())
	fmt.Fprint(stdout, viz.RenderDashboard(stats))
	return nil
}

// VizGraphCommand renders the folder to contact graph.
func VizGraphCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("viz graph", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	format := fs.String("format", "dot", "dot or svg")
	_ = fs.Parse(args)

	ctx := context.Background()
	graph, err := viz.FolderGraph(ctx, st.Notes(ctx), st.Folders(ctx), viz.Format(*format))
	if err != nil {
		return err
	}

	if *output != "" {
		return os.WriteFile(*output, []byte(graph), 0644)
	}
	fmt.Fprintln(stdout, graph)
	return nil
}
