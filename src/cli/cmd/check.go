package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/daemonless/depgraph/src/graph"
	"github.com/daemonless/depgraph/src/output"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the output file is current",
	Long: `Build the graph in memory and compare it byte for byte with the existing
output file. Exits 1 when the file is missing or stale, without touching it.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	start := time.Now()

	g, stats, err := graph.Build(cmd.Context(), cfg.Graph, log)
	if err != nil {
		return err
	}

	out := cfg.Graph.OutputPath()
	current, err := graph.UpToDate(out, g)
	if err != nil {
		return err
	}

	status, detail := "success", "up to date"
	if !current {
		status, detail = "failed", "stale"
	}
	output.GraphSection(w, "Dependency Graph Check", output.GraphSummary{
		Root:    cfg.Graph.Root,
		Output:  out,
		Graph:   g,
		Stats:   stats,
		Status:  status,
		Detail:  detail,
		Verbose: verbose,
	}, time.Since(start), output.UseColor())

	if !current {
		return &ExitError{
			Code: exitStale,
			Err:  fmt.Errorf("%s is out of date: run depgraph to regenerate it", out),
		}
	}
	return nil
}
