package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/daemonless/depgraph/src/graph"
	"github.com/daemonless/depgraph/src/output"
)

var genStdout bool

func init() {
	rootCmd.Flags().BoolVar(&genStdout, "stdout", false, "write the JSON to stdout instead of the output file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	start := time.Now()

	g, stats, err := graph.Build(cmd.Context(), cfg.Graph, log)
	if err != nil {
		return err
	}

	if genStdout {
		return graph.Encode(w, g)
	}

	out := cfg.Graph.OutputPath()
	output.SectionStart(w, "depgraph_generate", "Generate")
	if err := graph.Write(out, g); err != nil {
		output.SectionEnd(w, "depgraph_generate")
		return err
	}
	log.Info("wrote dependency graph",
		zap.String("path", out),
		zap.Int("base_images", len(g.BaseImages)),
		zap.Int("images", len(g.Images)),
	)

	output.GraphSection(w, "Dependency Graph", output.GraphSummary{
		Root:    cfg.Graph.Root,
		Output:  out,
		Graph:   g,
		Stats:   stats,
		Status:  "success",
		Detail:  "written",
		Verbose: verbose,
	}, time.Since(start), output.UseColor())
	output.SectionEnd(w, "depgraph_generate")

	fmt.Fprintf(w, "Generated %s\n", out)
	return nil
}
