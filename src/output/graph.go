package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/daemonless/depgraph/src/graph"
)

// GraphSummary is what a generate or check run reports.
type GraphSummary struct {
	Root    string
	Output  string
	Graph   *graph.Graph
	Stats   *graph.Stats
	Status  string // "success" or "failed"
	Detail  string // e.g. "written", "up to date", "stale"
	Verbose bool
}

// GraphSection renders the run summary as a framed section.
func GraphSection(w io.Writer, name string, s GraphSummary, elapsed time.Duration, color bool) {
	sec := NewSection(w, name, elapsed, color)

	sec.Row("%-16s%s", "root", s.Root)
	sec.Row("%-16s%d", "scanned", s.Stats.Scanned)
	sec.Row("%-16s%d", "skipped", len(s.Stats.Skipped))
	if s.Verbose && len(s.Stats.Skipped) > 0 {
		skipped := append([]string{}, s.Stats.Skipped...)
		sort.Strings(skipped)
		sec.Row("%-16s%s", "", Dimmed(strings.Join(skipped, ", "), color))
	}

	sec.Separator()
	sec.Row("%-16s%d", "base images", len(s.Graph.BaseImages))
	sec.Row("%-16s%d", "images", len(s.Graph.Images))
	sec.Row("%-16s%d", "upstreams", len(s.Graph.UpstreamSources))
	if s.Verbose {
		for _, line := range modeCounts(s.Graph) {
			sec.Row("%-16s%s", "", Dimmed(line, color))
		}
	}

	sec.Separator()
	RowStatus(sec, "output", Bold(s.Output, color)+" "+s.Detail, s.Status, color)
	sec.Close()
}

// modeCounts returns "<mode>  <n>" lines sorted by mode.
func modeCounts(g *graph.Graph) []string {
	counts := make(map[graph.UpstreamMode]int)
	for _, src := range g.UpstreamSources {
		counts[src.Mode()]++
	}
	modes := make([]string, 0, len(counts))
	for m := range counts {
		modes = append(modes, string(m))
	}
	sort.Strings(modes)

	lines := make([]string, 0, len(modes))
	for _, m := range modes {
		lines = append(lines, fmt.Sprintf("%-16s%d", m, counts[graph.UpstreamMode(m)]))
	}
	return lines
}
