package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/daemonless/depgraph/src/graph"
)

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "<1ms", formatElapsed(500*time.Microsecond))
	assert.Equal(t, "42ms", formatElapsed(42*time.Millisecond))
	assert.Equal(t, "1.5s", formatElapsed(1500*time.Millisecond))
	assert.Equal(t, "2m3.0s", formatElapsed(123*time.Second))
}

func TestSectionHeaderWidth(t *testing.T) {
	var buf bytes.Buffer
	sec := NewSection(&buf, "Graph", 0, false)
	sec.Close()

	lines := strings.Split(strings.TrimPrefix(buf.String(), "\n"), "\n")
	header := []rune(strings.TrimPrefix(lines[0], "    "))
	footer := []rune(strings.TrimPrefix(lines[1], "    "))
	assert.Equal(t, sectionWidth+4, len(header))
	assert.Equal(t, sectionWidth+1, len(footer))
}

func TestGraphSection(t *testing.T) {
	url := "https://example.test"
	g := &graph.Graph{
		BaseImages: map[string]*graph.BaseImage{"base": {}},
		Images:     map[string]*graph.Image{"sonarr": {}, "radarr": {}},
		UpstreamSources: map[string]graph.UpstreamSource{
			"sonarr": graph.SonarrSource{URL: &url},
			"radarr": graph.ServarrSource{URL: &url},
		},
	}

	var buf bytes.Buffer
	GraphSection(&buf, "Dependency Graph", GraphSummary{
		Root:    "/src/daemonless",
		Output:  "/src/daemonless/daemonless-io/dependencies.json",
		Graph:   g,
		Stats:   &graph.Stats{Scanned: 3, Skipped: []string{"docs"}},
		Status:  "success",
		Detail:  "written",
		Verbose: true,
	}, 0, false)

	out := buf.String()
	assert.Contains(t, out, "── Dependency Graph ")
	assert.Contains(t, out, "│ scanned         3\n")
	assert.Contains(t, out, "│ skipped         1\n")
	assert.Contains(t, out, "│                 docs\n")
	assert.Contains(t, out, "│ images          2\n")
	assert.Contains(t, out, "│                 servarr         1\n")
	assert.Contains(t, out, "│                 sonarr          1\n")
	assert.Contains(t, out, "│ output          /src/daemonless/daemonless-io/dependencies.json written ✓\n")
}

func TestNoColorWhenDisabled(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, UseColor())
	assert.Equal(t, "x", Dimmed("x", false))
	assert.Equal(t, "x", Bold("x", false))
}
