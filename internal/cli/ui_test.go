package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/dotwalk/pkg/pipeline"
)

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, pipeline.Stats{NodeCount: 4, EdgeCount: 3, SourceCount: 1, SinkCount: 2}, true)

	out := buf.String()
	for _, part := range []string{"4 nodes", "3 edges", "1 sources", "2 sinks", iconCached} {
		if !strings.Contains(out, part) {
			t.Errorf("output %q should contain %q", out, part)
		}
	}
}
