package render

import (
	"strings"
	"testing"

	"github.com/ahertel/kintrace/pkg/family"
	"github.com/ahertel/kintrace/pkg/kin"
	"github.com/ahertel/kintrace/pkg/lineage"
)

func TestToDOT(t *testing.T) {
	g := kin.Build(family.Sample())
	preds, err := lineage.Trace(g, "Bob")
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}

	dot := ToDOT(g, preds, Options{Root: "Bob", Highlight: true})

	if !strings.HasPrefix(dot, "graph family {") {
		t.Error("DOT output should declare an undirected graph")
	}
	for _, person := range g.People() {
		if !strings.Contains(dot, `"`+person+`"`) {
			t.Errorf("DOT output missing node %q", person)
		}
	}

	// Root styling
	if !strings.Contains(dot, `"Bob" [label="Bob", fillcolor=lightblue, penwidth=2]`) {
		t.Error("root node should be emphasized")
	}

	// A lineage edge is bold, a non-lineage edge is dimmed.
	if !strings.Contains(dot, `"Bob" -- "Charlie" [penwidth=2.5]`) {
		t.Error("Bob-Charlie should be a highlighted lineage edge")
	}
	if !strings.Contains(dot, `"Alice" -- "Arlo" [style=dashed, color=grey]`) {
		t.Error("Alice-Arlo should be dimmed (not on Bob's tree)")
	}
}

func TestToDOTWithoutHighlight(t *testing.T) {
	g := kin.Build(family.Sample())
	dot := ToDOT(g, nil, Options{})

	if strings.Contains(dot, "penwidth=2.5") || strings.Contains(dot, "style=dashed") {
		t.Error("edge emphasis should be absent without highlighting")
	}
	if strings.Count(dot, " -- ") != g.EdgeCount() {
		t.Errorf("DOT should contain %d edges", g.EdgeCount())
	}
}
