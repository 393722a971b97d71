package engine

import (
	"testing"

	"flowscope/internal/artifact"
)

func newTestIndex() *Index {
	a := testAnalysis()
	return NewIndex(a.CodeStructure.Nodes, a.CodeStructure.Edges)
}

func selectionIDs(sel Selection) map[string]bool {
	ids := make(map[string]bool, len(sel.Nodes))
	for _, n := range sel.Nodes {
		ids[n.ID] = true
	}
	return ids
}

func TestSelectSystemShowsSystemAndModulesOnly(t *testing.T) {
	ix := newTestIndex()
	sel := ix.Select("sys")

	ids := selectionIDs(sel)
	want := []string{"sys", "modA", "modB"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d nodes, got %v", len(want), ids)
	}
	for _, id := range want {
		if !ids[id] {
			t.Fatalf("missing node %q in system selection", id)
		}
	}
	// Both sys->mod contains edges survive the closure filter.
	if len(sel.Edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(sel.Edges))
	}
}

func TestSelectModuleShowsContainedComponents(t *testing.T) {
	ix := newTestIndex()
	ids := selectionIDs(ix.Select("modA"))
	for _, id := range []string{"modA", "compA1", "compA2"} {
		if !ids[id] {
			t.Fatalf("missing node %q in module selection", id)
		}
	}
	if len(ids) != 3 {
		t.Fatalf("unexpected extra nodes: %v", ids)
	}
}

func TestSelectModuleKeepsEdgesBetweenComponents(t *testing.T) {
	ix := newTestIndex()
	sel := ix.Select("modA")
	// Expected edges: modA contains compA1/compA2, and compA2 inherits compA1.
	if len(sel.Edges) != 3 {
		t.Fatalf("expected 3 edges, got %d", len(sel.Edges))
	}
	seenInherits := false
	for _, e := range sel.Edges {
		if e.Type == artifact.EdgeInherits {
			seenInherits = true
		}
	}
	if !seenInherits {
		t.Fatalf("inheritance edge between selected components must be kept")
	}
}

func TestSelectComponentShowsOwnFunctions(t *testing.T) {
	ix := newTestIndex()
	ids := selectionIDs(ix.Select("compA1"))
	for _, id := range []string{"compA1", "fnA1a", "fnA1b"} {
		if !ids[id] {
			t.Fatalf("missing node %q in component selection", id)
		}
	}
	if ids["fnA2a"] || ids["fnGhost"] {
		t.Fatalf("component selection leaked foreign functions: %v", ids)
	}
}

func TestSelectFunctionShowsCallTargets(t *testing.T) {
	ix := newTestIndex()
	sel := ix.Select("fnA1a")
	ids := selectionIDs(sel)
	if len(ids) != 2 || !ids["fnA1a"] || !ids["fnB1a"] {
		t.Fatalf("expected caller and callee, got %v", ids)
	}
	if len(sel.Edges) != 1 || sel.Edges[0].Type != artifact.EdgeCalls {
		t.Fatalf("expected only the call edge, got %v", sel.Edges)
	}
}

func TestSelectUnknownNodeReturnsEmpty(t *testing.T) {
	ix := newTestIndex()
	sel := ix.Select("nope")
	if len(sel.Nodes) != 0 || len(sel.Edges) != 0 {
		t.Fatalf("expected empty selection, got %d nodes %d edges", len(sel.Nodes), len(sel.Edges))
	}
}

func TestIndexDropsDanglingEdges(t *testing.T) {
	ix := newTestIndex()
	for _, e := range ix.Edges() {
		if e.ID == "e12" {
			t.Fatalf("dangling edge must not be indexed")
		}
	}
	if got := len(ix.Incoming("modA", artifact.EdgeContains)); got != 1 {
		t.Fatalf("expected 1 incoming contains edge for modA, got %d", got)
	}
}
