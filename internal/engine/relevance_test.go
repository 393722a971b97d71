package engine

import (
	"testing"

	"flowscope/internal/artifact"
)

func TestRelevanceAlwaysContainsSelf(t *testing.T) {
	ix := newTestIndex()
	for _, n := range ix.Nodes() {
		if _, ok := ix.RelevantNodeIDs(n.ID)[n.ID]; !ok {
			t.Fatalf("node %q missing from its own relevance set", n.ID)
		}
	}
	// Holds even for ids the index does not know.
	if _, ok := ix.RelevantNodeIDs("unknown")["unknown"]; !ok {
		t.Fatalf("unknown id missing from its own relevance set")
	}
}

func TestRelevanceFunctionIsSelfOnly(t *testing.T) {
	ix := newTestIndex()
	got := ix.RelevantNodeIDs("fnA1a")
	if len(got) != 1 {
		t.Fatalf("expected function relevance to be just itself, got %v", got)
	}
}

func TestRelevanceComponentCoversFunctions(t *testing.T) {
	ix := newTestIndex()
	got := ix.RelevantNodeIDs("compA1")
	for _, id := range []string{"compA1", "fnA1a", "fnA1b"} {
		if _, ok := got[id]; !ok {
			t.Fatalf("missing %q in component relevance", id)
		}
	}
	if len(got) != 3 {
		t.Fatalf("unexpected extras in component relevance: %v", got)
	}
}

func TestRelevanceModuleCoversFullSubtree(t *testing.T) {
	ix := newTestIndex()
	got := ix.RelevantNodeIDs("modA")
	for _, id := range []string{"modA", "compA1", "compA2", "fnA1a", "fnA1b", "fnA2a"} {
		if _, ok := got[id]; !ok {
			t.Fatalf("missing %q in module relevance", id)
		}
	}
	if _, ok := got["fnB1a"]; ok {
		t.Fatalf("module relevance leaked into a sibling module")
	}
}

func TestRelevanceSystemCoversEverythingDownToFunctions(t *testing.T) {
	ix := newTestIndex()
	got := ix.RelevantNodeIDs("sys")
	for _, id := range []string{"sys", "modA", "modB", "compA1", "compA2", "compB1", "fnA1a", "fnA1b", "fnA2a", "fnB1a"} {
		if _, ok := got[id]; !ok {
			t.Fatalf("missing %q in system relevance", id)
		}
	}
	if _, ok := got["fnGhost"]; ok {
		t.Fatalf("function with a broken parent link must stay out of the closure")
	}
}

func TestRelevanceBrokenParentLinkIsTolerated(t *testing.T) {
	ix := newTestIndex()
	// The orphan still covers itself when clicked directly.
	got := ix.RelevantNodeIDs("fnGhost")
	if len(got) != 1 {
		t.Fatalf("expected orphan relevance to be just itself, got %v", got)
	}
}

func TestRelevanceNestedModuleIsFlattened(t *testing.T) {
	// A module containing another module has no edge type of its own in the
	// analyzer output; the closure flattens it instead of dropping it.
	nodes := []artifact.Node{
		{ID: "outer", Stereotype: artifact.StereotypeModule},
		{ID: "inner", Stereotype: artifact.StereotypeModule},
		{ID: "comp", Stereotype: artifact.StereotypeComponent},
		{ID: "fn", Stereotype: artifact.StereotypeFunction, ParentClassID: "comp"},
	}
	edges := []artifact.Edge{
		{ID: "e1", Source: "outer", Target: "inner", Type: artifact.EdgeContains},
		{ID: "e2", Source: "inner", Target: "comp", Type: artifact.EdgeContains},
	}
	ix := NewIndex(nodes, edges)
	got := ix.RelevantNodeIDs("outer")
	for _, id := range []string{"outer", "inner", "comp", "fn"} {
		if _, ok := got[id]; !ok {
			t.Fatalf("missing %q in flattened nested-module relevance", id)
		}
	}
}
