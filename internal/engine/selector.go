package engine

import (
	"flowscope/internal/artifact"
)

// Selection is the subgraph to display for a clicked node. Nodes and edges
// keep artifact order so repeated clicks render identically.
type Selection struct {
	Nodes []artifact.Node `json:"nodes"`
	Edges []artifact.Edge `json:"edges"`
}

// Select computes the display subgraph for the clicked node. Exactly one
// rule fires, keyed by the clicked node's stereotype:
//
//	system:    the system plus every module
//	module:    the module plus each component it directly contains
//	component: the component plus its functions (by parent_class_id)
//	function:  the function plus every direct outgoing call target
//
// An unknown id yields an empty selection; that is a recoverable condition,
// not an error. Edges are filtered afterwards to those with both endpoints
// in the chosen node set.
func (ix *Index) Select(nodeID string) Selection {
	clicked, ok := ix.Node(nodeID)
	if !ok {
		return Selection{Nodes: []artifact.Node{}, Edges: []artifact.Edge{}}
	}

	keep := make(map[string]struct{})
	switch clicked.Stereotype {
	case artifact.StereotypeSystem:
		for _, n := range ix.Nodes() {
			if n.Stereotype == artifact.StereotypeSystem || n.Stereotype == artifact.StereotypeModule {
				keep[n.ID] = struct{}{}
			}
		}
	case artifact.StereotypeModule:
		keep[clicked.ID] = struct{}{}
		for _, e := range ix.Outgoing(clicked.ID, artifact.EdgeContains) {
			if child, ok := ix.Node(e.Target); ok && child.Stereotype == artifact.StereotypeComponent {
				keep[child.ID] = struct{}{}
			}
		}
	case artifact.StereotypeComponent:
		keep[clicked.ID] = struct{}{}
		for _, fn := range ix.FunctionsOf(clicked.ID) {
			keep[fn.ID] = struct{}{}
		}
	case artifact.StereotypeFunction:
		keep[clicked.ID] = struct{}{}
		for _, e := range ix.Outgoing(clicked.ID, artifact.EdgeCalls) {
			keep[e.Target] = struct{}{}
		}
	default:
		// Unknown stereotype: show just the node itself.
		keep[clicked.ID] = struct{}{}
	}

	return ix.closure(keep)
}

// closure materializes a node-id set into a Selection, keeping only edges
// with both endpoints inside the set.
func (ix *Index) closure(keep map[string]struct{}) Selection {
	sel := Selection{
		Nodes: make([]artifact.Node, 0, len(keep)),
		Edges: []artifact.Edge{},
	}
	for _, n := range ix.Nodes() {
		if _, ok := keep[n.ID]; ok {
			sel.Nodes = append(sel.Nodes, n)
		}
	}
	for _, e := range ix.Edges() {
		if _, ok := keep[e.Source]; !ok {
			continue
		}
		if _, ok := keep[e.Target]; !ok {
			continue
		}
		sel.Edges = append(sel.Edges, e)
	}
	return sel
}
