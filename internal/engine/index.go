package engine

import (
	"flowscope/internal/artifact"
)

// Index is a read-only view over the code structure. Lookups by id are O(1)
// and edge lookups are O(degree of the node). Edges with an endpoint missing
// from the node set are dropped at build time rather than reported; the
// artifact comes from an external analyzer and is not fully trusted.
type Index struct {
	byID  map[string]artifact.Node
	nodes []artifact.Node
	edges []artifact.Edge

	outgoing map[string]map[artifact.EdgeType][]artifact.Edge
	incoming map[string]map[artifact.EdgeType][]artifact.Edge

	// function nodes keyed by the component they claim as parent. Functions
	// whose parent_class_id does not resolve to a component are left out of
	// closure traversal entirely.
	functionsOf map[string][]artifact.Node
}

func NewIndex(nodes []artifact.Node, edges []artifact.Edge) *Index {
	ix := &Index{
		byID:        make(map[string]artifact.Node, len(nodes)),
		nodes:       make([]artifact.Node, 0, len(nodes)),
		edges:       make([]artifact.Edge, 0, len(edges)),
		outgoing:    make(map[string]map[artifact.EdgeType][]artifact.Edge),
		incoming:    make(map[string]map[artifact.EdgeType][]artifact.Edge),
		functionsOf: make(map[string][]artifact.Node),
	}
	for _, n := range nodes {
		if n.ID == "" {
			continue
		}
		if _, dup := ix.byID[n.ID]; dup {
			continue
		}
		ix.byID[n.ID] = n
		ix.nodes = append(ix.nodes, n)
	}
	for _, e := range edges {
		if _, ok := ix.byID[e.Source]; !ok {
			continue
		}
		if _, ok := ix.byID[e.Target]; !ok {
			continue
		}
		ix.edges = append(ix.edges, e)
		addEdge(ix.outgoing, e.Source, e)
		addEdge(ix.incoming, e.Target, e)
	}
	for _, n := range ix.nodes {
		if n.Stereotype != artifact.StereotypeFunction || n.ParentClassID == "" {
			continue
		}
		parent, ok := ix.byID[n.ParentClassID]
		if !ok || parent.Stereotype != artifact.StereotypeComponent {
			continue
		}
		ix.functionsOf[parent.ID] = append(ix.functionsOf[parent.ID], n)
	}
	return ix
}

func addEdge(m map[string]map[artifact.EdgeType][]artifact.Edge, key string, e artifact.Edge) {
	byType, ok := m[key]
	if !ok {
		byType = make(map[artifact.EdgeType][]artifact.Edge)
		m[key] = byType
	}
	byType[e.Type] = append(byType[e.Type], e)
}

func (ix *Index) Node(id string) (artifact.Node, bool) {
	n, ok := ix.byID[id]
	return n, ok
}

// Nodes returns every indexed node in artifact order.
func (ix *Index) Nodes() []artifact.Node {
	return ix.nodes
}

// Edges returns every non-dangling edge in artifact order.
func (ix *Index) Edges() []artifact.Edge {
	return ix.edges
}

func (ix *Index) Outgoing(id string, t artifact.EdgeType) []artifact.Edge {
	return ix.outgoing[id][t]
}

func (ix *Index) Incoming(id string, t artifact.EdgeType) []artifact.Edge {
	return ix.incoming[id][t]
}

// FunctionsOf returns the function nodes whose parent_class_id resolves to
// the given component.
func (ix *Index) FunctionsOf(componentID string) []artifact.Node {
	return ix.functionsOf[componentID]
}
