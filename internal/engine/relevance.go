package engine

import (
	"flowscope/internal/artifact"
)

// RelevantNodeIDs returns the set of node ids whose execution the given node
// covers: the node itself plus its full descendant closure down to function
// level. Unlike Select, the closure depth does not depend on stereotype,
// because the result feeds trace filtering rather than display.
//
// The clicked id is always a member, even when it is unknown to the index.
// Containment is walked through `contains` edges; a module reached from
// another module is flattened into the same closure rather than rejected.
func (ix *Index) RelevantNodeIDs(nodeID string) map[string]struct{} {
	relevant := map[string]struct{}{nodeID: {}}
	clicked, ok := ix.Node(nodeID)
	if !ok {
		return relevant
	}

	switch clicked.Stereotype {
	case artifact.StereotypeFunction:
		// Functions have no children in this model.
	case artifact.StereotypeComponent:
		ix.addFunctions(relevant, clicked.ID)
	case artifact.StereotypeModule:
		ix.expandContains(relevant, clicked.ID)
	case artifact.StereotypeSystem:
		// The system covers every module regardless of explicit containment
		// edges, then each module's subtree.
		for _, n := range ix.Nodes() {
			if n.Stereotype == artifact.StereotypeModule {
				relevant[n.ID] = struct{}{}
				ix.expandContains(relevant, n.ID)
			}
		}
		ix.expandContains(relevant, clicked.ID)
	}
	return relevant
}

// expandContains walks `contains` edges breadth-first from root, collecting
// every reached module, component and function, plus each reached
// component's functions.
func (ix *Index) expandContains(out map[string]struct{}, root string) {
	queue := []string{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range ix.Outgoing(cur, artifact.EdgeContains) {
			child, ok := ix.Node(e.Target)
			if !ok {
				continue
			}
			if _, seen := out[child.ID]; seen {
				continue
			}
			switch child.Stereotype {
			case artifact.StereotypeModule:
				out[child.ID] = struct{}{}
				queue = append(queue, child.ID)
			case artifact.StereotypeComponent:
				out[child.ID] = struct{}{}
				ix.addFunctions(out, child.ID)
				queue = append(queue, child.ID)
			case artifact.StereotypeFunction:
				out[child.ID] = struct{}{}
			}
		}
	}
}

func (ix *Index) addFunctions(out map[string]struct{}, componentID string) {
	for _, fn := range ix.FunctionsOf(componentID) {
		out[fn.ID] = struct{}{}
	}
}
