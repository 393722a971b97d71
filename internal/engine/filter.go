package engine

import (
	"flowscope/internal/artifact"
)

// FilterTraces reduces each trace to the steps whose node id is in the
// relevance set. Traces left with no matching step are dropped. Trace order
// and step order are preserved, and the inputs are never mutated; the result
// is a fresh slice with fresh step slices, so calling twice with the same
// inputs yields structurally identical output.
func FilterTraces(traces []artifact.Trace, relevant map[string]struct{}) []artifact.Trace {
	out := make([]artifact.Trace, 0, len(traces))
	for _, tr := range traces {
		steps := make([]artifact.Step, 0, len(tr.Steps))
		for _, s := range tr.Steps {
			if s.NodeID == "" {
				continue
			}
			if _, ok := relevant[s.NodeID]; ok {
				steps = append(steps, s)
			}
		}
		if len(steps) == 0 {
			continue
		}
		filtered := tr
		filtered.Steps = steps
		out = append(out, filtered)
	}
	return out
}
