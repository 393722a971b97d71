package artifact

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Decode parses a raw analysis artifact. Validation is limited to what
// traversal needs: nodes and edges without an id are dropped, duplicate node
// ids keep the first occurrence, and steps with negative durations are
// clamped to zero. Dangling edges are kept here; the graph index skips them.
func Decode(raw []byte) (*Analysis, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("artifact is empty")
	}
	var a Analysis
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	a.CodeStructure.Nodes = sanitizeNodes(a.CodeStructure.Nodes)
	a.CodeStructure.Edges = sanitizeEdges(a.CodeStructure.Edges)
	a.ExecutionTrace.Traces = sanitizeTraces(a.ExecutionTrace.Traces)
	return &a, nil
}

// Encode serializes an analysis back to the wire form used for export.
func Encode(a *Analysis) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("analysis is nil")
	}
	return json.MarshalIndent(a, "", "  ")
}

func sanitizeNodes(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		n.ID = strings.TrimSpace(n.ID)
		if n.ID == "" {
			continue
		}
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		n.ParentClassID = strings.TrimSpace(n.ParentClassID)
		out = append(out, n)
	}
	return out
}

func sanitizeEdges(edges []Edge) []Edge {
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		e.Source = strings.TrimSpace(e.Source)
		e.Target = strings.TrimSpace(e.Target)
		if strings.TrimSpace(e.ID) == "" || e.Source == "" || e.Target == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

func sanitizeTraces(traces []Trace) []Trace {
	out := make([]Trace, 0, len(traces))
	for _, tr := range traces {
		tr.TraceID = strings.TrimSpace(tr.TraceID)
		if tr.TraceID == "" {
			continue
		}
		steps := make([]Step, 0, len(tr.Steps))
		for _, s := range tr.Steps {
			s.NodeID = strings.TrimSpace(s.NodeID)
			if s.DurationMs < 0 {
				s.DurationMs = 0
			}
			steps = append(steps, s)
		}
		tr.Steps = steps
		out = append(out, tr)
	}
	return out
}
