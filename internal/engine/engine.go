// Package engine implements the graph navigation and trace correlation core:
// subgraph selection, relevance expansion, trace filtering, navigation
// history and multi-trace time synchronization over a loaded analysis
// artifact. Every operation runs to completion synchronously; callers are
// expected to dispatch one navigation event at a time.
package engine

import (
	"flowscope/internal/artifact"
)

// ClickResult bundles everything the rendering layer needs after a node
// click: the display subgraph, the traces reduced to the clicked node's
// relevance set, and the navigation state after the click.
type ClickResult struct {
	Selection Selection        `json:"selection"`
	Traces    []artifact.Trace `json:"traces"`
	Selected  string           `json:"selected,omitempty"`
	History   []string         `json:"history"`
}

// Engine owns the immutable artifact view and the mutable navigation state.
// A new artifact load replaces the view wholesale and resets navigation.
type Engine struct {
	index  *Index
	traces []artifact.Trace
	nav    NavigationState
}

func New(a *artifact.Analysis) *Engine {
	e := &Engine{}
	e.Load(a)
	return e
}

// Load replaces the artifact. Navigation state never survives a load; a
// selection into the previous graph would be meaningless.
func (e *Engine) Load(a *artifact.Analysis) {
	if a == nil {
		e.index = NewIndex(nil, nil)
		e.traces = nil
	} else {
		e.index = NewIndex(a.CodeStructure.Nodes, a.CodeStructure.Edges)
		e.traces = a.ExecutionTrace.Traces
	}
	e.nav.Reset()
}

// Index exposes the read-only graph view.
func (e *Engine) Index() *Index {
	return e.index
}

// Click handles a forward navigation: subgraph selection and relevance
// expansion run off the same clicked node, the relevance set filters the
// traces, and the transition is recorded in history. A click on an unknown
// id returns empty results and leaves navigation untouched.
func (e *Engine) Click(nodeID string, addToHistory bool) ClickResult {
	if _, ok := e.index.Node(nodeID); !ok {
		return ClickResult{
			Selection: e.index.Select(nodeID),
			Traces:    []artifact.Trace{},
			Selected:  e.nav.selected,
			History:   e.nav.History(),
		}
	}
	sel := e.index.Select(nodeID)
	relevant := e.index.RelevantNodeIDs(nodeID)
	filtered := FilterTraces(e.traces, relevant)
	e.nav.Select(nodeID, addToHistory)
	return ClickResult{
		Selection: sel,
		Traces:    filtered,
		Selected:  nodeID,
		History:   e.nav.History(),
	}
}

// Back pops the navigation stack and re-derives the view for the restored
// selection. With an exhausted stack the selection clears and the result is
// empty; calling again is a no-op.
func (e *Engine) Back() ClickResult {
	nodeID, ok := e.nav.Back()
	if !ok {
		return ClickResult{
			Selection: Selection{Nodes: []artifact.Node{}, Edges: []artifact.Edge{}},
			Traces:    []artifact.Trace{},
			History:   e.nav.History(),
		}
	}
	return ClickResult{
		Selection: e.index.Select(nodeID),
		Traces:    FilterTraces(e.traces, e.index.RelevantNodeIDs(nodeID)),
		Selected:  nodeID,
		History:   e.nav.History(),
	}
}

// RelevantNodeIDs exposes the relevance closure for the given node.
func (e *Engine) RelevantNodeIDs(nodeID string) map[string]struct{} {
	return e.index.RelevantNodeIDs(nodeID)
}

// FilteredTraces returns the traces reduced to the given node's relevance
// set without touching navigation state.
func (e *Engine) FilteredTraces(nodeID string) []artifact.Trace {
	return FilterTraces(e.traces, e.index.RelevantNodeIDs(nodeID))
}

// Synchronize aligns the loaded traces onto the anchor's elapsed position.
func (e *Engine) Synchronize(anchorTraceID string, anchorStepIndex int) map[string]int {
	return Synchronize(anchorTraceID, anchorStepIndex, e.traces)
}

// Traces returns the loaded traces unfiltered.
func (e *Engine) Traces() []artifact.Trace {
	return e.traces
}

// Navigation reports the current selection and a copy of the back stack.
func (e *Engine) Navigation() (selected string, history []string) {
	return e.nav.selected, e.nav.History()
}
