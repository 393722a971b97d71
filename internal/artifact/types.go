package artifact

// Stereotype classifies a graph node. It drives both the display rules and
// the relevance closure.
type Stereotype string

const (
	StereotypeSystem    Stereotype = "system"
	StereotypeModule    Stereotype = "module"
	StereotypeComponent Stereotype = "component"
	StereotypeFunction  Stereotype = "function"
)

func (s Stereotype) Valid() bool {
	switch s {
	case StereotypeSystem, StereotypeModule, StereotypeComponent, StereotypeFunction:
		return true
	}
	return false
}

// Node is one element of the analyzed code structure.
// Metadata carries analyzer-specific extras the engine never interprets.
type Node struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Stereotype    Stereotype     `json:"stereotype"`
	ParentClassID string         `json:"parent_class_id,omitempty"`
	FilePath      string         `json:"file_path,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

type EdgeType string

const (
	EdgeContains  EdgeType = "contains"
	EdgeCalls     EdgeType = "calls"
	EdgeInherits  EdgeType = "inherits"
	EdgeDependsOn EdgeType = "depends_on"
)

type Edge struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`
}

// Step is one entry of a recorded execution trace. NodeID is optional; a
// step without one can never match a relevance set. DurationMs is optional
// and treated as zero when absent.
type Step struct {
	ID         string  `json:"id"`
	NodeID     string  `json:"node_id,omitempty"`
	Label      string  `json:"label,omitempty"`
	DurationMs float64 `json:"duration_ms,omitempty"`
}

type Trace struct {
	TraceID string `json:"trace_id"`
	Name    string `json:"name,omitempty"`
	Steps   []Step `json:"steps"`
}

type Metadata struct {
	ProjectName       string `json:"project_name"`
	ProjectType       string `json:"project_type,omitempty"`
	AnalysisTimestamp string `json:"analysis_timestamp,omitempty"`
	ProtocolVersion   string `json:"protocol_version,omitempty"`
	AnalyzerVersion   string `json:"analyzer_version,omitempty"`
}

type CodeStructure struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

type ExecutionTrace struct {
	Traces []Trace `json:"traces"`
}

// Analysis is the artifact an analyzer run produces. Behavior carries the
// launch-button block opaquely; the engine only reads structure and traces.
type Analysis struct {
	Metadata       Metadata       `json:"metadata"`
	CodeStructure  CodeStructure  `json:"code_structure"`
	Behavior       map[string]any `json:"behavior_metadata,omitempty"`
	ExecutionTrace ExecutionTrace `json:"execution_trace"`
}
