package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"flowscope/internal/artifact"
	artifactstore "flowscope/internal/repository/artifact"
)

func sampleArtifactJSON(t *testing.T, projectName string) []byte {
	t.Helper()
	a := artifact.Analysis{
		Metadata: artifact.Metadata{ProjectName: projectName},
		CodeStructure: artifact.CodeStructure{
			Nodes: []artifact.Node{
				{ID: "sys", Name: projectName, Stereotype: artifact.StereotypeSystem},
				{ID: "mod", Name: "pkg", Stereotype: artifact.StereotypeModule},
				{ID: "comp", Name: "Svc", Stereotype: artifact.StereotypeComponent},
				{ID: "fn", Name: "run", Stereotype: artifact.StereotypeFunction, ParentClassID: "comp"},
			},
			Edges: []artifact.Edge{
				{ID: "e1", Source: "sys", Target: "mod", Type: artifact.EdgeContains},
				{ID: "e2", Source: "mod", Target: "comp", Type: artifact.EdgeContains},
			},
		},
		ExecutionTrace: artifact.ExecutionTrace{
			Traces: []artifact.Trace{
				{TraceID: "t1", Steps: []artifact.Step{{ID: "s1", NodeID: "fn", DurationMs: 10}}},
			},
		},
	}
	raw, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return raw
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(artifactstore.NewMemoryStore())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestImportThenOpenAndNavigate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Import(ctx, "proj", sampleArtifactJSON(t, "demo")); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if err := svc.Open(ctx, "sess", "proj"); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	res, err := svc.Click("sess", "comp", true)
	if err != nil {
		t.Fatalf("click failed: %v", err)
	}
	if res.Selected != "comp" || len(res.Traces) != 1 {
		t.Fatalf("unexpected click result: selected=%q traces=%d", res.Selected, len(res.Traces))
	}
}

func TestImportReplacesArtifactAndResetsOpenSessions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Import(ctx, "proj", sampleArtifactJSON(t, "before")); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if err := svc.Open(ctx, "sess", "proj"); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := svc.Click("sess", "mod", true); err != nil {
		t.Fatalf("click failed: %v", err)
	}
	if _, err := svc.Click("sess", "comp", true); err != nil {
		t.Fatalf("click failed: %v", err)
	}

	if _, err := svc.Import(ctx, "proj", sampleArtifactJSON(t, "after")); err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	selected, history, err := svc.Navigation("sess")
	if err != nil {
		t.Fatalf("navigation failed: %v", err)
	}
	if selected != "" || len(history) != 0 {
		t.Fatalf("re-import must reset navigation, got %q %v", selected, history)
	}
}

func TestOpenUnknownProjectFails(t *testing.T) {
	svc := newTestService(t)
	err := svc.Open(context.Background(), "sess", "ghost")
	if err == nil {
		t.Fatalf("expected error for missing artifact")
	}
	if !errors.Is(err, artifactstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound in chain, got %v", err)
	}
}

func TestOperationsWithoutSession(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Click("nope", "x", true); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if _, err := svc.Back("nope"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if _, err := svc.Synchronize("nope", "t1", 0); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestImportRejectsMalformedArtifact(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Import(context.Background(), "proj", []byte("{broken")); err == nil {
		t.Fatalf("expected decode error")
	}
	// Nothing was persisted.
	if _, err := svc.Export(context.Background(), "proj"); !errors.Is(err, artifactstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after failed import, got %v", err)
	}
}

func TestCloseSessionIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Import(ctx, "proj", sampleArtifactJSON(t, "demo")); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if err := svc.Open(ctx, "sess", "proj"); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	svc.Close("sess")
	svc.Close("sess")
	if _, err := svc.Back("sess"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after close, got %v", err)
	}
}
