package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"flowscope/internal/progress"
	artifactstore "flowscope/internal/repository/artifact"
	"flowscope/internal/session"
)

// Keep imports bounded; analysis blobs beyond this are rejected up front.
const maxArtifactBytes = 256 << 20

// ArtifactHandler imports and exports raw analysis artifacts, reporting
// import progress through the broker.
type ArtifactHandler struct {
	svc    *session.Service
	broker *progress.Broker
}

func NewArtifactHandler(svc *session.Service, broker *progress.Broker) *ArtifactHandler {
	return &ArtifactHandler{svc: svc, broker: broker}
}

func (h *ArtifactHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	projectID := strings.TrimSpace(r.URL.Query().Get("project_id"))
	if projectID == "" {
		http.Error(w, "project_id is required", http.StatusBadRequest)
		return
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxArtifactBytes))
	if err != nil {
		http.Error(w, "read body failed", http.StatusBadRequest)
		return
	}
	h.broker.Publish(progress.Event{ProjectID: projectID, Stage: "received", Percent: 25})

	a, err := h.svc.Import(r.Context(), projectID, raw)
	if err != nil {
		h.broker.Publish(progress.Event{
			ProjectID: projectID,
			Stage:     "failed",
			Message:   err.Error(),
			Percent:   100,
		})
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.broker.Publish(progress.Event{ProjectID: projectID, Stage: "stored", Percent: 100})

	writeJSON(w, map[string]any{
		"project_id": projectID,
		"project":    a.Metadata.ProjectName,
		"nodes":      len(a.CodeStructure.Nodes),
		"edges":      len(a.CodeStructure.Edges),
		"traces":     len(a.ExecutionTrace.Traces),
	})
}

func (h *ArtifactHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	projectID := strings.TrimSpace(r.URL.Query().Get("project_id"))
	if projectID == "" {
		http.Error(w, "project_id is required", http.StatusBadRequest)
		return
	}
	raw, err := h.svc.Export(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, artifactstore.ErrNotFound) {
			http.Error(w, "artifact not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}
