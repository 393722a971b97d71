package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	artifactstore "flowscope/internal/repository/artifact"
	"flowscope/internal/session"
)

// NavigationHandler exposes the engine operations to the rendering shell.
type NavigationHandler struct {
	svc *session.Service
}

func NewNavigationHandler(svc *session.Service) *NavigationHandler {
	return &NavigationHandler{svc: svc}
}

func (h *NavigationHandler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		SessionID string `json:"session_id"`
		ProjectID string `json:"project_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if err := h.svc.Open(r.Context(), in.SessionID, in.ProjectID); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, artifactstore.ErrNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

func (h *NavigationHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		SessionID    string `json:"session_id"`
		NodeID       string `json:"node_id"`
		AddToHistory bool   `json:"add_to_history"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(in.NodeID) == "" {
		http.Error(w, "node_id is required", http.StatusBadRequest)
		return
	}
	res, err := h.svc.Click(in.SessionID, in.NodeID, in.AddToHistory)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, res)
}

func (h *NavigationHandler) HandleBack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	res, err := h.svc.Back(in.SessionID)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, res)
}

func (h *NavigationHandler) HandleSynchronize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		SessionID       string `json:"session_id"`
		AnchorTraceID   string `json:"anchor_trace_id"`
		AnchorStepIndex int    `json:"anchor_step_index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(in.AnchorTraceID) == "" {
		http.Error(w, "anchor_trace_id is required", http.StatusBadRequest)
		return
	}
	targets, err := h.svc.Synchronize(in.SessionID, in.AnchorTraceID, in.AnchorStepIndex)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, map[string]any{"targets": targets})
}

func (h *NavigationHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	selected, history, err := h.svc.Navigation(r.URL.Query().Get("session_id"))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"selected": selected,
		"history":  history,
	})
}

func writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrNoSession) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
