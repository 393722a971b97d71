// Package session maps viewer sessions onto navigation engines. Each
// session owns one engine; every call on a session is serialized by a
// per-session lock so a select always completes (history push included)
// before the next back is observed.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"flowscope/internal/artifact"
	"flowscope/internal/engine"
	artifactstore "flowscope/internal/repository/artifact"
)

// AnalysisPath is the canonical artifact path within a project.
const AnalysisPath = "analysis.json"

var ErrNoSession = fmt.Errorf("session not found")

type session struct {
	mu        sync.Mutex
	projectID string
	eng       *engine.Engine
}

// Service loads analysis artifacts through the store and keeps decoded
// artifacts in an LRU so reopening a project skips the decode.
type Service struct {
	store artifactstore.Store

	mu       sync.Mutex
	sessions map[string]*session
	decoded  *lru.Cache[string, *artifact.Analysis]
}

func NewService(store artifactstore.Store) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	cache, err := lru.New[string, *artifact.Analysis](64)
	if err != nil {
		return nil, err
	}
	return &Service{
		store:    store,
		sessions: make(map[string]*session),
		decoded:  cache,
	}, nil
}

// Import validates and persists a raw artifact, then reloads every open
// session on that project. Reloading resets each session's navigation
// state; a selection into the replaced graph would be meaningless.
func (s *Service) Import(ctx context.Context, projectID string, raw []byte) (*artifact.Analysis, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, fmt.Errorf("project_id is required")
	}
	a, err := artifact.Decode(raw)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, projectID, AnalysisPath, raw); err != nil {
		return nil, fmt.Errorf("persist artifact: %w", err)
	}

	s.mu.Lock()
	s.decoded.Add(projectID, a)
	open := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if sess.projectID == projectID {
			open = append(open, sess)
		}
	}
	s.mu.Unlock()

	for _, sess := range open {
		sess.mu.Lock()
		sess.eng.Load(a)
		sess.mu.Unlock()
	}
	return a, nil
}

// Export returns the raw stored artifact.
func (s *Service) Export(ctx context.Context, projectID string) ([]byte, error) {
	return s.store.Get(ctx, projectID, AnalysisPath)
}

// Open binds a session to a project's artifact, creating the session if
// needed. Opening always starts from empty navigation state.
func (s *Service) Open(ctx context.Context, sessionID, projectID string) error {
	sessionID = strings.TrimSpace(sessionID)
	projectID = strings.TrimSpace(projectID)
	if sessionID == "" {
		return fmt.Errorf("session_id is required")
	}
	if projectID == "" {
		return fmt.Errorf("project_id is required")
	}
	a, err := s.analysisFor(ctx, projectID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{}
		s.sessions[sessionID] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.projectID = projectID
	if sess.eng == nil {
		sess.eng = engine.New(a)
	} else {
		sess.eng.Load(a)
	}
	return nil
}

// Close drops a session. Unknown ids are a no-op.
func (s *Service) Close(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, strings.TrimSpace(sessionID))
}

// Click runs a forward navigation on the session's engine.
func (s *Service) Click(sessionID, nodeID string, addToHistory bool) (engine.ClickResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return engine.ClickResult{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.eng.Click(nodeID, addToHistory), nil
}

// Back runs a back navigation on the session's engine.
func (s *Service) Back(sessionID string) (engine.ClickResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return engine.ClickResult{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.eng.Back(), nil
}

// Synchronize aligns the session's traces onto the anchor position.
func (s *Service) Synchronize(sessionID, anchorTraceID string, anchorStepIndex int) (map[string]int, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.eng.Synchronize(anchorTraceID, anchorStepIndex), nil
}

// Navigation reports the session's current selection and history.
func (s *Service) Navigation(sessionID string) (selected string, history []string, err error) {
	sess, sErr := s.session(sessionID)
	if sErr != nil {
		return "", nil, sErr
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	selected, history = sess.eng.Navigation()
	return selected, history, nil
}

func (s *Service) session(sessionID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[strings.TrimSpace(sessionID)]
	if !ok || sess.eng == nil {
		return nil, ErrNoSession
	}
	return sess, nil
}

func (s *Service) analysisFor(ctx context.Context, projectID string) (*artifact.Analysis, error) {
	s.mu.Lock()
	cached, ok := s.decoded.Get(projectID)
	s.mu.Unlock()
	if ok {
		return cached, nil
	}
	raw, err := s.store.Get(ctx, projectID, AnalysisPath)
	if err != nil {
		return nil, fmt.Errorf("load artifact for %s: %w", projectID, err)
	}
	a, err := artifact.Decode(raw)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.decoded.Add(projectID, a)
	s.mu.Unlock()
	return a, nil
}
