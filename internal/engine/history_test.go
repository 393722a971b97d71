package engine

import "testing"

func TestHistorySelectPushesPreviousSelection(t *testing.T) {
	var s NavigationState
	s.Select("a", true) // nothing selected yet, nothing to push
	s.Select("b", true)

	sel, ok := s.Selected()
	if !ok || sel != "b" {
		t.Fatalf("expected b selected, got %q", sel)
	}
	hist := s.History()
	if len(hist) != 1 || hist[0] != "a" {
		t.Fatalf("expected history [a], got %v", hist)
	}
}

func TestHistorySelectWithoutPush(t *testing.T) {
	var s NavigationState
	s.Select("a", true)
	s.Select("b", false)

	if hist := s.History(); len(hist) != 0 {
		t.Fatalf("addToHistory=false must leave the stack untouched, got %v", hist)
	}
	if sel, _ := s.Selected(); sel != "b" {
		t.Fatalf("expected b selected, got %q", sel)
	}
}

func TestHistoryReselectingCurrentNodeDoesNotPush(t *testing.T) {
	var s NavigationState
	s.Select("a", true)
	s.Select("a", true)

	if hist := s.History(); len(hist) != 0 {
		t.Fatalf("re-selecting the current node must not push, got %v", hist)
	}
	if sel, _ := s.Selected(); sel != "a" {
		t.Fatalf("expected a selected, got %q", sel)
	}

	// After a real transition the same rule holds: the stack top never equals
	// the selection, so back never lands on the node already shown.
	s.Select("b", true)
	s.Select("b", true)
	if hist := s.History(); len(hist) != 1 || hist[0] != "a" {
		t.Fatalf("expected history [a], got %v", hist)
	}
	popped, ok := s.Back()
	if !ok || popped != "a" {
		t.Fatalf("expected back to yield a, got %q ok=%v", popped, ok)
	}
}

func TestHistorySelectSelectBack(t *testing.T) {
	var s NavigationState
	s.Select("A", true)
	s.Select("B", true)

	popped, ok := s.Back()
	if !ok || popped != "A" {
		t.Fatalf("expected back to yield A, got %q ok=%v", popped, ok)
	}
	if sel, _ := s.Selected(); sel != "A" {
		t.Fatalf("expected A selected after back, got %q", sel)
	}
	if hist := s.History(); len(hist) != 0 {
		t.Fatalf("expected empty history after back, got %v", hist)
	}
}

func TestHistoryBackTerminates(t *testing.T) {
	var s NavigationState
	for _, id := range []string{"a", "b", "c", "d"} {
		s.Select(id, true)
	}

	// N pushes leave N-1 stacked ids; N calls clear selection, one more is a
	// no-op. Termination must not depend on the exact count.
	depth := len(s.History())
	for i := 0; i <= depth+1; i++ {
		s.Back()
	}
	if sel, ok := s.Selected(); ok {
		t.Fatalf("expected no selection after draining history, got %q", sel)
	}
	if hist := s.History(); len(hist) != 0 {
		t.Fatalf("expected empty history, got %v", hist)
	}
}

func TestHistoryBackOnEmptyStateIsNoOp(t *testing.T) {
	var s NavigationState
	popped, ok := s.Back()
	if ok || popped != "" {
		t.Fatalf("back on empty state must report no selection, got %q ok=%v", popped, ok)
	}
	popped, ok = s.Back()
	if ok || popped != "" {
		t.Fatalf("repeated back must stay a no-op, got %q ok=%v", popped, ok)
	}
}

func TestHistoryBackDoesNotRePush(t *testing.T) {
	var s NavigationState
	s.Select("a", true)
	s.Select("b", true)
	s.Select("c", true)

	s.Back() // restores b
	if hist := s.History(); len(hist) != 1 || hist[0] != "a" {
		t.Fatalf("back must not re-push, got history %v", hist)
	}
	s.Back() // restores a
	if hist := s.History(); len(hist) != 0 {
		t.Fatalf("expected empty history, got %v", hist)
	}
}

func TestHistoryResetClearsEverything(t *testing.T) {
	var s NavigationState
	s.Select("a", true)
	s.Select("b", true)
	s.Reset()

	if _, ok := s.Selected(); ok {
		t.Fatalf("expected no selection after reset")
	}
	if hist := s.History(); len(hist) != 0 {
		t.Fatalf("expected empty history after reset, got %v", hist)
	}
}
