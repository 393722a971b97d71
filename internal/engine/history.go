package engine

// NavigationState holds the current selection and the back stack. It is
// owned by the engine; consumers read it through accessors and mutate it
// only through Select, Back and Reset.
type NavigationState struct {
	selected string
	history  []string
}

// Selected returns the current selection, if any.
func (s *NavigationState) Selected() (string, bool) {
	return s.selected, s.selected != ""
}

// History returns a copy of the back stack, oldest first.
func (s *NavigationState) History() []string {
	return append([]string(nil), s.history...)
}

// Select makes nodeID the current selection. With addToHistory set, the
// previous selection (not the new one) is pushed first; with it unset the
// selection is overwritten and the stack is untouched. Re-selecting the
// current node never pushes: the stack top must not equal the selection, or
// the next Back would restore the node the viewer is already on.
func (s *NavigationState) Select(nodeID string, addToHistory bool) {
	if addToHistory && s.selected != "" && s.selected != nodeID {
		s.history = append(s.history, s.selected)
	}
	s.selected = nodeID
}

// Back pops the most recent id off the stack and makes it the selection
// without re-pushing. With an empty stack it clears the selection instead;
// repeated calls therefore always terminate at no selection. The second
// return reports whether a selection remains.
func (s *NavigationState) Back() (string, bool) {
	if n := len(s.history); n > 0 {
		top := s.history[n-1]
		s.history = s.history[:n-1]
		s.selected = top
		return top, true
	}
	s.selected = ""
	s.history = s.history[:0]
	return "", false
}

// Reset drops the selection and the whole stack. Called on artifact
// replacement.
func (s *NavigationState) Reset() {
	s.selected = ""
	s.history = nil
}
