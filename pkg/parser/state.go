package parser

// State is the context carried from one line to the next within a single
// pass. It is a value: Apply returns the next state and never mutates.
type State struct {
	// Category is the current category set by the last "@Name" line, or "".
	Category string
	// InNonWork is true between the section marker and the next "@Name" line.
	InNonWork bool
}

// Apply returns the state after a line classified as a.
func (s State) Apply(a Action) State {
	switch a.Kind {
	case ActionEnterNonWork:
		s.InNonWork = true
	case ActionDeclareCategory:
		s.InNonWork = false
		if a.Category != "" {
			s.Category = a.Category
		}
	}
	return s
}
