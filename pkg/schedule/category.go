package schedule

// CategorySet is a set of category names that remembers first-seen order.
// Names are case-sensitive. The zero value is ready to use.
type CategorySet struct {
	names []string
	index map[string]struct{}
}

// NewCategorySet builds a set from names, dropping duplicates and empty names.
func NewCategorySet(names ...string) *CategorySet {
	s := &CategorySet{}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name and reports whether it was new.
func (s *CategorySet) Add(name string) bool {
	if name == "" {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = struct{}{}
	s.names = append(s.names, name)
	return true
}

// Contains reports whether name is in the set.
func (s *CategorySet) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// Len is the number of names.
func (s *CategorySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns a copy of the names in first-seen order.
func (s *CategorySet) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Without returns the names of s not present in other, in first-seen order.
func (s *CategorySet) Without(other *CategorySet) []string {
	out := make([]string, 0, s.Len())
	for _, n := range s.Names() {
		if !other.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// Category is a name with its resolved display color.
type Category struct {
	Name    string `json:"name" yaml:"name"`
	Color   string `json:"color" yaml:"color"`
	NonWork bool   `json:"non_work,omitempty" yaml:"non_work,omitempty"`
}
