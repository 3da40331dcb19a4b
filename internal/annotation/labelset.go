package annotation

import (
	"slices"
	"strings"

	"github.com/abhisek/tacit/internal/taxonomy"
)

// LabelSet is an unordered set of labels. The zero value is an empty set
// ready for use. A LabelSet shares its storage when copied; use Clone for an
// independent copy.
type LabelSet struct {
	m map[taxonomy.Label]struct{}
}

// NewLabelSet builds a set from the given labels. Duplicates collapse.
func NewLabelSet(labels ...taxonomy.Label) LabelSet {
	s := LabelSet{m: make(map[taxonomy.Label]struct{}, len(labels))}
	for _, l := range labels {
		s.m[l] = struct{}{}
	}
	return s
}

// Toggle adds l if absent and removes it if present. It reports whether l is
// a member after the call.
func (s *LabelSet) Toggle(l taxonomy.Label) bool {
	if s.m == nil {
		s.m = make(map[taxonomy.Label]struct{})
	}
	if _, ok := s.m[l]; ok {
		delete(s.m, l)
		return false
	}
	s.m[l] = struct{}{}
	return true
}

// Contains reports whether l is in the set.
func (s LabelSet) Contains(l taxonomy.Label) bool {
	_, ok := s.m[l]
	return ok
}

// Clear removes every label.
func (s *LabelSet) Clear() {
	clear(s.m)
}

// IsEmpty reports whether the set has no labels.
func (s LabelSet) IsEmpty() bool {
	return len(s.m) == 0
}

// Len returns the number of labels in the set.
func (s LabelSet) Len() int {
	return len(s.m)
}

// Labels returns the members in taxonomy display order. Labels outside the
// taxonomy follow, sorted lexically.
func (s LabelSet) Labels() []taxonomy.Label {
	out := make([]taxonomy.Label, 0, len(s.m))
	for l := range s.m {
		out = append(out, l)
	}
	slices.SortFunc(out, compareDisplay)
	return out
}

// Strings is Labels as plain strings.
func (s LabelSet) Strings() []string {
	labels := s.Labels()
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = string(l)
	}
	return out
}

// Clone returns an independent copy.
func (s LabelSet) Clone() LabelSet {
	c := LabelSet{m: make(map[taxonomy.Label]struct{}, len(s.m))}
	for l := range s.m {
		c.m[l] = struct{}{}
	}
	return c
}

// Equal reports whether both sets hold exactly the same labels.
func (s LabelSet) Equal(o LabelSet) bool {
	if len(s.m) != len(o.m) {
		return false
	}
	for l := range s.m {
		if _, ok := o.m[l]; !ok {
			return false
		}
	}
	return true
}

// Union returns s ∪ o.
func (s LabelSet) Union(o LabelSet) LabelSet {
	u := s.Clone()
	for l := range o.m {
		u.m[l] = struct{}{}
	}
	return u
}

// Intersect returns s ∩ o.
func (s LabelSet) Intersect(o LabelSet) LabelSet {
	out := LabelSet{m: make(map[taxonomy.Label]struct{})}
	for l := range s.m {
		if _, ok := o.m[l]; ok {
			out.m[l] = struct{}{}
		}
	}
	return out
}

// Difference returns s − o.
func (s LabelSet) Difference(o LabelSet) LabelSet {
	out := LabelSet{m: make(map[taxonomy.Label]struct{})}
	for l := range s.m {
		if _, ok := o.m[l]; !ok {
			out.m[l] = struct{}{}
		}
	}
	return out
}

// String renders the set as a comma-separated list in display order.
func (s LabelSet) String() string {
	return strings.Join(s.Strings(), ", ")
}

func compareDisplay(a, b taxonomy.Label) int {
	ia, ib := taxonomy.Index(a), taxonomy.Index(b)
	switch {
	case ia >= 0 && ib >= 0:
		return ia - ib
	case ia >= 0:
		return -1
	case ib >= 0:
		return 1
	}
	return strings.Compare(string(a), string(b))
}
