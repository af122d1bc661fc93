package catalog

import (
	"cmp"
	"encoding/json"
	"slices"
)

// Set is an unordered set of filter values.
type Set[T cmp.Ordered] map[T]struct{}

// NewSet builds a set from values.
func NewSet[T cmp.Ordered](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

func (s Set[T]) Len() int { return len(s) }

// Values returns the members in ascending order.
func (s Set[T]) Values() []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Clone returns a copy; a nil set clones to an empty set.
func (s Set[T]) Clone() Set[T] {
	out := make(Set[T], len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

// Equal reports whether both sets have the same members.
func (s Set[T]) Equal(o Set[T]) bool {
	if len(s) != len(o) {
		return false
	}
	for v := range s {
		if !o.Has(v) {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every member of s is in o.
func (s Set[T]) SubsetOf(o Set[T]) bool {
	for v := range s {
		if !o.Has(v) {
			return false
		}
	}
	return true
}

func (s Set[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

func (s *Set[T]) UnmarshalJSON(b []byte) error {
	var values []T
	if err := json.Unmarshal(b, &values); err != nil {
		return err
	}
	*s = NewSet(values...)
	return nil
}

// ToggleSetMember returns a new set with value added if absent or removed
// if present. The input is not modified.
func ToggleSetMember[T cmp.Ordered](s Set[T], value T) Set[T] {
	out := s.Clone()
	if out.Has(value) {
		delete(out, value)
	} else {
		out[value] = struct{}{}
	}
	return out
}
