package catalog

import (
	"encoding/json"
	"testing"
)

func TestToggleSetMember_DoubleToggleIsNoop(t *testing.T) {
	sets := []Set[string]{
		nil,
		NewSet[string](),
		NewSet("ROUND"),
		NewSet("ROUND", "OVAL", "CAT_EYE"),
	}
	for _, s := range sets {
		for _, v := range []string{"ROUND", "POLYGON", ""} {
			got := ToggleSetMember(ToggleSetMember(s, v), v)
			if !got.Equal(s) {
				t.Errorf("toggle twice %v with %q = %v", s.Values(), v, got.Values())
			}
		}
	}
}

func TestToggleSetMember_DoesNotMutate(t *testing.T) {
	s := NewSet("ROUND")
	added := ToggleSetMember(s, "OVAL")
	removed := ToggleSetMember(s, "ROUND")
	if s.Len() != 1 || !s.Has("ROUND") {
		t.Errorf("input mutated: %v", s.Values())
	}
	if !added.Has("OVAL") || !added.Has("ROUND") {
		t.Errorf("added = %v", added.Values())
	}
	if removed.Len() != 0 {
		t.Errorf("removed = %v", removed.Values())
	}
}

func TestSet_JSON(t *testing.T) {
	b, err := json.Marshal(NewSet("b", "a"))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `["a","b"]` {
		t.Errorf("Marshal = %s", b)
	}
	var s Set[string]
	if err := json.Unmarshal([]byte(`["x","y","x"]`), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.Len() != 2 || !s.Has("x") || !s.Has("y") {
		t.Errorf("Unmarshal = %v", s.Values())
	}
}

func TestSet_SubsetOf(t *testing.T) {
	if !NewSet("a").SubsetOf(NewSet("a", "b")) {
		t.Error("{a} should be subset of {a b}")
	}
	if NewSet("a", "c").SubsetOf(NewSet("a", "b")) {
		t.Error("{a c} should not be subset of {a b}")
	}
	var empty Set[string]
	if !empty.SubsetOf(NewSet("a")) {
		t.Error("nil set is a subset of everything")
	}
}
