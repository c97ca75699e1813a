package cortex

import (
	"reflect"
	"testing"
)

func TestRelates(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"a", "a", true},
		{"a", "a.b", true},
		{"a.b", "a", true},
		{"a.b", "a.b.c", true},
		{"a", "b", false},
		{"a.b", "a.c", false},
		{"user", "username", false},
		{"username", "user", false},
		{"", "anything.at.all", true},
		{"anything", "", true},
		{"", "", true},
	}
	for _, c := range cases {
		if got := relates(c.a, c.b); got != c.want {
			t.Errorf("relates(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
		if got := relates(c.b, c.a); got != c.want {
			t.Errorf("relates(%q, %q) = %v, want %v (symmetry)", c.b, c.a, got, c.want)
		}
	}
}

func TestGetPath(t *testing.T) {
	m := map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": 3},
		},
		"x": 1,
	}

	if v, ok := getPath(m, "a.b.c"); !ok || v != 3 {
		t.Errorf("expected (3, true), got (%v, %v)", v, ok)
	}
	if v, ok := getPath(m, "x"); !ok || v != 1 {
		t.Errorf("expected (1, true), got (%v, %v)", v, ok)
	}
	if _, ok := getPath(m, "a.missing"); ok {
		t.Error("expected miss for absent key")
	}
	if _, ok := getPath(m, "x.deeper"); ok {
		t.Error("expected miss when walking through a scalar")
	}
	if v, ok := getPath(m, ""); !ok || !reflect.DeepEqual(v, m) {
		t.Errorf("expected whole tree for empty path, got (%v, %v)", v, ok)
	}
}

func TestSetPathCreatesIntermediates(t *testing.T) {
	m := map[string]any{}
	setPath(m, "a.b.c", 42)

	if v, ok := getPath(m, "a.b.c"); !ok || v != 42 {
		t.Errorf("expected 42, got (%v, %v)", v, ok)
	}
}

func TestSetPathReplacesScalarIntermediate(t *testing.T) {
	m := map[string]any{"a": 1}
	setPath(m, "a.b", "deep")

	if v, ok := getPath(m, "a.b"); !ok || v != "deep" {
		t.Errorf("expected write to win over scalar intermediate, got (%v, %v)", v, ok)
	}
}

func TestDeletePath(t *testing.T) {
	m := map[string]any{
		"a": map[string]any{"b": 1, "keep": 2},
	}

	deletePath(m, "a.b")
	if _, ok := getPath(m, "a.b"); ok {
		t.Error("expected a.b removed")
	}
	if v, _ := getPath(m, "a.keep"); v != 2 {
		t.Error("expected sibling untouched")
	}

	deletePath(m, "missing.entirely")
}

func TestJoinPath(t *testing.T) {
	cases := []struct {
		prefix, path, want string
	}{
		{"", "a", "a"},
		{"a", "", "a"},
		{"a", "b.c", "a.b.c"},
		{"", "", ""},
	}
	for _, c := range cases {
		if got := joinPath(c.prefix, c.path); got != c.want {
			t.Errorf("joinPath(%q, %q) = %q, want %q", c.prefix, c.path, got, c.want)
		}
	}
}
