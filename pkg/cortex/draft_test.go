package cortex

import (
	"reflect"
	"testing"
)

func TestDraftRecordsWritePaths(t *testing.T) {
	d := newDraft(map[string]any{"a": map[string]any{"b": 1}})

	d.Set("a.b", 2)
	d.Set("c", 3)
	d.Set("a.b", 4) // duplicate path records once

	want := []string{"a.b", "c"}
	if !reflect.DeepEqual(d.changed, want) {
		t.Errorf("expected changed %v, got %v", want, d.changed)
	}
	if got := d.Get("a.b"); got != 4 {
		t.Errorf("expected last write to win, got %v", got)
	}
}

func TestDraftSubRecordsPrefixedPaths(t *testing.T) {
	d := newDraft(map[string]any{"user": map[string]any{}})

	u := d.Sub("user")
	u.Set("name", "ada")
	u.Sub("prefs").Set("theme", "dark")

	want := []string{"user.name", "user.prefs", "user.prefs.theme"}
	if !reflect.DeepEqual(d.changed, want) {
		t.Errorf("expected changed %v, got %v", want, d.changed)
	}
	if got := d.Get("user.prefs.theme"); got != "dark" {
		t.Errorf("expected dark, got %v", got)
	}
}

func TestDraftSubMaterializesMissingMap(t *testing.T) {
	d := newDraft(map[string]any{})

	d.Sub("settings").Set("lang", "en")

	if got := d.Get("settings.lang"); got != "en" {
		t.Errorf("expected en, got %v", got)
	}
	// Materializing the map is itself a change.
	if len(d.changed) == 0 || d.changed[0] != "settings" {
		t.Errorf("expected settings recorded first, got %v", d.changed)
	}
}

func TestDraftSubOverScalarReplaces(t *testing.T) {
	d := newDraft(map[string]any{"user": "just a string"})

	d.Sub("user").Set("name", "ada")

	if got := d.Get("user.name"); got != "ada" {
		t.Errorf("expected write through replaced intermediate, got %v", got)
	}
}

func TestDraftDeleteRecords(t *testing.T) {
	d := newDraft(map[string]any{"a": 1})

	d.Delete("a")
	d.Delete("never.existed")

	want := []string{"a", "never.existed"}
	if !reflect.DeepEqual(d.changed, want) {
		t.Errorf("expected deletes recorded, got %v", d.changed)
	}
	if d.Get("a") != nil {
		t.Error("expected a removed from draft")
	}
}

func TestDraftEmptyPathNoops(t *testing.T) {
	d := newDraft(map[string]any{"a": 1})

	d.Set("", 9)
	d.Delete("")
	if sub := d.Sub(""); sub != d {
		t.Error("expected Sub of empty path to return the same draft")
	}
	if len(d.changed) != 0 {
		t.Errorf("expected no changes recorded, got %v", d.changed)
	}
}
