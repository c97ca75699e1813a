package vdom

import (
	"testing"

	"github.com/axon-ui/axon/pkg/host/memdom"
	"github.com/axon-ui/axon/pkg/track"
)

func renderKeyedList(ids []int) *VNode {
	return H("ul", nil, Map(ids, func(id, _ int) *VNode {
		return H("li", Props{"key": id, "data-id": id}, Textf("item %d", id))
	}))
}

func TestKeyedReorderPreservesIdentity(t *testing.T) {
	prev := renderKeyedList([]int{1, 2, 3})
	_, root, r := mount(t, prev)

	// Remember the live node behind id 1.
	nodeOne := memdom.FindByAttr(root, "data-id", "1")
	if nodeOne == nil {
		t.Fatal("expected node for id 1")
	}

	next := renderKeyedList([]int{3, 2, 1})
	r.Patch(root, next, prev, 0)

	ul := next.El
	if got := ul.ChildCount(); got != 3 {
		t.Fatalf("expected 3 children, got %d", got)
	}
	if ul.ChildAt(2) != nodeOne {
		t.Error("expected id 1 to be the same live node at its new position")
	}
	if got, _ := ul.ChildAt(0).Attribute("data-id"); got != "3" {
		t.Errorf("expected id 3 first, got %s", got)
	}
	if got := memdom.TextContent(root); got != "item 3item 2item 1" {
		t.Errorf("unexpected order: %q", got)
	}
}

func TestKeyedRemovalRunsCleanups(t *testing.T) {
	cleaned := map[string]int{}
	item := func(p Props) *VNode {
		id, _ := p["id"].(string)
		track.OnCleanup(func() { cleaned[id]++ })
		return H("li", nil, id)
	}
	render := func(ids []string) *VNode {
		return H("ul", nil, Map(ids, func(id string, _ int) *VNode {
			return H(item, Props{"key": id, "id": id})
		}))
	}

	prev := render([]string{"a", "b", "c"})
	_, root, r := mount(t, prev)

	next := render([]string{"a", "c"})
	r.Patch(root, next, prev, 0)

	if cleaned["b"] != 1 {
		t.Errorf("expected b cleaned up once, got %d", cleaned["b"])
	}
	if cleaned["a"] != 0 || cleaned["c"] != 0 {
		t.Errorf("expected surviving items untouched, got %v", cleaned)
	}
	if got := memdom.TextContent(root); got != "ac" {
		t.Errorf("unexpected content: %q", got)
	}
}

func TestKeyedInsertAtFront(t *testing.T) {
	prev := renderKeyedList([]int{2, 3})
	_, root, r := mount(t, prev)
	nodeTwo := memdom.FindByAttr(root, "data-id", "2")

	next := renderKeyedList([]int{1, 2, 3})
	r.Patch(root, next, prev, 0)

	ul := next.El
	if got, _ := ul.ChildAt(0).Attribute("data-id"); got != "1" {
		t.Errorf("expected new item first, got %s", got)
	}
	if ul.ChildAt(1) != nodeTwo {
		t.Error("expected existing node reused, not recreated")
	}
}

func TestKeyedMovePreservesLiveState(t *testing.T) {
	render := func(ids []string) *VNode {
		return H("div", nil, Map(ids, func(id string, _ int) *VNode {
			return H("input", Props{"key": id, "data-id": id})
		}))
	}

	prev := render([]string{"a", "b"})
	_, root, r := mount(t, prev)

	// User types into b, then the list reorders.
	b := memdom.FindByAttr(root, "data-id", "b")
	b.SetProperty("value", "draft")

	next := render([]string{"b", "a"})
	r.Patch(root, next, prev, 0)

	if next.El.ChildAt(0) != b {
		t.Fatal("expected b moved, not recreated")
	}
	if got := b.Property("value"); got != "draft" {
		t.Errorf("expected typed value to survive the move, got %v", got)
	}
}

func TestOneKeySwitchesWholeListToKeyedMode(t *testing.T) {
	// Only one child carries a key; the whole list must still reconcile in
	// keyed mode, with positions as implicit keys for the rest.
	prev := H("ul", nil,
		H("li", nil, "plain"),
		H("li", Props{"key": "pinned"}, "pinned"),
	)
	_, root, r := mount(t, prev)
	pinned := liveNodeOf(prev.Children[1])

	next := H("ul", nil,
		H("li", Props{"key": "pinned"}, "pinned"),
		H("li", nil, "plain"),
	)
	r.Patch(root, next, prev, 0)

	if next.El.ChildAt(0) != pinned {
		t.Error("expected keyed child moved to front with identity preserved")
	}
	if got := memdom.TextContent(root); got != "pinnedplain" {
		t.Errorf("unexpected order: %q", got)
	}
}

func TestUnkeyedReorderUpdatesInPlace(t *testing.T) {
	render := func(labels []string) *VNode {
		return H("ul", nil, Map(labels, func(s string, _ int) *VNode {
			return H("li", nil, s)
		}))
	}

	prev := render([]string{"x", "y"})
	_, root, r := mount(t, prev)
	first := liveNodeOf(prev.Children[0])

	// Without keys, position is identity: swapping contents rewrites text
	// in the same nodes instead of moving them.
	next := render([]string{"y", "x"})
	r.Patch(root, next, prev, 0)

	if next.El.ChildAt(0) != first {
		t.Error("expected positional node reused")
	}
	if got := memdom.TextContent(root); got != "yx" {
		t.Errorf("unexpected content: %q", got)
	}
}
