package vdom

import (
	"testing"

	"github.com/axon-ui/axon/pkg/host"
	"github.com/axon-ui/axon/pkg/host/memdom"
)

func TestAttributeAddChangeRemove(t *testing.T) {
	prev := H("div", Props{"class": "a", "id": "keep"})
	_, root, r := mount(t, prev)
	el := prev.El

	next := H("div", Props{"class": "b", "title": "new"})
	r.Patch(root, next, prev, 0)

	if v, _ := el.Attribute("class"); v != "b" {
		t.Errorf("expected class changed to b, got %q", v)
	}
	if v, _ := el.Attribute("title"); v != "new" {
		t.Errorf("expected title added, got %q", v)
	}
	if _, ok := el.Attribute("id"); ok {
		t.Error("expected id removed")
	}
}

func TestKeyNeverWrittenAsAttribute(t *testing.T) {
	prev := H("li", Props{"key": "7"})
	_, _, _ = mount(t, prev)

	if _, ok := prev.El.Attribute("key"); ok {
		t.Error("expected key prop withheld from the live tree")
	}
}

func TestBooleanAttributePresence(t *testing.T) {
	prev := H("button", Props{"disabled": true})
	_, root, r := mount(t, prev)
	el := prev.El

	if _, ok := el.Attribute("disabled"); !ok {
		t.Fatal("expected bare disabled attribute")
	}

	next := H("button", Props{"disabled": false})
	r.Patch(root, next, prev, 0)
	if _, ok := el.Attribute("disabled"); ok {
		t.Error("expected disabled removed when false")
	}
}

func TestNumericAttributeStringified(t *testing.T) {
	prev := H("input", Props{"maxlength": 20})
	_, _, _ = mount(t, prev)

	if v, _ := prev.El.Attribute("maxlength"); v != "20" {
		t.Errorf("expected maxlength 20, got %q", v)
	}
}

func TestHandlerReceivesLatestCapture(t *testing.T) {
	seen := ""
	render := func(id string) *VNode {
		return H("button", Props{"onclick": func() { seen = id }})
	}

	prev := render("first")
	_, root, r := mount(t, prev)
	btn := prev.El

	next := render("second")
	r.Patch(root, next, prev, 0)

	memdom.Dispatch(btn, host.Event{Type: "click"})
	if seen != "second" {
		t.Errorf("expected latest handler to run, got %q", seen)
	}
}

func TestListenerIdentityStableAcrossRenders(t *testing.T) {
	render := func(n int) *VNode {
		return H("button", Props{"onclick": func() { _ = n }})
	}

	prev := render(1)
	_, root, r := mount(t, prev)
	btn := prev.El

	for i := 2; i < 5; i++ {
		next := render(i)
		r.Patch(root, next, prev, 0)
		prev = next
	}

	if got := memdom.ListenerCount(btn, "click"); got != 1 {
		t.Errorf("expected a single registered listener, got %d", got)
	}
}

func TestHandlerRemovedWithProp(t *testing.T) {
	calls := 0
	prev := H("button", Props{"onclick": func() { calls++ }})
	_, root, r := mount(t, prev)
	btn := prev.El

	next := H("button", nil)
	r.Patch(root, next, prev, 0)

	memdom.Dispatch(btn, host.Event{Type: "click"})
	if calls != 0 {
		t.Errorf("expected detached handler not to run, got %d calls", calls)
	}
	if got := memdom.ListenerCount(btn, "click"); got != 0 {
		t.Errorf("expected no listeners, got %d", got)
	}
}

func TestHandlerEventPayload(t *testing.T) {
	var got host.Event
	prev := H("input", Props{"oninput": func(e host.Event) { got = e }})
	_, _, _ = mount(t, prev)

	memdom.Dispatch(prev.El, host.Event{Type: "input", Value: "abc"})
	if got.Value != "abc" {
		t.Errorf("expected event value abc, got %q", got.Value)
	}
	if got.Target != prev.El {
		t.Error("expected event target set to the live node")
	}
}

func TestCheckedComparedAgainstLiveNode(t *testing.T) {
	prev := H("input", Props{"type": "checkbox", "checked": true})
	_, root, r := mount(t, prev)
	box := prev.El

	if got, _ := box.Property("checked").(bool); !got {
		t.Fatal("expected checkbox checked after mount")
	}

	// User unchecks out of band; state still says checked.
	box.SetProperty("checked", false)

	next := H("input", Props{"type": "checkbox", "checked": true})
	r.Patch(root, next, prev, 0)

	if got, _ := box.Property("checked").(bool); !got {
		t.Error("expected checked forced back to state value")
	}
}

func TestValuePropRemovalResets(t *testing.T) {
	prev := H("input", Props{"value": "x"})
	_, root, r := mount(t, prev)

	next := H("input", nil)
	r.Patch(root, next, prev, 0)

	if got := prev.El.Property("value"); got != "" {
		t.Errorf("expected value reset on prop removal, got %v", got)
	}
}

func TestPropsEqual(t *testing.T) {
	cases := []struct {
		a, b any
		want bool
	}{
		{"x", "x", true},
		{"x", "y", false},
		{1, 1, true},
		{1, int64(1), false},
		{true, true, true},
		{nil, nil, true},
		{nil, "x", false},
		{[]string{"a"}, []string{"a"}, true},
	}
	for _, c := range cases {
		if got := propsEqual(c.a, c.b); got != c.want {
			t.Errorf("propsEqual(%v, %v): expected %v, got %v", c.a, c.b, c.want, got)
		}
	}
}
