package memdom

import (
	"testing"

	"github.com/axon-ui/axon/pkg/host"
)

func TestAppendChildKeepsOrder(t *testing.T) {
	doc := New()
	parent := doc.CreateElement("ul")
	a := doc.CreateElement("li")
	b := doc.CreateElement("li")
	parent.AppendChild(a)
	parent.AppendChild(b)

	if parent.ChildCount() != 2 {
		t.Fatalf("expected 2 children, got %d", parent.ChildCount())
	}
	if parent.ChildAt(0) != a || parent.ChildAt(1) != b {
		t.Error("children out of order")
	}
	if a.Parent() != parent {
		t.Error("expected parent link on appended child")
	}
}

func TestAppendChildReparents(t *testing.T) {
	doc := New()
	first := doc.CreateElement("div")
	second := doc.CreateElement("div")
	child := doc.CreateElement("span")

	first.AppendChild(child)
	second.AppendChild(child)

	if first.ChildCount() != 0 {
		t.Errorf("expected child detached from old parent, got %d children", first.ChildCount())
	}
	if second.ChildAt(0) != child {
		t.Error("expected child under new parent")
	}
}

func TestInsertBefore(t *testing.T) {
	doc := New()
	parent := doc.CreateElement("ul")
	a := doc.CreateElement("li")
	c := doc.CreateElement("li")
	parent.AppendChild(a)
	parent.AppendChild(c)

	b := doc.CreateElement("li")
	parent.InsertBefore(b, c)

	if parent.ChildAt(1) != b {
		t.Error("expected insert before reference node")
	}

	d := doc.CreateElement("li")
	parent.InsertBefore(d, nil)
	if parent.ChildAt(3) != d {
		t.Error("expected nil reference to append")
	}
}

func TestInsertBeforeMovesExistingChild(t *testing.T) {
	doc := New()
	parent := doc.CreateElement("ul")
	a := doc.CreateElement("li")
	b := doc.CreateElement("li")
	c := doc.CreateElement("li")
	parent.AppendChild(a)
	parent.AppendChild(b)
	parent.AppendChild(c)

	// Move c to the front.
	parent.InsertBefore(c, a)

	if parent.ChildCount() != 3 {
		t.Fatalf("expected 3 children after move, got %d", parent.ChildCount())
	}
	if parent.ChildAt(0) != c || parent.ChildAt(1) != a || parent.ChildAt(2) != b {
		t.Error("expected order c, a, b after move")
	}
}

func TestReplaceChild(t *testing.T) {
	doc := New()
	parent := doc.CreateElement("div")
	old := doc.CreateElement("span")
	parent.AppendChild(old)

	repl := doc.CreateElement("p")
	parent.ReplaceChild(repl, old)

	if parent.ChildAt(0) != repl {
		t.Error("expected replacement in old position")
	}
	if old.Parent() != nil {
		t.Error("expected old child detached")
	}
}

func TestRemoveChild(t *testing.T) {
	doc := New()
	parent := doc.CreateElement("div")
	child := doc.CreateElement("span")
	parent.AppendChild(child)

	parent.RemoveChild(child)
	if parent.ChildCount() != 0 {
		t.Errorf("expected no children, got %d", parent.ChildCount())
	}

	// Removing an unknown child is ignored.
	parent.RemoveChild(doc.CreateElement("span"))
}

func TestAttributes(t *testing.T) {
	doc := New()
	el := doc.CreateElement("div")

	if _, ok := el.Attribute("class"); ok {
		t.Error("expected attribute unset initially")
	}

	el.SetAttribute("class", "card")
	if v, ok := el.Attribute("class"); !ok || v != "card" {
		t.Errorf("expected class=card, got %q (set=%v)", v, ok)
	}

	el.RemoveAttribute("class")
	if _, ok := el.Attribute("class"); ok {
		t.Error("expected attribute removed")
	}
}

func TestProperties(t *testing.T) {
	doc := New()
	input := doc.CreateElement("input")

	if input.Property("value") != nil {
		t.Error("expected nil property initially")
	}
	input.SetProperty("value", "hello")
	if input.Property("value") != "hello" {
		t.Errorf("expected value property hello, got %v", input.Property("value"))
	}
}

func TestDispatchUpdatesValueBeforeHandler(t *testing.T) {
	doc := New()
	input := doc.CreateElement("input")

	var seen string
	input.AddEventListener("input", func(e host.Event) {
		seen, _ = e.Target.Property("value").(string)
	})

	if !Dispatch(input, host.Event{Type: "input", Value: "abc"}) {
		t.Fatal("expected handler to run")
	}
	if seen != "abc" {
		t.Errorf("expected live value abc inside handler, got %q", seen)
	}
}

func TestDispatchWithoutHandlers(t *testing.T) {
	doc := New()
	div := doc.CreateElement("div")
	if Dispatch(div, host.Event{Type: "click"}) {
		t.Error("expected no handler to run")
	}
}

func TestRemoveEventListenerByIdentity(t *testing.T) {
	doc := New()
	btn := doc.CreateElement("button")

	calls := 0
	var keep host.EventHandler = func(host.Event) { calls += 1 }
	var drop host.EventHandler = func(host.Event) { calls += 100 }

	btn.AddEventListener("click", keep)
	btn.AddEventListener("click", drop)
	btn.RemoveEventListener("click", drop)

	Dispatch(btn, host.Event{Type: "click"})
	if calls != 1 {
		t.Errorf("expected only kept handler to run, calls=%d", calls)
	}
}

func TestRenderHTML(t *testing.T) {
	doc := New()
	div := doc.CreateElement("div")
	div.SetAttribute("id", "x")
	div.SetAttribute("class", "card")
	div.AppendChild(doc.CreateText("a < b & c"))
	br := doc.CreateElement("br")
	div.AppendChild(br)

	got := RenderHTML(div)
	want := `<div class="card" id="x">a &lt; b &amp; c<br></div>`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRenderHTMLEscapesAttributes(t *testing.T) {
	doc := New()
	div := doc.CreateElement("div")
	div.SetAttribute("title", `say "hi"`)

	got := RenderHTML(div)
	want := `<div title="say &quot;hi&quot;"></div>`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestFindAndTextContent(t *testing.T) {
	doc := New()
	root := doc.CreateElement("div")
	ul := doc.CreateElement("ul")
	li := doc.CreateElement("li")
	li.SetAttribute("data-id", "7")
	li.AppendChild(doc.CreateText("seven"))
	ul.AppendChild(li)
	root.AppendChild(ul)

	if Find(root, "li") != li {
		t.Error("expected Find to locate li")
	}
	if got := len(FindAll(root, "li")); got != 1 {
		t.Errorf("expected 1 li, got %d", got)
	}
	if FindByAttr(root, "data-id", "7") != li {
		t.Error("expected FindByAttr to locate li")
	}
	if got := TextContent(root); got != "seven" {
		t.Errorf("expected text content seven, got %q", got)
	}
}
