package demo

import (
	"log/slog"

	"github.com/axon-ui/axon/pkg/cortex"
	"github.com/axon-ui/axon/pkg/host"
	"github.com/axon-ui/axon/pkg/track"
	"github.com/axon-ui/axon/pkg/vdom"
)

// Root returns the top-level component bound to c. Every render reads
// through a fresh View, so the subscription follows exactly what the
// current filter makes visible.
func Root(c *cortex.Cortex) vdom.ComponentFunc {
	return func(vdom.Props) *vdom.VNode {
		m := c.Memory()
		return vdom.Div(vdom.Props{"class": "todo-app"},
			vdom.H1(nil, vdom.Text("todos")),
			draftForm(c, m),
			todoList(c, m),
			statusBar(c, m),
		)
	}
}

func draftForm(c *cortex.Cortex, m *cortex.View) *vdom.VNode {
	return vdom.Form(vdom.Props{
		"class":    "draft",
		"onSubmit": func() { c.Call("add", nil) },
	},
		vdom.Input(vdom.Props{
			"type":        "text",
			"class":       "draft-input",
			"placeholder": "What needs doing?",
			"value":       m.String("draft"),
			"onInput":     func(e host.Event) { c.Call("setDraft", e.Value) },
		}),
		vdom.Button(vdom.Props{"type": "submit"}, vdom.Text("Add")),
	)
}

func todoList(c *cortex.Cortex, m *cortex.View) *vdom.VNode {
	todos := visibleTodos(m)
	if len(todos) == 0 {
		return vdom.H(emptyState, vdom.Props{"filter": m.String("filter")})
	}

	items := make([]*vdom.VNode, 0, len(todos))
	for _, todo := range todos {
		items = append(items, todoItem(c, todo))
	}
	return vdom.Ul(vdom.Props{"class": "todo-list"}, items)
}

func todoItem(c *cortex.Cortex, todo map[string]any) *vdom.VNode {
	id := str(todo["id"])
	done := boolean(todo["done"])

	class := "todo"
	if done {
		class = "todo done"
	}
	return vdom.Li(vdom.Props{"key": id, "class": class},
		vdom.Input(vdom.Props{
			"type":     "checkbox",
			"checked":  done,
			"onChange": func() { c.Call("toggle", id) },
		}),
		vdom.Span(vdom.Props{"class": "title"}, vdom.Text(str(todo["title"]))),
		vdom.Button(vdom.Props{
			"class":   "remove",
			"onClick": func() { c.Call("remove", id) },
		}, vdom.Text("x")),
	)
}

// emptyState renders when the active filter matches nothing. It is a
// component of its own so its lifecycle hooks fire as the list empties
// and refills.
func emptyState(p vdom.Props) *vdom.VNode {
	track.OnMount(func() {
		slog.Debug("todo list empty", "filter", p["filter"])
	})
	track.OnCleanup(func() {
		slog.Debug("todo list no longer empty")
	})

	msg := "Nothing to do. Add one above."
	switch p["filter"] {
	case FilterActive:
		msg = "No active todos."
	case FilterDone:
		msg = "Nothing done yet."
	}
	return vdom.P(vdom.Props{"class": "empty"}, vdom.Text(msg))
}

func statusBar(c *cortex.Cortex, m *cortex.View) *vdom.VNode {
	var remaining, done int
	for _, todo := range allTodos(m) {
		if boolean(todo["done"]) {
			done++
		} else {
			remaining++
		}
	}

	return vdom.Footer(vdom.Props{"class": "status"},
		vdom.Span(vdom.Props{"class": "remaining"}, vdom.Textf("%d left", remaining)),
		vdom.Div(vdom.Props{"class": "filters"},
			filterButton(c, m, FilterAll, "All"),
			filterButton(c, m, FilterActive, "Active"),
			filterButton(c, m, FilterDone, "Done"),
		),
		vdom.If(done > 0, vdom.Button(vdom.Props{
			"class":   "clear-done",
			"onClick": func() { c.Call("clearDone", nil) },
		}, vdom.Textf("Clear done (%d)", done))),
	)
}

func filterButton(c *cortex.Cortex, m *cortex.View, value, label string) *vdom.VNode {
	class := "filter"
	if m.String("filter") == value {
		class = "filter active"
	}
	return vdom.Button(vdom.Props{
		"class":       class,
		"data-filter": value,
		"onClick":     func() { c.Call("setFilter", value) },
	}, vdom.Text(label))
}

// allTodos reads the todo list through the view, coercing each entry.
func allTodos(m *cortex.View) []map[string]any {
	items := list(m.Get("todos"))
	todos := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if todo, ok := item.(map[string]any); ok {
			todos = append(todos, todo)
		}
	}
	return todos
}

func visibleTodos(m *cortex.View) []map[string]any {
	todos := allTodos(m)
	switch m.String("filter") {
	case FilterActive:
		kept := todos[:0]
		for _, todo := range todos {
			if !boolean(todo["done"]) {
				kept = append(kept, todo)
			}
		}
		return kept
	case FilterDone:
		kept := todos[:0]
		for _, todo := range todos {
			if boolean(todo["done"]) {
				kept = append(kept, todo)
			}
		}
		return kept
	default:
		return todos
	}
}
