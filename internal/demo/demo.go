// Package demo is the todo app served by the axon binary. It exercises the
// runtime end to end: a persisted list, per-session filter and draft state,
// keyed rendering, input synchronization and a conditional subtree with
// lifecycle hooks.
package demo

import (
	"strings"

	"github.com/axon-ui/axon/pkg/cortex"
	"github.com/axon-ui/axon/pkg/keyval"
	"github.com/google/uuid"
)

// Filter values accepted by the setFilter synapse.
const (
	FilterAll    = "all"
	FilterActive = "active"
	FilterDone   = "done"
)

// NewCortex builds the demo state container. The todo list persists to
// store under the "todos" key; draft and filter live and die with the
// session. A nil store keeps everything in memory.
func NewCortex(store keyval.Store, opts ...cortex.Option) *cortex.Cortex {
	initial := map[string]any{
		"draft":  "",
		"filter": FilterAll,
		"todos":  cortex.Persisted([]any{}),
	}
	if store != nil {
		opts = append([]cortex.Option{cortex.WithStore(store)}, opts...)
	}
	return cortex.New(initial, synapses, opts...)
}

func synapses(api cortex.API) cortex.Actions {
	return cortex.Actions{
		"setDraft": func(payload any) {
			text, _ := payload.(string)
			api.Merge(map[string]any{"draft": text})
		},

		"setFilter": func(payload any) {
			f, _ := payload.(string)
			switch f {
			case FilterAll, FilterActive, FilterDone:
			default:
				f = FilterAll
			}
			api.Merge(map[string]any{"filter": f})
		},

		// add appends the trimmed draft as a new todo and clears the
		// draft. An empty draft adds nothing.
		"add": func(any) {
			api.Update(func(d *cortex.Draft) map[string]any {
				title := strings.TrimSpace(str(d.Get("draft")))
				if title == "" {
					return nil
				}
				items := list(d.Get("todos"))
				items = append(items, map[string]any{
					"id":    uuid.NewString(),
					"title": title,
					"done":  false,
				})
				return map[string]any{"todos": items, "draft": ""}
			})
		},

		"toggle": func(payload any) {
			id, _ := payload.(string)
			api.Update(func(d *cortex.Draft) map[string]any {
				items := list(d.Get("todos"))
				for _, item := range items {
					todo, ok := item.(map[string]any)
					if ok && str(todo["id"]) == id {
						todo["done"] = !boolean(todo["done"])
						return map[string]any{"todos": items}
					}
				}
				return nil
			})
		},

		"remove": func(payload any) {
			id, _ := payload.(string)
			api.Update(func(d *cortex.Draft) map[string]any {
				items := list(d.Get("todos"))
				kept := make([]any, 0, len(items))
				for _, item := range items {
					if todo, ok := item.(map[string]any); ok && str(todo["id"]) == id {
						continue
					}
					kept = append(kept, item)
				}
				if len(kept) == len(items) {
					return nil
				}
				return map[string]any{"todos": kept}
			})
		},

		"clearDone": func(any) {
			api.Update(func(d *cortex.Draft) map[string]any {
				items := list(d.Get("todos"))
				kept := make([]any, 0, len(items))
				for _, item := range items {
					if todo, ok := item.(map[string]any); ok && boolean(todo["done"]) {
						continue
					}
					kept = append(kept, item)
				}
				if len(kept) == len(items) {
					return nil
				}
				return map[string]any{"todos": kept}
			})
		},
	}
}

// Todos stored through keyval come back from JSON as []any of
// map[string]any, so readers coerce rather than assert.

func list(v any) []any {
	items, _ := v.([]any)
	return items
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func boolean(v any) bool {
	b, _ := v.(bool)
	return b
}
