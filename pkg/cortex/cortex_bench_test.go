package cortex

import (
	"fmt"
	"testing"

	"github.com/axon-ui/axon/pkg/keyval"
)

// Benchmarks for the container's hot paths. A render reads each field it
// shows, a synapse call runs one Merge or Update, so these costs bound how
// fast the UI can react.

func BenchmarkMemoryGetUntracked(b *testing.B) {
	c := New(map[string]any{"count": 42}, nil)
	m := c.Memory()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Get("count")
	}
}

func BenchmarkMemoryGetTracked(b *testing.B) {
	c := New(map[string]any{"count": 42}, nil)
	p := newProbe()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		renderWith(p, func() {
			_ = c.Memory().Get("count")
		})
	}
}

func BenchmarkMemoryGetNestedPath(b *testing.B) {
	c := New(map[string]any{
		"user": map[string]any{
			"profile": map[string]any{"name": "Ada"},
		},
	}, nil)
	m := c.Memory()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Get("user.profile.name")
	}
}

func BenchmarkMergeNoSubscribers(b *testing.B) {
	c := New(map[string]any{"count": 0}, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Merge(map[string]any{"count": i})
	}
}

func BenchmarkMergeWithSubscribers(b *testing.B) {
	for _, n := range []int{1, 10, 100} {
		b.Run(fmt.Sprintf("%d readers", n), func(b *testing.B) {
			c := New(map[string]any{"count": 0}, nil)
			for j := 0; j < n; j++ {
				p := newProbe()
				renderWith(p, func() {
					_ = c.Memory().Get("count")
				})
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				c.Merge(map[string]any{"count": i})
			}
		})
	}
}

func BenchmarkMergeUnrelatedField(b *testing.B) {
	c := New(map[string]any{"count": 0, "other": 0}, nil)
	for j := 0; j < 100; j++ {
		p := newProbe()
		renderWith(p, func() {
			_ = c.Memory().Get("count")
		})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Merge(map[string]any{"other": i})
	}
}

func BenchmarkUpdateSmallState(b *testing.B) {
	c := New(map[string]any{"count": 0, "title": "todos"}, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Update(func(d *Draft) map[string]any {
			return map[string]any{"count": i}
		})
	}
}

func BenchmarkUpdateLargeState(b *testing.B) {
	c := New(map[string]any{"todos": benchTodos(100)}, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Update(func(d *Draft) map[string]any {
			items := d.Get("todos").([]any)
			item := items[i%len(items)].(map[string]any)
			item["done"] = !item["done"].(bool)
			return map[string]any{"todos": items}
		})
	}
}

func BenchmarkSnapshot(b *testing.B) {
	c := New(map[string]any{"todos": benchTodos(100)}, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Snapshot()
	}
}

func BenchmarkCallSynapse(b *testing.B) {
	c := New(map[string]any{"count": 0}, func(api API) Actions {
		return Actions{
			"bump": func(payload any) {
				api.Merge(map[string]any{"count": payload})
			},
		}
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Call("bump", i)
	}
}

func BenchmarkMergePersisted(b *testing.B) {
	store := keyval.NewMemoryStore()
	c := New(map[string]any{
		"todos": Persisted([]any{}),
	}, nil, WithStore(store))
	todos := benchTodos(20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Merge(map[string]any{"todos": todos})
	}
}

// Helper functions for benchmarks

func benchTodos(n int) []any {
	todos := make([]any, n)
	for i := range todos {
		todos[i] = map[string]any{
			"id":    fmt.Sprintf("todo-%d", i),
			"title": fmt.Sprintf("item %d", i),
			"done":  i%2 == 0,
		}
	}
	return todos
}
