package vdom

import (
	"testing"

	"github.com/axon-ui/axon/pkg/host/memdom"
)

func BenchmarkElementCreation(b *testing.B) {
	b.Run("simple div", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Div(Props{"class": "card"})
		}
	})

	b.Run("with children", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Div(Props{"class": "card"},
				H1(nil, Text("Title")),
				P(nil, Text("Content")),
			)
		}
	})

	b.Run("with event handler", func(b *testing.B) {
		handler := func() {}
		for i := 0; i < b.N; i++ {
			_ = Button(Props{"onClick": handler}, Text("Click"))
		}
	})

	b.Run("todo item", func(b *testing.B) {
		handler := func() {}
		for i := 0; i < b.N; i++ {
			_ = Li(Props{"key": "id-1", "class": "todo"},
				Input(Props{"type": "checkbox", "checked": false, "onChange": handler}),
				Span(Props{"class": "title"}, Text("milk")),
				Button(Props{"class": "remove", "onClick": handler}, Text("x")),
			)
		}
	})
}

func BenchmarkDeepTreeCreation(b *testing.B) {
	b.Run("depth 5", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = createDeepBenchTree(5)
		}
	})

	b.Run("depth 10", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = createDeepBenchTree(10)
		}
	})
}

func BenchmarkWideTreeCreation(b *testing.B) {
	b.Run("10 children", func(b *testing.B) {
		ids := intRange(10)
		for i := 0; i < b.N; i++ {
			_ = renderKeyedList(ids)
		}
	})

	b.Run("100 children", func(b *testing.B) {
		ids := intRange(100)
		for i := 0; i < b.N; i++ {
			_ = renderKeyedList(ids)
		}
	})
}

func BenchmarkInitialPatch(b *testing.B) {
	b.Run("100 nodes", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			doc := memdom.New()
			r := NewReconciler(doc)
			r.Patch(doc.Root(), createBenchTree(100), nil, 0)
			r.FlushMounts()
		}
	})

	b.Run("1000 nodes", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			doc := memdom.New()
			r := NewReconciler(doc)
			r.Patch(doc.Root(), createBenchTree(1000), nil, 0)
			r.FlushMounts()
		}
	})
}

// The repatch benchmarks rebuild the next tree inside the loop because that
// is what every re-render pays: the component function always produces a
// fresh tree, and Patch walks it against the previous one.

func BenchmarkRepatchUnchanged(b *testing.B) {
	b.Run("100 nodes", func(b *testing.B) {
		benchRepatch(b, func(i int) *VNode { return createBenchTree(100) })
	})

	b.Run("1000 nodes", func(b *testing.B) {
		benchRepatch(b, func(i int) *VNode { return createBenchTree(1000) })
	})
}

func BenchmarkRepatchTextChange(b *testing.B) {
	titles := [2]string{"Old Title", "New Title"}
	benchRepatch(b, func(i int) *VNode {
		return createBenchPage(titles[i%2], "page")
	})
}

func BenchmarkRepatchAttrChange(b *testing.B) {
	classes := [2]string{"page", "page wide"}
	benchRepatch(b, func(i int) *VNode {
		return createBenchPage("Title", classes[i%2])
	})
}

func BenchmarkRepatchKeyedReorder(b *testing.B) {
	b.Run("10 children", func(b *testing.B) {
		benchKeyedReorder(b, 10)
	})

	b.Run("100 children", func(b *testing.B) {
		benchKeyedReorder(b, 100)
	})
}

func BenchmarkRepatchKeyedChurn(b *testing.B) {
	full := intRange(100)
	gap := make([]int, 0, 99)
	for _, id := range full {
		if id != 50 {
			gap = append(gap, id)
		}
	}

	lists := [2][]int{full, gap}
	benchRepatch(b, func(i int) *VNode {
		return renderKeyedList(lists[i%2])
	})
}

// Helper functions for benchmarks

func benchRepatch(b *testing.B, next func(i int) *VNode) {
	b.Helper()

	doc := memdom.New()
	r := NewReconciler(doc)
	prev := next(0)
	r.Patch(doc.Root(), prev, nil, 0)
	r.FlushMounts()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree := next(i + 1)
		r.Patch(doc.Root(), tree, prev, 0)
		r.FlushMounts()
		prev = tree
	}
}

func benchKeyedReorder(b *testing.B, n int) {
	b.Helper()

	fwd := intRange(n)
	rev := make([]int, n)
	for i, id := range fwd {
		rev[n-1-i] = id
	}

	lists := [2][]int{fwd, rev}
	benchRepatch(b, func(i int) *VNode {
		return renderKeyedList(lists[i%2])
	})
}

func createDeepBenchTree(depth int) *VNode {
	if depth == 0 {
		return Text("leaf")
	}
	return Div(Props{"class": "level"}, createDeepBenchTree(depth-1))
}

func createBenchTree(n int) *VNode {
	groups := make([]*VNode, 0, n/10)
	for i := 0; i < n/10; i++ {
		items := make([]*VNode, 0, 10)
		for j := 0; j < 10; j++ {
			items = append(items, Li(nil, Textf("item %d", i*10+j)))
		}
		groups = append(groups, Ul(nil, items))
	}
	return Div(Props{"class": "container"}, groups)
}

func createBenchPage(title, class string) *VNode {
	return Div(Props{"class": class},
		H1(nil, Text(title)),
		P(nil, Text("Content")),
	)
}

func intRange(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return ids
}
