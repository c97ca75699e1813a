package uitest

import (
	"testing"

	"github.com/axon-ui/axon/pkg/vdom"
	"github.com/sebdah/goldie/v2"
)

// Golden compares the harness's current HTML against the golden file
// testdata/golden/<name>.golden in the calling test's package.
//
// To regenerate golden files, run:
//
//	go test -update
func Golden(t *testing.T, h *Harness, name string) {
	t.Helper()
	newGoldie(t).Assert(t, name, []byte(h.HTML()))
}

// GoldenNode compares a single rendered VNode against a golden file,
// without mounting a harness.
func GoldenNode(t *testing.T, node *vdom.VNode, name string) {
	t.Helper()
	newGoldie(t).Assert(t, name, []byte(RenderToString(node)))
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}
