package rtree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// assertInvariants walks r's tree and checks the three structural invariants
// every public operation must leave intact: every leaf is at the same
// depth, every non-root node's fan-out is within [minEntries, maxEntries]
// (the root may hold fewer, down to an empty leaf), and every node's
// envelope equals the MBR of its own children/items.
func assertInvariants[T any](t *testing.T, r *RTree[T]) {
	t.Helper()

	leafDepths := make(map[int]bool)
	var walk func(n *node[T], depth int, isRoot bool)
	walk = func(n *node[T], depth int, isRoot bool) {
		count := n.entryCount()
		if isRoot {
			assert.LessOrEqual(t, count, r.maxEntries, "root exceeds maxEntries")
			if count == 0 {
				assert.True(t, n.leaf, "an empty root must be a leaf")
			}
		} else {
			assert.GreaterOrEqual(t, count, r.minEntries, "node below minEntries")
			assert.LessOrEqual(t, count, r.maxEntries, "node above maxEntries")
		}

		assertEnvelopeEqual(t, subBounds(n, 0, count), n.bounds)

		if n.leaf {
			leafDepths[depth] = true
			return
		}
		for _, child := range n.children {
			walk(child, depth+1, false)
		}
	}
	walk(r.root, 0, true)

	assert.LessOrEqual(t, len(leafDepths), 1, "leaves found at differing depths")
}

func assertEnvelopeEqual(t *testing.T, want, got Envelope) {
	t.Helper()
	assertFloatEqual(t, want.MinX, got.MinX)
	assertFloatEqual(t, want.MinY, got.MinY)
	assertFloatEqual(t, want.MaxX, got.MaxX)
	assertFloatEqual(t, want.MaxY, got.MaxY)
}

// assertFloatEqual tolerates the +-Inf sentinel an empty node's bounds
// carry, where a plain InDelta would compare Inf-Inf and see NaN.
func assertFloatEqual(t *testing.T, want, got float64) {
	t.Helper()
	if math.IsInf(want, 0) || math.IsInf(got, 0) {
		assert.Equal(t, want, got)
		return
	}
	assert.InDelta(t, want, got, 1e-9)
}
