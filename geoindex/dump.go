package geoindex

import "github.com/nullisland/omtree/rtree"

// NodeSnapshot is one non-entry node of a structural dump: its position in
// DFS traversal order, height, and inverse-projected (lon/lat) rectangle.
// Entries (leaf payloads) are never emitted, only the nodes that contain
// them.
type NodeSnapshot struct {
	ID     int
	Height int
	Leaf   bool
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// Dump walks tree depth-first and returns a snapshot of every internal and
// leaf node. Identifiers are assigned positionally at dump time and carry
// no meaning across dumps of a mutated tree.
func Dump(tree *rtree.RTree[string]) []NodeSnapshot {
	var snapshots []NodeSnapshot
	id := 0
	tree.IterateInternalNodes(func(bounds rtree.Envelope, height int, leaf bool) bool {
		minLon, minLat := unproject(bounds.MinX, bounds.MinY)
		maxLon, maxLat := unproject(bounds.MaxX, bounds.MaxY)
		snapshots = append(snapshots, NodeSnapshot{
			ID:     id,
			Height: height,
			Leaf:   leaf,
			MinLon: minLon,
			MinLat: minLat,
			MaxLon: maxLon,
			MaxLat: maxLat,
		})
		id++
		return false
	})
	return snapshots
}
