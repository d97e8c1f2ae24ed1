// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package octree

// None is the sentinel value used for "no index" across every pool and
// tree field: firstChild, parent, the object-to-node map, and a query
// miss's objectIndex/t.
const None = -1

// DefaultK is the default maximum number of object indices stored inline
// at a single octree node before it is subdivided.
const DefaultK = 8

// AABB record layout: six float32 per record, [minX, minY, minZ, maxX, maxY, maxZ].
const (
	CompMinX = iota
	CompMinY
	CompMinZ
	CompMaxX
	CompMaxY
	CompMaxZ
)

// AABBStride is the number of float32 per AABB record.
const AABBStride = 6

// Ray record layout: six float32 per record, [ox, oy, oz, dx, dy, dz].
const (
	CompOX = iota
	CompOY
	CompOZ
	CompDX
	CompDY
	CompDZ
)

// RayStride is the number of float32 per ray record.
const RayStride = 6

// ResultStride is the number of float32 per raycast result record,
// [objectIndex, t].
const ResultStride = 2

// Node record field offsets, relative to the start of a node's stride.
// A node record is laid out as:
//
//	[0:6)   AABB (minX, minY, minZ, maxX, maxY, maxZ)
//	[6]     firstChild index, or None
//	[7]     parent index, or None
//	[8]     objectCount
//	[9:9+K) inline object indices
const (
	nodeOffAABB        = 0
	nodeOffFirstChild  = 6
	nodeOffParent      = 7
	nodeOffObjectCount = 8
	nodeOffObjects     = 9
)

// NodeStride returns the float32 stride of a node record for a given K
// (maximum inline objects per node).
func NodeStride(k int) int {
	return nodeOffObjects + k
}

// TreeStats is a read-only snapshot of an Octree's shape, used by callers
// deciding whether a periodic rebuild is warranted (see the "update
// stay if fits" design note).
type TreeStats struct {
	NodeCount   int
	LeafCount   int
	ObjectCount int
	MaxDepth    int
}

// noCopy is a sentinel embedded in pools and the sweep processor to make
// `go vet`'s copylocks check flag accidental copies of structures that
// hold live shared-memory views.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
