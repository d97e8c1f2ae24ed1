// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package octree

import (
	"errors"
	"fmt"
)

// Octree is the spatial index proper. It borrows a NodePool and an
// AabbPool for its lifetime — it never resizes or reallocates either —
// and owns only the root node index, the object-to-node map, and a
// reusable DFS traversal stack.
type Octree struct {
	_ noCopy

	nodes *NodePool
	aabbs *AabbPool

	root int

	// objToNode is a dense parallel array from object index to the node
	// currently holding it, None where the object is not live in the
	// tree. Sized to the AABB pool's capacity, per the design note that
	// object indices are dense small integers.
	objToNode []int

	stack []int
}

// NewOctree constructs an Octree over the given pools, allocating the
// root node and setting its bounds to minX..maxZ.
func NewOctree(nodes *NodePool, aabbs *AabbPool, minX, minY, minZ, maxX, maxY, maxZ float32) (*Octree, error) {
	t := &Octree{
		nodes:     nodes,
		aabbs:     aabbs,
		objToNode: make([]int, aabbs.Cap()),
		stack:     make([]int, 0, 1+8*stackDepthBound),
	}
	for i := range t.objToNode {
		t.objToNode[i] = None
	}
	root, err := nodes.Allocate()
	if err != nil {
		return nil, err
	}
	t.root = root
	nodes.SetAABB(root, minX, minY, minZ, maxX, maxY, maxZ)
	return t, nil
}

// stackDepthBound sizes the preallocated traversal stack; 8 covers any
// tree this package's node pool capacities are realistically sized for
// without ever growing the slice.
const stackDepthBound = 8

// SetBounds overwrites the root node's AABB. Intended for use immediately
// after construction or Clear, before any objects are inserted.
func (t *Octree) SetBounds(minX, minY, minZ, maxX, maxY, maxZ float32) {
	t.nodes.SetAABB(t.root, minX, minY, minZ, maxX, maxY, maxZ)
}

// Root returns the root node's index.
func (t *Octree) Root() int { return t.root }

// fits reports whether the object's AABB lies entirely within node's
// AABB, inclusive on both ends.
func (t *Octree) fits(objAABBOff int, node int) bool {
	nodeOff := t.nodes.AABBOffset(node)
	nb := t.nodes.Buffer()
	ab := t.aabbs.Buffer()
	return ab[objAABBOff+CompMinX] >= nb[nodeOff+CompMinX] && ab[objAABBOff+CompMaxX] <= nb[nodeOff+CompMaxX] &&
		ab[objAABBOff+CompMinY] >= nb[nodeOff+CompMinY] && ab[objAABBOff+CompMaxY] <= nb[nodeOff+CompMaxY] &&
		ab[objAABBOff+CompMinZ] >= nb[nodeOff+CompMinZ] && ab[objAABBOff+CompMaxZ] <= nb[nodeOff+CompMaxZ]
}

// Insert places obj (an AABB pool index) into the tree.
func (t *Octree) Insert(obj int) error {
	return t.insertInto(t.root, obj)
}

func (t *Octree) insertInto(node, obj int) error {
	objOff := t.aabbs.Offset(obj)

	if t.nodes.GetFirstChild(node) >= 0 {
		first := t.nodes.GetFirstChild(node)
		for i := 0; i < 8; i++ {
			child := first + i
			if t.fits(objOff, child) {
				return t.insertInto(child, obj)
			}
		}
		if err := t.nodes.AddObject(node, obj); err != nil {
			return err
		}
		t.objToNode[obj] = node
		return nil
	}

	if t.nodes.GetObjectCount(node) < t.nodes.K() {
		if err := t.nodes.AddObject(node, obj); err != nil {
			return err
		}
		t.objToNode[obj] = node
		return nil
	}

	if err := t.subdivide(node); err != nil {
		return err
	}
	if err := t.insertInto(node, obj); err != nil {
		if errors.Is(err, ErrCapacityExceeded) {
			return fmt.Errorf("%w: %v", ErrDegenerateInsert, err)
		}
		return err
	}
	return nil
}

// subdivide turns leaf node N into an internal node with 8 children
// partitioning N's AABB at its midpoint, then re-inserts N's former
// objects via insertInto so they fall through to fitting children or
// stay at N if they straddle.
func (t *Octree) subdivide(node int) error {
	nb := t.nodes.Buffer()
	off := t.nodes.AABBOffset(node)
	minX, minY, minZ := nb[off+CompMinX], nb[off+CompMinY], nb[off+CompMinZ]
	maxX, maxY, maxZ := nb[off+CompMaxX], nb[off+CompMaxY], nb[off+CompMaxZ]
	midX, midY, midZ := (minX+maxX)/2, (minY+maxY)/2, (minZ+maxZ)/2

	first, err := t.nodes.Allocate()
	if err != nil {
		return err
	}
	for i := 1; i < 8; i++ {
		if _, err := t.nodes.Allocate(); err != nil {
			return fmt.Errorf("could not allocate contiguous 8-child block: %w", err)
		}
	}

	for i := 0; i < 8; i++ {
		child := first + i
		lx, hx := minX, midX
		if i&1 != 0 {
			lx, hx = midX, maxX
		}
		ly, hy := minY, midY
		if i&2 != 0 {
			ly, hy = midY, maxY
		}
		lz, hz := minZ, midZ
		if i&4 != 0 {
			lz, hz = midZ, maxZ
		}
		t.nodes.SetAABB(child, lx, ly, lz, hx, hy, hz)
		t.nodes.SetParent(child, node)
	}
	t.nodes.SetFirstChild(node, first)

	count := t.nodes.GetObjectCount(node)
	var displaced [64]int
	objs := displaced[:0]
	for s := 0; s < count; s++ {
		objs = append(objs, t.nodes.GetObject(node, s))
	}
	t.nodes.ClearObjects(node)

	for _, obj := range objs {
		if err := t.insertInto(node, obj); err != nil {
			if errors.Is(err, ErrCapacityExceeded) {
				return fmt.Errorf("%w: %v", ErrDegenerateInsert, err)
			}
			return err
		}
	}
	return nil
}

// Update overwrites obj's AABB in the AABB pool and repositions it in the
// tree if it no longer fits its current node. A no-op if obj is not live.
func (t *Octree) Update(obj int, minX, minY, minZ, maxX, maxY, maxZ float32) error {
	t.aabbs.Set(obj, minX, minY, minZ, maxX, maxY, maxZ)

	current := t.objToNode[obj]
	if current == None {
		return nil
	}

	objOff := t.aabbs.Offset(obj)
	if t.fits(objOff, current) {
		return nil
	}

	t.nodes.RemoveObject(current, obj)
	t.objToNode[obj] = None

	ancestor := current
	for {
		parent := t.nodes.GetParent(ancestor)
		if parent == None {
			ancestor = t.root
			break
		}
		ancestor = parent
		if t.fits(objOff, ancestor) {
			break
		}
	}
	return t.insertInto(ancestor, obj)
}

// Remove deletes obj from the tree. A no-op if obj is not live.
func (t *Octree) Remove(obj int) {
	node := t.objToNode[obj]
	if node == None {
		return
	}
	t.nodes.RemoveObject(node, obj)
	t.objToNode[obj] = None
}

// Raycast walks the tree for the closest object pierced by the ray at
// rayBuf[rayOff:rayOff+6]. Returns (objectIndex, t, true) on a hit, or
// (None, -1, false) on a miss or an empty tree.
func (t *Octree) Raycast(rayBuf []float32, rayOff int) (int, float32, bool) {
	nb := t.nodes.Buffer()
	rootOff := t.nodes.AABBOffset(t.root)
	if RayIntersectsAABB(rayBuf, rayOff, nb, rootOff) < 0 {
		return None, -1, false
	}

	t.stack = append(t.stack[:0], t.root)
	bestT := float32(maxFloat32)
	bestIdx := None

	for len(t.stack) > 0 {
		n := len(t.stack) - 1
		node := t.stack[n]
		t.stack = t.stack[:n]

		count := t.nodes.GetObjectCount(node)
		for s := 0; s < count; s++ {
			obj := t.nodes.GetObject(node, s)
			ht := RayIntersectsAABB(rayBuf, rayOff, t.aabbs.Buffer(), t.aabbs.Offset(obj))
			if ht >= 0 && ht < bestT {
				bestT = ht
				bestIdx = obj
			}
		}

		if first := t.nodes.GetFirstChild(node); first >= 0 {
			for i := 0; i < 8; i++ {
				child := first + i
				if RayIntersectsAABB(rayBuf, rayOff, nb, t.nodes.AABBOffset(child)) >= 0 {
					t.stack = append(t.stack, child)
				}
			}
		}
	}

	if bestIdx < 0 {
		return None, -1, false
	}
	return bestIdx, bestT, true
}

const maxFloat32 = 3.4028235e+38

// QueryBox appends every live object overlapping [minX..maxZ] to dst and
// returns the extended slice, duplicate-free, in DFS encounter order.
func (t *Octree) QueryBox(minX, minY, minZ, maxX, maxY, maxZ float32, dst []int) []int {
	var q [AABBStride]float32
	q[CompMinX], q[CompMinY], q[CompMinZ] = minX, minY, minZ
	q[CompMaxX], q[CompMaxY], q[CompMaxZ] = maxX, maxY, maxZ
	qs := q[:]

	nb := t.nodes.Buffer()
	rootOff := t.nodes.AABBOffset(t.root)
	if !AABBOverlaps(qs, 0, nb, rootOff) {
		return dst
	}

	t.stack = append(t.stack[:0], t.root)
	for len(t.stack) > 0 {
		n := len(t.stack) - 1
		node := t.stack[n]
		t.stack = t.stack[:n]

		count := t.nodes.GetObjectCount(node)
		for s := 0; s < count; s++ {
			obj := t.nodes.GetObject(node, s)
			if AABBOverlaps(qs, 0, t.aabbs.Buffer(), t.aabbs.Offset(obj)) {
				dst = append(dst, obj)
			}
		}

		if first := t.nodes.GetFirstChild(node); first >= 0 {
			for i := 0; i < 8; i++ {
				child := first + i
				if AABBOverlaps(qs, 0, nb, t.nodes.AABBOffset(child)) {
					t.stack = append(t.stack, child)
				}
			}
		}
	}
	return dst
}

// Clear returns all node memory to the bump allocator and re-allocates a
// fresh root with the given bounds, forgetting every live object.
func (t *Octree) Clear(minX, minY, minZ, maxX, maxY, maxZ float32) error {
	t.nodes.Reset()
	for i := range t.objToNode {
		t.objToNode[i] = None
	}
	root, err := t.nodes.Allocate()
	if err != nil {
		return err
	}
	t.root = root
	t.nodes.SetAABB(root, minX, minY, minZ, maxX, maxY, maxZ)
	return nil
}

// BulkInsert inserts a batch of already-allocated AABB pool indices in
// one call, stopping at the first error.
func (t *Octree) BulkInsert(objs []int) error {
	for _, obj := range objs {
		if err := t.Insert(obj); err != nil {
			return err
		}
	}
	return nil
}

// Stats reports the tree's shape. NodeCount is the node pool's Size();
// LeafCount, ObjectCount and MaxDepth come from a walk of the nodes
// reachable from the root.
func (t *Octree) Stats() TreeStats {
	var s TreeStats
	s.NodeCount = t.nodes.Size()

	var walk func(node, depth int)
	walk = func(node, depth int) {
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		first := t.nodes.GetFirstChild(node)
		count := t.nodes.GetObjectCount(node)
		s.ObjectCount += count
		if first < 0 {
			s.LeafCount++
			return
		}
		for i := 0; i < 8; i++ {
			walk(first+i, depth+1)
		}
	}
	walk(t.root, 0)
	return s
}

// VisitLeaves calls fn once per leaf node reachable from the root, via
// the same DFS shape as Raycast/QueryBox.
func (t *Octree) VisitLeaves(fn func(nodeIdx int)) {
	t.stack = append(t.stack[:0], t.root)
	for len(t.stack) > 0 {
		n := len(t.stack) - 1
		node := t.stack[n]
		t.stack = t.stack[:n]

		first := t.nodes.GetFirstChild(node)
		if first < 0 {
			fn(node)
			continue
		}
		for i := 0; i < 8; i++ {
			t.stack = append(t.stack, first+i)
		}
	}
}
