// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package octree

import (
	"fmt"
	"unsafe"

	"code.hybscloud.com/octree/internal"
)

// NodePool is a fixed-capacity flat store of fixed-stride octree node
// records. Unlike AabbPool, it only bump-allocates: per the package's
// non-goals, individual nodes are never recycled, only reclaimed in bulk
// by Reset.
//
// The record layout itself (9+K floats per node, tightly packed) is
// bit-exact and never padded, so a node pool's backing bytes stay
// cross-tool compatible. NewNodePool instead rounds the heap buffer's
// total length up to a whole number of cache lines
// (internal.CacheLineSize). NodePoolOverRegion adds no such padding: it
// views exactly capacity*(9+K) floats of the caller's region.
type NodePool struct {
	_ noCopy

	buf      []float32
	stride   int // logical record size: 9 + K
	k        int
	capacity int
	bump     int
}

func cacheLineAlignedLen(floats int) int {
	floatsPerLine := internal.CacheLineSize / 4
	if floatsPerLine <= 0 {
		return floats
	}
	lines := (floats + floatsPerLine - 1) / floatsPerLine
	return lines * floatsPerLine
}

// NewNodePool creates a heap-backed NodePool with the given capacity and
// maximum inline objects per node (K). A k <= 0 uses DefaultK.
func NewNodePool(capacity int, k int) *NodePool {
	if k <= 0 {
		k = DefaultK
	}
	stride := NodeStride(k)
	buf := make([]float32, cacheLineAlignedLen(capacity*stride))
	return &NodePool{buf: buf, stride: stride, k: k, capacity: capacity}
}

// NodePoolOverRegion constructs a NodePool viewing an existing []byte
// region as its backing storage, for the off-thread sweep processor's
// shared-memory handoff (see package doc).
func NodePoolOverRegion(region []byte, capacity int, k int) *NodePool {
	if k <= 0 {
		k = DefaultK
	}
	stride := NodeStride(k)
	need := capacity * stride * 4
	if len(region) < need {
		panic("octree: shared region too small for node pool capacity")
	}
	buf := unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(region))), capacity*stride)
	return &NodePool{buf: buf, stride: stride, k: k, capacity: capacity}
}

// Allocate bump-allocates a fresh node, initializing firstChild=None,
// parent=None, objectCount=0. Object slots are left undefined.
func (p *NodePool) Allocate() (int, error) {
	if p.bump >= p.capacity {
		return None, fmt.Errorf("%w: node pool at capacity %d", ErrCapacityExceeded, p.capacity)
	}
	idx := p.bump
	p.bump++
	o := idx * p.stride
	p.buf[o+nodeOffFirstChild] = None
	p.buf[o+nodeOffParent] = None
	p.buf[o+nodeOffObjectCount] = 0
	return idx, nil
}

// SetAABB writes a node's AABB record.
func (p *NodePool) SetAABB(i int, minX, minY, minZ, maxX, maxY, maxZ float32) {
	o := i*p.stride + nodeOffAABB
	p.buf[o+CompMinX] = minX
	p.buf[o+CompMinY] = minY
	p.buf[o+CompMinZ] = minZ
	p.buf[o+CompMaxX] = maxX
	p.buf[o+CompMaxY] = maxY
	p.buf[o+CompMaxZ] = maxZ
}

// GetAABB returns one component (CompMinX..CompMaxZ) of a node's AABB.
func (p *NodePool) GetAABB(i int, component int) float32 {
	return p.buf[i*p.stride+nodeOffAABB+component]
}

// AABBOffset returns the float32 buffer offset of node i's AABB record,
// for passing to the flat kernels alongside Buffer().
func (p *NodePool) AABBOffset(i int) int { return i*p.stride + nodeOffAABB }

// Buffer returns the pool's backing float32 storage, for direct kernel use.
func (p *NodePool) Buffer() []float32 { return p.buf }

// SetFirstChild sets the index of the first of 8 contiguous children, or
// None for a leaf.
func (p *NodePool) SetFirstChild(i, child int) {
	p.buf[i*p.stride+nodeOffFirstChild] = float32(child)
}

// GetFirstChild returns the node's first-child index, or None.
func (p *NodePool) GetFirstChild(i int) int {
	return int(p.buf[i*p.stride+nodeOffFirstChild])
}

// SetParent sets the node's parent index, or None for the root.
func (p *NodePool) SetParent(i, parent int) {
	p.buf[i*p.stride+nodeOffParent] = float32(parent)
}

// GetParent returns the node's parent index, or None.
func (p *NodePool) GetParent(i int) int {
	return int(p.buf[i*p.stride+nodeOffParent])
}

// GetObjectCount returns the number of object indices currently stored
// inline at node i.
func (p *NodePool) GetObjectCount(i int) int {
	return int(p.buf[i*p.stride+nodeOffObjectCount])
}

// AddObject appends an object index to node i's inline list. Returns
// ErrCapacityExceeded if the node already holds K objects.
func (p *NodePool) AddObject(i, obj int) error {
	base := i * p.stride
	count := int(p.buf[base+nodeOffObjectCount])
	if count >= p.k {
		return fmt.Errorf("%w: node %d already holds %d objects", ErrCapacityExceeded, i, p.k)
	}
	p.buf[base+nodeOffObjects+count] = float32(obj)
	p.buf[base+nodeOffObjectCount] = float32(count + 1)
	return nil
}

// GetObject returns the object index stored at the given slot (in
// [0, GetObjectCount(i))) of node i.
func (p *NodePool) GetObject(i, slot int) int {
	return int(p.buf[i*p.stride+nodeOffObjects+slot])
}

// ClearObjects zeroes node i's object count without touching the
// underlying slots.
func (p *NodePool) ClearObjects(i int) {
	p.buf[i*p.stride+nodeOffObjectCount] = 0
}

// RemoveObject removes obj from node i's inline list via swap-with-last.
// Returns whether obj was present.
func (p *NodePool) RemoveObject(i, obj int) bool {
	base := i * p.stride
	count := int(p.buf[base+nodeOffObjectCount])
	for s := 0; s < count; s++ {
		slot := base + nodeOffObjects + s
		if int(p.buf[slot]) == obj {
			last := base + nodeOffObjects + count - 1
			p.buf[slot] = p.buf[last]
			p.buf[base+nodeOffObjectCount] = float32(count - 1)
			return true
		}
	}
	return false
}

// K returns the maximum number of inline objects per node.
func (p *NodePool) K() int { return p.k }

// Stride returns the node record's float32 stride (9 + K).
func (p *NodePool) Stride() int { return p.stride }

// Size returns the number of nodes ever bump-allocated since construction
// or the last Reset.
func (p *NodePool) Size() int { return p.bump }

// Cap returns the pool's fixed capacity.
func (p *NodePool) Cap() int { return p.capacity }

// Reset returns all node indices to the bump allocator.
func (p *NodePool) Reset() {
	p.bump = 0
}
