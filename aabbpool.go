// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package octree

import (
	"fmt"
	"unsafe"
)

// AabbPool is a fixed-capacity flat store of 6-float32 AABB records. It
// bump-allocates new slots and recycles released ones LIFO — the same
// "bump + free-list" shape as the teacher's BoundedPool, stripped of
// concurrency since a single AabbPool is never touched from two
// goroutines at once by this package's contract (a SweepProcessor's
// shared AabbPool is written by exactly one side at a time; see the
// package doc).
//
// size (Size) is the bump count only, not a live-object count: Release
// does not decrement it. This matches the "free-list semantics of AABB
// pool" design choice — callers who want a true live count should track
// it themselves.
type AabbPool struct {
	_ noCopy

	buf      []float32
	capacity int
	bump     int
	free     []int
}

// NewAabbPool creates a heap-backed AabbPool with the given capacity.
func NewAabbPool(capacity int) *AabbPool {
	return &AabbPool{buf: make([]float32, capacity*AABBStride), capacity: capacity}
}

// NewSharedAabbPool allocates a new []byte region sized for capacity
// AABB records and returns an AabbPool backed by it, along with the raw
// region so it can be handed to a second AabbPoolOverRegion on another
// goroutine or thread.
func NewSharedAabbPool(capacity int) (*AabbPool, []byte) {
	region := make([]byte, capacity*AABBStride*4)
	return AabbPoolOverRegion(region, capacity), region
}

// AabbPoolOverRegion constructs an AabbPool viewing an existing []byte
// region as its backing storage. A pool constructed this way shares
// float data with any other pool constructed over the same region, but
// keeps its own independent bump counter and free-list — per spec, the
// size/free-list bookkeeping is not part of the shared memory contract.
func AabbPoolOverRegion(region []byte, capacity int) *AabbPool {
	need := capacity * AABBStride * 4
	if len(region) < need {
		panic("octree: shared region too small for aabb pool capacity")
	}
	buf := unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(region))), capacity*AABBStride)
	return &AabbPool{buf: buf, capacity: capacity}
}

// Allocate returns the LIFO-most released slot if one exists, otherwise
// bump-allocates a fresh slot. Returns ErrCapacityExceeded only when both
// the free-list is empty and the bump counter has reached capacity.
func (p *AabbPool) Allocate() (int, error) {
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		return idx, nil
	}
	if p.bump >= p.capacity {
		return None, fmt.Errorf("%w: aabb pool at capacity %d", ErrCapacityExceeded, p.capacity)
	}
	idx := p.bump
	p.bump++
	return idx, nil
}

// EnsureSize advances the bump counter so Size() reaches at least n,
// without touching the free-list. Used by the sweep processor to adopt
// object indices a caller has already written directly into the shared
// AABB buffer, bypassing Allocate. A no-op if Size() is already >= n.
// Returns ErrCapacityExceeded if n exceeds the pool's capacity.
func (p *AabbPool) EnsureSize(n int) error {
	if n > p.capacity {
		return fmt.Errorf("%w: aabb pool at capacity %d", ErrCapacityExceeded, p.capacity)
	}
	if n > p.bump {
		p.bump = n
	}
	return nil
}

// Release returns a slot to the free-list. Returns ErrInvalidIndex if i
// is out of range.
func (p *AabbPool) Release(i int) error {
	if i < 0 || i >= p.capacity {
		return fmt.Errorf("%w: aabb index %d out of [0,%d)", ErrInvalidIndex, i, p.capacity)
	}
	p.free = append(p.free, i)
	return nil
}

// Set writes an AABB record's six floats directly.
func (p *AabbPool) Set(i int, minX, minY, minZ, maxX, maxY, maxZ float32) {
	o := i * AABBStride
	p.buf[o+CompMinX] = minX
	p.buf[o+CompMinY] = minY
	p.buf[o+CompMinZ] = minZ
	p.buf[o+CompMaxX] = maxX
	p.buf[o+CompMaxY] = maxY
	p.buf[o+CompMaxZ] = maxZ
}

// Get returns a single component of the AABB record at i (one of
// CompMinX..CompMaxZ).
func (p *AabbPool) Get(i int, component int) float32 {
	return p.buf[i*AABBStride+component]
}

// Offset returns the float32 buffer offset of record i, for passing to
// the flat kernels alongside Buffer().
func (p *AabbPool) Offset(i int) int { return i * AABBStride }

// Buffer returns the pool's backing float32 storage, for direct kernel use.
func (p *AabbPool) Buffer() []float32 { return p.buf }

// Size returns the number of distinct indices ever bump-allocated since
// construction or the last Reset. Unaffected by Release.
func (p *AabbPool) Size() int { return p.bump }

// Cap returns the pool's fixed capacity.
func (p *AabbPool) Cap() int { return p.capacity }

// Reset returns every slot to unallocated and empties the free-list.
// The backing buffer's contents are left as-is; callers that depend on
// zeroed records should overwrite them via Set after Allocate.
func (p *AabbPool) Reset() {
	p.bump = 0
	p.free = p.free[:0]
}
