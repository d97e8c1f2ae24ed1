// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package octree

import "fmt"

// IndexPool is a fixed-capacity LIFO free-list over integer indices in
// [0, capacity). It is the teacher's IndirectPool contract (store
// indices, not values) reduced to its single-threaded core: this
// package's pools are never touched concurrently by design (see the
// package doc's shared-memory discipline), so acquiring and releasing
// an index needs no CAS loop, only a plain slice used as a stack.
//
// IndexPool is constructed full: every index in [0, capacity) is
// available to Acquire before any Release has happened.
type IndexPool struct {
	_ noCopy

	free     []int
	capacity int
}

// NewIndexPool creates an IndexPool with the given capacity, with every
// index already available.
func NewIndexPool(capacity int) *IndexPool {
	free := make([]int, capacity)
	for i := range free {
		free[i] = i
	}
	return &IndexPool{free: free, capacity: capacity}
}

// Acquire pops an index off the free-list. Returns (None, false) when
// the pool is empty.
func (p *IndexPool) Acquire() (int, bool) {
	n := len(p.free)
	if n == 0 {
		return None, false
	}
	idx := p.free[n-1]
	p.free = p.free[:n-1]
	return idx, true
}

// Release pushes an index back onto the free-list. Returns
// ErrInvalidIndex if i is out of [0, capacity), and ErrCapacityExceeded
// if the free-list is already holding capacity entries (a guard against
// double release).
func (p *IndexPool) Release(i int) error {
	if i < 0 || i >= p.capacity {
		return fmt.Errorf("%w: index %d out of [0,%d)", ErrInvalidIndex, i, p.capacity)
	}
	if len(p.free) >= p.capacity {
		return fmt.Errorf("%w: free-list already full, possible double release of %d", ErrCapacityExceeded, i)
	}
	p.free = append(p.free, i)
	return nil
}

// Cap returns the pool's fixed capacity.
func (p *IndexPool) Cap() int { return p.capacity }

// Len returns the number of indices currently available to Acquire.
func (p *IndexPool) Len() int { return len(p.free) }
