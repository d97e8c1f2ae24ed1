// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package octree_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/octree"
)

func TestIndexPool_ConstructedFull(t *testing.T) {
	p := octree.NewIndexPool(4)
	if p.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", p.Len())
	}
	seen := make(map[int]bool)
	for i := 0; i < 4; i++ {
		idx, ok := p.Acquire()
		if !ok {
			t.Fatalf("Acquire() failed at iteration %d", i)
		}
		if idx < 0 || idx >= 4 {
			t.Fatalf("Acquire() = %d out of range", idx)
		}
		seen[idx] = true
	}
	if len(seen) != 4 {
		t.Fatalf("expected 4 distinct indices, got %d", len(seen))
	}
	if _, ok := p.Acquire(); ok {
		t.Fatalf("Acquire() on empty pool should fail")
	}
}

func TestIndexPool_ReleaseLIFO(t *testing.T) {
	p := octree.NewIndexPool(2)
	a, _ := p.Acquire()
	b, _ := p.Acquire()
	if err := p.Release(a); err != nil {
		t.Fatalf("Release(%d): %v", a, err)
	}
	if err := p.Release(b); err != nil {
		t.Fatalf("Release(%d): %v", b, err)
	}
	got, ok := p.Acquire()
	if !ok || got != b {
		t.Errorf("Acquire() = (%d,%v), want (%d,true) LIFO reuse", got, ok, b)
	}
}

func TestIndexPool_ReleaseOutOfRange(t *testing.T) {
	p := octree.NewIndexPool(2)
	if err := p.Release(5); !errors.Is(err, octree.ErrInvalidIndex) {
		t.Errorf("Release(5) = %v, want ErrInvalidIndex", err)
	}
	if err := p.Release(-1); !errors.Is(err, octree.ErrInvalidIndex) {
		t.Errorf("Release(-1) = %v, want ErrInvalidIndex", err)
	}
}

func TestIndexPool_DoubleReleaseGuard(t *testing.T) {
	p := octree.NewIndexPool(1)
	idx, _ := p.Acquire()
	if err := p.Release(idx); err != nil {
		t.Fatalf("Release(%d): %v", idx, err)
	}
	if err := p.Release(idx); !errors.Is(err, octree.ErrCapacityExceeded) {
		t.Errorf("double Release(%d) = %v, want ErrCapacityExceeded", idx, err)
	}
}
