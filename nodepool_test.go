// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package octree_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/octree"
)

func TestNodePool_AllocateInitializesSentinels(t *testing.T) {
	p := octree.NewNodePool(4, 4)
	i, err := p.Allocate()
	if err != nil {
		t.Fatalf("Allocate(): %v", err)
	}
	if got := p.GetFirstChild(i); got != octree.None {
		t.Errorf("GetFirstChild() = %d, want None", got)
	}
	if got := p.GetParent(i); got != octree.None {
		t.Errorf("GetParent() = %d, want None", got)
	}
	if got := p.GetObjectCount(i); got != 0 {
		t.Errorf("GetObjectCount() = %d, want 0", got)
	}
}

func TestNodePool_CapacityExceeded(t *testing.T) {
	p := octree.NewNodePool(1, 4)
	if _, err := p.Allocate(); err != nil {
		t.Fatalf("Allocate(): %v", err)
	}
	if _, err := p.Allocate(); !errors.Is(err, octree.ErrCapacityExceeded) {
		t.Errorf("Allocate() past capacity = %v, want ErrCapacityExceeded", err)
	}
}

func TestNodePool_SetGetAABB(t *testing.T) {
	p := octree.NewNodePool(1, 4)
	i, _ := p.Allocate()
	p.SetAABB(i, -1, -2, -3, 1, 2, 3)
	if got := p.GetAABB(i, octree.CompMinX); got != -1 {
		t.Errorf("GetAABB(CompMinX) = %v, want -1", got)
	}
	if got := p.GetAABB(i, octree.CompMaxZ); got != 3 {
		t.Errorf("GetAABB(CompMaxZ) = %v, want 3", got)
	}
}

func TestNodePool_AddObjectCapacityGuard(t *testing.T) {
	p := octree.NewNodePool(1, 2)
	i, _ := p.Allocate()
	if err := p.AddObject(i, 10); err != nil {
		t.Fatalf("AddObject(10): %v", err)
	}
	if err := p.AddObject(i, 11); err != nil {
		t.Fatalf("AddObject(11): %v", err)
	}
	if err := p.AddObject(i, 12); !errors.Is(err, octree.ErrCapacityExceeded) {
		t.Errorf("AddObject() past K = %v, want ErrCapacityExceeded", err)
	}
	if got := p.GetObjectCount(i); got != 2 {
		t.Errorf("GetObjectCount() = %d, want 2", got)
	}
}

func TestNodePool_RemoveObjectSwapWithLast(t *testing.T) {
	p := octree.NewNodePool(1, 4)
	i, _ := p.Allocate()
	_ = p.AddObject(i, 1)
	_ = p.AddObject(i, 2)
	_ = p.AddObject(i, 3)

	if !p.RemoveObject(i, 2) {
		t.Fatalf("RemoveObject(2) = false, want true")
	}
	if got := p.GetObjectCount(i); got != 2 {
		t.Fatalf("GetObjectCount() = %d, want 2", got)
	}
	remaining := map[int]bool{p.GetObject(i, 0): true, p.GetObject(i, 1): true}
	if remaining[2] {
		t.Errorf("removed object 2 still present: %v", remaining)
	}
	if !remaining[1] || !remaining[3] {
		t.Errorf("expected {1,3} remaining, got %v", remaining)
	}

	if p.RemoveObject(i, 999) {
		t.Errorf("RemoveObject(999) = true, want false (not present)")
	}
}

func TestNodePool_ClearObjects(t *testing.T) {
	p := octree.NewNodePool(1, 4)
	i, _ := p.Allocate()
	_ = p.AddObject(i, 7)
	p.ClearObjects(i)
	if got := p.GetObjectCount(i); got != 0 {
		t.Errorf("GetObjectCount() after ClearObjects() = %d, want 0", got)
	}
}

func TestNodePool_Reset(t *testing.T) {
	p := octree.NewNodePool(2, 4)
	_, _ = p.Allocate()
	_, _ = p.Allocate()
	p.Reset()
	if p.Size() != 0 {
		t.Fatalf("Size() after Reset() = %d, want 0", p.Size())
	}
	idx, err := p.Allocate()
	if err != nil {
		t.Fatalf("Allocate() after Reset(): %v", err)
	}
	if idx != 0 {
		t.Errorf("Allocate() after Reset() = %d, want 0", idx)
	}
}
