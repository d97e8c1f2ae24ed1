// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package octree provides a flat-buffer 3D spatial index for dynamic
// axis-aligned bounding boxes (AABBs), tuned for interactive frame loops
// that need tens of thousands of ray and box queries per second without
// per-frame heap allocation.
//
// The package implements a pool-backed octree: AABBs, octree nodes, and
// ray records all live in flat float32 buffers addressed by integer
// index, never by pointer. Every query reuses a preallocated traversal
// stack, so raycast and queryBox allocate nothing on the heap once the
// pools are warmed up.
//
// # Pools
//
// AabbPool and NodePool are fixed-capacity stores over flat float32
// buffers. AabbPool bump-allocates new slots and recycles released ones
// LIFO; NodePool only bump-allocates, since tree nodes are never freed
// individually (a full Reset is the only way to reclaim node memory).
//
// Usage pattern:
//
//	aabbs := octree.NewAabbPool(1024)
//	nodes := octree.NewNodePool(4096, octree.DefaultK)
//	tree, err := octree.NewOctree(nodes, aabbs, -50, -50, -50, 50, 50, 50)
//
//	obj, err := aabbs.Allocate()
//	aabbs.Set(obj, 10, 10, 10, 11, 11, 11)
//	err = tree.Insert(obj)
//
// # Queries
//
//	idx, t, ok := tree.Raycast(rayBuf, rayOffset)
//	hits = tree.QueryBox(0, 0, 0, 20, 20, 20, hits[:0])
//
// # Shared Memory
//
// AabbPool, NodePool, and RayPool can be constructed over a
// caller-supplied []byte region (NewSharedAabbPool / AabbPoolOverRegion,
// NodePoolOverRegion, RayPoolOverRegion), so a producer goroutine or thread can
// write AABB and ray data into the same memory a worker thread later
// reads and writes results into. The package performs no locking of its
// own; the discipline is strictly single-writer-at-a-time, enforced by
// whatever host wraps the SweepProcessor (see below).
//
// # Off-Thread Sweep Processor
//
// SweepProcessor composes an AabbPool, NodePool, RayPool, and Octree
// over caller-provided shared buffers for a message-passing style
// producer/worker split:
//
//	var sp octree.SweepProcessor
//	err := sp.Init(octree.SweepParams{
//	    AabbRegion: aabbRegion, NodeRegion: nodeRegion,
//	    RayRegion: rayRegion, ResultRegion: resultRegion,
//	    ObjectCapacity: 1024, NodeCapacity: 4096, RayCount: 64,
//	    MinX: -50, MinY: -50, MinZ: -50, MaxX: 50, MaxY: 50, MaxZ: 50,
//	})
//	// producer writes AABB/ray data into sp.Aabbs()/sp.Rays() ...
//	n, err := sp.Sweep(objectCount)
//	// worker reads sp.Results() ...
//
// # Error Handling
//
// All fallible operations return one of the sentinel errors in errors.go
// (ErrCapacityExceeded, ErrInvalidIndex, ErrNotInitialized,
// ErrDegenerateInsert), classifiable with errors.Is. Queries never error:
// Raycast reports a miss via ok=false and QueryBox returns an empty
// (or unchanged) slice.
//
// # Dependencies
//
// octree has no third-party runtime dependencies; cmd/octreebench, the
// benchmark/demo CLI built on top of it, uses github.com/rs/zerolog for
// structured summary logging.
package octree
