// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package octree

import "errors"

// Sentinel errors classify every failure the package can return.
// Callers test for these with errors.Is, the same convention
// code.hybscloud.com/iox uses for its own semantic errors — this
// package's operations are synchronous, so there is no ErrWouldBlock
// analogue here: a pool is either able to satisfy a request or it isn't.
var (
	// ErrCapacityExceeded is returned when a pool has no free slot left
	// (both its free-list and its bump counter are exhausted), when a
	// node's inline object array is full, or when IndexPool.Release finds
	// its free-list already at capacity (a guard against double release).
	ErrCapacityExceeded = errors.New("octree: capacity exceeded")

	// ErrInvalidIndex is returned by Release when the index is out of
	// range.
	ErrInvalidIndex = errors.New("octree: invalid index")

	// ErrNotInitialized is returned by SweepProcessor.Sweep when called
	// before Init.
	ErrNotInitialized = errors.New("octree: sweep processor not initialized")

	// ErrDegenerateInsert is returned by Octree.Insert when a leaf at
	// capacity K was subdivided but retrying the insert at that node
	// still failed with ErrCapacityExceeded: typically the object fits
	// none of the eight children and the node's inline list is already
	// full of objects that fit none of them either. A node pool that runs
	// out while that retry subdivides a descendant is reported the same
	// way (see the subdivision termination note in the package design).
	ErrDegenerateInsert = errors.New("octree: degenerate insert, objects could not be separated by subdivision")
)
