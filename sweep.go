// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package octree

import "unsafe"

// SweepParams configures a SweepProcessor's shared-memory regions,
// capacities, and world bounds. Every region is a caller-owned []byte
// that may also be aliased by a second view on another goroutine or OS
// thread, per the package's single-writer-at-a-time sharing contract
// (see the package doc).
type SweepParams struct {
	AabbRegion   []byte
	NodeRegion   []byte
	RayRegion    []byte
	ResultRegion []byte

	ObjectCapacity int
	NodeCapacity   int
	RayCount       int
	K              int // 0 uses DefaultK

	MinX, MinY, MinZ float32
	MaxX, MaxY, MaxZ float32
}

// SweepProcessor is the off-thread façade: given shared AABB, node, ray,
// and result regions, it keeps an octree in sync with an externally
// maintained object set and writes closest-hit results for a batch of
// rays. It carries no synchronization of its own — the message-send/
// receive boundary between init/sweep calls is the only handoff point,
// and is the host's responsibility (§5 of the package design).
type SweepProcessor struct {
	_ noCopy

	initialized bool

	aabbs *AabbPool
	nodes *NodePool
	rays  *RayPool
	tree  *Octree

	results []float32

	inserted []bool
}

// Init constructs the processor's internal pools and octree over the
// given shared regions. Replies ready by returning nil.
func (s *SweepProcessor) Init(p SweepParams) error {
	k := p.K
	if k <= 0 {
		k = DefaultK
	}

	s.aabbs = AabbPoolOverRegion(p.AabbRegion, p.ObjectCapacity)
	s.nodes = NodePoolOverRegion(p.NodeRegion, p.NodeCapacity, k)
	s.rays = RayPoolOverRegion(p.RayRegion, p.RayCount)

	needResults := p.RayCount * ResultStride * 4
	if len(p.ResultRegion) < needResults {
		panic("octree: shared region too small for result capacity")
	}
	s.results = unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(p.ResultRegion))), p.RayCount*ResultStride)

	tree, err := NewOctree(s.nodes, s.aabbs, p.MinX, p.MinY, p.MinZ, p.MaxX, p.MaxY, p.MaxZ)
	if err != nil {
		return err
	}
	s.tree = tree
	s.inserted = make([]bool, p.ObjectCapacity)
	s.initialized = true
	return nil
}

// Sweep assumes the caller has already written the first objectCount
// AABB records into the shared AABB buffer. It brings the tree up to
// date — inserting objects seen for the first time, updating ones seen
// before — then casts every configured ray, writing {objectIndex, t} (or
// {-1, -1} on a miss) into the shared result buffer. Replies done by
// returning (rayCount, nil).
func (s *SweepProcessor) Sweep(objectCount int) (int, error) {
	if !s.initialized {
		return 0, ErrNotInitialized
	}

	if err := s.aabbs.EnsureSize(objectCount); err != nil {
		return 0, err
	}

	for obj := 0; obj < objectCount; obj++ {
		off := s.aabbs.Offset(obj)
		buf := s.aabbs.Buffer()
		minX, minY, minZ := buf[off+CompMinX], buf[off+CompMinY], buf[off+CompMinZ]
		maxX, maxY, maxZ := buf[off+CompMaxX], buf[off+CompMaxY], buf[off+CompMaxZ]

		if s.inserted[obj] {
			if err := s.tree.Update(obj, minX, minY, minZ, maxX, maxY, maxZ); err != nil {
				return 0, err
			}
			continue
		}
		if err := s.tree.Insert(obj); err != nil {
			return 0, err
		}
		s.inserted[obj] = true
	}

	rayCount := s.rays.Cap()
	for r := 0; r < rayCount; r++ {
		idx, t, hit := s.tree.Raycast(s.rays.Buffer(), s.rays.Offset(r))
		ro := r * ResultStride
		if hit {
			s.results[ro] = float32(idx)
			s.results[ro+1] = t
		} else {
			s.results[ro] = -1
			s.results[ro+1] = -1
		}
	}
	return rayCount, nil
}

// Aabbs returns the processor's internal AABB pool, for writing object
// data ahead of a Sweep call.
func (s *SweepProcessor) Aabbs() *AabbPool { return s.aabbs }

// Rays returns the processor's internal ray pool, for writing ray data
// ahead of a Sweep call.
func (s *SweepProcessor) Rays() *RayPool { return s.rays }

// Results returns the processor's backing result buffer, laid out as
// {objectIndex, t} pairs per ray.
func (s *SweepProcessor) Results() []float32 { return s.results }

// Tree returns the processor's internal octree.
func (s *SweepProcessor) Tree() *Octree { return s.tree }
