// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package octree

import "unsafe"

// RayPool is a fixed-capacity flat store of 6-float32 ray records. Unlike
// AabbPool, ray slots are never individually allocated or released: a
// sweep batch addresses rays by position (ray index in [0, rayCount)),
// so RayPool is just Set/Get/Buffer over a flat region, the same
// "typed view over a raw buffer" shape as the rest of the package's
// pools, minus the free-list.
type RayPool struct {
	_ noCopy

	buf      []float32
	capacity int
}

// NewRayPool creates a heap-backed RayPool with the given capacity.
func NewRayPool(capacity int) *RayPool {
	return &RayPool{buf: make([]float32, capacity*RayStride), capacity: capacity}
}

// RayPoolOverRegion constructs a RayPool viewing an existing []byte
// region as its backing storage, for the sweep processor's shared-memory
// ray buffer.
func RayPoolOverRegion(region []byte, capacity int) *RayPool {
	need := capacity * RayStride * 4
	if len(region) < need {
		panic("octree: shared region too small for ray pool capacity")
	}
	buf := unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(region))), capacity*RayStride)
	return &RayPool{buf: buf, capacity: capacity}
}

// Set writes a ray record's six floats directly.
func (p *RayPool) Set(i int, ox, oy, oz, dx, dy, dz float32) {
	o := i * RayStride
	p.buf[o+CompOX] = ox
	p.buf[o+CompOY] = oy
	p.buf[o+CompOZ] = oz
	p.buf[o+CompDX] = dx
	p.buf[o+CompDY] = dy
	p.buf[o+CompDZ] = dz
}

// Get returns a single component of the ray record at i (one of
// CompOX..CompDZ).
func (p *RayPool) Get(i int, component int) float32 {
	return p.buf[i*RayStride+component]
}

// Offset returns the float32 buffer offset of record i, for passing to
// the flat kernels alongside Buffer().
func (p *RayPool) Offset(i int) int { return i * RayStride }

// Buffer returns the pool's backing float32 storage, for direct kernel use.
func (p *RayPool) Buffer() []float32 { return p.buf }

// Cap returns the pool's fixed capacity.
func (p *RayPool) Cap() int { return p.capacity }
