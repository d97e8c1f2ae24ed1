// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package octree

import "math"

// This file holds the flat numeric kernels: ray-AABB intersection,
// AABB-AABB overlap/union/expand, and 3-vector dot/cross/distance. Every
// kernel reads its operands directly out of a caller-supplied []float32
// at a caller-supplied offset — the same "typed view over a raw buffer"
// convention the pools use for their backing storage, so a kernel never
// needs its own copy of a record to operate on it.

// RayIntersectsAABB implements the slab method against an AABB record.
// rayBuf[rayOff:rayOff+6] must be [ox,oy,oz,dx,dy,dz]; aabbBuf[aabbOff:aabbOff+6]
// must be [minX,minY,minZ,maxX,maxY,maxZ]. Returns the parametric entry
// distance t, or the exit distance when the ray origin is inside the box,
// or -1 on a miss.
//
// Per axis, a zero direction component is handled explicitly rather than
// relying on the IEEE-754 ±∞ reciprocal to fall out correctly: when the
// ray origin sits exactly on a zero-direction axis's box boundary, the
// natural (mn-o)*inv formula multiplies zero by infinity and produces
// NaN, silently turning a hit into a miss. Treating d==0 as "no
// constraint if o is within [mn,mx], otherwise an immediate miss" avoids
// that pitfall without changing the result for any non-degenerate ray.
func RayIntersectsAABB(rayBuf []float32, rayOff int, aabbBuf []float32, aabbOff int) float32 {
	ox, oy, oz := rayBuf[rayOff+CompOX], rayBuf[rayOff+CompOY], rayBuf[rayOff+CompOZ]
	dx, dy, dz := rayBuf[rayOff+CompDX], rayBuf[rayOff+CompDY], rayBuf[rayOff+CompDZ]

	mnx, mny, mnz := aabbBuf[aabbOff+CompMinX], aabbBuf[aabbOff+CompMinY], aabbBuf[aabbOff+CompMinZ]
	mxx, mxy, mxz := aabbBuf[aabbOff+CompMaxX], aabbBuf[aabbOff+CompMaxY], aabbBuf[aabbOff+CompMaxZ]

	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))

	if !slabAxis(ox, dx, mnx, mxx, &tmin, &tmax) {
		return -1
	}
	if !slabAxis(oy, dy, mny, mxy, &tmin, &tmax) {
		return -1
	}
	if !slabAxis(oz, dz, mnz, mxz, &tmin, &tmax) {
		return -1
	}

	if tmax < 0 || !(tmin <= tmax) {
		return -1
	}
	if tmin >= 0 {
		return tmin
	}
	return tmax
}

// slabAxis narrows [*tmin, *tmax] by the entry/exit t of one axis's
// slab. Returns false if this axis alone rules out any intersection.
func slabAxis(o, d, mn, mx float32, tmin, tmax *float32) bool {
	if d == 0 {
		return o >= mn && o <= mx
	}
	inv := 1 / d
	t1, t2 := (mn-o)*inv, (mx-o)*inv
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > *tmin {
		*tmin = t1
	}
	if t2 < *tmax {
		*tmax = t2
	}
	return true
}

// AABBOverlaps reports whether two AABB records overlap, with inclusive
// comparisons on every axis — touching faces count as overlap.
func AABBOverlaps(aBuf []float32, aOff int, bBuf []float32, bOff int) bool {
	return aBuf[aOff+CompMinX] <= bBuf[bOff+CompMaxX] && aBuf[aOff+CompMaxX] >= bBuf[bOff+CompMinX] &&
		aBuf[aOff+CompMinY] <= bBuf[bOff+CompMaxY] && aBuf[aOff+CompMaxY] >= bBuf[bOff+CompMinY] &&
		aBuf[aOff+CompMinZ] <= bBuf[bOff+CompMaxZ] && aBuf[aOff+CompMaxZ] >= bBuf[bOff+CompMinZ]
}

// AABBUnion writes into dstBuf[dstOff:dstOff+6] the smallest AABB
// containing both input records.
func AABBUnion(dstBuf []float32, dstOff int, aBuf []float32, aOff int, bBuf []float32, bOff int) {
	dstBuf[dstOff+CompMinX] = fmin32(aBuf[aOff+CompMinX], bBuf[bOff+CompMinX])
	dstBuf[dstOff+CompMinY] = fmin32(aBuf[aOff+CompMinY], bBuf[bOff+CompMinY])
	dstBuf[dstOff+CompMinZ] = fmin32(aBuf[aOff+CompMinZ], bBuf[bOff+CompMinZ])
	dstBuf[dstOff+CompMaxX] = fmax32(aBuf[aOff+CompMaxX], bBuf[bOff+CompMaxX])
	dstBuf[dstOff+CompMaxY] = fmax32(aBuf[aOff+CompMaxY], bBuf[bOff+CompMaxY])
	dstBuf[dstOff+CompMaxZ] = fmax32(aBuf[aOff+CompMaxZ], bBuf[bOff+CompMaxZ])
}

// AABBExpand grows the AABB record at dstBuf[dstOff:dstOff+6] in place
// so that it also contains the given point.
func AABBExpand(dstBuf []float32, dstOff int, x, y, z float32) {
	dstBuf[dstOff+CompMinX] = fmin32(dstBuf[dstOff+CompMinX], x)
	dstBuf[dstOff+CompMinY] = fmin32(dstBuf[dstOff+CompMinY], y)
	dstBuf[dstOff+CompMinZ] = fmin32(dstBuf[dstOff+CompMinZ], z)
	dstBuf[dstOff+CompMaxX] = fmax32(dstBuf[dstOff+CompMaxX], x)
	dstBuf[dstOff+CompMaxY] = fmax32(dstBuf[dstOff+CompMaxY], y)
	dstBuf[dstOff+CompMaxZ] = fmax32(dstBuf[dstOff+CompMaxZ], z)
}

func fmin32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func fmax32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Vec3Dot returns the dot product of the two 3-float vectors at the
// given buffer offsets.
func Vec3Dot(aBuf []float32, aOff int, bBuf []float32, bOff int) float32 {
	return aBuf[aOff]*bBuf[bOff] + aBuf[aOff+1]*bBuf[bOff+1] + aBuf[aOff+2]*bBuf[bOff+2]
}

// Vec3Cross writes the cross product of the two 3-float vectors at the
// given buffer offsets into dstBuf[dstOff:dstOff+3].
func Vec3Cross(dstBuf []float32, dstOff int, aBuf []float32, aOff int, bBuf []float32, bOff int) {
	ax, ay, az := aBuf[aOff], aBuf[aOff+1], aBuf[aOff+2]
	bx, by, bz := bBuf[bOff], bBuf[bOff+1], bBuf[bOff+2]
	dstBuf[dstOff+0] = ay*bz - az*by
	dstBuf[dstOff+1] = az*bx - ax*bz
	dstBuf[dstOff+2] = ax*by - ay*bx
}

// Vec3Distance returns the Euclidean distance between the two 3-float
// points at the given buffer offsets.
func Vec3Distance(aBuf []float32, aOff int, bBuf []float32, bOff int) float32 {
	dx := aBuf[aOff] - bBuf[bOff]
	dy := aBuf[aOff+1] - bBuf[bOff+1]
	dz := aBuf[aOff+2] - bBuf[bOff+2]
	return float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
}

// RayPointAt returns the point o + t*d for the ray at rayBuf[rayOff:rayOff+6].
func RayPointAt(rayBuf []float32, rayOff int, t float32) (x, y, z float32) {
	ox, oy, oz := rayBuf[rayOff+CompOX], rayBuf[rayOff+CompOY], rayBuf[rayOff+CompOZ]
	dx, dy, dz := rayBuf[rayOff+CompDX], rayBuf[rayOff+CompDY], rayBuf[rayOff+CompDZ]
	return ox + t*dx, oy + t*dy, oz + t*dz
}
