// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command octreebench builds a tree of random AABBs, fires a batch of
// random rays at it, and reports hit rate and timing. It exercises
// AabbPool, NodePool, Octree, and Raycast end to end; it does not call
// QueryBox.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"code.hybscloud.com/octree"
)

func main() {
	objects := flag.Int("objects", 10000, "number of random AABBs to insert")
	rays := flag.Int("rays", 10000, "number of random rays to cast")
	worldExtent := flag.Float64("extent", 1000, "half-width of the cubic world bounds")
	boxSize := flag.Float64("box-size", 2, "half-width of each inserted AABB")
	k := flag.Int("k", octree.DefaultK, "max objects per octree leaf")
	seed := flag.Int64("seed", 1, "PRNG seed")
	verbose := flag.Bool("verbose", false, "enable debug-level logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	if err := run(*objects, *rays, float32(*worldExtent), float32(*boxSize), *k, *seed); err != nil {
		log.Error().Err(err).Msg("octreebench failed")
		os.Exit(1)
	}
}

func run(objectCount, rayCount int, worldExtent, boxSize float32, k int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))

	aabbs := octree.NewAabbPool(objectCount)
	nodes := octree.NewNodePool(estimateNodeCapacity(objectCount, k), k)
	tree, err := octree.NewOctree(nodes, aabbs, -worldExtent, -worldExtent, -worldExtent, worldExtent, worldExtent, worldExtent)
	if err != nil {
		return fmt.Errorf("construct octree: %w", err)
	}

	log.Info().Int("objects", objectCount).Int("rays", rayCount).Float32("extent", worldExtent).Msg("building tree")

	insertStart := time.Now()
	for i := 0; i < objectCount; i++ {
		cx := (rng.Float32()*2 - 1) * worldExtent
		cy := (rng.Float32()*2 - 1) * worldExtent
		cz := (rng.Float32()*2 - 1) * worldExtent

		obj, err := aabbs.Allocate()
		if err != nil {
			return fmt.Errorf("allocate object %d: %w", i, err)
		}
		aabbs.Set(obj, cx-boxSize, cy-boxSize, cz-boxSize, cx+boxSize, cy+boxSize, cz+boxSize)
		if err := tree.Insert(obj); err != nil {
			return fmt.Errorf("insert object %d: %w", i, err)
		}
	}
	insertElapsed := time.Since(insertStart)

	stats := tree.Stats()
	log.Debug().
		Int("nodeCount", stats.NodeCount).
		Int("leafCount", stats.LeafCount).
		Int("maxDepth", stats.MaxDepth).
		Dur("insertElapsed", insertElapsed).
		Msg("tree built")

	rayBuf := make([]float32, octree.RayStride)
	hits := 0
	castStart := time.Now()
	for i := 0; i < rayCount; i++ {
		ox := (rng.Float32()*2 - 1) * worldExtent
		oy := (rng.Float32()*2 - 1) * worldExtent
		oz := (rng.Float32()*2 - 1) * worldExtent
		dx, dy, dz := randomUnitVector(rng)

		rayBuf[octree.CompOX], rayBuf[octree.CompOY], rayBuf[octree.CompOZ] = ox, oy, oz
		rayBuf[octree.CompDX], rayBuf[octree.CompDY], rayBuf[octree.CompDZ] = dx, dy, dz

		if _, _, ok := tree.Raycast(rayBuf, 0); ok {
			hits++
		}
	}
	castElapsed := time.Since(castStart)

	log.Info().
		Int("hits", hits).
		Int("rays", rayCount).
		Float64("hitRate", float64(hits)/float64(rayCount)).
		Dur("insertElapsed", insertElapsed).
		Dur("castElapsed", castElapsed).
		Msg("sweep complete")

	return nil
}

// estimateNodeCapacity sizes the node pool generously for a uniformly
// random distribution: each subdivision costs 8 nodes and a balanced tree
// holding objectCount/k leaves needs roughly that many subdivisions.
func estimateNodeCapacity(objectCount, k int) int {
	leaves := objectCount/k + 1
	return 1 + 8*leaves*2
}

func randomUnitVector(rng *rand.Rand) (x, y, z float32) {
	for {
		x = rng.Float32()*2 - 1
		y = rng.Float32()*2 - 1
		z = rng.Float32()*2 - 1
		lenSq := x*x + y*y + z*z
		if lenSq > 1e-6 && lenSq <= 1 {
			inv := float32(1) / float32(math.Sqrt(float64(lenSq)))
			return x * inv, y * inv, z * inv
		}
	}
}
