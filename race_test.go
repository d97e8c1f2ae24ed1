// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package octree_test

// The SweepProcessor's single-writer-at-a-time discipline (see the
// package doc) is cooperative: the host alternates which side touches a
// shared region, and the handoff itself carries no atomics or fences for
// the race detector to observe. Running two goroutines against the same
// SweepProcessor without that handoff is a real data race the detector
// would (correctly) flag, but it flags the caller's violation of the
// contract, not a bug in this package — so there is no meaningful
// race-mode test to add here beyond documenting why one is absent.
const raceEnabled = true
