// Copyright 2024 The Allocator Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package allocator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestConcurrentMallocFree checks that every public operation takes
// the global mutex for its entire duration, so parallel goroutines
// allocating and freeing disjoint payloads never corrupt the chain or
// double-count bookkeeping.
func TestConcurrentMallocFree(t *testing.T) {
	var a Allocator

	const goroutines = 16
	const perGoroutine = 200

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				size := 8 + (seed+i)%256
				p, err := a.Malloc(size)
				if err != nil {
					t.Error(err)
					return
				}

				b := bytesAt(p, size)
				for j := range b {
					b[j] = byte(seed)
				}
				for j := range b {
					if b[j] != byte(seed) {
						t.Errorf("corrupted payload at goroutine %d", seed)
						return
					}
				}

				a.Free(p)
			}
		}(g)
	}
	wg.Wait()

	st := a.Stats()
	require.Zero(t, st.Allocs)
	require.Zero(t, st.Mmaps)
	require.Zero(t, st.Bytes)
}

// TestConcurrentAllocationIDsUnique checks that the allocation-id
// counter, serialized through the mutex, never hands out a duplicate
// even under concurrent callers.
func TestConcurrentAllocationIDsUnique(t *testing.T) {
	var a Allocator
	const n = 500

	ids := make(chan uint64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			p, err := a.Malloc(16)
			if err != nil {
				t.Error(err)
				return
			}
			ids <- headerOf(p).allocID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool, n)
	for id := range ids {
		require.False(t, seen[id], "duplicate allocation id %d", id)
		seen[id] = true
	}
}
