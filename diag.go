// Copyright 2024 The Allocator Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package allocator

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"unsafe"
)

// PrintMemory dumps the current chain state to standard out.
func (a *Allocator) PrintMemory() {
	a.WriteMemory(os.Stdout)
}

// WriteMemory dumps the current chain state to w in a stable format:
//
//	-- Current Memory State --
//	[REGION] <start>-<end> <bytes>
//	[BLOCK]  <start>-<end> (<alloc_id>) '<name>' <size> <usage> <effective_payload>
func (a *Allocator) WriteMemory(w io.Writer) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "-- Current Memory State --")

	var currentRegion *blockHeader
	for b := a.head; b != nil; b = b.next {
		if b.regionStart != currentRegion {
			currentRegion = b.regionStart
			start := unsafe.Pointer(currentRegion)
			end := unsafe.Pointer(uintptr(start) + currentRegion.regionSize)
			fmt.Fprintf(bw, "[REGION] %p-%p %d\n", start, end, currentRegion.regionSize)
		}

		start := unsafe.Pointer(b)
		end := unsafe.Pointer(uintptr(start) + b.size)
		fmt.Fprintf(bw, "[BLOCK]  %p-%p (%d) '%s' %d %d %d\n",
			start, end, b.allocID, b.nameString(), b.size, b.usage, b.effectivePayload())
	}

	return bw.Flush()
}
