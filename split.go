// Copyright 2024 The Allocator Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package allocator

import "unsafe"

// split carves block b down to size total bytes, returning the block
// the client should receive.
//
// Case A: b is fully free (usage == 0). Claim it in place, leaving its
// size unchanged so the trailing bytes remain available for a future
// split.
//
// Case B: b is partially used. A new block is carved from b's trailing
// space, spliced between b and b.next, and b's size is shrunk down to
// its own usage so the two blocks no longer overlap.
func (a *Allocator) split(b *blockHeader, size uintptr) *blockHeader {
	if b.usage == 0 {
		b.allocID = a.nextAllocID()
		b.setName(defaultName)
		b.usage = size
		return b
	}

	n := (*blockHeader)(unsafe.Pointer(uintptr(unsafe.Pointer(b)) + b.usage))
	n.allocID = a.nextAllocID()
	n.setName(defaultName)
	n.size = b.size - b.usage
	n.usage = size
	n.regionStart = b.regionStart
	// n.regionSize is copied for header layout consistency but is not
	// load-bearing: regionSize is only meaningful on a region's leading
	// block.
	n.regionSize = b.regionSize

	n.next = b.next
	b.next = n
	b.size = b.usage

	return n
}
