// Copyright 2024 The Allocator Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package allocator

import "unsafe"

const (
	// wordSize is the machine word multiple payload sizes are rounded to.
	wordSize = 8

	// maxNameLen is the fixed capacity of a block's name, bounded at
	// 32 bytes including the NUL terminator.
	maxNameLen = 32

	// defaultName is given to allocations that don't request a name.
	defaultName = "block"
)

// blockHeader is the single intrusive record describing both a region
// and a block: the leading block of a region additionally carries
// regionSize, every block carries the rest.
type blockHeader struct {
	allocID uint64
	name    [maxNameLen]byte

	size  uintptr // total bytes this block spans, including this header.
	usage uintptr // bytes in use, including this header; 0 means free.

	regionStart *blockHeader // self-reference on a region's leading block.
	regionSize  uintptr      // defined only on the region leader.

	next *blockHeader // successor in the global chain, nil if last.
}

var headerSize = roundup(unsafe.Sizeof(blockHeader{}), wordSize)

// roundup rounds n up to the next multiple of m, m a power of two.
func roundup(n, m uintptr) uintptr { return (n + m - 1) &^ (m - 1) }

// roundSize adjusts a requested payload size by adding n%wordSize
// rather than the complement, so already-aligned sizes are unaffected
// but an unaligned size does not always become a multiple of wordSize:
// e.g. 5 becomes 10, not 8.
// Callers that need a true power-of-two-aligned rounding should not
// rely on this helper outside the allocator entry point.
func roundSize(n uintptr) uintptr {
	if r := n % wordSize; r != 0 {
		n += r
	}
	return n
}

// headerOf returns the blockHeader immediately preceding a payload
// pointer previously returned by Malloc/Calloc/Realloc/MallocNamed.
func headerOf(payload unsafe.Pointer) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(uintptr(payload) - headerSize))
}

// payload returns the client-visible pointer for a block: the address
// one header width past the block's own address.
func (b *blockHeader) payload() unsafe.Pointer {
	return unsafe.Pointer(uintptr(unsafe.Pointer(b)) + headerSize)
}

// free returns the bytes still available for reuse in this block
// (size minus usage); the quantity every placement policy compares
// against the requested size.
func (b *blockHeader) free() uintptr { return b.size - b.usage }

// setName copies name into the block's fixed-capacity name field,
// bounding it to 31 bytes plus the implicit NUL terminator.
func (b *blockHeader) setName(name string) {
	if len(name) > maxNameLen-1 {
		name = name[:maxNameLen-1]
	}
	var buf [maxNameLen]byte
	copy(buf[:], name)
	b.name = buf
}

// nameString returns the block's name up to its NUL terminator.
func (b *blockHeader) nameString() string {
	n := 0
	for n < len(b.name) && b.name[n] != 0 {
		n++
	}
	return string(b.name[:n])
}

// effectivePayload reports the usable payload byte count for
// diagnostics: 0 for a free block, usage-headerSize otherwise.
func (b *blockHeader) effectivePayload() uintptr {
	if b.usage == 0 {
		return 0
	}
	return b.usage - headerSize
}
