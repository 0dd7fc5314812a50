// Copyright 2024 The Allocator Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package allocator

import (
	"os"
	"unsafe"

	mmap "github.com/edsrzf/mmap-go"
)

// osPageSize is resolved once at process start from the OS itself.
var osPageSize = os.Getpagesize()

// pageAlignedSize returns the smallest multiple of the OS page size
// that is >= n.
func pageAlignedSize(n uintptr) uintptr {
	ps := uintptr(osPageSize)
	return roundup(n, ps)
}

// newRegion obtains a fresh anonymous, private-to-the-process,
// read/write page mapping of at least realSize bytes and initializes
// its leading block header to span the whole mapping. The mapping is
// tracked in a.regions so it can be unmapped on reclamation.
//
// The mapping itself is obtained through mmap-go rather than hand
// rolled per-GOOS syscalls: it provides the same MapRegion/Unmap
// contract an anonymous, RDWR, whole-region-unmap mapping needs.
func (a *Allocator) newRegion(realSize uintptr) (*blockHeader, error) {
	regionSize := pageAlignedSize(realSize)

	m, err := mmap.MapRegion(nil, int(regionSize), mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		a.logf("mmap: %v", err)
		return nil, os.NewSyscallError("mmap", err)
	}

	b := (*blockHeader)(unsafe.Pointer(&m[0]))
	b.allocID = a.nextAllocID()
	b.setName(defaultName)
	b.size = regionSize
	b.usage = realSize
	b.regionStart = b
	b.regionSize = regionSize
	b.next = nil

	if a.regions == nil {
		a.regions = map[*blockHeader]mmap.MMap{}
	}
	a.regions[b] = m
	a.mmaps++
	a.bytes += int(regionSize)

	return b, nil
}

// unmapRegion releases the OS mapping backing a region's leading
// block. A failure is surfaced via logf but does not touch the chain;
// the caller has already spliced it out.
func (a *Allocator) unmapRegion(leader *blockHeader) {
	m, ok := a.regions[leader]
	if !ok {
		return
	}

	delete(a.regions, leader)
	a.mmaps--
	a.bytes -= int(leader.regionSize)
	if err := m.Unmap(); err != nil {
		a.logf("munmap: %v", err)
	}
}
