// Copyright 2024 The Allocator Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package allocator

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	mmap "github.com/edsrzf/mmap-go"
)

// trace gates the allocator's verbose internal diagnostics behind a
// simple fmt.Fprintf(os.Stderr, ...) idiom.
const trace = false

func (a *Allocator) logf(format string, args ...interface{}) {
	if trace {
		fmt.Fprintf(os.Stderr, "allocator: "+format+"\n", args...)
	}
}

// Allocator allocates and frees memory backed by anonymous OS page
// mappings. Its zero value is ready for use.
//
// All exported methods acquire mu for their entire duration and are
// therefore safe for concurrent use by multiple goroutines under a
// single global mutex.
type Allocator struct {
	mu sync.Mutex

	head   *blockHeader
	nextID uint64

	regions map[*blockHeader]mmap.MMap

	allocs int // outstanding allocation count.
	mmaps  int // outstanding region count.
	bytes  int // bytes currently mapped from the OS.
}

// Stats reports point-in-time bookkeeping counters.
type Stats struct {
	Allocs int
	Mmaps  int
	Bytes  int
}

func (a *Allocator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Stats{Allocs: a.allocs, Mmaps: a.mmaps, Bytes: a.bytes}
}

func (a *Allocator) nextAllocID() uint64 {
	id := a.nextID
	a.nextID++
	return id
}

// Malloc is the allocation entry point. It returns a non-owning
// payload pointer, or nil if the OS refused a mapping. Malloc panics
// for a negative size, and returns (nil, nil) for a zero size.
func (a *Allocator) Malloc(size int) (unsafe.Pointer, error) {
	if size < 0 {
		panic("allocator: negative size")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.malloc(uintptr(size))
}

// malloc performs the allocation under the caller's lock. A zero size
// returns (nil, nil) rather than a live header-only block, so that
// Malloc(0) and Realloc(nil, 0) (which both funnel here) agree.
func (a *Allocator) malloc(size uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, nil
	}

	rounded := roundSize(size)
	realSize := rounded + headerSize

	var b *blockHeader
	if reuse := selectReusable(a.head, realSize, currentPolicy()); reuse != nil {
		b = a.split(reuse, realSize)
		a.allocs++
	} else {
		region, err := a.newRegion(realSize)
		if err != nil {
			return nil, err
		}
		a.appendBlock(region)
		b = region
		a.allocs++
	}

	p := b.payload()
	if scribbleEnabled() {
		scribble(unsafe.Slice((*byte)(p), int(rounded)))
	}
	a.logf("malloc(%d) -> %p (id=%d)", size, p, b.allocID)
	return p, nil
}

// appendBlock links a freshly mapped region's leading block onto the
// tail of the global chain.
func (a *Allocator) appendBlock(b *blockHeader) {
	if a.head == nil {
		a.head = b
		return
	}
	tail := a.head
	for tail.next != nil {
		tail = tail.next
	}
	tail.next = b
}

// Free releases a payload pointer previously returned by Malloc,
// Calloc, Realloc or MallocNamed. Free(nil) is a no-op.
func (a *Allocator) Free(p unsafe.Pointer) {
	if p == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.free(p)
}

func (a *Allocator) free(p unsafe.Pointer) {
	b := headerOf(p)
	b.usage = 0
	a.allocs--
	a.logf("free(%p) (id=%d)", p, b.allocID)

	leader := b.regionStart
	for iter := leader; iter != nil && iter.regionStart == leader; iter = iter.next {
		if iter.usage != 0 {
			return
		}
	}

	a.reclaimRegion(leader)
}

// reclaimRegion splices an entirely-unused region's run of blocks out
// of the global chain and unmaps its backing memory.
func (a *Allocator) reclaimRegion(leader *blockHeader) {
	var after *blockHeader
	for iter := leader; iter != nil && iter.regionStart == leader; iter = iter.next {
		after = iter.next
	}

	if a.head == leader {
		a.head = after
	} else {
		pred := a.head
		for pred != nil && pred.next != leader {
			pred = pred.next
		}
		if pred != nil {
			pred.next = after
		}
	}

	a.unmapRegion(leader)
}

// Calloc allocates count*elemSize zeroed bytes. Either argument being
// zero returns (nil, nil).
func (a *Allocator) Calloc(count, elemSize int) (unsafe.Pointer, error) {
	if count == 0 || elemSize == 0 {
		return nil, nil
	}

	total := count * elemSize

	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.malloc(uintptr(total))
	if err != nil || p == nil {
		return nil, err
	}

	zero := unsafe.Slice((*byte)(p), total)
	for i := range zero {
		zero[i] = 0
	}
	return p, nil
}

// Realloc resizes the allocation at p to n bytes.
func (a *Allocator) Realloc(p unsafe.Pointer, n int) (unsafe.Pointer, error) {
	if n < 0 {
		panic("allocator: negative size")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if p == nil {
		return a.malloc(uintptr(n))
	}

	// Realloc to zero bytes is treated as a free, not a zero-size
	// allocation. Once the header is folded in, the post-rounding total
	// can never reach zero, so this check must happen on the raw
	// request.
	if n == 0 {
		a.free(p)
		return nil, nil
	}

	rounded := roundSize(uintptr(n))
	newTotal := rounded + headerSize

	old := headerOf(p)
	if old.size < newTotal {
		np, err := a.malloc(uintptr(n))
		if err != nil {
			return nil, err
		}

		oldPayload := old.usage - headerSize
		src := unsafe.Slice((*byte)(p), oldPayload)
		dst := unsafe.Slice((*byte)(np), oldPayload)
		copy(dst, src)

		a.free(p)
		return np, nil
	}

	old.usage = newTotal
	return p, nil
}

// MallocNamed allocates size bytes and attaches a human-readable name
// to the resulting block, bounded to 31 bytes plus terminator. Intended
// for debuggability via PrintMemory/WriteMemory.
func (a *Allocator) MallocNamed(size int, name string) (unsafe.Pointer, error) {
	if size < 0 {
		panic("allocator: negative size")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.malloc(uintptr(size))
	if err != nil || p == nil {
		return p, err
	}

	headerOf(p).setName(name)
	return p, nil
}

// UsableSize reports the payload capacity of the block backing p,
// which must have been returned from Malloc, Calloc, Realloc or
// MallocNamed.
func (a *Allocator) UsableSize(p unsafe.Pointer) int {
	if p == nil {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return int(headerOf(p).size - headerSize)
}

// Close unmaps every region this allocator still owns, empties the
// chain and zeroes the Stats counters. The allocation-id counter is not
// reset, so ids issued after Close keep increasing. Not necessary for a process exiting normally;
// provided for test teardown and long-running embedders.
func (a *Allocator) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var firstErr error
	for leader, m := range a.regions {
		if err := m.Unmap(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(a.regions, leader)
	}
	a.head = nil
	a.allocs = 0
	a.mmaps = 0
	a.bytes = 0
	return firstErr
}
