// Copyright 2024 The Allocator Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package allocator

import (
	"io"
	"unsafe"
)

// defaultAllocator is the process-wide allocator the package-level
// functions below operate on, mirroring a malloc/free/calloc/realloc
// family replacement shared by an entire process. Most callers
// embedding this package as a library should prefer their own
// *Allocator instance; the package-level functions exist for callers
// that want one shared allocator per process.
var defaultAllocator Allocator

// Malloc allocates size bytes from the process-wide allocator.
func Malloc(size int) (unsafe.Pointer, error) { return defaultAllocator.Malloc(size) }

// Free releases a pointer allocated from the process-wide allocator.
func Free(p unsafe.Pointer) { defaultAllocator.Free(p) }

// Calloc allocates count*elemSize zeroed bytes from the process-wide
// allocator.
func Calloc(count, elemSize int) (unsafe.Pointer, error) {
	return defaultAllocator.Calloc(count, elemSize)
}

// Realloc resizes a pointer allocated from the process-wide allocator.
func Realloc(p unsafe.Pointer, n int) (unsafe.Pointer, error) {
	return defaultAllocator.Realloc(p, n)
}

// MallocNamed allocates size bytes with a debug name from the
// process-wide allocator.
func MallocNamed(size int, name string) (unsafe.Pointer, error) {
	return defaultAllocator.MallocNamed(size, name)
}

// PrintMemory dumps the process-wide allocator's chain to stdout.
func PrintMemory() { defaultAllocator.PrintMemory() }

// WriteMemory dumps the process-wide allocator's chain to w.
func WriteMemory(w io.Writer) error { return defaultAllocator.WriteMemory(w) }

// Reset unmaps every region the process-wide allocator still owns and
// clears its chain and counters (see Allocator.Close), for clean
// teardown between test cases.
func Reset() error { return defaultAllocator.Close() }
