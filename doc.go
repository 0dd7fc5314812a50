// Copyright 2024 The Allocator Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package allocator implements a general purpose heap allocator over
// anonymously mapped OS pages.
//
// It is a from-scratch reimplementation of the allocation engine a C
// LD_PRELOAD shim would use to replace malloc/free/calloc/realloc: an
// intrusive linked list of region/block headers threaded across every
// page mapping the process holds, three selectable placement policies
// (first-fit, best-fit, worst-fit), and a splitter that carves a
// reusable block down to the requested size. Dynamic-linker
// interposition, the host program, and structured logging are
// deliberately out of scope.
//
// The zero value of Allocator is ready to use. A process-wide default
// instance and package-level wrapper functions (Malloc, Free, Calloc,
// Realloc, MallocNamed, PrintMemory, WriteMemory) are provided in
// global.go for callers that want one shared allocator per process,
// mirroring the C original's process-wide semantics.
package allocator
