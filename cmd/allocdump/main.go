// Copyright 2024 The Allocator Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command allocdump drives a small synthetic allocation workload
// against the allocator package and prints the resulting memory state.
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"strconv"
	"unsafe"

	"github.com/cznic/allocator"
)

var (
	count     = flag.Int("n", 16, "number of allocations to perform")
	maxSize   = flag.Int("max", 512, "maximum payload size in bytes")
	seed      = flag.Int64("seed", 1, "PRNG seed")
	freeSome  = flag.Bool("free-some", true, "free every other allocation before dumping")
	outPath   = flag.String("o", "", "write the dump to this file instead of stdout")
	algorithm = flag.String("algorithm", "", "placement policy: first_fit, best_fit or worst_fit (sets ALLOCATOR_ALGORITHM)")
	scribble  = flag.Bool("scribble", false, "fill freshly allocated payloads with 0xAA (sets ALLOCATOR_SCRIBBLE)")
)

func main() {
	log.SetFlags(log.Flags() | log.Lshortfile)
	flag.Parse()

	if *algorithm != "" {
		if err := os.Setenv("ALLOCATOR_ALGORITHM", *algorithm); err != nil {
			log.Fatal(err)
		}
	}
	if *scribble {
		if err := os.Setenv("ALLOCATOR_SCRIBBLE", "1"); err != nil {
			log.Fatal(err)
		}
	}

	var a allocator.Allocator
	rng := rand.New(rand.NewSource(*seed))

	var live []unsafe.Pointer
	for i := 0; i < *count; i++ {
		size := rng.Intn(*maxSize) + 1
		p, err := a.MallocNamed(size, namedLike(i))
		if err != nil {
			log.Fatalf("malloc %d: %v", size, err)
		}
		live = append(live, p)
	}

	if *freeSome {
		for i := 0; i < len(live); i += 2 {
			a.Free(live[i])
		}
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}

	if err := a.WriteMemory(out); err != nil {
		log.Fatal(err)
	}

	st := a.Stats()
	log.Printf("allocs=%d mmaps=%d bytes=%d", st.Allocs, st.Mmaps, st.Bytes)
}

func namedLike(i int) string {
	return "alloc-" + strconv.Itoa(i)
}
