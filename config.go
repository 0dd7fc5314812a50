// Copyright 2024 The Allocator Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package allocator

import (
	"os"
	"strconv"
)

const (
	envAlgorithm = "ALLOCATOR_ALGORITHM"
	envScribble  = "ALLOCATOR_SCRIBBLE"

	// scribbleByte is the fill pattern written into freshly returned,
	// non-zeroed payloads when scribbling is enabled.
	scribbleByte = 0xAA
)

// currentPolicy reads the placement policy from the environment on
// every call. Any value other than the three accepted names (including
// an absent variable) falls back to first-fit.
func currentPolicy() Policy {
	switch Policy(os.Getenv(envAlgorithm)) {
	case BestFit:
		return BestFit
	case WorstFit:
		return WorstFit
	default:
		return FirstFit
	}
}

// scribbleEnabled reports whether ALLOCATOR_SCRIBBLE is set to a
// nonzero integer. A missing or non-numeric value is treated as
// disabled, matching the atoi-on-unset-is-0 convention.
func scribbleEnabled() bool {
	v, ok := os.LookupEnv(envScribble)
	if !ok {
		return false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return false
	}
	return n != 0
}

// scribble fills every byte of p with the debug pattern.
func scribble(p []byte) {
	for i := range p {
		p[i] = scribbleByte
	}
}
