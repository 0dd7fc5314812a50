// Copyright 2024 The Allocator Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundup(t *testing.T) {
	require.Equal(t, uintptr(8), roundup(1, 8))
	require.Equal(t, uintptr(8), roundup(8, 8))
	require.Equal(t, uintptr(16), roundup(9, 8))
	require.Equal(t, uintptr(4096), roundup(1, 4096))
}

// TestRoundSizeLiteralBehavior pins down roundSize's n + n%wordSize
// behavior, which is not a true round-up-to-multiple for sizes not
// already aligned.
func TestRoundSizeLiteralBehavior(t *testing.T) {
	require.Equal(t, uintptr(8), roundSize(8))  // already aligned: unaffected.
	require.Equal(t, uintptr(10), roundSize(5)) // 5 + 5%8 == 10, not 8.
	require.Equal(t, uintptr(0), roundSize(0))
}

func TestSetNameTruncatesAndTerminates(t *testing.T) {
	var b blockHeader
	long := ""
	for i := 0; i < maxNameLen+10; i++ {
		long += "x"
	}
	b.setName(long)
	require.Len(t, b.nameString(), maxNameLen-1)
}

func TestEffectivePayload(t *testing.T) {
	var b blockHeader
	b.usage = 0
	require.Zero(t, b.effectivePayload())

	b.usage = headerSize + 40
	require.Equal(t, uintptr(40), b.effectivePayload())
}

func TestFreeCapacity(t *testing.T) {
	b := blockHeader{size: 100, usage: 40}
	require.Equal(t, uintptr(60), b.free())
}
