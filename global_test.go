// Copyright 2024 The Allocator Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package allocator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGlobalAllocatorRoundTrip(t *testing.T) {
	p, err := Malloc(64)
	require.NoError(t, err)
	require.NotNil(t, p)

	var buf bytes.Buffer
	require.NoError(t, WriteMemory(&buf))
	require.Contains(t, buf.String(), "[BLOCK]")

	Free(p)
	require.Nil(t, defaultAllocator.head)
}

func TestGlobalCallocAndRealloc(t *testing.T) {
	p, err := Calloc(4, 4)
	require.NoError(t, err)
	require.NotNil(t, p)

	np, err := Realloc(p, 4096*4)
	require.NoError(t, err)
	require.NotNil(t, np)

	Free(np)
}

func TestGlobalMallocNamed(t *testing.T) {
	p, err := MallocNamed(8, "global-widget")
	require.NoError(t, err)
	require.Equal(t, "global-widget", headerOf(p).nameString())
	Free(p)
}

func TestReset(t *testing.T) {
	_, err := Malloc(64)
	require.NoError(t, err)
	require.NotNil(t, defaultAllocator.head)

	require.NoError(t, Reset())
	require.Nil(t, defaultAllocator.head)
	require.Zero(t, defaultAllocator.Stats().Mmaps)
}
