// Copyright 2024 The Allocator Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageAlignedSize(t *testing.T) {
	ps := uintptr(osPageSize)
	require.Equal(t, ps, pageAlignedSize(1))
	require.Equal(t, ps, pageAlignedSize(ps))
	require.Equal(t, 2*ps, pageAlignedSize(ps+1))
}

func TestNewRegionSpansWholeMapping(t *testing.T) {
	var a Allocator
	realSize := uintptr(100)
	b, err := a.newRegion(realSize)
	require.NoError(t, err)
	require.NotNil(t, b)

	require.Equal(t, pageAlignedSize(realSize), b.size)
	require.Equal(t, b.size, b.regionSize)
	require.Equal(t, realSize, b.usage)
	require.Same(t, b, b.regionStart)

	a.unmapRegion(b)
	require.Zero(t, len(a.regions))
}
