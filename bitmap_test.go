// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package columnar_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocolumnar/columnar"
	"github.com/gocolumnar/columnar/internal/testing/tools"
)

func TestBitmapRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 3, 7, 8, 9, 15, 16, 17, 64, 100} {
		t.Run(fmt.Sprintf("len=%d", n), func(t *testing.T) {
			want := make([]bool, n)
			for i := range want {
				want[i] = i%3 == 0
			}
			bm := columnar.NewBitmap(tools.PackBools(want), n)
			assert.Equal(t, n, bm.Len())
			assert.Equal(t, n == 0, bm.IsEmpty())
			assert.Equal(t, want, columnar.Collect[columnar.Bitmap, bool](bm))
		})
	}
}

func TestBitmapSingleByte(t *testing.T) {
	bm := columnar.NewBitmap([]byte{0b00000101}, 3)
	assert.Equal(t, []bool{true, false, true}, columnar.Collect[columnar.Bitmap, bool](bm))
}

func TestBitmapConstructionRejection(t *testing.T) {
	tests := []struct {
		name     string
		raw      []byte
		arrayLen int
		ok       bool
	}{
		{"empty", nil, 0, true},
		{"full byte", []byte{0xFF}, 8, true},
		{"partial byte", []byte{0x01}, 1, true},
		{"too few bytes", []byte{0x01}, 9, false},
		{"too many bytes", []byte{0x01, 0x02}, 8, false},
		{"negative slack", []byte{}, 1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.ok {
				assert.NotPanics(t, func() { columnar.NewBitmap(tc.raw, tc.arrayLen) })
				return
			}
			assert.PanicsWithValue(t, "bitmap and array length don't match", func() {
				columnar.NewBitmap(tc.raw, tc.arrayLen)
			})
		})
	}
}

func TestBitmapIndexing(t *testing.T) {
	want := tools.Bools(1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 1)
	bm := columnar.NewBitmap(tools.PackBools(want), len(want))

	for i, w := range want {
		assert.Equal(t, w, bm.Value(i))
		assert.Equal(t, w, bm.At(i))
		got, ok := bm.Get(i)
		require.True(t, ok)
		assert.Equal(t, w, got)
	}

	_, ok := bm.Get(-1)
	assert.False(t, ok)
	_, ok = bm.Get(len(want))
	assert.False(t, ok)
	assert.PanicsWithValue(t, "index is out of bounds", func() { bm.At(len(want)) })

	first, ok := bm.First()
	require.True(t, ok)
	assert.Equal(t, want[0], first)
	last, ok := bm.Last()
	require.True(t, ok)
	assert.Equal(t, want[len(want)-1], last)
}

func TestBitmapEmpty(t *testing.T) {
	bm := columnar.NewBitmap(nil, 0)
	assert.True(t, bm.IsEmpty())
	_, ok := bm.First()
	assert.False(t, ok)
	_, ok = bm.Last()
	assert.False(t, ok)
	assert.Empty(t, columnar.Collect[columnar.Bitmap, bool](bm))
}

func TestBitmapSplitAt(t *testing.T) {
	want := make([]bool, 21)
	for i := range want {
		want[i] = i%2 == 0 || i%5 == 0
	}
	bm := columnar.NewBitmap(tools.PackBools(want), len(want))

	for mid := 0; mid <= len(want); mid++ {
		head, tail := bm.SplitAt(mid)
		assert.Equal(t, mid, head.Len())
		assert.Equal(t, len(want)-mid, tail.Len())
		assert.Equal(t, want[:mid], columnar.Collect[columnar.Bitmap, bool](head))
		assert.Equal(t, want[mid:], columnar.Collect[columnar.Bitmap, bool](tail))
	}

	assert.PanicsWithValue(t, "split point is out of bounds", func() { bm.SplitAt(len(want) + 1) })
	assert.PanicsWithValue(t, "split point is out of bounds", func() { bm.SplitAt(-1) })
}

func TestBitmapSplitAtByteBoundary(t *testing.T) {
	bm := columnar.NewBitmap([]byte{0xFF, 0x01}, 9)
	require.Equal(t, 9, bm.Len())
	for v := range bm.Iterator() {
		assert.True(t, v)
	}

	head, tail := bm.SplitAt(8)
	assert.Equal(t, 8, head.Len())
	assert.Equal(t, 1, tail.Len())
	for v := range head.Iterator() {
		assert.True(t, v)
	}
	got, ok := tail.Get(0)
	require.True(t, ok)
	assert.True(t, got)
}

func TestBitmapSplitTwice(t *testing.T) {
	want := make([]bool, 40)
	for i := range want {
		want[i] = i%7 < 3
	}
	bm := columnar.NewBitmap(tools.PackBools(want), len(want))

	// unaligned splits stack: both halves of an unaligned split must
	// themselves split correctly at unaligned points
	_, tail := bm.SplitAt(3)
	mid, rest := tail.SplitAt(11)
	assert.Equal(t, want[3:14], columnar.Collect[columnar.Bitmap, bool](mid))
	assert.Equal(t, want[14:], columnar.Collect[columnar.Bitmap, bool](rest))

	sub, _ := rest.SplitAt(5)
	assert.Equal(t, want[14:19], columnar.Collect[columnar.Bitmap, bool](sub))
}

func TestBitmapCountSet(t *testing.T) {
	want := tools.Bools(1, 1, 0, 1, 0, 0, 0, 1, 1, 0, 1)
	bm := columnar.NewBitmap(tools.PackBools(want), len(want))
	assert.Equal(t, 6, bm.CountSet())

	head, tail := bm.SplitAt(3)
	assert.Equal(t, 2, head.CountSet())
	assert.Equal(t, 4, tail.CountSet())

	empty := columnar.NewBitmap(nil, 0)
	assert.Zero(t, empty.CountSet())
}

func TestBitmapEqualAcrossAlignments(t *testing.T) {
	want := tools.Bools(1, 0, 1, 1, 0, 1)

	aligned := columnar.NewBitmap(tools.PackBools(want), len(want))

	// the same sequence, but starting at bit 5 of a larger bitmap
	padded := append(tools.Bools(0, 1, 0, 0, 1), want...)
	_, shifted := columnar.NewBitmap(tools.PackBools(padded), len(padded)).SplitAt(5)

	assert.True(t, aligned.Equal(shifted))
	assert.Zero(t, aligned.Compare(shifted))
	assert.Equal(t, aligned.Hash(42), shifted.Hash(42))

	other := columnar.NewBitmap(tools.PackBools(tools.Bools(1, 0, 1, 1, 0, 0)), 6)
	assert.False(t, aligned.Equal(other))
	assert.Equal(t, 1, aligned.Compare(other))
	assert.Equal(t, -1, other.Compare(aligned))
	assert.NotEqual(t, aligned.Hash(42), other.Hash(42))
}

func TestBitmapHashLengthSensitivity(t *testing.T) {
	a := columnar.NewBitmap([]byte{0x00}, 3)
	b := columnar.NewBitmap([]byte{0x00}, 4)
	assert.NotEqual(t, a.Hash(0), b.Hash(0))
}

func TestBitmapStringer(t *testing.T) {
	bm := columnar.NewBitmap([]byte{0b00000101}, 3)
	assert.Equal(t, "[true false true]", bm.String())
	assert.Equal(t, "[]", columnar.NewBitmap(nil, 0).String())
}

func TestBitmapMarshalJSON(t *testing.T) {
	bm := columnar.NewBitmap([]byte{0b00000101}, 3)
	got, err := bm.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[true,false,true]`, string(got))
}
