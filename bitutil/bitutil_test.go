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

package bitutil_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gocolumnar/columnar/bitutil"
	"github.com/gocolumnar/columnar/internal/testing/tools"
)

func TestIsSet(t *testing.T) {
	buf := []byte{0b00000101, 0b10000000}
	assert.True(t, bitutil.BitIsSet(buf, 0))
	assert.False(t, bitutil.BitIsSet(buf, 1))
	assert.True(t, bitutil.BitIsSet(buf, 2))
	assert.False(t, bitutil.BitIsNotSet(buf, 15))
	assert.True(t, bitutil.BitIsNotSet(buf, 8))
}

func TestSetClearBit(t *testing.T) {
	buf := make([]byte, 2)
	for i := 0; i < 16; i += 3 {
		bitutil.SetBit(buf, i)
	}
	assert.Equal(t, []byte{0b01001001, 0b10010010}, buf)

	bitutil.ClearBit(buf, 0)
	assert.Equal(t, []byte{0b01001000, 0b10010010}, buf)

	bitutil.SetBitTo(buf, 1, true)
	bitutil.SetBitTo(buf, 3, false)
	assert.Equal(t, []byte{0b01000010, 0b10010010}, buf)
}

func TestBytesForBits(t *testing.T) {
	assert.EqualValues(t, 0, bitutil.BytesForBits(0))
	assert.EqualValues(t, 1, bitutil.BytesForBits(1))
	assert.EqualValues(t, 1, bitutil.BytesForBits(8))
	assert.EqualValues(t, 2, bitutil.BytesForBits(9))
}

func TestNextPowerOf2(t *testing.T) {
	assert.Equal(t, 8, bitutil.NextPowerOf2(5))
	assert.Equal(t, 64, bitutil.NextPowerOf2(33))
}

func TestCountSetBits(t *testing.T) {
	want := tools.Bools(1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 1, 0, 0, 1, 0, 1, 1)
	buf := tools.PackBools(want)

	count := func(offset, n int) int {
		total := 0
		for _, v := range want[offset : offset+n] {
			if v {
				total++
			}
		}
		return total
	}

	for _, tc := range []struct{ offset, n int }{
		{0, len(want)}, {0, 8}, {0, 3}, {3, 5}, {3, 11}, {8, 9}, {5, 0}, {13, 4},
	} {
		t.Run(fmt.Sprintf("offset=%d n=%d", tc.offset, tc.n), func(t *testing.T) {
			assert.Equal(t, count(tc.offset, tc.n), bitutil.CountSetBits(buf, tc.offset, tc.n))
		})
	}
}

func TestCountSetBitsLarge(t *testing.T) {
	// exercise the word-at-a-time path and its unaligned head and tail
	n := 1024
	want := make([]bool, n)
	for i := range want {
		want[i] = i%3 != 0
	}
	buf := tools.PackBools(want)

	total := 0
	for _, v := range want {
		if v {
			total++
		}
	}
	assert.Equal(t, total, bitutil.CountSetBits(buf, 0, n))
	assert.Equal(t, total-1, bitutil.CountSetBits(buf, 2, n-2))
}

func TestBitmapReader(t *testing.T) {
	want := tools.Bools(1, 0, 1, 1, 0, 0, 1, 0, 1, 1)
	buf := tools.PackBools(want)

	for offset := 0; offset < 8; offset++ {
		rdr := bitutil.NewBitmapReader(buf, offset, len(want)-offset)
		for i := offset; i < len(want); i++ {
			assert.Equal(t, want[i], rdr.Set())
			rdr.Next()
		}
	}
}

func TestBitmapWriter(t *testing.T) {
	buf := make([]byte, 2)
	wr := bitutil.NewBitmapWriter(buf, 3, 10)
	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			wr.Set()
		} else {
			wr.Clear()
		}
		wr.Next()
	}
	wr.Finish()

	for i := 0; i < 10; i++ {
		assert.Equal(t, i%2 == 0, bitutil.BitIsSet(buf, i+3))
	}
	// bits outside the written window stay untouched
	for _, i := range []int{0, 1, 2, 13, 14, 15} {
		assert.True(t, bitutil.BitIsNotSet(buf, i))
	}
}

func TestBitmapWriterAppendBools(t *testing.T) {
	buf := make([]byte, 2)
	wr := bitutil.NewBitmapWriter(buf, 2, 12)
	n := wr.AppendBools(tools.Bools(1, 1, 0, 1, 0, 1, 1, 0, 0, 1))
	assert.Equal(t, 10, n)
	wr.Finish()

	want := tools.Bools(1, 1, 0, 1, 0, 1, 1, 0, 0, 1)
	for i, v := range want {
		assert.Equal(t, v, bitutil.BitIsSet(buf, i+2))
	}
}
