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

package columnar

import (
	"fmt"
	"iter"
	"math"
	"unsafe"

	"github.com/JohnCGriffin/overflow"

	"github.com/gocolumnar/columnar/internal/debug"
)

// Offset is the set of integer types usable as list offsets: 32-bit offsets
// limit the cumulative item count to 2^31, 64-bit offsets lift that limit.
type Offset interface {
	~int32 | ~int64
}

// Sublist locates one variable-length segment within a flat items buffer.
// Offset is relative to the first item of the current view, so it stays
// correct after the view has been split.
type Sublist struct {
	Offset int
	Len    int
}

// OffsetSublists decodes an Arrow-style monotonic offset buffer into a
// sequence of Sublist descriptors, without materializing a length array.
//
// The encoding stores one start offset per sublist (N offsets for N
// sublists) plus the total item count, from which the final sublist's
// length is inferred. Stored offsets are absolute positions in the buffer
// the view was originally constructed over; every accessor normalizes
// against the first currently-held offset, which is what keeps lookups
// correct across repeated splits.
//
// Structural integrity of the offsets (monotonicity, agreement with the
// item count) is only checked by IsConsistent and under debug assertions:
// callers are expected to have validated source data upstream, at
// deserialization boundaries.
type OffsetSublists[O Offset] struct {
	offsets    []O
	totalItems int
}

// NewOffsetSublists builds a sublist view from one start offset per sublist
// and the total number of items shared by all sublists.
func NewOffsetSublists[O Offset](offsets []O, totalItems int) OffsetSublists[O] {
	s := OffsetSublists[O]{offsets: offsets, totalItems: totalItems}
	debug.Assert(s.IsConsistent(), "offsets are inconsistent with the item count")
	return s
}

// Offsets returns the stored (absolute) start offsets.
func (s OffsetSublists[O]) Offsets() []O { return s.offsets }

// NumItems returns the total number of items covered by this view.
func (s OffsetSublists[O]) NumItems() int { return s.totalItems }

func (s OffsetSublists[O]) IsConsistent() bool {
	if len(s.offsets) == 0 {
		return s.totalItems == 0
	}
	for i := 1; i < len(s.offsets); i++ {
		if s.offsets[i] < s.offsets[i-1] {
			return false
		}
	}
	return int(s.offsets[len(s.offsets)-1]-s.offsets[0]) <= s.totalItems
}

func (s OffsetSublists[O]) Len() int { return len(s.offsets) }

func (s OffsetSublists[O]) IsEmpty() bool { return len(s.offsets) == 0 }

func (s OffsetSublists[O]) Value(i int) Sublist {
	debug.Assert(s.IsConsistent(), "offsets are inconsistent with the item count")
	offset := int(s.offsets[i] - s.offsets[0])
	length := s.totalItems - offset
	if i+1 < len(s.offsets) {
		length = int(s.offsets[i+1] - s.offsets[i])
	}
	return Sublist{Offset: offset, Len: length}
}

func (s OffsetSublists[O]) Get(i int) (Sublist, bool) {
	return sliceGet[OffsetSublists[O], Sublist](s, i)
}

func (s OffsetSublists[O]) At(i int) Sublist {
	return sliceAt[OffsetSublists[O], Sublist](s, i)
}

func (s OffsetSublists[O]) First() (Sublist, bool) { return s.Get(0) }

func (s OffsetSublists[O]) Last() (Sublist, bool) { return s.Get(len(s.offsets) - 1) }

// Iterator decodes sublists incrementally with a running offset, rather
// than re-normalizing from scratch at every index.
func (s OffsetSublists[O]) Iterator() iter.Seq[Sublist] {
	debug.Assert(s.IsConsistent(), "offsets are inconsistent with the item count")
	return func(yield func(Sublist) bool) {
		if len(s.offsets) == 0 {
			return
		}
		offset := 0
		for i := 1; i < len(s.offsets); i++ {
			length := int(s.offsets[i] - s.offsets[i-1])
			if !yield(Sublist{Offset: offset, Len: length}) {
				return
			}
			offset += length
		}
		yield(Sublist{Offset: offset, Len: s.totalItems - offset})
	}
}

// SplitAt splits the view into its first mid sublists and the rest.
//
// Because stored offsets are absolute, the left view's item count becomes
// the distance from the view's first offset to the first right-side offset
// (or the full item count when there is no right side), and the right
// view's item count shrinks by the same amount. The normalization in Value
// then composes across repeated splits with no further bookkeeping.
func (s OffsetSublists[O]) SplitAt(mid int) (OffsetSublists[O], OffsetSublists[O]) {
	if mid < 0 || mid > len(s.offsets) {
		panic(splitOutOfBounds)
	}
	debug.Assert(s.IsConsistent(), "offsets are inconsistent with the item count")

	leftTotal := 0
	switch {
	case mid == len(s.offsets):
		leftTotal = s.totalItems
	case mid > 0:
		leftTotal = int(s.offsets[mid] - s.offsets[0])
	}
	left := OffsetSublists[O]{offsets: s.offsets[:mid], totalItems: leftTotal}
	right := OffsetSublists[O]{offsets: s.offsets[mid:], totalItems: s.totalItems - leftTotal}
	return left, right
}

// OffsetsFromLengths converts an explicit length-per-sublist array to the
// offsets encoding, accumulating with overflow checks so that a corrupt or
// hostile length array cannot silently wrap the offset type.
func OffsetsFromLengths[O Offset](lengths []int) ([]O, int, error) {
	offsets := make([]O, len(lengths))
	total := 0
	for i, n := range lengths {
		if n < 0 {
			return nil, 0, fmt.Errorf("sublist length must be non-negative, got %d", n)
		}
		offsets[i] = O(total)
		next, ok := overflow.Add(total, n)
		if !ok || int64(next) > maxOffset[O]() {
			return nil, 0, fmt.Errorf("total item count overflows %d-bit offsets", unsafe.Sizeof(O(0))*8)
		}
		total = next
	}
	return offsets, total, nil
}

func maxOffset[O Offset]() int64 {
	if unsafe.Sizeof(O(0)) == 4 {
		return math.MaxInt32
	}
	return math.MaxInt64
}

var _ Slice[OffsetSublists[int32], Sublist] = OffsetSublists[int32]{}
