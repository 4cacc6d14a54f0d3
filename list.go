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
	"iter"

	"github.com/gocolumnar/columnar/internal/debug"
)

// ListSlice is a columnar alternative to a slice of slices: Items is the
// flat concatenation of every sublist's elements, and Lengths gives each
// sublist's element count. This is the write-time representation, where
// lengths are supplied directly by the caller.
type ListSlice[V Slice[V, E], E any] struct {
	// Items holds the concatenated elements from all sublists
	Items V

	// Lengths holds the length of each sublist within Items
	Lengths []int
}

func (s ListSlice[V, E]) IsConsistent() bool {
	return s.Items.IsConsistent() && s.Items.Len() == sumLengths(s.Lengths)
}

func (s ListSlice[V, E]) Len() int {
	debug.Assert(s.IsConsistent(), "inconsistent list slice")
	return len(s.Lengths)
}

func (s ListSlice[V, E]) IsEmpty() bool { return s.Len() == 0 }

func (s ListSlice[V, E]) Value(i int) V {
	debug.Assert(s.IsConsistent(), "inconsistent list slice")
	return subSlice(s.Items, sumLengths(s.Lengths[:i]), s.Lengths[i])
}

func (s ListSlice[V, E]) Get(i int) (V, bool) {
	return sliceGet[ListSlice[V, E], V](s, i)
}

func (s ListSlice[V, E]) At(i int) V {
	return sliceAt[ListSlice[V, E], V](s, i)
}

func (s ListSlice[V, E]) First() (V, bool) { return s.Get(0) }

func (s ListSlice[V, E]) Last() (V, bool) { return s.Get(len(s.Lengths) - 1) }

// Iterator splits sublists off a running remainder of Items, consuming the
// items buffer strictly in order: O(total items) overall, instead of the
// O(sublists * lookup) cost of repeated random access.
func (s ListSlice[V, E]) Iterator() iter.Seq[V] {
	debug.Assert(s.IsConsistent(), "inconsistent list slice")
	return func(yield func(V) bool) {
		remaining := s.Items
		for _, n := range s.Lengths {
			var current V
			current, remaining = remaining.SplitAt(n)
			if !yield(current) {
				return
			}
		}
	}
}

func (s ListSlice[V, E]) SplitAt(mid int) (ListSlice[V, E], ListSlice[V, E]) {
	debug.Assert(s.IsConsistent(), "inconsistent list slice")
	if mid < 0 || mid > len(s.Lengths) {
		panic(splitOutOfBounds)
	}
	leftLengths, rightLengths := s.Lengths[:mid], s.Lengths[mid:]
	leftItems, rightItems := s.Items.SplitAt(sumLengths(leftLengths))
	return ListSlice[V, E]{Items: leftItems, Lengths: leftLengths},
		ListSlice[V, E]{Items: rightItems, Lengths: rightLengths}
}

// NullableListSlice is a columnar alternative to a slice of optional
// slices: a sublist whose length entry is null contributes no items and
// reads back as a null element.
type NullableListSlice[V Slice[V, E], E any] struct {
	// Items holds the concatenated elements from all valid sublists
	Items V

	// Lengths holds the length of each sublist, or null for null sublists
	Lengths []Nullable[int]
}

func (s NullableListSlice[V, E]) IsConsistent() bool {
	return s.Items.IsConsistent() && s.Items.Len() == sumNullableLengths(s.Lengths)
}

func (s NullableListSlice[V, E]) Len() int {
	debug.Assert(s.IsConsistent(), "inconsistent list slice")
	return len(s.Lengths)
}

func (s NullableListSlice[V, E]) IsEmpty() bool { return s.Len() == 0 }

func (s NullableListSlice[V, E]) Value(i int) Nullable[V] {
	debug.Assert(s.IsConsistent(), "inconsistent list slice")
	if !s.Lengths[i].Valid {
		return Null[V]()
	}
	return Some(subSlice(s.Items, sumNullableLengths(s.Lengths[:i]), s.Lengths[i].Value))
}

func (s NullableListSlice[V, E]) Get(i int) (Nullable[V], bool) {
	return sliceGet[NullableListSlice[V, E], Nullable[V]](s, i)
}

func (s NullableListSlice[V, E]) At(i int) Nullable[V] {
	return sliceAt[NullableListSlice[V, E], Nullable[V]](s, i)
}

func (s NullableListSlice[V, E]) First() (Nullable[V], bool) { return s.Get(0) }

func (s NullableListSlice[V, E]) Last() (Nullable[V], bool) { return s.Get(len(s.Lengths) - 1) }

func (s NullableListSlice[V, E]) Iterator() iter.Seq[Nullable[V]] {
	debug.Assert(s.IsConsistent(), "inconsistent list slice")
	return func(yield func(Nullable[V]) bool) {
		remaining := s.Items
		for _, n := range s.Lengths {
			var current V
			current, remaining = remaining.SplitAt(nullableLen(n))
			out := Null[V]()
			if n.Valid {
				out = Some(current)
			}
			if !yield(out) {
				return
			}
		}
	}
}

func (s NullableListSlice[V, E]) SplitAt(mid int) (NullableListSlice[V, E], NullableListSlice[V, E]) {
	debug.Assert(s.IsConsistent(), "inconsistent list slice")
	if mid < 0 || mid > len(s.Lengths) {
		panic(splitOutOfBounds)
	}
	leftLengths, rightLengths := s.Lengths[:mid], s.Lengths[mid:]
	leftItems, rightItems := s.Items.SplitAt(sumNullableLengths(leftLengths))
	return NullableListSlice[V, E]{Items: leftItems, Lengths: leftLengths},
		NullableListSlice[V, E]{Items: rightItems, Lengths: rightLengths}
}

// OffsetList is the read-time counterpart of ListSlice: sublist boundaries
// come from a monotonic offsets view over already-materialized storage, so
// no separate length array exists and nothing is copied.
type OffsetList[O Offset, V Slice[V, E], E any] struct {
	// Items holds the concatenated elements from all sublists
	Items V

	// Lists locates each sublist within Items
	Lists OffsetSublists[O]
}

func (s OffsetList[O, V, E]) IsConsistent() bool {
	return s.Items.IsConsistent() && s.Lists.IsConsistent() && s.Items.Len() == s.Lists.NumItems()
}

func (s OffsetList[O, V, E]) Len() int {
	debug.Assert(s.IsConsistent(), "inconsistent offset list")
	return s.Lists.Len()
}

func (s OffsetList[O, V, E]) IsEmpty() bool { return s.Len() == 0 }

func (s OffsetList[O, V, E]) Value(i int) V {
	debug.Assert(s.IsConsistent(), "inconsistent offset list")
	sub := s.Lists.Value(i)
	return subSlice(s.Items, sub.Offset, sub.Len)
}

func (s OffsetList[O, V, E]) Get(i int) (V, bool) {
	return sliceGet[OffsetList[O, V, E], V](s, i)
}

func (s OffsetList[O, V, E]) At(i int) V {
	return sliceAt[OffsetList[O, V, E], V](s, i)
}

func (s OffsetList[O, V, E]) First() (V, bool) { return s.Get(0) }

func (s OffsetList[O, V, E]) Last() (V, bool) { return s.Get(s.Lists.Len() - 1) }

func (s OffsetList[O, V, E]) Iterator() iter.Seq[V] {
	debug.Assert(s.IsConsistent(), "inconsistent offset list")
	return func(yield func(V) bool) {
		remaining := s.Items
		for sub := range s.Lists.Iterator() {
			var current V
			current, remaining = remaining.SplitAt(sub.Len)
			if !yield(current) {
				return
			}
		}
	}
}

func (s OffsetList[O, V, E]) SplitAt(mid int) (OffsetList[O, V, E], OffsetList[O, V, E]) {
	debug.Assert(s.IsConsistent(), "inconsistent offset list")
	leftLists, rightLists := s.Lists.SplitAt(mid)
	leftItems, rightItems := s.Items.SplitAt(leftLists.NumItems())
	return OffsetList[O, V, E]{Items: leftItems, Lists: leftLists},
		OffsetList[O, V, E]{Items: rightItems, Lists: rightLists}
}

// NullableOffsetList is the read-time view of an optional list column. Null
// sublists are zero-length in the offsets encoding and read back as null
// elements.
type NullableOffsetList[O Offset, V Slice[V, E], E any] struct {
	// Items holds the concatenated elements from all valid sublists
	Items V

	// Lists locates each sublist within Items
	Lists OffsetSublists[O]

	// IsValid tells, for each sublist, whether it is valid
	IsValid Validity
}

func (s NullableOffsetList[O, V, E]) IsConsistent() bool {
	return s.Items.IsConsistent() &&
		s.Lists.IsConsistent() &&
		s.Items.Len() == s.Lists.NumItems() &&
		s.IsValid.Len() == s.Lists.Len()
}

func (s NullableOffsetList[O, V, E]) Len() int {
	debug.Assert(s.IsConsistent(), "inconsistent offset list")
	return s.Lists.Len()
}

func (s NullableOffsetList[O, V, E]) IsEmpty() bool { return s.Len() == 0 }

func (s NullableOffsetList[O, V, E]) Value(i int) Nullable[V] {
	debug.Assert(s.IsConsistent(), "inconsistent offset list")
	if !s.IsValid.Value(i) {
		return Null[V]()
	}
	sub := s.Lists.Value(i)
	return Some(subSlice(s.Items, sub.Offset, sub.Len))
}

func (s NullableOffsetList[O, V, E]) Get(i int) (Nullable[V], bool) {
	return sliceGet[NullableOffsetList[O, V, E], Nullable[V]](s, i)
}

func (s NullableOffsetList[O, V, E]) At(i int) Nullable[V] {
	return sliceAt[NullableOffsetList[O, V, E], Nullable[V]](s, i)
}

func (s NullableOffsetList[O, V, E]) First() (Nullable[V], bool) { return s.Get(0) }

func (s NullableOffsetList[O, V, E]) Last() (Nullable[V], bool) { return s.Get(s.Lists.Len() - 1) }

func (s NullableOffsetList[O, V, E]) Iterator() iter.Seq[Nullable[V]] {
	debug.Assert(s.IsConsistent(), "inconsistent offset list")
	return func(yield func(Nullable[V]) bool) {
		next, stop := iter.Pull(s.IsValid.Iterator())
		defer stop()
		remaining := s.Items
		for sub := range s.Lists.Iterator() {
			valid, ok := next()
			if !ok {
				return
			}
			var current V
			current, remaining = remaining.SplitAt(sub.Len)
			out := Null[V]()
			if valid {
				out = Some(current)
			}
			if !yield(out) {
				return
			}
		}
	}
}

func (s NullableOffsetList[O, V, E]) SplitAt(mid int) (NullableOffsetList[O, V, E], NullableOffsetList[O, V, E]) {
	debug.Assert(s.IsConsistent(), "inconsistent offset list")
	leftLists, rightLists := s.Lists.SplitAt(mid)
	leftItems, rightItems := s.Items.SplitAt(leftLists.NumItems())
	leftValid, rightValid := s.IsValid.SplitAt(mid)
	return NullableOffsetList[O, V, E]{Items: leftItems, Lists: leftLists, IsValid: leftValid},
		NullableOffsetList[O, V, E]{Items: rightItems, Lists: rightLists, IsValid: rightValid}
}

func sumLengths(lengths []int) int {
	total := 0
	for _, n := range lengths {
		total += n
	}
	return total
}

func sumNullableLengths(lengths []Nullable[int]) int {
	total := 0
	for _, n := range lengths {
		total += nullableLen(n)
	}
	return total
}

// nullableLen interprets a possibly-null length, treating null sublists as
// length 0 for layout purposes.
func nullableLen(n Nullable[int]) int {
	if !n.Valid {
		return 0
	}
	return n.Value
}

// subSlice carves [offset, offset+length) out of items with two splits.
func subSlice[V Slice[V, E], E any](items V, offset, length int) V {
	_, rest := items.SplitAt(offset)
	current, _ := rest.SplitAt(length)
	return current
}

var (
	_ Slice[ListSlice[Flat[int], int], Flat[int]]                           = ListSlice[Flat[int], int]{}
	_ Slice[NullableListSlice[Flat[int], int], Nullable[Flat[int]]]         = NullableListSlice[Flat[int], int]{}
	_ Slice[OffsetList[int32, Flat[int], int], Flat[int]]                   = OffsetList[int32, Flat[int], int]{}
	_ Slice[NullableOffsetList[int32, Flat[int], int], Nullable[Flat[int]]] = NullableOffsetList[int32, Flat[int], int]{}
)
