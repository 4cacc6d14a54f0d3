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

	"golang.org/x/exp/constraints"
)

// Slice is a Go slice []E or a columnar generalization thereof.
//
// Composite slice types like OptionSlice are internally composed of multiple
// buffers. Before using such a composite slice through this interface, make
// sure that the inner buffers are consistent with each other (i.e. have
// compatible lengths) using IsConsistent. If they are not, every method
// other than IsConsistent returns unpredictable (but memory-safe) results.
//
// The interface is parameterized by the implementing type S itself so that
// SplitAt returns concrete slices rather than interface values: splitting
// never incurs dynamic dispatch or a copy of the underlying data.
type Slice[S, E any] interface {
	// IsConsistent reports whether the inner buffers are consistent with
	// each other. It only inspects the immediate structure of the slice.
	IsConsistent() bool

	// Len returns the number of slice elements.
	Len() int

	// IsEmpty reports whether the slice has no elements.
	IsEmpty() bool

	// Value returns the index-th element without bounds checking. Callers
	// must ensure that the slice is consistent and that i < Len().
	Value(i int) E

	// Get returns the index-th element, or false if i is out of bounds or
	// the slice is inconsistent.
	Get(i int) (E, bool)

	// At returns the index-th element, panicking if i is out of bounds.
	At(i int) E

	// First returns the first element, or false if the slice is empty.
	First() (E, bool)

	// Last returns the last element, or false if the slice is empty.
	Last() (E, bool)

	// Iterator returns a fresh, finite iterator over copies of the
	// elements. The sequence is restartable: ranging over it twice yields
	// the elements twice.
	Iterator() iter.Seq[E]

	// SplitAt splits the slice into two subslices covering [0,mid) and
	// [mid,Len()). It panics if mid > Len().
	SplitAt(mid int) (S, S)
}

const (
	indexOutOfBounds = "index is out of bounds"
	splitOutOfBounds = "split point is out of bounds"
)

// sliceGet derives the checked accessor from Value/Len/IsConsistent.
func sliceGet[S, E any](s Slice[S, E], i int) (E, bool) {
	if !s.IsConsistent() || i < 0 || i >= s.Len() {
		var zero E
		return zero, false
	}
	return s.Value(i), true
}

// sliceAt derives the panicking accessor from Get.
func sliceAt[S, E any](s Slice[S, E], i int) E {
	v, ok := s.Get(i)
	if !ok {
		panic(indexOutOfBounds)
	}
	return v
}

// Equal reports whether two slices hold the same sequence of elements,
// regardless of their underlying representations (e.g. a Bitmap and a
// Flat[bool] compare equal when their iterated booleans match).
func Equal[SA, SB any, E comparable](a Slice[SA, E], b Slice[SB, E]) bool {
	if a.Len() != b.Len() {
		return false
	}
	next, stop := iter.Pull(b.Iterator())
	defer stop()
	for va := range a.Iterator() {
		vb, ok := next()
		if !ok || va != vb {
			return false
		}
	}
	return true
}

// Compare orders two slices lexicographically over their iterated elements,
// returning -1, 0 or +1.
func Compare[SA, SB any, E constraints.Ordered](a Slice[SA, E], b Slice[SB, E]) int {
	next, stop := iter.Pull(b.Iterator())
	defer stop()
	for va := range a.Iterator() {
		vb, ok := next()
		if !ok {
			return +1
		}
		switch {
		case va < vb:
			return -1
		case va > vb:
			return +1
		}
	}
	if _, ok := next(); ok {
		return -1
	}
	return 0
}

// Collect gathers the iterated elements of a slice into a Go slice. Mostly
// useful for tests and debugging; hot paths should iterate instead.
func Collect[S, E any](s Slice[S, E]) []E {
	out := make([]E, 0, s.Len())
	for v := range s.Iterator() {
		out = append(out, v)
	}
	return out
}
