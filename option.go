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

// OptionSlice is a columnar slice of optional values: it pairs a slice of
// values with a boolean-valued slice telling whether each value is valid.
//
// It is logically equivalent to []Nullable[E], but keeps the two underlying
// buffers separate. Validity can be tracked with an unpacked Bools slice
// (ergonomic, used when constructing data to append) or with a bit-packed
// Bitmap or Validity (zero-copy, used when reading back materialized
// storage). The two representations are interchangeable at the type level
// but never silently converted.
//
// No validation is performed at construction; consumers are expected to
// check IsConsistent before trusting hand-assembled instances.
type OptionSlice[V Slice[V, E], B Slice[B, bool], E any] struct {
	// Values that may or may not be valid
	Values V

	// IsValid tells, for each element of Values, whether it is valid
	IsValid B
}

func (s OptionSlice[V, B, E]) IsConsistent() bool {
	return s.Values.IsConsistent() &&
		s.IsValid.IsConsistent() &&
		s.Values.Len() == s.IsValid.Len()
}

func (s OptionSlice[V, B, E]) Len() int {
	debug.Assert(s.IsConsistent(), "inconsistent option slice")
	return s.IsValid.Len()
}

func (s OptionSlice[V, B, E]) IsEmpty() bool { return s.Len() == 0 }

func (s OptionSlice[V, B, E]) Value(i int) Nullable[E] {
	debug.Assert(s.IsConsistent(), "inconsistent option slice")
	if !s.IsValid.Value(i) {
		return Null[E]()
	}
	return Some(s.Values.Value(i))
}

func (s OptionSlice[V, B, E]) Get(i int) (Nullable[E], bool) {
	return sliceGet[OptionSlice[V, B, E], Nullable[E]](s, i)
}

func (s OptionSlice[V, B, E]) At(i int) Nullable[E] {
	return sliceAt[OptionSlice[V, B, E], Nullable[E]](s, i)
}

func (s OptionSlice[V, B, E]) First() (Nullable[E], bool) { return s.Get(0) }

func (s OptionSlice[V, B, E]) Last() (Nullable[E], bool) { return s.Get(s.Len() - 1) }

func (s OptionSlice[V, B, E]) Iterator() iter.Seq[Nullable[E]] {
	debug.Assert(s.IsConsistent(), "inconsistent option slice")
	return func(yield func(Nullable[E]) bool) {
		next, stop := iter.Pull(s.Values.Iterator())
		defer stop()
		for valid := range s.IsValid.Iterator() {
			v, ok := next()
			if !ok {
				return
			}
			out := Null[E]()
			if valid {
				out = Some(v)
			}
			if !yield(out) {
				return
			}
		}
	}
}

func (s OptionSlice[V, B, E]) SplitAt(mid int) (OptionSlice[V, B, E], OptionSlice[V, B, E]) {
	debug.Assert(s.IsConsistent(), "inconsistent option slice")
	leftValues, rightValues := s.Values.SplitAt(mid)
	leftValid, rightValid := s.IsValid.SplitAt(mid)
	return OptionSlice[V, B, E]{Values: leftValues, IsValid: leftValid},
		OptionSlice[V, B, E]{Values: rightValues, IsValid: rightValid}
}

var _ Slice[OptionSlice[Flat[int], Bools, int], Nullable[int]] = OptionSlice[Flat[int], Bools, int]{}
