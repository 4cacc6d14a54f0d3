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

import "iter"

// Flat adapts a plain Go slice to the Slice contract. It is the base case
// of the columnar view hierarchy: trivially consistent, with direct index
// arithmetic for every operation.
type Flat[E any] []E

// Bools is the unpacked boolean slice used on the write side of optional
// values, where ergonomics beat bit-packing.
type Bools = Flat[bool]

func (f Flat[E]) IsConsistent() bool { return true }

func (f Flat[E]) Len() int { return len(f) }

func (f Flat[E]) IsEmpty() bool { return len(f) == 0 }

func (f Flat[E]) Value(i int) E { return f[i] }

func (f Flat[E]) Get(i int) (E, bool) {
	if i < 0 || i >= len(f) {
		var zero E
		return zero, false
	}
	return f[i], true
}

func (f Flat[E]) At(i int) E { return sliceAt[Flat[E], E](f, i) }

func (f Flat[E]) First() (E, bool) { return f.Get(0) }

func (f Flat[E]) Last() (E, bool) { return f.Get(len(f) - 1) }

func (f Flat[E]) Iterator() iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, v := range f {
			if !yield(v) {
				return
			}
		}
	}
}

func (f Flat[E]) SplitAt(mid int) (Flat[E], Flat[E]) {
	if mid < 0 || mid > len(f) {
		panic(splitOutOfBounds)
	}
	return f[:mid], f[mid:]
}

var _ Slice[Flat[int], int] = Flat[int](nil)
