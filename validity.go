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

// Validity is the read-side validity slice of an optional column: either a
// bit-packed Bitmap, or an all-valid sentinel of known length for columns
// that have no validity buffer at all. The sentinel skips per-element bit
// testing; it is a performance optimization, not a correctness requirement.
type Validity struct {
	bitmap Bitmap
	length int
	all    bool
}

// NewValidity wraps a validity bitmap.
func NewValidity(bitmap Bitmap) Validity {
	return Validity{bitmap: bitmap, length: bitmap.Len()}
}

// AllValid returns a validity slice of length n whose every element is true,
// representing a column with no validity buffer.
func AllValid(n int) Validity {
	return Validity{length: n, all: true}
}

// IsAllValid reports whether this is the buffer-less all-valid sentinel.
func (v Validity) IsAllValid() bool { return v.all }

// NullCount returns the number of false (null) elements.
func (v Validity) NullCount() int {
	if v.all {
		return 0
	}
	return v.length - v.bitmap.CountSet()
}

func (v Validity) IsConsistent() bool { return true }

func (v Validity) Len() int { return v.length }

func (v Validity) IsEmpty() bool { return v.length == 0 }

func (v Validity) Value(i int) bool {
	if v.all {
		return true
	}
	return v.bitmap.Value(i)
}

func (v Validity) Get(i int) (bool, bool) {
	if i < 0 || i >= v.length {
		return false, false
	}
	return v.Value(i), true
}

func (v Validity) At(i int) bool { return sliceAt[Validity, bool](v, i) }

func (v Validity) First() (bool, bool) { return v.Get(0) }

func (v Validity) Last() (bool, bool) { return v.Get(v.length - 1) }

func (v Validity) Iterator() iter.Seq[bool] {
	if !v.all {
		return v.bitmap.Iterator()
	}
	return func(yield func(bool) bool) {
		for i := 0; i < v.length; i++ {
			if !yield(true) {
				return
			}
		}
	}
}

func (v Validity) SplitAt(mid int) (Validity, Validity) {
	if v.all {
		if mid < 0 || mid > v.length {
			panic(splitOutOfBounds)
		}
		return AllValid(mid), AllValid(v.length - mid)
	}
	head, tail := v.bitmap.SplitAt(mid)
	return NewValidity(head), NewValidity(tail)
}

var _ Slice[Validity, bool] = Validity{}
