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

package builder

import (
	"sync/atomic"

	"github.com/gocolumnar/columnar"
	"github.com/gocolumnar/columnar/bitutil"
	"github.com/gocolumnar/columnar/internal/debug"
	"github.com/gocolumnar/columnar/memory"
)

// A ListBuilder accumulates variable-length sublists of E. Elements go to a
// caller-supplied value builder; the list builder records one start offset
// per sublist and the per-sublist validity, producing the offsets encoding
// read back by OffsetSublists.
type ListBuilder[O columnar.Offset, E any] struct {
	builder

	values  ValueAppender[E]
	offsets *numericBufferBuilder[O]
}

// NewListBuilder returns a builder whose sublist elements are accumulated
// by values, using the provided memory allocator. The list builder takes
// over the caller's reference to values and releases it with itself.
func NewListBuilder[O columnar.Offset, E any](mem memory.Allocator, values ValueAppender[E]) *ListBuilder[O, E] {
	return &ListBuilder[O, E]{
		builder: builder{refCount: 1, mem: mem},
		values:  values,
		offsets: newNumericBufferBuilder[O](mem),
	}
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
func (b *ListBuilder[O, E]) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		if b.nullBitmap != nil {
			b.nullBitmap.Release()
			b.nullBitmap = nil
		}
		b.values.Release()
		b.offsets.Release()
	}
}

// ValueBuilder returns the builder accumulating the sublists' elements.
func (b *ListBuilder[O, E]) ValueBuilder() ValueAppender[E] { return b.values }

func (b *ListBuilder[O, E]) appendNextOffset() {
	b.offsets.AppendValue(O(b.values.Len()))
}

// Append adds one sublist holding the given items.
func (b *ListBuilder[O, E]) Append(items []E) {
	b.Reserve(1)
	b.appendNextOffset()
	b.values.AppendValues(items, nil)
	b.UnsafeAppendBoolToBitmap(true)
}

// AppendNull adds a null sublist, which holds no items.
func (b *ListBuilder[O, E]) AppendNull() {
	b.Reserve(1)
	b.appendNextOffset()
	b.UnsafeAppendBoolToBitmap(false)
}

// AppendNulls adds n null sublists to the slice being built.
func (b *ListBuilder[O, E]) AppendNulls(n int) {
	for i := 0; i < n; i++ {
		b.AppendNull()
	}
}

func (b *ListBuilder[O, E]) init(capacity int) {
	b.builder.init(capacity)
	b.offsets.resize(capacity * sizeOf[O]())
}

// Reserve ensures there is enough space for appending n sublists
// by checking the capacity and calling Resize if necessary.
func (b *ListBuilder[O, E]) Reserve(n int) {
	b.builder.reserve(n, b.Resize)
}

// Resize adjusts the space allocated by b to n sublists. If n is greater
// than b.Cap(), additional memory will be allocated. If n is smaller, the
// allocated memory may be reduced.
func (b *ListBuilder[O, E]) Resize(n int) {
	if n < minBuilderCapacity {
		n = minBuilderCapacity
	}

	if b.capacity == 0 {
		b.init(n)
	} else {
		b.builder.resize(n, b.init)
		b.offsets.resize(n * sizeOf[O]())
	}
}

// OffsetsView returns the accumulated sublist boundaries as an offsets
// view. The view aliases the builder's buffer and is only valid until the
// next modifying operation.
func (b *ListBuilder[O, E]) OffsetsView() columnar.OffsetSublists[O] {
	return columnar.NewOffsetSublists(b.offsets.Values(), b.values.Len())
}

// ValiditySlice returns the per-sublist validity. When no null sublist has
// been appended it returns the buffer-less all-valid form.
func (b *ListBuilder[O, E]) ValiditySlice() columnar.Validity {
	if b.nulls == 0 {
		return columnar.AllValid(b.length)
	}
	n := int(bitutil.BytesForBits(int64(b.length)))
	return columnar.NewValidity(columnar.NewBitmap(b.nullBitmap.Bytes()[:n], b.length))
}

var _ Builder = (*ListBuilder[int32, int64])(nil)

// AppendOptionSlice appends every element of s, preserving validity, to a
// value builder. The consistency of s is validated first: on failure
// ErrOptionLengths is returned and the builder is left untouched.
func AppendOptionSlice[V columnar.Slice[V, E], B columnar.Slice[B, bool], E any](b ValueAppender[E], s columnar.OptionSlice[V, B, E]) error {
	if !s.IsConsistent() {
		return ErrOptionLengths
	}
	b.AppendValues(columnar.Collect[V, E](s.Values), columnar.Collect[B, bool](s.IsValid))
	return nil
}

// AppendListSlice appends every sublist of s to a list builder. The
// consistency of s is validated first: on failure ErrSublistLengths is
// returned and the builder is left untouched.
func AppendListSlice[O columnar.Offset, V columnar.Slice[V, E], E any](b *ListBuilder[O, E], s columnar.ListSlice[V, E]) error {
	if !s.IsConsistent() {
		return ErrSublistLengths
	}
	b.Reserve(s.Len())
	for sub := range s.Iterator() {
		b.Append(columnar.Collect[V, E](sub))
	}
	return nil
}

// AppendNullableListSlice appends every sublist of s, preserving sublist
// validity, to a list builder. The consistency of s is validated first: on
// failure ErrSublistLengths is returned and the builder is left untouched.
func AppendNullableListSlice[O columnar.Offset, V columnar.Slice[V, E], E any](b *ListBuilder[O, E], s columnar.NullableListSlice[V, E]) error {
	if !s.IsConsistent() {
		return ErrSublistLengths
	}
	b.Reserve(s.Len())
	for sub := range s.Iterator() {
		if !sub.Valid {
			b.AppendNull()
			continue
		}
		b.Append(columnar.Collect[V, E](sub.Value))
	}
	return nil
}
