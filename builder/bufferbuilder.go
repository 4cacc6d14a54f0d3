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
	"unsafe"

	"github.com/gocolumnar/columnar/bitutil"
	"github.com/gocolumnar/columnar/internal/debug"
	"github.com/gocolumnar/columnar/memory"
)

// A bufferBuilder provides common functionality for populating memory with
// a stream of bytes, with resize on demand.
type bufferBuilder struct {
	refCount int64
	mem      memory.Allocator
	buffer   *memory.Buffer
	length   int
	capacity int

	bytes []byte
}

// Retain increases the reference count by 1.
// Retain may be called simultaneously from multiple goroutines.
func (b *bufferBuilder) Retain() {
	atomic.AddInt64(&b.refCount, 1)
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
// Release may be called simultaneously from multiple goroutines.
func (b *bufferBuilder) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		if b.buffer != nil {
			b.buffer.Release()
			b.buffer, b.bytes = nil, nil
		}
	}
}

// Len returns the length of the memory buffer in bytes.
func (b *bufferBuilder) Len() int { return b.length }

// Cap returns the total number of bytes that can be stored without
// allocating additional memory.
func (b *bufferBuilder) Cap() int { return b.capacity }

// Bytes returns a slice of length b.Len(), only valid until the next
// modifying operation.
func (b *bufferBuilder) Bytes() []byte { return b.bytes[:b.length] }

func (b *bufferBuilder) resize(elements int) {
	if b.buffer == nil {
		b.buffer = memory.NewResizableBuffer(b.mem)
	}

	b.buffer.ResizeNoShrink(elements)
	oldCapacity := b.capacity
	b.capacity = b.buffer.Cap()
	b.bytes = b.buffer.Buf()

	if b.capacity > oldCapacity {
		memory.Set(b.bytes[oldCapacity:], 0)
	}
}

func (b *bufferBuilder) reserve(size int) {
	if b.buffer == nil {
		b.buffer = memory.NewResizableBuffer(b.mem)
	}
	if size > b.capacity {
		newCapacity := bitutil.NextPowerOf2(size)
		b.resize(newCapacity)
	}
}

// Append appends the contents of v to the buffer, resizing it if necessary.
func (b *bufferBuilder) Append(v []byte) {
	if b.capacity < b.length+len(v) {
		newCapacity := bitutil.NextPowerOf2(b.length + len(v))
		b.resize(newCapacity)
	}
	b.unsafeAppend(v)
}

// Reset returns the buffer builder to its initial state.
func (b *bufferBuilder) Reset() {
	if b.buffer != nil {
		b.buffer.Release()
	}
	b.buffer, b.bytes = nil, nil
	b.capacity, b.length = 0, 0
}

// Finish resets the buffer builder and returns its internal memory buffer,
// which must be Release'd by the caller.
func (b *bufferBuilder) Finish() (buffer *memory.Buffer) {
	if b.length > 0 {
		b.buffer.ResizeNoShrink(b.length)
	}
	buffer = b.buffer
	b.buffer = nil
	b.Reset()
	if buffer == nil {
		buffer = memory.NewBufferBytes(nil)
	}
	return
}

func (b *bufferBuilder) unsafeAppend(data []byte) {
	copy(b.bytes[b.length:], data)
	b.length += len(data)
}

// numericBufferBuilder appends fixed-width values of type T to an untyped
// byte buffer builder, reinterpreting the bytes on read.
type numericBufferBuilder[T any] struct {
	bufferBuilder
}

func newNumericBufferBuilder[T any](mem memory.Allocator) *numericBufferBuilder[T] {
	return &numericBufferBuilder[T]{bufferBuilder: bufferBuilder{refCount: 1, mem: mem}}
}

func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Len returns the number of values appended so far.
func (b *numericBufferBuilder[T]) Len() int { return b.length / sizeOf[T]() }

// AppendValue appends a single value to the buffer.
func (b *numericBufferBuilder[T]) AppendValue(v T) {
	sz := sizeOf[T]()
	b.reserve(b.length + sz)
	b.unsafeAppend(unsafe.Slice((*byte)(unsafe.Pointer(&v)), sz))
}

// AppendValues appends the contents of v to the buffer.
func (b *numericBufferBuilder[T]) AppendValues(v []T) {
	if len(v) == 0 {
		return
	}
	b.Append(unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*sizeOf[T]()))
}

// Value returns the i-th appended value.
func (b *numericBufferBuilder[T]) Value(i int) T { return b.Values()[i] }

// Values returns the appended values, only valid until the next modifying
// operation.
func (b *numericBufferBuilder[T]) Values() []T {
	if b.length == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b.bytes[0])), b.Len())
}
