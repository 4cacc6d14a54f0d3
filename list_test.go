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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocolumnar/columnar"
)

type intLists = columnar.ListSlice[columnar.Flat[int], int]

func TestListSliceValues(t *testing.T) {
	s := intLists{
		Items:   columnar.Flat[int]{1, 2, 3, 4, 5},
		Lengths: []int{2, 0, 3},
	}
	require.True(t, s.IsConsistent())
	assert.Equal(t, 3, s.Len())

	want := [][]int{{1, 2}, {}, {3, 4, 5}}
	for i, w := range want {
		assert.Equal(t, w, append([]int{}, s.Value(i)...))
	}

	var got [][]int
	for sub := range s.Iterator() {
		got = append(got, append([]int{}, sub...))
	}
	assert.Equal(t, want, got)
}

func TestListSliceSumLaw(t *testing.T) {
	s := intLists{
		Items:   columnar.Flat[int]{1, 2, 3},
		Lengths: []int{2, 2},
	}
	assert.False(t, s.IsConsistent())
	_, ok := s.Get(0)
	assert.False(t, ok)

	// concatenating every sublist of a consistent list slice reproduces
	// the items buffer exactly
	s = intLists{
		Items:   columnar.Flat[int]{1, 2, 3, 4},
		Lengths: []int{1, 3, 0},
	}
	require.True(t, s.IsConsistent())
	var concat []int
	for sub := range s.Iterator() {
		concat = append(concat, sub...)
	}
	assert.Equal(t, []int(s.Items), concat)
}

func TestListSliceSplitAt(t *testing.T) {
	s := intLists{
		Items:   columnar.Flat[int]{1, 2, 3, 4, 5},
		Lengths: []int{2, 0, 3},
	}
	head, tail := s.SplitAt(1)
	assert.Equal(t, []int{1, 2}, []int(head.Items))
	assert.Equal(t, []int{2}, head.Lengths)
	assert.Equal(t, []int{3, 4, 5}, []int(tail.Items))
	assert.Equal(t, []int{0, 3}, tail.Lengths)
	assert.True(t, head.IsConsistent())
	assert.True(t, tail.IsConsistent())

	assert.PanicsWithValue(t, "split point is out of bounds", func() { s.SplitAt(4) })
}

func TestNullableListSliceValues(t *testing.T) {
	s := columnar.NullableListSlice[columnar.Flat[int], int]{
		Items: columnar.Flat[int]{1, 2, 3},
		Lengths: []columnar.Nullable[int]{
			columnar.Some(2), columnar.Null[int](), columnar.Some(1), columnar.Some(0),
		},
	}
	require.True(t, s.IsConsistent())
	assert.Equal(t, 4, s.Len())

	v0 := s.Value(0)
	require.True(t, v0.Valid)
	assert.Equal(t, []int{1, 2}, []int(v0.Value))

	assert.False(t, s.Value(1).Valid)

	v2 := s.Value(2)
	require.True(t, v2.Valid)
	assert.Equal(t, []int{3}, []int(v2.Value))

	v3 := s.Value(3)
	require.True(t, v3.Valid)
	assert.Empty(t, []int(v3.Value))

	var gotValid []bool
	var concat []int
	for sub := range s.Iterator() {
		gotValid = append(gotValid, sub.Valid)
		concat = append(concat, sub.Value...)
	}
	assert.Equal(t, []bool{true, false, true, true}, gotValid)
	assert.Equal(t, []int(s.Items), concat)
}

func TestNullableListSliceSplitAt(t *testing.T) {
	s := columnar.NullableListSlice[columnar.Flat[int], int]{
		Items: columnar.Flat[int]{1, 2, 3},
		Lengths: []columnar.Nullable[int]{
			columnar.Some(2), columnar.Null[int](), columnar.Some(1),
		},
	}
	head, tail := s.SplitAt(2)
	assert.True(t, head.IsConsistent())
	assert.True(t, tail.IsConsistent())
	assert.Equal(t, []int{1, 2}, []int(head.Items))
	assert.Equal(t, []int{3}, []int(tail.Items))
	assert.Equal(t, 2, head.Len())
	assert.Equal(t, 1, tail.Len())
}

func TestOffsetListValues(t *testing.T) {
	s := columnar.OffsetList[int32, columnar.Flat[int], int]{
		Items: columnar.Flat[int]{1, 2, 3, 4, 5},
		Lists: columnar.NewOffsetSublists([]int32{0, 2, 2}, 5),
	}
	require.True(t, s.IsConsistent())
	assert.Equal(t, 3, s.Len())

	want := [][]int{{1, 2}, {}, {3, 4, 5}}
	var got [][]int
	for sub := range s.Iterator() {
		got = append(got, append([]int{}, sub...))
	}
	assert.Equal(t, want, got)

	for i, w := range want {
		assert.Equal(t, w, append([]int{}, s.Value(i)...))
	}
}

func TestOffsetListSplitAt(t *testing.T) {
	s := columnar.OffsetList[int32, columnar.Flat[int], int]{
		Items: columnar.Flat[int]{1, 2, 3, 4, 5},
		Lists: columnar.NewOffsetSublists([]int32{0, 2, 2}, 5),
	}
	head, tail := s.SplitAt(1)
	require.True(t, head.IsConsistent())
	require.True(t, tail.IsConsistent())
	assert.Equal(t, []int{1, 2}, []int(head.Items))
	assert.Equal(t, []int{3, 4, 5}, []int(tail.Items))
	assert.Equal(t, 2, tail.Len())

	// repeated splits keep composing
	mid, rest := tail.SplitAt(1)
	assert.Empty(t, []int(mid.Items))
	assert.Equal(t, []int{3, 4, 5}, []int(rest.Items))
	assert.Equal(t, []int{3, 4, 5}, append([]int{}, rest.Value(0)...))
}

func TestOffsetListInconsistent(t *testing.T) {
	s := columnar.OffsetList[int32, columnar.Flat[int], int]{
		Items: columnar.Flat[int]{1, 2, 3},
		Lists: columnar.NewOffsetSublists([]int32{0, 2}, 4),
	}
	assert.False(t, s.IsConsistent())
	_, ok := s.Get(0)
	assert.False(t, ok)
}

func TestNullableOffsetListValues(t *testing.T) {
	s := columnar.NullableOffsetList[int32, columnar.Flat[int], int]{
		Items:   columnar.Flat[int]{1, 2, 3},
		Lists:   columnar.NewOffsetSublists([]int32{0, 2, 2}, 3),
		IsValid: columnar.NewValidity(columnar.NewBitmap([]byte{0b00000101}, 3)),
	}
	require.True(t, s.IsConsistent())

	v0 := s.Value(0)
	require.True(t, v0.Valid)
	assert.Equal(t, []int{1, 2}, []int(v0.Value))
	assert.False(t, s.Value(1).Valid)
	v2 := s.Value(2)
	require.True(t, v2.Valid)
	assert.Equal(t, []int{3}, []int(v2.Value))

	var gotValid []bool
	for sub := range s.Iterator() {
		gotValid = append(gotValid, sub.Valid)
	}
	assert.Equal(t, []bool{true, false, true}, gotValid)
}

func TestNullableOffsetListSplitAt(t *testing.T) {
	s := columnar.NullableOffsetList[int32, columnar.Flat[int], int]{
		Items:   columnar.Flat[int]{1, 2, 3},
		Lists:   columnar.NewOffsetSublists([]int32{0, 2, 2}, 3),
		IsValid: columnar.AllValid(3),
	}
	head, tail := s.SplitAt(1)
	require.True(t, head.IsConsistent())
	require.True(t, tail.IsConsistent())
	assert.Equal(t, 1, head.Len())
	assert.Equal(t, 2, tail.Len())
	assert.Equal(t, []int{1, 2}, []int(head.Items))
	assert.Equal(t, []int{3}, []int(tail.Items))
}
