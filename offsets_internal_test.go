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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffsetSublistsConsistency(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int32
		total   int
		want    bool
	}{
		{"empty", nil, 0, true},
		{"empty with items", nil, 3, false},
		{"single", []int32{0}, 4, true},
		{"monotonic", []int32{0, 1, 3}, 3, true},
		{"non-zero base", []int32{5, 6, 8}, 3, true},
		{"decreasing", []int32{0, 3, 1}, 5, false},
		{"span exceeds total", []int32{0, 4}, 3, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := OffsetSublists[int32]{offsets: tc.offsets, totalItems: tc.total}
			assert.Equal(t, tc.want, s.IsConsistent())
		})
	}
}
