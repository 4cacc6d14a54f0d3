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

import "errors"

var (
	// ErrSublistLengths is returned when appending a list slice whose
	// sublist lengths do not add up to its item count.
	ErrSublistLengths = errors.New("sum of sublist lengths should equate value buffer length")

	// ErrOptionLengths is returned when appending an option slice whose
	// values and validity have different lengths.
	ErrOptionLengths = errors.New("values and validity should have the same length")
)
