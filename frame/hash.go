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

package frame

import (
	"github.com/zeebo/xxh3"
)

// hashColumn hashes each value of c, chaining from seeds when given.
// Equal values hash equally regardless of representation, and every
// missing value hashes alike.
func hashColumn(c column, seeds []uint64) []uint64 {
	out := make([]uint64, c.Len())
	for i, k := range columnKeys(c) {
		if seeds == nil {
			out[i] = xxh3.HashString(k)
		} else {
			out[i] = xxh3.HashStringSeed(k, seeds[i])
		}
	}
	return out
}

// HashSeries returns a deterministic 64-bit hash of each value. When index
// is set the row label is mixed in.
func HashSeries(s *Series, index bool) []uint64 {
	h := hashColumn(s.col, nil)
	if index {
		h = hashColumn(s.index.col, h)
	}
	return h
}

// HashFrame returns a deterministic 64-bit hash of each row, combining the
// columns in order. When index is set the row label is mixed in.
func HashFrame(f *Frame, index bool) []uint64 {
	var h []uint64
	for _, c := range f.cols {
		h = hashColumn(c, h)
	}
	if index {
		h = hashColumn(f.index.col, h)
	}
	if h == nil {
		h = make([]uint64, f.Len())
	}
	return h
}
