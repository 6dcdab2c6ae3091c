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

package extarray

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray/internal/debug"
)

// FillPosition marks an output position that receives the fill value.
const FillPosition = -1

// ResolveTake maps indices into positions of an array of length n.
//
// Without allowFill, a negative index counts from the end and any index
// outside [-n, n) fails with arrow.ErrIndex.
//
// With allowFill, -1 is reserved for fill positions and is returned as
// FillPosition; any other negative index fails with arrow.ErrInvalid and an
// index >= n fails with arrow.ErrIndex. Taking non-fill positions from an
// empty array fails with arrow.ErrIndex.
func ResolveTake(n int, indices []int, allowFill bool) ([]int, error) {
	out := make([]int, len(indices))
	for i, idx := range indices {
		switch {
		case allowFill && idx == FillPosition:
			out[i] = FillPosition
			continue
		case allowFill && idx < FillPosition:
			return nil, fmt.Errorf("%w: invalid value in 'indices'. Must be all >= -1 when allow_fill is set, got %d",
				arrow.ErrInvalid, idx)
		case n == 0:
			return nil, fmt.Errorf("%w: cannot do a non-empty take from an empty array", arrow.ErrIndex)
		case idx < 0:
			idx += n
		}
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("%w: index %d is out of bounds for length %d", arrow.ErrIndex, indices[i], n)
		}
		out[i] = idx
	}
	debug.Assert(len(out) == len(indices), "take resolved a different number of positions")
	return out, nil
}

// ValidateTake reports whether ResolveTake would accept indices.
func ValidateTake(n int, indices []int, allowFill bool) error {
	_, err := ResolveTake(n, indices, allowFill)
	return err
}
