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
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray"
	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"
)

// JoinType selects which keys a Merge keeps.
type JoinType int8

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	OuterJoin
)

func (j JoinType) String() string {
	switch j {
	case InnerJoin:
		return "inner"
	case LeftJoin:
		return "left"
	case RightJoin:
		return "right"
	case OuterJoin:
		return "outer"
	}
	return fmt.Sprintf("JoinType(%d)", int8(j))
}

// ParseJoinType resolves "inner", "left", "right" or "outer".
func ParseJoinType(how string) (JoinType, error) {
	for j := InnerJoin; j <= OuterJoin; j++ {
		if j.String() == how {
			return j, nil
		}
	}
	return 0, fmt.Errorf("%w: invalid join type %q", arrow.ErrInvalid, how)
}

// Suffixes appended to overlapping non-key column names.
const (
	LeftSuffix  = "_x"
	RightSuffix = "_y"
)

// Merge joins left and right on the column on, which both must have.
//
// Result rows follow the left frame (the right frame for RightJoin); each
// row is repeated once per matching row of the other side. For OuterJoin
// the unmatched right rows follow, in right order. Missing keys match each
// other. The result has the key column, the remaining left columns, then
// the remaining right columns, and a default index.
func Merge(left, right *Frame, on string, how JoinType) (*Frame, error) {
	lk, err := left.Col(on)
	if err != nil {
		return nil, xerrors.Errorf("left frame: %w", err)
	}
	rk, err := right.Col(on)
	if err != nil {
		return nil, xerrors.Errorf("right frame: %w", err)
	}

	var lpos, rpos []int
	switch how {
	case RightJoin:
		rpos, lpos = joinPositions(rk.col, lk.col, true)
	case InnerJoin, LeftJoin, OuterJoin:
		lpos, rpos = joinPositions(lk.col, rk.col, how != InnerJoin)
	default:
		return nil, fmt.Errorf("%w: invalid join type %s", arrow.ErrInvalid, how)
	}

	keyCol, err := lk.col.Take(lpos)
	if how == RightJoin {
		keyCol, err = rk.col.Take(rpos)
	}
	if err != nil {
		return nil, err
	}

	if how == OuterJoin {
		seen := make(map[int]struct{}, len(rpos))
		for _, p := range rpos {
			seen[p] = struct{}{}
		}
		nLeft := len(lpos)
		for p := 0; p < right.Len(); p++ {
			if _, ok := seen[p]; !ok {
				lpos = append(lpos, extarray.FillPosition)
				rpos = append(rpos, p)
			}
		}
		if len(lpos) > nLeft {
			extra, err := rk.col.Take(rpos[nLeft:])
			if err != nil {
				return nil, err
			}
			if keyCol, err = concatColumns([]column{keyCol, extra}); err != nil {
				return nil, err
			}
		}
	}

	out := &Frame{names: []string{on}, cols: []column{keyCol}, index: RangeIndex(len(lpos))}
	add := func(src *Frame, pos []int, other *Frame, suffix string) error {
		for i, name := range src.names {
			if name == on {
				continue
			}
			col, err := src.cols[i].Take(pos)
			if err != nil {
				return xerrors.Errorf("column %q: %w", name, err)
			}
			if slices.Contains(other.names, name) {
				name += suffix
			}
			out.names = append(out.names, name)
			out.cols = append(out.cols, col)
		}
		return nil
	}
	if err := add(left, lpos, right, LeftSuffix); err != nil {
		return nil, err
	}
	if err := add(right, rpos, left, RightSuffix); err != nil {
		return nil, err
	}
	return out, nil
}

// joinPositions pairs each row of outer with the matching rows of inner.
// Unmatched outer rows are kept against a fill position when keep is set.
func joinPositions(outer, inner column, keep bool) (outerPos, innerPos []int) {
	lookup := make(map[string][]int)
	for i, k := range columnKeys(inner) {
		lookup[k] = append(lookup[k], i)
	}
	for i, k := range columnKeys(outer) {
		matches := lookup[k]
		if len(matches) == 0 {
			if keep {
				outerPos = append(outerPos, i)
				innerPos = append(innerPos, extarray.FillPosition)
			}
			continue
		}
		for _, m := range matches {
			outerPos = append(outerPos, i)
			innerPos = append(innerPos, m)
		}
	}
	return outerPos, innerPos
}
