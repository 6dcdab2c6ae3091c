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
	"github.com/apache/arrow/go/extarray"
	"golang.org/x/exp/slices"
)

// columnArgsort returns a stable sorting permutation with missing values
// last.
func columnArgsort(c column, ascending bool) []int {
	if e, ok := c.(*extColumn); ok {
		return extarray.Argsort(e.arr, ascending)
	}
	valid := make([]int, 0, c.Len())
	var missing []int
	for i := 0; i < c.Len(); i++ {
		if c.IsNA(i) {
			missing = append(missing, i)
		} else {
			valid = append(valid, i)
		}
	}
	slices.SortStableFunc(valid, func(a, b int) int {
		if !ascending {
			a, b = b, a
		}
		switch {
		case c.Less(a, b):
			return -1
		case c.Less(b, a):
			return 1
		}
		return 0
	})
	return append(valid, missing...)
}

func sortLabels(labels []any) {
	slices.SortStableFunc(labels, func(a, b any) int {
		switch na, nb := isMissingScalar(a), isMissingScalar(b); {
		case na && nb:
			return 0
		case na:
			return 1
		case nb:
			return -1
		}
		return compareScalars(a, b)
	})
}

// SortValues sorts by value, placing missing values last.
func (s *Series) SortValues(ascending bool) (*Series, error) {
	return s.takeResolved(columnArgsort(s.col, ascending))
}

// SortIndex sorts by index label.
func (s *Series) SortIndex() (*Series, error) {
	return s.takeResolved(columnArgsort(s.index.col, true))
}

// Argsort returns the ascending argsort of the non-missing values, laid out
// over the non-missing positions, with -1 at missing positions.
func (s *Series) Argsort() []int {
	mask := naMask(s.col)
	validPos := make([]int, 0, len(mask))
	for i, m := range mask {
		if !m {
			validPos = append(validPos, i)
		}
	}
	out := make([]int, len(mask))
	for i, m := range mask {
		if m {
			out[i] = -1
		}
	}

	compressed, err := s.col.Take(validPos)
	if err != nil {
		return out
	}
	order := columnArgsort(compressed, true)
	for k, p := range validPos {
		out[p] = order[k]
	}
	return out
}

// Unique returns the distinct values in order of appearance; missing
// values collapse into one entry.
func (s *Series) Unique() (*Series, error) {
	if e, ok := s.col.(*extColumn); ok {
		u, err := extarray.Unique(e.arr)
		if err != nil {
			return nil, err
		}
		return NewSeries(u, WithName(s.name))
	}
	seen := make(map[string]struct{})
	var first []int
	for i, k := range columnKeys(s.col) {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		first = append(first, i)
	}
	col, err := s.col.Take(first)
	if err != nil {
		return nil, err
	}
	return &Series{col: col, index: RangeIndex(col.Len()), name: s.name}, nil
}

// Factorize encodes the values as codes into the distinct values. Missing
// values get code -1.
func (s *Series) Factorize(sort bool) ([]int, *Series, error) {
	if e, ok := s.col.(*extColumn); ok {
		codes, uniques, err := extarray.Factorize(e.arr, sort)
		if err != nil {
			return nil, nil, err
		}
		u, err := NewSeries(uniques, WithName(s.name))
		return codes, u, err
	}

	codes := make([]int, s.Len())
	seen := make(map[string]int)
	var first []int
	for i, k := range columnKeys(s.col) {
		if k == naKey {
			codes[i] = -1
			continue
		}
		code, ok := seen[k]
		if !ok {
			code = len(first)
			seen[k] = code
			first = append(first, i)
		}
		codes[i] = code
	}
	col, err := s.col.Take(first)
	if err != nil {
		return nil, nil, err
	}
	if sort {
		order := columnArgsort(col, true)
		remap := make([]int, len(order))
		for newCode, oldCode := range order {
			remap[oldCode] = newCode
		}
		for i, c := range codes {
			if c >= 0 {
				codes[i] = remap[c]
			}
		}
		if col, err = col.Take(order); err != nil {
			return nil, nil, err
		}
	}
	return codes, &Series{col: col, index: RangeIndex(col.Len()), name: s.name}, nil
}

// ValueCounts counts each distinct value, most frequent first. The result
// is indexed by value and named "count".
func (s *Series) ValueCounts(dropna bool) (*Series, error) {
	if e, ok := s.col.(*extColumn); ok {
		values, counts, err := extarray.ValueCounts(e.arr, dropna)
		if err != nil {
			return nil, err
		}
		ix, err := NewIndex(values, s.name)
		if err != nil {
			return nil, err
		}
		return NewSeries(counts, WithIndex(ix), WithName("count"))
	}

	keys := columnKeys(s.col)
	seen := make(map[string]int)
	var first []int
	var counts []int64
	for i, k := range keys {
		if dropna && k == naKey {
			continue
		}
		j, ok := seen[k]
		if !ok {
			j = len(first)
			seen[k] = j
			first = append(first, i)
			counts = append(counts, 0)
		}
		counts[j]++
	}

	order := rangePositions(len(first))
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case counts[a] > counts[b]:
			return -1
		case counts[a] < counts[b]:
			return 1
		}
		return 0
	})
	pos := make([]int, len(order))
	sorted := make([]int64, len(order))
	for k, o := range order {
		pos[k], sorted[k] = first[o], counts[o]
	}
	values, err := s.col.Take(pos)
	if err != nil {
		return nil, err
	}
	return &Series{col: newInt64Column(sorted, nil), index: &Index{col: values, name: s.name}, name: "count"}, nil
}
