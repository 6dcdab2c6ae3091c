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
)

// IsNA returns a bool series marking missing values.
func (s *Series) IsNA() *Series {
	return s.with(newBoolColumn(naMask(s.col), nil), s.index)
}

// NotNA is the negation of IsNA.
func (s *Series) NotNA() *Series {
	mask := naMask(s.col)
	for i := range mask {
		mask[i] = !mask[i]
	}
	return s.with(newBoolColumn(mask, nil), s.index)
}

// NAMask returns the missing-value mask as a slice.
func (s *Series) NAMask() []bool { return naMask(s.col) }

// Count returns the number of non-missing values.
func (s *Series) Count() int {
	n := 0
	for i := 0; i < s.Len(); i++ {
		if !s.col.IsNA(i) {
			n++
		}
	}
	return n
}

// DropNA removes missing values.
func (s *Series) DropNA() (*Series, error) {
	mask := naMask(s.col)
	for i := range mask {
		mask[i] = !mask[i]
	}
	return s.Filter(mask)
}

// FillNA replaces missing values with value. A series value supplies the
// replacement for each label.
func (s *Series) FillNA(value any) (*Series, error) {
	if o, ok := value.(*Series); ok {
		var missing []int
		var fills []any
		for i := 0; i < s.Len(); i++ {
			if !s.col.IsNA(i) {
				continue
			}
			pos := o.index.Positions(s.index.Label(i))
			if len(pos) == 0 || o.col.IsNA(pos[0]) {
				continue
			}
			missing = append(missing, i)
			fills = append(fills, o.col.Value(pos[0]))
		}
		col := s.col
		for k, p := range missing {
			var err error
			if col, err = fillPositions(col, []int{p}, fills[k]); err != nil {
				return nil, err
			}
		}
		return s.with(col, s.index), nil
	}

	col, err := s.col.FillNA(value)
	if err != nil {
		return nil, err
	}
	return s.with(col, s.index), nil
}

// FillNAMethod propagates valid values forward (Pad) or backward
// (Backfill), filling at most limit consecutive missing values; limit <= 0
// means no limit.
func (s *Series) FillNAMethod(method extarray.FillMethod, limit int) (*Series, error) {
	if e, ok := s.col.(*extColumn); ok {
		out, err := extarray.FillNAMethod(e.arr, method, limit)
		if err != nil {
			return nil, err
		}
		return s.with(&extColumn{arr: out}, s.index), nil
	}
	col, err := s.col.Take(extarray.FillIndexer(naMask(s.col), method, limit))
	if err != nil {
		return nil, err
	}
	return s.with(col, s.index), nil
}

// Shift moves values by periods positions, keeping the index. Vacated
// positions receive fill, or the missing value when fill is nil.
func (s *Series) Shift(periods int, fill any) (*Series, error) {
	if e, ok := s.col.(*extColumn); ok {
		out, err := extarray.Shift(e.arr, periods, fill)
		if err != nil {
			return nil, err
		}
		return s.with(&extColumn{arr: out}, s.index), nil
	}

	n := s.Len()
	pos := make([]int, n)
	var vacated []int
	for i := range pos {
		src := i - periods
		if src < 0 || src >= n {
			src = extarray.FillPosition
			vacated = append(vacated, i)
		}
		pos[i] = src
	}
	col, err := s.col.Take(pos)
	if err != nil {
		return nil, err
	}
	if fill != nil && len(vacated) > 0 {
		if col, err = fillPositions(col, vacated, fill); err != nil {
			return nil, err
		}
	}
	return s.with(col, s.index), nil
}

// Count returns the number of non-missing values per column, indexed by
// column name.
func (f *Frame) Count() *Series {
	counts := make([]int64, len(f.cols))
	for i := range f.cols {
		counts[i] = int64(f.ColAt(i).Count())
	}
	names := make([]string, len(f.names))
	copy(names, f.names)
	return &Series{col: newInt64Column(counts, nil), index: &Index{col: newStringColumn(names, nil)}}
}

// DropNA removes every row holding a missing value in any column.
func (f *Frame) DropNA() (*Frame, error) {
	keep := make([]bool, f.Len())
	for i := range keep {
		keep[i] = true
	}
	for _, c := range f.cols {
		for i := range keep {
			if keep[i] && c.IsNA(i) {
				keep[i] = false
			}
		}
	}
	return f.Filter(keep)
}

// DropNAColumns removes every column holding a missing value.
func (f *Frame) DropNAColumns() *Frame {
	var names []string
	var cols []column
	for i, c := range f.cols {
		if f.ColAt(i).Count() == c.Len() {
			names = append(names, f.names[i])
			cols = append(cols, c)
		}
	}
	return f.with(names, cols, f.index)
}

// FillNA fills missing values in every column with value.
func (f *Frame) FillNA(value any) (*Frame, error) {
	return f.mapColumns(func(s *Series) (*Series, error) { return s.FillNA(value) })
}

// FillNAColumns fills missing values per column; columns absent from values
// are left unchanged.
func (f *Frame) FillNAColumns(values map[string]any) (*Frame, error) {
	for name := range values {
		if f.colIndex(name) < 0 {
			return nil, fmt.Errorf("%w: column %q not found", arrow.ErrIndex, name)
		}
	}
	return f.mapColumns(func(s *Series) (*Series, error) {
		v, ok := values[s.name]
		if !ok {
			return s, nil
		}
		return s.FillNA(v)
	})
}

// FillNAMethod propagates valid values along every column.
func (f *Frame) FillNAMethod(method extarray.FillMethod, limit int) (*Frame, error) {
	return f.mapColumns(func(s *Series) (*Series, error) { return s.FillNAMethod(method, limit) })
}

// Align conforms f and other to the union of their row indexes.
func (f *Frame) Align(other *Frame) (*Frame, *Frame, error) {
	if f.index.Equals(other.index) {
		return f, other, nil
	}
	union, err := f.index.union(other.index)
	if err != nil {
		return nil, nil, err
	}
	left, err := f.Reindex(union.Labels())
	if err != nil {
		return nil, nil, err
	}
	right, err := other.Reindex(union.Labels())
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// Reindex conforms the rows to labels, inserting missing values for labels
// not present.
func (f *Frame) Reindex(labels []any) (*Frame, error) {
	index, err := NewIndex(labels, f.index.name)
	if err != nil {
		return nil, err
	}
	cols := make([]column, len(f.cols))
	for i := range f.cols {
		s, err := f.ColAt(i).Reindex(labels, nil)
		if err != nil {
			return nil, err
		}
		cols[i] = s.col
	}
	return f.with(append([]string(nil), f.names...), cols, index), nil
}
