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
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray"
	"golang.org/x/exp/slices"
)

// Column is one named input column of NewFrame. Data accepts anything
// NewSeries accepts.
type Column struct {
	Name string
	Data any
}

// Frame is an ordered collection of equally long, named columns sharing one
// index.
type Frame struct {
	names []string
	cols  []column
	index *Index
}

// NewFrame builds a frame from columns. WithDtype applies a dtype to every
// column and WithColumnDtypes to individual ones. Extension arrays cannot
// be coerced to another dtype here.
func NewFrame(columns []Column, opts ...Option) (*Frame, error) {
	cfg := newConfig(opts)
	f := &Frame{}

	if cfg.index != nil {
		ix, err := NewIndex(cfg.index, "")
		if err != nil {
			return nil, err
		}
		f.index = ix
	}

	for _, c := range columns {
		if slices.Contains(f.names, c.Name) {
			return nil, fmt.Errorf("%w: duplicate column name %q", arrow.ErrInvalid, c.Name)
		}
		data := c.Data
		if s, ok := data.(*Series); ok {
			if f.index == nil {
				f.index = s.index
			} else if !f.index.Equals(s.index) {
				aligned, err := s.Reindex(f.index.Labels(), nil)
				if err != nil {
					return nil, err
				}
				s = aligned
			}
			data = s.col
		}

		dtype := cfg.dtype
		if d, ok := cfg.dtypeMap[c.Name]; ok {
			dtype = d
		}
		dt, err := ParseDtype(dtype)
		if err != nil {
			return nil, err
		}
		col, err := coerceFrameColumn(data, dt)
		if err != nil {
			return nil, err
		}
		if len(f.cols) > 0 && col.Len() != f.cols[0].Len() {
			return nil, fmt.Errorf("%w: column %q has length %d, expected %d",
				arrow.ErrInvalid, c.Name, col.Len(), f.cols[0].Len())
		}
		f.names = append(f.names, c.Name)
		f.cols = append(f.cols, col)
	}

	n := 0
	if len(f.cols) > 0 {
		n = f.cols[0].Len()
	}
	if f.index == nil {
		f.index = RangeIndex(n)
	}
	if len(f.cols) > 0 {
		if err := checkIndexLen(f.index, n); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func coerceFrameColumn(data any, dt Dtype) (column, error) {
	if arr, ok := extensionOf(data); ok && dt != nil && !DtypeEqual(dt, arr.Dtype()) {
		return nil, fmt.Errorf("%w: Cannot coerce extension array to dtype '%s'. Do the coercion before passing to the constructor instead.",
			arrow.ErrInvalid, dt)
	}
	return coerceColumn(data, dt)
}

func (f *Frame) with(names []string, cols []column, index *Index) *Frame {
	return &Frame{names: names, cols: cols, index: index}
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string { return slices.Clone(f.names) }

func (f *Frame) Index() *Index { return f.index }

// Len returns the number of rows.
func (f *Frame) Len() int { return f.index.Len() }

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.cols) }

func (f *Frame) colIndex(name string) int { return slices.Index(f.names, name) }

// Col returns the named column as a series sharing the frame's index.
func (f *Frame) Col(name string) (*Series, error) {
	i := f.colIndex(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: column %q not found", arrow.ErrIndex, name)
	}
	return &Series{col: f.cols[i], index: f.index, name: name}, nil
}

// ColAt returns the i-th column.
func (f *Frame) ColAt(i int) *Series {
	return &Series{col: f.cols[i], index: f.index, name: f.names[i]}
}

// Dtypes returns the dtype of each column, in column order.
func (f *Frame) Dtypes() []Dtype {
	out := make([]Dtype, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.Dtype()
	}
	return out
}

// Set adds or replaces a column. A series is aligned on the frame index.
func (f *Frame) Set(name string, data any) error {
	if s, ok := data.(*Series); ok {
		if len(f.cols) > 0 && !f.index.Equals(s.index) {
			aligned, err := s.Reindex(f.index.Labels(), nil)
			if err != nil {
				return err
			}
			s = aligned
		}
		data = s.col
		if len(f.cols) == 0 {
			f.index = s.index
		}
	}
	col, err := coerceColumn(data, nil)
	if err != nil {
		return err
	}
	if len(f.cols) == 0 && f.index.Len() == 0 {
		f.index = RangeIndex(col.Len())
	}
	if col.Len() != f.Len() {
		return fmt.Errorf("%w: Length of values (%d) does not match length of index (%d)", arrow.ErrInvalid, col.Len(), f.Len())
	}
	if i := f.colIndex(name); i >= 0 {
		f.cols[i] = col
		return nil
	}
	f.names = append(f.names, name)
	f.cols = append(f.cols, col)
	return nil
}

// Drop returns a frame without the named columns.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	for _, n := range names {
		if f.colIndex(n) < 0 {
			return nil, fmt.Errorf("%w: column %q not found", arrow.ErrIndex, n)
		}
	}
	var keptNames []string
	var kept []column
	for i, n := range f.names {
		if !slices.Contains(names, n) {
			keptNames = append(keptNames, n)
			kept = append(kept, f.cols[i])
		}
	}
	return f.with(keptNames, kept, f.index), nil
}

// Select returns a frame with the named columns in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]column, len(names))
	for i, n := range names {
		j := f.colIndex(n)
		if j < 0 {
			return nil, fmt.Errorf("%w: column %q not found", arrow.ErrIndex, n)
		}
		cols[i] = f.cols[j]
	}
	return f.with(slices.Clone(names), cols, f.index), nil
}

func matchesDtype(dt Dtype, sel any) bool {
	if s, ok := sel.(string); ok {
		switch s {
		case "number":
			return IsNumericDtype(dt) && dt != Bool
		case "extension":
			return IsExtensionArrayDtype(dt)
		}
	}
	want, err := ParseDtype(sel)
	if err != nil || want == nil {
		return false
	}
	return DtypeEqual(dt, want)
}

// SelectDtypes keeps the columns whose dtype matches an entry of include
// (all columns when include is empty) and none of exclude. Entries are
// dtypes, dtype names, "number" or "extension".
func (f *Frame) SelectDtypes(include, exclude []any) (*Frame, error) {
	var names []string
	var cols []column
	for i, c := range f.cols {
		dt := c.Dtype()
		keep := len(include) == 0
		for _, sel := range include {
			if matchesDtype(dt, sel) {
				keep = true
				break
			}
		}
		for _, sel := range exclude {
			if matchesDtype(dt, sel) {
				keep = false
				break
			}
		}
		if keep {
			names = append(names, f.names[i])
			cols = append(cols, c)
		}
	}
	return f.with(names, cols, f.index), nil
}

func (f *Frame) takeResolved(pos []int) (*Frame, error) {
	cols := make([]column, len(f.cols))
	for i, c := range f.cols {
		out, err := c.Take(pos)
		if err != nil {
			return nil, err
		}
		cols[i] = out
	}
	index, err := f.index.take(pos)
	if err != nil {
		return nil, err
	}
	return f.with(slices.Clone(f.names), cols, index), nil
}

// ILoc selects rows by position. Negative positions count from the end.
func (f *Frame) ILoc(rows ...int) (*Frame, error) {
	pos, err := extarray.ResolveTake(f.Len(), rows, false)
	if err != nil {
		return nil, err
	}
	return f.takeResolved(pos)
}

// ISlice returns rows [i, j).
func (f *Frame) ISlice(i, j int) *Frame {
	cols := make([]column, len(f.cols))
	for k, c := range f.cols {
		cols[k] = c.Slice(i, j)
	}
	return f.with(slices.Clone(f.names), cols, f.index.slice(i, j))
}

// Loc selects rows by label.
func (f *Frame) Loc(labels ...any) (*Frame, error) {
	var pos []int
	for _, l := range labels {
		p := f.index.Positions(l)
		if len(p) == 0 {
			return nil, fmt.Errorf("%w: label %v not found in index", arrow.ErrIndex, l)
		}
		pos = append(pos, p...)
	}
	return f.takeResolved(pos)
}

// Filter keeps the rows where mask is true.
func (f *Frame) Filter(mask []bool) (*Frame, error) {
	if len(mask) != f.Len() {
		return nil, fmt.Errorf("%w: boolean mask of length %d for frame of length %d", arrow.ErrIndex, len(mask), f.Len())
	}
	return f.takeResolved(maskPositions(mask))
}

// Row returns the values of row i in column order.
func (f *Frame) Row(i int) []any {
	out := make([]any, len(f.cols))
	for k, c := range f.cols {
		out[k] = c.Value(i)
	}
	return out
}

// SetIndex moves the named column into the index.
func (f *Frame) SetIndex(name string) (*Frame, error) {
	i := f.colIndex(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: column %q not found", arrow.ErrIndex, name)
	}
	out, err := f.Drop(name)
	if err != nil {
		return nil, err
	}
	out.index = &Index{col: f.cols[i], name: name}
	return out, nil
}

// ResetIndex replaces the index with a default range.
func (f *Frame) ResetIndex() *Frame {
	return f.with(slices.Clone(f.names), slices.Clone(f.cols), RangeIndex(f.Len()))
}

// SortValues sorts rows by the given columns, missing values last.
func (f *Frame) SortValues(ascending bool, by ...string) (*Frame, error) {
	keys := make([]column, len(by))
	for i, name := range by {
		j := f.colIndex(name)
		if j < 0 {
			return nil, fmt.Errorf("%w: column %q not found", arrow.ErrIndex, name)
		}
		keys[i] = f.cols[j]
	}
	if len(keys) == 1 {
		return f.takeResolved(columnArgsort(keys[0], ascending))
	}

	order := rangePositions(f.Len())
	slices.SortStableFunc(order, func(a, b int) int {
		for _, k := range keys {
			na, nb := k.IsNA(a), k.IsNA(b)
			switch {
			case na && nb:
				continue
			case na:
				return 1
			case nb:
				return -1
			}
			x, y := a, b
			if !ascending {
				x, y = b, a
			}
			switch {
			case k.Less(x, y):
				return -1
			case k.Less(y, x):
				return 1
			}
		}
		return 0
	})
	return f.takeResolved(order)
}

// Shift moves every column by periods rows.
func (f *Frame) Shift(periods int, fill any) (*Frame, error) {
	return f.mapColumns(func(s *Series) (*Series, error) { return s.Shift(periods, fill) })
}

func (f *Frame) mapColumns(fn func(s *Series) (*Series, error)) (*Frame, error) {
	cols := make([]column, len(f.cols))
	for i := range f.cols {
		out, err := fn(f.ColAt(i))
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", f.names[i], err)
		}
		cols[i] = out.col
	}
	return f.with(slices.Clone(f.names), cols, f.index), nil
}

// AsType casts every column to dtype.
func (f *Frame) AsType(dtype any) (*Frame, error) {
	return f.mapColumns(func(s *Series) (*Series, error) { return s.AsType(dtype) })
}

// Info summarises the columns: name, non-missing count and dtype.
func (f *Frame) Info() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<frame.Frame>\n%d entries\nData columns (total %d columns):\n", f.Len(), len(f.cols))
	for i, c := range f.cols {
		fmt.Fprintf(&b, " %d  %s  %d non-null  %s\n", i, f.names[i], f.ColAt(i).Count(), c.Dtype())
	}
	usage := f.index.col.NBytes()
	for _, c := range f.cols {
		usage += c.NBytes()
	}
	fmt.Fprintf(&b, "memory usage: %d bytes", usage)
	return b.String()
}

func (f *Frame) String() string {
	var b strings.Builder
	b.WriteString("\t" + strings.Join(f.names, "\t") + "\n")
	for i := 0; i < f.Len(); i++ {
		b.WriteString(f.index.col.ValueString(i))
		for _, c := range f.cols {
			b.WriteString("\t" + c.ValueString(i))
		}
		b.WriteString("\n")
	}
	return b.String()
}
