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
	"golang.org/x/xerrors"
)

// Option configures NewSeries and NewFrame.
type Option func(*config)

type config struct {
	name     string
	hasName  bool
	index    any
	dtype    any
	dtypeMap map[string]any
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// WithName names the series.
func WithName(name string) Option {
	return func(c *config) { c.name, c.hasName = name, true }
}

// WithIndex supplies the row labels; anything NewIndex accepts.
func WithIndex(index any) Option {
	return func(c *config) { c.index = index }
}

// WithDtype requests a dtype, given as a Dtype or a name. For a frame it
// applies to every column.
func WithDtype(dtype any) Option {
	return func(c *config) { c.dtype = dtype }
}

// WithColumnDtypes requests per-column dtypes for NewFrame.
func WithColumnDtypes(dtypes map[string]any) Option {
	return func(c *config) { c.dtypeMap = dtypes }
}

// Series is a labelled one-dimensional column.
type Series struct {
	col   column
	index *Index
	name  string
}

var _ extarray.DtypeCarrier = (*Series)(nil)

// NewSeries builds a series from an extension array, an arrow.Array, a Go
// slice ([]int64, []int, []float64, []bool, []string, []any) or another
// *Series.
//
// An extension array may only be tagged with its own dtype, and raw values
// cannot be tagged with an extension dtype; both fail with arrow.ErrInvalid.
func NewSeries(data any, opts ...Option) (*Series, error) {
	cfg := newConfig(opts)

	var index *Index
	name := cfg.name
	if src, ok := data.(*Series); ok {
		index = src.index
		if !cfg.hasName {
			name = src.name
		}
		data = src.col
	}

	dt, err := ParseDtype(cfg.dtype)
	if err != nil {
		return nil, err
	}
	col, err := coerceColumn(data, dt)
	if err != nil {
		return nil, err
	}

	if cfg.index != nil {
		if index, err = NewIndex(cfg.index, ""); err != nil {
			return nil, err
		}
	}
	if index == nil {
		index = RangeIndex(col.Len())
	}
	if err := checkIndexLen(index, col.Len()); err != nil {
		return nil, err
	}
	return &Series{col: col, index: index, name: name}, nil
}

// MustSeries is like NewSeries but panics on error.
func MustSeries(data any, opts ...Option) *Series {
	s, err := NewSeries(data, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func extensionOf(data any) (extarray.ExtensionArray, bool) {
	switch d := data.(type) {
	case extarray.ExtensionArray:
		return d, true
	case *extColumn:
		return d.arr, true
	}
	return nil, false
}

func coerceColumn(data any, dt Dtype) (column, error) {
	if arr, ok := extensionOf(data); ok {
		if dt != nil && !DtypeEqual(dt, arr.Dtype()) {
			return nil, fmt.Errorf("%w: Cannot specify a dtype '%s' with an extension array of a different dtype ('%s').",
				arrow.ErrInvalid, dt, arr.Dtype())
		}
		return &extColumn{arr: arr}, nil
	}

	if ext, ok := dt.(extarray.ExtensionDtype); ok {
		return nil, fmt.Errorf("%w: Cannot cast data to extension dtype '%s'. Pass the extension array directly.",
			arrow.ErrInvalid, ext)
	}

	col, err := newColumn(data)
	if err != nil {
		return nil, err
	}
	if dt == nil {
		return col, nil
	}
	return castColumn(col, dt)
}

func castColumn(c column, dt Dtype) (column, error) {
	if DtypeEqual(c.Dtype(), dt) {
		return c, nil
	}

	if ext, ok := dt.(extarray.ExtensionDtype); ok {
		arr, err := ext.ConstructFromSequence(columnValues(c))
		if err != nil {
			return nil, xerrors.Errorf("cannot cast %s to %s: %w", c.Dtype(), dt, err)
		}
		return &extColumn{arr: arr}, nil
	}

	target, ok := dt.(*NativeDtype)
	if !ok {
		return nil, fmt.Errorf("%w: unknown dtype %s", arrow.ErrType, dt)
	}
	if target == Object {
		return toObject(c), nil
	}

	switch src := c.(type) {
	case *nativeColumn:
		return castNative(src, target)
	case *extColumn:
		arr, err := src.arr.CastTo(target.typ)
		if err != nil {
			return nil, err
		}
		return &nativeColumn{arr: arr, dt: target}, nil
	case *objectColumn:
		if inferred, ok := inferColumn(src.vals).(*nativeColumn); ok {
			return castNative(inferred, target)
		}
	}
	return nil, fmt.Errorf("%w: cannot cast %s to %s", arrow.ErrType, c.Dtype(), dt)
}

func (s *Series) Len() int       { return s.col.Len() }
func (s *Series) Name() string   { return s.name }
func (s *Series) Dtype() Dtype   { return s.col.Dtype() }
func (s *Series) Index() *Index  { return s.index }
func (s *Series) NBytes() int    { return s.col.NBytes() }

// MemoryUsage is NBytes plus the memory held by the index.
func (s *Series) MemoryUsage() int { return s.col.NBytes() + s.index.col.NBytes() }

// ExtensionDtype returns the extension dtype of the values, if any.
func (s *Series) ExtensionDtype() (extarray.ExtensionDtype, bool) {
	if e, ok := s.col.(*extColumn); ok {
		return e.arr.Dtype(), true
	}
	return nil, false
}

// Array returns the backing extension array, if the series holds one.
func (s *Series) Array() (extarray.ExtensionArray, bool) {
	if e, ok := s.col.(*extColumn); ok {
		return e.arr, true
	}
	return nil, false
}

// Values returns the backing storage: an extarray.ExtensionArray, an
// arrow.Array or a []any for object columns.
func (s *Series) Values() any {
	switch c := s.col.(type) {
	case *extColumn:
		return c.arr
	case *nativeColumn:
		return c.arr
	case *objectColumn:
		return append([]any(nil), c.vals...)
	}
	return nil
}

// Rename returns a copy of s with a different name.
func (s *Series) Rename(name string) *Series {
	return &Series{col: s.col, index: s.index, name: name}
}

// ResetIndex returns a copy of s with a default range index.
func (s *Series) ResetIndex() *Series {
	return &Series{col: s.col, index: RangeIndex(s.Len()), name: s.name}
}

func (s *Series) with(col column, index *Index) *Series {
	return &Series{col: col, index: index, name: s.name}
}

// ILoc returns the value at position i; negative positions count from the
// end.
func (s *Series) ILoc(i int) (any, error) {
	pos, err := extarray.ResolveTake(s.Len(), []int{i}, false)
	if err != nil {
		return nil, err
	}
	return s.col.Value(pos[0]), nil
}

// IsNAAt reports whether the value at position i is missing.
func (s *Series) IsNAAt(i int) bool { return s.col.IsNA(i) }

// At returns the single value labelled label.
func (s *Series) At(label any) (any, error) {
	pos := s.index.Positions(label)
	switch len(pos) {
	case 0:
		return nil, fmt.Errorf("%w: label %v not found", arrow.ErrIndex, label)
	case 1:
		return s.col.Value(pos[0]), nil
	}
	return nil, fmt.Errorf("%w: label %v is not unique", arrow.ErrInvalid, label)
}

// ISlice returns positions [i, j).
func (s *Series) ISlice(i, j int) *Series {
	return s.with(s.col.Slice(i, j), s.index.slice(i, j))
}

// Head returns the first n rows.
func (s *Series) Head(n int) *Series {
	if n > s.Len() {
		n = s.Len()
	}
	return s.ISlice(0, n)
}

// Take selects rows by position. Negative positions count from the end.
func (s *Series) Take(indices []int) (*Series, error) {
	pos, err := extarray.ResolveTake(s.Len(), indices, false)
	if err != nil {
		return nil, err
	}
	return s.takeResolved(pos)
}

func (s *Series) takeResolved(pos []int) (*Series, error) {
	col, err := s.col.Take(pos)
	if err != nil {
		return nil, err
	}
	index, err := s.index.take(pos)
	if err != nil {
		return nil, err
	}
	return s.with(col, index), nil
}

// Loc selects rows by label. Every label must be present.
func (s *Series) Loc(labels ...any) (*Series, error) {
	var pos []int
	for _, l := range labels {
		p := s.index.Positions(l)
		if len(p) == 0 {
			return nil, fmt.Errorf("%w: label %v not found in index", arrow.ErrIndex, l)
		}
		pos = append(pos, p...)
	}
	return s.takeResolved(pos)
}

// Filter keeps the rows where mask is true.
func (s *Series) Filter(mask []bool) (*Series, error) {
	if len(mask) != s.Len() {
		return nil, fmt.Errorf("%w: boolean mask of length %d for series of length %d", arrow.ErrIndex, len(mask), s.Len())
	}
	col, err := s.col.Filter(mask)
	if err != nil {
		return nil, err
	}
	index, err := s.index.filter(mask)
	if err != nil {
		return nil, err
	}
	return s.with(col, index), nil
}

// Reindex conforms s to labels. Labels missing from the index receive
// fill, or the missing value when fill is nil.
func (s *Series) Reindex(labels []any, fill any) (*Series, error) {
	if !s.index.IsUnique() {
		return nil, fmt.Errorf("%w: cannot reindex on an axis with duplicate labels", arrow.ErrInvalid)
	}
	pos := make([]int, len(labels))
	var missing []int
	for i, l := range labels {
		p := s.index.Positions(l)
		if len(p) == 0 {
			pos[i] = extarray.FillPosition
			missing = append(missing, i)
			continue
		}
		pos[i] = p[0]
	}
	col, err := s.col.Take(pos)
	if err != nil {
		return nil, err
	}
	if fill != nil && len(missing) > 0 {
		if col, err = fillPositions(col, missing, fill); err != nil {
			return nil, err
		}
	}
	index, err := NewIndex(labels, s.index.name)
	if err != nil {
		return nil, err
	}
	return s.with(col, index), nil
}

// fillPositions sets the given positions of c to fill.
func fillPositions(c column, positions []int, fill any) (column, error) {
	if e, ok := c.(*extColumn); ok {
		out := e.arr.Copy()
		for _, p := range positions {
			if err := out.SetValue(p, fill); err != nil {
				return nil, err
			}
		}
		return &extColumn{arr: out}, nil
	}
	vals := columnValues(c)
	for _, p := range positions {
		vals[p] = fill
	}
	out := inferColumn(vals)
	if DtypeEqual(out.Dtype(), c.Dtype()) || c.Dtype() == Object {
		return out, nil
	}
	if IsNumericDtype(out.Dtype()) && IsNumericDtype(c.Dtype()) {
		return out, nil
	}
	return toObject(out), nil
}

// ToList returns the values; missing entries are returned as the column's
// missing value.
func (s *Series) ToList() []any {
	out := make([]any, s.Len())
	for i := range out {
		out[i] = s.col.Value(i)
	}
	return out
}

func (s *Series) String() string {
	var b strings.Builder
	for i := 0; i < s.Len(); i++ {
		fmt.Fprintf(&b, "%s    %s\n", s.index.col.ValueString(i), s.col.ValueString(i))
	}
	if s.name != "" {
		fmt.Fprintf(&b, "Name: %s, ", s.name)
	}
	fmt.Fprintf(&b, "dtype: %s", s.Dtype())
	return b.String()
}
