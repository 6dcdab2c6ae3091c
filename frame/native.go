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
	"context"
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/compute"
)

// nativeColumn holds an int64, float64, bool or string arrow array.
type nativeColumn struct {
	arr arrow.Array
	dt  *NativeDtype
}

func newInt64Column(vals []int64, valid []bool) *nativeColumn {
	bldr := array.NewInt64Builder(mem)
	defer bldr.Release()
	bldr.AppendValues(vals, valid)
	return &nativeColumn{arr: bldr.NewArray(), dt: Int64}
}

// newFloat64Column stores NaN as null.
func newFloat64Column(vals []float64, valid []bool) *nativeColumn {
	bldr := array.NewFloat64Builder(mem)
	defer bldr.Release()
	bldr.Reserve(len(vals))
	for i, v := range vals {
		if math.IsNaN(v) || (valid != nil && !valid[i]) {
			bldr.AppendNull()
			continue
		}
		bldr.Append(v)
	}
	return &nativeColumn{arr: bldr.NewArray(), dt: Float64}
}

func newBoolColumn(vals []bool, valid []bool) *nativeColumn {
	bldr := array.NewBooleanBuilder(mem)
	defer bldr.Release()
	bldr.AppendValues(vals, valid)
	return &nativeColumn{arr: bldr.NewArray(), dt: Bool}
}

func newStringColumn(vals []string, valid []bool) *nativeColumn {
	bldr := array.NewStringBuilder(mem)
	defer bldr.Release()
	bldr.AppendValues(vals, valid)
	return &nativeColumn{arr: bldr.NewArray(), dt: String}
}

// newNativeColumnFromArrow adopts arr, widening other integer and floating
// point types to int64 and float64.
func newNativeColumnFromArrow(arr arrow.Array) (*nativeColumn, error) {
	if dt := nativeFromArrow(arr.DataType()); dt != nil {
		return &nativeColumn{arr: arr, dt: dt}, nil
	}

	var target *NativeDtype
	switch {
	case arrow.IsInteger(arr.DataType().ID()):
		target = Int64
	case arrow.IsFloating(arr.DataType().ID()):
		target = Float64
	case arr.DataType().ID() == arrow.LARGE_STRING:
		target = String
	default:
		return nil, fmt.Errorf("%w: unsupported arrow type %s for a column", arrow.ErrNotImplemented, arr.DataType())
	}
	out, err := compute.CastArray(context.Background(), arr, compute.SafeCastOptions(target.typ))
	if err != nil {
		return nil, err
	}
	return &nativeColumn{arr: out, dt: target}, nil
}

func (c *nativeColumn) Dtype() Dtype { return c.dt }
func (c *nativeColumn) Len() int     { return c.arr.Len() }

func (c *nativeColumn) IsNA(i int) bool {
	if c.arr.IsNull(i) {
		return true
	}
	if f, ok := c.arr.(*array.Float64); ok {
		return math.IsNaN(f.Value(i))
	}
	return false
}

func (c *nativeColumn) Value(i int) any {
	if c.IsNA(i) {
		if c.dt == Float64 {
			return math.NaN()
		}
		return nil
	}
	switch a := c.arr.(type) {
	case *array.Int64:
		return a.Value(i)
	case *array.Float64:
		return a.Value(i)
	case *array.Boolean:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	}
	return c.arr.GetOneForMarshal(i)
}

func (c *nativeColumn) ValueString(i int) string {
	if c.IsNA(i) {
		if c.dt == Float64 {
			return "NaN"
		}
		return "<NA>"
	}
	return c.arr.ValueStr(i)
}

func (c *nativeColumn) Less(i, j int) bool {
	switch a := c.arr.(type) {
	case *array.Int64:
		return a.Value(i) < a.Value(j)
	case *array.Float64:
		return a.Value(i) < a.Value(j)
	case *array.Boolean:
		return !a.Value(i) && a.Value(j)
	case *array.String:
		return a.Value(i) < a.Value(j)
	}
	return false
}

func (c *nativeColumn) Take(positions []int) (column, error) {
	bldr := array.NewInt64Builder(mem)
	defer bldr.Release()
	bldr.Reserve(len(positions))
	for _, p := range positions {
		if p < 0 {
			bldr.AppendNull()
			continue
		}
		bldr.Append(int64(p))
	}
	indices := bldr.NewArray()
	defer indices.Release()

	out, err := compute.TakeArray(context.Background(), c.arr, indices)
	if err != nil {
		return nil, err
	}
	return &nativeColumn{arr: out, dt: c.dt}, nil
}

func (c *nativeColumn) Filter(mask []bool) (column, error) {
	bldr := array.NewBooleanBuilder(mem)
	defer bldr.Release()
	bldr.AppendValues(mask, nil)
	filter := bldr.NewArray()
	defer filter.Release()

	out, err := compute.FilterArray(context.Background(), c.arr, filter, *compute.DefaultFilterOptions())
	if err != nil {
		return nil, err
	}
	return &nativeColumn{arr: out, dt: c.dt}, nil
}

func (c *nativeColumn) Slice(i, j int) column {
	return &nativeColumn{arr: array.NewSlice(c.arr, int64(i), int64(j)), dt: c.dt}
}

// FillNA replaces missing entries. An int64 column filled with a
// non-integral number becomes float64; a fill value of another kind turns
// the column into an object column.
func (c *nativeColumn) FillNA(value any) (column, error) {
	n := c.Len()
	switch c.dt {
	case Int64:
		if v, ok := toInt64(value); ok {
			vals, valid := make([]int64, n), make([]bool, n)
			for i := 0; i < n; i++ {
				if c.IsNA(i) {
					vals[i], valid[i] = v, true
					continue
				}
				vals[i], valid[i] = c.arr.(*array.Int64).Value(i), true
			}
			return newInt64Column(vals, valid), nil
		}
		if _, ok := value.(float64); ok {
			asFloat, err := castNative(c, Float64)
			if err != nil {
				return nil, err
			}
			return asFloat.FillNA(value)
		}
	case Float64:
		if v, ok := toFloat64(value); ok {
			vals := make([]float64, n)
			for i := 0; i < n; i++ {
				if c.IsNA(i) {
					vals[i] = v
					continue
				}
				vals[i] = c.arr.(*array.Float64).Value(i)
			}
			return newFloat64Column(vals, nil), nil
		}
	case Bool:
		if v, ok := value.(bool); ok {
			vals := make([]bool, n)
			for i := 0; i < n; i++ {
				if c.IsNA(i) {
					vals[i] = v
					continue
				}
				vals[i] = c.arr.(*array.Boolean).Value(i)
			}
			return newBoolColumn(vals, nil), nil
		}
	case String:
		if v, ok := value.(string); ok {
			vals := make([]string, n)
			for i := 0; i < n; i++ {
				if c.IsNA(i) {
					vals[i] = v
					continue
				}
				vals[i] = c.arr.(*array.String).Value(i)
			}
			return newStringColumn(vals, nil), nil
		}
	}
	return toObject(c).FillNA(value)
}

func (c *nativeColumn) NBytes() int {
	n := 0
	for _, buf := range c.arr.Data().Buffers() {
		if buf != nil {
			n += buf.Len()
		}
	}
	return n
}

func castNative(c *nativeColumn, target *NativeDtype) (*nativeColumn, error) {
	if c.dt == target {
		return c, nil
	}
	if target == Object {
		return nil, fmt.Errorf("%w: object is not an arrow type", arrow.ErrInvalid)
	}
	out, err := compute.CastArray(context.Background(), c.arr, compute.SafeCastOptions(target.typ))
	if err != nil {
		return nil, err
	}
	return &nativeColumn{arr: out, dt: target}, nil
}
