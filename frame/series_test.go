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

package frame_test

import (
	"context"
	"math"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/bigdecimal"
	"github.com/apache/arrow/go/extarray/decimalarray"
	"github.com/apache/arrow/go/extarray/frame"
	"github.com/apache/arrow/go/extarray/internal/testing/tools"
	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimals(t *testing.T, vals ...string) *decimalarray.DecimalArray {
	t.Helper()
	arr, err := decimalarray.FromStrings(vals)
	require.NoError(t, err)
	return arr
}

func TestParseDtype(t *testing.T) {
	tests := []struct {
		in   any
		want frame.Dtype
	}{
		{nil, nil},
		{"int64", frame.Int64},
		{"float64", frame.Float64},
		{"bool", frame.Bool},
		{"string", frame.String},
		{"object", frame.Object},
		{"decimal", decimalarray.Dtype},
		{decimalarray.Dtype, decimalarray.Dtype},
		{arrow.PrimitiveTypes.Int64, frame.Int64},
	}
	for _, tt := range tests {
		got, err := frame.ParseDtype(tt.in)
		require.NoError(t, err, "%v", tt.in)
		assert.True(t, frame.DtypeEqual(tt.want, got), "%v: got %v", tt.in, got)
	}

	_, err := frame.ParseDtype("complex256")
	assert.ErrorIs(t, err, arrow.ErrType)
	assert.ErrorContains(t, err, "data type 'complex256' not understood")
}

func TestDtypePredicates(t *testing.T) {
	assert.True(t, frame.IsExtensionArrayDtype(decimalarray.Dtype))
	assert.True(t, frame.IsExtensionArrayDtype("decimal"))
	assert.False(t, frame.IsExtensionArrayDtype(frame.Int64))
	assert.True(t, frame.IsNumericDtype(frame.Float64))
	assert.False(t, frame.IsNumericDtype(frame.String))
	assert.True(t, frame.IsObjectDtype(frame.Object))
	assert.True(t, frame.IsStringDtype(frame.String))
}

func TestSeriesFromExtensionArray(t *testing.T) {
	arr := decimals(t, "1.5", "NaN", "3")
	s, err := frame.NewSeries(arr, frame.WithName("d"))
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "d", s.Name())
	assert.True(t, frame.DtypeEqual(decimalarray.Dtype, s.Dtype()))
	assert.Equal(t, tools.Bools(0, 1, 0), s.NAMask())
	assert.Equal(t, 2, s.Count())

	got, ok := s.Array()
	require.True(t, ok)
	assert.Same(t, arr, got)

	dt, ok := extarray.DtypeOf(s)
	require.True(t, ok)
	assert.Equal(t, "decimal", dt.Name())
}

func TestSeriesDtypeCoercion(t *testing.T) {
	arr := decimals(t, "1", "2", "3")

	_, err := frame.NewSeries([]int{1, 2, 3}, frame.WithDtype("decimal"))
	assert.ErrorIs(t, err, arrow.ErrInvalid)
	assert.ErrorContains(t, err, "Cannot cast data to extension dtype 'decimal'. Pass the extension array directly.")

	_, err = frame.NewSeries(arr, frame.WithDtype("int64"))
	assert.ErrorIs(t, err, arrow.ErrInvalid)
	assert.ErrorContains(t, err, "Cannot specify a dtype 'int64' with an extension array of a different dtype ('decimal').")

	tagged, err := frame.NewSeries(arr, frame.WithDtype(decimalarray.Dtype))
	require.NoError(t, err)
	assert.NoError(t, frame.SeriesEqual(frame.MustSeries(arr), tagged))

	_, err = frame.NewSeries(arr, frame.WithIndex([]int{1, 2, 3, 4, 5}))
	assert.ErrorIs(t, err, arrow.ErrInvalid)
	assert.ErrorContains(t, err, "Length of passed values is 3, index implies 5")
}

func TestSeriesNative(t *testing.T) {
	s := frame.MustSeries([]float64{1, math.NaN(), 3}, frame.WithIndex([]string{"a", "b", "c"}))
	assert.True(t, frame.DtypeEqual(frame.Float64, s.Dtype()))
	assert.Equal(t, tools.Bools(0, 1, 0), s.NAMask())

	v, err := s.At("c")
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	v, err = s.ILoc(-1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	_, err = s.At("z")
	assert.ErrorIs(t, err, arrow.ErrIndex)

	filled, err := s.FillNA(2.0)
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, filled.ToList())

	dropped, err := s.DropNA()
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "c"}, dropped.Index().Labels())
}

func TestSeriesInference(t *testing.T) {
	tests := []struct {
		data any
		want frame.Dtype
	}{
		{[]any{int64(1), nil, 3}, frame.Int64},
		{[]any{1, 2.5}, frame.Float64},
		{[]any{true, false}, frame.Bool},
		{[]any{"x", nil}, frame.String},
		{[]any{"x", 1}, frame.Object},
		{[]any{bigdecimal.FromInt64(1)}, frame.Object},
	}
	for _, tt := range tests {
		s, err := frame.NewSeries(tt.data)
		require.NoError(t, err)
		assert.True(t, frame.DtypeEqual(tt.want, s.Dtype()), "%v: got %s", tt.data, s.Dtype())
	}
}

func TestSeriesTakeReindex(t *testing.T) {
	s := frame.MustSeries(decimals(t, "1", "2", "3"), frame.WithIndex([]string{"a", "b", "c"}))

	taken, err := s.Take(tools.Ints(2, -3))
	require.NoError(t, err)
	assert.Equal(t, []any{"c", "a"}, taken.Index().Labels())
	assert.Equal(t, "3", taken.ToList()[0].(*apd.Decimal).String())

	re, err := s.Reindex([]any{"b", "x"}, nil)
	require.NoError(t, err)
	assert.Equal(t, tools.Bools(0, 1), re.NAMask())

	fill := bigdecimal.MustParse("-1.0")
	re, err = s.Reindex([]any{"b", "x"}, fill)
	require.NoError(t, err)
	assert.Equal(t, "-1.0", re.ToList()[1].(*apd.Decimal).String())
}

func TestSeriesFillNAMethod(t *testing.T) {
	s := frame.MustSeries([]any{1, nil, nil, 4})

	padded, err := s.FillNAMethod(extarray.Pad, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(1), int64(1), int64(4)}, padded.ToList())

	limited, err := s.FillNAMethod(extarray.Backfill, 1)
	require.NoError(t, err)
	assert.Equal(t, tools.Bools(0, 1, 0, 0), limited.NAMask())

	d := frame.MustSeries(decimals(t, "NaN", "2", "NaN"))
	back, err := d.FillNAMethod(extarray.Backfill, 0)
	require.NoError(t, err)
	assert.Equal(t, tools.Bools(0, 0, 1), back.NAMask())
}

func TestSeriesShift(t *testing.T) {
	s := frame.MustSeries([]int{1, 2, 3})
	shifted, err := s.Shift(1, nil)
	require.NoError(t, err)
	assert.Equal(t, tools.Bools(1, 0, 0), shifted.NAMask())

	shifted, err = s.Shift(-1, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(2), int64(3), int64(0)}, shifted.ToList())
}

func TestSeriesArith(t *testing.T) {
	ctx := context.Background()
	d := frame.MustSeries(decimals(t, "1.5", "NaN", "3"))

	sum, err := d.Arith(ctx, extarray.OpAdd, 1)
	require.NoError(t, err)
	assert.True(t, frame.DtypeEqual(decimalarray.Dtype, sum.Dtype()))
	assert.Equal(t, "2.5", sum.ToList()[0].(*apd.Decimal).String())
	assert.Equal(t, tools.Bools(0, 1, 0), sum.NAMask())

	n := frame.MustSeries([]int{1, 2, 3})
	prod, err := n.Arith(ctx, extarray.OpMul, n)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(4), int64(9)}, prod.ToList())

	quo, err := n.Arith(ctx, extarray.OpTrueDiv, 2)
	require.NoError(t, err)
	assert.Equal(t, []any{0.5, 1.0, 1.5}, quo.ToList())

	mixed, err := n.Arith(ctx, extarray.OpAdd, d)
	require.NoError(t, err)
	assert.True(t, frame.DtypeEqual(decimalarray.Dtype, mixed.Dtype()))
	assert.Equal(t, "2.5", mixed.ToList()[0].(*apd.Decimal).String())
}

func TestSeriesCompare(t *testing.T) {
	ctx := context.Background()
	d := frame.MustSeries(decimals(t, "0.25", "NaN", "3"))
	lt, err := d.Compare(ctx, extarray.OpLt, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []any{true, false, false}, lt.ToList())

	ne, err := d.Compare(ctx, extarray.OpNe, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []any{true, true, true}, ne.ToList())

	n := frame.MustSeries([]any{1, nil, 3})
	ge, err := n.Compare(ctx, extarray.OpGe, 2)
	require.NoError(t, err)
	assert.Equal(t, []any{false, false, true}, ge.ToList())
}

func TestSeriesCombineApply(t *testing.T) {
	d := frame.MustSeries(decimals(t, "1", "2"))
	out, err := d.Combine(d, func(a, b any) (any, error) {
		return bigdecimal.Default().Add(a.(*apd.Decimal), b.(*apd.Decimal))
	})
	require.NoError(t, err)
	assert.True(t, frame.DtypeEqual(decimalarray.Dtype, out.Dtype()))
	assert.Equal(t, "4", out.ToList()[1].(*apd.Decimal).String())

	strs, err := d.Apply(func(v any) (any, error) { return v.(*apd.Decimal).String(), nil })
	require.NoError(t, err)
	assert.True(t, frame.DtypeEqual(frame.String, strs.Dtype()))
}

func TestSeriesAsType(t *testing.T) {
	d := frame.MustSeries(decimals(t, "1.5", "NaN"))
	f, err := d.AsType("float64")
	require.NoError(t, err)
	assert.Equal(t, 1.5, f.ToList()[0])
	assert.Equal(t, tools.Bools(0, 1), f.NAMask())

	_, err = f.AsType(decimalarray.Dtype)
	assert.ErrorIs(t, err, arrow.ErrType)

	o, err := d.AsType("object")
	require.NoError(t, err)
	assert.True(t, frame.IsObjectDtype(o.Dtype()))
}

func TestSeriesSorting(t *testing.T) {
	d := frame.MustSeries(decimals(t, "1", "NaN", "0"))
	assert.Equal(t, []int{1, -1, 0}, d.Argsort())
	assert.Equal(t, []int{2, 0, 1}, frame.MustSeries(decimals(t, "1", "2", "0")).Argsort())

	sorted, err := d.SortValues(true)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(2), int64(0), int64(1)}, sorted.Index().Labels())

	desc, err := d.SortValues(false)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(0), int64(2), int64(1)}, desc.Index().Labels())

	n := frame.MustSeries([]any{"b", nil, "a", "b"})
	codes, uniques, err := n.Factorize(true)
	require.NoError(t, err)
	assert.Equal(t, []int{1, -1, 0, 1}, codes)
	assert.Equal(t, []any{"a", "b"}, uniques.ToList())

	u, err := n.Unique()
	require.NoError(t, err)
	assert.Equal(t, 3, u.Len())

	vc, err := n.ValueCounts(true)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(2), int64(1)}, vc.ToList())
	assert.Equal(t, []any{"b", "a"}, vc.Index().Labels())
	assert.Equal(t, "count", vc.Name())

	_, err = d.ValueCounts(true)
	assert.ErrorIs(t, err, arrow.ErrNotImplemented)
}

func TestSeriesAlign(t *testing.T) {
	a := frame.MustSeries([]int{1, 2}, frame.WithIndex([]string{"x", "y"}))
	b := frame.MustSeries([]int{3, 4}, frame.WithIndex([]string{"y", "z"}))
	l, r, err := a.Align(b)
	require.NoError(t, err)
	assert.Equal(t, []any{"x", "y", "z"}, l.Index().Labels())
	assert.Equal(t, tools.Bools(0, 0, 1), l.NAMask())
	assert.Equal(t, tools.Bools(1, 0, 0), r.NAMask())
}

func TestConcatSeries(t *testing.T) {
	a := frame.MustSeries(decimals(t, "1", "2"))
	b := frame.MustSeries(decimals(t, "NaN"))
	out, err := frame.Concat(a, b)
	require.NoError(t, err)
	assert.True(t, frame.DtypeEqual(decimalarray.Dtype, out.Dtype()))
	assert.Equal(t, []any{int64(0), int64(1), int64(0)}, out.Index().Labels())
	assert.Equal(t, tools.Bools(0, 0, 1), out.NAMask())

	ints := frame.MustSeries([]int{1})
	floats := frame.MustSeries([]float64{2.5})
	num, err := frame.Concat(ints, floats)
	require.NoError(t, err)
	assert.True(t, frame.DtypeEqual(frame.Float64, num.Dtype()))

	mixed, err := frame.Concat(a, ints)
	require.NoError(t, err)
	assert.True(t, frame.IsObjectDtype(mixed.Dtype()))
	assert.Equal(t, 3, mixed.Len())
}
