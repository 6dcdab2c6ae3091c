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
	"testing"

	"github.com/apache/arrow/go/extarray/decimalarray"
	"github.com/apache/arrow/go/extarray/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesEqualMissingValues(t *testing.T) {
	dec, err := decimalarray.FromStrings([]string{"1", "NaN"})
	require.NoError(t, err)
	s := frame.MustSeries(dec)

	err = frame.SeriesEqual(s, s)
	assert.ErrorIs(t, err, frame.ErrNotEqual)
	assert.ErrorContains(t, err, "Series values are different")

	assert.NoError(t, frame.ExtensionArrayEqual(dec, dec.Copy()))

	other, err := decimalarray.FromStrings([]string{"NaN", "1"})
	require.NoError(t, err)
	err = frame.ExtensionArrayEqual(dec, other)
	assert.ErrorIs(t, err, frame.ErrNotEqual)
	assert.ErrorContains(t, err, "NA mask")

	f := frame.MustSeries([]any{1.5, nil})
	assert.NoError(t, frame.SeriesEqual(f, f))
}

func TestSeriesEqualOptions(t *testing.T) {
	a := frame.MustSeries([]float64{1, 2}, frame.WithName("a"))
	b := frame.MustSeries([]float64{1 + 1e-9, 2}, frame.WithName("a"))
	assert.NoError(t, frame.SeriesEqual(a, b))
	assert.ErrorIs(t, frame.SeriesEqual(a, b, frame.CheckExact(true)), frame.ErrNotEqual)

	renamed := b.Rename("b")
	assert.ErrorContains(t, frame.SeriesEqual(a, renamed), "names are different")
	assert.NoError(t, frame.SeriesEqual(a, renamed, frame.CheckNames(false)))

	ints := frame.MustSeries([]int{1, 2}, frame.WithName("a"))
	assert.ErrorContains(t, frame.SeriesEqual(a, ints), "dtypes are different")
	assert.NoError(t, frame.SeriesEqual(a, ints, frame.CheckDtype(false)))

	strs := frame.MustSeries([]string{"x"})
	objs, err := strs.AsType("object")
	require.NoError(t, err)
	assert.Error(t, frame.SeriesEqual(strs, objs))
	assert.NoError(t, frame.SeriesEqual(strs, objs, frame.CheckCategorical(false)))

	reindexed := frame.MustSeries([]float64{1, 2}, frame.WithName("a"), frame.WithIndex([]int{5, 6}))
	assert.ErrorContains(t, frame.SeriesEqual(a, reindexed, frame.Obj("left")), "left.index")
}

func TestFrameEqual(t *testing.T) {
	x, err := frame.NewFrame([]frame.Column{{Name: "a", Data: []int{1}}, {Name: "b", Data: []string{"q"}}})
	require.NoError(t, err)
	y, err := frame.NewFrame([]frame.Column{{Name: "b", Data: []string{"q"}}, {Name: "a", Data: []int{1}}})
	require.NoError(t, err)

	assert.NoError(t, frame.FrameEqual(x, x))
	assert.ErrorContains(t, frame.FrameEqual(x, y), "columns are different")
	assert.NoError(t, frame.FrameEqual(x, y, frame.CheckColumnType(false)))

	z, err := frame.NewFrame([]frame.Column{{Name: "a", Data: []int{2}}, {Name: "b", Data: []string{"q"}}})
	require.NoError(t, err)
	assert.ErrorContains(t, frame.FrameEqual(x, z), `column name="a"`)
}

func TestIndexEqual(t *testing.T) {
	a, err := frame.NewIndex([]string{"x", "y"}, "k")
	require.NoError(t, err)
	b, err := frame.NewIndex([]string{"x", "y"}, "j")
	require.NoError(t, err)
	assert.ErrorContains(t, frame.IndexEqual(a, b), "names are different")
	assert.NoError(t, frame.IndexEqual(a, b, frame.CheckNames(false)))
}

func TestColumnsEqual(t *testing.T) {
	x, err := frame.NewFrame([]frame.Column{{Name: "a", Data: []int{1}}, {Name: "b", Data: []int{2}}})
	require.NoError(t, err)
	y, err := frame.NewFrame([]frame.Column{{Name: "b", Data: []int{2}}, {Name: "a", Data: []int{1}}})
	require.NoError(t, err)
	z, err := frame.NewFrame([]frame.Column{{Name: "a", Data: []int{1}}, {Name: "c", Data: []int{2}}})
	require.NoError(t, err)

	assert.NoError(t, frame.ColumnsEqual(x, x))
	err = frame.ColumnsEqual(x, y)
	assert.ErrorIs(t, err, frame.ErrNotEqual)
	assert.ErrorContains(t, err, "DataFrame.columns")
	assert.NoError(t, frame.ColumnsEqual(x, y, frame.CheckColumnType(false)))
	assert.Error(t, frame.ColumnsEqual(x, z, frame.CheckColumnType(false)))
}
