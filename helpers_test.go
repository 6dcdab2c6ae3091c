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

package extarray_test

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/bigdecimal"
	"github.com/apache/arrow/go/extarray/decimalarray"
	"github.com/apache/arrow/go/extarray/internal/testing/tools"
	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimals(t *testing.T, vals ...string) extarray.ExtensionArray {
	t.Helper()
	arr, err := decimalarray.FromStrings(vals)
	require.NoError(t, err)
	return arr
}

func strs(arr extarray.ExtensionArray) []string {
	out := make([]string, arr.Len())
	for i := range out {
		out[i] = arr.Value(i).(*apd.Decimal).String()
	}
	return out
}

func TestMissingHelpers(t *testing.T) {
	arr := decimals(t, "1", "NaN", "3", "NaN")
	assert.Equal(t, tools.Bools(0, 1, 0, 1), extarray.IsNAMask(arr))
	assert.Equal(t, 2, extarray.CountNA(arr))

	dropped, err := extarray.DropNA(arr)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, strs(dropped))

	filled, err := extarray.FillNA(arr, bigdecimal.FromInt64(0))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "0", "3", "0"}, strs(filled))
	assert.True(t, arr.IsNA(1), "FillNA must not modify its input")

	filled, err = extarray.FillNA(arr, decimals(t, "9", "8", "7", "6"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "8", "3", "6"}, strs(filled))

	_, err = extarray.FillNA(arr, decimals(t, "1"))
	assert.ErrorIs(t, err, arrow.ErrInvalid)
	_, err = extarray.FillNA(arr, 0.5)
	assert.ErrorIs(t, err, arrow.ErrType)
}

func TestFillIndexer(t *testing.T) {
	mask := tools.Bools(1, 0, 1, 1, 1, 0, 1)
	assert.Equal(t, tools.Ints(0, 1, 1, 1, 1, 5, 5), extarray.FillIndexer(mask, extarray.Pad, 0))
	assert.Equal(t, tools.Ints(0, 1, 1, 1, 4, 5, 5), extarray.FillIndexer(mask, extarray.Pad, 2))
	assert.Equal(t, tools.Ints(1, 1, 5, 5, 5, 5, 6), extarray.FillIndexer(mask, extarray.Backfill, 0))
	assert.Equal(t, tools.Ints(1, 1, 2, 5, 5, 5, 6), extarray.FillIndexer(mask, extarray.Backfill, 2))
}

func TestFillNAMethod(t *testing.T) {
	arr := decimals(t, "NaN", "1", "NaN", "NaN", "2")
	out, err := extarray.FillNAMethod(arr, extarray.Pad, 1)
	require.NoError(t, err)
	assert.Equal(t, tools.Bools(1, 0, 0, 1, 0), extarray.IsNAMask(out))
	assert.Equal(t, "1", strs(out)[2])

	out, err = extarray.FillNAMethod(arr, extarray.Backfill, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "1", "2", "2", "2"}, strs(out))
}

func TestParseFillMethod(t *testing.T) {
	for s, want := range map[string]extarray.FillMethod{
		"pad": extarray.Pad, "ffill": extarray.Pad, "BFILL": extarray.Backfill, "backfill": extarray.Backfill,
	} {
		got, err := extarray.ParseFillMethod(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := extarray.ParseFillMethod("nearest")
	assert.ErrorIs(t, err, arrow.ErrInvalid)
	assert.Equal(t, "backfill", extarray.Backfill.String())
}

func TestShift(t *testing.T) {
	arr := decimals(t, "1", "2", "3")

	out, err := extarray.Shift(arr, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, tools.Bools(1, 0, 0), extarray.IsNAMask(out))
	assert.Equal(t, []string{"1", "2"}, strs(out)[1:])

	out, err = extarray.Shift(arr, -1, bigdecimal.FromInt64(0))
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3", "0"}, strs(out))

	out, err = extarray.Shift(arr, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, extarray.CountNA(out))
}

func TestArgsort(t *testing.T) {
	arr := decimals(t, "2", "NaN", "1", "2", "3")
	assert.Equal(t, tools.Ints(2, 0, 3, 4, 1), extarray.Argsort(arr, true))
	assert.Equal(t, tools.Ints(4, 0, 3, 2, 1), extarray.Argsort(arr, false))
}

func TestFactorizeAndUnique(t *testing.T) {
	arr := decimals(t, "2", "NaN", "1", "2.0", "NaN")

	codes, uniques, err := extarray.Factorize(arr, false)
	require.NoError(t, err)
	assert.Equal(t, tools.Ints(0, -1, 1, 0, -1), codes)
	assert.Equal(t, []string{"2", "1"}, strs(uniques))

	codes, uniques, err = extarray.Factorize(arr, true)
	require.NoError(t, err)
	assert.Equal(t, tools.Ints(1, -1, 0, 1, -1), codes)
	assert.Equal(t, []string{"1", "2"}, strs(uniques))

	u, err := extarray.Unique(arr)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "NaN", "1"}, strs(u))

	_, _, err = extarray.ValueCounts(arr, true)
	assert.ErrorIs(t, err, arrow.ErrNotImplemented)
}

func TestEqualConcatFormat(t *testing.T) {
	a := decimals(t, "1", "NaN")
	naEq := func(x, y any) bool { return bigdecimal.NACompare(x.(*apd.Decimal), y.(*apd.Decimal)) }
	assert.True(t, extarray.Equal(a, a.Copy(), naEq))
	assert.False(t, extarray.Equal(a, a.Copy(), decimalarray.Dtype.ScalarEqual))
	assert.False(t, extarray.Equal(a, a.Slice(0, 1), naEq))

	out, err := extarray.Concat(a, decimals(t, "5"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "NaN", "5"}, strs(out))
	_, err = extarray.Concat()
	assert.ErrorIs(t, err, arrow.ErrInvalid)

	assert.Len(t, extarray.ToSlice(a), 2)
	assert.Equal(t, "<DecimalArray>\n[1, NaN]\nLength: 2, dtype: decimal", extarray.Format("DecimalArray", a,
		func(i int) string { return a.Value(i).(*apd.Decimal).String() }))
}
