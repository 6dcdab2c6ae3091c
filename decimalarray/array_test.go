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

package decimalarray_test

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/bigdecimal"
	"github.com/apache/arrow/go/extarray/decimalarray"
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

func strs(arr extarray.ExtensionArray) []string {
	out := make([]string, arr.Len())
	for i := range out {
		out[i] = arr.Value(i).(*apd.Decimal).String()
	}
	return out
}

func TestConstruction(t *testing.T) {
	arr := decimalarray.New([]*apd.Decimal{bigdecimal.MustParse("1.5"), nil})
	assert.Equal(t, 2, arr.Len())
	assert.True(t, arr.IsNA(1))

	_, err := decimalarray.FromSequence([]any{bigdecimal.MustParse("1"), 2})
	assert.ErrorIs(t, err, arrow.ErrType)
	assert.ErrorContains(t, err, "position 1")

	seq, err := decimalarray.FromSequence([]any{nil, *bigdecimal.MustParse("3.0")})
	require.NoError(t, err)
	assert.True(t, seq.IsNA(0))
	assert.Equal(t, "3.0", seq.Decimal(1).String())

	_, err = decimalarray.FromStrings([]string{"1", "x"})
	assert.Error(t, err)
}

func TestMakeDataDeterministic(t *testing.T) {
	a := decimalarray.MakeData(10, 42)
	b := decimalarray.MakeData(10, 42)
	require.Len(t, a, 10)
	for i := range a {
		assert.Equal(t, a[i].String(), b[i].String())
		assert.False(t, a[i].Negative)
		assert.Negative(t, a[i].Cmp(bigdecimal.FromInt64(1)))
	}
	c := decimalarray.MakeData(10, 43)
	assert.NotEqual(t, a[0].String(), c[0].String())
}

func TestSetValue(t *testing.T) {
	arr := decimals(t, "1", "2")
	require.NoError(t, arr.SetValue(0, 7))
	require.NoError(t, arr.SetValue(1, nil))
	assert.Equal(t, "7", arr.Decimal(0).String())
	assert.True(t, arr.IsNA(1))

	assert.ErrorIs(t, arr.SetValue(2, 1), arrow.ErrIndex)
	assert.ErrorIs(t, arr.SetValue(0, 1.5), arrow.ErrType)
}

func TestTake(t *testing.T) {
	arr := decimals(t, "1", "2", "3")

	out, err := arr.Take([]int{2, -1, 0}, false, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "3", "1"}, strs(out))

	out, err = arr.Take([]int{2, -1, 0}, true, nil)
	require.NoError(t, err)
	assert.True(t, out.IsNA(1))

	out, err = arr.Take([]int{-1}, true, bigdecimal.MustParse("0.50"))
	require.NoError(t, err)
	assert.Equal(t, []string{"0.50"}, strs(out))

	_, err = arr.Take([]int{-2}, true, nil)
	assert.ErrorIs(t, err, arrow.ErrInvalid)
	_, err = arr.Take([]int{3}, false, nil)
	assert.ErrorIs(t, err, arrow.ErrIndex)
	_, err = arr.Take([]int{-1}, true, "0")
	assert.ErrorIs(t, err, arrow.ErrType)
}

func TestCopyAndSliceAreIndependent(t *testing.T) {
	arr := decimals(t, "1", "2", "3")
	cp := arr.Copy()
	sl := arr.Slice(1, 3)
	require.NoError(t, arr.SetValue(1, 9))
	assert.Equal(t, []string{"1", "2", "3"}, strs(cp))
	assert.Equal(t, []string{"2", "3"}, strs(sl))
}

func TestConcatSameType(t *testing.T) {
	a, b := decimals(t, "1"), decimals(t, "2", "NaN")
	out, err := extarray.Concat(a, b)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Len())
	assert.True(t, out.IsNA(2))
	assert.Equal(t, "2", strs(out)[1])
}

func TestNBytesAndLess(t *testing.T) {
	arr := decimals(t, "1", "NaN", "0.5")
	assert.Positive(t, arr.NBytes())
	assert.Less(t, arr.Slice(0, 1).NBytes(), arr.NBytes())

	assert.True(t, arr.Less(2, 0))
	assert.False(t, arr.Less(0, 2))
	assert.False(t, arr.Less(0, 1))
	assert.False(t, arr.Less(1, 0))
}

func TestValuesForFactorize(t *testing.T) {
	arr := decimals(t, "1.0", "1.00", "NaN", "-0")
	keys := arr.ValuesForFactorize()
	assert.Equal(t, keys[0], keys[1])
	assert.Equal(t, "NaN", keys[2])
	assert.Equal(t, "0", keys[3])

	codes, uniques, err := extarray.Factorize(arr, false)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, -1, 1}, codes)
	assert.Equal(t, 2, uniques.Len())
}

func TestString(t *testing.T) {
	arr := decimals(t, "1.5", "NaN")
	assert.Equal(t, "<DecimalArray>\n[1.5, NaN]\nLength: 2, dtype: decimal", arr.String())

	long := decimalarray.New(make([]*apd.Decimal, 12))
	assert.Contains(t, long.String(), "NaN, ..., NaN")
	assert.Contains(t, long.String(), "Length: 12")
}

func TestArith(t *testing.T) {
	ctx := context.Background()
	arr := decimals(t, "1.5", "NaN", "-2")

	out, err := arr.Arith(ctx, extarray.OpAdd, 1)
	require.NoError(t, err)
	assert.Equal(t, "2.5", strs(out)[0])
	assert.True(t, out.IsNA(1))
	assert.Equal(t, "-1", strs(out)[2])

	out, err = arr.Arith(ctx, extarray.OpRSub, []int{10, 10, 10})
	require.NoError(t, err)
	assert.Equal(t, "8.5", strs(out)[0])
	assert.Equal(t, "12", strs(out)[2])

	out, err = arr.Arith(ctx, extarray.OpMul, arr)
	require.NoError(t, err)
	assert.Equal(t, "2.25", strs(out)[0])

	out, err = decimals(t, "7").Arith(ctx, extarray.OpFloorDiv, 2)
	require.NoError(t, err)
	assert.Equal(t, "3", strs(out)[0])

	out, err = decimals(t, "-7").Arith(ctx, extarray.OpMod, 2)
	require.NoError(t, err)
	assert.Equal(t, "-1", strs(out)[0])

	out, err = decimals(t, "2").Arith(ctx, extarray.OpRPow, 3)
	require.NoError(t, err)
	assert.Zero(t, out.Value(0).(*apd.Decimal).Cmp(bigdecimal.FromInt64(9)))

	_, err = arr.Arith(ctx, extarray.OpAdd, 1.5)
	assert.ErrorIs(t, err, arrow.ErrType)
	_, err = arr.Arith(ctx, extarray.OpAdd, []int{1})
	assert.ErrorIs(t, err, arrow.ErrInvalid)
	_, err = arr.Arith(ctx, extarray.OpDivMod, 1)
	assert.ErrorIs(t, err, arrow.ErrNotImplemented)

	_, err = arr.Arith(ctx, extarray.OpTrueDiv, 0)
	assert.ErrorIs(t, err, bigdecimal.ErrDivisionByZero)
	assert.True(t, bigdecimal.IsConditionError(err))
}

func TestArithWithContext(t *testing.T) {
	c := bigdecimal.NewContext()
	c.SetTraps(c.Traps() &^ bigdecimal.DivisionByZero)
	ctx := bigdecimal.WithContext(context.Background(), c)

	out, err := decimals(t, "1", "-1").Arith(ctx, extarray.OpTrueDiv, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Infinity", "-Infinity"}, strs(out))

	_, err = decimals(t, "0").Arith(ctx, extarray.OpTrueDiv, 0)
	assert.ErrorIs(t, err, bigdecimal.ErrInvalidOperation)
}

func TestCompare(t *testing.T) {
	ctx := context.Background()
	arr := decimals(t, "0.5", "NaN", "2")

	out, err := arr.Compare(ctx, extarray.OpLt, 1.0)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, out)

	out, err = arr.Compare(ctx, extarray.OpNe, 2)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false}, out)

	out, err = arr.Compare(ctx, extarray.OpEq, []float64{0.5, 0, 3})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, out)

	_, err = arr.Compare(ctx, extarray.OpEq, "x")
	assert.ErrorIs(t, err, arrow.ErrType)
}

func TestDtypeScalars(t *testing.T) {
	dt := decimalarray.Dtype
	assert.Equal(t, dt, extarray.GetDtype("decimal"))
	assert.True(t, dt.IsNA(nil))
	assert.True(t, dt.IsNA(bigdecimal.NaN()))
	assert.False(t, dt.IsNA(bigdecimal.FromInt64(0)))
	assert.True(t, dt.ScalarEqual(bigdecimal.MustParse("1.0"), 1))
	assert.False(t, dt.ScalarEqual(bigdecimal.NaN(), bigdecimal.NaN()))

	got, err := dt.ConstructFromString("decimal")
	require.NoError(t, err)
	assert.Equal(t, dt, got)
	_, err = dt.ConstructFromString("decimal128")
	assert.ErrorIs(t, err, arrow.ErrType)

	v, err := dt.ScalarArith(context.Background(), extarray.OpSub, bigdecimal.FromInt64(3), 1)
	require.NoError(t, err)
	assert.Equal(t, "2", v.(*apd.Decimal).String())
	_, err = dt.ScalarArith(context.Background(), extarray.OpSub, bigdecimal.FromInt64(3), 0.5)
	assert.ErrorIs(t, err, arrow.ErrType)

	ok, err := dt.ScalarCompare(context.Background(), extarray.OpGt, bigdecimal.FromInt64(3), 0.5)
	require.NoError(t, err)
	assert.True(t, ok)
}
