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
	"math/rand/v2"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/bigdecimal"
	"github.com/apache/arrow/go/extarray/conformance"
	"github.com/apache/arrow/go/extarray/decimalarray"
	"github.com/apache/arrow/go/extarray/frame"
	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func mustStrings(vals ...string) func() extarray.ExtensionArray {
	return func() extarray.ExtensionArray {
		arr, err := decimalarray.FromStrings(vals)
		if err != nil {
			panic(err)
		}
		return arr
	}
}

func naCmp(a, b any) bool {
	x, err := bigdecimal.FromValue(a, true)
	if err != nil {
		return false
	}
	y, err := bigdecimal.FromValue(b, true)
	if err != nil {
		return false
	}
	return bigdecimal.NACompare(x, y)
}

// untrappedContext computes with division by zero and invalid operations
// producing Infinity and NaN instead of errors.
func untrappedContext() context.Context {
	c := bigdecimal.NewContext()
	c.SetTraps(c.Traps() &^ (bigdecimal.DivisionByZero | bigdecimal.InvalidOperation))
	return bigdecimal.WithContext(context.Background(), c)
}

func decimalConfig() *conformance.Config {
	data := func() extarray.ExtensionArray {
		return decimalarray.New(decimalarray.MakeData(decimalarray.DefaultDataSize, 0))
	}
	return &conformance.Config{
		Dtype:                 func() extarray.ExtensionDtype { return decimalarray.Dtype },
		Data:                  data,
		DataSize:              decimalarray.DefaultDataSize,
		DataMissing:           mustStrings("NaN", "1"),
		DataRepeated:          conformance.Repeated(data),
		DataForSorting:        mustStrings("1", "2", "0"),
		DataMissingForSorting: mustStrings("1", "NaN", "0"),
		DataForGrouping:       mustStrings("1", "1", "NaN", "NaN", "0", "0", "1", "2"),

		NAValue:              bigdecimal.NaN(),
		NACmp:                naCmp,
		MissingAwareEquality: true,
		SupportsArithmetic:   true,
		SupportsComparison:   true,
		Context:              untrappedContext,

		ExpectedFailures: map[string]string{
			"TestFromDtype":   "decimal arrays cannot be built from native dtypes",
			"TestValueCounts": "value counts are not implemented for decimal",
		},
	}
}

func TestDtype(t *testing.T) {
	suite.Run(t, &decimalDtype{conformance.DtypeSuite{Base: conformance.Base{Cfg: decimalConfig()}}})
}

func TestInterface(t *testing.T) {
	suite.Run(t, &conformance.InterfaceSuite{Base: conformance.Base{Cfg: decimalConfig()}})
}

func TestConstructors(t *testing.T) {
	suite.Run(t, &conformance.ConstructorsSuite{Base: conformance.Base{Cfg: decimalConfig()}})
}

func TestReshaping(t *testing.T) {
	suite.Run(t, &conformance.ReshapingSuite{Base: conformance.Base{Cfg: decimalConfig()}})
}

func TestGetitem(t *testing.T) {
	suite.Run(t, &decimalGetitem{conformance.GetitemSuite{Base: conformance.Base{Cfg: decimalConfig()}}})
}

func TestMissing(t *testing.T) {
	suite.Run(t, &conformance.MissingSuite{Base: conformance.Base{Cfg: decimalConfig()}})
}

func TestMethods(t *testing.T) {
	suite.Run(t, &conformance.MethodsSuite{Base: conformance.Base{Cfg: decimalConfig()}})
}

func TestCasting(t *testing.T) {
	suite.Run(t, &conformance.CastingSuite{Base: conformance.Base{Cfg: decimalConfig()}})
}

func TestGroupBy(t *testing.T) {
	suite.Run(t, &conformance.GroupBySuite{Base: conformance.Base{Cfg: decimalConfig()}})
}

func TestArithmeticOps(t *testing.T) {
	suite.Run(t, &decimalArithmetic{conformance.ArithmeticOpsSuite{Base: conformance.Base{Cfg: decimalConfig()}}})
}

func TestComparisonOps(t *testing.T) {
	suite.Run(t, &decimalComparison{conformance.ComparisonOpsSuite{Base: conformance.Base{Cfg: decimalConfig()}}})
}

type decimalDtype struct{ conformance.DtypeSuite }

func (s *decimalDtype) TestArrayTypeWithArg() {
	s.Equal("DecimalArray", decimalarray.Dtype.ConstructArrayType().Name())
	s.Equal("decimal", decimalarray.Dtype.Name())
	s.True(decimalarray.Dtype.IsDtype(decimalarray.Dtype))
}

type decimalGetitem struct{ conformance.GetitemSuite }

func (s *decimalGetitem) TestTakeNAValueOtherDecimal() {
	arr := decimalarray.New([]*apd.Decimal{bigdecimal.MustParse("1.0"), bigdecimal.MustParse("2.0")})
	out, err := arr.Take([]int{0, -1}, true, bigdecimal.MustParse("-1.0"))
	s.Require().NoError(err)
	s.Equal("1.0", out.Value(0).(*apd.Decimal).String())
	s.Equal("-1.0", out.Value(1).(*apd.Decimal).String())

	_, err = arr.Take([]int{0, -1}, true, -1.0)
	s.ErrorIs(err, arrow.ErrType)
}

type decimalArithmetic struct{ conformance.ArithmeticOpsSuite }

func (s *decimalArithmetic) TestArithSeriesWithIntegers() {
	data := s.Cfg.Data()
	ser := s.Series(data)
	c := bigdecimal.Default()
	hundred := bigdecimal.FromInt64(100)

	ints := make([]int, data.Len())
	for i := range ints {
		scaled, err := c.Mul(data.Value(i).(*apd.Decimal), hundred)
		s.Require().NoError(err)
		whole, err := c.Truncate(scaled)
		s.Require().NoError(err)
		v, err := whole.Int64()
		s.Require().NoError(err)
		ints[i] = int(v)
	}
	other, err := frame.NewSeries(ints)
	s.Require().NoError(err)

	doubled, err := ser.Arith(s.Ctx(), extarray.OpMul, 2)
	s.Require().NoError(err)

	for _, op := range extarray.AllArithmeticOps {
		s.CheckOpname(s.Ctx(), ser, op, other, nil)
		s.CheckOpname(s.Ctx(), ser, op, 0, nil)
		s.CheckOpname(s.Ctx(), ser, op, 5, nil)
		if op.Unreflected() != extarray.OpMod {
			s.CheckOpname(s.Ctx(), ser, op, doubled, nil)
		}
	}
}

func (s *decimalArithmetic) TestIntegerOperandTruncatesInDecimal() {
	c := bigdecimal.Default()
	scaled, err := c.Mul(bigdecimal.MustParse("0.29"), bigdecimal.FromInt64(100))
	s.Require().NoError(err)
	whole, err := c.Truncate(scaled)
	s.Require().NoError(err)
	v, err := whole.Int64()
	s.Require().NoError(err)
	s.EqualValues(29, v)
}

func (s *decimalArithmetic) TestArithRejectsFloats() {
	ser := s.Series(s.Cfg.Data())
	for _, op := range extarray.AllArithmeticOps {
		s.CheckOpname(s.Ctx(), ser, op, 0.5, arrow.ErrType)
	}
}

func (s *decimalArithmetic) TestDivmod() {
	ser := s.Series(s.Cfg.Data())
	s.CheckOpname(s.Ctx(), ser, extarray.OpDivMod, 1, arrow.ErrNotImplemented)
	s.CheckOpname(s.Ctx(), ser, extarray.OpRDivMod, 1, arrow.ErrNotImplemented)
}

func (s *decimalArithmetic) TestDivisionByZeroTrapped() {
	ser := s.Series(s.Cfg.Data())
	_, err := ser.Arith(context.Background(), extarray.OpTrueDiv, 0)
	s.ErrorIs(err, bigdecimal.ErrDivisionByZero)

	err = bigdecimal.Default().Scoped(bigdecimal.DivisionByZero, func(*bigdecimal.Context) error {
		out, err := ser.Arith(context.Background(), extarray.OpTrueDiv, 0)
		if err != nil {
			return err
		}
		v, err := out.ILoc(0)
		s.Require().NoError(err)
		s.True(v.(*apd.Decimal).Form == apd.Infinite)
		return nil
	})
	s.NoError(err)
	s.True(bigdecimal.Default().Trapped(bigdecimal.DivisionByZero))
}

type decimalComparison struct{ conformance.ComparisonOpsSuite }

func (s *decimalComparison) TestCompareFloat() {
	ser := s.Series(s.Cfg.Data())
	for _, op := range extarray.AllCompareOps {
		s.CheckCompare(s.Ctx(), ser, op, 0.5)
	}
}

func (s *decimalComparison) TestCompareArrayPerturbed() {
	data := s.Cfg.Data()
	s.checkPerturbed(data, rand.New(rand.NewPCG(0, uint64(data.Len()))))
}

func (s *decimalComparison) TestCompareArrayPerturbedSigned() {
	arr, err := decimalarray.FromStrings([]string{"-3.5", "-1", "0", "0.25", "2", "-0.125", "7"})
	s.Require().NoError(err)
	for seed := uint64(0); seed < 4; seed++ {
		s.checkPerturbed(arr, rand.New(rand.NewPCG(seed, 42)))
	}
}

// checkPerturbed compares data against a copy with each value scaled by a
// factor drawn uniformly from 2, 0.5 and 1.
func (s *decimalComparison) checkPerturbed(data extarray.ExtensionArray, rng *rand.Rand) {
	ser := s.Series(data)
	factors := []*apd.Decimal{bigdecimal.FromInt64(2), bigdecimal.MustParse("0.5"), bigdecimal.FromInt64(1)}
	c := bigdecimal.Default()

	picks := make([]int, data.Len())
	vals := make([]any, data.Len())
	for i := range vals {
		picks[i] = rng.IntN(len(factors))
		v, err := c.Mul(data.Value(i).(*apd.Decimal), factors[picks[i]])
		s.Require().NoError(err)
		vals[i] = v
	}
	arr, err := decimalarray.FromSequence(vals)
	s.Require().NoError(err)
	other := s.Series(arr)

	for _, op := range extarray.AllCompareOps {
		s.CheckCompare(s.Ctx(), ser, op, other)
	}

	lt, err := ser.Compare(s.Ctx(), extarray.OpLt, other)
	s.Require().NoError(err)
	gt, err := ser.Compare(s.Ctx(), extarray.OpGt, other)
	s.Require().NoError(err)
	for i := 0; i < data.Len(); i++ {
		d := data.Value(i).(*apd.Decimal)
		if d.IsZero() {
			continue
		}
		l, err := lt.ILoc(i)
		s.Require().NoError(err)
		g, err := gt.ILoc(i)
		s.Require().NoError(err)

		// Doubling moves a value away from zero, halving towards it.
		grows := picks[i] == 0
		if d.Negative {
			grows = picks[i] == 1
		}
		switch {
		case picks[i] == 2:
			s.False(l.(bool) || g.(bool), "position %d", i)
		case grows:
			s.True(l.(bool), "position %d", i)
		default:
			s.True(g.(bool), "position %d", i)
		}
	}
}

func TestSeriesRejectsOtherDtype(t *testing.T) {
	arr := decimalarray.New(decimalarray.MakeData(5, 1))
	_, err := frame.NewSeries(arr, frame.WithDtype("int64"))
	assert.ErrorIs(t, err, arrow.ErrInvalid)
	assert.ErrorContains(t, err, "Cannot specify a dtype")

	s, err := frame.NewSeries(arr, frame.WithDtype(decimalarray.Dtype))
	require.NoError(t, err)
	assert.True(t, frame.DtypeEqual(decimalarray.Dtype, s.Dtype()))
}

func TestFrameRejectsOtherDtype(t *testing.T) {
	arr := decimalarray.New(decimalarray.MakeData(5, 1))
	_, err := frame.NewFrame([]frame.Column{{Name: "A", Data: arr}}, frame.WithDtype("int64"))
	assert.ErrorIs(t, err, arrow.ErrInvalid)
	assert.ErrorContains(t, err, "Cannot coerce extension array to dtype 'int64'")
}

func TestNativeDataToDecimalDtype(t *testing.T) {
	_, err := frame.NewSeries([]float64{1, 2}, frame.WithDtype(decimalarray.Dtype))
	assert.ErrorIs(t, err, arrow.ErrInvalid)

	_, err = frame.NewSeries([]float64{1, 2}, frame.WithDtype("decimal"))
	assert.ErrorIs(t, err, arrow.ErrInvalid)
}

func TestDecimalScalarsInferObject(t *testing.T) {
	s, err := frame.NewSeries([]any{bigdecimal.MustParse("1.5"), bigdecimal.MustParse("2")})
	require.NoError(t, err)
	assert.Equal(t, frame.Object, s.Dtype())
	assert.False(t, frame.IsExtensionArrayDtype(s.Dtype()))
}

func TestDropNAEndToEnd(t *testing.T) {
	arr, err := decimalarray.FromStrings([]string{"1.1", "NaN", "3.3", "NaN"})
	require.NoError(t, err)
	df, err := frame.NewFrame([]frame.Column{
		{Name: "A", Data: arr},
		{Name: "B", Data: []int{1, 2, 3, 4}},
	})
	require.NoError(t, err)

	out, err := df.DropNA()
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, []any{int64(0), int64(2)}, out.Index().Labels())

	col, err := out.Col("A")
	require.NoError(t, err)
	assert.Equal(t, 2, col.Count())
	v, err := col.ILoc(1)
	require.NoError(t, err)
	assert.Equal(t, "3.3", v.(*apd.Decimal).String())
}
