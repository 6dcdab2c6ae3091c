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

package conformance

import (
	"context"

	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/frame"
)

// Ctx returns the context operators run under, Config.Context when set.
func (b *Base) Ctx() context.Context {
	if b.Cfg.Context != nil {
		return b.Cfg.Context()
	}
	return context.Background()
}

func (b *Base) scalarOps() extarray.ScalarOps {
	ops, ok := b.dtype().(extarray.ScalarOps)
	if !ok {
		b.T().Skipf("dtype %s has no scalar operations", b.dtype())
	}
	return ops
}

// CheckOpname checks ser op other against the same operator applied
// value by value. When expectErr is not nil the operator must fail with
// it instead.
func (b *Base) CheckOpname(ctx context.Context, ser *frame.Series, op extarray.ArithmeticOp, other any, expectErr error) {
	result, err := ser.Arith(ctx, op, other)
	if expectErr != nil {
		b.Require().ErrorIsf(err, expectErr, "%s", op)
		return
	}
	b.Require().NoErrorf(err, "%s", op)

	ops := b.scalarOps()
	expected, err := ser.Combine(other, func(x, y any) (any, error) { return ops.ScalarArith(ctx, op, x, y) })
	b.Require().NoErrorf(err, "%s", op)
	b.Require().NoErrorf(b.seriesEqual(expected, result), "%s", op)
}

// CheckCompare checks ser op other against the same comparison applied
// value by value.
func (b *Base) CheckCompare(ctx context.Context, ser *frame.Series, op extarray.CompareOp, other any) {
	result, err := ser.Compare(ctx, op, other)
	b.Require().NoErrorf(err, "%s", op)
	b.True(frame.DtypeEqual(frame.Bool, result.Dtype()))

	ops := b.scalarOps()
	expected, err := ser.Combine(other, func(x, y any) (any, error) { return ops.ScalarCompare(ctx, op, x, y) })
	b.Require().NoErrorf(err, "%s", op)
	b.Require().NoErrorf(frame.SeriesEqual(expected, result), "%s", op)
}

// ArithmeticOpsSuite checks the arithmetic operators of series of the
// dtype.
type ArithmeticOpsSuite struct{ Base }

func (s *ArithmeticOpsSuite) requireArithmetic() {
	if !s.Cfg.SupportsArithmetic {
		s.T().Skip("dtype does not support arithmetic")
	}
}

func (s *ArithmeticOpsSuite) TestArithSeriesWithScalar() {
	s.requireArithmetic()
	ser := s.Series(s.Cfg.Data())
	other, err := ser.ILoc(0)
	s.Require().NoError(err)
	for _, op := range extarray.AllArithmeticOps {
		s.CheckOpname(s.Ctx(), ser, op, other, nil)
	}
}

func (s *ArithmeticOpsSuite) TestArithSeriesWithArray() {
	s.requireArithmetic()
	data := s.Cfg.Data()
	ser := s.Series(data)
	other := s.Series(data.Copy())
	for _, op := range extarray.AllArithmeticOps {
		s.CheckOpname(s.Ctx(), ser, op, other, nil)
	}
}

func (s *ArithmeticOpsSuite) TestDivmod() {
	ser := s.Series(s.Cfg.Data())
	_, err := ser.Arith(s.Ctx(), extarray.OpDivMod, 1)
	s.Error(err)
	_, err = ser.Arith(s.Ctx(), extarray.OpRDivMod, 1)
	s.Error(err)
}

func (s *ArithmeticOpsSuite) TestAddSeriesWithExtensionArray() {
	s.requireArithmetic()
	data := s.Cfg.Data()
	ser := s.Series(data)
	result, err := ser.Arith(s.Ctx(), extarray.OpAdd, data)
	s.Require().NoError(err)
	expected, err := ser.Arith(s.Ctx(), extarray.OpAdd, s.Series(data))
	s.Require().NoError(err)
	s.AssertSeriesEqual(expected, result)
}

func (s *ArithmeticOpsSuite) TestArithLengthMismatch() {
	s.requireArithmetic()
	data := s.Cfg.Data()
	_, err := data.Arith(s.Ctx(), extarray.OpAdd, data.Slice(0, 2))
	s.Error(err)
}

func (s *ArithmeticOpsSuite) TestError() {
	if s.Cfg.SupportsArithmetic {
		s.T().Skip("dtype supports arithmetic")
	}
	data := s.Cfg.Data()
	_, err := s.Series(data).Arith(s.Ctx(), extarray.OpAdd, data.Value(0))
	s.Error(err)
}

// ComparisonOpsSuite checks the comparison operators of series of the
// dtype.
type ComparisonOpsSuite struct{ Base }

func (s *ComparisonOpsSuite) requireComparison() {
	if !s.Cfg.SupportsComparison {
		s.T().Skip("dtype does not support comparison")
	}
}

func (s *ComparisonOpsSuite) TestCompareScalar() {
	s.requireComparison()
	ser := s.Series(s.Cfg.Data())
	for _, op := range extarray.AllCompareOps {
		s.CheckCompare(s.Ctx(), ser, op, 0)
	}
}

func (s *ComparisonOpsSuite) TestCompareArray() {
	s.requireComparison()
	data := s.Cfg.Data()
	ser := s.Series(data)
	other := s.Series(s.Take(data, make([]int, data.Len())...))
	for _, op := range extarray.AllCompareOps {
		s.CheckCompare(s.Ctx(), ser, op, other)
	}
}

func (s *ComparisonOpsSuite) TestCompareMissing() {
	s.requireComparison()
	ser := s.Series(s.Cfg.DataMissing())
	for _, op := range extarray.AllCompareOps {
		out, err := ser.Compare(s.Ctx(), op, s.Cfg.DataMissing().Value(1))
		s.Require().NoError(err)
		v, err := out.ILoc(0)
		s.Require().NoError(err)
		s.Equalf(op == extarray.OpNe, v, "%s", op)
	}
}
