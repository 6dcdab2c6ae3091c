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
	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/frame"
)

// MethodsSuite checks sorting, deduplication, factorization and the other
// whole-array methods.
type MethodsSuite struct{ Base }

// valueCounts counts [v, v, NA, v] with and without missing values.
// Types without ValueCounts list TestValueCounts as an expected failure.
func (s *MethodsSuite) valueCounts() error {
	dm := s.Cfg.DataMissing()
	ser := s.Series(s.Take(dm, 1, 1, 0, 1))
	for _, tt := range []struct {
		dropna bool
		want   []any
	}{
		{true, []any{int64(3)}},
		{false, []any{int64(3), int64(1)}},
	} {
		out, err := ser.ValueCounts(tt.dropna)
		if err != nil {
			return err
		}
		s.Equal(tt.want, out.ToList())
		s.Equal("count", out.Name())
	}
	return nil
}

func (s *MethodsSuite) TestValueCounts() {
	s.ExpectFailure(s.valueCounts())
}

func (s *MethodsSuite) TestCount() {
	dm := s.Cfg.DataMissing()
	s.Equal(1, s.Series(dm).Count())
	df := s.NewFrame(frame.Column{Name: "A", Data: dm})
	s.Equal([]any{int64(1)}, df.Count().ToList())
}

func (s *MethodsSuite) TestApplySimpleSeries() {
	data := s.Cfg.Data()
	out, err := s.Series(data).Apply(func(v any) (any, error) { return v, nil })
	s.Require().NoError(err)
	s.Equal(data.Len(), out.Len())
}

func (s *MethodsSuite) TestArgsort() {
	data := s.Cfg.DataForSorting()
	s.Equal([]int{2, 0, 1}, extarray.Argsort(data, true))
	s.Equal([]int{1, 0, 2}, extarray.Argsort(data, false))
	s.Equal([]int{2, 0, 1}, s.Series(data).Argsort())
}

func (s *MethodsSuite) TestArgsortMissingArray() {
	data := s.Cfg.DataMissingForSorting()
	s.Equal([]int{2, 0, 1}, extarray.Argsort(data, true))
	s.Equal([]int{0, 2, 1}, extarray.Argsort(data, false))
}

func (s *MethodsSuite) TestArgsortMissing() {
	s.Equal([]int{1, -1, 0}, s.Series(s.Cfg.DataMissingForSorting()).Argsort())
}

func (s *MethodsSuite) TestSortValues() {
	data := s.Cfg.DataForSorting()
	ser := s.Series(data)
	for _, tt := range []struct {
		ascending bool
		order     []int
	}{
		{true, []int{2, 0, 1}},
		{false, []int{1, 0, 2}},
	} {
		out, err := ser.SortValues(tt.ascending)
		s.Require().NoError(err)
		expected := s.Series(s.Take(data, tt.order...), frame.WithIndex(tt.order))
		s.AssertSeriesEqual(expected, out)
	}
}

func (s *MethodsSuite) TestSortValuesMissing() {
	data := s.Cfg.DataMissingForSorting()
	ser := s.Series(data)
	for _, tt := range []struct {
		ascending bool
		order     []int
	}{
		{true, []int{2, 0, 1}},
		{false, []int{0, 2, 1}},
	} {
		out, err := ser.SortValues(tt.ascending)
		s.Require().NoError(err)
		expected := s.Series(s.Take(data, tt.order...), frame.WithIndex(tt.order))
		s.AssertSeriesEqual(expected, out)
	}
}

func (s *MethodsSuite) TestSortValuesFrame() {
	data := s.Cfg.DataForSorting()
	df := s.NewFrame(frame.Column{Name: "A", Data: []int{1, 2, 1}}, frame.Column{Name: "B", Data: data})
	out, err := df.SortValues(true, "A", "B")
	s.Require().NoError(err)

	expected, err := frame.NewFrame([]frame.Column{
		{Name: "A", Data: []int{1, 1, 2}},
		{Name: "B", Data: s.Take(data, 2, 0, 1)},
	}, frame.WithIndex([]int{2, 0, 1}))
	s.Require().NoError(err)
	s.AssertFrameEqual(expected, out)
}

func (s *MethodsSuite) TestUnique() {
	data := s.Cfg.Data()
	dup := s.Take(data, 0, 0)
	out, err := extarray.Unique(dup)
	s.Require().NoError(err)
	s.Equal(1, out.Len())
	s.True(out.Dtype().Equal(s.dtype()))
	s.AssertNAEqual(out.Value(0), data.Value(0))

	u, err := s.Series(dup).Unique()
	s.Require().NoError(err)
	s.Equal(1, u.Len())

	dm := s.Cfg.DataMissing()
	out, err = extarray.Unique(s.Take(dm, 0, 1, 0, 1))
	s.Require().NoError(err)
	s.AssertExtensionArrayEqual(dm, out)
}

func (s *MethodsSuite) TestFactorize() {
	data := s.Cfg.DataForGrouping()

	codes, uniques, err := extarray.Factorize(data, false)
	s.Require().NoError(err)
	s.Equal([]int{0, 0, -1, -1, 1, 1, 0, 2}, codes)
	s.AssertExtensionArrayEqual(s.Take(data, 0, 4, 7), uniques)

	codes, uniques, err = extarray.Factorize(data, true)
	s.Require().NoError(err)
	s.Equal([]int{1, 1, -1, -1, 0, 0, 1, 2}, codes)
	s.AssertExtensionArrayEqual(s.Take(data, 4, 0, 7), uniques)
}

func (s *MethodsSuite) TestFactorizeEquivalence() {
	data := s.Cfg.DataForGrouping()
	for _, sort := range []bool{true, false} {
		c1, u1, err := extarray.Factorize(data, sort)
		s.Require().NoError(err)
		c2, u2, err := s.Series(data).Factorize(sort)
		s.Require().NoError(err)
		s.Equal(c1, c2)
		arr, ok := u2.Array()
		s.Require().True(ok)
		s.AssertExtensionArrayEqual(u1, arr)
	}
}

func (s *MethodsSuite) TestFactorizeEmpty() {
	codes, uniques, err := extarray.Factorize(s.Take(s.Cfg.Data()), false)
	s.Require().NoError(err)
	s.Empty(codes)
	s.Zero(uniques.Len())
	s.True(uniques.Dtype().Equal(s.dtype()))
}

func (s *MethodsSuite) TestCombineLe() {
	ops, ok := s.dtype().(extarray.ScalarOps)
	if !ok || !s.Cfg.SupportsComparison {
		s.T().Skip("dtype has no scalar comparison")
	}
	ctx := s.Ctx()
	data := s.Cfg.Data()
	a := s.Series(data.Slice(0, 5))
	b := s.Series(s.Take(data, 1, 2, 3, 4, 0))

	out, err := a.Combine(b, func(x, y any) (any, error) { return ops.ScalarCompare(ctx, extarray.OpLe, x, y) })
	s.Require().NoError(err)
	s.True(frame.DtypeEqual(frame.Bool, out.Dtype()))
	for i := 0; i < 5; i++ {
		want, err := ops.ScalarCompare(ctx, extarray.OpLe, data.Value(i), data.Value((i+1)%5))
		s.Require().NoError(err)
		got, _ := out.ILoc(i)
		s.Equal(want, got)
	}
}

func (s *MethodsSuite) TestCombineAdd() {
	ops, ok := s.dtype().(extarray.ScalarOps)
	if !ok || !s.Cfg.SupportsArithmetic {
		s.T().Skip("dtype has no scalar arithmetic")
	}
	ctx := s.Ctx()
	data := s.Cfg.Data()
	a := s.Series(data.Slice(0, 5))
	b := s.Series(s.Take(data, 1, 2, 3, 4, 0))

	out, err := a.Combine(b, func(x, y any) (any, error) { return ops.ScalarArith(ctx, extarray.OpAdd, x, y) })
	s.Require().NoError(err)

	vals := make([]any, 5)
	for i := range vals {
		vals[i], err = ops.ScalarArith(ctx, extarray.OpAdd, data.Value(i), data.Value((i+1)%5))
		s.Require().NoError(err)
	}
	expected, err := s.dtype().ConstructFromSequence(vals)
	s.Require().NoError(err)
	s.AssertSeriesEqual(s.Series(expected), out)
}

func (s *MethodsSuite) TestShift() {
	data := s.Cfg.Data()
	na := s.Cfg.NAValue

	out, err := extarray.Shift(data.Slice(0, 3), 1, nil)
	s.Require().NoError(err)
	expected, err := s.dtype().ConstructFromSequence([]any{na, data.Value(0), data.Value(1)})
	s.Require().NoError(err)
	s.AssertExtensionArrayEqual(expected, out)

	out, err = extarray.Shift(data.Slice(0, 3), -2, data.Value(3))
	s.Require().NoError(err)
	s.AssertExtensionArrayEqual(s.Take(data, 2, 3, 3), out)

	shifted, err := s.Series(data.Slice(0, 3)).Shift(4, nil)
	s.Require().NoError(err)
	s.Equal([]bool{true, true, true}, shifted.NAMask())
}

func (s *MethodsSuite) TestShiftEmptyArray() {
	empty := s.Take(s.Cfg.Data())
	out, err := extarray.Shift(empty, 1, nil)
	s.Require().NoError(err)
	s.Zero(out.Len())
}

func (s *MethodsSuite) TestShiftZeroCopies() {
	data := s.Cfg.Data()
	out, err := extarray.Shift(data, 0, nil)
	s.Require().NoError(err)
	s.AssertExtensionArrayEqual(data, out)
}

func (s *MethodsSuite) TestHash() {
	data := s.Cfg.Data()
	a := frame.HashSeries(s.Series(data), true)
	b := frame.HashSeries(s.Series(data.Copy()), true)
	s.Equal(a, b)
}

func (s *MethodsSuite) TestEquals() {
	data := s.Cfg.Data()
	dm := s.Cfg.DataMissing()
	s.True(extarray.Equal(data, data.Copy(), s.Cfg.NACmp))
	s.True(extarray.Equal(dm, dm.Copy(), s.Cfg.NACmp))
	s.False(extarray.Equal(data, data.Slice(0, 2), s.Cfg.NACmp))
	sorting := s.Cfg.DataForSorting()
	s.False(extarray.Equal(s.Take(sorting, 0, 1), s.Take(sorting, 1, 0), s.Cfg.NACmp))
}

func (s *MethodsSuite) TestNBytes() {
	data := s.Cfg.Data()
	s.Positive(data.NBytes())
	s.Less(data.Slice(0, 1).NBytes(), data.NBytes())
}
