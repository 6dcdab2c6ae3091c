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

// ReshapingSuite checks concatenation, alignment and merging.
type ReshapingSuite struct{ Base }

func (s *ReshapingSuite) TestConcat() {
	data := s.Cfg.Data()
	ser := s.Series(data)
	out, err := frame.Concat(ser, ser)
	s.Require().NoError(err)
	s.Equal(2*data.Len(), out.Len())
	s.True(s.isOwnDtype(out.Dtype()))

	v, err := out.ILoc(data.Len())
	s.Require().NoError(err)
	s.AssertNAEqual(v, data.Value(0))
}

func (s *ReshapingSuite) TestConcatAllNABlock() {
	dm := s.Cfg.DataMissing()
	valid := s.Series(s.Take(dm, 1, 1))
	missing := s.Series(s.Take(dm, 0, 0))

	out, err := frame.Concat(valid, missing)
	s.Require().NoError(err)
	expected := s.Series(s.Take(dm, 1, 1, 0, 0), frame.WithIndex([]int{0, 1, 0, 1}))
	s.AssertSeriesEqual(expected, out)
}

func (s *ReshapingSuite) TestConcatMixedDtypes() {
	data := s.Series(s.Cfg.Data().Slice(0, 2))
	ints := s.Series([]int{1, 2})
	out, err := frame.Concat(data, ints)
	s.Require().NoError(err)
	s.True(frame.IsObjectDtype(out.Dtype()))
	s.Equal(4, out.Len())
}

func (s *ReshapingSuite) TestConcatExtensionArrays() {
	data := s.Cfg.Data()
	out, err := extarray.Concat(data.Slice(0, 2), data.Slice(2, 4))
	s.Require().NoError(err)
	s.AssertExtensionArrayEqual(data.Slice(0, 4), out)
}

func (s *ReshapingSuite) TestConcatFramesMissingColumns() {
	dm := s.Cfg.DataMissing()
	top := s.NewFrame(frame.Column{Name: "A", Data: dm}, frame.Column{Name: "B", Data: []int{1, 2}})
	bottom := s.NewFrame(frame.Column{Name: "B", Data: []int{3}})

	out, err := frame.ConcatFrames(top, bottom)
	s.Require().NoError(err)
	expected, err := frame.NewFrame([]frame.Column{
		{Name: "A", Data: s.Take(dm, 0, 1, 0)},
		{Name: "B", Data: []int{1, 2, 3}},
	}, frame.WithIndex([]int{0, 1, 0}))
	s.Require().NoError(err)
	s.AssertFrameEqual(expected, out)
}

func (s *ReshapingSuite) TestAlign() {
	data := s.Cfg.Data()
	a := s.Series(data.Slice(0, 3))
	b := s.Series(data.Slice(1, 4), frame.WithIndex([]int{1, 2, 3}))

	l, r, err := a.Align(b)
	s.Require().NoError(err)

	na := s.Cfg.NAValue
	e1, err := s.dtype().ConstructFromSequence([]any{data.Value(0), data.Value(1), data.Value(2), na})
	s.Require().NoError(err)
	e2, err := s.dtype().ConstructFromSequence([]any{na, data.Value(1), data.Value(2), data.Value(3)})
	s.Require().NoError(err)
	s.AssertSeriesEqual(s.Series(e1), l)
	s.AssertSeriesEqual(s.Series(e2), r)
}

func (s *ReshapingSuite) TestAlignFrame() {
	data := s.Cfg.Data()
	a := s.NewFrame(frame.Column{Name: "A", Data: data.Slice(0, 3)})
	b, err := frame.NewFrame([]frame.Column{{Name: "A", Data: data.Slice(1, 4)}}, frame.WithIndex([]int{1, 2, 3}))
	s.Require().NoError(err)

	l, r, err := a.Align(b)
	s.Require().NoError(err)
	s.Equal(4, l.Len())
	col, err := r.Col("A")
	s.Require().NoError(err)
	s.Equal([]bool{true, false, false, false}, col.NAMask())
	s.True(s.isOwnDtype(col.Dtype()))
}

func (s *ReshapingSuite) TestSetFrameExpandRegularWithExtension() {
	data := s.Cfg.Data()
	df := s.NewFrame(frame.Column{Name: "A", Data: make([]int, data.Len())})
	s.Require().NoError(df.Set("B", data))
	s.Equal([]string{"A", "B"}, df.Columns())
	s.True(s.isOwnDtype(df.Dtypes()[1]))
}

func (s *ReshapingSuite) TestSetFrameExpandExtensionWithRegular() {
	data := s.Cfg.Data()
	df := s.NewFrame(frame.Column{Name: "A", Data: data})
	s.Require().NoError(df.Set("B", make([]int, data.Len())))
	s.True(s.isOwnDtype(df.Dtypes()[0]))
	s.True(frame.DtypeEqual(frame.Int64, df.Dtypes()[1]))
}

func (s *ReshapingSuite) TestMerge() {
	dm := s.Cfg.DataMissing()
	left := s.NewFrame(
		frame.Column{Name: "int1", Data: []int{1, 2, 3}},
		frame.Column{Name: "ext", Data: s.Take(dm, 1, 0, 1)},
	)
	right := s.NewFrame(
		frame.Column{Name: "int1", Data: []int{1, 1, 2}},
		frame.Column{Name: "int2", Data: []int{10, 11, 12}},
	)

	out, err := frame.Merge(left, right, "int1", frame.InnerJoin)
	s.Require().NoError(err)
	expected := s.NewFrame(
		frame.Column{Name: "int1", Data: []int{1, 1, 2}},
		frame.Column{Name: "ext", Data: s.Take(dm, 1, 1, 0)},
		frame.Column{Name: "int2", Data: []int{10, 11, 12}},
	)
	s.AssertFrameEqual(expected, out)

	out, err = frame.Merge(left, right, "int1", frame.LeftJoin)
	s.Require().NoError(err)
	expected = s.NewFrame(
		frame.Column{Name: "int1", Data: []int{1, 1, 2, 3}},
		frame.Column{Name: "ext", Data: s.Take(dm, 1, 1, 0, 1)},
		frame.Column{Name: "int2", Data: []any{10, 11, 12, nil}},
	)
	s.AssertFrameEqual(expected, out)
}

func (s *ReshapingSuite) TestFrameColumnOrder() {
	data := s.Cfg.Data().Slice(0, 2)
	ab := s.NewFrame(frame.Column{Name: "A", Data: data}, frame.Column{Name: "B", Data: []int{1, 2}})
	ba := s.NewFrame(frame.Column{Name: "B", Data: []int{1, 2}}, frame.Column{Name: "A", Data: data})

	err := s.frameEqual(ab, ba)
	s.ErrorIs(err, frame.ErrNotEqual)
	s.ErrorContains(err, "DataFrame.columns")
	s.AssertFrameEqual(ab, ba, frame.CheckColumnType(false))
}
