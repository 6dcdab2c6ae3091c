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
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/frame"
)

// ConstructorsSuite checks building arrays, series and frames.
type ConstructorsSuite struct{ Base }

func (s *ConstructorsSuite) TestFromSequenceFromCls() {
	data := s.Cfg.Data()
	out, err := s.dtype().ConstructFromSequence(extarray.ToSlice(data))
	s.Require().NoError(err)
	s.AssertExtensionArrayEqual(data, out)

	dm := s.Cfg.DataMissing()
	out, err = s.dtype().ConstructFromSequence(extarray.ToSlice(dm))
	s.Require().NoError(err)
	s.AssertExtensionArrayEqual(dm, out)
}

func (s *ConstructorsSuite) TestArrayFromScalars() {
	data := s.Cfg.Data()
	out, err := s.dtype().ConstructFromSequence([]any{data.Value(0), data.Value(1), data.Value(2)})
	s.Require().NoError(err)
	s.Equal(3, out.Len())
	s.AssertExtensionArrayEqual(data.Slice(0, 3), out)
}

func (s *ConstructorsSuite) TestEmpty() {
	out, err := s.dtype().ConstructFromSequence(nil)
	s.Require().NoError(err)
	s.Zero(out.Len())
	s.True(out.Dtype().Equal(s.dtype()))
}

func (s *ConstructorsSuite) TestSeriesConstructor() {
	data := s.Cfg.Data()
	ser := s.Series(data)
	s.Equal(data.Len(), ser.Len())
	s.True(s.isOwnDtype(ser.Dtype()))

	again := s.Series(ser)
	s.AssertSeriesEqual(ser, again)

	dm := s.Series(s.Cfg.DataMissing())
	s.Equal([]bool{true, false}, dm.NAMask())
}

func (s *ConstructorsSuite) TestSeriesConstructorWithDtype() {
	data := s.Cfg.Data()
	tagged := s.Series(data, frame.WithDtype(s.dtype()))
	s.AssertSeriesEqual(s.Series(data), tagged)

	byName := s.Series(data, frame.WithDtype(s.dtype().Name()))
	s.AssertSeriesEqual(s.Series(data), byName)

	_, err := frame.NewSeries(data, frame.WithDtype(frame.Int64))
	s.ErrorIs(err, arrow.ErrInvalid)
}

func (s *ConstructorsSuite) TestSeriesGivenMismatchedIndexRaises() {
	data := s.Cfg.Data()
	_, err := frame.NewSeries(data.Slice(0, 5), frame.WithIndex([]int{1, 2, 3, 4}))
	s.ErrorIs(err, arrow.ErrInvalid)
	s.ErrorContains(err, "Length of passed values is 5, index implies 4")
}

func (s *ConstructorsSuite) TestSeriesGivenIndex() {
	data := s.Cfg.Data()
	ser := s.Series(data.Slice(0, 3), frame.WithIndex([]string{"a", "b", "c"}))
	s.Equal([]any{"a", "b", "c"}, ser.Index().Labels())
	v, err := ser.At("b")
	s.Require().NoError(err)
	s.AssertNAEqual(v, data.Value(1))
}

func (s *ConstructorsSuite) TestFrameConstructorFromColumns() {
	data := s.Cfg.Data()
	df := s.NewFrame(frame.Column{Name: "A", Data: data})
	s.True(s.isOwnDtype(df.Dtypes()[0]))
	s.Equal(data.Len(), df.Len())
}

func (s *ConstructorsSuite) TestFrameFromSeries() {
	data := s.Cfg.Data()
	df := s.NewFrame(frame.Column{Name: "A", Data: s.Series(data)})
	s.True(s.isOwnDtype(df.Dtypes()[0]))
	col, err := df.Col("A")
	s.Require().NoError(err)
	s.AssertSeriesEqual(s.Series(data, frame.WithName("A")), col)
}

func (s *ConstructorsSuite) TestFrameConstructorWithDtype() {
	data := s.Cfg.Data()
	tagged, err := frame.NewFrame([]frame.Column{{Name: "A", Data: data}}, frame.WithDtype(s.dtype()))
	s.Require().NoError(err)
	s.AssertFrameEqual(s.NewFrame(frame.Column{Name: "A", Data: data}), tagged)

	_, err = frame.NewFrame([]frame.Column{{Name: "A", Data: data}}, frame.WithDtype(frame.Int64))
	s.ErrorIs(err, arrow.ErrInvalid)
}

// fromDtype builds a series from plain values and the dtype. Types that
// only accept their own arrays list TestFromDtype as an expected failure.
func (s *ConstructorsSuite) fromDtype() error {
	data := s.Cfg.Data()
	result, err := frame.NewSeries(extarray.ToSlice(data), frame.WithDtype(s.dtype()))
	if err != nil {
		return err
	}
	return s.seriesEqual(s.Series(data), result)
}

func (s *ConstructorsSuite) TestFromDtype() {
	s.ExpectFailure(s.fromDtype())
}
