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
	"reflect"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/frame"
)

// GetitemSuite checks element access, take and reindex.
type GetitemSuite struct{ Base }

func (s *GetitemSuite) TestILocSeries() {
	data := s.Cfg.Data()
	ser := s.Series(data)
	s.AssertSeriesEqual(s.Series(data.Slice(0, 4)), ser.ISlice(0, 4))

	taken, err := ser.Take([]int{0, 1, 2, 3})
	s.Require().NoError(err)
	s.AssertSeriesEqual(s.Series(data.Slice(0, 4)), taken)
}

func (s *GetitemSuite) TestILocFrame() {
	data := s.Cfg.Data()
	df := s.NewFrame(frame.Column{Name: "A", Data: data}, frame.Column{Name: "B", Data: make([]int, data.Len())})
	expected := s.NewFrame(frame.Column{Name: "A", Data: data.Slice(0, 4)})

	rows, err := df.ILoc(0, 1, 2, 3)
	s.Require().NoError(err)
	sel, err := rows.Select("A")
	s.Require().NoError(err)
	s.AssertFrameEqual(expected, sel)

	sliced, err := df.ISlice(0, 4).Select("A")
	s.Require().NoError(err)
	s.AssertFrameEqual(expected, sliced)
}

func (s *GetitemSuite) TestLocSeries() {
	data := s.Cfg.Data()
	ser := s.Series(data)
	out, err := ser.Loc(int64(0), int64(1), int64(2), int64(3))
	s.Require().NoError(err)
	s.AssertSeriesEqual(s.Series(data.Slice(0, 4)), out)
}

func (s *GetitemSuite) TestLocFrame() {
	data := s.Cfg.Data()
	df := s.NewFrame(frame.Column{Name: "A", Data: data}, frame.Column{Name: "B", Data: make([]int, data.Len())})
	rows, err := df.Loc(int64(0), int64(1), int64(2), int64(3))
	s.Require().NoError(err)
	col, err := rows.Col("A")
	s.Require().NoError(err)
	s.AssertSeriesEqual(s.Series(data.Slice(0, 4), frame.WithName("A")), col)
}

func (s *GetitemSuite) TestGetitemScalar() {
	data := s.Cfg.Data()
	s.Equal(s.dtype().Type(), reflect.TypeOf(data.Value(0)))

	v, err := s.Series(data).ILoc(0)
	s.Require().NoError(err)
	s.Equal(s.dtype().Type(), reflect.TypeOf(v))
}

func (s *GetitemSuite) TestGetitemScalarNA() {
	dm := s.Cfg.DataMissing()
	s.AssertNAEqual(dm.Value(0), s.Cfg.NAValue)
}

func (s *GetitemSuite) TestGetitemMask() {
	data := s.Cfg.Data()
	mask := make([]bool, data.Len())
	out, err := s.Series(data).Filter(mask)
	s.Require().NoError(err)
	s.Zero(out.Len())
	s.True(s.isOwnDtype(out.Dtype()))

	mask[0] = true
	out, err = s.Series(data).Filter(mask)
	s.Require().NoError(err)
	s.Equal(1, out.Len())

	_, err = s.Series(data).Filter(mask[:1])
	s.ErrorIs(err, arrow.ErrIndex)
}

func (s *GetitemSuite) TestGetitemInvalid() {
	data := s.Cfg.Data()
	_, err := s.Series(data).ILoc(data.Len())
	s.ErrorIs(err, arrow.ErrIndex)
}

func (s *GetitemSuite) TestTake() {
	data := s.Cfg.Data()
	n := data.Len()

	out, err := data.Take([]int{0, -1}, false, nil)
	s.Require().NoError(err)
	s.True(out.Dtype().Equal(data.Dtype()))
	s.AssertNAEqual(out.Value(0), data.Value(0))
	s.AssertNAEqual(out.Value(1), data.Value(n-1))

	out, err = data.Take([]int{0, -1}, true, s.Cfg.NAValue)
	s.Require().NoError(err)
	s.AssertNAEqual(out.Value(0), data.Value(0))
	s.AssertNAEqual(out.Value(1), s.Cfg.NAValue)

	_, err = data.Take([]int{n + 1}, false, nil)
	s.ErrorIs(err, arrow.ErrIndex)
}

func (s *GetitemSuite) TestTakeEmpty() {
	data := s.Cfg.Data()
	empty := s.Take(data)
	s.Zero(empty.Len())

	out, err := empty.Take([]int{-1}, true, s.Cfg.NAValue)
	s.Require().NoError(err)
	s.True(out.IsNA(0))

	_, err = empty.Take([]int{-1}, false, nil)
	s.ErrorIs(err, arrow.ErrIndex)
	s.ErrorContains(err, "cannot do a non-empty take")

	_, err = empty.Take([]int{0, 1}, false, nil)
	s.ErrorIs(err, arrow.ErrIndex)
}

func (s *GetitemSuite) TestTakeNegative() {
	data := s.Cfg.Data()
	n := data.Len()
	out := s.Take(data, 0, -n, n-1, -1)
	s.AssertExtensionArrayEqual(s.Take(data, 0, 0, n-1, n-1), out)
}

func (s *GetitemSuite) TestTakeNonNAFillValue() {
	dm := s.Cfg.DataMissing()
	fill := dm.Value(1)
	arr, err := s.dtype().ConstructFromSequence([]any{dm.Value(0), fill, dm.Value(0)})
	s.Require().NoError(err)

	out, err := arr.Take([]int{-1, 1}, true, fill)
	s.Require().NoError(err)
	s.AssertExtensionArrayEqual(s.Take(arr, 1, 1), out)
}

func (s *GetitemSuite) TestTakeNegativeBelowFillRaises() {
	_, err := s.Cfg.DataMissing().Take([]int{0, -2}, true, s.Cfg.NAValue)
	s.ErrorIs(err, arrow.ErrInvalid)
}

func (s *GetitemSuite) TestTakeOutOfBoundsRaises() {
	for _, allowFill := range []bool{true, false} {
		arr := s.Cfg.Data().Slice(0, 3)
		_, err := arr.Take([]int{0, 3}, allowFill, nil)
		s.ErrorIs(err, arrow.ErrIndex)
	}
}

func (s *GetitemSuite) TestTakeSeries() {
	data := s.Cfg.Data()
	ser := s.Series(data)
	out, err := ser.Take([]int{0, -1})
	s.Require().NoError(err)

	expected := s.Series(s.Take(data, 0, data.Len()-1), frame.WithIndex([]int{0, data.Len() - 1}))
	s.AssertSeriesEqual(expected, out)
}

func (s *GetitemSuite) TestReindex() {
	data := s.Cfg.Data()
	n := data.Len()
	ser := s.Series(data)

	out, err := ser.Reindex([]any{0, 1, 3}, nil)
	s.Require().NoError(err)
	s.AssertSeriesEqual(s.Series(s.Take(data, 0, 1, 3), frame.WithIndex([]int{0, 1, 3})), out)

	out, err = ser.Reindex([]any{-1, 0, n}, nil)
	s.Require().NoError(err)
	expected, err := s.dtype().ConstructFromSequence([]any{s.Cfg.NAValue, data.Value(0), s.Cfg.NAValue})
	s.Require().NoError(err)
	s.AssertSeriesEqual(s.Series(expected, frame.WithIndex([]int{-1, 0, n})), out)
}

func (s *GetitemSuite) TestReindexNonNAFillValue() {
	dm := s.Cfg.DataMissing()
	valid := dm.Value(1)
	ser := s.Series(s.Take(dm, 1, 1))

	out, err := ser.Reindex([]any{0, 1, 2}, valid)
	s.Require().NoError(err)
	s.AssertSeriesEqual(s.Series(s.Take(dm, 1, 1, 1)), out)
}

func (s *GetitemSuite) TestLen1Slice() {
	ser := s.Series(s.Cfg.Data())
	s.Equal(1, ser.ISlice(0, 1).Len())
	s.Equal(1, ser.Head(1).Len())
}

func (s *GetitemSuite) TestItem() {
	data := s.Cfg.Data()
	ser := s.Series(data.Slice(0, 1))
	v, err := ser.ILoc(0)
	s.Require().NoError(err)
	s.AssertNAEqual(v, data.Value(0))
}

func (s *GetitemSuite) TestSliceIsCopy() {
	data := s.Cfg.Data()
	orig := data.Value(0)
	sl := data.Slice(0, 2)
	s.Require().NoError(sl.SetValue(0, data.Value(1)))
	s.AssertNAEqual(data.Value(0), orig)
	s.True(extarray.Equal(data.Slice(0, 2), data.Slice(0, 2), s.Cfg.NACmp))
}
