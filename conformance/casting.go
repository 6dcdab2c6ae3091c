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
	"fmt"

	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/frame"
)

// CastingSuite checks conversions out of and back into the dtype.
type CastingSuite struct{ Base }

func (s *CastingSuite) TestAsTypeObjectSeries() {
	data := s.Cfg.DataMissing()
	ser := s.Series(data, frame.WithName("A"))
	out, err := ser.AsType(frame.Object)
	s.Require().NoError(err)
	s.Equal(frame.Object, out.Dtype())
	s.Equal("A", out.Name())
	s.Equal([]bool{true, false}, out.NAMask())

	v, err := out.ILoc(1)
	s.Require().NoError(err)
	s.IsType(data.Value(1), v)
}

func (s *CastingSuite) TestAsTypeObjectFrame() {
	data := s.Cfg.DataMissing()
	df := s.NewFrame(frame.Column{Name: "A", Data: data})
	out, err := df.AsType("object")
	s.Require().NoError(err)
	s.Equal([]frame.Dtype{frame.Object}, out.Dtypes())

	col, err := out.Col("A")
	s.Require().NoError(err)
	v, err := col.ILoc(1)
	s.Require().NoError(err)
	s.IsType(data.Value(1), v)
}

func (s *CastingSuite) TestToList() {
	data := s.Cfg.Data()
	s.Equal(extarray.ToSlice(data), s.Series(data).ToList())
}

func (s *CastingSuite) TestAsTypeString() {
	data := s.Cfg.Data().Slice(0, 5)
	out, err := s.Series(data).AsType("string")
	s.Require().NoError(err)
	s.Equal(frame.String, out.Dtype())
	for i := 0; i < data.Len(); i++ {
		v, err := out.ILoc(i)
		s.Require().NoError(err)
		s.Equal(fmt.Sprint(data.Value(i)), v)
	}
}

func (s *CastingSuite) TestAsTypeOwnType() {
	data := s.Cfg.Data()
	ser := s.Series(data)
	out, err := ser.AsType(s.dtype())
	s.Require().NoError(err)
	s.AssertSeriesEqual(ser, out)

	if extarray.GetDtype(s.dtype().Name()) == nil {
		return
	}
	out, err = ser.AsType(s.dtype().Name())
	s.Require().NoError(err)
	s.AssertSeriesEqual(ser, out)
}

func (s *CastingSuite) TestAsTypeEmptyFrame() {
	df := s.NewFrame()
	out, err := df.AsType(s.dtype())
	s.Require().NoError(err)
	s.Zero(out.NumCols())
}
