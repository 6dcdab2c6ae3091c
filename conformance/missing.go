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
	"math"

	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/frame"
)

// MissingSuite checks missing value detection, dropping and filling.
type MissingSuite struct{ Base }

func (s *MissingSuite) TestIsNA() {
	dm := s.Cfg.DataMissing()
	s.Equal([]bool{true, false}, extarray.IsNAMask(dm))

	ser := s.Series(dm)
	isna := ser.IsNA()
	s.Equal([]any{true, false}, isna.ToList())
	s.Equal([]any{false, true}, ser.NotNA().ToList())
	s.Equal(1, ser.Count())

	s.Zero(extarray.CountNA(s.Take(dm, 1, 1)))
}

func (s *MissingSuite) TestIsNAReturnsCopy() {
	dm := s.Cfg.DataMissing()
	mask := extarray.IsNAMask(dm)
	mask[0] = false
	s.True(dm.IsNA(0))
}

func (s *MissingSuite) TestDropNAArray() {
	dm := s.Cfg.DataMissing()
	out, err := extarray.DropNA(dm)
	s.Require().NoError(err)
	s.AssertExtensionArrayEqual(s.Take(dm, 1), out)
}

func (s *MissingSuite) TestDropNASeries() {
	dm := s.Cfg.DataMissing()
	out, err := s.Series(dm).DropNA()
	s.Require().NoError(err)
	s.AssertSeriesEqual(s.Series(s.Take(dm, 1), frame.WithIndex([]int{1})), out)
}

func (s *MissingSuite) TestDropNAFrame() {
	dm := s.Cfg.DataMissing()
	df := s.NewFrame(frame.Column{Name: "A", Data: dm})

	rows, err := df.DropNA()
	s.Require().NoError(err)
	expected, err := frame.NewFrame([]frame.Column{{Name: "A", Data: s.Take(dm, 1)}}, frame.WithIndex([]int{1}))
	s.Require().NoError(err)
	s.AssertFrameEqual(expected, rows)

	df = s.NewFrame(frame.Column{Name: "A", Data: dm}, frame.Column{Name: "B", Data: []int{1, 2}})
	s.Equal([]string{"B"}, df.DropNAColumns().Columns())
}

func (s *MissingSuite) TestFillNAScalar() {
	dm := s.Cfg.DataMissing()
	out, err := extarray.FillNA(dm, dm.Value(1))
	s.Require().NoError(err)
	s.AssertExtensionArrayEqual(s.Take(dm, 1, 1), out)
}

func (s *MissingSuite) TestFillNALimitPad() {
	arr := s.Take(s.Cfg.DataMissing(), 1, 0, 0, 0, 1)
	out, err := extarray.FillNAMethod(arr, extarray.Pad, 1)
	s.Require().NoError(err)
	s.AssertExtensionArrayEqual(s.Take(arr, 0, 0, 2, 3, 4), out)
}

func (s *MissingSuite) TestFillNALimitBackfill() {
	arr := s.Take(s.Cfg.DataMissing(), 1, 0, 0, 0, 1)
	out, err := extarray.FillNAMethod(arr, extarray.Backfill, 1)
	s.Require().NoError(err)
	s.AssertExtensionArrayEqual(s.Take(arr, 0, 1, 2, 4, 4), out)
}

func (s *MissingSuite) TestFillNASeries() {
	dm := s.Cfg.DataMissing()
	ser := s.Series(dm)
	out, err := ser.FillNA(dm.Value(1))
	s.Require().NoError(err)
	s.AssertSeriesEqual(s.Series(s.Take(dm, 1, 1)), out)

	out, err = ser.FillNA(ser)
	s.Require().NoError(err)
	s.AssertSeriesEqual(ser, out)
}

func (s *MissingSuite) TestFillNASeriesMethod() {
	dm := s.Cfg.DataMissing()
	for _, tt := range []struct {
		method extarray.FillMethod
		order  []int
	}{
		{extarray.Pad, []int{1, 0}},
		{extarray.Backfill, []int{0, 1}},
	} {
		arr := s.Take(dm, tt.order...)
		out, err := s.Series(arr).FillNAMethod(tt.method, 0)
		s.Require().NoError(err)
		s.AssertSeriesEqual(s.Series(s.Take(dm, 1, 1)), out)
	}
}

func (s *MissingSuite) TestFillNAFrame() {
	dm := s.Cfg.DataMissing()
	df := s.NewFrame(frame.Column{Name: "A", Data: dm}, frame.Column{Name: "B", Data: []int{1, 2}})
	out, err := df.FillNAColumns(map[string]any{"A": dm.Value(1)})
	s.Require().NoError(err)
	expected := s.NewFrame(frame.Column{Name: "A", Data: s.Take(dm, 1, 1)}, frame.Column{Name: "B", Data: []int{1, 2}})
	s.AssertFrameEqual(expected, out)
}

func (s *MissingSuite) TestFillNAFillOther() {
	dm := s.Cfg.DataMissing()
	df := s.NewFrame(frame.Column{Name: "A", Data: dm}, frame.Column{Name: "B", Data: []float64{math.NaN(), math.NaN()}})
	out, err := df.FillNAColumns(map[string]any{"B": 0.0})
	s.Require().NoError(err)
	expected := s.NewFrame(frame.Column{Name: "A", Data: dm}, frame.Column{Name: "B", Data: []float64{0, 0}})
	s.AssertFrameEqual(expected, out)
}

func (s *MissingSuite) TestFillNANoOpReturnsCopy() {
	data := s.Cfg.Data()
	out, err := extarray.FillNA(data, data.Value(0))
	s.Require().NoError(err)
	s.AssertExtensionArrayEqual(data, out)
}
