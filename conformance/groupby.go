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

// GroupBySuite checks grouping by, and aggregating, columns of the dtype.
type GroupBySuite struct{ Base }

// groupingFrame returns A = DataForGrouping next to B = [1, 1, 2, 2, 3, 3, 1, 4].
func (s *GroupBySuite) groupingFrame() (*frame.Frame, extarray.ExtensionArray) {
	data := s.Cfg.DataForGrouping()
	return s.NewFrame(
		frame.Column{Name: "A", Data: data},
		frame.Column{Name: "B", Data: []int{1, 1, 2, 2, 3, 3, 1, 4}},
	), data
}

func (s *GroupBySuite) TestGroupingKeys() {
	df, data := s.groupingFrame()
	gb, err := df.GroupBy("A")
	s.Require().NoError(err)
	s.Equal(3, gb.NGroups())
	s.Equal("A", gb.Keys().Name())
	s.Equal([]int{4, 5}, gb.Indices(0))
	s.Equal([]int{0, 1, 6}, gb.Indices(1))
	s.Equal([]int{7}, gb.Indices(2))

	s.Equal([]any{int64(2), int64(3), int64(1)}, gb.Size().ToList())
	for i, want := range []any{data.Value(4), data.Value(0), data.Value(7)} {
		s.AssertNAEqual(want, gb.Keys().Label(i))
	}
}

func (s *GroupBySuite) TestGroupByAggExtension() {
	df, data := s.groupingFrame()
	gb, err := df.GroupBy("B")
	s.Require().NoError(err)
	out, err := gb.First()
	s.Require().NoError(err)

	ix, err := frame.NewIndex([]int{1, 2, 3, 4}, "B")
	s.Require().NoError(err)
	expected, err := frame.NewFrame([]frame.Column{{Name: "A", Data: s.Take(data, 0, 2, 4, 7)}}, frame.WithIndex(ix))
	s.Require().NoError(err)
	s.AssertFrameEqual(expected, out)
}

func (s *GroupBySuite) TestGroupByExtensionAgg() {
	df, data := s.groupingFrame()
	for _, tt := range []struct {
		name  string
		sort  bool
		keys  []int
		means []float64
	}{
		{"sorted", true, []int{4, 0, 7}, []float64{3, 1, 4}},
		{"unsorted", false, []int{0, 4, 7}, []float64{1, 3, 4}},
	} {
		s.Run(tt.name, func() {
			gb, err := df.GroupBy("A", frame.WithSort(tt.sort))
			s.Require().NoError(err)
			out, err := gb.Mean("B")
			s.Require().NoError(err)

			ix, err := frame.NewIndex(s.Take(data, tt.keys...), "A")
			s.Require().NoError(err)
			expected, err := frame.NewFrame([]frame.Column{{Name: "B", Data: tt.means}}, frame.WithIndex(ix))
			s.Require().NoError(err)
			s.AssertFrameEqual(expected, out)

			gb, err = df.GroupBy("A", frame.WithSort(tt.sort), frame.WithAsIndex(false))
			s.Require().NoError(err)
			out, err = gb.Mean("B")
			s.Require().NoError(err)
			expected = s.NewFrame(
				frame.Column{Name: "A", Data: s.Take(data, tt.keys...)},
				frame.Column{Name: "B", Data: tt.means},
			)
			s.AssertFrameEqual(expected, out)
		})
	}
}

func (s *GroupBySuite) TestGroupByKeepNA() {
	df, _ := s.groupingFrame()
	gb, err := df.GroupBy("A", frame.WithDropNA(false))
	s.Require().NoError(err)
	s.Equal(4, gb.NGroups())
	s.Equal([]int{2, 3}, gb.Indices(3))
	s.AssertNAEqual(s.Cfg.NAValue, gb.Keys().Label(3))
}

func (s *GroupBySuite) TestGroupByExtensionTransform() {
	data := s.Cfg.DataForGrouping()
	df := s.NewFrame(
		frame.Column{Name: "A", Data: s.Take(data, 0, 1, 4, 5, 6, 7)},
		frame.Column{Name: "B", Data: []int{1, 1, 3, 3, 1, 4}},
	)
	gb, err := df.GroupBy("B")
	s.Require().NoError(err)
	out, err := gb.Transform("A", func(part *frame.Series) (any, error) { return part.Len(), nil })
	s.Require().NoError(err)

	want := []int{3, 3, 2, 2, 3, 1}
	s.Require().Equal(len(want), out.Len())
	for i, w := range want {
		v, err := out.ILoc(i)
		s.Require().NoError(err)
		s.EqualValues(w, v)
	}
}

func (s *GroupBySuite) TestGroupByExtensionApply() {
	df, _ := s.groupingFrame()
	for _, by := range []string{"A", "B"} {
		gb, err := df.GroupBy(by)
		s.Require().NoError(err)
		out, err := gb.Apply(func(part *frame.Frame) (any, error) { return part.Len(), nil })
		s.Require().NoError(err)
		s.Equal(gb.NGroups(), out.Len())
		total := int64(0)
		for _, v := range out.ToList() {
			total += v.(int64)
		}
		if by == "A" {
			s.EqualValues(6, total)
		} else {
			s.EqualValues(8, total)
		}
	}
}

func (s *GroupBySuite) TestInNumericGroupBy() {
	data := s.Cfg.DataForGrouping()
	df := s.NewFrame(
		frame.Column{Name: "A", Data: []int{1, 1, 2, 2, 3, 3, 1, 4}},
		frame.Column{Name: "B", Data: data},
		frame.Column{Name: "C", Data: []int{1, 1, 1, 1, 1, 1, 1, 1}},
	)
	gb, err := df.GroupBy("A")
	s.Require().NoError(err)
	out, err := gb.Sum(context.Background())
	s.Require().NoError(err)

	if _, ok := s.dtype().(extarray.ScalarOps); ok {
		s.Equal([]string{"B", "C"}, out.Columns())
	} else {
		s.Equal([]string{"C"}, out.Columns())
	}
	c, err := out.Col("C")
	s.Require().NoError(err)
	s.Equal([]any{int64(3), int64(2), int64(2), int64(1)}, c.ToList())
}

func (s *GroupBySuite) TestGroupByAggregateKeyColumn() {
	df, _ := s.groupingFrame()
	gb, err := df.GroupBy("A")
	s.Require().NoError(err)
	_, err = gb.Mean("A")
	s.Error(err)
}
