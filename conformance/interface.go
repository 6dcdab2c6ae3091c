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
	"strconv"

	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/frame"
)

// InterfaceSuite checks the basic shape of an array.
type InterfaceSuite struct{ Base }

func (s *InterfaceSuite) TestLen() {
	data := s.Cfg.Data()
	if s.Cfg.DataSize > 0 {
		s.Equal(s.Cfg.DataSize, data.Len())
	}
	s.Equal(2, data.Slice(0, 2).Len())
	s.Equal(data.Len(), data.Copy().Len())
}

func (s *InterfaceSuite) TestCanHoldNA() {
	arr := s.Cfg.Data().Copy()
	s.Require().NoError(arr.SetValue(0, s.Cfg.NAValue))
	s.True(arr.IsNA(0))
	s.False(arr.IsNA(1))
}

func (s *InterfaceSuite) TestContains() {
	dm := s.Cfg.DataMissing()
	s.AssertNAEqual(dm.Value(0), s.Cfg.NAValue)
	s.False(s.Cfg.NACmp(dm.Value(1), s.Cfg.NAValue))
}

func (s *InterfaceSuite) TestMemoryUsage() {
	ser := s.Series(s.Cfg.Data())
	s.Positive(ser.NBytes())
	s.GreaterOrEqual(ser.MemoryUsage(), ser.NBytes())
}

func (s *InterfaceSuite) TestIsExtensionArrayDtype() {
	data := s.Cfg.Data()
	s.True(frame.IsExtensionArrayDtype(data))
	s.True(frame.IsExtensionArrayDtype(data.Dtype()))
	s.True(frame.IsExtensionArrayDtype(s.Series(data)))
}

func (s *InterfaceSuite) TestNoValuesAttribute() {
	ser := s.Series(s.Cfg.Data())
	arr, ok := ser.Values().(extarray.ExtensionArray)
	s.Require().True(ok)
	s.Equal(ser.Len(), arr.Len())
}

func (s *InterfaceSuite) TestIsNAExtensionArray() {
	s.Equal([]bool{true, false}, extarray.IsNAMask(s.Cfg.DataMissing()))
}

func (s *InterfaceSuite) TestCopy() {
	data := s.Cfg.Data()
	orig := data.Value(0)
	cp := data.Copy()
	s.Require().NoError(cp.SetValue(0, data.Value(1)))
	s.AssertNAEqual(data.Value(0), orig)
	s.AssertNAEqual(cp.Value(0), data.Value(1))
}

func (s *InterfaceSuite) TestSetValueOutOfBounds() {
	data := s.Cfg.Data()
	s.Error(data.SetValue(data.Len(), data.Value(0)))
}

func (s *InterfaceSuite) TestTolist() {
	data := s.Cfg.Data()
	vals := extarray.ToSlice(data)
	s.Require().Len(vals, data.Len())
	for i, v := range vals {
		s.AssertNAEqual(v, data.Value(i))
	}
	s.Equal(vals, s.Series(data).ToList())
}

func (s *InterfaceSuite) TestString() {
	data := s.Cfg.Data()
	out := data.String()
	s.Contains(out, "Length: "+strconv.Itoa(data.Len()))
	s.Contains(out, "dtype: "+data.Dtype().Name())
	s.Contains(s.Series(data).String(), data.Dtype().Name())
}

func (s *InterfaceSuite) TestRepeated() {
	n := 0
	for arr := range s.Cfg.DataRepeated(3) {
		s.True(arr.Dtype().Equal(s.dtype()))
		n++
	}
	s.Equal(3, n)
}
