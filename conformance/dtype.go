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

// DtypeSuite checks the dtype descriptor.
type DtypeSuite struct{ Base }

func (s *DtypeSuite) TestName() {
	s.NotEmpty(s.dtype().Name())
	s.Equal(s.dtype().Name(), s.dtype().String())
}

func (s *DtypeSuite) TestKind() {
	s.Contains("biufcmMOSUV", string(s.dtype().Kind()))
}

func (s *DtypeSuite) TestIsDtypeFromName() {
	s.True(s.dtype().IsDtype(s.dtype().Name()))
	s.False(s.dtype().IsDtype("not-a-dtype"))
}

func (s *DtypeSuite) TestIsDtypeFromSelf() {
	s.True(s.dtype().IsDtype(s.dtype()))
}

func (s *DtypeSuite) TestIsDtypeUnboxesDtype() {
	data := s.Cfg.Data()
	s.True(s.dtype().IsDtype(data))
	s.True(s.dtype().IsDtype(s.Series(data)))
	s.False(s.dtype().IsDtype(s.Series([]int{1})))
}

func (s *DtypeSuite) TestIsNotStringType() {
	s.False(frame.IsStringDtype(s.dtype()))
}

func (s *DtypeSuite) TestIsNotObjectType() {
	s.False(frame.IsObjectDtype(s.dtype()))
}

func (s *DtypeSuite) TestEqualityStr() {
	s.True(s.dtype().Equal(s.dtype().Name()))
	s.False(s.dtype().Equal("anything"))
}

func (s *DtypeSuite) TestEq() {
	s.True(s.dtype().Equal(s.dtype()))
	s.True(frame.DtypeEqual(s.dtype(), s.Cfg.Dtype()))
	s.False(s.dtype().Equal(frame.Int64))
	s.False(frame.DtypeEqual(frame.Object, s.dtype()))
}

func (s *DtypeSuite) TestConstructFromString() {
	dt, err := s.dtype().ConstructFromString(s.dtype().Name())
	s.Require().NoError(err)
	s.True(s.dtype().Equal(dt))

	_, err = s.dtype().ConstructFromString("another_type")
	s.ErrorIs(err, arrow.ErrType)
}

func (s *DtypeSuite) TestArrayType() {
	typ := reflect.TypeOf(s.Cfg.Data())
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	s.Equal(s.dtype().ConstructArrayType(), typ)
}

func (s *DtypeSuite) TestRegistry() {
	dt := extarray.GetDtype(s.dtype().Name())
	s.Require().NotNil(dt)
	s.True(dt.Equal(s.dtype()))

	parsed, err := frame.ParseDtype(s.dtype().Name())
	s.Require().NoError(err)
	s.True(frame.IsExtensionArrayDtype(parsed))
}

func (s *DtypeSuite) TestNAValue() {
	arr, err := s.dtype().ConstructFromSequence([]any{s.dtype().NAValue()})
	s.Require().NoError(err)
	s.True(arr.IsNA(0))
}

func (s *DtypeSuite) TestStorageType() {
	s.NotNil(s.dtype().StorageType())
}
