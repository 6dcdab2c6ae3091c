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

package frame

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray"
)

// Dtype is the type of a column: either a *NativeDtype or an
// extarray.ExtensionDtype.
type Dtype interface {
	Name() string
	String() string
}

// NativeDtype is a built-in column type.
type NativeDtype struct {
	name string
	kind byte
	typ  arrow.DataType
}

func (d *NativeDtype) Name() string   { return d.name }
func (d *NativeDtype) String() string { return d.name }

// Kind is the single character kind code: 'i', 'f', 'b', 'U' or 'O'.
func (d *NativeDtype) Kind() byte { return d.kind }

// ArrowType is the storage type, nil for Object.
func (d *NativeDtype) ArrowType() arrow.DataType { return d.typ }

var (
	Int64   = &NativeDtype{name: "int64", kind: 'i', typ: arrow.PrimitiveTypes.Int64}
	Float64 = &NativeDtype{name: "float64", kind: 'f', typ: arrow.PrimitiveTypes.Float64}
	Bool    = &NativeDtype{name: "bool", kind: 'b', typ: arrow.FixedWidthTypes.Boolean}
	String  = &NativeDtype{name: "string", kind: 'U', typ: arrow.BinaryTypes.String}
	Object  = &NativeDtype{name: "object", kind: 'O'}
)

var nativeByName = map[string]*NativeDtype{
	"int64":   Int64,
	"int":     Int64,
	"float64": Float64,
	"float":   Float64,
	"bool":    Bool,
	"string":  String,
	"str":     String,
	"object":  Object,
}

// ParseDtype resolves v to a Dtype. v may be a Dtype, an arrow.DataType, or
// a name; names are looked up among the native dtypes first and then in the
// extension dtype registry.
func ParseDtype(v any) (Dtype, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case arrow.DataType:
		if dt := nativeFromArrow(v); dt != nil {
			return dt, nil
		}
		return nil, fmt.Errorf("%w: no native dtype for arrow type %s", arrow.ErrType, v)
	case Dtype:
		return v, nil
	case string:
		if dt, ok := nativeByName[strings.ToLower(v)]; ok {
			return dt, nil
		}
		if dt := extarray.GetDtype(v); dt != nil {
			return dt, nil
		}
		return nil, fmt.Errorf("%w: data type '%s' not understood", arrow.ErrType, v)
	}
	return nil, fmt.Errorf("%w: cannot interpret %T as a data type", arrow.ErrType, v)
}

func nativeFromArrow(dt arrow.DataType) *NativeDtype {
	switch dt.ID() {
	case arrow.INT64:
		return Int64
	case arrow.FLOAT64:
		return Float64
	case arrow.BOOL:
		return Bool
	case arrow.STRING:
		return String
	}
	return nil
}

// IsExtensionArrayDtype reports whether v is, names, or carries an
// extension dtype.
func IsExtensionArrayDtype(v any) bool {
	if _, ok := v.(*NativeDtype); ok {
		return false
	}
	return extarray.IsExtensionDtype(v)
}

// IsNumericDtype reports whether dt holds numbers that native arithmetic
// and numeric aggregations understand.
func IsNumericDtype(dt Dtype) bool { return dt == Int64 || dt == Float64 || dt == Bool }

// IsObjectDtype reports whether dt is the generic object dtype. Extension
// dtypes are never object dtypes, whatever their Kind.
func IsObjectDtype(dt Dtype) bool { return dt == Object }

func IsStringDtype(dt Dtype) bool { return dt == String }

// DtypeEqual reports whether a and b describe the same type.
func DtypeEqual(a, b Dtype) bool {
	if a == nil || b == nil {
		return a == b
	}
	if ext, ok := a.(extarray.ExtensionDtype); ok {
		return ext.Equal(b)
	}
	if _, ok := b.(extarray.ExtensionDtype); ok {
		return false
	}
	return a.Name() == b.Name()
}
