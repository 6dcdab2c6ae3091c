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

package extarray

import (
	"context"
	"fmt"
	"reflect"

	"github.com/apache/arrow-go/v18/arrow"
)

// ExtensionDtype describes the logical type of an ExtensionArray. Dtypes are
// immutable and are compared by value: any two instances describing the same
// type are Equal.
type ExtensionDtype interface {
	fmt.Stringer
	// Name is the string identifier used for registration and for
	// constructing by name.
	Name() string
	// Kind is the single character kind code. 'O' denotes object-like
	// scalars that have no native representation.
	Kind() byte
	// Type is the Go type of a single non-missing scalar.
	Type() reflect.Type
	// NAValue is the scalar used for missing entries.
	NAValue() any
	// ConstructArrayType returns reflect.TypeOf of the concrete array
	// struct built for this dtype.
	ConstructArrayType() reflect.Type
	ConstructFromSequence(values []any) (ExtensionArray, error)
	// ConstructFromString builds a dtype from its string form. Dtypes that
	// cannot be described by a string return arrow.ErrNotImplemented.
	ConstructFromString(s string) (ExtensionDtype, error)
	// StorageType is the Arrow type used to hold the values when the array
	// is exported.
	StorageType() arrow.DataType
	// Equal accepts another dtype or a dtype name.
	Equal(other any) bool
	// IsDtype reports whether v names, is, or carries this dtype.
	IsDtype(v any) bool
}

// ScalarOps is implemented by dtypes that can operate on their own scalars
// without going through an array. Containers use it for element-wise
// fallbacks, e.g. when combining two series value by value.
type ScalarOps interface {
	IsNA(v any) bool
	// ScalarEqual is the primitive equality of the scalar type, which need
	// not be reflexive for missing values.
	ScalarEqual(a, b any) bool
	ScalarArith(ctx context.Context, op ArithmeticOp, a, b any) (any, error)
	ScalarCompare(ctx context.Context, op CompareOp, a, b any) (bool, error)
}

// ExtensionArray is a fixed-length sequence of scalars of one ExtensionDtype.
// Missing entries hold the dtype's NAValue.
type ExtensionArray interface {
	fmt.Stringer
	Dtype() ExtensionDtype
	Len() int
	// Value returns the scalar at i. It panics if i is out of range.
	Value(i int) any
	// SetValue replaces the scalar at i. Values that are not scalars of the
	// dtype fail with arrow.ErrType.
	SetValue(i int, v any) error
	IsNA(i int) bool
	// Slice returns the half-open range [i, j). The result does not share
	// storage with the receiver.
	Slice(i, j int) ExtensionArray
	// Take gathers the values at indices. See ResolveTake for how indices
	// are interpreted; when allowFill is set, fill positions receive fill
	// unchanged, or NAValue when fill is nil.
	Take(indices []int, allowFill bool, fill any) (ExtensionArray, error)
	Copy() ExtensionArray
	// ConcatSameType concatenates arrs, which must all share the receiver's
	// dtype. The receiver only selects the implementation.
	ConcatSameType(arrs []ExtensionArray) (ExtensionArray, error)
	// NBytes is an estimate of the memory held by the values.
	NBytes() int
	// Less orders two non-missing entries.
	Less(i, j int) bool
	// ValuesForFactorize returns one key per entry such that equal scalars
	// share a key. Keys of missing entries are unspecified.
	ValuesForFactorize() []string
	// CastTo converts the values into a native Arrow array. Missing entries
	// become nulls.
	CastTo(dt arrow.DataType) (arrow.Array, error)
	// Arith applies op element-wise against a scalar, a sequence or another
	// array of the same length.
	Arith(ctx context.Context, op ArithmeticOp, other any) (ExtensionArray, error)
	// Compare applies op element-wise; comparisons involving a missing
	// entry are false except for OpNe.
	Compare(ctx context.Context, op CompareOp, other any) ([]bool, error)
}

// ValueCounter is implemented by arrays that support counting distinct
// values. It returns the distinct values in descending order of frequency
// along with their counts.
type ValueCounter interface {
	ValueCounts(dropna bool) (ExtensionArray, []int64, error)
}

// DtypeCarrier is implemented by containers that may hold an extension
// array, such as a series.
type DtypeCarrier interface {
	ExtensionDtype() (ExtensionDtype, bool)
}
