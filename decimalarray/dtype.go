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

package decimalarray

import (
	"context"
	"fmt"
	"reflect"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/bigdecimal"
	"github.com/cockroachdb/apd/v3"
)

// DtypeName is the registered name of the decimal dtype.
const DtypeName = "decimal"

// DecimalDtype is the dtype of DecimalArray. It is stateless; all values
// are equal.
type DecimalDtype struct{}

// Dtype is the shared DecimalDtype instance.
var Dtype = &DecimalDtype{}

var (
	_ extarray.ExtensionDtype = (*DecimalDtype)(nil)
	_ extarray.ScalarOps      = (*DecimalDtype)(nil)
)

func init() {
	if err := extarray.RegisterDtype(Dtype); err != nil {
		panic(err)
	}
}

func (*DecimalDtype) Name() string   { return DtypeName }
func (*DecimalDtype) String() string { return DtypeName }
func (*DecimalDtype) Kind() byte     { return 'O' }

func (*DecimalDtype) Type() reflect.Type { return reflect.TypeOf((*apd.Decimal)(nil)) }

// NAValue returns a fresh NaN decimal.
func (*DecimalDtype) NAValue() any { return bigdecimal.NaN() }

func (*DecimalDtype) ConstructArrayType() reflect.Type { return reflect.TypeOf(DecimalArray{}) }

func (*DecimalDtype) ConstructFromSequence(values []any) (extarray.ExtensionArray, error) {
	return FromSequence(values)
}

func (d *DecimalDtype) ConstructFromString(s string) (extarray.ExtensionDtype, error) {
	if s == DtypeName {
		return d, nil
	}
	return nil, fmt.Errorf("%w: cannot construct a 'DecimalDtype' from '%s'", arrow.ErrType, s)
}

func (*DecimalDtype) StorageType() arrow.DataType { return arrow.BinaryTypes.String }

func (*DecimalDtype) Equal(other any) bool {
	switch o := other.(type) {
	case *DecimalDtype:
		return o != nil
	case DecimalDtype:
		return true
	case string:
		return o == DtypeName
	}
	return false
}

func (d *DecimalDtype) IsDtype(v any) bool {
	if s, ok := v.(string); ok {
		return s == DtypeName
	}
	dt, ok := extarray.DtypeOf(v)
	return ok && d.Equal(dt)
}

func (*DecimalDtype) IsNA(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case *apd.Decimal:
		return bigdecimal.IsNaN(v)
	case apd.Decimal:
		return bigdecimal.IsNaN(&v)
	}
	return false
}

// ScalarEqual compares two scalars numerically. NaN is never equal.
func (*DecimalDtype) ScalarEqual(a, b any) bool {
	x, err := bigdecimal.FromValue(a, true)
	if err != nil {
		return false
	}
	y, err := bigdecimal.FromValue(b, true)
	if err != nil {
		return false
	}
	return bigdecimal.Equal(x, y)
}

func (*DecimalDtype) ScalarArith(ctx context.Context, op extarray.ArithmeticOp, a, b any) (any, error) {
	x, err := bigdecimal.FromValue(a, false)
	if err != nil {
		return nil, err
	}
	y, err := bigdecimal.FromValue(b, false)
	if err != nil {
		return nil, err
	}
	return arith(bigdecimal.FromContext(ctx), op, x, y)
}

func (*DecimalDtype) ScalarCompare(_ context.Context, op extarray.CompareOp, a, b any) (bool, error) {
	x, err := bigdecimal.FromValue(a, true)
	if err != nil {
		return false, err
	}
	y, err := bigdecimal.FromValue(b, true)
	if err != nil {
		return false, err
	}
	return compare(op, x, y), nil
}
