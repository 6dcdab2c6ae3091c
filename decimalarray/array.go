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
	"fmt"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/bigdecimal"
	"github.com/cockroachdb/apd/v3"
)

// DecimalArray is an extension array of *apd.Decimal values. Entries are
// never nil; missing entries hold a NaN decimal. Stored decimals are not
// mutated after construction, so they may be shared between arrays.
type DecimalArray struct {
	values []*apd.Decimal
}

var _ extarray.ExtensionArray = (*DecimalArray)(nil)

// New builds an array holding a copy of values. nil entries become NaN.
func New(values []*apd.Decimal) *DecimalArray {
	out := make([]*apd.Decimal, len(values))
	for i, v := range values {
		out[i] = bigdecimal.Copy(v)
	}
	return &DecimalArray{values: out}
}

// FromSequence builds an array from decimal scalars. nil is accepted as
// missing; any other type fails with arrow.ErrType.
func FromSequence(values []any) (*DecimalArray, error) {
	out := make([]*apd.Decimal, len(values))
	for i, v := range values {
		switch v := v.(type) {
		case nil:
			out[i] = bigdecimal.NaN()
		case *apd.Decimal:
			out[i] = bigdecimal.Copy(v)
		case apd.Decimal:
			out[i] = bigdecimal.Copy(&v)
		default:
			return nil, fmt.Errorf("%w: all values must be of type decimal, got %T at position %d",
				arrow.ErrType, v, i)
		}
	}
	return &DecimalArray{values: out}, nil
}

// FromStrings parses each element as a decimal literal.
func FromStrings(values []string) (*DecimalArray, error) {
	out := make([]*apd.Decimal, len(values))
	for i, s := range values {
		d, err := bigdecimal.Parse(s)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return &DecimalArray{values: out}, nil
}

func (a *DecimalArray) Dtype() extarray.ExtensionDtype { return Dtype }
func (a *DecimalArray) Len() int                       { return len(a.values) }

func (a *DecimalArray) Value(i int) any { return a.values[i] }

// Decimal returns the value at i.
func (a *DecimalArray) Decimal(i int) *apd.Decimal { return a.values[i] }

// Decimals returns a copy of the backing slice.
func (a *DecimalArray) Decimals() []*apd.Decimal {
	out := make([]*apd.Decimal, len(a.values))
	copy(out, a.values)
	return out
}

// SetValue stores v at i. Integers are converted exactly, nil stores NaN;
// floats are rejected.
func (a *DecimalArray) SetValue(i int, v any) error {
	if i < 0 || i >= len(a.values) {
		return fmt.Errorf("%w: index %d is out of bounds for length %d", arrow.ErrIndex, i, len(a.values))
	}
	d, err := bigdecimal.FromValue(v, false)
	if err != nil {
		return err
	}
	a.values[i] = bigdecimal.Copy(d)
	return nil
}

func (a *DecimalArray) IsNA(i int) bool { return bigdecimal.IsNaN(a.values[i]) }

func (a *DecimalArray) Slice(i, j int) extarray.ExtensionArray {
	return a.slice(i, j)
}

func (a *DecimalArray) slice(i, j int) *DecimalArray {
	out := make([]*apd.Decimal, j-i)
	copy(out, a.values[i:j])
	return &DecimalArray{values: out}
}

// Take gathers values by position. With allowFill, positions marked -1
// receive fill verbatim, which must be a decimal or nil for NaN.
func (a *DecimalArray) Take(indices []int, allowFill bool, fill any) (extarray.ExtensionArray, error) {
	pos, err := extarray.ResolveTake(len(a.values), indices, allowFill)
	if err != nil {
		return nil, err
	}

	var fillValue *apd.Decimal
	if allowFill {
		switch f := fill.(type) {
		case nil:
			fillValue = bigdecimal.NaN()
		case *apd.Decimal:
			fillValue = bigdecimal.Copy(f)
		case apd.Decimal:
			fillValue = bigdecimal.Copy(&f)
		default:
			return nil, fmt.Errorf("%w: fill value must be a decimal, got %T", arrow.ErrType, fill)
		}
	}

	out := make([]*apd.Decimal, len(pos))
	for i, p := range pos {
		if p == extarray.FillPosition {
			out[i] = fillValue
			continue
		}
		out[i] = a.values[p]
	}
	return &DecimalArray{values: out}, nil
}

func (a *DecimalArray) Copy() extarray.ExtensionArray { return a.slice(0, len(a.values)) }

func (a *DecimalArray) ConcatSameType(arrs []extarray.ExtensionArray) (extarray.ExtensionArray, error) {
	n := 0
	for _, arr := range arrs {
		n += arr.Len()
	}
	out := make([]*apd.Decimal, 0, n)
	for _, arr := range arrs {
		other, ok := arr.(*DecimalArray)
		if !ok {
			return nil, fmt.Errorf("%w: cannot concatenate %s with %s", arrow.ErrType, Dtype, arr.Dtype())
		}
		out = append(out, other.values...)
	}
	return &DecimalArray{values: out}, nil
}

var decimalSize = int(unsafe.Sizeof(apd.Decimal{}))

func (a *DecimalArray) NBytes() int {
	n := len(a.values) * int(unsafe.Sizeof(uintptr(0)))
	for _, v := range a.values {
		n += decimalSize + (v.Coeff.BitLen()+7)/8
	}
	return n
}

func (a *DecimalArray) Less(i, j int) bool {
	cmp, ok := bigdecimal.Cmp(a.values[i], a.values[j])
	return ok && cmp < 0
}

func (a *DecimalArray) ValuesForFactorize() []string {
	keys := make([]string, len(a.values))
	for i, v := range a.values {
		keys[i] = bigdecimal.Key(v)
	}
	return keys
}

func (a *DecimalArray) String() string {
	return extarray.Format("DecimalArray", a, func(i int) string { return a.values[i].String() })
}
