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
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow/go/extarray/bigdecimal"
	"github.com/cockroachdb/apd/v3"
	"github.com/goccy/go-json"
)

// ExtensionName is the Arrow extension name under which decimal columns are
// exported.
const ExtensionName = "extarray.decimal"

func init() {
	if err := arrow.RegisterExtensionType(NewDecimalType()); err != nil {
		panic(err)
	}
}

// DecimalType is an Arrow extension type holding decimal literals in utf8
// storage. Nulls stand for NaN.
type DecimalType struct {
	arrow.ExtensionBase
}

// NewDecimalType returns a DecimalType with utf8 storage.
func NewDecimalType() *DecimalType {
	return &DecimalType{ExtensionBase: arrow.ExtensionBase{Storage: arrow.BinaryTypes.String}}
}

// ArrayType returns TypeOf(DecimalArrowArray{}).
func (*DecimalType) ArrayType() reflect.Type { return reflect.TypeOf(DecimalArrowArray{}) }

func (*DecimalType) ExtensionName() string { return ExtensionName }

func (e *DecimalType) String() string { return fmt.Sprintf("extension<%s>", ExtensionName) }

func (*DecimalType) Serialize() string { return "" }

func (*DecimalType) Deserialize(storageType arrow.DataType, _ string) (arrow.ExtensionType, error) {
	if !arrow.TypeEqual(storageType, arrow.BinaryTypes.String) {
		return nil, fmt.Errorf("%w: invalid storage type for DecimalType: %s", arrow.ErrType, storageType)
	}
	return NewDecimalType(), nil
}

func (e *DecimalType) ExtensionEquals(other arrow.ExtensionType) bool {
	return e.ExtensionName() == other.ExtensionName()
}

func (e *DecimalType) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"name":"%s","metadata":"%s"}`, e.ExtensionName(), e.Serialize())), nil
}

func (*DecimalType) NewBuilder(mem memory.Allocator) array.Builder {
	return NewDecimalBuilder(mem)
}

// DecimalArrowArray is the Arrow array of a DecimalType.
type DecimalArrowArray struct {
	array.ExtensionArrayBase
}

// Value returns the decimal at i, or NaN for a null slot.
func (a *DecimalArrowArray) Value(i int) *apd.Decimal {
	if a.IsNull(i) {
		return bigdecimal.NaN()
	}
	return bigdecimal.MustParse(a.Storage().(*array.String).Value(i))
}

func (a *DecimalArrowArray) ValueStr(i int) string {
	if a.IsNull(i) {
		return array.NullValueStr
	}
	return a.Storage().(*array.String).Value(i)
}

func (a *DecimalArrowArray) String() string {
	o := new(strings.Builder)
	o.WriteString("[")
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			o.WriteString(" ")
		}
		o.WriteString(a.ValueStr(i))
	}
	o.WriteString("]")
	return o.String()
}

func (a *DecimalArrowArray) GetOneForMarshal(i int) interface{} {
	if a.IsNull(i) {
		return nil
	}
	return a.ValueStr(i)
}

func (a *DecimalArrowArray) MarshalJSON() ([]byte, error) {
	values := make([]interface{}, a.Len())
	for i := range values {
		values[i] = a.GetOneForMarshal(i)
	}
	return json.Marshal(values)
}

// DecimalBuilder builds DecimalArrowArray values.
type DecimalBuilder struct {
	*array.ExtensionBuilder
}

func NewDecimalBuilder(mem memory.Allocator) *DecimalBuilder {
	return &DecimalBuilder{ExtensionBuilder: array.NewExtensionBuilder(mem, NewDecimalType())}
}

func (b *DecimalBuilder) storage() *array.StringBuilder {
	return b.ExtensionBuilder.Builder.(*array.StringBuilder)
}

// Append adds d, storing NaN as null.
func (b *DecimalBuilder) Append(d *apd.Decimal) {
	if bigdecimal.IsNaN(d) {
		b.AppendNull()
		return
	}
	b.storage().Append(d.String())
}

func (b *DecimalBuilder) AppendValues(v []*apd.Decimal) {
	b.Reserve(len(v))
	for _, d := range v {
		b.Append(d)
	}
}

func (b *DecimalBuilder) AppendValueFromString(s string) error {
	if s == array.NullValueStr {
		b.AppendNull()
		return nil
	}
	d, err := bigdecimal.Parse(s)
	if err != nil {
		return err
	}
	b.Append(d)
	return nil
}

func (b *DecimalBuilder) UnmarshalOne(dec *json.Decoder) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}

	switch v := t.(type) {
	case nil:
		b.AppendNull()
		return nil
	case string:
		return b.AppendValueFromString(v)
	case json.Number:
		return b.AppendValueFromString(v.String())
	case float64:
		d, err := bigdecimal.FromFloat64(v)
		if err != nil {
			return err
		}
		b.Append(d)
		return nil
	default:
		return &json.UnmarshalTypeError{
			Value:  fmt.Sprint(t),
			Type:   reflect.TypeOf(""),
			Offset: dec.InputOffset(),
			Struct: "Decimal",
		}
	}
}

func (b *DecimalBuilder) Unmarshal(dec *json.Decoder) error {
	for dec.More() {
		if err := b.UnmarshalOne(dec); err != nil {
			return err
		}
	}
	return nil
}

func (b *DecimalBuilder) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	t, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := t.(json.Delim); !ok || delim != '[' {
		return fmt.Errorf("decimal builder must unpack from json array, found %s", delim)
	}
	return b.Unmarshal(dec)
}

// ToArrow exports the array as a DecimalArrowArray.
func (a *DecimalArray) ToArrow(mem memory.Allocator) arrow.Array {
	bldr := NewDecimalBuilder(mem)
	defer bldr.Release()
	bldr.AppendValues(a.values)
	return bldr.NewArray()
}

// FromArrow imports decimals from a DecimalArrowArray or a utf8 array of
// decimal literals. Nulls become NaN.
func FromArrow(arr arrow.Array) (*DecimalArray, error) {
	switch arr := arr.(type) {
	case *DecimalArrowArray:
		return FromArrow(arr.Storage())
	case *array.String:
		out := make([]*apd.Decimal, arr.Len())
		for i := range out {
			if arr.IsNull(i) {
				out[i] = bigdecimal.NaN()
				continue
			}
			d, err := bigdecimal.Parse(arr.Value(i))
			if err != nil {
				return nil, err
			}
			out[i] = d
		}
		return &DecimalArray{values: out}, nil
	case *array.Int64:
		out := make([]*apd.Decimal, arr.Len())
		for i := range out {
			if arr.IsNull(i) {
				out[i] = bigdecimal.NaN()
			} else {
				out[i] = bigdecimal.FromInt64(arr.Value(i))
			}
		}
		return &DecimalArray{values: out}, nil
	case *array.Float64:
		out := make([]*apd.Decimal, arr.Len())
		for i := range out {
			if arr.IsNull(i) {
				out[i] = bigdecimal.NaN()
				continue
			}
			d, err := bigdecimal.FromFloat64(arr.Value(i))
			if err != nil {
				return nil, err
			}
			out[i] = d
		}
		return &DecimalArray{values: out}, nil
	}
	return nil, fmt.Errorf("%w: cannot build a decimal array from %s", arrow.ErrType, arr.DataType())
}
