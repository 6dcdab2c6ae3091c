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

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow/go/extarray/bigdecimal"
)

// CastTo converts the values to dt. Float64 conversion rounds to the
// nearest double, Int64 conversion truncates toward zero; any other target
// is reached by casting the decimal literals with arrow's compute casts.
// NaN becomes null.
func (a *DecimalArray) CastTo(dt arrow.DataType) (arrow.Array, error) {
	mem := memory.DefaultAllocator
	switch dt.ID() {
	case arrow.EXTENSION:
		if ext, ok := dt.(arrow.ExtensionType); ok && ext.ExtensionName() == ExtensionName {
			return a.ToArrow(mem), nil
		}
	case arrow.STRING:
		bldr := array.NewStringBuilder(mem)
		defer bldr.Release()
		for _, v := range a.values {
			if bigdecimal.IsNaN(v) {
				bldr.AppendNull()
				continue
			}
			bldr.Append(v.String())
		}
		return bldr.NewArray(), nil
	case arrow.FLOAT64:
		bldr := array.NewFloat64Builder(mem)
		defer bldr.Release()
		for _, v := range a.values {
			if bigdecimal.IsNaN(v) {
				bldr.AppendNull()
				continue
			}
			f, err := v.Float64()
			if err != nil {
				return nil, fmt.Errorf("%w: cannot convert %s to float64: %s", arrow.ErrInvalid, v, err)
			}
			bldr.Append(f)
		}
		return bldr.NewArray(), nil
	case arrow.INT64:
		bldr := array.NewInt64Builder(mem)
		defer bldr.Release()
		c := bigdecimal.Default()
		for _, v := range a.values {
			if bigdecimal.IsNaN(v) {
				bldr.AppendNull()
				continue
			}
			t, err := c.Truncate(v)
			if err != nil {
				return nil, err
			}
			n, err := t.Int64()
			if err != nil {
				return nil, fmt.Errorf("%w: %s does not fit in int64", arrow.ErrInvalid, v)
			}
			bldr.Append(n)
		}
		return bldr.NewArray(), nil
	}

	str, err := a.CastTo(arrow.BinaryTypes.String)
	if err != nil {
		return nil, err
	}
	out, err := compute.CastArray(context.Background(), str, compute.SafeCastOptions(dt))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot cast decimal to %s: %s", arrow.ErrNotImplemented, dt, err)
	}
	return out, nil
}
