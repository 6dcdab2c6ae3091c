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
	"math"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/bigdecimal"
	"github.com/cockroachdb/apd/v3"
)

// column is the storage behind a Series or an Index. Positions passed to
// Take are already resolved; -1 yields a missing entry.
type column interface {
	Dtype() Dtype
	Len() int
	// Value returns the scalar at i; missing entries return the dtype's
	// missing value (nil, NaN or the extension NA value).
	Value(i int) any
	IsNA(i int) bool
	Take(positions []int) (column, error)
	Filter(mask []bool) (column, error)
	Slice(i, j int) column
	FillNA(value any) (column, error)
	NBytes() int
	// Less orders two non-missing entries.
	Less(i, j int) bool
	ValueString(i int) string
}

var mem = memory.DefaultAllocator

const naKey = "\x00NA"

// valueKey returns a hashable key such that scalars that compare equal
// share a key across int, float and decimal representations.
func valueKey(v any) string {
	switch v := v.(type) {
	case nil:
		return naKey
	case int:
		return "n:" + strconv.FormatInt(int64(v), 10)
	case int64:
		return "n:" + strconv.FormatInt(v, 10)
	case int32:
		return "n:" + strconv.FormatInt(int64(v), 10)
	case float64:
		if math.IsNaN(v) {
			return naKey
		}
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return "n:" + strconv.FormatInt(int64(v), 10)
		}
		return "f:" + strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return "b:" + strconv.FormatBool(v)
	case string:
		return "s:" + v
	case *apd.Decimal:
		if bigdecimal.IsNaN(v) {
			return naKey
		}
		if v.Form != apd.Finite {
			return "d:" + v.String()
		}
		var integ, frac apd.Decimal
		v.Modf(&integ, &frac)
		if frac.IsZero() {
			if n, err := integ.Int64(); err == nil {
				return "n:" + strconv.FormatInt(n, 10)
			}
		}
		return "d:" + bigdecimal.Key(v)
	}
	return fmt.Sprintf("%T:%v", v, v)
}

func columnKeys(c column) []string {
	keys := make([]string, c.Len())
	for i := range keys {
		if c.IsNA(i) {
			keys[i] = naKey
			continue
		}
		keys[i] = valueKey(c.Value(i))
	}
	return keys
}

func columnValues(c column) []any {
	out := make([]any, c.Len())
	for i := range out {
		if c.IsNA(i) {
			out[i] = nil
			continue
		}
		out[i] = c.Value(i)
	}
	return out
}

func naMask(c column) []bool {
	mask := make([]bool, c.Len())
	for i := range mask {
		mask[i] = c.IsNA(i)
	}
	return mask
}

func maskPositions(mask []bool) []int {
	pos := make([]int, 0, len(mask))
	for i, m := range mask {
		if m {
			pos = append(pos, i)
		}
	}
	return pos
}

func rangePositions(n int) []int {
	pos := make([]int, n)
	for i := range pos {
		pos[i] = i
	}
	return pos
}

// newColumn builds a column from Go or Arrow data without any dtype
// coercion.
func newColumn(data any) (column, error) {
	switch d := data.(type) {
	case column:
		return d, nil
	case extarray.ExtensionArray:
		return &extColumn{arr: d}, nil
	case arrow.Array:
		return newNativeColumnFromArrow(d)
	case []int64:
		return newInt64Column(d, nil), nil
	case []int:
		vals := make([]int64, len(d))
		for i, v := range d {
			vals[i] = int64(v)
		}
		return newInt64Column(vals, nil), nil
	case []float64:
		return newFloat64Column(d, nil), nil
	case []bool:
		return newBoolColumn(d, nil), nil
	case []string:
		return newStringColumn(d, nil), nil
	case []any:
		return inferColumn(d), nil
	case nil:
		return &objectColumn{}, nil
	}
	return nil, fmt.Errorf("%w: cannot build a column from %T", arrow.ErrType, data)
}

// inferColumn picks the narrowest native dtype holding every non-missing
// value, falling back to Object.
func inferColumn(vals []any) column {
	var nInt, nFloat, nBool, nStr, nNA int
	for _, v := range vals {
		switch v := v.(type) {
		case nil:
			nNA++
		case int, int64, int32:
			nInt++
		case float64:
			if math.IsNaN(v) {
				nNA++
			} else {
				nFloat++
			}
		case bool:
			nBool++
		case string:
			nStr++
		default:
			return &objectColumn{vals: append([]any(nil), vals...)}
		}
	}
	valid := len(vals) - nNA
	switch {
	case valid == 0:
		return &objectColumn{vals: append([]any(nil), vals...)}
	case nInt == valid:
		out, ok := make([]int64, len(vals)), make([]bool, len(vals))
		for i, v := range vals {
			if n, isInt := toInt64(v); isInt {
				out[i], ok[i] = n, true
			}
		}
		return newInt64Column(out, ok)
	case nInt+nFloat == valid:
		out, ok := make([]float64, len(vals)), make([]bool, len(vals))
		for i, v := range vals {
			if f, isNum := toFloat64(v); isNum && !math.IsNaN(f) {
				out[i], ok[i] = f, true
			}
		}
		return newFloat64Column(out, ok)
	case nBool == valid:
		out, ok := make([]bool, len(vals)), make([]bool, len(vals))
		for i, v := range vals {
			out[i], ok[i] = v.(bool)
		}
		return newBoolColumn(out, ok)
	case nStr == valid:
		out, ok := make([]string, len(vals)), make([]bool, len(vals))
		for i, v := range vals {
			out[i], ok[i] = v.(string)
		}
		return newStringColumn(out, ok)
	}
	return &objectColumn{vals: append([]any(nil), vals...)}
}

func toInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	if n, ok := toInt64(v); ok {
		return float64(n), true
	}
	return 0, false
}
