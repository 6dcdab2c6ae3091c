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
	"strings"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray/bigdecimal"
	"github.com/cockroachdb/apd/v3"
)

// objectColumn holds arbitrary Go values. nil, NaN floats and NaN decimals
// are missing.
type objectColumn struct {
	vals []any
}

func toObject(c column) *objectColumn {
	if o, ok := c.(*objectColumn); ok {
		return o
	}
	vals := make([]any, c.Len())
	for i := range vals {
		vals[i] = c.Value(i)
	}
	return &objectColumn{vals: vals}
}

func isMissingScalar(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(v)
	case *apd.Decimal:
		return bigdecimal.IsNaN(v)
	}
	return false
}

func (c *objectColumn) Dtype() Dtype     { return Object }
func (c *objectColumn) Len() int         { return len(c.vals) }
func (c *objectColumn) Value(i int) any  { return c.vals[i] }
func (c *objectColumn) IsNA(i int) bool  { return isMissingScalar(c.vals[i]) }
func (c *objectColumn) Slice(i, j int) column {
	return &objectColumn{vals: append([]any(nil), c.vals[i:j]...)}
}

func (c *objectColumn) ValueString(i int) string {
	if c.vals[i] == nil {
		return "None"
	}
	return fmt.Sprint(c.vals[i])
}

// Less orders values of the same kind; values of different kinds order by
// their type names.
func (c *objectColumn) Less(i, j int) bool {
	return compareScalars(c.vals[i], c.vals[j]) < 0
}

func (c *objectColumn) Take(positions []int) (column, error) {
	out := make([]any, len(positions))
	for i, p := range positions {
		if p >= 0 {
			out[i] = c.vals[p]
		}
	}
	return &objectColumn{vals: out}, nil
}

func (c *objectColumn) Filter(mask []bool) (column, error) {
	if len(mask) != len(c.vals) {
		return nil, fmt.Errorf("%w: boolean mask of length %d for %d values", arrow.ErrIndex, len(mask), len(c.vals))
	}
	return c.Take(maskPositions(mask))
}

func (c *objectColumn) FillNA(value any) (column, error) {
	out := make([]any, len(c.vals))
	for i, v := range c.vals {
		if isMissingScalar(v) {
			v = value
		}
		out[i] = v
	}
	return &objectColumn{vals: out}, nil
}

func (c *objectColumn) NBytes() int {
	return len(c.vals) * int(unsafe.Sizeof(any(nil)))
}

// compareScalars orders two non-missing scalars. Numbers of any
// representation compare numerically.
func compareScalars(a, b any) int {
	if x, ok := toDecimal(a); ok {
		if y, ok := toDecimal(b); ok {
			cmp, _ := bigdecimal.Cmp(x, y)
			return cmp
		}
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			}
			return 1
		}
	}
	return strings.Compare(fmt.Sprintf("%T", a), fmt.Sprintf("%T", b))
}

func toDecimal(v any) (*apd.Decimal, bool) {
	if _, ok := v.(bool); ok {
		return nil, false
	}
	d, err := bigdecimal.FromValue(v, true)
	if err != nil || bigdecimal.IsNaN(d) {
		return nil, false
	}
	return d, true
}
