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

package bigdecimal

import (
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/cockroachdb/apd/v3"
	"golang.org/x/exp/constraints"
)

// FromInteger returns the exact decimal value of any Go integer.
func FromInteger[T constraints.Integer](v T) *apd.Decimal {
	if uint64(v) > math.MaxInt64 && v > 0 {
		d := new(apd.Decimal)
		d.Coeff.SetUint64(uint64(v))
		return d
	}
	return apd.New(int64(v), 0)
}

// FromValue coerces a Go scalar to a decimal. Integers convert exactly;
// floats are accepted only when allowFloat is set, mirroring the rule that
// decimal arithmetic refuses binary floats while comparison tolerates them.
// nil maps to NaN.
func FromValue(v any, allowFloat bool) (*apd.Decimal, error) {
	switch v := v.(type) {
	case nil:
		return NaN(), nil
	case *apd.Decimal:
		if v == nil {
			return NaN(), nil
		}
		return v, nil
	case apd.Decimal:
		return &v, nil
	case int:
		return FromInteger(v), nil
	case int8:
		return FromInteger(v), nil
	case int16:
		return FromInteger(v), nil
	case int32:
		return FromInteger(v), nil
	case int64:
		return FromInteger(v), nil
	case uint:
		return FromInteger(v), nil
	case uint8:
		return FromInteger(v), nil
	case uint16:
		return FromInteger(v), nil
	case uint32:
		return FromInteger(v), nil
	case uint64:
		return FromInteger(v), nil
	case float32:
		if allowFloat {
			return FromFloat64(float64(v))
		}
	case float64:
		if allowFloat {
			return FromFloat64(v)
		}
	}
	return nil, fmt.Errorf("%w: unsupported operand type %T for decimal", arrow.ErrType, v)
}
