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
)

var (
	nan      = &apd.Decimal{Form: apd.NaN}
	infinity = &apd.Decimal{Form: apd.Infinite}
)

// NaN returns a new quiet NaN, the missing-value sentinel.
func NaN() *apd.Decimal { return new(apd.Decimal).Set(nan) }

// Infinity returns a new signed infinity.
func Infinity(negative bool) *apd.Decimal {
	d := new(apd.Decimal).Set(infinity)
	d.Negative = negative
	return d
}

// IsNaN reports whether d is the missing-value sentinel. A nil decimal is
// considered missing as well.
func IsNaN(d *apd.Decimal) bool {
	return d == nil || d.Form == apd.NaN || d.Form == apd.NaNSignaling
}

// New returns coeff * 10^exponent.
func New(coeff int64, exponent int32) *apd.Decimal { return apd.New(coeff, exponent) }

// FromInt64 returns the exact decimal value of v.
func FromInt64(v int64) *apd.Decimal { return apd.New(v, 0) }

// FromFloat64 returns the shortest decimal that round-trips to f. NaN maps
// to the missing-value sentinel and infinities to signed Infinity.
func FromFloat64(f float64) (*apd.Decimal, error) {
	switch {
	case math.IsNaN(f):
		return NaN(), nil
	case math.IsInf(f, 0):
		return Infinity(f < 0), nil
	}
	d, err := new(apd.Decimal).SetFloat64(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decimal from float %v: %s", arrow.ErrInvalid, f, err)
	}
	return d, nil
}

// Parse parses a decimal literal. "NaN" yields the missing-value sentinel.
func Parse(s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid decimal literal %q", arrow.ErrInvalid, s)
	}
	return d, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) *apd.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Equal is the primitive's own equality: numeric comparison where NaN is
// unequal to everything, including another NaN.
func Equal(a, b *apd.Decimal) bool {
	if IsNaN(a) || IsNaN(b) {
		return false
	}
	return a.Cmp(b) == 0
}

// NACompare is the missing-aware comparator: two NaN sentinels are equal,
// everything else falls back to Equal.
func NACompare(a, b *apd.Decimal) bool {
	if IsNaN(a) && IsNaN(b) {
		return true
	}
	return Equal(a, b)
}

// Cmp orders two decimals. ok is false when either side is NaN since the
// sentinel is unordered.
func Cmp(a, b *apd.Decimal) (cmp int, ok bool) {
	if IsNaN(a) || IsNaN(b) {
		return 0, false
	}
	return a.Cmp(b), true
}

// Key returns a canonical string for d such that numerically equal values
// share a key (1.0 and 1.00 both map to "1"). All NaNs share one key.
func Key(d *apd.Decimal) string {
	if IsNaN(d) {
		return "NaN"
	}
	if d.IsZero() {
		return "0"
	}
	var reduced apd.Decimal
	reduced.Reduce(d)
	return reduced.String()
}

// Copy returns a deep copy of d.
func Copy(d *apd.Decimal) *apd.Decimal {
	if d == nil {
		return NaN()
	}
	return new(apd.Decimal).Set(d)
}
