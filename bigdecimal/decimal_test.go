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

package bigdecimal_test

import (
	"math"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray/bigdecimal"
	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNaNSemantics(t *testing.T) {
	na := bigdecimal.NaN()
	assert.True(t, bigdecimal.IsNaN(na))
	assert.True(t, bigdecimal.IsNaN(nil))
	assert.False(t, bigdecimal.Equal(na, bigdecimal.NaN()))
	assert.True(t, bigdecimal.NACompare(na, bigdecimal.NaN()))
	assert.False(t, bigdecimal.NACompare(na, bigdecimal.FromInt64(1)))

	_, ok := bigdecimal.Cmp(na, bigdecimal.FromInt64(1))
	assert.False(t, ok)
}

func TestEqualIgnoresScale(t *testing.T) {
	a := bigdecimal.MustParse("1.0")
	b := bigdecimal.MustParse("1.00")
	assert.True(t, bigdecimal.Equal(a, b))
	assert.Equal(t, bigdecimal.Key(a), bigdecimal.Key(b))
	assert.Equal(t, "0", bigdecimal.Key(bigdecimal.MustParse("-0.000")))
	assert.Equal(t, "NaN", bigdecimal.Key(nil))
}

func TestParse(t *testing.T) {
	d, err := bigdecimal.Parse("12.50")
	require.NoError(t, err)
	assert.Equal(t, "12.50", d.String())

	d, err = bigdecimal.Parse("NaN")
	require.NoError(t, err)
	assert.True(t, bigdecimal.IsNaN(d))

	_, err = bigdecimal.Parse("twelve")
	assert.ErrorIs(t, err, arrow.ErrInvalid)
	assert.Panics(t, func() { bigdecimal.MustParse("twelve") })
}

func TestFromFloat64(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"simple", 0.5, "0.5"},
		{"shortest", 0.1, "0.1"},
		{"integral", 3, "3"},
		{"negative", -2.25, "-2.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := bigdecimal.FromFloat64(tt.in)
			require.NoError(t, err)
			assert.True(t, bigdecimal.Equal(bigdecimal.MustParse(tt.want), d), d.String())
		})
	}

	d, err := bigdecimal.FromFloat64(math.NaN())
	require.NoError(t, err)
	assert.True(t, bigdecimal.IsNaN(d))

	d, err = bigdecimal.FromFloat64(math.Inf(-1))
	require.NoError(t, err)
	assert.Equal(t, apd.Infinite, d.Form)
	assert.True(t, d.Negative)
}

func TestFromValue(t *testing.T) {
	d, err := bigdecimal.FromValue(int8(-3), false)
	require.NoError(t, err)
	assert.Equal(t, "-3", d.String())

	d, err = bigdecimal.FromValue(uint64(math.MaxUint64), false)
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551615", d.String())

	_, err = bigdecimal.FromValue(1.5, false)
	assert.ErrorIs(t, err, arrow.ErrType)

	d, err = bigdecimal.FromValue(1.5, true)
	require.NoError(t, err)
	assert.Equal(t, "1.5", d.String())

	_, err = bigdecimal.FromValue("1", true)
	assert.ErrorIs(t, err, arrow.ErrType)

	d, err = bigdecimal.FromValue(nil, false)
	require.NoError(t, err)
	assert.True(t, bigdecimal.IsNaN(d))
}

func TestCopy(t *testing.T) {
	src := bigdecimal.MustParse("4.2")
	cp := bigdecimal.Copy(src)
	cp.Negative = true
	assert.False(t, src.Negative)
	assert.True(t, bigdecimal.IsNaN(bigdecimal.Copy(nil)))
}
