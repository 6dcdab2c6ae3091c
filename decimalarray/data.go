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
	"math/rand/v2"

	"github.com/apache/arrow/go/extarray/bigdecimal"
	"github.com/cockroachdb/apd/v3"
)

// DefaultDataSize is the length of the arrays produced for test data.
const DefaultDataSize = 100

// MakeData returns n decimals drawn uniformly from [0, 1). The same seed
// always yields the same values.
func MakeData(n int, seed uint64) []*apd.Decimal {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]*apd.Decimal, n)
	for i := range out {
		// a float64 in [0, 1) is always finite.
		d, _ := bigdecimal.FromFloat64(rng.Float64())
		out[i] = d
	}
	return out
}
