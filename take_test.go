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

package extarray_test

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/internal/testing/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTake(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		indices   []int
		allowFill bool
		want      []int
		err       error
	}{
		{"identity", 3, tools.Range(3), false, tools.Range(3), nil},
		{"positive", 3, tools.Ints(2, 0, 1), false, tools.Ints(2, 0, 1), nil},
		{"negative wraps", 3, tools.Ints(-1, -3), false, tools.Ints(2, 0), nil},
		{"negative out of bounds", 3, tools.Ints(-4), false, nil, arrow.ErrIndex},
		{"positive out of bounds", 3, tools.Ints(3), false, nil, arrow.ErrIndex},
		{"fill", 3, tools.Ints(0, -1), true, tools.Ints(0, extarray.FillPosition), nil},
		{"fill below -1", 3, tools.Ints(0, -2), true, nil, arrow.ErrInvalid},
		{"fill out of bounds", 3, tools.Ints(3), true, nil, arrow.ErrIndex},
		{"empty indices", 0, tools.Ints(), false, []int{}, nil},
		{"fill from empty", 0, tools.Ints(-1, -1), true, tools.Ints(-1, -1), nil},
		{"take from empty", 0, tools.Ints(0), false, nil, arrow.ErrIndex},
		{"negative from empty", 0, tools.Ints(-1), false, nil, arrow.ErrIndex},
		{"fill then take from empty", 0, tools.Ints(-1, 0), true, nil, arrow.ErrIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extarray.ResolveTake(tt.n, tt.indices, tt.allowFill)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.ErrorIs(t, extarray.ValidateTake(tt.n, tt.indices, tt.allowFill), tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTakeEmptyMessage(t *testing.T) {
	_, err := extarray.ResolveTake(0, tools.Ints(-1), false)
	assert.ErrorContains(t, err, "cannot do a non-empty take")
}
