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
	"sync"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/decimalarray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type renamedDtype struct {
	*decimalarray.DecimalDtype
	name string
}

func (r renamedDtype) Name() string { return r.name }

type carrier struct{ dt extarray.ExtensionDtype }

func (c carrier) ExtensionDtype() (extarray.ExtensionDtype, bool) { return c.dt, c.dt != nil }

func TestRegistry(t *testing.T) {
	dt := renamedDtype{decimalarray.Dtype, "test.renamed"}
	require.NoError(t, extarray.RegisterDtype(dt))
	defer extarray.UnregisterDtype(dt.name)

	assert.ErrorIs(t, extarray.RegisterDtype(dt), arrow.ErrInvalid)
	assert.Equal(t, dt, extarray.GetDtype("test.renamed"))
	assert.Contains(t, extarray.RegisteredDtypes(), "test.renamed")
	assert.Contains(t, extarray.RegisteredDtypes(), "decimal")
	assert.Nil(t, extarray.GetDtype("test.missing"))

	require.NoError(t, extarray.UnregisterDtype("test.renamed"))
	assert.Nil(t, extarray.GetDtype("test.renamed"))
	assert.ErrorIs(t, extarray.UnregisterDtype("test.renamed"), arrow.ErrInvalid)
}

func TestRegistryConcurrent(t *testing.T) {
	names := []string{"test.a", "test.b", "test.c", "test.d"}
	var wg sync.WaitGroup
	errs := make([]error, len(names)*2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = extarray.RegisterDtype(renamedDtype{decimalarray.Dtype, names[i%len(names)]})
		}(i)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	assert.Equal(t, len(names), failed)
	for _, n := range names {
		assert.NotNil(t, extarray.GetDtype(n))
		require.NoError(t, extarray.UnregisterDtype(n))
	}
}

func TestDtypeOf(t *testing.T) {
	arr, err := decimalarray.FromStrings([]string{"1"})
	require.NoError(t, err)

	for _, v := range []any{decimalarray.Dtype, "decimal", arr, carrier{decimalarray.Dtype}} {
		dt, ok := extarray.DtypeOf(v)
		assert.True(t, ok, "%T", v)
		assert.True(t, decimalarray.Dtype.Equal(dt))
		assert.True(t, extarray.IsExtensionDtype(v))
	}
	for _, v := range []any{nil, "int64", 3, carrier{}} {
		assert.False(t, extarray.IsExtensionDtype(v), "%v", v)
	}
}
