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

package extarray

import (
	"fmt"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
	"golang.org/x/exp/slices"
)

var (
	dtypeRegistry *sync.Map
	initReg       sync.Once
)

func getDtypeRegistry() *sync.Map {
	initReg.Do(func() { dtypeRegistry = &sync.Map{} })
	return dtypeRegistry
}

// RegisterDtype makes dt resolvable by its Name. Registering a second dtype
// under the same name fails.
// This function is safe to call from multiple goroutines simultaneously.
func RegisterDtype(dt ExtensionDtype) error {
	name := dt.Name()
	if _, existed := getDtypeRegistry().LoadOrStore(name, dt); existed {
		return fmt.Errorf("%w: extension dtype %s already registered", arrow.ErrInvalid, name)
	}
	return nil
}

// UnregisterDtype removes the dtype registered under name.
func UnregisterDtype(name string) error {
	if _, loaded := getDtypeRegistry().LoadAndDelete(name); !loaded {
		return fmt.Errorf("%w: no extension dtype named %s", arrow.ErrInvalid, name)
	}
	return nil
}

// GetDtype returns the dtype registered under name, or nil.
func GetDtype(name string) ExtensionDtype {
	if v, ok := getDtypeRegistry().Load(name); ok {
		return v.(ExtensionDtype)
	}
	return nil
}

// RegisteredDtypes returns the names of all registered dtypes, sorted.
func RegisteredDtypes() []string {
	var names []string
	getDtypeRegistry().Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	slices.Sort(names)
	return names
}

// DtypeOf extracts an extension dtype from v, which may be a dtype, a
// registered dtype name, an extension array or a DtypeCarrier.
func DtypeOf(v any) (ExtensionDtype, bool) {
	switch v := v.(type) {
	case nil:
		return nil, false
	case ExtensionDtype:
		return v, true
	case string:
		dt := GetDtype(v)
		return dt, dt != nil
	case ExtensionArray:
		return v.Dtype(), true
	case DtypeCarrier:
		return v.ExtensionDtype()
	}
	return nil, false
}

// IsExtensionDtype reports whether v names, is, or carries an extension
// dtype.
func IsExtensionDtype(v any) bool {
	_, ok := DtypeOf(v)
	return ok
}
