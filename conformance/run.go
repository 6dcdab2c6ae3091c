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

package conformance

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// Run runs every suite against cfg, each as a subtest named after it.
func Run(t *testing.T, cfg *Config) {
	suites := []struct {
		name string
		s    suite.TestingSuite
	}{
		{"Dtype", &DtypeSuite{Base{Cfg: cfg}}},
		{"Interface", &InterfaceSuite{Base{Cfg: cfg}}},
		{"Constructors", &ConstructorsSuite{Base{Cfg: cfg}}},
		{"Reshaping", &ReshapingSuite{Base{Cfg: cfg}}},
		{"Getitem", &GetitemSuite{Base{Cfg: cfg}}},
		{"Missing", &MissingSuite{Base{Cfg: cfg}}},
		{"Methods", &MethodsSuite{Base{Cfg: cfg}}},
		{"Casting", &CastingSuite{Base{Cfg: cfg}}},
		{"GroupBy", &GroupBySuite{Base{Cfg: cfg}}},
		{"ArithmeticOps", &ArithmeticOpsSuite{Base{Cfg: cfg}}},
		{"ComparisonOps", &ComparisonOpsSuite{Base{Cfg: cfg}}},
	}
	for _, tt := range suites {
		t.Run(tt.name, func(t *testing.T) { suite.Run(t, tt.s) })
	}
}
