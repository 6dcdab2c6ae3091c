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

// Package conformance is a reusable test suite checking that an
// extarray.ExtensionArray implementation honours the contract the frame
// package relies on.
//
// A concrete type supplies a Config of fixtures and runs the suites with
// Run, or embeds individual suites to add or shadow test methods:
//
//	type myGetitem struct{ conformance.GetitemSuite }
//
//	func (s *myGetitem) TestTakeOtherFill() { ... }
//
//	func TestGetitem(t *testing.T) {
//		suite.Run(t, &myGetitem{conformance.GetitemSuite{Base: conformance.Base{Cfg: cfg}}})
//	}
package conformance
