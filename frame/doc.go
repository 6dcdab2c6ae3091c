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

// Package frame provides labelled one- and two-dimensional containers,
// Series and Frame, whose columns are either native Arrow arrays or
// extension arrays.
//
// Native columns (int64, float64, bool, string) are held as arrow-go arrays
// and use arrow's compute kernels for take, filter, cast and arithmetic.
// Object columns hold arbitrary Go values. Extension columns hold an
// extarray.ExtensionArray and delegate to it.
//
// Missing values are nulls in native columns, nil in object columns and the
// dtype's NA value in extension columns. Float columns treat NaN as null.
package frame
