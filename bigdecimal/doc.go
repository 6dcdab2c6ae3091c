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

// Package bigdecimal provides the arbitrary-precision decimal scalar used by
// decimal extension arrays.
//
// Scalars are *apd.Decimal values. A quiet NaN is the missing-value
// sentinel: it never compares equal under the primitive's own equality
// ([Equal]), but two NaNs are treated as the same missing value by
// [NACompare].
//
// Arithmetic is performed against an explicit [Context] which carries the
// precision and the set of trapped conditions. When a condition is trapped
// the operation fails; when it is not, the result is the corresponding
// sentinel (NaN for invalid operations, signed Infinity for division by
// zero). [Default] returns the shared context; [Context.Scoped] changes its
// traps for the duration of a function and always restores them.
package bigdecimal
