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

// Package decimalarray implements an extension array of arbitrary-precision
// decimals. Missing entries hold a NaN decimal.
//
// Arithmetic follows the decimal context resolved from the context.Context
// passed to each operation (see bigdecimal.WithContext); conditions that the
// context traps surface as errors, untrapped ones produce NaN or Infinity.
//
// The values can be exported to Arrow through DecimalType, an Arrow
// extension type with utf8 storage, and read back with FromArrow.
package decimalarray
