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

// Package extarray defines the contract that lets a tabular container host
// columns backed by arbitrary scalar types next to its native, Arrow-backed
// columns.
//
// A concrete type supplies an ExtensionDtype describing the logical type and
// an ExtensionArray holding the values. Dtypes are registered by name so that
// containers can resolve a dtype given as a string, in the same way that
// arrow.RegisterExtensionType makes extension types discoverable during IPC.
//
// The package also carries generic algorithms written purely against the
// contract (missing-value handling, take validation, sorting, factorizing),
// so that concrete arrays only implement element access and type-specific
// behaviour.
package extarray
