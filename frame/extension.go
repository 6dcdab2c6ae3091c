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

package frame

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray"
)

// extColumn wraps an extension array.
type extColumn struct {
	arr extarray.ExtensionArray
}

func (c *extColumn) Dtype() Dtype             { return c.arr.Dtype() }
func (c *extColumn) Len() int                 { return c.arr.Len() }
func (c *extColumn) Value(i int) any          { return c.arr.Value(i) }
func (c *extColumn) IsNA(i int) bool          { return c.arr.IsNA(i) }
func (c *extColumn) Less(i, j int) bool       { return c.arr.Less(i, j) }
func (c *extColumn) NBytes() int              { return c.arr.NBytes() }
func (c *extColumn) Slice(i, j int) column    { return &extColumn{arr: c.arr.Slice(i, j)} }
func (c *extColumn) ValueString(i int) string { return fmt.Sprint(c.arr.Value(i)) }

func (c *extColumn) Take(positions []int) (column, error) {
	out, err := c.arr.Take(positions, true, nil)
	if err != nil {
		return nil, err
	}
	return &extColumn{arr: out}, nil
}

func (c *extColumn) Filter(mask []bool) (column, error) {
	if len(mask) != c.arr.Len() {
		return nil, fmt.Errorf("%w: boolean mask of length %d for %d values", arrow.ErrIndex, len(mask), c.arr.Len())
	}
	return c.Take(maskPositions(mask))
}

func (c *extColumn) FillNA(value any) (column, error) {
	out, err := extarray.FillNA(c.arr, value)
	if err != nil {
		return nil, err
	}
	return &extColumn{arr: out}, nil
}
