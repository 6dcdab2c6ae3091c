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
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow/go/extarray"
	"golang.org/x/xerrors"
)

// concatColumns joins columns end to end. Columns sharing an extension or
// native dtype keep it; anything else becomes an object column, except that
// a mix of native numeric columns is re-inferred.
func concatColumns(cols []column) (column, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: no objects to concatenate", arrow.ErrInvalid)
	}

	same := true
	for _, c := range cols[1:] {
		if !DtypeEqual(c.Dtype(), cols[0].Dtype()) {
			same = false
			break
		}
	}

	if same {
		switch first := cols[0].(type) {
		case *extColumn:
			arrs := make([]extarray.ExtensionArray, len(cols))
			for i, c := range cols {
				arrs[i] = c.(*extColumn).arr
			}
			out, err := extarray.Concat(arrs...)
			if err != nil {
				return nil, err
			}
			return &extColumn{arr: out}, nil
		case *nativeColumn:
			arrs := make([]arrow.Array, len(cols))
			for i, c := range cols {
				arrs[i] = c.(*nativeColumn).arr
			}
			out, err := array.Concatenate(arrs, mem)
			if err != nil {
				return nil, xerrors.Errorf("concatenating %s columns: %w", first.dt, err)
			}
			return &nativeColumn{arr: out, dt: first.dt}, nil
		}
	}

	var vals []any
	allNumeric := true
	for _, c := range cols {
		if _, ok := c.(*nativeColumn); !ok || !IsNumericDtype(c.Dtype()) || c.Dtype() == Bool {
			allNumeric = false
		}
		vals = append(vals, columnValues(c)...)
	}
	if allNumeric {
		return inferColumn(vals), nil
	}
	return &objectColumn{vals: vals}, nil
}

// Concat joins series end to end, keeping every index label. The result is
// named after the inputs when they all share one name.
func Concat(series ...*Series) (*Series, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: no objects to concatenate", arrow.ErrInvalid)
	}
	cols := make([]column, len(series))
	idx := make([]column, len(series))
	name := series[0].name
	for i, s := range series {
		cols[i], idx[i] = s.col, s.index.col
		if s.name != name {
			name = ""
		}
	}
	col, err := concatColumns(cols)
	if err != nil {
		return nil, err
	}
	ixCol, err := concatColumns(idx)
	if err != nil {
		return nil, err
	}
	return &Series{col: col, index: &Index{col: ixCol, name: series[0].index.name}, name: name}, nil
}

// ConcatFrames stacks frames vertically. The result has the union of the
// columns in order of first appearance; a frame lacking a column
// contributes missing values of that column's dtype.
func ConcatFrames(frames ...*Frame) (*Frame, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: no objects to concatenate", arrow.ErrInvalid)
	}

	var names []string
	proto := make(map[string]column)
	for _, f := range frames {
		for i, n := range f.names {
			if _, ok := proto[n]; !ok {
				names = append(names, n)
				proto[n] = f.cols[i]
			}
		}
	}

	out := &Frame{names: names, cols: make([]column, len(names))}
	for k, n := range names {
		parts := make([]column, len(frames))
		for i, f := range frames {
			if j := f.colIndex(n); j >= 0 {
				parts[i] = f.cols[j]
				continue
			}
			missing := make([]int, f.Len())
			for p := range missing {
				missing[p] = extarray.FillPosition
			}
			c, err := proto[n].Take(missing)
			if err != nil {
				return nil, err
			}
			parts[i] = c
		}
		col, err := concatColumns(parts)
		if err != nil {
			return nil, xerrors.Errorf("column %q: %w", n, err)
		}
		out.cols[k] = col
	}

	idx := make([]column, len(frames))
	for i, f := range frames {
		idx[i] = f.index.col
	}
	ixCol, err := concatColumns(idx)
	if err != nil {
		return nil, err
	}
	out.index = &Index{col: ixCol, name: frames[0].index.name}
	return out, nil
}
