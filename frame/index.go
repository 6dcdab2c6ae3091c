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
	"strings"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
)

// Index holds the row labels of a Series or Frame.
type Index struct {
	col  column
	name string

	once    sync.Once
	lookup  map[string][]int
	isRange bool
}

// NewIndex builds an index from the same data NewSeries accepts.
func NewIndex(data any, name string) (*Index, error) {
	if ix, ok := data.(*Index); ok {
		return ix, nil
	}
	col, err := newColumn(data)
	if err != nil {
		return nil, err
	}
	return &Index{col: col, name: name}, nil
}

// RangeIndex returns the labels 0..n-1.
func RangeIndex(n int) *Index {
	vals := make([]int64, n)
	for i := range vals {
		vals[i] = int64(i)
	}
	return &Index{col: newInt64Column(vals, nil), isRange: true}
}

func (ix *Index) Len() int      { return ix.col.Len() }
func (ix *Index) Name() string  { return ix.name }
func (ix *Index) Dtype() Dtype  { return ix.col.Dtype() }
func (ix *Index) Label(i int) any { return ix.col.Value(i) }

// IsRange reports whether the labels are the default 0..n-1 range.
func (ix *Index) IsRange() bool { return ix.isRange }

// Labels returns a copy of all labels.
func (ix *Index) Labels() []any { return columnValues(ix.col) }

// WithName returns a copy of ix with a different name.
func (ix *Index) WithName(name string) *Index {
	return &Index{col: ix.col, name: name, isRange: ix.isRange}
}

// Positions returns the positions holding label, in order.
func (ix *Index) Positions(label any) []int {
	ix.once.Do(func() {
		ix.lookup = make(map[string][]int, ix.Len())
		for i, k := range columnKeys(ix.col) {
			ix.lookup[k] = append(ix.lookup[k], i)
		}
	})
	return ix.lookup[valueKey(label)]
}

// Contains reports whether label is present.
func (ix *Index) Contains(label any) bool { return len(ix.Positions(label)) > 0 }

// IsUnique reports whether no label occurs twice.
func (ix *Index) IsUnique() bool {
	seen := make(map[string]struct{}, ix.Len())
	for _, k := range columnKeys(ix.col) {
		if _, dup := seen[k]; dup {
			return false
		}
		seen[k] = struct{}{}
	}
	return true
}

func (ix *Index) take(positions []int) (*Index, error) {
	col, err := ix.col.Take(positions)
	if err != nil {
		return nil, err
	}
	return &Index{col: col, name: ix.name}, nil
}

func (ix *Index) filter(mask []bool) (*Index, error) {
	col, err := ix.col.Filter(mask)
	if err != nil {
		return nil, err
	}
	return &Index{col: col, name: ix.name}, nil
}

func (ix *Index) slice(i, j int) *Index {
	if ix.isRange && i == 0 {
		return RangeIndex(j)
	}
	return &Index{col: ix.col.Slice(i, j), name: ix.name}
}

// Equals reports whether both indexes hold the same labels in order.
func (ix *Index) Equals(other *Index) bool {
	if ix.Len() != other.Len() {
		return false
	}
	a, b := columnKeys(ix.col), columnKeys(other.col)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// union returns the sorted union of labels, keeping the order of ix when
// both are equal.
func (ix *Index) union(other *Index) (*Index, error) {
	if ix.Equals(other) {
		return ix, nil
	}
	seen := make(map[string]struct{})
	var labels []any
	for _, src := range []*Index{ix, other} {
		for i := 0; i < src.Len(); i++ {
			k := valueKey(src.Label(i))
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			labels = append(labels, src.Label(i))
		}
	}
	sortLabels(labels)
	return NewIndex(labels, ix.name)
}

func (ix *Index) String() string {
	parts := make([]string, ix.Len())
	for i := range parts {
		parts[i] = ix.col.ValueString(i)
	}
	return fmt.Sprintf("Index([%s], dtype=%s)", strings.Join(parts, ", "), ix.Dtype())
}

func checkIndexLen(ix *Index, n int) error {
	if ix != nil && ix.Len() != n {
		return fmt.Errorf("%w: Length of passed values is %d, index implies %d", arrow.ErrInvalid, n, ix.Len())
	}
	return nil
}
