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
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GroupByOption configures Frame.GroupBy.
type GroupByOption func(*groupConfig)

type groupConfig struct {
	sort    bool
	asIndex bool
	dropNA  bool
}

// WithSort orders the groups by key (the default) instead of by first
// appearance.
func WithSort(sort bool) GroupByOption {
	return func(c *groupConfig) { c.sort = sort }
}

// WithAsIndex controls whether aggregations return the group keys as the
// index (the default) or as a leading column.
func WithAsIndex(asIndex bool) GroupByOption {
	return func(c *groupConfig) { c.asIndex = asIndex }
}

// WithDropNA controls whether rows with a missing key are dropped (the
// default) or gathered into a final group of their own.
func WithDropNA(drop bool) GroupByOption {
	return func(c *groupConfig) { c.dropNA = drop }
}

// GroupBy is a frame split into groups of rows sharing a key value.
type GroupBy struct {
	frame  *Frame
	key    string
	cfg    groupConfig
	keys   column
	groups [][]int
}

// GroupBy splits the rows of f by the values of the key column. Missing
// key values form a single group.
func (f *Frame) GroupBy(key string, opts ...GroupByOption) (*GroupBy, error) {
	cfg := groupConfig{sort: true, asIndex: true, dropNA: true}
	for _, o := range opts {
		o(&cfg)
	}
	s, err := f.Col(key)
	if err != nil {
		return nil, err
	}
	codes, uniques, err := s.Factorize(cfg.sort)
	if err != nil {
		return nil, xerrors.Errorf("grouping by %q: %w", key, err)
	}

	keys := uniques.col
	groups := make([][]int, keys.Len())
	var naGroup []int
	for i, c := range codes {
		if c < 0 {
			naGroup = append(naGroup, i)
			continue
		}
		groups[c] = append(groups[c], i)
	}
	if !cfg.dropNA && len(naGroup) > 0 {
		pos := append(rangePositions(keys.Len()), extarray.FillPosition)
		if keys, err = keys.Take(pos); err != nil {
			return nil, err
		}
		groups = append(groups, naGroup)
	}
	return &GroupBy{frame: f, key: key, cfg: cfg, keys: keys, groups: groups}, nil
}

// NGroups returns the number of groups.
func (g *GroupBy) NGroups() int { return len(g.groups) }

// Keys returns the group keys, named after the key column.
func (g *GroupBy) Keys() *Index { return &Index{col: g.keys, name: g.key} }

// Indices returns the row positions of group i.
func (g *GroupBy) Indices(i int) []int { return append([]int(nil), g.groups[i]...) }

// Group returns the rows of group i.
func (g *GroupBy) Group(i int) (*Frame, error) { return g.frame.takeResolved(g.groups[i]) }

// result assembles an aggregation: one row per group, the aggregated
// columns in order.
func (g *GroupBy) result(names []string, cols []column) (*Frame, error) {
	if g.cfg.asIndex {
		return &Frame{names: names, cols: cols, index: g.Keys()}, nil
	}
	return &Frame{
		names: append([]string{g.key}, names...),
		cols:  append([]column{g.keys}, cols...),
		index: RangeIndex(g.keys.Len()),
	}, nil
}

func (g *GroupBy) valueColumn(name string) (column, error) {
	if name == g.key {
		return nil, fmt.Errorf("%w: cannot aggregate the grouping column %q", arrow.ErrInvalid, name)
	}
	s, err := g.frame.Col(name)
	if err != nil {
		return nil, err
	}
	return s.col, nil
}

// groupFloats returns the non-missing values of rows as float64.
func groupFloats(c column, rows []int) ([]float64, error) {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		if c.IsNA(r) {
			continue
		}
		v := c.Value(r)
		if f, ok := toFloat64(v); ok {
			out = append(out, f)
			continue
		}
		if n, ok := toInt64(v); ok {
			out = append(out, float64(n))
			continue
		}
		d, ok := toDecimal(v)
		if !ok {
			return nil, fmt.Errorf("%w: cannot average values of dtype %s", arrow.ErrType, c.Dtype())
		}
		f, err := d.Float64()
		if err != nil {
			return nil, xerrors.Errorf("converting %s: %w", d, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// Mean averages column col within each group, ignoring missing values. A
// group without values averages to NaN, which the float column stores as
// missing.
func (g *GroupBy) Mean(col string) (*Frame, error) {
	c, err := g.valueColumn(col)
	if err != nil {
		return nil, err
	}
	means := make([]float64, len(g.groups))
	valid := make([]bool, len(g.groups))
	for i, rows := range g.groups {
		vals, err := groupFloats(c, rows)
		if err != nil {
			return nil, err
		}
		if len(vals) > 0 {
			means[i], valid[i] = stat.Mean(vals, nil), true
		}
	}
	return g.result([]string{col}, []column{newFloat64Column(means, valid)})
}

// summable reports whether Sum aggregates a column of dtype dt.
func summable(dt Dtype) bool {
	if IsNumericDtype(dt) {
		return true
	}
	_, ok := dt.(extarray.ScalarOps)
	return ok
}

// Sum totals every numeric column within each group, skipping missing
// values. Extension columns whose dtype supports scalar arithmetic are
// summed with it; an extension group without values sums to missing.
func (g *GroupBy) Sum(ctx context.Context) (*Frame, error) {
	var names []string
	var cols []column
	for i, name := range g.frame.names {
		c := g.frame.cols[i]
		if name == g.key || !summable(c.Dtype()) {
			continue
		}
		out, err := g.sumColumn(ctx, c)
		if err != nil {
			return nil, xerrors.Errorf("summing column %q: %w", name, err)
		}
		names = append(names, name)
		cols = append(cols, out)
	}
	return g.result(names, cols)
}

func (g *GroupBy) sumColumn(ctx context.Context, c column) (column, error) {
	switch dt := c.Dtype(); dt {
	case Float64:
		sums := make([]float64, len(g.groups))
		for i, rows := range g.groups {
			vals, err := groupFloats(c, rows)
			if err != nil {
				return nil, err
			}
			sums[i] = floats.Sum(vals)
		}
		return newFloat64Column(sums, nil), nil
	case Int64, Bool:
		sums := make([]int64, len(g.groups))
		for i, rows := range g.groups {
			for _, r := range rows {
				if c.IsNA(r) {
					continue
				}
				switch v := c.Value(r).(type) {
				case int64:
					sums[i] += v
				case bool:
					if v {
						sums[i]++
					}
				}
			}
		}
		return newInt64Column(sums, nil), nil
	}

	e, ok := c.(*extColumn)
	if !ok {
		return nil, fmt.Errorf("%w: cannot sum dtype %s", arrow.ErrType, c.Dtype())
	}
	ops := e.arr.Dtype().(extarray.ScalarOps)
	sums := make([]any, len(g.groups))
	for i, rows := range g.groups {
		var total any
		for _, r := range rows {
			switch {
			case c.IsNA(r):
			case total == nil:
				total = c.Value(r)
			default:
				v, err := ops.ScalarArith(ctx, extarray.OpAdd, total, c.Value(r))
				if err != nil {
					return nil, err
				}
				total = v
			}
		}
		sums[i] = total
	}
	arr, err := e.arr.Dtype().ConstructFromSequence(sums)
	if err != nil {
		return nil, err
	}
	return &extColumn{arr: arr}, nil
}

// Size returns the number of rows in each group.
func (g *GroupBy) Size() *Series {
	sizes := make([]int64, len(g.groups))
	for i, rows := range g.groups {
		sizes[i] = int64(len(rows))
	}
	return &Series{col: newInt64Column(sizes, nil), index: g.Keys(), name: "size"}
}

// First returns, per group, the first non-missing value of each non-key
// column, or a missing value when the group has none.
func (g *GroupBy) First() (*Frame, error) {
	var names []string
	var cols []column
	for i, name := range g.frame.names {
		if name == g.key {
			continue
		}
		c := g.frame.cols[i]
		pos := make([]int, len(g.groups))
		for k, rows := range g.groups {
			pos[k] = extarray.FillPosition
			for _, r := range rows {
				if !c.IsNA(r) {
					pos[k] = r
					break
				}
			}
		}
		out, err := c.Take(pos)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		cols = append(cols, out)
	}
	return g.result(names, cols)
}

// Transform calls fn with column col of each group and broadcasts the
// result back onto the original rows. fn returns either a scalar or a
// series of the group's length. Rows of dropped groups are missing.
func (g *GroupBy) Transform(col string, fn func(*Series) (any, error)) (*Series, error) {
	c, err := g.valueColumn(col)
	if err != nil {
		return nil, err
	}
	src := &Series{col: c, index: g.frame.index, name: col}
	results := make([]any, c.Len())
	for _, rows := range g.groups {
		part, err := src.takeResolved(rows)
		if err != nil {
			return nil, err
		}
		v, err := fn(part)
		if err != nil {
			return nil, err
		}
		if s, ok := v.(*Series); ok {
			if s.Len() != len(rows) {
				return nil, fmt.Errorf("%w: transform returned %d values for a group of %d rows",
					arrow.ErrInvalid, s.Len(), len(rows))
			}
			for k, r := range rows {
				results[r] = s.col.Value(k)
			}
			continue
		}
		for _, r := range rows {
			results[r] = v
		}
	}

	if dt, ok := src.ExtensionDtype(); ok {
		if arr, err := dt.ConstructFromSequence(results); err == nil {
			return src.with(&extColumn{arr: arr}, src.index), nil
		}
	}
	return src.with(inferColumn(results), src.index), nil
}

// Apply calls fn with the rows of each group and collects one result per
// group, indexed by the group keys.
func (g *GroupBy) Apply(fn func(*Frame) (any, error)) (*Series, error) {
	results := make([]any, len(g.groups))
	for i := range g.groups {
		part, err := g.Group(i)
		if err != nil {
			return nil, err
		}
		if results[i], err = fn(part); err != nil {
			return nil, err
		}
	}
	return &Series{col: inferColumn(results), index: g.Keys()}, nil
}
