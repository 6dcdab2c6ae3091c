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
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/apache/arrow/go/extarray"
	"golang.org/x/exp/slices"
)

// ErrNotEqual is wrapped by every mismatch reported by the equality
// checks in this file.
var ErrNotEqual = errors.New("not equal")

// CompareOption relaxes or tightens SeriesEqual, FrameEqual, IndexEqual and
// ExtensionArrayEqual.
type CompareOption func(*compareConfig)

type compareConfig struct {
	checkDtype       bool
	checkNames       bool
	checkExact       bool
	checkCategorical bool
	checkColumnType  bool
	obj              string
	rtol, atol       float64
}

func newCompareConfig(obj string, opts []CompareOption) compareConfig {
	cfg := compareConfig{
		checkDtype:       true,
		checkNames:       true,
		checkCategorical: true,
		checkColumnType:  true,
		obj:              obj,
		rtol:             1e-5,
		atol:             1e-8,
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// CheckDtype controls whether dtypes must match. Default true.
func CheckDtype(v bool) CompareOption { return func(c *compareConfig) { c.checkDtype = v } }

// CheckNames controls whether series and index names must match. Default
// true.
func CheckNames(v bool) CompareOption { return func(c *compareConfig) { c.checkNames = v } }

// CheckExact requires float values to match exactly instead of within a
// relative tolerance of 1e-5. Default false.
func CheckExact(v bool) CompareOption { return func(c *compareConfig) { c.checkExact = v } }

// CheckCategorical controls whether label-like dtypes (string and object)
// must match exactly; when false they are interchangeable. Default true.
func CheckCategorical(v bool) CompareOption {
	return func(c *compareConfig) { c.checkCategorical = v }
}

// CheckColumnType controls whether frame columns must appear in the same
// order; when false only the sets of column names must match. Default true.
func CheckColumnType(v bool) CompareOption {
	return func(c *compareConfig) { c.checkColumnType = v }
}

// Obj names the compared object in error messages.
func Obj(name string) CompareOption { return func(c *compareConfig) { c.obj = name } }

func (c compareConfig) fail(format string, args ...any) error {
	return fmt.Errorf("%w: %s %s", ErrNotEqual, c.obj, fmt.Sprintf(format, args...))
}

func (c compareConfig) dtypesMatch(a, b Dtype) bool {
	if DtypeEqual(a, b) {
		return true
	}
	if !c.checkCategorical {
		labelLike := func(d Dtype) bool { return d == String || d == Object }
		return labelLike(a) && labelLike(b)
	}
	return false
}

// valuesEqual compares position i of a with position j of b. Missing values
// are equal to each other, except in extension columns whose dtype defines
// its own scalar equality.
func (c compareConfig) valuesEqual(a column, i int, b column, j int) bool {
	if e, ok := a.(*extColumn); ok {
		if ops, ok := e.arr.Dtype().(extarray.ScalarOps); ok {
			return ops.ScalarEqual(a.Value(i), b.Value(j))
		}
	}
	na, nb := a.IsNA(i), b.IsNA(j)
	if na || nb {
		return na && nb
	}
	x, y := a.Value(i), b.Value(j)
	if fx, ok := x.(float64); ok && !c.checkExact {
		if fy, ok := toFloat64(y); ok {
			return math.Abs(fx-fy) <= c.atol+c.rtol*math.Abs(fy)
		}
	}
	if valueKey(x) == valueKey(y) {
		return true
	}
	return compareScalars(x, y) == 0 && fmt.Sprintf("%T", x) == fmt.Sprintf("%T", y)
}

func (c compareConfig) columnsEqual(a, b column) error {
	if a.Len() != b.Len() {
		return c.fail("length are different\n[left]:  %d\n[right]: %d", a.Len(), b.Len())
	}
	if c.checkDtype && !c.dtypesMatch(a.Dtype(), b.Dtype()) {
		return c.fail("dtypes are different\n[left]:  %s\n[right]: %s", a.Dtype(), b.Dtype())
	}
	var diff []int
	for i := 0; i < a.Len(); i++ {
		if !c.valuesEqual(a, i, b, i) {
			diff = append(diff, i)
		}
	}
	if len(diff) == 0 {
		return nil
	}
	return c.fail("values are different (%.5g %%)\n[positions]: %v\n[left]:  %s\n[right]: %s",
		100*float64(len(diff))/float64(a.Len()), diff, columnString(a), columnString(b))
}

func columnString(c column) string {
	parts := make([]string, c.Len())
	for i := range parts {
		parts[i] = c.ValueString(i)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// IndexEqual reports how left and right differ, or nil when they are equal.
func IndexEqual(left, right *Index, opts ...CompareOption) error {
	cfg := newCompareConfig("Index", opts)
	if cfg.checkNames && left.name != right.name {
		return cfg.fail("names are different\n[left]:  %q\n[right]: %q", left.name, right.name)
	}
	return cfg.columnsEqual(left.col, right.col)
}

// SeriesEqual reports how left and right differ, or nil when they are
// equal. Values are compared with the scalar equality of their dtype, so a
// dtype whose missing value is not equal to itself never compares equal
// when missing values are present.
func SeriesEqual(left, right *Series, opts ...CompareOption) error {
	cfg := newCompareConfig("Series", opts)
	if left.Len() != right.Len() {
		return cfg.fail("length are different\n[left]:  %d, %s\n[right]: %d, %s",
			left.Len(), left.index, right.Len(), right.index)
	}
	ixOpts := append(slices.Clone(opts), Obj(cfg.obj+".index"))
	if err := IndexEqual(left.index, right.index, ixOpts...); err != nil {
		return err
	}
	if cfg.checkNames && left.name != right.name {
		return cfg.fail("names are different\n[left]:  %q\n[right]: %q", left.name, right.name)
	}
	return cfg.columnsEqual(left.col, right.col)
}

// FrameEqual reports how left and right differ, or nil when they are equal.
// Columns are compared with SeriesEqual.
func FrameEqual(left, right *Frame, opts ...CompareOption) error {
	cfg := newCompareConfig("DataFrame", opts)
	if left.Len() != right.Len() || len(left.cols) != len(right.cols) {
		return cfg.fail("shape mismatch\n[left]:  (%d, %d)\n[right]: (%d, %d)",
			left.Len(), len(left.cols), right.Len(), len(right.cols))
	}

	if err := ColumnsEqual(left, right, append(slices.Clone(opts), Obj(cfg.obj))...); err != nil {
		return err
	}

	ixOpts := append(slices.Clone(opts), Obj(cfg.obj+".index"))
	if err := IndexEqual(left.index, right.index, ixOpts...); err != nil {
		return err
	}
	for i, name := range left.names {
		j := right.colIndex(name)
		colOpts := append(slices.Clone(opts), Obj(fmt.Sprintf("%s.iloc[:, %d] (column name=%q)", cfg.obj, i, name)))
		if err := SeriesEqual(left.ColAt(i), right.ColAt(j), colOpts...); err != nil {
			return err
		}
	}
	return nil
}

// ColumnsEqual compares the column labels of left and right as an index
// named after the compared object. With CheckColumnType(false) the order of
// the labels is ignored.
func ColumnsEqual(left, right *Frame, opts ...CompareOption) error {
	cfg := newCompareConfig("DataFrame", opts)
	l, r := slices.Clone(left.names), slices.Clone(right.names)
	if !cfg.checkColumnType {
		slices.Sort(l)
		slices.Sort(r)
	}
	li, err := NewIndex(l, "")
	if err != nil {
		return err
	}
	ri, err := NewIndex(r, "")
	if err != nil {
		return err
	}
	ixOpts := append(slices.Clone(opts), Obj(cfg.obj+".columns"))
	if err := IndexEqual(li, ri, ixOpts...); err != nil {
		return fmt.Errorf("%s columns are different\n[left]:  %v\n[right]: %v: %w",
			cfg.obj, left.names, right.names, err)
	}
	return nil
}

// ExtensionArrayEqual reports how left and right differ, or nil when they
// are equal. Missing masks are compared first, then the remaining values
// with the scalar equality of the dtype.
func ExtensionArrayEqual(left, right extarray.ExtensionArray, opts ...CompareOption) error {
	cfg := newCompareConfig("ExtensionArray", opts)
	if cfg.checkDtype && !left.Dtype().Equal(right.Dtype()) {
		return cfg.fail("dtypes are different\n[left]:  %s\n[right]: %s", left.Dtype(), right.Dtype())
	}
	if left.Len() != right.Len() {
		return cfg.fail("length are different\n[left]:  %d\n[right]: %d", left.Len(), right.Len())
	}
	lm, rm := extarray.IsNAMask(left), extarray.IsNAMask(right)
	if !slices.Equal(lm, rm) {
		return cfg.fail("NA mask values are different\n[left]:  %v\n[right]: %v", lm, rm)
	}

	eq := func(a, b any) bool { return valueKey(a) == valueKey(b) }
	if ops, ok := left.Dtype().(extarray.ScalarOps); ok {
		eq = ops.ScalarEqual
	}
	for i, missing := range lm {
		if missing {
			continue
		}
		if !eq(left.Value(i), right.Value(i)) {
			return cfg.fail("values are different at position %d\n[left]:  %s\n[right]: %s", i, left, right)
		}
	}
	return nil
}
