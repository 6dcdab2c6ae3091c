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
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/apache/arrow/go/extarray"
	"golang.org/x/xerrors"
)

// alignOperand aligns s with other when other is a series with a different
// index and returns the aligned left side together with the operand
// values: an extension array, an arrow array, a []any or the scalar.
func (s *Series) alignOperand(other any) (*Series, any, error) {
	o, ok := other.(*Series)
	if !ok {
		return s, other, nil
	}
	if !s.index.Equals(o.index) {
		var err error
		if s, o, err = s.Align(o); err != nil {
			return nil, nil, err
		}
	}
	switch c := o.col.(type) {
	case *extColumn:
		return s, c.arr, nil
	case *nativeColumn:
		return s, c.arr, nil
	}
	return s, columnValues(o.col), nil
}

// Arith applies op element-wise against a scalar, a slice or another
// series. Series operands are aligned on their index first.
func (s *Series) Arith(ctx context.Context, op extarray.ArithmeticOp, other any) (*Series, error) {
	s, rhs, err := s.alignOperand(other)
	if err != nil {
		return nil, err
	}

	switch c := s.col.(type) {
	case *extColumn:
		if arr, ok := rhs.(arrow.Array); ok {
			rhs = columnValues(&nativeColumn{arr: arr, dt: nativeFromArrow(arr.DataType())})
		}
		out, err := c.arr.Arith(ctx, op, rhs)
		if err != nil {
			return nil, err
		}
		return s.with(&extColumn{arr: out}, s.index), nil
	case *nativeColumn:
		if ext, ok := rhs.(extarray.ExtensionArray); ok {
			out, err := ext.Arith(ctx, swapOperands(op), columnValues(c))
			if err != nil {
				return nil, err
			}
			return s.with(&extColumn{arr: out}, s.index), nil
		}
		out, err := nativeArith(ctx, op, c, rhs)
		if err != nil {
			return nil, err
		}
		return s.with(out, s.index), nil
	}
	return nil, fmt.Errorf("%w: arithmetic on %s columns", arrow.ErrNotImplemented, s.Dtype())
}

// swapOperands returns the operator computing the same result with the
// operands exchanged.
func swapOperands(op extarray.ArithmeticOp) extarray.ArithmeticOp {
	if op.IsReflected() {
		return op.Unreflected()
	}
	return op.Reflected()
}

func operandDatum(v any) (compute.Datum, error) {
	switch v := v.(type) {
	case arrow.Array:
		return compute.NewDatum(v), nil
	case []any:
		col := inferColumn(v)
		nc, ok := col.(*nativeColumn)
		if !ok {
			return nil, fmt.Errorf("%w: non-numeric operand values", arrow.ErrType)
		}
		return compute.NewDatum(nc.arr), nil
	case int, int64, int32, float64, bool:
		return compute.NewDatum(v), nil
	}
	col, err := newColumn(v)
	if err != nil {
		return nil, err
	}
	if nc, ok := col.(*nativeColumn); ok {
		return compute.NewDatum(nc.arr), nil
	}
	return nil, fmt.Errorf("%w: unsupported operand %T", arrow.ErrType, v)
}

func nativeArith(ctx context.Context, op extarray.ArithmeticOp, c *nativeColumn, other any) (column, error) {
	if !IsNumericDtype(c.dt) {
		return nil, fmt.Errorf("%w: arithmetic on %s columns", arrow.ErrType, c.dt)
	}
	lhs := compute.NewDatum(c.arr)
	defer lhs.Release()
	rhs, err := operandDatum(other)
	if err != nil {
		return nil, err
	}
	defer rhs.Release()
	if op.IsReflected() {
		lhs, rhs = rhs, lhs
	}

	opts := compute.ArithmeticOptions{}
	var res compute.Datum
	switch op.Unreflected() {
	case extarray.OpAdd:
		res, err = compute.Add(ctx, opts, lhs, rhs)
	case extarray.OpSub:
		res, err = compute.Subtract(ctx, opts, lhs, rhs)
	case extarray.OpMul:
		res, err = compute.Multiply(ctx, opts, lhs, rhs)
	case extarray.OpPow:
		res, err = compute.Power(ctx, opts, lhs, rhs)
	case extarray.OpTrueDiv:
		var l, r compute.Datum
		if l, err = compute.CastDatum(ctx, lhs, compute.SafeCastOptions(arrow.PrimitiveTypes.Float64)); err != nil {
			break
		}
		defer l.Release()
		if r, err = compute.CastDatum(ctx, rhs, compute.SafeCastOptions(arrow.PrimitiveTypes.Float64)); err != nil {
			break
		}
		defer r.Release()
		res, err = compute.Divide(ctx, compute.ArithmeticOptions{NoCheckOverflow: true}, l, r)
	default:
		return nil, fmt.Errorf("%w: %s on native columns", arrow.ErrNotImplemented, op)
	}
	if err != nil {
		return nil, xerrors.Errorf("frame: %s: %w", op, err)
	}
	defer res.Release()

	arr := res.(*compute.ArrayDatum).MakeArray()
	return newNativeColumnFromArrow(arr)
}

var compareFuncs = map[extarray.CompareOp]string{
	extarray.OpEq: "equal",
	extarray.OpNe: "not_equal",
	extarray.OpLt: "less",
	extarray.OpLe: "less_equal",
	extarray.OpGt: "greater",
	extarray.OpGe: "greater_equal",
}

// Compare applies op element-wise and returns a bool series. Comparisons
// with a missing value are false, except for OpNe.
func (s *Series) Compare(ctx context.Context, op extarray.CompareOp, other any) (*Series, error) {
	s, rhs, err := s.alignOperand(other)
	if err != nil {
		return nil, err
	}

	var result []bool
	switch c := s.col.(type) {
	case *extColumn:
		if arr, ok := rhs.(arrow.Array); ok {
			rhs = columnValues(&nativeColumn{arr: arr, dt: nativeFromArrow(arr.DataType())})
		}
		if result, err = c.arr.Compare(ctx, op, rhs); err != nil {
			return nil, err
		}
	case *nativeColumn:
		if ext, ok := rhs.(extarray.ExtensionArray); ok {
			if result, err = ext.Compare(ctx, op.Swap(), columnValues(c)); err != nil {
				return nil, err
			}
			break
		}
		if result, err = nativeCompare(ctx, op, c, rhs); err != nil {
			return nil, err
		}
	default:
		if result, err = objectCompare(op, c, rhs); err != nil {
			return nil, err
		}
	}
	return s.with(newBoolColumn(result, nil), s.index), nil
}

func nativeCompare(ctx context.Context, op extarray.CompareOp, c *nativeColumn, other any) ([]bool, error) {
	lhs := compute.NewDatum(c.arr)
	defer lhs.Release()
	rhs, err := operandDatum(other)
	if err != nil {
		return nil, err
	}
	defer rhs.Release()

	res, err := compute.CallFunction(ctx, compareFuncs[op], nil, lhs, rhs)
	if err != nil {
		return nil, xerrors.Errorf("frame: %s: %w", op, err)
	}
	defer res.Release()

	arr := res.(*compute.ArrayDatum).MakeArray().(*array.Boolean)
	defer arr.Release()
	out := make([]bool, arr.Len())
	for i := range out {
		if arr.IsNull(i) || c.IsNA(i) {
			out[i] = op == extarray.OpNe
			continue
		}
		out[i] = arr.Value(i)
	}
	return out, nil
}

func objectCompare(op extarray.CompareOp, c column, other any) ([]bool, error) {
	var at func(i int) any
	switch o := other.(type) {
	case []any:
		if len(o) != c.Len() {
			return nil, fmt.Errorf("%w: lengths must match to compare", arrow.ErrInvalid)
		}
		at = func(i int) any { return o[i] }
	default:
		at = func(int) any { return other }
	}
	out := make([]bool, c.Len())
	for i := range out {
		a, b := c.Value(i), at(i)
		if isMissingScalar(a) || isMissingScalar(b) {
			out[i] = op == extarray.OpNe
			continue
		}
		out[i] = op.Eval(compareScalars(a, b))
	}
	return out, nil
}

// Combine applies fn to each pair of values from s and other, which is a
// series (aligned first) or a scalar. When s holds an extension dtype the
// results are first offered to that dtype; otherwise, or when it refuses
// them, the result dtype is inferred.
func (s *Series) Combine(other any, fn func(a, b any) (any, error)) (*Series, error) {
	var at func(i int) any
	if o, ok := other.(*Series); ok {
		if !s.index.Equals(o.index) {
			var err error
			if s, o, err = s.Align(o); err != nil {
				return nil, err
			}
		}
		at = func(i int) any { return o.col.Value(i) }
	} else {
		at = func(int) any { return other }
	}

	results := make([]any, s.Len())
	for i := range results {
		v, err := fn(s.col.Value(i), at(i))
		if err != nil {
			return nil, err
		}
		results[i] = v
	}

	if dt, ok := s.ExtensionDtype(); ok {
		if arr, err := dt.ConstructFromSequence(results); err == nil {
			return s.with(&extColumn{arr: arr}, s.index), nil
		}
	}
	return s.with(inferColumn(results), s.index), nil
}

// Apply maps fn over the values. The result dtype is inferred.
func (s *Series) Apply(fn func(v any) (any, error)) (*Series, error) {
	results := make([]any, s.Len())
	for i := range results {
		v, err := fn(s.col.Value(i))
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return s.with(inferColumn(results), s.index), nil
}

// AsType casts the values to dtype.
func (s *Series) AsType(dtype any) (*Series, error) {
	dt, err := ParseDtype(dtype)
	if err != nil {
		return nil, err
	}
	col, err := castColumn(s.col, dt)
	if err != nil {
		return nil, err
	}
	return s.with(col, s.index), nil
}

// Align conforms s and other to the union of their indexes.
func (s *Series) Align(other *Series) (*Series, *Series, error) {
	if s.index.Equals(other.index) {
		return s, other, nil
	}
	union, err := s.index.union(other.index)
	if err != nil {
		return nil, nil, err
	}
	labels := union.Labels()
	left, err := s.Reindex(labels, nil)
	if err != nil {
		return nil, nil, err
	}
	right, err := other.Reindex(labels, nil)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}
