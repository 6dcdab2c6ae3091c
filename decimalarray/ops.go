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

package decimalarray

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/bigdecimal"
	"github.com/cockroachdb/apd/v3"
)

// arith applies op to the element x of the array and the operand y.
// Reflected operators evaluate y op x.
func arith(c *bigdecimal.Context, op extarray.ArithmeticOp, x, y *apd.Decimal) (*apd.Decimal, error) {
	if op.IsReflected() {
		x, y = y, x
	}
	switch op.Unreflected() {
	case extarray.OpAdd:
		return c.Add(x, y)
	case extarray.OpSub:
		return c.Sub(x, y)
	case extarray.OpMul:
		return c.Mul(x, y)
	case extarray.OpTrueDiv:
		return c.Quo(x, y)
	case extarray.OpFloorDiv:
		return c.QuoInteger(x, y)
	case extarray.OpMod:
		return c.Rem(x, y)
	case extarray.OpPow:
		return c.Pow(x, y)
	}
	return nil, fmt.Errorf("%w: %s is not supported for decimal", arrow.ErrNotImplemented, op)
}

func compare(op extarray.CompareOp, x, y *apd.Decimal) bool {
	cmp, ok := bigdecimal.Cmp(x, y)
	if !ok {
		return op == extarray.OpNe
	}
	return op.Eval(cmp)
}

// operand resolves the right-hand side of a binary operation into a
// per-position accessor. Scalars broadcast; sequences and arrays must have
// length n.
func operand(other any, n int, allowFloat bool) (func(i int) (*apd.Decimal, error), error) {
	checkLen := func(m int) error {
		if m != n {
			return fmt.Errorf("%w: lengths must match, got %d and %d", arrow.ErrInvalid, n, m)
		}
		return nil
	}

	switch o := other.(type) {
	case *DecimalArray:
		if err := checkLen(o.Len()); err != nil {
			return nil, err
		}
		return func(i int) (*apd.Decimal, error) { return o.values[i], nil }, nil
	case extarray.ExtensionArray:
		if err := checkLen(o.Len()); err != nil {
			return nil, err
		}
		return func(i int) (*apd.Decimal, error) { return bigdecimal.FromValue(o.Value(i), allowFloat) }, nil
	case []*apd.Decimal:
		if err := checkLen(len(o)); err != nil {
			return nil, err
		}
		return func(i int) (*apd.Decimal, error) { return bigdecimal.FromValue(o[i], allowFloat) }, nil
	case []any:
		return sequence(o, n, allowFloat)
	case []int64:
		return sequence(o, n, allowFloat)
	case []int:
		return sequence(o, n, allowFloat)
	case []float64:
		if !allowFloat {
			return nil, fmt.Errorf("%w: unsupported operand type float64 for decimal", arrow.ErrType)
		}
		return sequence(o, n, allowFloat)
	}

	d, err := bigdecimal.FromValue(other, allowFloat)
	if err != nil {
		return nil, err
	}
	return func(int) (*apd.Decimal, error) { return d, nil }, nil
}

func sequence[T any](vals []T, n int, allowFloat bool) (func(i int) (*apd.Decimal, error), error) {
	if len(vals) != n {
		return nil, fmt.Errorf("%w: lengths must match, got %d and %d", arrow.ErrInvalid, n, len(vals))
	}
	return func(i int) (*apd.Decimal, error) { return bigdecimal.FromValue(vals[i], allowFloat) }, nil
}

// Arith applies op element-wise. The decimal context is taken from ctx.
// Floats are not accepted as operands.
func (a *DecimalArray) Arith(ctx context.Context, op extarray.ArithmeticOp, other any) (extarray.ExtensionArray, error) {
	if op.Unreflected() == extarray.OpDivMod {
		return nil, fmt.Errorf("%w: divmod is not supported for decimal", arrow.ErrNotImplemented)
	}
	rhs, err := operand(other, len(a.values), false)
	if err != nil {
		return nil, err
	}

	c := bigdecimal.FromContext(ctx)
	out := make([]*apd.Decimal, len(a.values))
	for i, x := range a.values {
		y, err := rhs(i)
		if err != nil {
			return nil, err
		}
		if out[i], err = arith(c, op, x, y); err != nil {
			return nil, fmt.Errorf("decimal %s at position %d: %w", op.Symbol(), i, err)
		}
	}
	return &DecimalArray{values: out}, nil
}

// Compare applies op element-wise. Float operands are converted exactly.
func (a *DecimalArray) Compare(_ context.Context, op extarray.CompareOp, other any) ([]bool, error) {
	rhs, err := operand(other, len(a.values), true)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(a.values))
	for i, x := range a.values {
		y, err := rhs(i)
		if err != nil {
			return nil, err
		}
		out[i] = compare(op, x, y)
	}
	return out, nil
}
