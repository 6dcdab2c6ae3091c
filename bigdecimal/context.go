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

package bigdecimal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow/go/extarray/internal/debug"
	"github.com/cockroachdb/apd/v3"
)

// DefaultPrecision is the number of significant digits kept by a new
// Context.
const DefaultPrecision = 28

// Trap groups. DivisionUndefined and DivisionImpossible are refinements of
// an invalid operation, so clearing InvalidOperation clears them too.
const (
	DivisionByZero   = apd.DivisionByZero
	InvalidOperation = apd.InvalidOperation | apd.DivisionUndefined | apd.DivisionImpossible
)

var (
	ErrDivisionByZero   = fmt.Errorf("%w: decimal division by zero", arrow.ErrInvalid)
	ErrInvalidOperation = fmt.Errorf("%w: invalid decimal operation", arrow.ErrInvalid)
	ErrOverflow         = fmt.Errorf("%w: decimal overflow", arrow.ErrInvalid)
)

// Context holds the arithmetic configuration: precision, rounding and the
// set of trapped conditions. It is safe for concurrent use; each operation
// works on a snapshot of the configuration.
type Context struct {
	mu  sync.RWMutex
	cfg apd.Context
}

// NewContext returns a context with DefaultPrecision digits, half-even
// rounding and apd's default traps.
func NewContext() *Context {
	cfg := *apd.BaseContext.WithPrecision(DefaultPrecision)
	cfg.Rounding = apd.RoundHalfEven
	cfg.Traps = apd.DefaultTraps
	return &Context{cfg: cfg}
}

var defaultContext = NewContext()

// Default returns the shared context used when no context is attached to a
// context.Context.
func Default() *Context { return defaultContext }

type ctxDecimalKey struct{}

// WithContext attaches c to ctx so that array operations receiving ctx
// compute with c.
func WithContext(ctx context.Context, c *Context) context.Context {
	return context.WithValue(ctx, ctxDecimalKey{}, c)
}

// FromContext returns the decimal context attached to ctx, or Default.
func FromContext(ctx context.Context) *Context {
	if ctx != nil {
		if c, ok := ctx.Value(ctxDecimalKey{}).(*Context); ok && c != nil {
			return c
		}
	}
	return Default()
}

// Clone returns an independent copy of c.
func (c *Context) Clone() *Context {
	return &Context{cfg: c.snapshot()}
}

// Precision reports the number of significant digits.
func (c *Context) Precision() uint32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.Precision
}

// Traps returns the currently trapped conditions.
func (c *Context) Traps() apd.Condition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.Traps
}

// SetTraps replaces the trapped conditions and returns the previous set.
func (c *Context) SetTraps(traps apd.Condition) apd.Condition {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.cfg.Traps
	c.cfg.Traps = traps
	debug.Log(func() string { return fmt.Sprintf("decimal traps %s -> %s", prev, traps) })
	return prev
}

// Trapped reports whether every condition in cond is trapped.
func (c *Context) Trapped(cond apd.Condition) bool {
	return c.Traps()&cond == cond
}

// Scoped clears the conditions in clear for the duration of fn and restores
// the previous trap set afterwards, whether fn returns normally, returns an
// error or panics.
func (c *Context) Scoped(clear apd.Condition, fn func(*Context) error) error {
	saved := c.SetTraps(c.Traps() &^ clear)
	defer c.SetTraps(saved)
	return fn(c)
}

func (c *Context) snapshot() apd.Context {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

type binaryFn func(cfg *apd.Context, d, x, y *apd.Decimal) (apd.Condition, error)

func (c *Context) apply(fn binaryFn, x, y *apd.Decimal) (*apd.Decimal, error) {
	if IsNaN(x) || IsNaN(y) {
		return NaN(), nil
	}
	cfg := c.snapshot()
	traps := cfg.Traps
	// conditions are mapped to errors below so that the result of an
	// untrapped condition is always the documented sentinel.
	cfg.Traps = 0
	d := new(apd.Decimal)
	res, err := fn(&cfg, d, x, y)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOperation, err)
	}

	switch {
	case res&DivisionByZero != 0:
		if traps&DivisionByZero != 0 {
			return nil, fmt.Errorf("%w: %s / %s", ErrDivisionByZero, x, y)
		}
		if d.Form != apd.Infinite {
			return Infinity(x.Negative != y.Negative), nil
		}
	case res&InvalidOperation != 0:
		if traps&res&InvalidOperation != 0 {
			return nil, fmt.Errorf("%w: %s (%s, %s)", ErrInvalidOperation, res&InvalidOperation, x, y)
		}
		return NaN(), nil
	case res&apd.Overflow != 0:
		if traps&apd.Overflow != 0 {
			return nil, fmt.Errorf("%w: (%s, %s)", ErrOverflow, x, y)
		}
	}
	return d, nil
}

// Add returns x + y.
func (c *Context) Add(x, y *apd.Decimal) (*apd.Decimal, error) {
	return c.apply((*apd.Context).Add, x, y)
}

// Sub returns x - y.
func (c *Context) Sub(x, y *apd.Decimal) (*apd.Decimal, error) {
	return c.apply((*apd.Context).Sub, x, y)
}

// Mul returns x * y.
func (c *Context) Mul(x, y *apd.Decimal) (*apd.Decimal, error) {
	return c.apply((*apd.Context).Mul, x, y)
}

// Quo returns x / y rounded to the context precision.
func (c *Context) Quo(x, y *apd.Decimal) (*apd.Decimal, error) {
	return c.apply((*apd.Context).Quo, x, y)
}

// QuoInteger returns the integer part of x / y, truncated toward zero.
func (c *Context) QuoInteger(x, y *apd.Decimal) (*apd.Decimal, error) {
	return c.apply((*apd.Context).QuoInteger, x, y)
}

// Rem returns the remainder of x / y; the result has the sign of x.
func (c *Context) Rem(x, y *apd.Decimal) (*apd.Decimal, error) {
	return c.apply((*apd.Context).Rem, x, y)
}

// Pow returns x ** y.
func (c *Context) Pow(x, y *apd.Decimal) (*apd.Decimal, error) {
	return c.apply((*apd.Context).Pow, x, y)
}

// Truncate returns the integral part of x.
func (c *Context) Truncate(x *apd.Decimal) (*apd.Decimal, error) {
	if IsNaN(x) {
		return NaN(), nil
	}
	cfg := c.snapshot()
	cfg.Rounding = apd.RoundDown
	cfg.Traps = 0
	d := new(apd.Decimal)
	if _, err := cfg.RoundToIntegralValue(d, x); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOperation, err)
	}
	return d, nil
}

// IsConditionError reports whether err was produced by a trapped decimal
// condition.
func IsConditionError(err error) bool {
	return errors.Is(err, ErrDivisionByZero) || errors.Is(err, ErrInvalidOperation) ||
		errors.Is(err, ErrOverflow)
}
