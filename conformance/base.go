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

package conformance

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/apache/arrow/go/extarray"
	"github.com/apache/arrow/go/extarray/frame"
	"github.com/stretchr/testify/suite"
	"golang.org/x/exp/slices"
)

// Config supplies the fixtures of the array type under test. Every
// constructor must return a fresh array on each call.
type Config struct {
	Dtype func() extarray.ExtensionDtype

	// Data returns DataSize non-missing values, not all equal.
	Data     func() extarray.ExtensionArray
	DataSize int
	// DataMissing returns [NA, valid].
	DataMissing func() extarray.ExtensionArray
	// DataRepeated yields count fresh copies of Data.
	DataRepeated func(count int) iter.Seq[extarray.ExtensionArray]
	// DataForSorting returns [b, c, a] with a < b < c.
	DataForSorting func() extarray.ExtensionArray
	// DataMissingForSorting returns [b, NA, a] with a < b.
	DataMissingForSorting func() extarray.ExtensionArray
	// DataForGrouping returns [b, b, NA, NA, a, a, b, c] with a < b < c.
	DataForGrouping func() extarray.ExtensionArray

	NAValue any
	// NACmp reports whether two scalars are equal, treating missing values
	// as equal to each other.
	NACmp func(a, b any) bool

	// MissingAwareEquality compares series and frames by missing mask
	// first and then by the remaining values, for dtypes whose missing
	// value is not equal to itself.
	MissingAwareEquality bool

	SupportsArithmetic bool
	SupportsComparison bool
	// Context, when set, returns the context operators run under.
	Context func() context.Context

	// ExpectedFailures maps a test method name to the reason it is known
	// to fail.
	ExpectedFailures map[string]string
	// Skips maps a test method name to the reason it is not run.
	Skips map[string]string
}

// Repeated returns a DataRepeated built from data.
func Repeated(data func() extarray.ExtensionArray) func(count int) iter.Seq[extarray.ExtensionArray] {
	return func(count int) iter.Seq[extarray.ExtensionArray] {
		return func(yield func(extarray.ExtensionArray) bool) {
			for i := 0; i < count; i++ {
				if !yield(data()) {
					return
				}
			}
		}
	}
}

// Base holds the configuration and assertions shared by every suite.
type Base struct {
	suite.Suite

	Cfg *Config
}

func (b *Base) testName() string {
	name := b.T().Name()
	return name[strings.LastIndexByte(name, '/')+1:]
}

// SetupTest skips tests listed in Config.Skips.
func (b *Base) SetupTest() {
	if reason, ok := b.Cfg.Skips[b.testName()]; ok {
		b.T().Skipf("skipped: %s", reason)
	}
}

// ExpectFailure reports the outcome of a test body that may be a known
// failure. A listed test that fails is skipped as XFAIL naming the reason;
// a listed test that passes fails the run. Unlisted tests require err to
// be nil.
func (b *Base) ExpectFailure(err error) {
	reason, expected := b.Cfg.ExpectedFailures[b.testName()]
	switch {
	case !expected:
		b.Require().NoError(err)
	case err != nil:
		b.T().Skipf("XFAIL (%s): %v", reason, err)
	default:
		b.Failf("XPASS", "%s passed but is expected to fail: %s", b.testName(), reason)
	}
}

func (b *Base) dtype() extarray.ExtensionDtype { return b.Cfg.Dtype() }

// Series builds a series from data, failing the test on error.
func (b *Base) Series(data any, opts ...frame.Option) *frame.Series {
	s, err := frame.NewSeries(data, opts...)
	b.Require().NoError(err)
	return s
}

// NewFrame builds a frame from cols, failing the test on error.
func (b *Base) NewFrame(cols ...frame.Column) *frame.Frame {
	f, err := frame.NewFrame(cols)
	b.Require().NoError(err)
	return f
}

// Take takes indices from arr without fill, failing the test on error.
func (b *Base) Take(arr extarray.ExtensionArray, indices ...int) extarray.ExtensionArray {
	out, err := arr.Take(indices, false, nil)
	b.Require().NoError(err)
	return out
}

func (b *Base) isOwnDtype(dt frame.Dtype) bool {
	return frame.DtypeEqual(dt, b.dtype())
}

// seriesEqual is AssertSeriesEqual returning the mismatch.
func (b *Base) seriesEqual(left, right *frame.Series, opts ...frame.CompareOption) error {
	if !b.Cfg.MissingAwareEquality || !b.isOwnDtype(left.Dtype()) {
		return frame.SeriesEqual(left, right, opts...)
	}

	lm, rm := left.NAMask(), right.NAMask()
	if !slices.Equal(lm, rm) {
		var diff []int
		for i := range lm {
			if i >= len(rm) || lm[i] != rm[i] {
				diff = append(diff, i)
			}
		}
		return fmt.Errorf("%w: missing value masks differ at positions %v\n[left]:  %v\n[right]: %v",
			frame.ErrNotEqual, diff, lm, rm)
	}

	keep := make([]bool, len(lm))
	for i, m := range lm {
		keep[i] = !m
	}
	l, err := left.Filter(keep)
	if err != nil {
		return err
	}
	r, err := right.Filter(keep)
	if err != nil {
		return err
	}
	return frame.SeriesEqual(l, r, opts...)
}

// AssertSeriesEqual fails the test unless left and right are equal. With
// Config.MissingAwareEquality, series of the dtype under test compare
// their missing masks first and then their remaining values.
func (b *Base) AssertSeriesEqual(left, right *frame.Series, opts ...frame.CompareOption) {
	b.Require().NoError(b.seriesEqual(left, right, opts...))
}

// frameEqual is AssertFrameEqual returning the mismatch.
func (b *Base) frameEqual(left, right *frame.Frame, opts ...frame.CompareOption) error {
	if !b.Cfg.MissingAwareEquality {
		return frame.FrameEqual(left, right, opts...)
	}

	if err := frame.ColumnsEqual(left, right, append(slices.Clone(opts), frame.Obj("DataFrame"))...); err != nil {
		return err
	}

	var own []string
	for i, dt := range left.Dtypes() {
		if b.isOwnDtype(dt) {
			own = append(own, left.Columns()[i])
		}
	}
	for _, name := range own {
		l, err := left.Col(name)
		if err != nil {
			return err
		}
		r, err := right.Col(name)
		if err != nil {
			return err
		}
		colOpts := append(slices.Clone(opts), frame.Obj(fmt.Sprintf("DataFrame column %q", name)))
		if err := b.seriesEqual(l, r, colOpts...); err != nil {
			return err
		}
	}

	restLeft, err := left.Drop(own...)
	if err != nil {
		return err
	}
	restRight, err := right.Drop(own...)
	if err != nil {
		return err
	}
	return frame.FrameEqual(restLeft, restRight, opts...)
}

// AssertFrameEqual fails the test unless left and right are equal. With
// Config.MissingAwareEquality, columns of the dtype under test are compared
// as in AssertSeriesEqual and the remaining columns are compared as usual.
func (b *Base) AssertFrameEqual(left, right *frame.Frame, opts ...frame.CompareOption) {
	b.Require().NoError(b.frameEqual(left, right, opts...))
}

// AssertExtensionArrayEqual fails the test unless left and right are equal.
func (b *Base) AssertExtensionArrayEqual(left, right extarray.ExtensionArray, opts ...frame.CompareOption) {
	b.Require().NoError(frame.ExtensionArrayEqual(left, right, opts...))
}

// AssertNAEqual fails unless a and b are equal under Config.NACmp.
func (b *Base) AssertNAEqual(x, y any) {
	b.Truef(b.Cfg.NACmp(x, y), "expected %v to equal %v", x, y)
}
