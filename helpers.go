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

package extarray

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"golang.org/x/exp/slices"
)

// IsNAMask returns the missing-value mask of arr.
func IsNAMask(arr ExtensionArray) []bool {
	mask := make([]bool, arr.Len())
	for i := range mask {
		mask[i] = arr.IsNA(i)
	}
	return mask
}

// CountNA returns the number of missing entries in arr.
func CountNA(arr ExtensionArray) int {
	n := 0
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNA(i) {
			n++
		}
	}
	return n
}

// DropNA returns the non-missing entries of arr in order.
func DropNA(arr ExtensionArray) (ExtensionArray, error) {
	keep := make([]int, 0, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		if !arr.IsNA(i) {
			keep = append(keep, i)
		}
	}
	return arr.Take(keep, false, nil)
}

// FillNA replaces missing entries with value. value is either a scalar of
// the dtype or an ExtensionArray of the same length supplying one
// replacement per position.
func FillNA(arr ExtensionArray, value any) (ExtensionArray, error) {
	out := arr.Copy()
	if other, ok := value.(ExtensionArray); ok {
		if other.Len() != arr.Len() {
			return nil, fmt.Errorf("%w: length of 'value' does not match, got %d expected %d",
				arrow.ErrInvalid, other.Len(), arr.Len())
		}
		for i := 0; i < arr.Len(); i++ {
			if arr.IsNA(i) {
				if err := out.SetValue(i, other.Value(i)); err != nil {
					return nil, err
				}
			}
		}
		return out, nil
	}

	for i := 0; i < arr.Len(); i++ {
		if arr.IsNA(i) {
			if err := out.SetValue(i, value); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// FillMethod selects the propagation direction of FillNAMethod.
type FillMethod int8

const (
	// Pad propagates the last valid value forward.
	Pad FillMethod = iota
	// Backfill propagates the next valid value backward.
	Backfill
)

func (m FillMethod) String() string {
	if m == Backfill {
		return "backfill"
	}
	return "pad"
}

// ParseFillMethod accepts "pad"/"ffill" and "backfill"/"bfill".
func ParseFillMethod(s string) (FillMethod, error) {
	switch strings.ToLower(s) {
	case "pad", "ffill":
		return Pad, nil
	case "backfill", "bfill":
		return Backfill, nil
	}
	return Pad, fmt.Errorf("%w: invalid fill method %q, expected pad/ffill or backfill/bfill", arrow.ErrInvalid, s)
}

// FillIndexer computes the take indices that fill the positions in mask
// from their neighbours. At most limit consecutive missing entries are
// filled after each valid one; limit <= 0 means no limit. Positions that
// stay missing map to themselves.
func FillIndexer(mask []bool, method FillMethod, limit int) []int {
	n := len(mask)
	idx := make([]int, n)
	last, run := -1, 0
	visit := func(i int) {
		idx[i] = i
		if !mask[i] {
			last, run = i, 0
			return
		}
		run++
		if last >= 0 && (limit <= 0 || run <= limit) {
			idx[i] = last
		}
	}
	if method == Backfill {
		for i := n - 1; i >= 0; i-- {
			visit(i)
		}
	} else {
		for i := 0; i < n; i++ {
			visit(i)
		}
	}
	return idx
}

// FillNAMethod fills missing entries by propagating neighbouring valid
// values.
func FillNAMethod(arr ExtensionArray, method FillMethod, limit int) (ExtensionArray, error) {
	return arr.Take(FillIndexer(IsNAMask(arr), method, limit), false, nil)
}

// Shift moves the values by periods positions, filling the vacated slots
// with fill, or NAValue when fill is nil. A negative periods shifts
// towards the start.
func Shift(arr ExtensionArray, periods int, fill any) (ExtensionArray, error) {
	n := arr.Len()
	idx := make([]int, n)
	for i := range idx {
		src := i - periods
		if src < 0 || src >= n {
			src = FillPosition
		}
		idx[i] = src
	}
	return arr.Take(idx, true, fill)
}

// Argsort returns the indices that sort arr. The sort is stable and
// missing entries are placed last regardless of direction.
func Argsort(arr ExtensionArray, ascending bool) []int {
	valid := make([]int, 0, arr.Len())
	var missing []int
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNA(i) {
			missing = append(missing, i)
		} else {
			valid = append(valid, i)
		}
	}
	slices.SortStableFunc(valid, func(a, b int) int {
		if !ascending {
			a, b = b, a
		}
		switch {
		case arr.Less(a, b):
			return -1
		case arr.Less(b, a):
			return 1
		}
		return 0
	})
	return append(valid, missing...)
}

// Factorize encodes arr as integer codes into its distinct values. Missing
// entries get code -1 and do not appear among the uniques. Without sort,
// uniques are in order of first appearance.
func Factorize(arr ExtensionArray, sort bool) ([]int, ExtensionArray, error) {
	keys := arr.ValuesForFactorize()
	codes := make([]int, arr.Len())
	seen := make(map[string]int)
	var first []int
	for i, k := range keys {
		if arr.IsNA(i) {
			codes[i] = -1
			continue
		}
		code, ok := seen[k]
		if !ok {
			code = len(first)
			seen[k] = code
			first = append(first, i)
		}
		codes[i] = code
	}

	uniques, err := arr.Take(first, false, nil)
	if err != nil {
		return nil, nil, err
	}
	if !sort {
		return codes, uniques, nil
	}

	order := Argsort(uniques, true)
	remap := make([]int, len(order))
	for newCode, oldCode := range order {
		remap[oldCode] = newCode
	}
	for i, c := range codes {
		if c >= 0 {
			codes[i] = remap[c]
		}
	}
	if uniques, err = uniques.Take(order, false, nil); err != nil {
		return nil, nil, err
	}
	return codes, uniques, nil
}

// Unique returns the distinct values of arr in order of first appearance.
// All missing entries collapse into a single missing entry.
func Unique(arr ExtensionArray) (ExtensionArray, error) {
	keys := arr.ValuesForFactorize()
	seen := make(map[string]struct{})
	sawNA := false
	var first []int
	for i, k := range keys {
		if arr.IsNA(i) {
			if !sawNA {
				sawNA = true
				first = append(first, i)
			}
			continue
		}
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			first = append(first, i)
		}
	}
	return arr.Take(first, false, nil)
}

// ValueCounts delegates to arr when it implements ValueCounter.
func ValueCounts(arr ExtensionArray, dropna bool) (ExtensionArray, []int64, error) {
	vc, ok := arr.(ValueCounter)
	if !ok {
		return nil, nil, fmt.Errorf("%w: value_counts is not supported for dtype %s",
			arrow.ErrNotImplemented, arr.Dtype())
	}
	return vc.ValueCounts(dropna)
}

// ToSlice copies the scalars of arr into a slice.
func ToSlice(arr ExtensionArray) []any {
	out := make([]any, arr.Len())
	for i := range out {
		out[i] = arr.Value(i)
	}
	return out
}

// Equal reports whether a and b have equal dtypes and lengths, and eq holds
// for every pair of scalars.
func Equal(a, b ExtensionArray, eq func(x, y any) bool) bool {
	if a.Len() != b.Len() || !a.Dtype().Equal(b.Dtype()) {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !eq(a.Value(i), b.Value(i)) {
			return false
		}
	}
	return true
}

// Concat concatenates arrays sharing one dtype.
func Concat(arrs ...ExtensionArray) (ExtensionArray, error) {
	if len(arrs) == 0 {
		return nil, fmt.Errorf("%w: need at least one array to concatenate", arrow.ErrInvalid)
	}
	dt := arrs[0].Dtype()
	for _, a := range arrs[1:] {
		if !dt.Equal(a.Dtype()) {
			return nil, fmt.Errorf("%w: cannot concatenate %s with %s", arrow.ErrType, dt, a.Dtype())
		}
	}
	return arrs[0].ConcatSameType(arrs)
}

// Format renders values in the common "<Type>\n[v0, v1, ...]\nLength: n,
// dtype: name" layout, eliding the middle of long arrays.
func Format(typeName string, arr ExtensionArray, formatValue func(i int) string) string {
	const edge = 5
	n := arr.Len()
	parts := make([]string, 0, 2*edge+1)
	for i := 0; i < n; i++ {
		if n > 2*edge && i == edge {
			parts = append(parts, "...")
			i = n - edge - 1
			continue
		}
		parts = append(parts, formatValue(i))
	}
	return fmt.Sprintf("<%s>\n[%s]\nLength: %d, dtype: %s", typeName, strings.Join(parts, ", "), n, arr.Dtype())
}
