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

import "fmt"

// ArithmeticOp identifies a binary arithmetic operator. Reflected operators
// swap their operands: the array is the right-hand side.
type ArithmeticOp int8

const (
	OpAdd ArithmeticOp = iota
	OpSub
	OpMul
	OpTrueDiv
	OpFloorDiv
	OpMod
	OpPow
	OpDivMod
	OpRAdd
	OpRSub
	OpRMul
	OpRTrueDiv
	OpRFloorDiv
	OpRMod
	OpRPow
	OpRDivMod
)

const numForwardOps = OpRAdd

var arithNames = [...]string{
	OpAdd:      "add",
	OpSub:      "sub",
	OpMul:      "mul",
	OpTrueDiv:  "truediv",
	OpFloorDiv: "floordiv",
	OpMod:      "mod",
	OpPow:      "pow",
	OpDivMod:   "divmod",
}

var arithSymbols = [...]string{
	OpAdd:      "+",
	OpSub:      "-",
	OpMul:      "*",
	OpTrueDiv:  "/",
	OpFloorDiv: "//",
	OpMod:      "%",
	OpPow:      "**",
	OpDivMod:   "divmod",
}

// AllArithmeticOps lists every operator whose result is a single array,
// forward and reflected. Divmod returns a pair and is not included.
var AllArithmeticOps = []ArithmeticOp{
	OpAdd, OpRAdd, OpSub, OpRSub, OpMul, OpRMul, OpTrueDiv, OpRTrueDiv,
	OpFloorDiv, OpRFloorDiv, OpMod, OpRMod, OpPow, OpRPow,
}

func (op ArithmeticOp) valid() bool { return op >= OpAdd && op <= OpRDivMod }

// IsReflected reports whether op takes the array as its right operand.
func (op ArithmeticOp) IsReflected() bool { return op >= numForwardOps }

// Unreflected returns the forward form of op.
func (op ArithmeticOp) Unreflected() ArithmeticOp {
	if op.IsReflected() {
		return op - numForwardOps
	}
	return op
}

// Reflected returns the reflected form of op.
func (op ArithmeticOp) Reflected() ArithmeticOp {
	if op.IsReflected() {
		return op
	}
	return op + numForwardOps
}

// Name returns the dunder method name, e.g. "__radd__".
func (op ArithmeticOp) Name() string {
	if !op.valid() {
		return fmt.Sprintf("ArithmeticOp(%d)", op)
	}
	if op.IsReflected() {
		return "__r" + arithNames[op.Unreflected()] + "__"
	}
	return "__" + arithNames[op] + "__"
}

// Symbol returns the infix spelling of the forward operator.
func (op ArithmeticOp) Symbol() string {
	if !op.valid() {
		return "?"
	}
	return arithSymbols[op.Unreflected()]
}

func (op ArithmeticOp) String() string { return op.Name() }

// ParseArithmeticOp resolves a dunder name such as "__rmul__".
func ParseArithmeticOp(name string) (ArithmeticOp, bool) {
	for op := OpAdd; op <= OpRDivMod; op++ {
		if op.Name() == name {
			return op, true
		}
	}
	return 0, false
}

// CompareOp identifies a comparison operator.
type CompareOp int8

const (
	OpEq CompareOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

var compareNames = [...]string{
	OpEq: "eq", OpNe: "ne", OpLt: "lt", OpLe: "le", OpGt: "gt", OpGe: "ge",
}

var compareSymbols = [...]string{
	OpEq: "==", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
}

var AllCompareOps = []CompareOp{OpEq, OpNe, OpLt, OpLe, OpGt, OpGe}

// Name returns the dunder method name, e.g. "__lt__".
func (op CompareOp) Name() string {
	if op < OpEq || op > OpGe {
		return fmt.Sprintf("CompareOp(%d)", op)
	}
	return "__" + compareNames[op] + "__"
}

func (op CompareOp) Symbol() string {
	if op < OpEq || op > OpGe {
		return "?"
	}
	return compareSymbols[op]
}

func (op CompareOp) String() string { return op.Name() }

// Swap returns the operator that gives the same answer with the operands
// exchanged: a < b iff b > a.
func (op CompareOp) Swap() CompareOp {
	switch op {
	case OpLt:
		return OpGt
	case OpLe:
		return OpGe
	case OpGt:
		return OpLt
	case OpGe:
		return OpLe
	}
	return op
}

// Eval interprets the result of a three-way comparison.
func (op CompareOp) Eval(cmp int) bool {
	switch op {
	case OpEq:
		return cmp == 0
	case OpNe:
		return cmp != 0
	case OpLt:
		return cmp < 0
	case OpLe:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	case OpGe:
		return cmp >= 0
	}
	return false
}

// ParseCompareOp resolves a dunder name such as "__le__".
func ParseCompareOp(name string) (CompareOp, bool) {
	for _, op := range AllCompareOps {
		if op.Name() == name {
			return op, true
		}
	}
	return 0, false
}
