// Package sink defines the capability interface pkg/emit drives: the
// minimum surface an external code generator (an LLVM-like backend
// targeting a zk-VM) must expose. This module never implements a
// concrete Sink — wiring one up is out of scope (spec.md's Non-goals) —
// it only defines the contract and a recording reference implementation
// (Recorder) used by tests to exercise the emitters end to end.
package sink

import "math/big"

// ValueID and BlockID are opaque handles a Sink hands back to the
// emitter; this module never inspects them.
type ValueID uint64
type BlockID uint64
type PointerID uint64

// Type is the closed set of value types the emitters need to describe —
// a single wide machine word plus composite types built from it, enough
// to model the stack-slot register file and EVM-sized aggregates.
type Type struct {
	Kind    TypeKind
	Length  int   // element count for Array
	Element *Type // element type for Array/Pointer
}

type TypeKind int

const (
	WordType TypeKind = iota
	PointerType
	ArrayType
	VoidType
)

// Linkage mirrors the handful of linkage kinds the emitters need.
type Linkage int

const (
	PrivateLinkage Linkage = iota
	ExternalLinkage
)

// Predicate is an integer comparison predicate for BuildIntCompare.
type Predicate int

const (
	PredEQ Predicate = iota
	PredNE
	PredULT
	PredULE
	PredUGT
	PredUGE
	PredSLT
	PredSLE
	PredSGT
	PredSGE
)

// AddressSpace distinguishes the three memory regions the domain
// intrinsics move data between (spec.md §6).
type AddressSpace int

const (
	Heap AddressSpace = iota
	Parent
	Child
)

// FunctionMetadata carries the pre-computed register-file depth for an
// Ethereal-IR function (spec.md §4.6's FunctionEVMData{stack_size}).
type FunctionMetadata struct {
	StackSize int
}

// Sink is the capability surface the emission driver (pkg/emit) is
// written against. A concrete implementation adapts this to a real
// code-generator backend; none ships in this module.
type Sink interface {
	// Structure
	AddFunction(name string, paramTypes []Type, returnType Type, linkage Linkage, metadata FunctionMetadata) error
	AppendBasicBlock(name string) BlockID
	SetBasicBlock(block BlockID)

	// Memory
	BuildAlloca(t Type, name string) PointerID
	BuildLoad(pointer PointerID, name string) ValueID
	BuildStore(pointer PointerID, value ValueID)
	BuildGEP(pointer PointerID, indices []ValueID, name string) PointerID

	// Arithmetic / bitwise
	BuildIntAdd(lhs, rhs ValueID, name string) ValueID
	BuildIntSub(lhs, rhs ValueID, name string) ValueID
	BuildIntMul(lhs, rhs ValueID, name string) ValueID
	BuildIntUDiv(lhs, rhs ValueID, name string) ValueID
	BuildIntSDiv(lhs, rhs ValueID, name string) ValueID
	BuildIntURem(lhs, rhs ValueID, name string) ValueID
	BuildIntSRem(lhs, rhs ValueID, name string) ValueID
	BuildIntAnd(lhs, rhs ValueID, name string) ValueID
	BuildIntOr(lhs, rhs ValueID, name string) ValueID
	BuildIntXor(lhs, rhs ValueID, name string) ValueID
	BuildIntShl(lhs, rhs ValueID, name string) ValueID
	BuildIntLShr(lhs, rhs ValueID, name string) ValueID
	BuildIntAShr(lhs, rhs ValueID, name string) ValueID
	BuildIntCompare(pred Predicate, lhs, rhs ValueID, name string) ValueID
	BuildIntCast(value ValueID, t Type, name string) ValueID

	// BuildCall invokes a previously-declared function by name. Not part
	// of spec.md §6's literal capability list — that list is introduced
	// as "the minimum capability set", and Yul's function calls have no
	// other lowering target among the listed operations, so a direct
	// call builder is the smallest addition that makes user-defined
	// function calls expressible at all.
	BuildCall(name string, args []ValueID) []ValueID

	// Control flow
	BuildUnconditionalBranch(target BlockID)
	BuildConditionalBranch(cond ValueID, then, els BlockID)
	BuildSwitch(scrutinee ValueID, defaultBlock BlockID, cases map[*big.Int]BlockID)
	BuildReturn(value *ValueID)

	// Constants
	ConstInt(t Type, value *big.Int) ValueID

	// Domain intrinsics
	BuildStorageLoad(key ValueID) ValueID
	BuildStorageStore(key, value ValueID)
	BuildEventEmit(topics []ValueID, data ValueID)
	BuildFarCall(kind FarCallKind, gas, address, valueArg, argsOffset, argsLength, retOffset, retLength ValueID) ValueID
	BuildThrow()
	BuildHashAbsorb(value ValueID)
	BuildHashOutput() ValueID
	BuildMemoryCopy(from, to AddressSpace, destination, source, length ValueID)
	BuildMemoryMove(destination, source, length ValueID)
	BuildMemorySet(destination, value, length ValueID)
	BuildComparisonFlag() ValueID
}

// FarCallKind enumerates the call variants BuildFarCall lowers CALL/
// CALLCODE/DELEGATECALL/STATICCALL into.
type FarCallKind int

const (
	FarCallRegular FarCallKind = iota
	FarCallCode
	FarCallDelegate
	FarCallStatic
)
