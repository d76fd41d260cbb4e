package sink

import (
	"fmt"
	"math/big"
)

// Recorder is a reference Sink that records every call it receives
// instead of generating real code. It exists so pkg/emit's tests can
// drive the emitters end to end without a concrete code-generator
// backend, which this module never ships (spec.md's Non-goals keep the
// Sink itself abstract). Every builder call appends a line to
// Instructions tagged with the basic block it landed in, so a test can
// assert on emitted shape (branch counts, opcode sequence) without a
// real backend to disassemble.
type Recorder struct {
	Functions    []RecordedFunction
	BlockNames   []string // indexed by BlockID - 1
	Instructions []string

	nextValue    ValueID
	nextBlock    BlockID
	nextPointer  PointerID
	currentBlock BlockID
}

type RecordedFunction struct {
	Name       string
	ParamTypes []Type
	ReturnType Type
	Linkage    Linkage
	Metadata   FunctionMetadata
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) freshValue() ValueID {
	r.nextValue++
	return r.nextValue
}

func (r *Recorder) record(format string, args ...any) {
	block := "?"
	if r.currentBlock != 0 && int(r.currentBlock) <= len(r.BlockNames) {
		block = r.BlockNames[r.currentBlock-1]
	}
	r.Instructions = append(r.Instructions, fmt.Sprintf("[%s] %s", block, fmt.Sprintf(format, args...)))
}

func (r *Recorder) AddFunction(name string, paramTypes []Type, returnType Type, linkage Linkage, metadata FunctionMetadata) error {
	r.Functions = append(r.Functions, RecordedFunction{name, paramTypes, returnType, linkage, metadata})
	return nil
}

func (r *Recorder) AppendBasicBlock(name string) BlockID {
	r.nextBlock++
	r.BlockNames = append(r.BlockNames, name)
	return r.nextBlock
}

func (r *Recorder) SetBasicBlock(block BlockID) {
	r.currentBlock = block
}

func (r *Recorder) BuildAlloca(t Type, name string) PointerID {
	r.nextPointer++
	r.record("alloca %s -> p%d", name, r.nextPointer)
	return r.nextPointer
}

func (r *Recorder) BuildLoad(pointer PointerID, name string) ValueID {
	v := r.freshValue()
	r.record("load p%d -> v%d", pointer, v)
	return v
}

func (r *Recorder) BuildStore(pointer PointerID, value ValueID) {
	r.record("store v%d -> p%d", value, pointer)
}

func (r *Recorder) BuildGEP(pointer PointerID, indices []ValueID, name string) PointerID {
	r.nextPointer++
	r.record("gep p%d[%v] -> p%d", pointer, indices, r.nextPointer)
	return r.nextPointer
}

func (r *Recorder) binOp(op string, lhs, rhs ValueID) ValueID {
	v := r.freshValue()
	r.record("%s v%d, v%d -> v%d", op, lhs, rhs, v)
	return v
}

func (r *Recorder) BuildIntAdd(lhs, rhs ValueID, name string) ValueID {
	return r.binOp("add", lhs, rhs)
}
func (r *Recorder) BuildIntSub(lhs, rhs ValueID, name string) ValueID {
	return r.binOp("sub", lhs, rhs)
}
func (r *Recorder) BuildIntMul(lhs, rhs ValueID, name string) ValueID {
	return r.binOp("mul", lhs, rhs)
}
func (r *Recorder) BuildIntUDiv(lhs, rhs ValueID, name string) ValueID {
	return r.binOp("udiv", lhs, rhs)
}
func (r *Recorder) BuildIntSDiv(lhs, rhs ValueID, name string) ValueID {
	return r.binOp("sdiv", lhs, rhs)
}
func (r *Recorder) BuildIntURem(lhs, rhs ValueID, name string) ValueID {
	return r.binOp("urem", lhs, rhs)
}
func (r *Recorder) BuildIntSRem(lhs, rhs ValueID, name string) ValueID {
	return r.binOp("srem", lhs, rhs)
}
func (r *Recorder) BuildIntAnd(lhs, rhs ValueID, name string) ValueID {
	return r.binOp("and", lhs, rhs)
}
func (r *Recorder) BuildIntOr(lhs, rhs ValueID, name string) ValueID {
	return r.binOp("or", lhs, rhs)
}
func (r *Recorder) BuildIntXor(lhs, rhs ValueID, name string) ValueID {
	return r.binOp("xor", lhs, rhs)
}
func (r *Recorder) BuildIntShl(lhs, rhs ValueID, name string) ValueID {
	return r.binOp("shl", lhs, rhs)
}
func (r *Recorder) BuildIntLShr(lhs, rhs ValueID, name string) ValueID {
	return r.binOp("lshr", lhs, rhs)
}
func (r *Recorder) BuildIntAShr(lhs, rhs ValueID, name string) ValueID {
	return r.binOp("ashr", lhs, rhs)
}

func (r *Recorder) BuildIntCompare(pred Predicate, lhs, rhs ValueID, name string) ValueID {
	v := r.freshValue()
	r.record("icmp %d v%d, v%d -> v%d", pred, lhs, rhs, v)
	return v
}

func (r *Recorder) BuildIntCast(value ValueID, t Type, name string) ValueID {
	v := r.freshValue()
	r.record("cast v%d -> v%d", value, v)
	return v
}

func (r *Recorder) BuildCall(name string, args []ValueID) []ValueID {
	v := r.freshValue()
	r.record("call %s(%v) -> v%d", name, args, v)
	return []ValueID{v}
}

func (r *Recorder) BuildUnconditionalBranch(target BlockID) {
	r.record("br %s", r.blockName(target))
}

func (r *Recorder) BuildConditionalBranch(cond ValueID, then, els BlockID) {
	r.record("br.cond v%d, %s, %s", cond, r.blockName(then), r.blockName(els))
}

func (r *Recorder) BuildSwitch(scrutinee ValueID, defaultBlock BlockID, cases map[*big.Int]BlockID) {
	r.record("switch v%d, default %s, %d cases", scrutinee, r.blockName(defaultBlock), len(cases))
}

func (r *Recorder) BuildReturn(value *ValueID) {
	if value == nil {
		r.record("ret void")
		return
	}
	r.record("ret v%d", *value)
}

func (r *Recorder) ConstInt(t Type, value *big.Int) ValueID {
	v := r.freshValue()
	r.record("const %s -> v%d", value.String(), v)
	return v
}

func (r *Recorder) BuildStorageLoad(key ValueID) ValueID {
	v := r.freshValue()
	r.record("sload v%d -> v%d", key, v)
	return v
}

func (r *Recorder) BuildStorageStore(key, value ValueID) {
	r.record("sstore v%d, v%d", key, value)
}

func (r *Recorder) BuildEventEmit(topics []ValueID, data ValueID) {
	r.record("event %v, v%d", topics, data)
}

func (r *Recorder) BuildFarCall(kind FarCallKind, gas, address, valueArg, argsOffset, argsLength, retOffset, retLength ValueID) ValueID {
	v := r.freshValue()
	r.record("farcall kind=%d gas=v%d addr=v%d -> v%d", kind, gas, address, v)
	return v
}

func (r *Recorder) BuildThrow() {
	r.record("throw")
}

func (r *Recorder) BuildHashAbsorb(value ValueID) {
	r.record("hash.absorb v%d", value)
}

func (r *Recorder) BuildHashOutput() ValueID {
	v := r.freshValue()
	r.record("hash.output -> v%d", v)
	return v
}

func (r *Recorder) BuildMemoryCopy(from, to AddressSpace, destination, source, length ValueID) {
	r.record("memcopy %d->%d dst=v%d src=v%d len=v%d", from, to, destination, source, length)
}

func (r *Recorder) BuildMemoryMove(destination, source, length ValueID) {
	r.record("memmove dst=v%d src=v%d len=v%d", destination, source, length)
}

func (r *Recorder) BuildMemorySet(destination, value, length ValueID) {
	r.record("memset dst=v%d val=v%d len=v%d", destination, value, length)
}

func (r *Recorder) BuildComparisonFlag() ValueID {
	v := r.freshValue()
	r.record("flag -> v%d", v)
	return v
}

func (r *Recorder) blockName(id BlockID) string {
	if id != 0 && int(id) <= len(r.BlockNames) {
		return r.BlockNames[id-1]
	}
	return "?"
}

var _ Sink = (*Recorder)(nil)
