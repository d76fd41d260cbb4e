package etherealir

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zkonic/solyul/pkg/evm/instruction"
	"github.com/zkonic/solyul/pkg/solc/version"
)

// CodeType distinguishes a contract's deploy code from its runtime code;
// both are interpreted independently, each producing its own Function.
type CodeType int

const (
	Deploy CodeType = iota
	Runtime
)

func (c CodeType) String() string {
	if c == Deploy {
		return "deploy"
	}
	return "runtime"
}

// Function is the Ethereal-IR result of symbolically interpreting one
// code segment: every reachable (tag, entry-stack-shape) combination as
// its own Block, plus the register-file depth emission needs to
// allocate (stack_size).
type Function struct {
	SolcVersion version.Version
	CodeType    CodeType
	Blocks      map[int][]*Block
	StackSize   int
}

// queueElement is one pending (re-)entry into a tag with a known entry
// stack shape, the Go analogue of the Rust original's recursion frame —
// flattened here into an explicit worklist (see Build) rather than
// recursive calls, since Go has no tail-call guarantee and contracts can
// have arbitrarily deep jump chains.
type queueElement struct {
	tag         int
	predecessor *int
	entryStack  Stack
}

type visitedKey struct {
	tag       int
	stackHash uint64
}

// Build interprets flat (tag -> instructions) segments into a Function,
// per spec.md §4.5: seed the worklist with {tag: 0, predecessor: none,
// entry_stack: empty}, and for each dequeued element execute its block's
// instructions against a working stack, enqueuing successors at JUMP/
// JUMPI/Tag boundaries, until the visited set (keyed by (tag,
// stack.hash())) exhausts the worklist.
func Build(solcVersion version.Version, codeType CodeType, flat map[int]*FlatBlock) (*Function, error) {
	fn := &Function{SolcVersion: solcVersion, CodeType: codeType, Blocks: make(map[int][]*Block)}
	visited := make(map[visitedKey]struct{})
	worklist := []queueElement{{tag: 0, entryStack: Stack{}}}

	for len(worklist) > 0 {
		qe := worklist[0]
		worklist = worklist[1:]

		key := visitedKey{tag: qe.tag, stackHash: qe.entryStack.Hash()}
		if _, seen := visited[key]; seen {
			continue
		}
		visited[key] = struct{}{}

		template, ok := flat[qe.tag]
		if !ok {
			return nil, fmt.Errorf("%w: tag %d", ErrUndeclaredBlock, qe.tag)
		}

		block := newBlock(qe.tag, qe.entryStack, template)
		block = fn.insertBlock(block)
		if qe.predecessor != nil {
			block.Predecessors.Add(*qe.predecessor)
		}

		successors, err := interpretBlock(fn.SolcVersion, qe.tag, block)
		if err != nil {
			return nil, err
		}
		worklist = append(worklist, successors...)
	}

	fn.finalize()
	return fn, nil
}

// interpretBlock executes block's elements against its working stack,
// following the per-instruction rules of spec.md §4.5 arm-for-arm, and
// returns the queue elements it discovers: JUMP and JUMPI each enqueue
// their target and let iteration continue over the remaining elements
// (a JUMPI's fallthrough instructions live in the same flat block and
// must still run), matching original_source's consume_block, which
// never breaks its per-element loop on either arm. A Tag instruction
// can never appear inside block.Elements — Segment only ever places one
// at a flat block's boundary — so that arm is unreachable but kept for
// parity with the closed instruction set original_source matches
// exhaustively.
func interpretBlock(v version.Version, tag int, block *Block) ([]queueElement, error) {
	var successors []queueElement

	for i := range block.Elements {
		elem := &block.Elements[i]
		name := elem.Instruction.Name

		switch {
		case name == instruction.PushTag:
			t, err := parseTag(elem.Instruction.Value)
			if err != nil {
				return nil, err
			}
			block.Stack.Push(Element{Kind: TagElement, Tag: t})
			elem.Stack = block.Stack.Clone()

		case name == instruction.JUMP:
			elem.Stack = block.Stack.Clone()
			dest, err := block.Stack.PopTag()
			if err != nil {
				return nil, err
			}
			pred := tag
			successors = append(successors, queueElement{tag: dest, predecessor: &pred, entryStack: block.Stack.Clone()})

		case name == instruction.JUMPI:
			elem.Stack = block.Stack.Clone()
			dest, err := block.Stack.PopTag()
			if err != nil {
				return nil, err
			}
			block.Stack.Pop() // condition
			pred := tag
			successors = append(successors, queueElement{tag: dest, predecessor: &pred, entryStack: block.Stack.Clone()})

		case name == instruction.Tag:
			elem.Stack = block.Stack.Clone()
			dest, err := parseTag(elem.Instruction.Value)
			if err != nil {
				return nil, err
			}
			pred := tag
			successors = append(successors, queueElement{tag: dest, predecessor: &pred, entryStack: block.Stack.Clone()})
			return successors, nil // stop processing the current flat block

		case name.IsSwap():
			if err := block.Stack.Swap(name.SwapDepth()); err != nil {
				return nil, err
			}
			elem.Stack = block.Stack.Clone()

		case name.IsDup():
			if err := block.Stack.Dup(name.DupDepth()); err != nil {
				return nil, err
			}
			elem.Stack = block.Stack.Clone()

		case isConstantPush(name):
			block.Stack.Push(Element{Kind: ConstantElement, Constant: elem.Instruction.Value})
			elem.Stack = block.Stack.Clone()

		case name == instruction.SHL || name == instruction.SHR:
			block.Stack.Push(shiftProvenance(block.Stack))
			elem.Stack = block.Stack.Clone()
			result, _ := block.Stack.Pop()
			for n := instruction.InputSize(name, v); n > 0; n-- {
				block.Stack.Pop()
			}
			block.Stack.Push(result)

		case name == instruction.AND:
			inputSize := instruction.InputSize(name, v)
			block.Stack.Push(andProvenance(block.Stack, inputSize))
			elem.Stack = block.Stack.Clone()
			result, _ := block.Stack.Pop()
			for n := inputSize; n > 0; n-- {
				block.Stack.Pop()
			}
			block.Stack.Push(result)

		default:
			inputSize := instruction.InputSize(name, v)
			outputSize := instruction.OutputSize(name, v)
			if outputSize == 1 {
				block.Stack.Push(Element{Kind: ValueElement})
				elem.Stack = block.Stack.Clone()
				result, _ := block.Stack.Pop()
				for n := inputSize; n > 0; n-- {
					block.Stack.Pop()
				}
				block.Stack.Push(result)
			} else {
				elem.Stack = block.Stack.Clone()
				for n := inputSize; n > 0; n-- {
					block.Stack.Pop()
				}
			}
		}
	}

	return successors, nil
}

func isConstantPush(name instruction.Name) bool {
	if name.IsPush() {
		return true
	}
	switch name {
	case instruction.PushData, instruction.PushContractHash, instruction.PushContractHashSize,
		instruction.PushLib, instruction.PushDeployAddress:
		return true
	default:
		return false
	}
}

// shiftProvenance implements the SHL/SHR tag-provenance rule: peek the
// second-from-top element; a Tag survives the shift (the mask bits carry
// no information about which tag it was), anything else becomes Value.
func shiftProvenance(s Stack) Element {
	n := len(s.Elements)
	if n >= 2 {
		if second := s.Elements[n-2]; second.Kind == TagElement {
			return Element{Kind: TagElement, Tag: second.Tag}
		}
	}
	return Element{Kind: ValueElement}
}

// andProvenance implements the AND tag-provenance rule: scan the top
// inputSize elements for any Tag; the first found (nearest the top)
// becomes the result's provenance.
func andProvenance(s Stack, inputSize int) Element {
	n := len(s.Elements)
	for i := 0; i < inputSize && i < n; i++ {
		if e := s.Elements[n-1-i]; e.Kind == TagElement {
			return Element{Kind: TagElement, Tag: e.Tag}
		}
	}
	return Element{Kind: ValueElement}
}

// insertBlock appends block to its tag's clone list unless a block with
// an identical InitialStack hash is already present — structural parity
// with original_source's dedup; in practice the worklist's visited set
// already prevents reaching a duplicate shape.
func (f *Function) insertBlock(block *Block) *Block {
	tag := block.Tag
	for _, existing := range f.Blocks[tag] {
		if existing.InitialStack.Hash() == block.InitialStack.Hash() {
			return existing
		}
	}
	f.Blocks[tag] = append(f.Blocks[tag], block)
	return block
}

// finalize computes StackSize as the maximum stack depth observed across
// every BlockElement snapshot in the function — the allocation count
// emission needs for its register file.
func (f *Function) finalize() {
	for _, blocks := range f.Blocks {
		for _, block := range blocks {
			for _, elem := range block.Elements {
				if n := len(elem.Stack.Elements); n > f.StackSize {
					f.StackSize = n
				}
			}
		}
	}
}

// SortedTags returns the function's block tags in ascending order —
// spec.md §4.6/§5's required emission order (ascending tag, then clone
// index).
func (f *Function) SortedTags() []int {
	tags := make([]int, 0, len(f.Blocks))
	for tag := range f.Blocks {
		tags = append(tags, tag)
	}
	sort.Ints(tags)
	return tags
}

// String renders a human-readable dump of the function, mirroring
// original_source's Display impl — used by the --dump=ethir CLI flag.
func (f *Function) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "function %s (max_sp = %d) {\n", f.CodeType, f.StackSize)
	for _, tag := range f.SortedTags() {
		for index, block := range f.Blocks[tag] {
			preds := ""
			if block.Predecessors.Cardinality() > 0 {
				preds = fmt.Sprintf(" (predecessors: %v)", block.Predecessors.ToSlice())
			}
			fmt.Fprintf(&sb, "  block_%d/%d:%s\n", tag, index, preds)
			for _, elem := range block.Elements {
				fmt.Fprintf(&sb, "    %s\n", elem.Instruction.Name)
			}
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}
