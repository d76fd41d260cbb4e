package etherealir

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/zkonic/solyul/pkg/evm/assembly"
	"github.com/zkonic/solyul/pkg/evm/instruction"
)

// FlatBlock is one entry of the naive per-tag segmentation that precedes
// symbolic interpretation: the instructions following the definition of
// Tag, up to (not including) the next Tag definition. It is never mutated
// once built — every Block is interpreted from a fresh copy of its
// template's Instructions (see newBlock, called from Build).
type FlatBlock struct {
	Tag          int
	Instructions []assembly.Instruction
}

// Segment performs the naive segmentation spec.md §4.5 takes as input:
// split the flat instruction stream on every Tag definition only. The
// Tag instruction itself is a pure boundary marker, retained in neither
// the block it closes nor the one it opens. JUMP/JUMPI/STOP and the
// other terminators do NOT split a flat block on their own — a flat
// block may contain a JUMPI followed by its fallthrough instructions,
// since in well-formed assembly the conditional-branch target gets its
// own Tag but the fallthrough path does not. The entry block is always
// tag 0.
func Segment(code []assembly.Instruction) map[int]*FlatBlock {
	blocks := make(map[int]*FlatBlock)
	currentTag := 0
	var current []assembly.Instruction

	flush := func() {
		blocks[currentTag] = &FlatBlock{Tag: currentTag, Instructions: current}
	}

	for _, instr := range code {
		if instr.Name == instruction.Tag {
			flush()
			tag := 0
			if n, err := parseTag(instr.Value); err == nil {
				tag = n
			}
			currentTag = tag
			current = nil
			continue
		}
		current = append(current, instr)
	}
	flush()
	return blocks
}

// BlockElement pairs one instruction with the stack snapshot taken at
// the point spec.md §4.5 specifies for that instruction's rule.
type BlockElement struct {
	Instruction assembly.Instruction
	Stack       Stack
}

// Block is one interpreted occurrence of a tag: a specific entry stack
// shape, the working stack as it's threaded through Elements, and the
// callers (by tag) that reach it. Distinct entry-stack shapes for the
// same tag produce distinct, independently-owned Block clones (block
// cloning, spec.md §4.5) that share no mutable state.
type Block struct {
	Tag          int
	InitialStack Stack
	Stack        Stack
	Elements     []BlockElement
	Predecessors mapset.Set[int]
}

func newBlock(tag int, initialStack Stack, template *FlatBlock) *Block {
	elements := make([]BlockElement, len(template.Instructions))
	for i, instr := range template.Instructions {
		elements[i].Instruction = instr
	}
	return &Block{
		Tag:          tag,
		InitialStack: initialStack,
		Stack:        initialStack.Clone(),
		Elements:     elements,
		Predecessors: mapset.NewThreadUnsafeSet[int](),
	}
}

func parseTag(s string) (int, error) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid tag label %q", s)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
