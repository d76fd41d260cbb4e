package etherealir

import (
	"errors"
	"testing"

	"github.com/zkonic/solyul/pkg/evm/assembly"
	"github.com/zkonic/solyul/pkg/evm/instruction"
	"github.com/zkonic/solyul/pkg/solc/version"
)

func instr(name instruction.Name, value string) assembly.Instruction {
	if value == "" {
		return assembly.Instruction{Name: name}
	}
	return assembly.Instruction{Name: name, Value: value, HasValue: true}
}

// TestMinimalJump covers scenario S4: PUSH_Tag 1; JUMP; Tag 1; STOP
// produces two blocks — tag 0 with a single clone whose outgoing stack
// pops the tag, and tag 1 with clone 0 whose initial_stack is empty.
// Function.stack_size == 1.
func TestMinimalJump(t *testing.T) {
	code := []assembly.Instruction{
		instr(instruction.PushTag, "1"),
		instr(instruction.JUMP, ""),
		instr(instruction.Tag, "1"),
		instr(instruction.STOP, ""),
	}
	flat := Segment(code)

	if len(flat) != 2 {
		t.Fatalf("expected 2 flat blocks, got %d: %+v", len(flat), flat)
	}

	v := version.MustParse("0.8.20")
	fn, err := Build(v, Deploy, flat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fn.Blocks[0]) != 1 {
		t.Fatalf("expected 1 clone at tag 0, got %d", len(fn.Blocks[0]))
	}
	if len(fn.Blocks[1]) != 1 {
		t.Fatalf("expected 1 clone at tag 1, got %d", len(fn.Blocks[1]))
	}
	if len(fn.Blocks[1][0].InitialStack.Elements) != 0 {
		t.Errorf("expected empty initial stack at tag 1, got %+v", fn.Blocks[1][0].InitialStack)
	}
	if fn.StackSize != 1 {
		t.Errorf("expected stack_size 1, got %d", fn.StackSize)
	}
}

func TestUndeclaredBlock(t *testing.T) {
	code := []assembly.Instruction{
		instr(instruction.PushTag, "99"),
		instr(instruction.JUMP, ""),
	}
	flat := Segment(code)
	_, err := Build(version.MustParse("0.8.20"), Deploy, flat)
	if !errors.Is(err, ErrUndeclaredBlock) {
		t.Fatalf("expected ErrUndeclaredBlock, got %v", err)
	}
}

func TestJumpiFallthroughAndBranch(t *testing.T) {
	// tag 0: PUSH1 0x01 (condition); PUSH_Tag 2 (destination); JUMPI; PUSH_Tag 1; JUMP
	// tag 1: STOP
	// tag 2: STOP
	code := []assembly.Instruction{
		instr(instruction.PUSH1, "0x01"),
		instr(instruction.PushTag, "2"),
		instr(instruction.JUMPI, ""),
		instr(instruction.PushTag, "1"),
		instr(instruction.JUMP, ""),
		instr(instruction.Tag, "1"),
		instr(instruction.STOP, ""),
		instr(instruction.Tag, "2"),
		instr(instruction.STOP, ""),
	}
	flat := Segment(code)
	fn, err := Build(version.MustParse("0.8.20"), Deploy, flat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fn.Blocks[1]) != 1 || len(fn.Blocks[2]) != 1 {
		t.Fatalf("expected both branch targets reached exactly once: %v / %v", fn.Blocks[1], fn.Blocks[2])
	}
	if !fn.Blocks[1][0].Predecessors.Contains(0) {
		t.Errorf("expected tag 1 to record predecessor 0")
	}
	if !fn.Blocks[2][0].Predecessors.Contains(0) {
		t.Errorf("expected tag 2 to record predecessor 0")
	}
}

func TestJumpOnNonTagIsMalformedControlFlow(t *testing.T) {
	code := []assembly.Instruction{
		instr(instruction.PUSH1, "0x00"),
		instr(instruction.JUMP, ""),
	}
	flat := Segment(code)
	_, err := Build(version.MustParse("0.8.20"), Deploy, flat)
	if !errors.Is(err, ErrMalformedControlFlow) {
		t.Fatalf("expected ErrMalformedControlFlow, got %v", err)
	}
}

func TestBlockCloningOnDistinctEntryStacks(t *testing.T) {
	// Two different paths reach tag 1 with different entry stack
	// shapes (one leaves a Value on the stack, the other doesn't), so
	// tag 1 should get two distinct clones.
	code := []assembly.Instruction{
		instr(instruction.PUSH1, "0x01"),
		instr(instruction.PushTag, "2"),
		instr(instruction.JUMPI, ""),
		instr(instruction.PushTag, "1"),
		instr(instruction.JUMP, ""),
		instr(instruction.Tag, "2"),
		instr(instruction.ADDRESS, ""), // leaves one Value on the stack
		instr(instruction.PushTag, "1"),
		instr(instruction.JUMP, ""),
		instr(instruction.Tag, "1"),
		instr(instruction.STOP, ""),
	}
	flat := Segment(code)
	fn, err := Build(version.MustParse("0.8.20"), Deploy, flat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fn.Blocks[1]) != 2 {
		t.Fatalf("expected 2 clones at tag 1 (distinct entry stacks), got %d", len(fn.Blocks[1]))
	}
}

func TestStackOperations(t *testing.T) {
	var s Stack
	s.Push(Element{Kind: ConstantElement, Constant: "1"})
	s.Push(Element{Kind: ConstantElement, Constant: "2"})
	s.Push(Element{Kind: ConstantElement, Constant: "3"})

	if err := s.Swap(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Elements[2].Constant != "1" || s.Elements[0].Constant != "3" {
		t.Fatalf("swap(2) produced unexpected order: %+v", s.Elements)
	}

	if err := s.Dup(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top, _ := s.Pop()
	if top.Constant != "1" {
		t.Fatalf("dup(1) then pop expected top constant 1, got %q", top.Constant)
	}
}

func TestStackHashStability(t *testing.T) {
	a := Stack{Elements: []Element{{Kind: TagElement, Tag: 5}, {Kind: ValueElement}}}
	b := Stack{Elements: []Element{{Kind: TagElement, Tag: 5}, {Kind: ValueElement}}}
	if a.Hash() != b.Hash() {
		t.Errorf("expected identical stacks to hash identically")
	}
	c := Stack{Elements: []Element{{Kind: TagElement, Tag: 6}, {Kind: ValueElement}}}
	if a.Hash() == c.Hash() {
		t.Errorf("expected different stacks to hash differently")
	}
}

func TestShiftProvenanceSurvivesTag(t *testing.T) {
	s := Stack{Elements: []Element{{Kind: TagElement, Tag: 7}, {Kind: ConstantElement, Constant: "4"}}}
	result := shiftProvenance(s)
	if result.Kind != TagElement || result.Tag != 7 {
		t.Errorf("expected SHL/SHR to preserve tag provenance, got %+v", result)
	}
}

func TestAndProvenanceScansInputArity(t *testing.T) {
	s := Stack{Elements: []Element{
		{Kind: TagElement, Tag: 9},
		{Kind: ValueElement},
		{Kind: ValueElement}, // top
	}}
	result := andProvenance(s, 2)
	if result.Kind != ValueElement {
		t.Errorf("expected no tag within top 2 elements, got %+v", result)
	}
	result = andProvenance(s, 3)
	if result.Kind != TagElement || result.Tag != 9 {
		t.Errorf("expected tag provenance scanning 3 elements deep, got %+v", result)
	}
}
