package instruction

import (
	"testing"

	"github.com/zkonic/solyul/pkg/solc/version"
)

func TestFixedArity(t *testing.T) {
	v := version.MustParse("0.8.20")
	cases := []struct {
		name           Name
		input, output  int
	}{
		{ADD, 2, 1},
		{POP, 1, 0},
		{JUMPI, 2, 0},
		{CALL, 7, 1},
		{STATICCALL, 6, 1},
		{Tag, 0, 0},
	}
	for _, c := range cases {
		if got := InputSize(c.name, v); got != c.input {
			t.Errorf("%s: input size = %d, want %d", c.name, got, c.input)
		}
		if got := OutputSize(c.name, v); got != c.output {
			t.Errorf("%s: output size = %d, want %d", c.name, got, c.output)
		}
	}
}

func TestPushArity(t *testing.T) {
	v := version.MustParse("0.8.20")
	for i, name := range []Name{PUSH0, PUSH1, PUSH32} {
		_ = i
		if InputSize(name, v) != 0 || OutputSize(name, v) != 1 {
			t.Errorf("%s: expected (0,1), got (%d,%d)", name, InputSize(name, v), OutputSize(name, v))
		}
	}
}

func TestDupSwapArity(t *testing.T) {
	v := version.MustParse("0.8.20")
	if InputSize(DUP1, v) != 1 || OutputSize(DUP1, v) != 2 {
		t.Errorf("DUP1: expected (1,2), got (%d,%d)", InputSize(DUP1, v), OutputSize(DUP1, v))
	}
	if InputSize(DUP16, v) != 16 || OutputSize(DUP16, v) != 17 {
		t.Errorf("DUP16: expected (16,17), got (%d,%d)", InputSize(DUP16, v), OutputSize(DUP16, v))
	}
	if InputSize(SWAP1, v) != 2 || OutputSize(SWAP1, v) != 2 {
		t.Errorf("SWAP1: expected (2,2), got (%d,%d)", InputSize(SWAP1, v), OutputSize(SWAP1, v))
	}
	if InputSize(SWAP16, v) != 17 || OutputSize(SWAP16, v) != 17 {
		t.Errorf("SWAP16: expected (17,17), got (%d,%d)", InputSize(SWAP16, v), OutputSize(SWAP16, v))
	}
}

func TestPseudoOpcodeArity(t *testing.T) {
	v := version.MustParse("0.8.20")
	for _, name := range []Name{PushTag, PushData, PushContractHash, PushContractHashSize, PushLib, PushDeployAddress} {
		if InputSize(name, v) != 0 || OutputSize(name, v) != 1 {
			t.Errorf("%s: expected (0,1), got (%d,%d)", name, InputSize(name, v), OutputSize(name, v))
		}
	}
}

func TestDupDepthAndSwapDepth(t *testing.T) {
	if DUP3.DupDepth() != 3 {
		t.Errorf("DUP3.DupDepth() = %d, want 3", DUP3.DupDepth())
	}
	if SWAP5.SwapDepth() != 5 {
		t.Errorf("SWAP5.SwapDepth() = %d, want 5", SWAP5.SwapDepth())
	}
}

func TestNameString(t *testing.T) {
	if ADD.String() != "ADD" {
		t.Errorf("ADD.String() = %q", ADD.String())
	}
	if PUSH1.String() != "PUSH1" {
		t.Errorf("PUSH1.String() = %q", PUSH1.String())
	}
	if DUP16.String() != "DUP16" {
		t.Errorf("DUP16.String() = %q", DUP16.String())
	}
	if PushTag.String() != "PUSH_Tag" {
		t.Errorf("PushTag.String() = %q", PushTag.String())
	}
}
