package assembly

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestParseAndAssignLabels(t *testing.T) {
	raw := []byte(`{
		"code": [
			{"name": "PUSH_Tag", "value": "1"},
			{"name": "JUMP"},
			{"name": "tag", "value": "1"},
			{"name": "STOP"}
		],
		"data": {
			"0": {
				"code": [
					{"name": "PUSH1", "value": "0x00"},
					{"name": "STOP"}
				]
			}
		}
	}`)

	a, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Code) != 4 {
		t.Fatalf("expected 4 instructions, got %d", len(a.Code))
	}

	if err := a.AssignLabels(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Code[0].Value != "0" {
		t.Errorf("expected PUSH_Tag rewritten to dense label 0, got %q", a.Code[0].Value)
	}
	if a.Code[2].Value != "0" {
		t.Errorf("expected tag definition rewritten to dense label 0, got %q", a.Code[2].Value)
	}

	runtime := a.Runtime()
	if runtime == nil {
		t.Fatal("expected a runtime segment at data[\"0\"]")
	}
	if len(runtime.Code) != 2 {
		t.Fatalf("expected 2 runtime instructions, got %d", len(runtime.Code))
	}
}

func TestAssignLabelsUndeclaredTag(t *testing.T) {
	raw := []byte(`{"code": [{"name": "PUSH_Tag", "value": "99"}, {"name": "JUMP"}]}`)
	a, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.AssignLabels(); err == nil {
		t.Fatal("expected an error for an undeclared tag reference")
	}
}

// TestDependencyRewrite covers scenario S6: given contract A's assembly
// hash H, a PUSH_Data instruction in contract B carrying H is rewritten
// to "path_A:A" by PreprocessDependencyLevel.
func TestDependencyRewrite(t *testing.T) {
	depHash := common.HexToHash("0x" + strings.Repeat("11", 32))

	raw := []byte(`{
		"code": [
			{"name": "PUSH_Data", "value": "` + depHash.Hex() + `"},
			{"name": "STOP"}
		]
	}`)
	b, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mapping := HashPathMapping{depHash: "path_A:A"}
	if err := b.PreprocessDependencyLevel(mapping); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Code[0].Value != "path_A:A" {
		t.Errorf("expected PUSH_Data rewritten to path_A:A, got %q", b.Code[0].Value)
	}
}

func TestDependencyRewriteLeavesUnresolvedVerbatim(t *testing.T) {
	raw := []byte(`{"code": [{"name": "PUSH_Data", "value": "0xdeadbeef"}]}`)
	a, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.PreprocessDependencyLevel(HashPathMapping{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Code[0].Value != "0xdeadbeef" {
		t.Errorf("expected unresolved PUSH_Data left verbatim, got %q", a.Code[0].Value)
	}
}

func TestHashIsDeterministic(t *testing.T) {
	raw := []byte(`{"code": [{"name": "STOP"}]}`)
	a1, _ := Parse(raw)
	a2, _ := Parse(raw)
	h1, err := a1.Hash()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := a2.Hash()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 != h2 {
		t.Errorf("expected identical assemblies to hash identically, got %s != %s", h1, h2)
	}
}
