// Package assembly models the raw per-contract EVM assembly that solc's
// legacy codegen emits: a deploy code segment plus a nested runtime
// segment at data["0"], both over the untyped instruction wire format
// spec.md §6 describes. It assigns dense labels to anonymous tags and
// resolves inter-contract PUSH_Data references (C4).
package assembly

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/zkonic/solyul/pkg/evm/instruction"
)

// Instruction is one entry of an Assembly's Code list. Value is the
// immediate (tag number, push literal, data key, ...); HasValue
// distinguishes "no immediate" from an explicit empty string.
type Instruction struct {
	Name     instruction.Name
	Value    string
	HasValue bool
	Begin    int
	End      int
	Source   string
}

// wireInstruction mirrors the untyped JSON shape of one Instruction.
type wireInstruction struct {
	Name   string  `json:"name"`
	Value  *string `json:"value,omitempty"`
	Begin  *int    `json:"begin,omitempty"`
	End    *int    `json:"end,omitempty"`
	Source *string `json:"source,omitempty"`
}

var nameFromWire = func() map[string]instruction.Name {
	m := make(map[string]instruction.Name)
	for n := instruction.STOP; n <= instruction.PushDeployAddress; n++ {
		m[n.String()] = n
	}
	m["tag"] = instruction.Tag
	return m
}()

// UnmarshalJSON accepts the wire shape {name, value?, begin?, end?, source?}.
func (i *Instruction) UnmarshalJSON(data []byte) error {
	var w wireInstruction
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	name, ok := nameFromWire[w.Name]
	if !ok {
		return fmt.Errorf("unknown instruction name %q in assembly wire format", w.Name)
	}
	*i = Instruction{Name: name, Begin: derefInt(w.Begin), End: derefInt(w.End), Source: derefStr(w.Source)}
	if w.Value != nil {
		i.Value = *w.Value
		i.HasValue = true
	}
	return nil
}

// MarshalJSON renders the wire shape back out.
func (i Instruction) MarshalJSON() ([]byte, error) {
	w := wireInstruction{Name: i.Name.String()}
	if i.HasValue {
		w.Value = &i.Value
	}
	if i.Begin != 0 {
		w.Begin = &i.Begin
	}
	if i.End != 0 {
		w.End = &i.End
	}
	if i.Source != "" {
		w.Source = &i.Source
	}
	return json.Marshal(w)
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// DataEntry is one value of an Assembly's Data map: either a nested
// runtime Assembly (key "0") or a literal hex-encoded data blob (any
// other key), per spec.md §6's wire format. Exactly one field is set.
type DataEntry struct {
	Nested *Assembly
	Hex    string
}

// UnmarshalJSON disambiguates a nested assembly object from a literal hex
// string by trying a string first.
func (d *DataEntry) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err == nil {
		d.Hex = hex
		return nil
	}
	var nested Assembly
	if err := json.Unmarshal(data, &nested); err != nil {
		return fmt.Errorf("data entry is neither a hex string nor an assembly object: %w", err)
	}
	d.Nested = &nested
	return nil
}

func (d DataEntry) MarshalJSON() ([]byte, error) {
	if d.Nested != nil {
		return json.Marshal(d.Nested)
	}
	return json.Marshal(d.Hex)
}

// Assembly is one code segment: its flat instruction list plus any
// nested/literal data entries (runtime code, immutable constant pools).
type Assembly struct {
	Code []Instruction          `json:"code"`
	Data map[string]DataEntry   `json:"data,omitempty"`
}

// Parse decodes solc's raw assembly JSON for one contract.
func Parse(raw []byte) (*Assembly, error) {
	var a Assembly
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("parsing assembly: %w", err)
	}
	return &a, nil
}

// Runtime returns the nested runtime-code assembly at data["0"], if any.
func (a *Assembly) Runtime() *Assembly {
	if a == nil || a.Data == nil {
		return nil
	}
	if entry, ok := a.Data["0"]; ok {
		return entry.Nested
	}
	return nil
}

// Hash computes the keccak256 fingerprint of this assembly's instruction
// stream, used as the dependency key in HashPathMapping. The hash is
// taken over the JSON wire encoding so that it matches the hash solc's
// own dependency bookkeeping would have used for the same bytecode.
func (a *Assembly) Hash() (common.Hash, error) {
	encoded, err := json.Marshal(a)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(encoded), nil
}

// AssignLabels assigns every Tag pseudo-instruction in a.Code a dense,
// zero-based integer label unique within this code segment, and rewrites
// every PUSH_Tag reference in a.Code to point at the corresponding dense
// label. Labels are assigned in order of first appearance (spec.md §4.4).
// Does not recurse into a.Data — deploy and runtime segments each get
// their own independent label space, per PreprocessDependencyLevel's
// deploy-then-runtime ordering.
func (a *Assembly) AssignLabels() error {
	labels := make(map[string]int)
	next := 0
	for i := range a.Code {
		instr := &a.Code[i]
		if instr.Name != instruction.Tag {
			continue
		}
		if _, ok := labels[instr.Value]; !ok {
			labels[instr.Value] = next
			next++
		}
	}
	for i := range a.Code {
		instr := &a.Code[i]
		if instr.Name != instruction.PushTag {
			continue
		}
		label, ok := labels[instr.Value]
		if !ok {
			return fmt.Errorf("PUSH_Tag references undeclared tag %q", instr.Value)
		}
		instr.Value = strconv.Itoa(label)
	}
	for i := range a.Code {
		instr := &a.Code[i]
		if instr.Name == instruction.Tag {
			instr.Value = strconv.Itoa(labels[instr.Value])
		}
	}
	return nil
}

// HashPathMapping maps a dependency's content hash to the "path:name"
// identifier other contracts' PUSH_Data immediates should be rewritten
// to once that dependency's own assembly is known.
type HashPathMapping map[common.Hash]string

// PreprocessDependencyLevel rewrites PUSH_Data references first in the
// deploy segment (a.Code), then in the runtime segment (data["0"]),
// exactly as spec.md §4.4 specifies. Unresolved references — immediates
// that don't match any key in mapping — are left verbatim.
func (a *Assembly) PreprocessDependencyLevel(mapping HashPathMapping) error {
	if err := a.AssignLabels(); err != nil {
		return err
	}
	rewritePushData(a.Code, mapping)

	runtime := a.Runtime()
	if runtime == nil {
		return nil
	}
	if err := runtime.AssignLabels(); err != nil {
		return err
	}
	rewritePushData(runtime.Code, mapping)
	return nil
}

func rewritePushData(code []Instruction, mapping HashPathMapping) {
	for i := range code {
		instr := &code[i]
		if instr.Name != instruction.PushData {
			continue
		}
		if len(instr.Value) != 66 {
			continue
		}
		hash := common.HexToHash(instr.Value)
		if path, ok := mapping[hash]; ok {
			instr.Value = path
		}
	}
}
