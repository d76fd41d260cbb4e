// Package project assembles per-contract Yul or EVM assembly sources,
// already produced by solc, into the set of emittable units this module's
// pipeline drives: one Project per solc invocation, holding every contract
// that pipeline selection did not skip, plus the diagnostics collected
// while resolving per-contract compiler versions and inter-contract
// dependencies (C7).
package project

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/log"

	"github.com/zkonic/solyul/pkg/evm/assembly"
	"github.com/zkonic/solyul/pkg/solc/version"
	"github.com/zkonic/solyul/pkg/yul/ast"
	"github.com/zkonic/solyul/pkg/yul/parser"
)

// Pipeline selects which of a contract's two solc outputs (optimized Yul
// IR, or legacy EVM assembly) the project is built from. A given Project
// is always single-pipeline: solc never emits both in a shape this module
// can mix.
type Pipeline int

const (
	Yul Pipeline = iota
	EVM
)

func (p Pipeline) String() string {
	if p == EVM {
		return "evm"
	}
	return "yul"
}

// ContractSource holds exactly one of a contract's two possible lowered
// forms, selected by the enclosing Project's Pipeline.
type ContractSource struct {
	YulObject *ast.Object
	Assembly  *assembly.Assembly
}

// Contract is one "path:name" compilation unit that survived pipeline
// selection, along with the solc version it should be lowered under.
type Contract struct {
	FullPath    string
	SolcVersion version.Version
	Source      ContractSource
	ABI         []byte
}

// Diagnostic is a non-fatal warning collected while assembling a Project,
// tagged with the source path it came from.
type Diagnostic struct {
	Path    string
	Message string
}

// Project is every contract a single solc invocation produced, already
// filtered down to the ones the selected Pipeline can lower, with
// dependencies between EVM contracts resolved in place.
type Project struct {
	Pipeline    Pipeline
	Contracts   map[string]*Contract
	Libraries   map[string]map[string]string
	Diagnostics []Diagnostic
}

// RawContract is the subset of one solc standard-json contract output this
// package needs to drive pipeline selection: the optimized Yul IR (if the
// Yul pipeline ran) and the EVM legacy assembly (if the EVM pipeline ran).
// Ingesting the rest of solc's standard-json schema is out of scope; a
// caller that already parsed that JSON elsewhere populates this directly.
type RawContract struct {
	IROptimized string
	Assembly    *assembly.Assembly
	ABI         []byte
}

// RawSource is one input file's text, used only to recover its pragma
// solidity version during the AST preprocess pass.
type RawSource struct {
	Content string
}

// RawOutput is the portion of a solc standard-json compilation result
// this package consumes: contracts keyed by source path then contract
// name, and the original sources keyed by path.
type RawOutput struct {
	Contracts map[string]map[string]RawContract
	Sources   map[string]RawSource
}

var logger = log.New("module", "project")

// New builds a Project from raw solc output: it resolves per-source solc
// versions and, for the EVM pipeline, inter-contract dependencies, then
// selects and wraps every contract the chosen pipeline can lower,
// skipping the rest (spec.md §4.7).
func New(raw *RawOutput, libraries map[string]map[string]string, pipeline Pipeline, defaultVersion version.Version) (*Project, error) {
	p := &Project{
		Pipeline:  pipeline,
		Contracts: make(map[string]*Contract),
		Libraries: libraries,
	}

	versions, err := p.AssignDependencies(raw, defaultVersion)
	if err != nil {
		return nil, err
	}

	for _, path := range sortedKeys(raw.Contracts) {
		contracts := raw.Contracts[path]
		for _, name := range sortedKeys(contracts) {
			rawContract := contracts[name]
			fullPath := path + ":" + name

			source, ok, err := p.selectSource(fullPath, rawContract)
			if err != nil {
				return nil, err
			}
			if !ok {
				logger.Debug("skipping contract without required pipeline source", "contract", fullPath, "pipeline", pipeline)
				continue
			}

			p.Contracts[fullPath] = &Contract{
				FullPath:    fullPath,
				SolcVersion: versions[path],
				Source:      source,
				ABI:         rawContract.ABI,
			}
		}
	}

	logger.Info("assembled project", "pipeline", pipeline, "contracts", len(p.Contracts))
	return p, nil
}

// selectSource applies the per-pipeline skip rule: the Yul pipeline
// requires a non-empty optimized IR string; the EVM pipeline requires an
// assembly object.
func (p *Project) selectSource(fullPath string, raw RawContract) (ContractSource, bool, error) {
	switch p.Pipeline {
	case Yul:
		if raw.IROptimized == "" {
			return ContractSource{}, false, nil
		}
		obj, err := parser.New(raw.IROptimized, parser.Options{}).ParseObject()
		if err != nil {
			return ContractSource{}, false, fmt.Errorf("parsing optimized IR for %s: %w", fullPath, err)
		}
		return ContractSource{YulObject: obj}, true, nil
	case EVM:
		if raw.Assembly == nil {
			return ContractSource{}, false, nil
		}
		return ContractSource{Assembly: raw.Assembly}, true, nil
	default:
		return ContractSource{}, false, fmt.Errorf("unknown pipeline %d", p.Pipeline)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
