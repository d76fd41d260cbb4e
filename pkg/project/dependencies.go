package project

import (
	"fmt"

	"github.com/zkonic/solyul/pkg/evm/assembly"
	"github.com/zkonic/solyul/pkg/solc/version"
)

// AssignDependencies runs the two preprocessing sub-passes a Project needs
// before contracts can be selected and wrapped: an AST pass that resolves
// each source's solc version from its pragma (falling back to
// defaultVersion and recording a Diagnostic when none is recoverable), and,
// for the EVM pipeline only, a dependency pass that fingerprints every
// contract's assembly and rewrites PUSH_Data references between them
// in place. Returns the resolved per-path version map for New to consult.
func (p *Project) AssignDependencies(raw *RawOutput, defaultVersion version.Version) (map[string]version.Version, error) {
	versions := p.preprocessSources(raw, defaultVersion)

	if p.Pipeline == EVM {
		if err := p.preprocessAssemblyDependencies(raw); err != nil {
			return nil, err
		}
	}

	return versions, nil
}

// preprocessSources resolves a solc version per source path from its
// pragma statement, recording a Diagnostic wherever none could be
// detected. Mirrors solc's own preprocess_ast pass, minus AST warning
// collection: this module never ingests solc's AST JSON (out of scope),
// so pragma-derived version recovery is the only diagnostic this pass can
// produce.
func (p *Project) preprocessSources(raw *RawOutput, defaultVersion version.Version) map[string]version.Version {
	versions := make(map[string]version.Version, len(raw.Sources))
	for _, path := range sortedKeys(raw.Sources) {
		source := raw.Sources[path]
		detected, err := version.Detect(source.Content)
		if err != nil {
			p.Diagnostics = append(p.Diagnostics, Diagnostic{
				Path:    path,
				Message: fmt.Sprintf("no recoverable solc version pragma, defaulting to %s: %v", defaultVersion, err),
			})
			versions[path] = defaultVersion
			continue
		}
		versions[path] = detected.Version
	}
	return versions
}

// preprocessAssemblyDependencies builds a content-hash-to-path mapping
// over every contract that has EVM assembly, then rewrites each such
// contract's PUSH_Data references against that mapping, exactly as
// PreprocessDependencyLevel does per spec.md §4.4. Mutates the Assembly
// values in raw in place, since New reads them again afterward.
func (p *Project) preprocessAssemblyDependencies(raw *RawOutput) error {
	mapping := make(assembly.HashPathMapping)
	for _, path := range sortedKeys(raw.Contracts) {
		for _, name := range sortedKeys(raw.Contracts[path]) {
			c := raw.Contracts[path][name]
			if c.Assembly == nil {
				continue
			}
			hash, err := c.Assembly.Hash()
			if err != nil {
				return fmt.Errorf("hashing assembly for %s:%s: %w", path, name, err)
			}
			mapping[hash] = path + ":" + name
		}
	}

	for _, path := range sortedKeys(raw.Contracts) {
		for _, name := range sortedKeys(raw.Contracts[path]) {
			c := raw.Contracts[path][name]
			if c.Assembly == nil {
				continue
			}
			if err := c.Assembly.PreprocessDependencyLevel(mapping); err != nil {
				return fmt.Errorf("resolving dependencies for %s:%s: %w", path, name, err)
			}
		}
	}
	return nil
}
