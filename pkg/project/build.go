package project

import "github.com/ethereum/go-ethereum/common"

// DeployBuild is a contract's deploy-segment emission result: the bytes a
// concrete code generator produced, their content hash, and the other
// contracts this segment references (e.g. via CREATE), tracked so a
// downstream linker can resolve them. Emission itself is out of scope
// (the Sink stays abstract, spec.md's Non-goals); this shape exists so a
// caller driving a real Sink implementation has somewhere to put the
// result per contract.
type DeployBuild struct {
	Bytecode            []byte
	Hash                common.Hash
	FactoryDependencies []string
}

// RuntimeBuild is the matching result for a contract's runtime segment.
type RuntimeBuild struct {
	Bytecode            []byte
	Hash                common.Hash
	FactoryDependencies []string
}

// ContractBuild pairs a contract's deploy and runtime segment results.
type ContractBuild struct {
	DeployBuild  DeployBuild
	RuntimeBuild RuntimeBuild
}

// Build is the output of compiling every contract in a Project, keyed by
// full path the same way Project.Contracts is.
type Build struct {
	Contracts map[string]ContractBuild
}

// NewBuild returns an empty Build ready to be populated one contract at a
// time as a caller drives emission.
func NewBuild() *Build {
	return &Build{Contracts: make(map[string]ContractBuild)}
}
