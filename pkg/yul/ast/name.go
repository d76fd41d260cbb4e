package ast

// Builtin enumerates the closed set of Yul built-in function names. The
// zero value, UserDefined, is the catch-all for everything else — Name
// carries the actual identifier text in that case.
type Builtin int

const (
	UserDefined Builtin = iota

	// Arithmetic
	Add
	Sub
	Mul
	Div
	Sdiv
	Mod
	Smod
	Exp
	Not
	Addmod
	Mulmod
	Signextend

	// Comparison
	Lt
	Gt
	Slt
	Sgt
	Eq
	IsZero

	// Bitwise
	And
	Or
	Xor
	Shl
	Shr
	Sar
	Byte

	// Memory / storage / calldata
	Mload
	Mstore
	Mstore8
	Sload
	Sstore
	Msize
	Mcopy
	Calldataload
	Calldatasize
	Calldatacopy
	Codesize
	Codecopy
	Extcodesize
	Extcodecopy
	Extcodehash
	Returndatasize
	Returndatacopy

	// Hashing
	Keccak256

	// Control flow / calls
	Stop
	Return
	Revert
	Invalid
	Selfdestruct
	Call
	Callcode
	Delegatecall
	Staticcall
	Create
	Create2
	Pop

	// Environment
	Address
	Balance
	Selfbalance
	Caller
	Callvalue
	Gas
	Gasprice
	Gaslimit
	Origin
	Number
	Timestamp
	Difficulty
	Prevrandao
	Coinbase
	Chainid
	Basefee

	// Logging
	Log0
	Log1
	Log2
	Log3
	Log4
)

var builtinNames = map[string]Builtin{
	"add": Add, "sub": Sub, "mul": Mul, "div": Div, "sdiv": Sdiv,
	"mod": Mod, "smod": Smod, "exp": Exp, "not": Not, "addmod": Addmod,
	"mulmod": Mulmod, "signextend": Signextend,
	"lt": Lt, "gt": Gt, "slt": Slt, "sgt": Sgt, "eq": Eq, "iszero": IsZero,
	"and": And, "or": Or, "xor": Xor, "shl": Shl, "shr": Shr, "sar": Sar, "byte": Byte,
	"mload": Mload, "mstore": Mstore, "mstore8": Mstore8, "sload": Sload, "sstore": Sstore,
	"msize": Msize, "mcopy": Mcopy,
	"calldataload": Calldataload, "calldatasize": Calldatasize, "calldatacopy": Calldatacopy,
	"codesize": Codesize, "codecopy": Codecopy,
	"extcodesize": Extcodesize, "extcodecopy": Extcodecopy, "extcodehash": Extcodehash,
	"returndatasize": Returndatasize, "returndatacopy": Returndatacopy,
	"keccak256": Keccak256,
	"stop":      Stop, "return": Return, "revert": Revert, "invalid": Invalid,
	"selfdestruct": Selfdestruct,
	"call":         Call, "callcode": Callcode, "delegatecall": Delegatecall, "staticcall": Staticcall,
	"create": Create, "create2": Create2, "pop": Pop,
	"address": Address, "balance": Balance, "selfbalance": Selfbalance,
	"caller": Caller, "callvalue": Callvalue, "gas": Gas, "gasprice": Gasprice,
	"gaslimit": Gaslimit, "origin": Origin, "number": Number, "timestamp": Timestamp,
	"difficulty": Difficulty, "prevrandao": Prevrandao, "coinbase": Coinbase,
	"chainid": Chainid, "basefee": Basefee,
	"log0": Log0, "log1": Log1, "log2": Log2, "log3": Log3, "log4": Log4,
}

var builtinText = func() map[Builtin]string {
	m := make(map[Builtin]string, len(builtinNames))
	for text, b := range builtinNames {
		m[b] = text
	}
	return m
}()

// Name identifies a function being called: either one of the closed
// built-in set, or a user-defined function referenced by Identifier.
type Name struct {
	Builtin    Builtin
	Identifier string
}

// NameFromIdentifier classifies an identifier against the built-in table,
// falling back to UserDefined.
func NameFromIdentifier(identifier string) Name {
	if b, ok := builtinNames[identifier]; ok {
		return Name{Builtin: b}
	}
	return Name{Builtin: UserDefined, Identifier: identifier}
}

// String renders the name the way it appeared in source.
func (n Name) String() string {
	if n.Builtin == UserDefined {
		return n.Identifier
	}
	if text, ok := builtinText[n.Builtin]; ok {
		return text
	}
	return "<unknown builtin>"
}

// IsUserDefined reports whether this name falls outside the built-in set.
func (n Name) IsUserDefined() bool {
	return n.Builtin == UserDefined
}
