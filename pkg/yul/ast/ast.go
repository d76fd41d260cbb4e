// Package ast defines the Yul abstract syntax tree produced by
// pkg/yul/parser. Go has no sum types, so each closed alternative (Statement,
// Expression) is modeled as an interface with an unexported marker method and
// a fixed set of implementing structs — callers exhaustively type-switch on
// concrete type rather than on a discriminant field.
package ast

import "github.com/zkonic/solyul/pkg/yul/lexer"

// Statement is any node that may appear directly inside a Block.
type Statement interface {
	isStatement()
	Position() lexer.Position
}

// Expression is any node that produces a value: a call, a variable
// reference, or a literal.
type Expression interface {
	isExpression()
	Position() lexer.Position
}

// Object is the root of a Yul compilation unit: "object \"Name\" { code {
// ... } ... }". NestedObject holds the single immediately-nested object
// Solidity emits for runtime code; Dependencies lists the names of the
// "data" entries declared in the object body, in source order.
type Object struct {
	Pos          lexer.Position
	Name         string
	Code         *Code
	NestedObject *Object
	Dependencies []string
}

// Code is the "code { ... }" block of an Object.
type Code struct {
	Pos   lexer.Position
	Block *Block
}

// Block is a brace-delimited sequence of statements. It is itself a
// Statement so that nested blocks ("if cond { ... }") type-check uniformly.
type Block struct {
	Pos        lexer.Position
	Statements []Statement
}

func (*Block) isStatement()                 {}
func (b *Block) Position() lexer.Position   { return b.Pos }

// FunctionDefinition declares a named function. ReturnVariables is empty
// for functions that return nothing.
type FunctionDefinition struct {
	Pos             lexer.Position
	Name            string
	Parameters      []string
	ReturnVariables []string
	Body            *Block
}

func (*FunctionDefinition) isStatement()               {}
func (f *FunctionDefinition) Position() lexer.Position { return f.Pos }

// VariableDeclaration is "let x, y := f()" or "let x" (Initializer nil).
type VariableDeclaration struct {
	Pos         lexer.Position
	Bindings    []string
	Initializer Expression
}

func (*VariableDeclaration) isStatement()               {}
func (v *VariableDeclaration) Position() lexer.Position { return v.Pos }

// Assignment is "x := f()" or "x, y := f()".
type Assignment struct {
	Pos         lexer.Position
	Bindings    []string
	Initializer Expression
}

func (*Assignment) isStatement()               {}
func (a *Assignment) Position() lexer.Position { return a.Pos }

// IfConditional is "if cond { ... }". Yul has no else branch; a two-way
// choice is written as two ifs over complementary conditions.
type IfConditional struct {
	Pos       lexer.Position
	Condition Expression
	Body      *Block
}

func (*IfConditional) isStatement()               {}
func (i *IfConditional) Position() lexer.Position { return i.Pos }

// Case is one "case <literal> { ... }" arm of a Switch.
type Case struct {
	Pos     lexer.Position
	Literal *Literal
	Body    *Block
}

// Switch is "switch expr (case lit { ... })* (default { ... })?". The
// parser enforces that at least one Case or Default is present.
type Switch struct {
	Pos        lexer.Position
	Expression Expression
	Cases      []Case
	Default    *Block
}

func (*Switch) isStatement()               {}
func (s *Switch) Position() lexer.Position { return s.Pos }

// ForLoop is "for { init } cond { post } { body }". Init and Post are
// always present, even if empty.
type ForLoop struct {
	Pos       lexer.Position
	Init      *Block
	Condition Expression
	Post      *Block
	Body      *Block
}

func (*ForLoop) isStatement()               {}
func (f *ForLoop) Position() lexer.Position { return f.Pos }

// ExpressionStatement is a bare function call used for its side effects,
// e.g. "sstore(0, 1)" on its own line.
type ExpressionStatement struct {
	Pos        lexer.Position
	Expression Expression
}

func (*ExpressionStatement) isStatement()               {}
func (e *ExpressionStatement) Position() lexer.Position { return e.Pos }

// Continue is the "continue" statement, valid only inside a ForLoop body.
type Continue struct {
	Pos lexer.Position
}

func (*Continue) isStatement()               {}
func (c *Continue) Position() lexer.Position { return c.Pos }

// Break is the "break" statement, valid only inside a ForLoop body.
type Break struct {
	Pos lexer.Position
}

func (*Break) isStatement()               {}
func (b *Break) Position() lexer.Position { return b.Pos }

// Leave is the "leave" statement: returns from the enclosing function
// using whatever values its named return variables currently hold.
type Leave struct {
	Pos lexer.Position
}

func (*Leave) isStatement()               {}
func (l *Leave) Position() lexer.Position { return l.Pos }

// FunctionCall is "name(arg, arg, ...)", either a built-in or a
// user-defined function.
type FunctionCall struct {
	Pos       lexer.Position
	Name      Name
	Arguments []Expression
}

func (*FunctionCall) isExpression()             {}
func (f *FunctionCall) Position() lexer.Position { return f.Pos }

// Identifier is a bare variable reference used as an expression.
type Identifier struct {
	Pos  lexer.Position
	Name string
}

func (*Identifier) isExpression()              {}
func (i *Identifier) Position() lexer.Position { return i.Pos }

// Literal is a constant value: a decimal or hex integer, a string, or a
// boolean.
type Literal struct {
	Pos  lexer.Position
	Kind lexer.LiteralKind
	Text string
}

func (*Literal) isExpression()              {}
func (l *Literal) Position() lexer.Position { return l.Pos }
