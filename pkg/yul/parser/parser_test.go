package parser

import (
	"testing"

	"github.com/zkonic/solyul/pkg/yul/ast"
)

// TestParseEmptyNestedBlock covers scenario S1 from the spec: "{ { } }"
// parses to Block{[Block{[]}]}.
func TestParseEmptyNestedBlock(t *testing.T) {
	p := New(`{ { } }`, Options{})
	block, err := p.ParseBlock()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(block.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(block.Statements))
	}
	nested, ok := block.Statements[0].(*ast.Block)
	if !ok {
		t.Fatalf("expected nested Block, got %T", block.Statements[0])
	}
	if len(nested.Statements) != 0 {
		t.Fatalf("expected empty nested block, got %d statements", len(nested.Statements))
	}
}

// TestParseMultiAssign covers scenario S2: "{ let x, y := f() x :=
// add(x,y) }" parses to a VariableDeclaration with bindings [x,y], then an
// Assignment with bindings [x] and initializer Add(Identifier(x),
// Identifier(y)).
func TestParseMultiAssign(t *testing.T) {
	p := New(`{ let x, y := f() x := add(x, y) }`, Options{})
	block, err := p.ParseBlock()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(block.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(block.Statements))
	}

	decl, ok := block.Statements[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected VariableDeclaration, got %T", block.Statements[0])
	}
	if len(decl.Bindings) != 2 || decl.Bindings[0] != "x" || decl.Bindings[1] != "y" {
		t.Fatalf("expected bindings [x y], got %v", decl.Bindings)
	}
	call, ok := decl.Initializer.(*ast.FunctionCall)
	if !ok || !call.Name.IsUserDefined() || call.Name.Identifier != "f" {
		t.Fatalf("expected call to user-defined f, got %+v", decl.Initializer)
	}

	assign, ok := block.Statements[1].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected Assignment, got %T", block.Statements[1])
	}
	if len(assign.Bindings) != 1 || assign.Bindings[0] != "x" {
		t.Fatalf("expected bindings [x], got %v", assign.Bindings)
	}
	addCall, ok := assign.Initializer.(*ast.FunctionCall)
	if !ok || addCall.Name.Builtin != ast.Add {
		t.Fatalf("expected Add call, got %+v", assign.Initializer)
	}
	if len(addCall.Arguments) != 2 {
		t.Fatalf("expected 2 arguments to add, got %d", len(addCall.Arguments))
	}
}

func TestParseSwitchRequiresCaseOrDefault(t *testing.T) {
	p := New(`{ switch x }`, Options{})
	_, err := p.ParseBlock()
	if err == nil {
		t.Fatal("expected a semantic error for a switch with no arms")
	}
	if _, ok := err.(*SemanticError); !ok {
		t.Fatalf("expected a *SemanticError, got %T: %v", err, err)
	}
}

func TestParseSwitchWithCasesAndDefault(t *testing.T) {
	p := New(`{ switch x
		case 0 { y := 1 }
		case 1 { y := 2 }
		default { y := 3 }
	}`, Options{})
	block, err := p.ParseBlock()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sw, ok := block.Statements[0].(*ast.Switch)
	if !ok {
		t.Fatalf("expected Switch, got %T", block.Statements[0])
	}
	if len(sw.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(sw.Cases))
	}
	if sw.Default == nil {
		t.Fatal("expected a default block")
	}
}

func TestParseFunctionDefinitionWithReturns(t *testing.T) {
	p := New(`{ function add(a, b) -> sum { sum := add(a, b) } }`, Options{})
	block, err := p.ParseBlock()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def, ok := block.Statements[0].(*ast.FunctionDefinition)
	if !ok {
		t.Fatalf("expected FunctionDefinition, got %T", block.Statements[0])
	}
	if def.Name != "add" {
		t.Errorf("expected name add, got %s", def.Name)
	}
	if len(def.Parameters) != 2 || len(def.ReturnVariables) != 1 {
		t.Fatalf("expected 2 params and 1 return, got %v / %v", def.Parameters, def.ReturnVariables)
	}
}

func TestParseForLoop(t *testing.T) {
	p := New(`{ for { let i := 0 } lt(i, 10) { i := add(i, 1) } { mstore(i, 0) } }`, Options{})
	block, err := p.ParseBlock()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loop, ok := block.Statements[0].(*ast.ForLoop)
	if !ok {
		t.Fatalf("expected ForLoop, got %T", block.Statements[0])
	}
	if len(loop.Init.Statements) != 1 || len(loop.Post.Statements) != 1 || len(loop.Body.Statements) != 1 {
		t.Fatalf("unexpected loop shape: %+v", loop)
	}
	cond, ok := loop.Condition.(*ast.FunctionCall)
	if !ok || cond.Name.Builtin != ast.Lt {
		t.Fatalf("expected Lt condition, got %+v", loop.Condition)
	}
}

func TestParseFunctionCallTrailingComma(t *testing.T) {
	p := New(`{ f(1, 2,) }`, Options{})
	block, err := p.ParseBlock()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stmt, ok := block.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected ExpressionStatement, got %T", block.Statements[0])
	}
	call, ok := stmt.Expression.(*ast.FunctionCall)
	if !ok {
		t.Fatalf("expected FunctionCall, got %T", stmt.Expression)
	}
	if len(call.Arguments) != 2 {
		t.Fatalf("expected 2 arguments despite trailing comma, got %d", len(call.Arguments))
	}
}

func TestParseObject(t *testing.T) {
	p := New(`object "Contract" {
		code { mstore(0, 0) }
		object "Contract_deployed" {
			code { return(0, 0) }
		}
	}`, Options{})
	obj, err := p.ParseObject()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj.Name != "Contract" {
		t.Errorf("expected name Contract, got %s", obj.Name)
	}
	if obj.NestedObject == nil || obj.NestedObject.Name != "Contract_deployed" {
		t.Fatalf("expected a nested deployed object, got %+v", obj.NestedObject)
	}
}

func TestParseUnexpectedTokenIsSyntaxError(t *testing.T) {
	p := New(`{ } }`, Options{})
	if _, err := p.ParseBlock(); err != nil {
		t.Fatalf("unexpected error parsing first block: %v", err)
	}
	// A second, unmatched "}" read as a fresh block should fail.
	_, err := p.ParseBlock()
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
}
