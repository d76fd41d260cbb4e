// Package emit drives a sink.Sink from either a Yul AST or an
// Ethereal-IR function, per spec.md §4.6. YulEmitter walks
// pkg/yul/ast; EthIREmitter (eth_ir.go) walks pkg/evm/etherealir.
package emit

import (
	"fmt"
	"math/big"

	"github.com/zkonic/solyul/pkg/sink"
	"github.com/zkonic/solyul/pkg/yul/ast"
	"github.com/zkonic/solyul/pkg/yul/lexer"
)

// YulEmitter lowers a parsed Yul object into sink calls. Statements map
// close to one-to-one onto the sink's capability set; FunctionDefinition
// siblings inside a Block are declared before any other statement in
// that block is emitted, so forward references within the same block
// resolve without a separate pre-pass over the whole object.
type YulEmitter struct {
	sink   sink.Sink
	scopes []map[string]sink.PointerID

	// loopStack holds the active loop nest, innermost last; Continue and
	// Break target the top entry's postBlock/joinBlock respectively.
	loopStack []loopContext

	// returnBlock and returnVars describe the enclosing function's
	// epilogue: Leave branches there, mirroring an explicit "return" edge
	// rather than emitting build_return from arbitrary nested blocks; the
	// return block itself loads the first named return variable.
	returnBlock sink.BlockID
	hasReturn   bool
	returnVars  []string

	// heapBase is a lazily-allocated pointer standing in for the EVM
	// linear heap; mload/mstore translate to a GEP off it plus a
	// load/store, since the sink has no single-word memory-read/write
	// primitive of its own (only the block-oriented copy/move/set
	// intrinsics, which address content, not single-slot access).
	heapBase sink.PointerID
}

type loopContext struct {
	postBlock sink.BlockID
	joinBlock sink.BlockID
}

func NewYulEmitter(s sink.Sink) *YulEmitter {
	return &YulEmitter{sink: s}
}

// EmitObject declares the object's code as a function named after the
// object, then recurses into any nested object (the runtime code
// Solidity nests inside the deploy object).
func (e *YulEmitter) EmitObject(obj *ast.Object) error {
	if obj.Code != nil {
		if err := e.emitTopLevel(obj.Name, obj.Code.Block); err != nil {
			return fmt.Errorf("object %q: %w", obj.Name, err)
		}
	}
	if obj.NestedObject != nil {
		if err := e.EmitObject(obj.NestedObject); err != nil {
			return err
		}
	}
	return nil
}

func (e *YulEmitter) emitTopLevel(name string, body *ast.Block) error {
	if err := e.sink.AddFunction(name, nil, sink.Type{Kind: sink.VoidType}, sink.PrivateLinkage, sink.FunctionMetadata{}); err != nil {
		return err
	}
	entry := e.sink.AppendBasicBlock("entry")
	e.sink.SetBasicBlock(entry)
	e.returnBlock = e.sink.AppendBasicBlock(name + ".return")
	e.hasReturn = true
	e.returnVars = nil

	e.pushScope()
	defer e.popScope()

	if err := e.emitBlock(body); err != nil {
		return err
	}

	e.sink.SetBasicBlock(e.returnBlock)
	e.sink.BuildReturn(nil)
	return nil
}

func (e *YulEmitter) pushScope() {
	e.scopes = append(e.scopes, make(map[string]sink.PointerID))
}

func (e *YulEmitter) popScope() {
	e.scopes = e.scopes[:len(e.scopes)-1]
}

func (e *YulEmitter) declare(name string) sink.PointerID {
	ptr := e.sink.BuildAlloca(sink.Type{Kind: sink.WordType}, name)
	e.scopes[len(e.scopes)-1][name] = ptr
	return ptr
}

func (e *YulEmitter) lookup(name string) (sink.PointerID, error) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if ptr, ok := e.scopes[i][name]; ok {
			return ptr, nil
		}
	}
	return 0, fmt.Errorf("undeclared variable %q", name)
}

// emitBlock implements spec.md §4.6's Block rule: declare every direct
// FunctionDefinition child first (as an empty shell — a forward
// reference from an earlier sibling function resolves against the name
// alone, its body is emitted along with everything else in source
// order), then emit every statement, function definitions included, in
// source order, stopping after a continue, break or leave.
func (e *YulEmitter) emitBlock(block *ast.Block) error {
	e.pushScope()
	defer e.popScope()

	for _, stmt := range block.Statements {
		if fn, ok := stmt.(*ast.FunctionDefinition); ok {
			if err := e.sink.AddFunction(fn.Name, paramTypes(fn.Parameters), returnType(fn.ReturnVariables), sink.PrivateLinkage, sink.FunctionMetadata{}); err != nil {
				return err
			}
		}
	}

	for _, stmt := range block.Statements {
		if err := e.emitStatement(stmt); err != nil {
			return err
		}
		switch stmt.(type) {
		case *ast.Continue, *ast.Break, *ast.Leave:
			// The branch just emitted ends the basic block; the rest of
			// this block is unreachable and is not emitted.
			return nil
		}
	}
	return nil
}

func paramTypes(names []string) []sink.Type {
	if len(names) == 0 {
		return nil
	}
	types := make([]sink.Type, len(names))
	for i := range types {
		types[i] = sink.Type{Kind: sink.WordType}
	}
	return types
}

func returnType(names []string) sink.Type {
	if len(names) == 0 {
		return sink.Type{Kind: sink.VoidType}
	}
	return sink.Type{Kind: sink.WordType}
}

func (e *YulEmitter) emitStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Block:
		return e.emitBlock(s)

	case *ast.FunctionDefinition:
		return e.emitFunctionBody(s)

	case *ast.VariableDeclaration:
		var init []sink.ValueID
		var err error
		if s.Initializer != nil {
			init, err = e.emitMultiValue(s.Initializer, len(s.Bindings))
			if err != nil {
				return err
			}
		}
		for i, name := range s.Bindings {
			ptr := e.declare(name)
			if init != nil {
				e.sink.BuildStore(ptr, init[i])
			}
		}
		return nil

	case *ast.Assignment:
		values, err := e.emitMultiValue(s.Initializer, len(s.Bindings))
		if err != nil {
			return err
		}
		for i, name := range s.Bindings {
			ptr, err := e.lookup(name)
			if err != nil {
				return err
			}
			e.sink.BuildStore(ptr, values[i])
		}
		return nil

	case *ast.IfConditional:
		cond, err := e.emitExpression(s.Condition)
		if err != nil {
			return err
		}
		thenBlock := e.sink.AppendBasicBlock("if.then")
		joinBlock := e.sink.AppendBasicBlock("if.end")
		e.sink.BuildConditionalBranch(cond, thenBlock, joinBlock)
		e.sink.SetBasicBlock(thenBlock)
		if err := e.emitBlock(s.Body); err != nil {
			return err
		}
		e.sink.BuildUnconditionalBranch(joinBlock)
		e.sink.SetBasicBlock(joinBlock)
		return nil

	case *ast.Switch:
		return e.emitSwitch(s)

	case *ast.ForLoop:
		return e.emitForLoop(s)

	case *ast.ExpressionStatement:
		_, err := e.emitExpression(s.Expression)
		return err

	case *ast.Continue:
		if len(e.loopStack) == 0 {
			return fmt.Errorf("continue outside loop")
		}
		e.sink.BuildUnconditionalBranch(e.loopStack[len(e.loopStack)-1].postBlock)
		return nil

	case *ast.Break:
		if len(e.loopStack) == 0 {
			return fmt.Errorf("break outside loop")
		}
		e.sink.BuildUnconditionalBranch(e.loopStack[len(e.loopStack)-1].joinBlock)
		return nil

	case *ast.Leave:
		e.sink.BuildUnconditionalBranch(e.returnBlock)
		return nil

	default:
		return fmt.Errorf("unhandled statement type %T", stmt)
	}
}

// emitSwitch implements spec.md §4.6's Switch rule: no-cases emits only
// the default block (if any); otherwise every case body branches to a
// shared join block, the default body is emitted or aliased to the join,
// and a multi-way branch on the scrutinee dispatches to the case blocks
// by their literal constants.
func (e *YulEmitter) emitSwitch(s *ast.Switch) error {
	scrutinee, err := e.emitExpression(s.Expression)
	if err != nil {
		return err
	}

	if len(s.Cases) == 0 {
		if s.Default != nil {
			return e.emitBlock(s.Default)
		}
		return nil
	}

	joinBlock := e.sink.AppendBasicBlock("switch.end")
	cases := make(map[*ast.Literal]sink.BlockID, len(s.Cases))
	caseOrder := make([]*ast.Literal, 0, len(s.Cases))

	for i := range s.Cases {
		c := &s.Cases[i]
		caseBlock := e.sink.AppendBasicBlock("switch.case")
		cases[c.Literal] = caseBlock
		caseOrder = append(caseOrder, c.Literal)
		e.sink.SetBasicBlock(caseBlock)
		if err := e.emitBlock(c.Body); err != nil {
			return err
		}
		e.sink.BuildUnconditionalBranch(joinBlock)
	}

	defaultBlock := joinBlock
	if s.Default != nil {
		defaultBlock = e.sink.AppendBasicBlock("switch.default")
		e.sink.SetBasicBlock(defaultBlock)
		if err := e.emitBlock(s.Default); err != nil {
			return err
		}
		e.sink.BuildUnconditionalBranch(joinBlock)
	}

	sinkCases := make(map[*big.Int]sink.BlockID, len(caseOrder))
	for _, lit := range caseOrder {
		n, err := literalToInt(lit)
		if err != nil {
			return err
		}
		sinkCases[n] = cases[lit]
	}
	e.sink.BuildSwitch(scrutinee, defaultBlock, sinkCases)

	e.sink.SetBasicBlock(joinBlock)
	return nil
}

// emitForLoop lowers "for { init } cond { post } { body }" into four
// blocks: init runs once in the current block, a dedicated condition
// block re-evaluates cond on every iteration (including after post), the
// body block holds the loop body, and the post block runs the post
// statements before branching back to the condition check.
func (e *YulEmitter) emitForLoop(f *ast.ForLoop) error {
	e.pushScope()
	defer e.popScope()

	// Init's statements run directly in the loop scope, not in a nested
	// block scope, so its declarations stay visible to the condition,
	// post and body.
	for _, stmt := range f.Init.Statements {
		if err := e.emitStatement(stmt); err != nil {
			return err
		}
	}

	condBlock := e.sink.AppendBasicBlock("for.cond")
	bodyBlock := e.sink.AppendBasicBlock("for.body")
	postBlock := e.sink.AppendBasicBlock("for.post")
	joinBlock := e.sink.AppendBasicBlock("for.end")

	e.sink.BuildUnconditionalBranch(condBlock)
	e.sink.SetBasicBlock(condBlock)
	cond, err := e.emitExpression(f.Condition)
	if err != nil {
		return err
	}
	e.sink.BuildConditionalBranch(cond, bodyBlock, joinBlock)

	e.sink.SetBasicBlock(bodyBlock)
	e.loopStack = append(e.loopStack, loopContext{postBlock: postBlock, joinBlock: joinBlock})
	err = e.emitBlock(f.Body)
	e.loopStack = e.loopStack[:len(e.loopStack)-1]
	if err != nil {
		return err
	}
	e.sink.BuildUnconditionalBranch(postBlock)

	e.sink.SetBasicBlock(postBlock)
	if err := e.emitBlock(f.Post); err != nil {
		return err
	}
	e.sink.BuildUnconditionalBranch(condBlock)

	e.sink.SetBasicBlock(joinBlock)
	return nil
}

// emitFunctionBody emits a nested FunctionDefinition's own entry/return
// blocks and parameter bindings, saving and restoring the enclosing
// function's return context around the nested emission — the only
// semantic content carried by the teacher-lineage "clone current
// function state" pattern this repo otherwise does not replicate.
func (e *YulEmitter) emitFunctionBody(fn *ast.FunctionDefinition) error {
	savedReturnBlock, savedHasReturn, savedReturnVars := e.returnBlock, e.hasReturn, e.returnVars
	savedLoopStack := e.loopStack
	e.loopStack = nil
	defer func() {
		e.returnBlock, e.hasReturn, e.returnVars = savedReturnBlock, savedHasReturn, savedReturnVars
		e.loopStack = savedLoopStack
	}()

	entry := e.sink.AppendBasicBlock(fn.Name + ".entry")
	e.sink.SetBasicBlock(entry)
	e.returnBlock = e.sink.AppendBasicBlock(fn.Name + ".return")
	e.hasReturn = true
	e.returnVars = fn.ReturnVariables

	e.pushScope()
	for _, p := range fn.Parameters {
		e.declare(p)
	}
	for _, r := range fn.ReturnVariables {
		e.declare(r)
	}
	if err := e.emitBlock(fn.Body); err != nil {
		e.popScope()
		return err
	}
	e.sink.BuildUnconditionalBranch(e.returnBlock)

	e.sink.SetBasicBlock(e.returnBlock)
	if len(fn.ReturnVariables) == 0 {
		e.sink.BuildReturn(nil)
	} else {
		ptr, err := e.lookup(fn.ReturnVariables[0])
		if err != nil {
			e.popScope()
			return err
		}
		v := e.sink.BuildLoad(ptr, fn.ReturnVariables[0]+".ret")
		e.sink.BuildReturn(&v)
	}
	e.popScope()
	return nil
}

// emitMultiValue evaluates expr expecting it to produce want values: a
// user-defined function call may return more than one value (Yul's
// multi-assignment), any other expression produces exactly one. For a
// multi-value call, the call's result is stored into a temporary
// aggregate and each of the want fields is loaded back out in order.
func (e *YulEmitter) emitMultiValue(expr ast.Expression, want int) ([]sink.ValueID, error) {
	call, ok := expr.(*ast.FunctionCall)
	if ok && call.Name.IsUserDefined() && want > 1 {
		args, err := e.emitArguments(call.Arguments)
		if err != nil {
			return nil, err
		}
		results := e.sink.BuildCall(call.Name.String(), args)
		if len(results) == 0 {
			return nil, fmt.Errorf("call to %s produced no value for %d bindings", call.Name, want)
		}
		word := sink.Type{Kind: sink.WordType}
		tuple := e.sink.BuildAlloca(sink.Type{Kind: sink.ArrayType, Length: want, Element: &word}, "tuple")
		e.sink.BuildStore(tuple, results[0])
		values := make([]sink.ValueID, want)
		for i := range values {
			index := e.sink.ConstInt(word, big.NewInt(int64(i)))
			values[i] = e.sink.BuildLoad(e.sink.BuildGEP(tuple, []sink.ValueID{index}, ""), "")
		}
		return values, nil
	}
	v, err := e.emitExpression(expr)
	if err != nil {
		return nil, err
	}
	return []sink.ValueID{v}, nil
}

func (e *YulEmitter) emitArguments(args []ast.Expression) ([]sink.ValueID, error) {
	values := make([]sink.ValueID, len(args))
	for i, a := range args {
		v, err := e.emitExpression(a)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func literalToInt(lit *ast.Literal) (*big.Int, error) {
	n := new(big.Int)
	switch lit.Kind {
	case lexer.DecimalInteger:
		if _, ok := n.SetString(lit.Text, 10); !ok {
			return nil, fmt.Errorf("invalid decimal literal %q", lit.Text)
		}
	case lexer.HexInteger:
		if _, ok := n.SetString(lit.Text, 0); !ok {
			return nil, fmt.Errorf("invalid hex literal %q", lit.Text)
		}
	case lexer.BooleanLiteral:
		if lit.Text == "true" {
			n.SetInt64(1)
		}
	default:
		return nil, fmt.Errorf("literal kind %v is not an integer constant", lit.Kind)
	}
	return n, nil
}

func (e *YulEmitter) emitExpression(expr ast.Expression) (sink.ValueID, error) {
	switch x := expr.(type) {
	case *ast.Identifier:
		ptr, err := e.lookup(x.Name)
		if err != nil {
			return 0, err
		}
		return e.sink.BuildLoad(ptr, x.Name), nil

	case *ast.Literal:
		n, err := literalToInt(x)
		if err != nil {
			return 0, err
		}
		return e.sink.ConstInt(sink.Type{Kind: sink.WordType}, n), nil

	case *ast.FunctionCall:
		return e.emitCall(x)

	default:
		return 0, fmt.Errorf("unhandled expression type %T", expr)
	}
}

// emitCall lowers a single-valued call: a built-in maps to exactly one
// sink capability, a user-defined call takes its first return value
// (callers needing more use emitMultiValue instead).
func (e *YulEmitter) emitCall(call *ast.FunctionCall) (sink.ValueID, error) {
	if call.Name.IsUserDefined() {
		args, err := e.emitArguments(call.Arguments)
		if err != nil {
			return 0, err
		}
		results := e.sink.BuildCall(call.Name.String(), args)
		if len(results) == 0 {
			return 0, nil
		}
		return results[0], nil
	}

	args, err := e.emitArguments(call.Arguments)
	if err != nil {
		return 0, err
	}
	return e.emitBuiltin(call.Name.Builtin, args)
}

func (e *YulEmitter) emitBuiltin(b ast.Builtin, a []sink.ValueID) (sink.ValueID, error) {
	bin := func(f func(lhs, rhs sink.ValueID, name string) sink.ValueID) (sink.ValueID, error) {
		if len(a) != 2 {
			return 0, fmt.Errorf("builtin expects 2 arguments, got %d", len(a))
		}
		return f(a[0], a[1], ""), nil
	}
	cmp := func(pred sink.Predicate) (sink.ValueID, error) {
		if len(a) != 2 {
			return 0, fmt.Errorf("comparison builtin expects 2 arguments, got %d", len(a))
		}
		return e.sink.BuildIntCompare(pred, a[0], a[1], ""), nil
	}

	switch b {
	case ast.Add:
		return bin(e.sink.BuildIntAdd)
	case ast.Sub:
		return bin(e.sink.BuildIntSub)
	case ast.Mul:
		return bin(e.sink.BuildIntMul)
	case ast.Div:
		return bin(e.sink.BuildIntUDiv)
	case ast.Sdiv:
		return bin(e.sink.BuildIntSDiv)
	case ast.Mod:
		return bin(e.sink.BuildIntURem)
	case ast.Smod:
		return bin(e.sink.BuildIntSRem)
	case ast.And:
		return bin(e.sink.BuildIntAnd)
	case ast.Or:
		return bin(e.sink.BuildIntOr)
	case ast.Xor:
		return bin(e.sink.BuildIntXor)
	case ast.Shl:
		return bin(e.sink.BuildIntShl)
	case ast.Shr:
		return bin(e.sink.BuildIntLShr)
	case ast.Sar:
		return bin(e.sink.BuildIntAShr)
	case ast.Lt:
		return cmp(sink.PredULT)
	case ast.Gt:
		return cmp(sink.PredUGT)
	case ast.Slt:
		return cmp(sink.PredSLT)
	case ast.Sgt:
		return cmp(sink.PredSGT)
	case ast.Eq:
		return cmp(sink.PredEQ)
	case ast.IsZero:
		if len(a) != 1 {
			return 0, fmt.Errorf("iszero expects 1 argument, got %d", len(a))
		}
		zero := e.sink.ConstInt(sink.Type{Kind: sink.WordType}, big.NewInt(0))
		return e.sink.BuildIntCompare(sink.PredEQ, a[0], zero, ""), nil
	case ast.Not:
		if len(a) != 1 {
			return 0, fmt.Errorf("not expects 1 argument, got %d", len(a))
		}
		allOnes := new(big.Int).Lsh(big.NewInt(1), 256)
		allOnes.Sub(allOnes, big.NewInt(1))
		mask := e.sink.ConstInt(sink.Type{Kind: sink.WordType}, allOnes)
		return e.sink.BuildIntXor(a[0], mask, ""), nil
	case ast.Pop:
		return 0, nil

	case ast.Mload:
		if len(a) != 1 {
			return 0, fmt.Errorf("mload expects 1 argument, got %d", len(a))
		}
		ptr := e.sink.BuildGEP(e.heapPointer(), []sink.ValueID{a[0]}, "")
		return e.sink.BuildLoad(ptr, ""), nil
	case ast.Mstore, ast.Mstore8:
		if len(a) != 2 {
			return 0, fmt.Errorf("mstore expects 2 arguments, got %d", len(a))
		}
		ptr := e.sink.BuildGEP(e.heapPointer(), []sink.ValueID{a[0]}, "")
		e.sink.BuildStore(ptr, a[1])
		return 0, nil
	case ast.Sload:
		if len(a) != 1 {
			return 0, fmt.Errorf("sload expects 1 argument, got %d", len(a))
		}
		return e.sink.BuildStorageLoad(a[0]), nil
	case ast.Sstore:
		if len(a) != 2 {
			return 0, fmt.Errorf("sstore expects 2 arguments, got %d", len(a))
		}
		e.sink.BuildStorageStore(a[0], a[1])
		return 0, nil
	case ast.Mcopy:
		if len(a) != 3 {
			return 0, fmt.Errorf("mcopy expects 3 arguments, got %d", len(a))
		}
		e.sink.BuildMemoryMove(a[0], a[1], a[2])
		return 0, nil
	case ast.Calldatacopy:
		if len(a) != 3 {
			return 0, fmt.Errorf("calldatacopy expects 3 arguments, got %d", len(a))
		}
		e.sink.BuildMemoryCopy(sink.Parent, sink.Heap, a[0], a[1], a[2])
		return 0, nil
	case ast.Codecopy:
		if len(a) != 3 {
			return 0, fmt.Errorf("codecopy expects 3 arguments, got %d", len(a))
		}
		e.sink.BuildMemoryCopy(sink.Parent, sink.Heap, a[0], a[1], a[2])
		return 0, nil
	case ast.Returndatacopy:
		if len(a) != 3 {
			return 0, fmt.Errorf("returndatacopy expects 3 arguments, got %d", len(a))
		}
		e.sink.BuildMemoryCopy(sink.Child, sink.Heap, a[0], a[1], a[2])
		return 0, nil
	case ast.Extcodecopy:
		if len(a) != 4 {
			return 0, fmt.Errorf("extcodecopy expects 4 arguments, got %d", len(a))
		}
		e.sink.BuildMemoryCopy(sink.Parent, sink.Heap, a[1], a[2], a[3])
		return 0, nil
	case ast.Keccak256:
		if len(a) != 2 {
			return 0, fmt.Errorf("keccak256 expects 2 arguments, got %d", len(a))
		}
		e.sink.BuildHashAbsorb(a[0])
		e.sink.BuildHashAbsorb(a[1])
		return e.sink.BuildHashOutput(), nil

	case ast.Log0, ast.Log1, ast.Log2, ast.Log3, ast.Log4:
		if len(a) < 2 {
			return 0, fmt.Errorf("log builtin expects at least 2 arguments, got %d", len(a))
		}
		e.sink.BuildEventEmit(a[2:], a[1])
		return 0, nil

	case ast.Call:
		return e.emitFarCall(sink.FarCallRegular, a)
	case ast.Callcode:
		return e.emitFarCall(sink.FarCallCode, a)
	case ast.Delegatecall:
		return e.emitFarCall(sink.FarCallDelegate, a)
	case ast.Staticcall:
		return e.emitFarCall(sink.FarCallStatic, a)

	case ast.Stop:
		e.sink.BuildReturn(nil)
		return 0, nil
	case ast.Revert, ast.Invalid:
		e.sink.BuildThrow()
		return 0, nil
	case ast.Return:
		if len(a) != 2 {
			return 0, fmt.Errorf("return expects 2 arguments, got %d", len(a))
		}
		e.sink.BuildReturn(&a[0])
		return 0, nil

	default:
		return 0, fmt.Errorf("unhandled builtin %v", b)
	}
}

// heapPointer returns the pointer standing in for the EVM linear heap,
// allocating it on first use.
func (e *YulEmitter) heapPointer() sink.PointerID {
	if e.heapBase == 0 {
		e.heapBase = e.sink.BuildAlloca(sink.Type{Kind: sink.ArrayType}, "heap")
	}
	return e.heapBase
}

func (e *YulEmitter) emitFarCall(kind sink.FarCallKind, a []sink.ValueID) (sink.ValueID, error) {
	if len(a) < 6 {
		return 0, fmt.Errorf("call builtin expects at least 6 arguments, got %d", len(a))
	}
	gas := a[0]
	address := a[1]
	idx := 2
	var value sink.ValueID
	if kind == sink.FarCallRegular || kind == sink.FarCallCode {
		value = a[2]
		idx = 3
	}
	if len(a) < idx+4 {
		return 0, fmt.Errorf("call builtin missing argument/return offset operands")
	}
	return e.sink.BuildFarCall(kind, gas, address, value, a[idx], a[idx+1], a[idx+2], a[idx+3]), nil
}
