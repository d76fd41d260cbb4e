// Package parser builds a pkg/yul/ast tree from pkg/yul/lexer tokens by
// recursive descent with at most two tokens of lookahead, following the teacher's
// builder idiom (peek/advance/check/expect helpers, accumulated *Error
// values under tolerant mode).
package parser

import (
	"fmt"

	"github.com/zkonic/solyul/pkg/yul/ast"
	"github.com/zkonic/solyul/pkg/yul/lexer"
)

// SyntaxError is raised when the token stream does not match any
// production the parser knows how to continue from.
type SyntaxError struct {
	Message  string
	Expected []string
	Pos      lexer.Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// SemanticError is raised for structurally valid but meaningless input,
// such as a switch with neither cases nor a default.
type SemanticError struct {
	Message string
	Pos     lexer.Position
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Options controls parsing behavior.
type Options struct {
	// Tolerant continues past errors (accumulating them in Errors())
	// instead of returning on the first one, matching the teacher's
	// Builder.Options.Tolerant.
	Tolerant bool
}

// Parser consumes a token stream and builds a pkg/yul/ast tree.
type Parser struct {
	lex     *lexer.Lexer
	options Options
	errors  []error
	buf     []lexer.Token
}

// New creates a Parser over Yul source text.
func New(source string, options Options) *Parser {
	return &Parser{lex: lexer.New(source), options: options}
}

// Errors returns the errors accumulated in tolerant mode.
func (p *Parser) Errors() []error {
	return p.errors
}

// ParseObject parses a top-level "object \"Name\" { code { ... } ... }".
func (p *Parser) ParseObject() (*ast.Object, error) {
	tok, err := p.expectKeyword(lexer.Object)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expectLiteralString()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(lexer.BraceLeft); err != nil {
		return nil, err
	}

	obj := &ast.Object{Pos: tok.Pos, Name: nameTok.Literal.Text}

	if _, err := p.expectKeyword(lexer.Code); err != nil {
		return nil, err
	}
	codePos, err := p.peekPos()
	if err != nil {
		return nil, err
	}
	block, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	obj.Code = &ast.Code{Pos: codePos, Block: block}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lexer.SymbolTok && tok.Symbol == lexer.BraceRight {
			p.advanceDiscard()
			break
		}
		if tok.Kind == lexer.KeywordTok && tok.Keyword == lexer.Object {
			nested, err := p.ParseObject()
			if err != nil {
				return nil, err
			}
			obj.NestedObject = nested
			continue
		}
		if tok.Kind == lexer.KeywordTok && tok.Keyword == lexer.DataKw {
			// A data block "data \"name\" hex\"...\"" names a dependency;
			// record it and skip its payload.
			p.advanceDiscard()
			nameTok, err := p.expectLiteralString()
			if err != nil {
				return nil, err
			}
			obj.Dependencies = append(obj.Dependencies, nameTok.Literal.Text)
			payload, err := p.next() // hex keyword or string payload literal
			if err != nil {
				return nil, err
			}
			if payload.Kind == lexer.KeywordTok && payload.Keyword == lexer.HexKw {
				if _, err := p.next(); err != nil { // the hex string itself
					return nil, err
				}
			}
			continue
		}
		return nil, &SyntaxError{
			Message:  fmt.Sprintf("unexpected token %q in object body", tok),
			Expected: []string{"object", "data", "}"},
			Pos:      tok.Pos,
		}
	}

	return obj, nil
}

// ParseBlock parses "{" statement* "}" per spec.md §4.2: keyword dispatches
// to its Statement production, a literal or identifier followed by a
// non-assignment lexeme is an expression statement, an identifier followed
// by ":=" or "," is an Assignment, "{" opens a nested Block, "}" closes.
func (p *Parser) ParseBlock() (*ast.Block, error) {
	open, err := p.expectSymbol(lexer.BraceLeft)
	if err != nil {
		return nil, err
	}
	block := &ast.Block{Pos: open.Pos}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		if tok.Kind == lexer.SymbolTok && tok.Symbol == lexer.BraceRight {
			p.advanceDiscard()
			return block, nil
		}

		stmt, err := p.parseStatement(tok)
		if err != nil {
			if p.options.Tolerant {
				p.errors = append(p.errors, err)
				p.synchronize()
				continue
			}
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
}

func (p *Parser) parseStatement(tok lexer.Token) (ast.Statement, error) {
	switch {
	case tok.Kind == lexer.KeywordTok:
		switch tok.Keyword {
		case lexer.Let:
			return p.parseVariableDeclaration()
		case lexer.Function:
			return p.parseFunctionDefinition()
		case lexer.If:
			return p.parseIfConditional()
		case lexer.Switch:
			return p.parseSwitch()
		case lexer.For:
			return p.parseForLoop()
		case lexer.Continue:
			p.advanceDiscard()
			return &ast.Continue{Pos: tok.Pos}, nil
		case lexer.Break:
			p.advanceDiscard()
			return &ast.Break{Pos: tok.Pos}, nil
		case lexer.Leave:
			p.advanceDiscard()
			return &ast.Leave{Pos: tok.Pos}, nil
		default:
			return nil, &SyntaxError{
				Message:  fmt.Sprintf("unexpected keyword %q at statement position", tok),
				Expected: []string{"let", "function", "if", "switch", "for", "continue", "break", "leave"},
				Pos:      tok.Pos,
			}
		}

	case tok.Kind == lexer.LiteralTok:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Pos: tok.Pos, Expression: expr}, nil

	case tok.Kind == lexer.IdentifierTok:
		return p.parseIdentifierLedStatement(tok)

	case tok.Kind == lexer.SymbolTok && tok.Symbol == lexer.BraceLeft:
		return p.ParseBlock()

	default:
		return nil, &SyntaxError{
			Message:  fmt.Sprintf("unexpected token %q at statement position", tok),
			Expected: []string{"keyword", "expression", "identifier", "{", "}"},
			Pos:      tok.Pos,
		}
	}
}

// parseIdentifierLedStatement disambiguates between an Assignment and a
// bare Expression statement by peeking one token past the identifier.
func (p *Parser) parseIdentifierLedStatement(first lexer.Token) (ast.Statement, error) {
	second, err := p.peekAt(1)
	if err != nil {
		return nil, err
	}

	if second.Kind == lexer.SymbolTok && (second.Symbol == lexer.Assign || second.Symbol == lexer.Comma) {
		return p.parseAssignment()
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Pos: first.Pos, Expression: expr}, nil
}

// parseAssignment implements spec.md §4.2's Assignment rule: an identifier
// list (one element unless followed by commas) followed by ":=" and an
// initializer expression.
func (p *Parser) parseAssignment() (*ast.Assignment, error) {
	first, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	bindings := []string{first.Identifier}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != lexer.SymbolTok || tok.Symbol != lexer.Comma {
			break
		}
		p.advanceDiscard()
		ident, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, ident.Identifier)
	}

	if _, err := p.expectSymbol(lexer.Assign); err != nil {
		return nil, err
	}
	initializer, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Pos: first.Pos, Bindings: bindings, Initializer: initializer}, nil
}

// parseVariableDeclaration parses "let x[, y]* [:= expr]".
func (p *Parser) parseVariableDeclaration() (*ast.VariableDeclaration, error) {
	letTok, err := p.expectKeyword(lexer.Let)
	if err != nil {
		return nil, err
	}
	first, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	bindings := []string{first.Identifier}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != lexer.SymbolTok || tok.Symbol != lexer.Comma {
			break
		}
		p.advanceDiscard()
		ident, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, ident.Identifier)
	}

	decl := &ast.VariableDeclaration{Pos: letTok.Pos, Bindings: bindings}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == lexer.SymbolTok && tok.Symbol == lexer.Assign {
		p.advanceDiscard()
		initializer, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Initializer = initializer
	}
	return decl, nil
}

// parseFunctionDefinition parses "function name(params) [-> rets] { body }".
func (p *Parser) parseFunctionDefinition() (*ast.FunctionDefinition, error) {
	fnTok, err := p.expectKeyword(lexer.Function)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	params, err := p.parseIdentifierListParenthesized()
	if err != nil {
		return nil, err
	}

	def := &ast.FunctionDefinition{Pos: fnTok.Pos, Name: nameTok.Identifier, Parameters: params}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == lexer.SymbolTok && tok.Symbol == lexer.Arrow {
		p.advanceDiscard()
		rets, err := p.parseIdentifierListBare()
		if err != nil {
			return nil, err
		}
		def.ReturnVariables = rets
	}

	body, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	def.Body = body
	return def, nil
}

func (p *Parser) parseIdentifierListParenthesized() ([]string, error) {
	if _, err := p.expectSymbol(lexer.ParenLeft); err != nil {
		return nil, err
	}
	var names []string
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lexer.SymbolTok && tok.Symbol == lexer.ParenRight {
			p.advanceDiscard()
			return names, nil
		}
		ident, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		names = append(names, ident.Identifier)

		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lexer.SymbolTok && tok.Symbol == lexer.Comma {
			p.advanceDiscard()
			continue
		}
	}
}

func (p *Parser) parseIdentifierListBare() ([]string, error) {
	first, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	names := []string{first.Identifier}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != lexer.SymbolTok || tok.Symbol != lexer.Comma {
			return names, nil
		}
		p.advanceDiscard()
		ident, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		names = append(names, ident.Identifier)
	}
}

// parseIfConditional parses "if cond { body }".
func (p *Parser) parseIfConditional() (*ast.IfConditional, error) {
	ifTok, err := p.expectKeyword(lexer.If)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.IfConditional{Pos: ifTok.Pos, Condition: cond, Body: body}, nil
}

// parseForLoop parses "for { init } cond { post } { body }".
func (p *Parser) parseForLoop() (*ast.ForLoop, error) {
	forTok, err := p.expectKeyword(lexer.For)
	if err != nil {
		return nil, err
	}
	init, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	post, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	body, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForLoop{Pos: forTok.Pos, Init: init, Condition: cond, Post: post, Body: body}, nil
}

// parseSwitch implements spec.md §4.2's three-state switch machine,
// grounded on original_source's yul/parser/statement/switch/mod.rs: after
// the scrutinee, repeatedly consume "case <literal> { block }" arms, then
// an optional trailing "default { block }". Absent both, raise a
// SemanticError (at least one arm is required).
func (p *Parser) parseSwitch() (*ast.Switch, error) {
	switchTok, err := p.expectKeyword(lexer.Switch)
	if err != nil {
		return nil, err
	}
	scrutinee, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	sw := &ast.Switch{Pos: switchTok.Pos, Expression: scrutinee}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lexer.KeywordTok && tok.Keyword == lexer.Case {
			caseTok := tok
			p.advanceDiscard()
			litTok, err := p.next()
			if err != nil {
				return nil, err
			}
			if litTok.Kind != lexer.LiteralTok {
				return nil, &SyntaxError{
					Message:  fmt.Sprintf("expected a literal in case arm, got %q", litTok),
					Expected: []string{"literal"},
					Pos:      litTok.Pos,
				}
			}
			body, err := p.ParseBlock()
			if err != nil {
				return nil, err
			}
			sw.Cases = append(sw.Cases, ast.Case{
				Pos:     caseTok.Pos,
				Literal: &ast.Literal{Pos: litTok.Pos, Kind: litTok.Literal.Kind, Text: litTok.Literal.Text},
				Body:    body,
			})
			continue
		}
		if tok.Kind == lexer.KeywordTok && tok.Keyword == lexer.Default {
			p.advanceDiscard()
			body, err := p.ParseBlock()
			if err != nil {
				return nil, err
			}
			sw.Default = body
			break
		}
		break
	}

	if len(sw.Cases) == 0 && sw.Default == nil {
		return nil, &SemanticError{
			Message: "switch statement requires at least one case or a default arm",
			Pos:     switchTok.Pos,
		}
	}
	return sw, nil
}

// parseExpression parses a FunctionCall, Identifier, or Literal.
func (p *Parser) parseExpression() (ast.Expression, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case lexer.LiteralTok:
		return &ast.Literal{Pos: tok.Pos, Kind: tok.Literal.Kind, Text: tok.Literal.Text}, nil
	case lexer.IdentifierTok:
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		if next.Kind == lexer.SymbolTok && next.Symbol == lexer.ParenLeft {
			return p.parseFunctionCall(tok)
		}
		return &ast.Identifier{Pos: tok.Pos, Name: tok.Identifier}, nil
	default:
		return nil, &SyntaxError{
			Message:  fmt.Sprintf("expected an expression, got %q", tok),
			Expected: []string{"literal", "identifier"},
			Pos:      tok.Pos,
		}
	}
}

// parseFunctionCall implements spec.md §4.2's FunctionCall rule: the name
// is classified against the built-in table, then arguments are consumed
// comma-separated until ")", tolerating one trailing comma.
func (p *Parser) parseFunctionCall(nameTok lexer.Token) (*ast.FunctionCall, error) {
	if _, err := p.expectSymbol(lexer.ParenLeft); err != nil {
		return nil, err
	}
	call := &ast.FunctionCall{Pos: nameTok.Pos, Name: ast.NameFromIdentifier(nameTok.Identifier)}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lexer.SymbolTok && tok.Symbol == lexer.ParenRight {
			p.advanceDiscard()
			return call, nil
		}

		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		call.Arguments = append(call.Arguments, arg)

		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.Kind == lexer.SymbolTok && tok.Symbol == lexer.Comma:
			p.advanceDiscard()
		case tok.Kind == lexer.SymbolTok && tok.Symbol == lexer.ParenRight:
			p.advanceDiscard()
			return call, nil
		default:
			return call, nil
		}
	}
}

// synchronize discards tokens until a plausible statement boundary, used
// only in tolerant mode.
func (p *Parser) synchronize() {
	for {
		tok, err := p.peek()
		if err != nil || tok.Kind == lexer.EOF {
			return
		}
		if tok.Kind == lexer.SymbolTok && (tok.Symbol == lexer.BraceRight || tok.Symbol == lexer.BraceLeft) {
			return
		}
		if tok.Kind == lexer.KeywordTok {
			return
		}
		p.advanceDiscard()
	}
}
