package parser

import (
	"fmt"

	"github.com/zkonic/solyul/pkg/yul/lexer"
)

// The parser keeps its own lookahead buffer on top of the lexer's
// single-token Peek/Next, since switch/identifier disambiguation needs to
// look two tokens ahead (see parseIdentifierLedStatement).
func (p *Parser) fill(n int) error {
	for len(p.buf) < n {
		tok, err := p.lex.Next()
		if err != nil {
			return err
		}
		p.buf = append(p.buf, tok)
	}
	return nil
}

func (p *Parser) peek() (lexer.Token, error) {
	if err := p.fill(1); err != nil {
		return lexer.Token{}, err
	}
	return p.buf[0], nil
}

func (p *Parser) peekAt(n int) (lexer.Token, error) {
	if err := p.fill(n + 1); err != nil {
		return lexer.Token{}, err
	}
	return p.buf[n], nil
}

func (p *Parser) peekPos() (lexer.Position, error) {
	tok, err := p.peek()
	if err != nil {
		return lexer.Position{}, err
	}
	return tok.Pos, nil
}

func (p *Parser) next() (lexer.Token, error) {
	if err := p.fill(1); err != nil {
		return lexer.Token{}, err
	}
	tok := p.buf[0]
	p.buf = p.buf[1:]
	return tok, nil
}

func (p *Parser) advanceDiscard() {
	_, _ = p.next()
}

func (p *Parser) expectSymbol(sym lexer.Symbol) (lexer.Token, error) {
	tok, err := p.next()
	if err != nil {
		return lexer.Token{}, err
	}
	if tok.Kind != lexer.SymbolTok || tok.Symbol != sym {
		return lexer.Token{}, &SyntaxError{
			Message:  fmt.Sprintf("expected %q, got %q", sym, tok),
			Expected: []string{sym.String()},
			Pos:      tok.Pos,
		}
	}
	return tok, nil
}

func (p *Parser) expectKeyword(kw lexer.Keyword) (lexer.Token, error) {
	tok, err := p.next()
	if err != nil {
		return lexer.Token{}, err
	}
	if tok.Kind != lexer.KeywordTok || tok.Keyword != kw {
		return lexer.Token{}, &SyntaxError{
			Message:  fmt.Sprintf("expected keyword %q, got %q", kw, tok),
			Expected: []string{kw.String()},
			Pos:      tok.Pos,
		}
	}
	return tok, nil
}

func (p *Parser) expectIdentifier() (lexer.Token, error) {
	tok, err := p.next()
	if err != nil {
		return lexer.Token{}, err
	}
	if tok.Kind != lexer.IdentifierTok {
		return lexer.Token{}, &SyntaxError{
			Message:  fmt.Sprintf("expected an identifier, got %q", tok),
			Expected: []string{"identifier"},
			Pos:      tok.Pos,
		}
	}
	return tok, nil
}

func (p *Parser) expectLiteralString() (lexer.Token, error) {
	tok, err := p.next()
	if err != nil {
		return lexer.Token{}, err
	}
	if tok.Kind != lexer.LiteralTok || tok.Literal.Kind != lexer.StringLiteral {
		return lexer.Token{}, &SyntaxError{
			Message:  fmt.Sprintf("expected a quoted name, got %q", tok),
			Expected: []string{"string literal"},
			Pos:      tok.Pos,
		}
	}
	return tok, nil
}
