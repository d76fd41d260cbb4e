package lexer

import "testing"

func tokenizeAll(t *testing.T, input string) []Token {
	t.Helper()
	lex := New(input)
	var tokens []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return tokens
}

func TestLexerBasicBlock(t *testing.T) {
	tokens := tokenizeAll(t, `{ let x := add(1, 2) }`)

	expected := []Kind{SymbolTok, KeywordTok, IdentifierTok, SymbolTok, IdentifierTok, SymbolTok,
		LiteralTok, SymbolTok, LiteralTok, SymbolTok, SymbolTok, EOF}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(expected), len(tokens), tokens)
	}
	for i, want := range expected {
		if tokens[i].Kind != want {
			t.Errorf("token %d: expected kind %s, got %s (%q)", i, want, tokens[i].Kind, tokens[i])
		}
	}
}

func TestLexerKeywordsAndLiterals(t *testing.T) {
	tokens := tokenizeAll(t, `switch x case 0x01 { leave } default { break }`)
	if tokens[0].Kind != KeywordTok || tokens[0].Keyword != Switch {
		t.Fatalf("expected switch keyword, got %+v", tokens[0])
	}
	// find the hex literal
	var found bool
	for _, tok := range tokens {
		if tok.Kind == LiteralTok && tok.Literal.Kind == HexInteger {
			found = true
			if tok.Literal.Text != "0x01" {
				t.Errorf("expected 0x01, got %s", tok.Literal.Text)
			}
		}
	}
	if !found {
		t.Fatal("expected to find a hex literal")
	}
}

func TestLexerBooleanLiteralsAreNotIdentifiers(t *testing.T) {
	tokens := tokenizeAll(t, `true false`)
	if tokens[0].Kind != LiteralTok || tokens[0].Literal.Kind != BooleanLiteral {
		t.Fatalf("expected boolean literal, got %+v", tokens[0])
	}
	if tokens[1].Kind != LiteralTok || tokens[1].Literal.Kind != BooleanLiteral {
		t.Fatalf("expected boolean literal, got %+v", tokens[1])
	}
}

func TestLexerString(t *testing.T) {
	tokens := tokenizeAll(t, `"hello\nworld"`)
	if tokens[0].Kind != LiteralTok || tokens[0].Literal.Kind != StringLiteral {
		t.Fatalf("expected string literal, got %+v", tokens[0])
	}
	if tokens[0].Literal.Text != "hello\nworld" {
		t.Errorf("expected escaped newline, got %q", tokens[0].Literal.Text)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	lex := New(`"hello`)
	_, err := lex.Next()
	if err == nil {
		t.Fatal("expected a lexical error for an unterminated string")
	}
}

func TestLexerUnknownByte(t *testing.T) {
	lex := New(`#`)
	_, err := lex.Next()
	if err == nil {
		t.Fatal("expected a lexical error for an unknown byte")
	}
}

// TestLexerPeekIdempotence verifies testable property 1 from the spec:
// next(s) returns the lexeme peek(s) would return, and advances past
// exactly that lexeme.
func TestLexerPeekIdempotence(t *testing.T) {
	lex := New(`add(1, 2)`)

	peeked, err := lex.Peek()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	peekedAgain, err := lex.Peek()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if peeked != peekedAgain {
		t.Fatalf("peek is not idempotent: %+v != %+v", peeked, peekedAgain)
	}

	next, err := lex.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != peeked {
		t.Fatalf("next() did not return the peeked lexeme: %+v != %+v", next, peeked)
	}

	afterNext, err := lex.Peek()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if afterNext == peeked {
		t.Fatalf("peek did not advance past the consumed lexeme")
	}
}

func TestLexerArrowAndAssignSymbols(t *testing.T) {
	tokens := tokenizeAll(t, `function f() -> x { x := 1 }`)
	var sawArrow, sawAssign bool
	for _, tok := range tokens {
		if tok.Kind == SymbolTok && tok.Symbol == Arrow {
			sawArrow = true
		}
		if tok.Kind == SymbolTok && tok.Symbol == Assign {
			sawAssign = true
		}
	}
	if !sawArrow || !sawAssign {
		t.Fatalf("expected to see both -> and := symbols, tokens: %+v", tokens)
	}
}
