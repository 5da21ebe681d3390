package lexer

import (
	"testing"

	"github.com/th13vn/cc0/internal/token"
)

func classesOf(toks []token.Token) []token.Class {
	out := make([]token.Class, len(toks))
	for i, t := range toks {
		out[i] = t.Class
	}
	return out
}

func TestTokenizeFunctionPrototype(t *testing.T) {
	input := `int add(int a, int b);`

	toks := New(input).Tokenize()
	expected := []token.Class{
		token.KW_INT, token.IDENTIFIER, token.LPAREN,
		token.KW_INT, token.IDENTIFIER, token.COMMA,
		token.KW_INT, token.IDENTIFIER, token.RPAREN,
		token.SEMICOLON, token.EOF,
	}

	got := classesOf(toks)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(got), got)
	}
	for i, exp := range expected {
		if got[i] != exp {
			t.Errorf("token %d: expected %s, got %s (text %q)", i, exp, got[i], toks[i].Text)
		}
	}
}

func TestTokenizePointerDeclarator(t *testing.T) {
	input := `struct Node *next;`
	toks := New(input).Tokenize()
	expected := []token.Class{
		token.KW_STRUCT, token.IDENTIFIER, token.STAR, token.IDENTIFIER, token.SEMICOLON, token.EOF,
	}
	got := classesOf(toks)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(got), got)
	}
	for i, exp := range expected {
		if got[i] != exp {
			t.Errorf("token %d: expected %s, got %s", i, exp, got[i])
		}
	}
}

func TestTokenizeOperatorsLongestMatch(t *testing.T) {
	input := `a <<= b >> c <= d == e != f && g || h ++ -- ->`
	toks := New(input).Tokenize()
	expected := []token.Class{
		token.IDENTIFIER, token.SHL_EQ, token.IDENTIFIER, token.SHR, token.IDENTIFIER,
		token.LE, token.IDENTIFIER, token.EQ, token.IDENTIFIER, token.NEQ, token.IDENTIFIER,
		token.AND_AND, token.IDENTIFIER, token.OR_OR, token.IDENTIFIER,
		token.INC, token.DEC, token.ARROW, token.EOF,
	}
	got := classesOf(toks)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(got), got)
	}
	for i, exp := range expected {
		if got[i] != exp {
			t.Errorf("token %d: expected %s, got %s", i, exp, got[i])
		}
	}
}

func TestSkipsCommentsAndWhitespace(t *testing.T) {
	input := "int x; // trailing comment\n/* block\ncomment */ int y;"
	toks := New(input).Tokenize()
	expected := []token.Class{
		token.KW_INT, token.IDENTIFIER, token.SEMICOLON,
		token.KW_INT, token.IDENTIFIER, token.SEMICOLON,
		token.EOF,
	}
	got := classesOf(toks)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(got), got)
	}
}

func TestNumberAndStringLiterals(t *testing.T) {
	toks := New(`42 "hi\n"`).Tokenize()
	if toks[0].Class != token.NUMBER || toks[0].Text != "42" {
		t.Errorf("expected NUMBER 42, got %s %q", toks[0].Class, toks[0].Text)
	}
	if toks[1].Class != token.STRING || toks[1].Text != "hi\n" {
		t.Errorf("expected STRING %q, got %s %q", "hi\n", toks[1].Class, toks[1].Text)
	}
}

func TestKeywordsNotIdentifiers(t *testing.T) {
	toks := New(`if else while for return break true false const struct union enum void bool char int static extern sizeof`).Tokenize()
	expected := []token.Class{
		token.KW_IF, token.KW_ELSE, token.KW_WHILE, token.KW_FOR, token.KW_RETURN, token.KW_BREAK,
		token.KW_TRUE, token.KW_FALSE, token.KW_CONST, token.KW_STRUCT, token.KW_UNION, token.KW_ENUM,
		token.KW_VOID, token.KW_BOOL, token.KW_CHAR, token.KW_INT, token.KW_STATIC, token.KW_EXTERN,
		token.KW_SIZEOF, token.EOF,
	}
	got := classesOf(toks)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(got), got)
	}
	for i, exp := range expected {
		if got[i] != exp {
			t.Errorf("token %d: expected %s, got %s", i, exp, got[i])
		}
	}
}
