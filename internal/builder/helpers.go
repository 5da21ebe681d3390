package builder

import (
	"github.com/th13vn/cc0/internal/diag"
	"github.com/th13vn/cc0/internal/symbols"
	"github.com/th13vn/cc0/internal/token"
)

func (b *Builder) peek() token.Token {
	return b.tokens[b.pos]
}

func (b *Builder) peekAt(offset int) token.Token {
	idx := b.pos + offset
	if idx >= len(b.tokens) {
		return b.tokens[len(b.tokens)-1] // EOF
	}
	return b.tokens[idx]
}

func (b *Builder) previous() token.Token {
	if b.pos == 0 {
		return b.tokens[0]
	}
	return b.tokens[b.pos-1]
}

func (b *Builder) isAtEnd() bool {
	return b.peek().Class == token.EOF
}

func (b *Builder) check(class token.Class) bool {
	return !b.isAtEnd() && b.peek().Class == class
}

func (b *Builder) advance() token.Token {
	tok := b.peek()
	if !b.isAtEnd() {
		b.pos++
	}
	return tok
}

func (b *Builder) match(classes ...token.Class) bool {
	for _, c := range classes {
		if b.check(c) {
			b.advance()
			return true
		}
	}
	return false
}

// expect consumes the current token if it matches class, else
// records an "expected" diagnostic and, in tolerant mode, resyncs.
func (b *Builder) expect(class token.Class, what string) (token.Token, bool) {
	if b.check(class) {
		return b.advance(), true
	}
	tok := b.peek()
	b.errorExpected(what, tok)
	if b.options.Tolerant {
		b.synchronize()
	}
	return tok, false
}

func (b *Builder) errorExpected(what string, got token.Token) {
	b.sink.Report(diag.Expected, got.Pos.Line, got.Pos.Column,
		"expected %s but found %q", what, describeToken(got))
}

func (b *Builder) errorUndefinedSymbol(name string, tok token.Token) {
	b.sink.Report(diag.UndefinedSymbol, tok.Pos.Line, tok.Pos.Column,
		"undefined symbol %q", name)
}

func (b *Builder) errorIllegalBreak(tok token.Token) {
	b.sink.Report(diag.IllegalBreak, tok.Pos.Line, tok.Pos.Column,
		"break statement outside of a loop")
}

func (b *Builder) errorIdentOutsideDecl(tok token.Token) {
	b.sink.Report(diag.IdentOutsideDecl, tok.Pos.Line, tok.Pos.Column,
		"identifier %q used outside of a declaration context", tok.Text)
}

func (b *Builder) errorDuplicateSymbol(name string, tok token.Token) {
	b.sink.Report(diag.DuplicateSymbol, tok.Pos.Line, tok.Pos.Column,
		"symbol %q is already declared in this scope", name)
}

func describeToken(tok token.Token) string {
	if tok.Class == token.EOF {
		return "end of input"
	}
	if tok.Text != "" {
		return tok.Text
	}
	return tok.Class.String()
}

// synchronize recovers from a syntax error by advancing at least one
// token, then skipping until a statement boundary (a just-consumed
// semicolon or closing brace) or a token that can begin a declaration,
// an if/while/for/return/break statement, or a block is reached. This
// is the only error-recovery strategy this parser implements.
func (b *Builder) synchronize() {
	if !b.isAtEnd() {
		b.advance()
	}
	for !b.isAtEnd() {
		if b.previous().Class == token.SEMICOLON || b.previous().Class == token.RBRACE {
			return
		}
		switch b.peek().Class {
		case token.KW_VOID, token.KW_BOOL, token.KW_CHAR, token.KW_INT,
			token.KW_CONST, token.KW_STRUCT, token.KW_UNION, token.KW_ENUM,
			token.KW_IF, token.KW_WHILE, token.KW_FOR, token.KW_RETURN,
			token.KW_BREAK, token.LBRACE:
			return
		}
		b.advance()
	}
}

// isTypeStart reports whether the current token begins a BasicType.
func (b *Builder) isTypeStart() bool {
	switch b.peek().Class {
	case token.KW_CONST, token.KW_STATIC, token.KW_EXTERN,
		token.KW_VOID, token.KW_BOOL, token.KW_CHAR, token.KW_INT,
		token.KW_STRUCT, token.KW_UNION, token.KW_ENUM:
		return true
	case token.IDENTIFIER:
		sym, ok := b.scope.Lookup(b.peek().Text)
		return ok && (sym.Kind == symbols.KindType || sym.Kind == symbols.KindStruct || sym.Kind == symbols.KindEnum)
	default:
		return false
	}
}

// isDeclStart reports whether the parser is positioned at the start
// of a declaration (as opposed to an expression statement): true for
// every keyword that introduces a BasicType, and for an identifier
// that resolves in the current scope to a type/struct/enum name. This
// is exactly the disambiguation a plain-text grammar cannot make
// without semantic information, hence binding happens during parsing
// rather than after it.
func (b *Builder) isDeclStart() bool {
	return b.isTypeStart()
}

// storageClassOf narrows a storage-class keyword to the symbol enum.
func storageClassOf(tok token.Token) (class symbols.StorageClass, ok bool) {
	switch tok.Class {
	case token.KW_STATIC:
		return symbols.Static, true
	case token.KW_EXTERN:
		return symbols.Extern, true
	default:
		return symbols.Auto, false
	}
}
