// Package builder implements the combined recursive-descent parser
// and symbol builder: it consumes a token stream and produces a
// Module ast.Node while simultaneously inserting and resolving
// symbols in the scope tree, the same interleaved parse/bind
// discipline solast-go's own builder uses for Solidity (tokenize
// eagerly, walk with a cursor, build typed nodes field by field).
package builder

import (
	"github.com/th13vn/cc0/internal/ast"
	"github.com/th13vn/cc0/internal/diag"
	"github.com/th13vn/cc0/internal/symbols"
	"github.com/th13vn/cc0/internal/token"
)

// Options configures parsing behavior.
type Options struct {
	// Tolerant, when true, makes every failed expect resync via
	// synchronize, skipping ahead to the next statement boundary.
	// When false, the failed token is left in place and parsing
	// continues from it. Parsing never stops at the first diagnostic
	// in either mode.
	Tolerant bool
}

// Builder walks a token stream, producing an AST and populating the
// symbol table as it goes.
type Builder struct {
	tokens []token.Token
	pos    int

	scope *symbols.Symbol
	sink  *diag.Sink

	loopDepth int

	options Options
}

// New creates a Builder over tokens, rooted at root, reporting
// diagnostics to sink.
func New(tokens []token.Token, root *symbols.Symbol, sink *diag.Sink, opts Options) *Builder {
	return &Builder{tokens: tokens, scope: root, sink: sink, options: opts}
}

// Build parses the entire token stream as a Module and returns the
// resulting AST root together with the number of errors recorded.
func (b *Builder) Build() (*ast.Node, int) {
	mod := ast.NewNode(ast.Module, b.peek().Pos)
	for !b.isAtEnd() {
		before := b.pos
		child := b.parseTopLevel()
		mod.AddChild(child)
		if b.pos == before {
			// Safety net: parseTopLevel must always consume at least
			// one token to guarantee termination.
			b.advance()
		}
	}
	return mod, b.sink.Count()
}
