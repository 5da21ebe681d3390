// Package parser glues the lexer and the scope/symbol-binding builder
// into the small set of entry points a caller actually needs: build
// an AST (with diagnostics), render it as JSON, or walk a built AST
// with a Visitor. It does not run the semantic analyzer; pkg/frontend
// adds that pass.
package parser

import (
	"encoding/json"
	"io"

	"github.com/th13vn/cc0/internal/ast"
	"github.com/th13vn/cc0/internal/builder"
	"github.com/th13vn/cc0/internal/diag"
	"github.com/th13vn/cc0/internal/lexer"
	"github.com/th13vn/cc0/internal/symbols"
	"github.com/th13vn/cc0/internal/types"
)

// Options configures parsing behavior.
type Options struct {
	// Tolerant enables panic-mode error recovery: after a syntax error
	// the builder skips ahead to the next statement boundary. Without
	// it the builder still keeps parsing after a syntax error, resuming
	// at the offending token.
	Tolerant bool
}

// Result holds a parsed module alongside the scope tree rooted at the
// file's top-level scope and the diagnostics accumulated while parsing.
// Sink is exposed so a caller that runs further passes over Module
// (pkg/frontend's analyzer stage, notably) can keep reporting to the
// same diagnostic stream instead of opening a second one.
type Result struct {
	Module *ast.Node
	Root   *symbols.Symbol
	Errors int
	Sink   *diag.Sink
}

// Parse tokenizes and parses source text, binding identifiers against
// a fresh root scope as it goes. Diagnostics are written to w as they
// are discovered; pass nil to suppress output and only inspect
// Result.Errors.
func Parse(source string, w io.Writer, opts Options) (*Result, error) {
	toks := lexer.New(source).Tokenize()

	sink := diag.NewSink(w)
	root := symbols.NewRootScope()
	types.InsertBuiltins(root)
	b := builder.New(toks, root, sink, builder.Options{Tolerant: opts.Tolerant})
	module, errCount := b.Build()

	return &Result{Module: module, Root: root, Errors: errCount, Sink: sink}, nil
}

// ParseReader reads all of r and parses it as Parse does.
func ParseReader(r io.Reader, w io.Writer, opts Options) (*Result, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(content), w, opts)
}

// ParseToJSON parses source and renders the resulting AST as indented
// JSON, regardless of whether parsing accumulated diagnostics.
func ParseToJSON(source string, opts Options) ([]byte, error) {
	result, err := Parse(source, nil, opts)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(result.Module, "", "  ")
}

// Visit walks an AST and calls the appropriate visitor method for
// each node.
func Visit(node *ast.Node, visitor ast.Visitor) {
	ast.Walk(visitor, node)
}

// VisitSimple walks an AST using a SimpleVisitor's single callback.
func VisitSimple(node *ast.Node, visitor *ast.SimpleVisitor) {
	ast.Walk(visitor, node)
}

// Visitor is an alias for ast.Visitor.
type Visitor = ast.Visitor

// BaseVisitor is an alias for ast.BaseVisitor.
type BaseVisitor = ast.BaseVisitor

// SimpleVisitor is an alias for ast.SimpleVisitor.
type SimpleVisitor = ast.SimpleVisitor
