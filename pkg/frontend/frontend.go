// Package frontend is the single public entry point chaining
// pkg/parser's lexer-and-builder stage with the semantic analyzer,
// the same thin-wrapper shape the teacher's pkg/parser gives its own
// builder.
package frontend

import (
	"io"

	"github.com/th13vn/cc0/internal/analyzer"
	"github.com/th13vn/cc0/internal/ast"
	"github.com/th13vn/cc0/internal/symbols"
	"github.com/th13vn/cc0/pkg/parser"
)

// Options configures the compile pipeline.
type Options struct {
	// Tolerant enables panic-mode recovery in the builder.
	Tolerant bool
	// WarnDiscardedValues enables the analyzer's optional
	// valueDiscarded diagnostic for expression statements whose
	// result is neither used nor void.
	WarnDiscardedValues bool
}

// Result holds the typed module, the root scope, and the total
// error count across both parsing and analysis (warnings excluded).
type Result struct {
	Module *ast.Node
	Root   *symbols.Symbol
	Errors int
}

// Compile runs pkg/parser's lexer-and-builder stage, then the
// analyzer, over src, writing diagnostics to w as they are discovered.
// w may be nil to suppress output.
func Compile(src string, w io.Writer, opts Options) *Result {
	parsed, _ := parser.Parse(src, w, parser.Options{Tolerant: opts.Tolerant})

	an := analyzer.New(parsed.Sink, parsed.Root)
	an.WarnOnDiscardedValue(opts.WarnDiscardedValues)
	analyzeErrors := an.Analyze(parsed.Module)

	return &Result{Module: parsed.Module, Root: parsed.Root, Errors: parsed.Errors + analyzeErrors}
}
