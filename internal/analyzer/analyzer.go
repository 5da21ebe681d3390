// Package analyzer implements the tree-walking semantic analyzer: it
// annotates every expression node with its computed type, checks
// every statement and operator rule the type algebra defines, and
// accumulates diagnostics for anything that fails. Parsing and
// binding already happened in internal/builder; this pass only
// type-checks what the builder already resolved.
package analyzer

import (
	"github.com/th13vn/cc0/internal/ast"
	"github.com/th13vn/cc0/internal/diag"
	"github.com/th13vn/cc0/internal/symbols"
	"github.com/th13vn/cc0/internal/types"
)

// Analyzer walks a parsed Module and type-checks it.
type Analyzer struct {
	sink *diag.Sink

	// returnType is the declared return type of the FnImpl currently
	// being walked, used to check Return statements.
	returnType types.Type
	inFunction bool

	warnDiscard bool

	builtins map[string]*symbols.Symbol
}

// New creates an Analyzer reporting diagnostics to sink, resolving
// its synthesized result types (the bool produced by a comparison,
// the int produced by sizeof) against root's pre-populated builtins.
func New(sink *diag.Sink, root *symbols.Symbol) *Analyzer {
	a := &Analyzer{sink: sink, builtins: make(map[string]*symbols.Symbol)}
	for _, name := range []string{"void", "bool", "char", "int"} {
		if sym, ok := root.Lookup(name); ok {
			a.builtins[name] = sym
		}
	}
	return a
}

// WarnOnDiscardedValue enables the optional, non-error
// "value discarded" diagnostic for expression statements whose value
// is never used.
func (a *Analyzer) WarnOnDiscardedValue(on bool) {
	a.warnDiscard = on
}

// Analyze type-checks module and returns the number of errors
// recorded during this pass.
func (a *Analyzer) Analyze(module *ast.Node) int {
	before := a.sink.Count()
	for _, child := range module.Children() {
		a.statement(child)
	}
	return a.sink.Count() - before
}

func (a *Analyzer) report(kind diag.Kind, n *ast.Node, format string, args ...any) {
	a.sink.Report(kind, n.Loc.Line, n.Loc.Column, format, args...)
}

// valueResult pairs a computed type with whether the expression that
// produced it denotes an addressable storage location.
type valueResult struct {
	Type    types.Type
	LValue  bool
}

func rvalue(t types.Type) valueResult { return valueResult{Type: t} }

// value type-checks an expression node, memoizes its type onto
// node.DT, and reports whether it is an lvalue.
func (a *Analyzer) value(n *ast.Node) valueResult {
	if n == nil {
		return rvalue(types.Invalid)
	}
	var res valueResult
	switch n.Class {
	case ast.Literal:
		res = a.literal(n)
	case ast.BOP:
		res = a.binary(n)
	case ast.UOP:
		res = a.unary(n)
	case ast.TOP:
		res = a.ternary(n)
	case ast.Index:
		res = a.index(n)
	case ast.Call:
		res = a.call(n)
	case ast.Invalid:
		res = rvalue(types.Invalid)
	default:
		res = rvalue(types.Invalid)
	}
	n.DT = res.Type
	return res
}

func (a *Analyzer) literal(n *ast.Node) valueResult {
	switch n.LiteralClass {
	case ast.LiteralIdent:
		isID := n.Symbol != nil && (n.Symbol.Kind == symbols.KindID || n.Symbol.Kind == symbols.KindParam)
		return valueResult{Type: n.DT, LValue: isID}
	case ast.LiteralArray:
		var first types.Type
		for i, c := range n.Children() {
			elem := a.value(c)
			if i == 0 {
				first = elem.Type
				continue
			}
			if !types.Compatible(first, elem.Type) {
				a.report(diag.TypeMismatch, c, "array literal element has type %s, expected %s",
					types.ToString(elem.Type, ""), types.ToString(first, ""))
			}
		}
		return rvalue(n.DT)
	default:
		return rvalue(n.DT)
	}
}

func (a *Analyzer) binary(n *ast.Node) valueResult {
	l := a.value(n.L)
	switch n.Operator {
	case "=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=":
		r := a.value(n.R)
		if !l.LValue {
			a.report(diag.NotLValue, n, "left operand of %q is not assignable", n.Operator)
			return rvalue(types.Invalid)
		}
		if n.Operator != "=" && !types.IsNumeric(l.Type) {
			a.report(diag.OperatorRequires, n, "operator %q requires a numeric operand, found %s", n.Operator, types.ToString(l.Type, ""))
			return rvalue(types.Invalid)
		}
		if !types.IsAssignable(l.Type, r.Type) {
			a.report(diag.TypeMismatch, n, "cannot assign %s to %s", types.ToString(r.Type, ""), types.ToString(l.Type, ""))
			return rvalue(types.Invalid)
		}
		return rvalue(l.Type)

	case ",":
		r := a.value(n.R)
		if types.IsVoid(r.Type) {
			a.report(diag.TypeMismatch, n, "right operand of \",\" must not be void")
			return rvalue(types.Invalid)
		}
		return rvalue(r.Type)

	case ".", "->":
		return a.member(n, l)

	case "&&", "||":
		r := a.value(n.R)
		if !types.IsCondition(l.Type) || !types.IsCondition(r.Type) {
			a.report(diag.OperatorRequires, n, "operator %q requires scalar operands", n.Operator)
			return rvalue(types.Invalid)
		}
		return rvalue(a.boolType())

	case "==", "!=":
		r := a.value(n.R)
		if !types.IsEquality(l.Type) || !types.IsEquality(r.Type) || !types.Compatible(l.Type, r.Type) {
			a.report(diag.OperatorRequires, n, "operator %q requires comparable operands, found %s and %s",
				n.Operator, types.ToString(l.Type, ""), types.ToString(r.Type, ""))
			return rvalue(types.Invalid)
		}
		return rvalue(a.boolType())

	case "<", ">", "<=", ">=":
		r := a.value(n.R)
		if !types.IsOrdinal(l.Type) || !types.IsOrdinal(r.Type) {
			a.report(diag.OperatorRequires, n, "operator %q requires ordinal operands, found %s and %s",
				n.Operator, types.ToString(l.Type, ""), types.ToString(r.Type, ""))
			return rvalue(types.Invalid)
		}
		return rvalue(a.boolType())

	default: // + - * / % & | ^ << >>
		r := a.value(n.R)
		if !types.IsNumeric(l.Type) || !types.IsNumeric(r.Type) {
			a.report(diag.OperatorRequires, n, "operator %q requires numeric operands, found %s and %s",
				n.Operator, types.ToString(l.Type, ""), types.ToString(r.Type, ""))
			return rvalue(types.Invalid)
		}
		return rvalue(types.DeriveFromTwo(l.Type, r.Type))
	}
}

// member resolves a `.`/`->` expression: the left operand must name a
// struct (directly, or through one level of pointer for `->`), and
// the right operand's literal name must match one of its members.
func (a *Analyzer) member(n *ast.Node, l valueResult) valueResult {
	base := l.Type
	if n.Operator == "->" {
		if !types.IsPointer(base) {
			a.report(diag.OperatorRequires, n, "operator \"->\" requires a pointer operand, found %s", types.ToString(base, ""))
			return rvalue(types.Invalid)
		}
		base = types.DeriveBase(base)
	}
	if !types.IsRecord(base) {
		a.report(diag.OperatorRequires, n, "operator %q requires a struct operand, found %s", n.Operator, types.ToString(base, ""))
		return rvalue(types.Invalid)
	}
	memberName := n.R.Literal
	for _, child := range memberChildren(base) {
		if child.Literal == memberName {
			n.R.Symbol = child.Symbol
			n.R.DT = child.DT
			return valueResult{Type: child.DT, LValue: true}
		}
	}
	a.report(diag.MissingMember, n, "%s has no member named %q", types.ToString(base, ""), memberName)
	return rvalue(types.Invalid)
}

// memberChildren builds one Literal(Ident) node per member of the
// record's basic type, each carrying the member's symbol and type. It
// walks the tag symbol's children (the members the builder inserted
// under the tag), not the struct/union body AST.
func memberChildren(record types.Type) []*ast.Node {
	if record.Basic == nil {
		return nil
	}
	var out []*ast.Node
	for _, memberSym := range record.Basic.Children() {
		if memberSym.Kind != symbols.KindID {
			continue
		}
		lit := &ast.Node{Class: ast.Literal, LiteralClass: ast.LiteralIdent, Literal: memberSym.Name, Symbol: memberSym}
		if t, ok := memberSym.Type.(types.Type); ok {
			lit.DT = t
		}
		out = append(out, lit)
	}
	return out
}

func (a *Analyzer) unary(n *ast.Node) valueResult {
	operand := a.value(n.R)
	switch n.Operator {
	case "!", "~":
		if !types.IsNumeric(operand.Type) {
			a.report(diag.OperatorRequires, n, "operator %q requires a numeric operand, found %s", n.Operator, types.ToString(operand.Type, ""))
			return rvalue(types.Invalid)
		}
		if n.Operator == "!" {
			return rvalue(a.boolType())
		}
		return rvalue(operand.Type)
	case "-", "+":
		if !types.IsNumeric(operand.Type) {
			a.report(diag.OperatorRequires, n, "operator %q requires a numeric operand, found %s", n.Operator, types.ToString(operand.Type, ""))
			return rvalue(types.Invalid)
		}
		return rvalue(operand.Type)
	case "&":
		if !operand.LValue {
			a.report(diag.NotLValue, n, "cannot take the address of a non-lvalue")
			return rvalue(types.Invalid)
		}
		return rvalue(types.DerivePointer(operand.Type))
	case "*":
		if !types.IsPointer(operand.Type) {
			a.report(diag.OperatorRequires, n, "operator \"*\" requires a pointer operand, found %s", types.ToString(operand.Type, ""))
			return rvalue(types.Invalid)
		}
		return valueResult{Type: types.DeriveBase(operand.Type), LValue: true}
	case "pre++", "pre--", "post++", "post--":
		if !operand.LValue {
			a.report(diag.NotLValue, n, "operand of %q must be assignable", n.Operator)
			return rvalue(types.Invalid)
		}
		if !types.IsNumeric(operand.Type) {
			a.report(diag.OperatorRequires, n, "operator %q requires a numeric operand", n.Operator)
			return rvalue(types.Invalid)
		}
		return valueResult{Type: operand.Type, LValue: n.Operator == "pre++" || n.Operator == "pre--"}
	case "sizeof":
		return rvalue(a.intType())
	default:
		return rvalue(types.Invalid)
	}
}

func (a *Analyzer) ternary(n *ast.Node) valueResult {
	cond := a.value(n.L)
	then := a.value(n.R)
	els := a.value(n.FirstChild)
	if !types.IsCondition(cond.Type) {
		a.report(diag.ExpectedType, n, "ternary condition must be scalar, found %s", types.ToString(cond.Type, ""))
	}
	if !types.Compatible(then.Type, els.Type) {
		a.report(diag.TypeMismatch, n, "ternary branches have incompatible types %s and %s",
			types.ToString(then.Type, ""), types.ToString(els.Type, ""))
		return rvalue(types.Invalid)
	}
	return rvalue(types.DeriveFromTwo(then.Type, els.Type))
}

func (a *Analyzer) index(n *ast.Node) valueResult {
	base := a.value(n.L)
	idx := a.value(n.R)
	if !types.IsPointer(base.Type) && !types.IsArray(base.Type) {
		a.report(diag.OperatorRequires, n, "cannot index into %s", types.ToString(base.Type, ""))
		return rvalue(types.Invalid)
	}
	if !types.IsNumeric(idx.Type) {
		a.report(diag.OperatorRequires, n, "array index must be numeric, found %s", types.ToString(idx.Type, ""))
		return rvalue(types.Invalid)
	}
	return valueResult{Type: types.DeriveBase(base.Type), LValue: true}
}

func (a *Analyzer) call(n *ast.Node) valueResult {
	callee := a.value(n.L)
	args := n.Children()
	for _, arg := range args {
		a.value(arg)
	}
	if !types.IsCallable(callee.Type) {
		a.report(diag.ExpectedType, n, "%s is not callable", types.ToString(callee.Type, ""))
		return rvalue(types.Invalid)
	}
	if len(args) != callee.Type.ParamCount {
		a.report(diag.DegreeMismatch, n, "function expects %d argument(s) but %d were given",
			callee.Type.ParamCount, len(args))
		return rvalue(types.DeriveReturn(callee.Type))
	}
	for i, arg := range args {
		if !types.IsAssignable(callee.Type.Params[i], arg.DT) {
			a.report(diag.ParamMismatch, arg, "argument %d: cannot pass %s where %s is expected",
				i+1, types.ToString(arg.DT, ""), types.ToString(callee.Type.Params[i], ""))
		}
	}
	return rvalue(types.DeriveReturn(callee.Type))
}

func (a *Analyzer) boolType() types.Type {
	return a.builtin("bool")
}

func (a *Analyzer) intType() types.Type {
	return a.builtin("int")
}

func (a *Analyzer) builtin(name string) types.Type {
	// The builder has already bound every literal it produced against
	// the root scope's builtin symbols; reusing one of those symbols
	// keeps synthesized types (like a comparison's bool result)
	// pointing at the same symbol identity as a source-level `bool`.
	if a.builtins == nil {
		return types.Invalid
	}
	sym, ok := a.builtins[name]
	if !ok {
		return types.Invalid
	}
	return types.Basic(sym)
}
