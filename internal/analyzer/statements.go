package analyzer

import (
	"github.com/th13vn/cc0/internal/ast"
	"github.com/th13vn/cc0/internal/diag"
	"github.com/th13vn/cc0/internal/types"
)

// statement type-checks a single statement-position node, including
// top-level declarations (a Module's direct children are statements
// in this dialect's grammar too, since a top-level FnImpl/Decl is
// just a Decl/FnImpl appearing outside any Code block).
func (a *Analyzer) statement(n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Class {
	case ast.Decl:
		a.checkDecl(n)
	case ast.DeclStruct:
		a.checkDeclStruct(n)
	case ast.FnImpl:
		a.checkFnImpl(n)
	case ast.Code:
		for _, c := range n.Children() {
			a.statement(c)
		}
	case ast.Branch:
		a.checkBranch(n)
	case ast.Loop:
		a.checkLoop(n)
	case ast.Iter:
		a.checkIter(n)
	case ast.Return:
		a.checkReturn(n)
	case ast.Break:
		// Illegal-break-outside-loop was already checked and reported
		// by the builder, which is the only place loop nesting is
		// tracked; nothing further to verify here.
	case ast.Empty, ast.Invalid:
		// no-op
	default:
		// An expression used as a statement; its value may be
		// discarded, which is allowed but optionally flagged.
		res := a.value(n)
		if a.warnDiscard && !types.IsInvalid(res.Type) && !types.IsVoid(res.Type) {
			a.report(diag.ValueDiscarded, n, "value of type %s is discarded", types.ToString(res.Type, ""))
		}
	}
}

func (a *Analyzer) checkDecl(n *ast.Node) {
	for _, child := range n.Children() {
		if child.Class == ast.DeclStruct {
			a.checkDeclStruct(child)
			continue
		}
		// child is a Literal(Ident) declarator, optionally carrying an
		// initializer in its R slot.
		if child.R != nil {
			init := a.value(child.R)
			if !types.IsAssignable(child.DT, init.Type) {
				a.report(diag.TypeMismatch, child, "cannot initialize %s with %s",
					types.ToString(child.DT, ""), types.ToString(init.Type, ""))
			}
		}
	}
}

func (a *Analyzer) checkDeclStruct(n *ast.Node) {
	for _, body := range n.Children() {
		for _, member := range body.Children() {
			a.checkDecl(member)
		}
	}
}

func (a *Analyzer) checkFnImpl(n *ast.Node) {
	if n.R == nil {
		return // prototype only
	}
	savedReturn, savedInFunction := a.returnType, a.inFunction
	a.returnType = types.DeriveReturn(n.DT)
	a.inFunction = true
	a.statement(n.R)
	a.returnType, a.inFunction = savedReturn, savedInFunction
}

func (a *Analyzer) checkBranch(n *ast.Node) {
	cond := a.value(n.L)
	if !types.IsCondition(cond.Type) {
		a.report(diag.ExpectedType, n, "if condition must be scalar, found %s", types.ToString(cond.Type, ""))
	}
	a.statement(n.R)
	for _, elseBranch := range n.Children() {
		a.statement(elseBranch)
	}
}

func (a *Analyzer) checkLoop(n *ast.Node) {
	cond := a.value(n.L)
	if !types.IsCondition(cond.Type) {
		a.report(diag.ExpectedType, n, "while condition must be scalar, found %s", types.ToString(cond.Type, ""))
	}
	a.statement(n.R)
}

func (a *Analyzer) checkIter(n *ast.Node) {
	children := n.Children()
	if len(children) != 3 {
		return
	}
	initN, condN, stepN := children[0], children[1], children[2]
	a.statement(initN)
	if condN.Class != ast.Empty {
		cond := a.value(condN)
		if !types.IsCondition(cond.Type) {
			a.report(diag.ExpectedType, condN, "for condition must be scalar, found %s", types.ToString(cond.Type, ""))
		}
	}
	if stepN.Class != ast.Empty {
		a.value(stepN)
	}
	a.statement(n.R)
}

func (a *Analyzer) checkReturn(n *ast.Node) {
	if !a.inFunction {
		return
	}
	if n.L == nil {
		if !types.IsVoid(a.returnType) {
			a.report(diag.ExpectedType, n, "function must return a value of type %s", types.ToString(a.returnType, ""))
		}
		return
	}
	res := a.value(n.L)
	if !types.IsAssignable(a.returnType, res.Type) {
		a.report(diag.ExpectedType, n, "cannot return %s from a function declared to return %s",
			types.ToString(res.Type, ""), types.ToString(a.returnType, ""))
	}
}
