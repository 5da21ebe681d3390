package builder

import (
	"github.com/th13vn/cc0/internal/ast"
	"github.com/th13vn/cc0/internal/symbols"
	"github.com/th13vn/cc0/internal/token"
	"github.com/th13vn/cc0/internal/types"
)

// parseFnImpl parses the parameter list and either a trailing `;`
// (prototype) or a Code block (definition) following a function
// declarator. The function symbol is inserted in the enclosing scope
// before its parameters and body are parsed, so recursive calls
// resolve.
func (b *Builder) parseFnImpl(startTok, nameTok token.Token, returnType types.Type) *ast.Node {
	fnSym, inserted := b.scope.Insert(nameTok.Text, symbols.KindID)
	if !inserted {
		// A prototype followed later by its definition is not a
		// duplicate; only flag a genuine redeclaration conflict when
		// the existing symbol isn't itself a function.
		existing, _ := b.scope.LookupLocal(nameTok.Text)
		isFn := false
		if existing != nil {
			if existingType, ok := existing.Type.(types.Type); ok {
				isFn = types.IsCallable(existingType)
			}
		}
		if !isFn {
			b.errorDuplicateSymbol(nameTok.Text, nameTok)
		}
		fnSym = existing
	}

	paramScope := b.scope.PushScope(nameTok.Text + "()")
	savedScope := b.scope
	b.scope = paramScope

	b.advance() // '('
	params := b.parseParameterList()
	b.expect(token.RPAREN, ")")

	paramTypes := make([]types.Type, len(params))
	for i, p := range params {
		paramTypes[i] = p.DT
	}
	fnType := types.Function(returnType, paramTypes...)
	if fnSym != nil {
		fnSym.Type = fnType
	}

	node := ast.NewNode(ast.FnImpl, startTok.Pos)
	node.Symbol = fnSym
	node.DT = fnType
	for _, p := range params {
		node.AddChild(p)
	}

	if b.match(token.SEMICOLON) {
		b.scope = savedScope
		return node // prototype only, no body
	}

	body := b.parseCodeIn(paramScope)
	node.R = body
	b.scope = savedScope
	return node
}

// parseParameterList parses a comma-separated parameter list, which
// may be empty or exactly `void`.
func (b *Builder) parseParameterList() []*ast.Node {
	var params []*ast.Node
	if b.check(token.RPAREN) {
		return params
	}
	if b.check(token.KW_VOID) && b.peekAt(1).Class == token.RPAREN {
		b.advance()
		return params
	}
	for {
		paramTok := b.peek()
		_, _, baseType, _ := b.parseBasicType()
		name, paramType := b.parseDeclarator(baseType)
		sym, ok := b.scope.Insert(name, symbols.KindParam)
		if !ok {
			b.errorDuplicateSymbol(name, paramTok)
			sym, _ = b.scope.LookupLocal(name)
		} else if sym != nil {
			sym.Type = paramType
		}
		lit := ast.NewNode(ast.Literal, paramTok.Pos)
		lit.LiteralClass = ast.LiteralIdent
		lit.Literal = name
		lit.Symbol = sym
		lit.DT = paramType
		params = append(params, lit)
		if !b.match(token.COMMA) {
			break
		}
	}
	return params
}
