package builder

import (
	"github.com/th13vn/cc0/internal/ast"
	"github.com/th13vn/cc0/internal/token"
	"github.com/th13vn/cc0/internal/types"
)

// Precedence, loosest to tightest:
//
//  1. Comma
//  2. Assignment            (right-assoc)
//  3. Ternary ?:            (right-assoc)
//  4. Logical Or            ||
//  5. Logical And           &&
//  6. Bitwise Or            |
//  7. Bitwise Xor           ^
//  8. Bitwise And           &
//  9. Equality              == !=
// 10. Relational            < > <= >=
// 11. Shift                 << >>
// 12. Additive               + -
// 13. Multiplicative         * / %
// 14. Unary (prefix)         ! ~ - + ++ -- & * sizeof
// 15. Postfix                ++ -- [] () . ->
// 16. Primary

func (b *Builder) parseExpression() *ast.Node {
	return b.parseComma()
}

func (b *Builder) parseComma() *ast.Node {
	left := b.parseAssignment()
	for b.check(token.COMMA) && b.commaIsOperator() {
		tok := b.advance()
		right := b.parseAssignment()
		left = binOp(",", tok.Pos, left, right)
	}
	return left
}

// commaIsOperator guards against consuming a comma that actually
// belongs to an enclosing argument/parameter/declarator list; callers
// of parseExpression in those contexts stop at parseAssignment
// directly instead of routing through parseComma, so this is purely
// defensive for the top-level expression-statement entry point.
func (b *Builder) commaIsOperator() bool {
	return true
}

func (b *Builder) parseAssignment() *ast.Node {
	left := b.parseTernary()
	if isAssignmentOp(b.peek().Class) {
		tok := b.advance()
		right := b.parseAssignment() // right-associative
		return binOp(tok.Text, tok.Pos, left, right)
	}
	return left
}

func isAssignmentOp(c token.Class) bool {
	switch c {
	case token.ASSIGN, token.PLUS_EQ, token.MINUS_EQ, token.STAR_EQ, token.SLASH_EQ,
		token.PERCENT_EQ, token.AMP_EQ, token.PIPE_EQ, token.CARET_EQ, token.SHL_EQ, token.SHR_EQ:
		return true
	default:
		return false
	}
}

func (b *Builder) parseTernary() *ast.Node {
	cond := b.parseLogicalOr()
	if b.check(token.QUESTION) {
		tok := b.advance()
		then := b.parseAssignment()
		b.expect(token.COLON, ":")
		els := b.parseAssignment() // right-associative
		node := ast.NewNode(ast.TOP, tok.Pos)
		node.Operator = "?:"
		node.L = cond
		node.R = then
		node.AddChild(els)
		return node
	}
	return cond
}

func (b *Builder) parseLogicalOr() *ast.Node {
	left := b.parseLogicalAnd()
	for b.check(token.OR_OR) {
		tok := b.advance()
		right := b.parseLogicalAnd()
		left = binOp(tok.Text, tok.Pos, left, right)
	}
	return left
}

func (b *Builder) parseLogicalAnd() *ast.Node {
	left := b.parseBitwiseOr()
	for b.check(token.AND_AND) {
		tok := b.advance()
		right := b.parseBitwiseOr()
		left = binOp(tok.Text, tok.Pos, left, right)
	}
	return left
}

func (b *Builder) parseBitwiseOr() *ast.Node {
	left := b.parseBitwiseXor()
	for b.check(token.PIPE) {
		tok := b.advance()
		right := b.parseBitwiseXor()
		left = binOp(tok.Text, tok.Pos, left, right)
	}
	return left
}

func (b *Builder) parseBitwiseXor() *ast.Node {
	left := b.parseBitwiseAnd()
	for b.check(token.CARET) {
		tok := b.advance()
		right := b.parseBitwiseAnd()
		left = binOp(tok.Text, tok.Pos, left, right)
	}
	return left
}

func (b *Builder) parseBitwiseAnd() *ast.Node {
	left := b.parseEquality()
	for b.check(token.AMP) {
		tok := b.advance()
		right := b.parseEquality()
		left = binOp(tok.Text, tok.Pos, left, right)
	}
	return left
}

func (b *Builder) parseEquality() *ast.Node {
	left := b.parseRelational()
	for b.check(token.EQ) || b.check(token.NEQ) {
		tok := b.advance()
		right := b.parseRelational()
		left = binOp(tok.Text, tok.Pos, left, right)
	}
	return left
}

func (b *Builder) parseRelational() *ast.Node {
	left := b.parseShift()
	for b.check(token.LT) || b.check(token.GT) || b.check(token.LE) || b.check(token.GE) {
		tok := b.advance()
		right := b.parseShift()
		left = binOp(tok.Text, tok.Pos, left, right)
	}
	return left
}

func (b *Builder) parseShift() *ast.Node {
	left := b.parseAdditive()
	for b.check(token.SHL) || b.check(token.SHR) {
		tok := b.advance()
		right := b.parseAdditive()
		left = binOp(tok.Text, tok.Pos, left, right)
	}
	return left
}

func (b *Builder) parseAdditive() *ast.Node {
	left := b.parseMultiplicative()
	for b.check(token.PLUS) || b.check(token.MINUS) {
		tok := b.advance()
		right := b.parseMultiplicative()
		left = binOp(tok.Text, tok.Pos, left, right)
	}
	return left
}

func (b *Builder) parseMultiplicative() *ast.Node {
	left := b.parseUnary()
	for b.check(token.STAR) || b.check(token.SLASH) || b.check(token.PERCENT) {
		tok := b.advance()
		right := b.parseUnary()
		left = binOp(tok.Text, tok.Pos, left, right)
	}
	return left
}

func (b *Builder) parseUnary() *ast.Node {
	switch b.peek().Class {
	case token.BANG, token.TILDE, token.MINUS, token.PLUS, token.AMP, token.STAR:
		tok := b.advance()
		operand := b.parseUnary()
		node := ast.NewNode(ast.UOP, tok.Pos)
		node.Operator = tok.Text
		node.R = operand
		return node
	case token.INC, token.DEC:
		tok := b.advance()
		operand := b.parseUnary()
		node := ast.NewNode(ast.UOP, tok.Pos)
		node.Operator = "pre" + tok.Text
		node.R = operand
		return node
	case token.KW_SIZEOF:
		tok := b.advance()
		node := ast.NewNode(ast.UOP, tok.Pos)
		node.Operator = "sizeof"
		if b.check(token.LPAREN) && b.isTypeStartAt(1) {
			b.advance()
			_, _, t, _ := b.parseBasicType()
			for b.match(token.STAR) {
				t = types.DerivePointer(t)
			}
			b.expect(token.RPAREN, ")")
			lit := ast.NewNode(ast.Literal, tok.Pos)
			lit.LiteralClass = ast.LiteralNone
			lit.DT = t
			node.R = lit
		} else {
			node.R = b.parseUnary()
		}
		return node
	default:
		return b.parsePostfix()
	}
}

// isTypeStartAt peeks offset tokens ahead and reports whether that
// position could begin a BasicType; used only to disambiguate
// `sizeof(Type)` from `sizeof(expr)` without backtracking.
func (b *Builder) isTypeStartAt(offset int) bool {
	tok := b.peekAt(offset)
	switch tok.Class {
	case token.KW_CONST, token.KW_VOID, token.KW_BOOL, token.KW_CHAR, token.KW_INT,
		token.KW_STRUCT, token.KW_UNION, token.KW_ENUM:
		return true
	case token.IDENTIFIER:
		sym, ok := b.scope.Lookup(tok.Text)
		return ok && (sym.Kind.String() == "type" || sym.Kind.String() == "struct" || sym.Kind.String() == "enum")
	default:
		return false
	}
}

func (b *Builder) parsePostfix() *ast.Node {
	expr := b.parsePrimary()
	for {
		switch b.peek().Class {
		case token.LBRACKET:
			tok := b.advance()
			idx := b.parseExpression()
			b.expect(token.RBRACKET, "]")
			node := ast.NewNode(ast.Index, tok.Pos)
			node.L = expr
			node.R = idx
			expr = node
		case token.LPAREN:
			tok := b.advance()
			node := ast.NewNode(ast.Call, tok.Pos)
			node.L = expr
			if !b.check(token.RPAREN) {
				for {
					node.AddChild(b.parseAssignment())
					if !b.match(token.COMMA) {
						break
					}
				}
			}
			b.expect(token.RPAREN, ")")
			expr = node
		case token.DOT, token.ARROW:
			tok := b.advance()
			memberTok, _ := b.expect(token.IDENTIFIER, "a member name")
			member := ast.NewNode(ast.Literal, memberTok.Pos)
			member.LiteralClass = ast.LiteralIdent
			member.Literal = memberTok.Text
			node := binOp(tok.Text, tok.Pos, expr, member)
			expr = node
		case token.INC, token.DEC:
			tok := b.advance()
			node := ast.NewNode(ast.UOP, tok.Pos)
			node.Operator = "post" + tok.Text
			node.R = expr
			expr = node
		default:
			return expr
		}
	}
}

func (b *Builder) parsePrimary() *ast.Node {
	tok := b.peek()
	switch tok.Class {
	case token.IDENTIFIER:
		b.advance()
		lit := ast.NewNode(ast.Literal, tok.Pos)
		lit.LiteralClass = ast.LiteralIdent
		lit.Literal = tok.Text
		if sym, ok := b.scope.Lookup(tok.Text); ok {
			lit.Symbol = sym
			if t, ok := sym.Type.(types.Type); ok {
				lit.DT = t
			}
		} else {
			b.errorUndefinedSymbol(tok.Text, tok)
			lit.DT = types.Invalid
		}
		return lit
	case token.NUMBER:
		b.advance()
		lit := ast.NewNode(ast.Literal, tok.Pos)
		lit.LiteralClass = ast.LiteralInt
		lit.Literal = tok.Text
		lit.DT = b.basicTypeNamed("int")
		return lit
	case token.STRING:
		b.advance()
		lit := ast.NewNode(ast.Literal, tok.Pos)
		lit.LiteralClass = ast.LiteralString
		lit.Literal = tok.Text
		lit.DT = types.DerivePointer(b.basicTypeNamed("char"))
		return lit
	case token.KW_TRUE, token.KW_FALSE:
		b.advance()
		lit := ast.NewNode(ast.Literal, tok.Pos)
		lit.LiteralClass = ast.LiteralBool
		lit.Literal = tok.Text
		lit.DT = b.basicTypeNamed("bool")
		return lit
	case token.LPAREN:
		b.advance()
		inner := b.parseExpression()
		b.expect(token.RPAREN, ")")
		return inner
	case token.LBRACE:
		return b.parseArrayLiteral()
	default:
		b.errorExpected("an expression", tok)
		node := ast.NewNode(ast.Invalid, tok.Pos)
		if !b.isAtEnd() {
			b.advance()
		}
		return node
	}
}

func (b *Builder) parseArrayLiteral() *ast.Node {
	startTok := b.advance() // '{'
	node := ast.NewNode(ast.Literal, startTok.Pos)
	node.LiteralClass = ast.LiteralArray
	var elemTypes []types.Type
	if !b.check(token.RBRACE) {
		for {
			elem := b.parseAssignment()
			node.AddChild(elem)
			elemTypes = append(elemTypes, elem.DT)
			if !b.match(token.COMMA) {
				break
			}
		}
	}
	b.expect(token.RBRACE, "}")
	elemType := types.DeriveUnified(elemTypes)
	node.DT = types.DeriveArray(elemType, len(elemTypes))
	return node
}

func (b *Builder) basicTypeNamed(name string) types.Type {
	sym, ok := b.scope.Lookup(name)
	if !ok {
		return types.Invalid
	}
	return types.Basic(sym)
}

func binOp(operator string, pos token.Position, l, r *ast.Node) *ast.Node {
	node := ast.NewNode(ast.BOP, pos)
	node.Operator = operator
	node.L = l
	node.R = r
	return node
}
