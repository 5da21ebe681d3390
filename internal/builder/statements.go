package builder

import (
	"github.com/th13vn/cc0/internal/ast"
	"github.com/th13vn/cc0/internal/symbols"
	"github.com/th13vn/cc0/internal/token"
	"github.com/th13vn/cc0/internal/types"
)

// parseCode parses a `{ ... }` block, pushing a fresh child scope.
func (b *Builder) parseCode() *ast.Node {
	scope := b.scope.PushScope("<block>")
	return b.parseCodeIn(scope)
}

// parseCodeIn parses a `{ ... }` block using scope as its scope
// directly, rather than pushing a further nested one — used for a
// function body, which shares its parameter scope in this dialect.
func (b *Builder) parseCodeIn(scope *symbols.Symbol) *ast.Node {
	startTok := b.peek()
	savedScope := b.scope
	b.scope = scope

	node := ast.NewNode(ast.Code, startTok.Pos)
	b.expect(token.LBRACE, "{")
	for !b.check(token.RBRACE) && !b.isAtEnd() {
		before := b.pos
		stmt := b.parseStatement()
		node.AddChild(stmt)
		if b.pos == before {
			b.advance()
		}
	}
	b.expect(token.RBRACE, "}")

	b.scope = savedScope
	return node
}

func (b *Builder) parseStatement() *ast.Node {
	switch b.peek().Class {
	case token.LBRACE:
		return b.parseCode()
	case token.KW_IF:
		return b.parseBranch()
	case token.KW_WHILE:
		return b.parseLoop()
	case token.KW_DO:
		return b.parseDoLoop()
	case token.KW_FOR:
		return b.parseIter()
	case token.KW_RETURN:
		return b.parseReturn()
	case token.KW_BREAK:
		return b.parseBreak()
	case token.SEMICOLON:
		tok := b.advance()
		return ast.NewNode(ast.Empty, tok.Pos)
	default:
		if b.isDeclStart() {
			return b.parseLocalDecl()
		}
		return b.parseExpressionStatement()
	}
}

// parseLocalDecl parses a local `BasicType Declarator, ...;`
// declaration exactly as parseDeclOrFnImpl does for top-level
// declarations, minus the function-implementation branch (a function
// cannot be defined inside a block in this dialect).
func (b *Builder) parseLocalDecl() *ast.Node {
	startTok := b.peek()
	isConst, storage, baseType, tagNode := b.parseBasicType()

	// A bare `struct Tag { ... };` with no declarator following is
	// itself the statement; nothing to insert beyond the tag symbol
	// parseBasicType already inserted.
	if tagNode != nil && b.check(token.SEMICOLON) {
		b.advance()
		return tagNode
	}

	decl := ast.NewNode(ast.Decl, startTok.Pos)
	decl.AddChild(tagNode)
	for {
		nameTok := b.peek()
		ptrDepth := 0
		for b.match(token.STAR) {
			ptrDepth++
		}
		n, ok := b.expect(token.IDENTIFIER, "a declarator name")
		if !ok {
			break
		}
		t := baseType
		for i := 0; i < ptrDepth; i++ {
			t = types.DerivePointer(t)
		}
		_ = nameTok
		b.finishVariableDeclarator(decl, n, t, isConst, storage)
		if !b.match(token.COMMA) {
			break
		}
	}
	b.expect(token.SEMICOLON, ";")
	return decl
}

func (b *Builder) parseBranch() *ast.Node {
	startTok := b.advance() // 'if'
	node := ast.NewNode(ast.Branch, startTok.Pos)
	b.expect(token.LPAREN, "(")
	node.L = b.parseExpression()
	b.expect(token.RPAREN, ")")
	node.R = b.parseStatement()
	if b.match(token.KW_ELSE) {
		elseNode := ast.NewNode(ast.Code, b.peek().Pos)
		elseNode.AddChild(b.parseStatement())
		node.AddChild(elseNode)
	}
	return node
}

func (b *Builder) parseLoop() *ast.Node {
	startTok := b.advance() // 'while'
	node := ast.NewNode(ast.Loop, startTok.Pos)
	b.expect(token.LPAREN, "(")
	node.L = b.parseExpression()
	b.expect(token.RPAREN, ")")
	b.loopDepth++
	node.R = b.parseStatement()
	b.loopDepth--
	return node
}

// parseDoLoop parses a `do stmt while (cond);` statement. The body is
// parsed before the condition, matching source order, but the
// resulting node keeps the same shape as parseLoop's (L holds the
// condition, R the body) so the analyzer's loop check needs no
// do-while special case; Operator is set to "do" purely to record
// that the test happens after the body, for anything downstream that
// cares about execution order rather than typing.
func (b *Builder) parseDoLoop() *ast.Node {
	startTok := b.advance() // 'do'
	node := ast.NewNode(ast.Loop, startTok.Pos)
	node.Operator = "do"
	b.loopDepth++
	node.R = b.parseStatement()
	b.loopDepth--
	b.expect(token.KW_WHILE, "while")
	b.expect(token.LPAREN, "(")
	node.L = b.parseExpression()
	b.expect(token.RPAREN, ")")
	b.expect(token.SEMICOLON, ";")
	return node
}

// parseIter parses a `for (init; cond; step) body` statement. The
// resulting node's children are always exactly [init, cond, step] in
// that order, with Empty standing in for any omitted clause, and R
// holds the loop body. The header gets its own scope, so a variable
// declared in init is visible only in the header and the body.
func (b *Builder) parseIter() *ast.Node {
	startTok := b.advance() // 'for'
	node := ast.NewNode(ast.Iter, startTok.Pos)
	savedScope := b.scope
	b.scope = b.scope.PushScope("<for>")
	defer func() { b.scope = savedScope }()
	b.expect(token.LPAREN, "(")

	var initNode *ast.Node
	if b.check(token.SEMICOLON) {
		initNode = ast.NewNode(ast.Empty, b.peek().Pos)
		b.advance()
	} else if b.isDeclStart() {
		initNode = b.parseLocalDecl() // consumes its own ';'
	} else {
		initNode = b.parseExpressionStatement() // consumes its own ';'
	}
	node.AddChild(initNode)

	var condNode *ast.Node
	if b.check(token.SEMICOLON) {
		condNode = ast.NewNode(ast.Empty, b.peek().Pos)
	} else {
		condNode = b.parseExpression()
	}
	node.AddChild(condNode)
	b.expect(token.SEMICOLON, ";")

	var stepNode *ast.Node
	if b.check(token.RPAREN) {
		stepNode = ast.NewNode(ast.Empty, b.peek().Pos)
	} else {
		stepNode = b.parseExpression()
	}
	node.AddChild(stepNode)
	b.expect(token.RPAREN, ")")

	b.loopDepth++
	node.R = b.parseStatement()
	b.loopDepth--
	return node
}

func (b *Builder) parseReturn() *ast.Node {
	startTok := b.advance() // 'return'
	node := ast.NewNode(ast.Return, startTok.Pos)
	if !b.check(token.SEMICOLON) {
		node.L = b.parseExpression()
	}
	b.expect(token.SEMICOLON, ";")
	return node
}

func (b *Builder) parseBreak() *ast.Node {
	startTok := b.advance() // 'break'
	if b.loopDepth == 0 {
		b.errorIllegalBreak(startTok)
	}
	node := ast.NewNode(ast.Break, startTok.Pos)
	b.expect(token.SEMICOLON, ";")
	return node
}

func (b *Builder) parseExpressionStatement() *ast.Node {
	if b.check(token.SEMICOLON) {
		tok := b.advance()
		return ast.NewNode(ast.Empty, tok.Pos)
	}
	expr := b.parseExpression()
	b.expect(token.SEMICOLON, ";")
	return expr
}
