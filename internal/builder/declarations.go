package builder

import (
	"github.com/th13vn/cc0/internal/ast"
	"github.com/th13vn/cc0/internal/symbols"
	"github.com/th13vn/cc0/internal/token"
	"github.com/th13vn/cc0/internal/types"
)

// parseTopLevel parses one top-level construct: a struct/union/enum
// tag definition, or a BasicType-led declaration that turns out to be
// either a function implementation/prototype or one or more variable
// declarators.
func (b *Builder) parseTopLevel() *ast.Node {
	if !b.isTypeStart() {
		tok := b.peek()
		b.errorIdentOutsideDecl(tok)
		b.advance()
		return ast.NewNode(ast.Invalid, tok.Pos)
	}

	startTok := b.peek()
	isConst, storage, baseType, tagNode := b.parseBasicType()

	// A bare `struct Tag { ... };` / `enum Tag { ... };` with no
	// declarator following is itself the top-level construct.
	if tagNode != nil && b.check(token.SEMICOLON) {
		b.advance()
		return tagNode
	}

	return b.parseDeclOrFnImpl(startTok, isConst, storage, baseType, tagNode)
}

// parseBasicType parses an optional `const` and storage-class keyword
// (in either order), then a basic type keyword, a struct/union
// specifier, or an enum specifier, returning the resulting type value.
// tagNode is non-nil when a new struct/union/enum tag body was just
// defined inline and must be surfaced as its own top-level node if
// nothing declares an instance of it.
func (b *Builder) parseBasicType() (isConst bool, storage symbols.StorageClass, t types.Type, tagNode *ast.Node) {
	for {
		if b.check(token.KW_CONST) {
			b.advance()
			isConst = true
			continue
		}
		if class, ok := storageClassOf(b.peek()); ok {
			b.advance()
			storage = class
			continue
		}
		break
	}

	switch b.peek().Class {
	case token.KW_VOID, token.KW_BOOL, token.KW_CHAR, token.KW_INT:
		tok := b.advance()
		sym, _ := b.scope.Lookup(tok.Text)
		return isConst, storage, types.Basic(sym), nil
	case token.KW_STRUCT:
		t = b.parseStructOrUnionSpecifier(symbols.KindStruct, &tagNode)
		return isConst, storage, t, tagNode
	case token.KW_UNION:
		t = b.parseStructOrUnionSpecifier(symbols.KindStruct, &tagNode)
		return isConst, storage, t, tagNode
	case token.KW_ENUM:
		t = b.parseEnumSpecifier(&tagNode)
		return isConst, storage, t, tagNode
	case token.IDENTIFIER:
		tok := b.advance()
		sym, ok := b.scope.Lookup(tok.Text)
		if !ok {
			b.errorUndefinedSymbol(tok.Text, tok)
			return isConst, storage, types.Invalid, nil
		}
		return isConst, storage, types.Basic(sym), nil
	default:
		tok := b.peek()
		b.errorExpected("a type", tok)
		return isConst, storage, types.Invalid, nil
	}
}

// parseStructOrUnionSpecifier parses `struct Tag { members }` or a
// bare `struct Tag`/`union Tag` tag reference, stopping after the
// closing `}` — the terminal `;` (whether this is a tag-only
// definition or the type prefix of a declarator list) is always the
// caller's to consume, since only the caller knows which case it is.
// kind is the symbol Kind given to a newly defined tag (callers pass
// KindStruct for both struct and union, matching the dialect's
// symbol-kind set); struct-vs-union is distinguished only by the AST
// node class emitted for a new body, taken from the keyword.
func (b *Builder) parseStructOrUnionSpecifier(kind symbols.Kind, tagNodeOut **ast.Node) types.Type {
	kwTok := b.advance() // 'struct' or 'union'
	isUnion := kwTok.Class == token.KW_UNION

	name := ""
	if b.check(token.IDENTIFIER) {
		name = b.advance().Text
	}

	if !b.check(token.LBRACE) {
		// Bare tag reference: look it up, don't redeclare.
		if name == "" {
			b.errorExpected("a struct/union tag or body", b.peek())
			return types.Invalid
		}
		sym, ok := b.scope.Lookup(name)
		if !ok {
			b.errorUndefinedSymbol(name, kwTok)
			return types.Invalid
		}
		return types.Basic(sym)
	}

	var tagSym *symbols.Symbol
	if name != "" {
		sym, ok := b.scope.Insert(name, kind)
		if !ok {
			b.errorDuplicateSymbol(name, kwTok)
			sym, _ = b.scope.LookupLocal(name)
		}
		tagSym = sym
	} else {
		tagSym = &symbols.Symbol{Name: "<anonymous>", Kind: kind}
	}

	bodyClass := ast.Struct
	if isUnion {
		bodyClass = ast.Union
	}
	body := ast.NewNode(bodyClass, b.peek().Pos)
	body.Symbol = tagSym

	// Members are inserted directly under the tag symbol itself (not
	// a new scope nested in the enclosing one) so the analyzer can
	// later resolve `.`/`->` member access by walking tagSym's own
	// children — a struct's member namespace is a property of the
	// type, not of lexical position.
	savedScope := b.scope
	b.scope = tagSym

	b.advance() // '{'
	offset := 0
	for !b.check(token.RBRACE) && !b.isAtEnd() {
		member := b.parseStructMember(&offset, isUnion)
		body.AddChild(member)
	}
	b.expect(token.RBRACE, "}")

	b.scope = savedScope

	tag := ast.NewNode(ast.DeclStruct, kwTok.Pos)
	tag.Symbol = tagSym
	tag.AddChild(body)
	if tagNodeOut != nil {
		*tagNodeOut = tag
	}

	return types.Basic(tagSym)
}

// parseStructMember parses one `BasicType Declarator;` member inside
// a struct/union body, assigning offsets as it goes: every member has
// Size 1 and a struct member's offset is its position among the
// members, while every union member gets the same offset.
func (b *Builder) parseStructMember(offset *int, isUnion bool) *ast.Node {
	_, _, baseType, _ := b.parseBasicType()
	decl := ast.NewNode(ast.Decl, b.peek().Pos)
	for {
		declTok := b.peek()
		name, declType := b.parseDeclarator(baseType)
		sym, ok := b.scope.Insert(name, symbols.KindID)
		if !ok {
			b.errorDuplicateSymbol(name, declTok)
			sym, _ = b.scope.LookupLocal(name)
		} else {
			sym.Type = declType
			sym.Offset = *offset
			sym.Size = 1
			if !isUnion {
				*offset++
			}
		}
		lit := ast.NewNode(ast.Literal, declTok.Pos)
		lit.LiteralClass = ast.LiteralIdent
		lit.Literal = name
		lit.Symbol = sym
		lit.DT = declType
		decl.AddChild(lit)
		if !b.match(token.COMMA) {
			break
		}
	}
	b.expect(token.SEMICOLON, ";")
	return decl
}

// parseEnumSpecifier parses `enum Tag { A, B, C }` or a bare `enum
// Tag` reference, stopping after the closing `}` and leaving the
// terminal `;` for the caller, exactly as parseStructOrUnionSpecifier
// does. Each enumerator is inserted as an Id symbol of the enum's own
// type in the enclosing scope (C enum constants are not scoped to the
// tag).
func (b *Builder) parseEnumSpecifier(tagNodeOut **ast.Node) types.Type {
	kwTok := b.advance() // 'enum'
	name := ""
	if b.check(token.IDENTIFIER) {
		name = b.advance().Text
	}

	if !b.check(token.LBRACE) {
		if name == "" {
			b.errorExpected("an enum tag or body", b.peek())
			return types.Invalid
		}
		sym, ok := b.scope.Lookup(name)
		if !ok {
			b.errorUndefinedSymbol(name, kwTok)
			return types.Invalid
		}
		return types.Basic(sym)
	}

	var tagSym *symbols.Symbol
	if name != "" {
		sym, ok := b.scope.Insert(name, symbols.KindEnum)
		if !ok {
			b.errorDuplicateSymbol(name, kwTok)
			sym, _ = b.scope.LookupLocal(name)
		}
		tagSym = sym
	} else {
		tagSym = &symbols.Symbol{Name: "<anonymous enum>", Kind: symbols.KindEnum}
	}
	enumType := types.Basic(tagSym)

	tag := ast.NewNode(ast.DeclStruct, kwTok.Pos)
	tag.Symbol = tagSym

	b.advance() // '{'
	value := 0
	for !b.check(token.RBRACE) && !b.isAtEnd() {
		memberTok, ok := b.expect(token.IDENTIFIER, "an enumerator name")
		if !ok {
			break
		}
		sym, inserted := b.scope.Insert(memberTok.Text, symbols.KindID)
		if !inserted {
			b.errorDuplicateSymbol(memberTok.Text, memberTok)
			sym, _ = b.scope.LookupLocal(memberTok.Text)
		} else {
			sym.Type = enumType
			sym.Offset = value
		}
		lit := ast.NewNode(ast.Literal, memberTok.Pos)
		lit.LiteralClass = ast.LiteralIdent
		lit.Literal = memberTok.Text
		lit.Symbol = sym
		lit.DT = enumType
		tag.AddChild(lit)
		value++
		if !b.match(token.COMMA) {
			break
		}
	}
	b.expect(token.RBRACE, "}")

	if tagNodeOut != nil {
		*tagNodeOut = tag
	}
	return enumType
}

// parseDeclOrFnImpl continues past a parsed BasicType to the first
// declarator, disambiguating a function implementation/prototype
// (declarator is immediately followed by a parameter list) from one
// or more plain variable declarators.
func (b *Builder) parseDeclOrFnImpl(startTok token.Token, isConst bool, storage symbols.StorageClass, baseType types.Type, tagNode *ast.Node) *ast.Node {
	ptrDepth := 0
	for b.match(token.STAR) {
		ptrDepth++
	}
	nameTok, ok := b.expect(token.IDENTIFIER, "a declarator name")
	if !ok {
		return ast.NewNode(ast.Invalid, startTok.Pos)
	}

	declType := baseType
	for i := 0; i < ptrDepth; i++ {
		declType = types.DerivePointer(declType)
	}

	if b.check(token.LPAREN) {
		node := b.parseFnImpl(startTok, nameTok, declType)
		if node.Symbol != nil {
			node.Symbol.Storage = storage
		}
		return node
	}

	// Variable declaration: finish this declarator, then any
	// additional comma-separated ones sharing baseType.
	decl := ast.NewNode(ast.Decl, startTok.Pos)
	decl.AddChild(tagNode)
	b.finishVariableDeclarator(decl, nameTok, declType, isConst, storage)
	for b.match(token.COMMA) {
		more := b.peek()
		ptr := 0
		for b.match(token.STAR) {
			ptr++
		}
		n, okName := b.expect(token.IDENTIFIER, "a declarator name")
		if !okName {
			break
		}
		t := baseType
		for i := 0; i < ptr; i++ {
			t = types.DerivePointer(t)
		}
		_ = more
		b.finishVariableDeclarator(decl, n, t, isConst, storage)
	}
	b.expect(token.SEMICOLON, ";")
	return decl
}

// finishVariableDeclarator consumes any trailing `[len]` array
// dimensions, inserts the symbol, and appends the declarator's
// Literal node to decl.
func (b *Builder) finishVariableDeclarator(decl *ast.Node, nameTok token.Token, declType types.Type, isConst bool, storage symbols.StorageClass) {
	for b.match(token.LBRACKET) {
		length := -1
		if b.check(token.NUMBER) {
			numTok := b.advance()
			length = parseIntLiteral(numTok.Text)
		}
		b.expect(token.RBRACKET, "]")
		declType = types.DeriveArray(declType, length)
	}

	var initializer *ast.Node
	if b.match(token.ASSIGN) {
		initializer = b.parseAssignment()
	}

	sym, inserted := b.scope.Insert(nameTok.Text, symbols.KindID)
	if !inserted {
		b.errorDuplicateSymbol(nameTok.Text, nameTok)
		sym, _ = b.scope.LookupLocal(nameTok.Text)
	} else if sym != nil {
		sym.Type = declType
		sym.Const = isConst
		sym.Storage = storage
		sym.Size = 1
	}

	lit := ast.NewNode(ast.Literal, nameTok.Pos)
	lit.LiteralClass = ast.LiteralIdent
	lit.Literal = nameTok.Text
	lit.Symbol = sym
	lit.DT = declType
	if initializer != nil {
		lit.R = initializer
	}
	decl.AddChild(lit)
}

// parseDeclarator parses a declarator (pointer prefixes, a name, and
// trailing array dimensions) against an already-parsed base type,
// used for struct members and parameters. It returns the declared
// name and its fully derived type but does not insert a symbol.
func (b *Builder) parseDeclarator(baseType types.Type) (string, types.Type) {
	ptrDepth := 0
	for b.match(token.STAR) {
		ptrDepth++
	}
	nameTok, ok := b.expect(token.IDENTIFIER, "a declarator name")
	name := nameTok.Text
	if !ok {
		name = "<error>"
	}

	t := baseType
	for i := 0; i < ptrDepth; i++ {
		t = types.DerivePointer(t)
	}
	for b.match(token.LBRACKET) {
		length := -1
		if b.check(token.NUMBER) {
			numTok := b.advance()
			length = parseIntLiteral(numTok.Text)
		}
		b.expect(token.RBRACKET, "]")
		t = types.DeriveArray(t, length)
	}
	return name, t
}

func parseIntLiteral(text string) int {
	n := 0
	for _, ch := range text {
		if ch < '0' || ch > '9' {
			break
		}
		n = n*10 + int(ch-'0')
	}
	return n
}
