// Package parser turns preprocessor-expanded C header text into a
// declaration tree. It is a deliberate subset front end: it understands
// top-level declarations (functions, globals, typedefs, struct/union/enum
// definitions) and skips function bodies, which is all the binding
// generator needs.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parser is a recursive descent parser over a token stream.
type Parser struct {
	l         *Lexer
	curToken  Token
	peekToken Token
	errs      []string
}

// New creates a Parser for the given source text.
func New(src string) *Parser {
	p := &Parser{l: NewLexer(src)}
	// Read two tokens to initialize curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses src and returns the top-level declarations in source order.
func Parse(src string) ([]Decl, error) {
	p := New(src)
	decls := p.ParseTranslationUnit()
	if len(p.errs) != 0 {
		return decls, errors.New(strings.Join(p.errs, "; "))
	}
	return decls, nil
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
	p.skipNoise()
}

// skipNoise drops GNU attribute and asm annotations so the grammar below
// never has to see them.
func (p *Parser) skipNoise() {
	for p.peekToken.Type == TokenIdent {
		switch p.peekToken.Literal {
		case "__attribute__", "__attribute", "__asm__", "__asm", "_Nonnull", "_Nullable",
			"__restrict", "__restrict__", "__extension__", "__volatile__", "__declspec":
			p.peekToken = p.l.NextToken()
			if p.peekToken.Type == TokenLParen {
				depth := 0
				for {
					if p.peekToken.Type == TokenLParen {
						depth++
					} else if p.peekToken.Type == TokenRParen {
						depth--
						if depth == 0 {
							p.peekToken = p.l.NextToken()
							break
						}
					} else if p.peekToken.Type == TokenEOF {
						break
					}
					p.peekToken = p.l.NextToken()
				}
			}
		default:
			return
		}
	}
}

func (p *Parser) addError(format string, args ...any) {
	p.errs = append(p.errs, fmt.Sprintf("line %d, col %d: %s",
		p.curToken.Line, p.curToken.Col, fmt.Sprintf(format, args...)))
}

func (p *Parser) curIs(t TokenType) bool { return p.curToken.Type == t }

func (p *Parser) expect(t TokenType) bool {
	if p.curIs(t) {
		p.nextToken()
		return true
	}
	p.addError("expected %s, got %s", t, p.curToken.Type)
	return false
}

// recover advances past the current declaration after a parse error.
func (p *Parser) recoverDecl() {
	depth := 0
	for !p.curIs(TokenEOF) {
		switch p.curToken.Type {
		case TokenLBrace:
			depth++
		case TokenRBrace:
			if depth > 0 {
				depth--
			}
		case TokenSemi:
			if depth == 0 {
				p.nextToken()
				return
			}
		}
		p.nextToken()
	}
}

// ParseTranslationUnit parses until EOF.
func (p *Parser) ParseTranslationUnit() []Decl {
	var decls []Decl
	for !p.curIs(TokenEOF) {
		if p.curIs(TokenSemi) {
			p.nextToken()
			continue
		}
		before := len(p.errs)
		ds := p.parseDeclaration()
		if len(p.errs) > before {
			p.recoverDecl()
			continue
		}
		decls = append(decls, ds...)
	}
	return decls
}

type specInfo struct {
	base      TypeExpr
	baseConst bool
	isTypedef bool
}

var ignoredSpecWords = map[string]bool{
	"extern": true, "static": true, "register": true, "auto": true,
	"inline": true, "__inline": true, "__inline__": true, "_Noreturn": true,
	"volatile": true, "restrict": true, "_Atomic": true, "__thread": true,
}

var baseTypeWords = map[string]bool{
	"void": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "signed": true, "unsigned": true,
	"_Bool": true, "__int128": true,
}

// parseDeclSpecifiers consumes storage classes, qualifiers, and the type
// specifier, returning the base type for the following declarators.
func (p *Parser) parseDeclSpecifiers() (specInfo, bool) {
	var spec specInfo
	var words []string

	for {
		switch {
		case p.curIs(TokenIdent) && p.curToken.Literal == "typedef":
			spec.isTypedef = true
			p.nextToken()

		case p.curIs(TokenIdent) && p.curToken.Literal == "const":
			spec.baseConst = true
			p.nextToken()

		case p.curIs(TokenIdent) && ignoredSpecWords[p.curToken.Literal]:
			p.nextToken()

		case p.curIs(TokenIdent) && (p.curToken.Literal == "struct" || p.curToken.Literal == "union"):
			if len(words) != 0 {
				p.addError("unexpected %q before %s", strings.Join(words, " "), p.curToken.Literal)
				return spec, false
			}
			agg, ok := p.parseAggregateSpecifier()
			if !ok {
				return spec, false
			}
			spec.base = agg
			// Trailing qualifiers after the specifier.
			p.consumeTrailingQuals(&spec)
			return spec, true

		case p.curIs(TokenIdent) && p.curToken.Literal == "enum":
			if len(words) != 0 {
				p.addError("unexpected %q before enum", strings.Join(words, " "))
				return spec, false
			}
			e, ok := p.parseEnumSpecifier()
			if !ok {
				return spec, false
			}
			spec.base = e
			p.consumeTrailingQuals(&spec)
			return spec, true

		case p.curIs(TokenIdent) && baseTypeWords[p.curToken.Literal]:
			words = append(words, p.curToken.Literal)
			p.nextToken()

		case p.curIs(TokenIdent):
			// A typedef name or a primitive alias, but only if we have not
			// already consumed base type words ("unsigned foo" is "unsigned"
			// plus declarator "foo").
			if len(words) == 0 {
				words = append(words, p.curToken.Literal)
				p.nextToken()
				p.consumeTrailingQuals(&spec)
				spec.base = &Named{Name: words[0]}
				return spec, true
			}
			spec.base = &Named{Name: strings.Join(words, " ")}
			return spec, true

		default:
			if len(words) == 0 {
				p.addError("expected declaration specifiers, got %s", p.curToken.Type)
				return spec, false
			}
			spec.base = &Named{Name: strings.Join(words, " ")}
			return spec, true
		}
	}
}

func (p *Parser) consumeTrailingQuals(spec *specInfo) {
	for p.curIs(TokenIdent) {
		if p.curToken.Literal == "const" {
			spec.baseConst = true
			p.nextToken()
		} else if ignoredSpecWords[p.curToken.Literal] {
			p.nextToken()
		} else {
			return
		}
	}
}

// parseAggregateSpecifier parses "struct [tag] [{ fields }]".
func (p *Parser) parseAggregateSpecifier() (*Aggregate, bool) {
	kind := StructKind
	if p.curToken.Literal == "union" {
		kind = UnionKind
	}
	p.nextToken()

	agg := &Aggregate{Kind: kind}
	if p.curIs(TokenIdent) && !ignoredSpecWords[p.curToken.Literal] {
		agg.Tag = p.curToken.Literal
		p.nextToken()
	}

	if !p.curIs(TokenLBrace) {
		return agg, true
	}
	p.nextToken()
	agg.Defined = true

	for !p.curIs(TokenRBrace) && !p.curIs(TokenEOF) {
		if p.curIs(TokenSemi) {
			p.nextToken()
			continue
		}
		fields, ok := p.parseFieldLine()
		if !ok {
			return nil, false
		}
		agg.Fields = append(agg.Fields, fields...)
	}
	if !p.expect(TokenRBrace) {
		return nil, false
	}
	return agg, true
}

// parseFieldLine parses one "type declarator [, declarator]* ;" member line,
// including bitfields and anonymous nested aggregates.
func (p *Parser) parseFieldLine() ([]Field, bool) {
	spec, ok := p.parseDeclSpecifiers()
	if !ok {
		return nil, false
	}

	// Anonymous member: "struct { ... };" with no declarator.
	if p.curIs(TokenSemi) {
		p.nextToken()
		return []Field{{Name: "", Type: spec.base}}, true
	}

	var fields []Field
	for {
		// Unnamed padding bitfield ": 3".
		if p.curIs(TokenColon) {
			w := p.parseBitfieldWidth()
			fields = append(fields, Field{Name: "", Type: &Bitfield{Base: spec.base, Width: w}})
		} else {
			d, ok := p.parseDeclarator(false)
			if !ok {
				return nil, false
			}
			ty := buildType(d, spec.base, spec.baseConst)
			if p.curIs(TokenColon) {
				w := p.parseBitfieldWidth()
				ty = &Bitfield{Base: ty, Width: w}
			}
			fields = append(fields, Field{Name: d.name, Type: ty})
		}

		if p.curIs(TokenComma) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expect(TokenSemi) {
		return nil, false
	}
	return fields, true
}

func (p *Parser) parseBitfieldWidth() int {
	p.nextToken() // ':'
	w := 0
	if p.curIs(TokenNumber) {
		w, _ = strconv.Atoi(p.curToken.Literal)
		p.nextToken()
	} else {
		// Non-literal width; skip the expression.
		for !p.curIs(TokenSemi) && !p.curIs(TokenComma) && !p.curIs(TokenEOF) {
			p.nextToken()
		}
	}
	return w
}

// parseEnumSpecifier parses "enum [tag] [{ A, B = expr, ... }]".
func (p *Parser) parseEnumSpecifier() (*EnumSpec, bool) {
	p.nextToken() // "enum"

	e := &EnumSpec{}
	if p.curIs(TokenIdent) {
		e.Tag = p.curToken.Literal
		p.nextToken()
	}
	if !p.curIs(TokenLBrace) {
		return e, true
	}
	p.nextToken()
	e.Defined = true

	for !p.curIs(TokenRBrace) && !p.curIs(TokenEOF) {
		if !p.curIs(TokenIdent) {
			p.addError("expected enumerator name, got %s", p.curToken.Type)
			return nil, false
		}
		e.Enumerators = append(e.Enumerators, p.curToken.Literal)
		p.nextToken()

		if p.curIs(TokenAssign) {
			// Skip the constant expression.
			depth := 0
			p.nextToken()
			for !p.curIs(TokenEOF) {
				if p.curIs(TokenLParen) {
					depth++
				} else if p.curIs(TokenRParen) {
					depth--
				} else if depth == 0 && (p.curIs(TokenComma) || p.curIs(TokenRBrace)) {
					break
				}
				p.nextToken()
			}
		}
		if p.curIs(TokenComma) {
			p.nextToken()
		}
	}
	if !p.expect(TokenRBrace) {
		return nil, false
	}
	return e, true
}

// declarator is the parsed shape of one declarator before its type is
// assembled against a base type.
type declarator struct {
	name     string
	pointers []bool // const qualifier following each '*'
	suffixes []declSuffix
	inner    *declarator // grouped "(*name)" declarator
}

type declSuffix struct {
	isFunc   bool
	params   []Param
	variadic bool
	vla      bool
}

// isFunction reports whether this declarator declares a function (as
// opposed to a variable of function pointer type).
func (d *declarator) isFunction() bool {
	return d.inner == nil && len(d.suffixes) > 0 && d.suffixes[0].isFunc
}

// parseDeclarator parses "* const * (inner) name [dims] (params)".
// abstract permits a missing name (parameter declarators).
func (p *Parser) parseDeclarator(abstract bool) (*declarator, bool) {
	d := &declarator{}

	for p.curIs(TokenStar) {
		p.nextToken()
		constAfter := false
		for p.curIs(TokenIdent) && (p.curToken.Literal == "const" || ignoredSpecWords[p.curToken.Literal]) {
			if p.curToken.Literal == "const" {
				constAfter = true
			}
			p.nextToken()
		}
		d.pointers = append(d.pointers, constAfter)
	}

	switch {
	case p.curIs(TokenIdent) && !ignoredSpecWords[p.curToken.Literal] && p.curToken.Literal != "const":
		d.name = p.curToken.Literal
		p.nextToken()
	case p.curIs(TokenLParen) && p.groupedDeclaratorAhead():
		p.nextToken()
		inner, ok := p.parseDeclarator(abstract)
		if !ok {
			return nil, false
		}
		if !p.expect(TokenRParen) {
			return nil, false
		}
		d.inner = inner
	default:
		if !abstract {
			p.addError("expected declarator name, got %s", p.curToken.Type)
			return nil, false
		}
	}

	for {
		switch {
		case p.curIs(TokenLBracket):
			p.nextToken()
			s := declSuffix{}
			// Qualifiers inside the brackets ("int a[static const 4]").
			for p.curIs(TokenIdent) && (p.curToken.Literal == "const" || ignoredSpecWords[p.curToken.Literal]) {
				p.nextToken()
			}
			switch {
			case p.curIs(TokenRBracket):
				// Incomplete dimension; decays like any array.
			case p.curIs(TokenNumber):
				p.nextToken()
				if !p.curIs(TokenRBracket) {
					s.vla = true
				}
			default:
				s.vla = true
			}
			for !p.curIs(TokenRBracket) && !p.curIs(TokenEOF) {
				p.nextToken()
			}
			if !p.expect(TokenRBracket) {
				return nil, false
			}
			d.suffixes = append(d.suffixes, s)

		case p.curIs(TokenLParen):
			p.nextToken()
			params, variadic, ok := p.parseParamList()
			if !ok {
				return nil, false
			}
			d.suffixes = append(d.suffixes, declSuffix{isFunc: true, params: params, variadic: variadic})

		default:
			return d, true
		}
	}
}

// groupedDeclaratorAhead distinguishes "(*f)" from a parameter list "(int)".
func (p *Parser) groupedDeclaratorAhead() bool {
	if p.peekToken.Type == TokenStar {
		return true
	}
	// "(name)" where name is not a type word is a grouped declarator.
	if p.peekToken.Type == TokenIdent {
		lit := p.peekToken.Literal
		return !baseTypeWords[lit] && lit != "struct" && lit != "union" && lit != "enum" &&
			lit != "const" && !ignoredSpecWords[lit] && !looksLikeTypeName(lit)
	}
	return false
}

// looksLikeTypeName is a light heuristic for common typedef spellings used
// in unnamed parameter positions ("void f(size_t)").
func looksLikeTypeName(s string) bool {
	return strings.HasSuffix(s, "_t") || s == "FILE" || s == "va_list"
}

// parseParamList parses a prototype's parameters up to the closing paren.
func (p *Parser) parseParamList() ([]Param, bool, bool) {
	var params []Param
	variadic := false

	if p.curIs(TokenRParen) {
		p.nextToken()
		return nil, false, true
	}

	for {
		if p.curIs(TokenEllipsis) {
			variadic = true
			p.nextToken()
			break
		}

		spec, ok := p.parseDeclSpecifiers()
		if !ok {
			return nil, false, false
		}

		// "(void)" means no parameters.
		if n, isNamed := spec.base.(*Named); isNamed && n.Name == "void" &&
			p.curIs(TokenRParen) && len(params) == 0 {
			break
		}

		d, ok := p.parseDeclarator(true)
		if !ok {
			return nil, false, false
		}
		params = append(params, Param{Name: d.name, Type: buildType(d, spec.base, spec.baseConst)})

		if p.curIs(TokenComma) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expect(TokenRParen) {
		return nil, false, false
	}
	return params, variadic, true
}

// buildType assembles a declarator's type against the base type from the
// declaration specifiers. Pointers bind first, then suffixes outside-in,
// then any grouped inner declarator.
func buildType(d *declarator, base TypeExpr, baseConst bool) TypeExpr {
	cur := base
	curConst := baseConst
	for _, constAfter := range d.pointers {
		cur = &Pointer{Elem: cur, ConstElem: curConst}
		curConst = constAfter
	}
	for i := len(d.suffixes) - 1; i >= 0; i-- {
		s := d.suffixes[i]
		if s.isFunc {
			cur = &FuncPtr{Params: s.params, Return: cur, Variadic: s.variadic}
		} else {
			cur = &Array{Elem: cur, ConstElem: curConst, VLA: s.vla}
		}
	}
	if d.inner != nil {
		return buildType(d.inner, cur, false)
	}
	return cur
}

// declaratorName returns the name declared by d, looking through grouping.
func declaratorName(d *declarator) string {
	for d.inner != nil {
		d = d.inner
	}
	return d.name
}

// parseDeclaration parses one top-level declaration, which may expand to
// several Decl nodes ("struct x { ... } a, b;").
func (p *Parser) parseDeclaration() []Decl {
	spec, ok := p.parseDeclSpecifiers()
	if !ok {
		return nil
	}

	var decls []Decl

	// Bare tag declaration or definition with no declarators.
	if p.curIs(TokenSemi) {
		p.nextToken()
		switch b := spec.base.(type) {
		case *Aggregate:
			decls = append(decls, &AggregateDecl{Aggregate: b})
		case *EnumSpec:
			decls = append(decls, &EnumDecl{Enum: b})
		}
		return decls
	}

	// A named aggregate definition used as a declaration's base type is a
	// declaration of the tag in its own right; split it out so the walker
	// sees the definition exactly once. Typedefs keep the definition inline
	// (the typedef pass treats the typedef as the primary name).
	base := spec.base
	if agg, isAgg := base.(*Aggregate); isAgg && agg.Defined && agg.Tag != "" && !spec.isTypedef {
		decls = append(decls, &AggregateDecl{Aggregate: agg})
		base = &Aggregate{Kind: agg.Kind, Tag: agg.Tag}
	}
	if e, isEnum := base.(*EnumSpec); isEnum && e.Defined && !spec.isTypedef {
		decls = append(decls, &EnumDecl{Enum: e})
		base = &EnumSpec{Tag: e.Tag}
	}

	first := true
	for {
		d, ok := p.parseDeclarator(false)
		if !ok {
			return decls
		}
		name := declaratorName(d)

		switch {
		case spec.isTypedef:
			decls = append(decls, &TypedefDecl{Name: name, Type: buildType(d, base, spec.baseConst)})

		case d.isFunction():
			cur, curConst := base, spec.baseConst
			for _, constAfter := range d.pointers {
				cur = &Pointer{Elem: cur, ConstElem: curConst}
				curConst = constAfter
			}
			fn := &FuncDecl{
				Name:     name,
				Return:   cur,
				Params:   d.suffixes[0].params,
				Variadic: d.suffixes[0].variadic,
			}
			decls = append(decls, fn)

			// Function definition: skip the body.
			if first && p.curIs(TokenLBrace) {
				depth := 0
				for !p.curIs(TokenEOF) {
					if p.curIs(TokenLBrace) {
						depth++
					} else if p.curIs(TokenRBrace) {
						depth--
						if depth == 0 {
							p.nextToken()
							return decls
						}
					}
					p.nextToken()
				}
				return decls
			}

		default:
			decls = append(decls, &VarDecl{Name: name, Type: buildType(d, base, spec.baseConst)})
			// Skip any initializer.
			if p.curIs(TokenAssign) {
				depth := 0
				for !p.curIs(TokenEOF) {
					if p.curIs(TokenLBrace) || p.curIs(TokenLParen) || p.curIs(TokenLBracket) {
						depth++
					} else if p.curIs(TokenRBrace) || p.curIs(TokenRParen) || p.curIs(TokenRBracket) {
						depth--
					} else if depth == 0 && (p.curIs(TokenComma) || p.curIs(TokenSemi)) {
						break
					}
					p.nextToken()
				}
			}
		}

		first = false
		if p.curIs(TokenComma) {
			p.nextToken()
			continue
		}
		break
	}

	p.expect(TokenSemi)
	return decls
}
