package parser

// TokenType identifies a lexical class. C keywords are folded into Ident;
// the parser decides what is a keyword in context.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenNumber
	TokenString
	TokenChar
	TokenStar
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemi
	TokenComma
	TokenColon
	TokenAssign
	TokenEllipsis
	TokenOther
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIdent:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenChar:
		return "char"
	case TokenStar:
		return "'*'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenLBrace:
		return "'{'"
	case TokenRBrace:
		return "'}'"
	case TokenLBracket:
		return "'['"
	case TokenRBracket:
		return "']'"
	case TokenSemi:
		return "';'"
	case TokenComma:
		return "','"
	case TokenColon:
		return "':'"
	case TokenAssign:
		return "'='"
	case TokenEllipsis:
		return "'...'"
	default:
		return "token"
	}
}

// Token is one lexical unit with its source position.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
}

// Lexer walks preprocessor-expanded C text. Comments and preprocessor
// linemarkers are skipped so the same lexer also works on raw headers in
// tests.
type Lexer struct {
	src  string
	pos  int
	line int
	col  int
}

// NewLexer returns a Lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) skipToLineEnd() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
}

func (l *Lexer) skipIgnored() {
	for l.pos < len(l.src) {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '#' && l.col == 1:
			// Preprocessor linemarker or stray directive.
			l.skipToLineEnd()
		case c == '/' && l.peekAt(1) == '/':
			l.skipToLineEnd()
		case c == '/' && l.peekAt(1) == '*':
			l.advance()
			l.advance()
			for l.pos < len(l.src) {
				if l.peek() == '*' && l.peekAt(1) == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// NextToken returns the next token, or a TokenEOF token at end of input.
func (l *Lexer) NextToken() Token {
	l.skipIgnored()

	tok := Token{Line: l.line, Col: l.col}
	if l.pos >= len(l.src) {
		tok.Type = TokenEOF
		return tok
	}

	c := l.peek()
	switch {
	case isIdentStart(c):
		start := l.pos
		for l.pos < len(l.src) && isIdentPart(l.peek()) {
			l.advance()
		}
		tok.Type = TokenIdent
		tok.Literal = l.src[start:l.pos]
		return tok

	case isDigit(c) || (c == '.' && isDigit(l.peekAt(1))):
		start := l.pos
		for l.pos < len(l.src) {
			c := l.peek()
			if isIdentPart(c) || c == '.' ||
				((c == '+' || c == '-') && (l.src[l.pos-1] == 'e' || l.src[l.pos-1] == 'E' ||
					l.src[l.pos-1] == 'p' || l.src[l.pos-1] == 'P')) {
				l.advance()
				continue
			}
			break
		}
		tok.Type = TokenNumber
		tok.Literal = l.src[start:l.pos]
		return tok

	case c == '"' || c == '\'':
		quote := c
		start := l.pos
		l.advance()
		for l.pos < len(l.src) && l.peek() != quote {
			if l.peek() == '\\' {
				l.advance()
			}
			if l.pos < len(l.src) {
				l.advance()
			}
		}
		if l.pos < len(l.src) {
			l.advance()
		}
		if quote == '"' {
			tok.Type = TokenString
		} else {
			tok.Type = TokenChar
		}
		tok.Literal = l.src[start:l.pos]
		return tok

	case c == '.' && l.peekAt(1) == '.' && l.peekAt(2) == '.':
		l.advance()
		l.advance()
		l.advance()
		tok.Type = TokenEllipsis
		tok.Literal = "..."
		return tok
	}

	l.advance()
	tok.Literal = string(c)
	switch c {
	case '*':
		tok.Type = TokenStar
	case '(':
		tok.Type = TokenLParen
	case ')':
		tok.Type = TokenRParen
	case '{':
		tok.Type = TokenLBrace
	case '}':
		tok.Type = TokenRBrace
	case '[':
		tok.Type = TokenLBracket
	case ']':
		tok.Type = TokenRBracket
	case ';':
		tok.Type = TokenSemi
	case ',':
		tok.Type = TokenComma
	case ':':
		tok.Type = TokenColon
	case '=':
		tok.Type = TokenAssign
	default:
		tok.Type = TokenOther
	}
	return tok
}
