package lexer

// Lexer scans Burn source code and produces tokens
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
}

// New creates a new Lexer instance
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character and advances the position
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII code for NUL
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	if l.readPosition <= len(l.input) {
		l.readPosition++
	}
}

// peekChar returns the next character without advancing the position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// skipWhitespace skips blanks. Newlines are tokens and are not skipped.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || (l.ch == '\r' && l.peekChar() != '\n') {
		l.readChar()
	}
}

// skipSingleLineComment skips a // comment, leaving the newline in place
func (l *Lexer) skipSingleLineComment() {
	for l.ch != '\n' && !l.atEnd() {
		l.readChar()
	}
}

// skipMultiLineComment skips a /* */ comment. It reports whether the
// comment spanned a line break and whether it was terminated.
func (l *Lexer) skipMultiLineComment() (sawNewline, ok bool) {
	// Already read '/*'
	for !l.atEnd() {
		if l.ch == '\n' {
			sawNewline = true
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return sawNewline, true
		}
		l.readChar()
	}
	return sawNewline, false
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads a numeric literal (integer or float)
func (l *Lexer) readNumber() (string, TokenType) {
	position := l.position

	if l.ch == '0' && isBasePrefix(l.peekChar()) {
		l.readChar() // '0'
		l.readChar() // base letter
		for isHexDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		return l.input[position:l.position], INT
	}

	tokenType := INT
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}

	// Fractional part only when a digit follows the dot, so `1.foo` stays INT DOT IDENT
	if l.ch == '.' && isDigit(l.peekChar()) {
		tokenType = FLOAT
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && l.readPosition+1 < len(l.input) && isDigit(l.input[l.readPosition+1])) {
			tokenType = FLOAT
			l.readChar() // e
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return l.input[position:l.position], tokenType
}

// readString reads a quoted string and returns the raw literal including
// its quotes. Escape sequences are left for the literal parser.
func (l *Lexer) readString() (string, bool) {
	quote := l.ch
	position := l.position

	for {
		l.readChar()
		if l.atEnd() || l.ch == '\n' {
			return l.input[position:l.position], false
		}
		if l.ch == '\\' {
			l.readChar()
			if l.atEnd() || l.ch == '\n' {
				return l.input[position:l.position], false
			}
			continue
		}
		if l.ch == quote {
			break
		}
	}

	literal := l.input[position : l.position+1]
	l.readChar() // closing quote
	return literal, true
}

// NextToken returns the next token from the input. Once the input is
// exhausted every call returns EOF.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	offset := l.position
	if l.atEnd() {
		return Token{Type: EOF, Offset: len(l.input)}
	}

	single := func(tt TokenType) Token {
		tok := Token{Type: tt, Literal: string(l.ch), Offset: offset}
		l.readChar()
		return tok
	}
	double := func(tt TokenType) Token {
		tok := Token{Type: tt, Literal: l.input[offset : offset+2], Offset: offset}
		l.readChar()
		l.readChar()
		return tok
	}

	switch l.ch {
	case '\n':
		return single(NEWLINE)
	case '\r':
		// \r\n
		l.readChar()
		tok := Token{Type: NEWLINE, Literal: "\r\n", Offset: offset}
		l.readChar()
		return tok
	case '=':
		if l.peekChar() == '=' {
			return double(EQ)
		}
		return single(ASSIGN)
	case '!':
		if l.peekChar() == '=' {
			return double(NEQ)
		}
		return single(ILLEGAL)
	case '<':
		if l.peekChar() == '=' {
			return double(LEQ)
		}
		return single(LT)
	case '>':
		if l.peekChar() == '=' {
			return double(GEQ)
		}
		return single(GT)
	case '+':
		return single(PLUS)
	case '-':
		return single(MINUS)
	case '*':
		return single(STAR)
	case '|':
		return single(PIPE)
	case '/':
		if l.peekChar() == '/' {
			l.skipSingleLineComment()
			return l.NextToken()
		}
		if l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			sawNewline, ok := l.skipMultiLineComment()
			if !ok {
				return Token{Type: ILLEGAL, Literal: "unterminated comment", Offset: offset}
			}
			if sawNewline {
				// A comment spanning lines still separates statements
				return Token{Type: NEWLINE, Literal: "\n", Offset: offset}
			}
			return l.NextToken()
		}
		return single(SLASH)
	case '(':
		return single(LPAREN)
	case ')':
		return single(RPAREN)
	case '{':
		return single(LBRACE)
	case '}':
		return single(RBRACE)
	case ',':
		return single(COMMA)
	case '.':
		return single(DOT)
	case '"', '\'':
		str, ok := l.readString()
		if !ok {
			return Token{Type: ILLEGAL, Literal: "unterminated string", Offset: offset}
		}
		return Token{Type: STRING, Literal: str, Offset: offset}
	case '$':
		if !isLetter(l.peekChar()) {
			return single(ILLEGAL)
		}
		l.readChar() // '$'
		return Token{Type: VARIABLE, Literal: l.readIdentifier(), Offset: offset}
	}

	if isLetter(l.ch) {
		ident := l.readIdentifier()
		return Token{Type: LookupIdent(ident), Literal: ident, Offset: offset}
	}
	if isDigit(l.ch) {
		literal, tokenType := l.readNumber()
		return Token{Type: tokenType, Literal: literal, Offset: offset}
	}
	return single(ILLEGAL)
}

// Tokenize returns all tokens from the input, ending with EOF
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			break
		}
	}
	return tokens
}

// Helper functions

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func isBasePrefix(ch byte) bool {
	switch ch {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}
