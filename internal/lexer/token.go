package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF
	NEWLINE

	// Literals
	IDENT    // foo, Integer, std
	VARIABLE // $x
	INT      // 123, 0xff
	FLOAT    // 1.5, 2e10
	STRING   // "hello", 'hello'

	// Keywords
	USE
	LET
	PRINT
	RETURN
	THROW
	IF
	ELSE
	WHILE
	TRY
	CATCH
	FINALLY
	FUNCTION
	AND
	OR
	NOT
	IS
	TRUE
	FALSE
	NOTHING

	// Operators
	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /
	PIPE   // |
	EQ     // ==
	NEQ    // !=
	LT     // <
	GT     // >
	LEQ    // <=
	GEQ    // >=
	ASSIGN // =

	// Delimiters
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
	COMMA  // ,
	DOT    // .
)

// Token represents a lexical token. Offset is the byte offset of the
// token's first character in the source.
type Token struct {
	Type    TokenType
	Literal string
	Offset  int
}

// String returns a human readable form of the token, used in error messages.
func (t Token) String() string {
	switch t.Type {
	case IDENT:
		return fmt.Sprintf("identifier `%s`", t.Literal)
	case VARIABLE:
		return fmt.Sprintf("variable `$%s`", t.Literal)
	case INT, FLOAT, STRING:
		return fmt.Sprintf("%s `%s`", t.Type, t.Literal)
	case ILLEGAL:
		return fmt.Sprintf("illegal input `%s`", t.Literal)
	}
	return t.Type.String()
}

var tokenNames = map[TokenType]string{
	ILLEGAL:  "ILLEGAL",
	EOF:      "end of input",
	NEWLINE:  "newline",
	IDENT:    "identifier",
	VARIABLE: "variable",
	INT:      "integer",
	FLOAT:    "float",
	STRING:   "string",
	USE:      "`use`",
	LET:      "`let`",
	PRINT:    "`print`",
	RETURN:   "`return`",
	THROW:    "`throw`",
	IF:       "`if`",
	ELSE:     "`else`",
	WHILE:    "`while`",
	TRY:      "`try`",
	CATCH:    "`catch`",
	FINALLY:  "`finally`",
	FUNCTION: "`function`",
	AND:      "`and`",
	OR:       "`or`",
	NOT:      "`not`",
	IS:       "`is`",
	TRUE:     "`true`",
	FALSE:    "`false`",
	NOTHING:  "`nothing`",
	PLUS:     "`+`",
	MINUS:    "`-`",
	STAR:     "`*`",
	SLASH:    "`/`",
	PIPE:     "`|`",
	EQ:       "`==`",
	NEQ:      "`!=`",
	LT:       "`<`",
	GT:       "`>`",
	LEQ:      "`<=`",
	GEQ:      "`>=`",
	ASSIGN:   "`=`",
	LPAREN:   "`(`",
	RPAREN:   "`)`",
	LBRACE:   "`{`",
	RBRACE:   "`}`",
	COMMA:    "`,`",
	DOT:      "`.`",
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// keywords maps keyword strings to their token types
var keywords = map[string]TokenType{
	"use":      USE,
	"let":      LET,
	"print":    PRINT,
	"return":   RETURN,
	"throw":    THROW,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"try":      TRY,
	"catch":    CATCH,
	"finally":  FINALLY,
	"function": FUNCTION,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
	"is":       IS,
	"true":     TRUE,
	"false":    FALSE,
	"nothing":  NOTHING,
}

// LookupIdent checks if an identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether s is a reserved word.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}
