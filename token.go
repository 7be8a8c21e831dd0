package main

import "fmt"

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	// Keywords
	FUNCTION TokenKind = iota
	IF
	ELSE
	RETURN
	LET
	WHILE
	GOTO
	ASSERT
	PUBLIC
	PRIVATE

	// Punctuation
	COMMA
	SEMICOLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	COLON

	// Literals
	INT
	IDENT

	// Operators
	NOT
	EQ
	NOT_EQ
	LT
	ASSIGN
	PLUS
	MINUS
	STAR
	SLASH
	AMP
)

var tokenNames = map[TokenKind]string{
	FUNCTION:  "function",
	IF:        "if",
	ELSE:      "else",
	RETURN:    "return",
	LET:       "let",
	WHILE:     "while",
	GOTO:      "goto",
	ASSERT:    "assert",
	PUBLIC:    "public",
	PRIVATE:   "private",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	COLON:     ":",
	INT:       "integer",
	IDENT:     "identifier",
	NOT:       "!",
	EQ:        "==",
	NOT_EQ:    "!=",
	LT:        "<",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	AMP:       "&",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one lexical unit. Text holds the source spelling; Int is only
// meaningful when Kind == INT.
type Token struct {
	Kind TokenKind
	Text string
	Int  int64
}

func (t Token) String() string {
	switch t.Kind {
	case INT, IDENT:
		return t.Text
	default:
		return t.Kind.String()
	}
}
