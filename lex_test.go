package main

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestIntLiteral(t *testing.T) {
	tokens, err := Lex("12345")
	be.Err(t, err, nil)
	be.Equal(t, len(tokens), 1)
	be.Equal(t, tokens[0].Kind, INT)
	be.Equal(t, tokens[0].Text, "12345")
	be.Equal(t, tokens[0].Int, int64(12345))
}

func TestIdentifier(t *testing.T) {
	tokens, err := Lex("foobar")
	be.Err(t, err, nil)
	be.Equal(t, len(tokens), 1)
	be.Equal(t, tokens[0].Kind, IDENT)
	be.Equal(t, tokens[0].Text, "foobar")
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenKind
	}{
		{"function", FUNCTION},
		{"if", IF},
		{"else", ELSE},
		{"return", RETURN},
		{"let", LET},
		{"while", WHILE},
		{"goto", GOTO},
		{"assert", ASSERT},
		{"public", PUBLIC},
		{"private", PRIVATE},
	}

	for _, tt := range tests {
		tokens, err := Lex(tt.input)
		be.Err(t, err, nil)
		be.Equal(t, len(tokens), 1)
		be.Equal(t, tokens[0].Kind, tt.expected)
	}
}

func TestPunctuation(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenKind
	}{
		{",", COMMA},
		{";", SEMICOLON},
		{"(", LPAREN},
		{")", RPAREN},
		{"{", LBRACE},
		{"}", RBRACE},
		{":", COLON},
	}

	for _, tt := range tests {
		tokens, err := Lex(tt.input)
		be.Err(t, err, nil)
		be.Equal(t, len(tokens), 1)
		be.Equal(t, tokens[0].Kind, tt.expected)
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenKind
	}{
		{"!", NOT},
		{"==", EQ},
		{"!=", NOT_EQ},
		{"<", LT},
		{"=", ASSIGN},
		{"+", PLUS},
		{"-", MINUS},
		{"*", STAR},
		{"/", SLASH},
		{"&", AMP},
	}

	for _, tt := range tests {
		tokens, err := Lex(tt.input)
		be.Err(t, err, nil)
		be.Equal(t, len(tokens), 1)
		be.Equal(t, tokens[0].Kind, tt.expected)
	}
}

func TestTwoCharOperatorsBeforeOneChar(t *testing.T) {
	tokens, err := Lex("a==b!=c")
	be.Err(t, err, nil)
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	be.Equal(t, kinds, []TokenKind{IDENT, EQ, IDENT, NOT_EQ, IDENT})
}

func TestWholeFunction(t *testing.T) {
	tokens, err := Lex("function main() { return 1 + 2; }")
	be.Err(t, err, nil)
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	be.Equal(t, kinds, []TokenKind{
		FUNCTION, IDENT, LPAREN, RPAREN, LBRACE,
		RETURN, INT, PLUS, INT, SEMICOLON,
		RBRACE,
	})
}

func TestLineComments(t *testing.T) {
	tokens, err := Lex("1 // a comment\n2")
	be.Err(t, err, nil)
	be.Equal(t, len(tokens), 2)
	be.Equal(t, tokens[0].Int, int64(1))
	be.Equal(t, tokens[1].Int, int64(2))
}

func TestWhitespaceInsensitive(t *testing.T) {
	a, err := Lex("let x=1;")
	be.Err(t, err, nil)
	b, err := Lex("let\n\tx =\r\n 1 ;")
	be.Err(t, err, nil)
	be.Equal(t, a, b)
}

func TestUnknownCharacter(t *testing.T) {
	_, err := Lex("let x = $;")
	be.True(t, err != nil)
}
