package main

import "fmt"

var keywords = map[string]TokenKind{
	"function": FUNCTION,
	"if":       IF,
	"else":     ELSE,
	"return":   RETURN,
	"let":      LET,
	"while":    WHILE,
	"goto":     GOTO,
	"assert":   ASSERT,
	"public":   PUBLIC,
	"private":  PRIVATE,
}

var singleCharTokens = map[byte]TokenKind{
	'=': ASSIGN, '!': NOT, '<': LT, '+': PLUS, '-': MINUS,
	'*': STAR, '/': SLASH, '&': AMP, ',': COMMA, ';': SEMICOLON,
	'(': LPAREN, ')': RPAREN, '{': LBRACE, '}': RBRACE, ':': COLON,
}

// Lexer scans rue source text into tokens. The input is null-terminated
// internally so the scanner never has to bounds-check a one-byte lookahead.
type Lexer struct {
	input []byte
	pos   int
}

func NewLexer(source string) *Lexer {
	return &Lexer{input: append([]byte(source), 0)}
}

// Lex scans the whole of source and returns its token sequence.
func Lex(source string) ([]Token, error) {
	l := NewLexer(source)
	var tokens []Token
	for {
		tok, ok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Next scans one token. ok is false at end of input.
func (l *Lexer) Next() (tok Token, ok bool, err error) {
	l.skipWhitespace()

	c := l.input[l.pos]
	switch {
	case c == 0:
		return Token{}, false, nil

	case c == '/' && l.input[l.pos+1] == '/':
		l.skipLineComment()
		return l.Next()

	case isLetter(c):
		lit := l.readIdentifier()
		if kind, isKeyword := keywords[lit]; isKeyword {
			return Token{Kind: kind, Text: lit}, true, nil
		}
		return Token{Kind: IDENT, Text: lit}, true, nil

	case isDigit(c):
		lit, val := l.readNumber()
		return Token{Kind: INT, Text: lit, Int: val}, true, nil
	}

	// Two-character operators before their one-character prefixes.
	if l.input[l.pos+1] == '=' {
		switch c {
		case '=':
			l.pos += 2
			return Token{Kind: EQ, Text: "=="}, true, nil
		case '!':
			l.pos += 2
			return Token{Kind: NOT_EQ, Text: "!="}, true, nil
		}
	}

	if kind, found := singleCharTokens[c]; found {
		l.pos++
		return Token{Kind: kind, Text: string(c)}, true, nil
	}

	return Token{}, false, fmt.Errorf("unexpected character %q", c)
}

func (l *Lexer) skipWhitespace() {
	for {
		c := l.input[l.pos]
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return
		}
		l.pos++
	}
}

func (l *Lexer) skipLineComment() {
	for l.input[l.pos] != '\n' && l.input[l.pos] != 0 {
		l.pos++
	}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.input[l.pos]) || isDigit(l.input[l.pos]) {
		l.pos++
	}
	return string(l.input[start:l.pos])
}

func (l *Lexer) readNumber() (string, int64) {
	start := l.pos
	var val int64
	for isDigit(l.input[l.pos]) {
		val = val*10 + int64(l.input[l.pos]-'0')
		l.pos++
	}
	return string(l.input[start:l.pos]), val
}
