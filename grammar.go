package main

import "errors"

// ErrParse is reported when the token stream is not a well-formed program.
// The parse is all-or-nothing: no partial result, no position payload.
var ErrParse = errors.New("syntax error")

// Parse consumes the whole token stream and yields the program AST.
func Parse(tokens []Token) ([]Stat, error) {
	rest, stats, ok := Many[Token, Stat](parseStatement)(tokens)
	if !ok || len(rest) != 0 {
		return nil, ErrParse
	}
	return stats, nil
}

func tok(k TokenKind) Parser[Token, Token] {
	return Satisfy(func(t Token) bool { return t.Kind == k })
}

var identText = Map(tok(IDENT), func(t Token) string { return t.Text })

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

var comparisonOps = map[TokenKind]BinOp{EQ: OpEq, NOT_EQ: OpNe, LT: OpLt}
var sumOps = map[TokenKind]BinOp{PLUS: OpAdd, MINUS: OpSub}
var productOps = map[TokenKind]BinOp{STAR: OpMul, SLASH: OpDiv}
var unaryOps = map[TokenKind]UnOp{NOT: OpNot, AMP: OpRef, STAR: OpDeref}

// binfix parses term (op term)* and folds the chain left-associatively, so
// a - b - c groups as (a - b) - c.
func binfix(term Parser[Token, Expr], ops map[TokenKind]BinOp) Parser[Token, Expr] {
	type opTerm struct {
		op  BinOp
		rhs Expr
	}
	operator := Satisfy(func(t Token) bool {
		_, found := ops[t.Kind]
		return found
	})
	tail := Bind(operator, func(op Token) Parser[Token, opTerm] {
		return Map(term, func(rhs Expr) opTerm {
			return opTerm{op: ops[op.Kind], rhs: rhs}
		})
	})
	return Bind(term, func(lhs Expr) Parser[Token, Expr] {
		return Map(Many(tail), func(tails []opTerm) Expr {
			e := lhs
			for _, t := range tails {
				e = &BinaryExpr{Op: t.op, Left: e, Right: t.rhs}
			}
			return e
		})
	})
}

func parseExpr(in []Token) ([]Token, Expr, bool) {
	return parseComparison(in)
}

func parseComparison(in []Token) ([]Token, Expr, bool) {
	return binfix(Parser[Token, Expr](parseBSum), comparisonOps)(in)
}

func parseBSum(in []Token) ([]Token, Expr, bool) {
	return binfix(Parser[Token, Expr](parseBProduct), sumOps)(in)
}

func parseBProduct(in []Token) ([]Token, Expr, bool) {
	return binfix(Parser[Token, Expr](parseUnary), productOps)(in)
}

func parseUnary(in []Token) ([]Token, Expr, bool) {
	operator := Satisfy(func(t Token) bool {
		_, found := unaryOps[t.Kind]
		return found
	})
	prefixed := Bind(operator, func(op Token) Parser[Token, Expr] {
		return Map(Parser[Token, Expr](parseAtom), func(e Expr) Expr {
			return &UnaryExpr{Op: unaryOps[op.Kind], Operand: e}
		})
	})
	return Or(prefixed, Parser[Token, Expr](parseAtom))(in)
}

func parseAtom(in []Token) ([]Token, Expr, bool) {
	paren := Then(tok(LPAREN),
		Skip(Parser[Token, Expr](parseExpr), tok(RPAREN)))
	return Choice(
		Map(Parser[Token, *CallExpr](parseCall), func(c *CallExpr) Expr { return c }),
		Map(tok(IDENT), func(t Token) Expr { return &VarExpr{Name: t.Text} }),
		Map(tok(INT), func(t Token) Expr { return &IntExpr{Value: t.Int} }),
		paren,
	)(in)
}

func parseCall(in []Token) ([]Token, *CallExpr, bool) {
	p := Bind(identText, func(name string) Parser[Token, *CallExpr] {
		args := Then(tok(LPAREN),
			Skip(Parser[Token, []Expr](parseArgs), tok(RPAREN)))
		return Map(args, func(args []Expr) *CallExpr {
			return &CallExpr{Name: name, Args: args}
		})
	})
	return p(in)
}

// parseArgs parses a possibly empty comma-separated argument list.
func parseArgs(in []Token) ([]Token, []Expr, bool) {
	some := Bind(Parser[Token, Expr](parseExpr), func(first Expr) Parser[Token, []Expr] {
		more := Many(Then(tok(COMMA), Parser[Token, Expr](parseExpr)))
		return Map(more, func(rest []Expr) []Expr {
			return append([]Expr{first}, rest...)
		})
	})
	return Or(some, Pure[Token, []Expr](nil))(in)
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

// parseStatement is an ordered choice; earlier alternatives win ties.
func parseStatement(in []Token) ([]Token, Stat, bool) {
	return Choice(
		Skip(Parser[Token, Stat](parseSimple), tok(SEMICOLON)),
		Map(Parser[Token, *BlockStat](parseBlock), func(b *BlockStat) Stat { return b }),
		Parser[Token, Stat](parseLabel),
		Parser[Token, Stat](parseIf),
		Parser[Token, Stat](parseFuncDecl),
	)(in)
}

// parseSimple parses the semicolon-terminated statement forms. The terminating
// semicolon belongs to parseStatement.
func parseSimple(in []Token) ([]Token, Stat, bool) {
	return Choice(
		Parser[Token, Stat](parseAssign),
		Parser[Token, Stat](parseAssert),
		Parser[Token, Stat](parseGoto),
		Map(Parser[Token, *CallExpr](parseCall), func(c *CallExpr) Stat { return c }),
		Map(Parser[Token, Expr](parseExpr), func(e Expr) Stat { return &ExprStat{X: e} }),
		Parser[Token, Stat](parseWhile),
		Parser[Token, Stat](parseLet),
		Parser[Token, Stat](parseReturn),
	)(in)
}

func parseAssign(in []Token) ([]Token, Stat, bool) {
	p := Bind(identText, func(name string) Parser[Token, Stat] {
		value := Then(tok(ASSIGN), Parser[Token, Expr](parseExpr))
		return Map(value, func(e Expr) Stat {
			return &AssignStat{Name: name, Value: e}
		})
	})
	return p(in)
}

func parseAssert(in []Token) ([]Token, Stat, bool) {
	p := Then(tok(ASSERT),
		Map(Parser[Token, Expr](parseExpr), func(e Expr) Stat {
			return &AssertStat{Cond: e}
		}))
	return p(in)
}

func parseGoto(in []Token) ([]Token, Stat, bool) {
	p := Then(tok(GOTO),
		Map(identText, func(name string) Stat {
			return &GotoStat{Label: name}
		}))
	return p(in)
}

func parseWhile(in []Token) ([]Token, Stat, bool) {
	p := Then(tok(WHILE),
		Bind(Parser[Token, Expr](parseExpr), func(cond Expr) Parser[Token, Stat] {
			return Map(Parser[Token, *BlockStat](parseBlock), func(body *BlockStat) Stat {
				return &WhileStat{Cond: cond, Body: body}
			})
		}))
	return p(in)
}

func parseLet(in []Token) ([]Token, Stat, bool) {
	p := Then(tok(LET),
		Bind(identText, func(name string) Parser[Token, Stat] {
			value := Then(tok(ASSIGN), Parser[Token, Expr](parseExpr))
			return Map(value, func(e Expr) Stat {
				return &LetStat{Name: name, Value: e}
			})
		}))
	return p(in)
}

func parseReturn(in []Token) ([]Token, Stat, bool) {
	p := Then(tok(RETURN),
		Map(Parser[Token, Expr](parseExpr), func(e Expr) Stat {
			return &ReturnStat{Value: e}
		}))
	return p(in)
}

func parseLabel(in []Token) ([]Token, Stat, bool) {
	p := Map(Skip(identText, tok(COLON)), func(name string) Stat {
		return &LabelStat{Name: name}
	})
	return p(in)
}

func parseIf(in []Token) ([]Token, Stat, bool) {
	elseBranch := Or(
		Then(tok(ELSE), Parser[Token, *BlockStat](parseBlock)),
		Pure[Token](&BlockStat{}))
	p := Then(tok(IF),
		Bind(Parser[Token, Expr](parseExpr), func(cond Expr) Parser[Token, Stat] {
			return Bind(Parser[Token, *BlockStat](parseBlock), func(then *BlockStat) Parser[Token, Stat] {
				return Map(elseBranch, func(els *BlockStat) Stat {
					return &IfStat{Cond: cond, Then: then, Else: els}
				})
			})
		}))
	return p(in)
}

func parseBlock(in []Token) ([]Token, *BlockStat, bool) {
	p := Then(tok(LBRACE),
		Skip(
			Map(Many[Token, Stat](parseStatement), func(stats []Stat) *BlockStat {
				return &BlockStat{Stats: stats}
			}),
			tok(RBRACE)))
	return p(in)
}

// parseParams parses a possibly empty comma-separated parameter name list.
func parseParams(in []Token) ([]Token, []string, bool) {
	some := Bind(identText, func(first string) Parser[Token, []string] {
		more := Many(Then(tok(COMMA), identText))
		return Map(more, func(rest []string) []string {
			return append([]string{first}, rest...)
		})
	})
	return Or(some, Pure[Token, []string](nil))(in)
}

func parseFuncDecl(in []Token) ([]Token, Stat, bool) {
	visibility := Or(
		Map(Or(tok(PUBLIC), tok(PRIVATE)), func(t Token) bool {
			return t.Kind == PUBLIC
		}),
		Pure[Token](false))
	p := Bind(visibility, func(public bool) Parser[Token, Stat] {
		return Then(tok(FUNCTION),
			Bind(identText, func(name string) Parser[Token, Stat] {
				params := Then(tok(LPAREN),
					Skip(Parser[Token, []string](parseParams), tok(RPAREN)))
				return Bind(params, func(params []string) Parser[Token, Stat] {
					return Map(Parser[Token, *BlockStat](parseBlock), func(body *BlockStat) Stat {
						return &FuncDecl{Public: public, Name: name, Params: params, Body: body}
					})
				})
			}))
	})
	return p(in)
}
