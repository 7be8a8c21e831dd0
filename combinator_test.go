package main

import (
	"testing"

	"github.com/nalgeon/be"
)

// The framework is generic over the input element; runes keep these tests
// independent of the rue token set.

func runes(s string) []rune { return []rune(s) }

func TestSatisfyConsumesOneMatch(t *testing.T) {
	digit := Satisfy(func(r rune) bool { return '0' <= r && r <= '9' })

	rest, out, ok := digit(runes("7x"))
	be.True(t, ok)
	be.Equal(t, out, '7')
	be.Equal(t, rest, runes("x"))
}

func TestSatisfyFailsWithoutConsuming(t *testing.T) {
	digit := Satisfy(func(r rune) bool { return '0' <= r && r <= '9' })

	in := runes("x7")
	rest, _, ok := digit(in)
	be.True(t, !ok)
	be.Equal(t, rest, in)

	_, _, ok = digit(nil)
	be.True(t, !ok)
}

func TestLit(t *testing.T) {
	rest, out, ok := Lit('a')(runes("ab"))
	be.True(t, ok)
	be.Equal(t, out, 'a')
	be.Equal(t, rest, runes("b"))

	_, _, ok = Lit('a')(runes("ba"))
	be.True(t, !ok)
}

func TestSeq(t *testing.T) {
	p := Seq('l', 'e', 't')

	rest, out, ok := p(runes("let x"))
	be.True(t, ok)
	be.Equal(t, out, runes("let"))
	be.Equal(t, rest, runes(" x"))

	in := runes("lex")
	rest, _, ok = p(in)
	be.True(t, !ok)
	be.Equal(t, rest, in)

	_, _, ok = p(runes("le"))
	be.True(t, !ok)
}

func TestPure(t *testing.T) {
	in := runes("abc")
	rest, out, ok := Pure[rune](42)(in)
	be.True(t, ok)
	be.Equal(t, out, 42)
	be.Equal(t, rest, in)
}

func TestBindSequences(t *testing.T) {
	// Parse a letter, then require its uppercase twin.
	p := Bind(Satisfy(func(r rune) bool { return 'a' <= r && r <= 'z' }),
		func(lower rune) Parser[rune, rune] {
			return Lit(lower - 32)
		})

	rest, out, ok := p(runes("aAz"))
	be.True(t, ok)
	be.Equal(t, out, 'A')
	be.Equal(t, rest, runes("z"))
}

func TestBindBacktracksOnSecondFailure(t *testing.T) {
	p := Bind(Lit('a'), func(rune) Parser[rune, rune] { return Lit('b') })

	in := runes("ac")
	rest, _, ok := p(in)
	be.True(t, !ok)
	// Failure anywhere in the sequence restores the original position.
	be.Equal(t, rest, in)
}

func TestMap(t *testing.T) {
	p := Map(Lit('3'), func(r rune) int { return int(r - '0') })

	rest, out, ok := p(runes("3!"))
	be.True(t, ok)
	be.Equal(t, out, 3)
	be.Equal(t, rest, runes("!"))
}

func TestThenAndSkip(t *testing.T) {
	rest, out, ok := Then(Lit('('), Lit('x'))(runes("(x"))
	be.True(t, ok)
	be.Equal(t, out, 'x')
	be.Equal(t, len(rest), 0)

	rest, out, ok = Skip(Lit('x'), Lit(')'))(runes("x)"))
	be.True(t, ok)
	be.Equal(t, out, 'x')
	be.Equal(t, len(rest), 0)
}

func TestOrTriesSecondFromOriginalPosition(t *testing.T) {
	// The first alternative consumes 'a' before failing; the second must
	// still see the 'a'.
	ab := Bind(Lit('a'), func(rune) Parser[rune, rune] { return Lit('b') })
	ac := Bind(Lit('a'), func(rune) Parser[rune, rune] { return Lit('c') })
	p := Or(ab, ac)

	rest, out, ok := p(runes("ac"))
	be.True(t, ok)
	be.Equal(t, out, 'c')
	be.Equal(t, len(rest), 0)
}

func TestOrFirstAlternativeWinsTies(t *testing.T) {
	p := Or(
		Map(Lit('a'), func(rune) string { return "first" }),
		Map(Lit('a'), func(rune) string { return "second" }),
	)

	_, out, ok := p(runes("a"))
	be.True(t, ok)
	be.Equal(t, out, "first")
}

func TestChoice(t *testing.T) {
	p := Choice(Lit('a'), Lit('b'), Lit('c'))

	_, out, ok := p(runes("c"))
	be.True(t, ok)
	be.Equal(t, out, 'c')

	in := runes("d")
	rest, _, ok := p(in)
	be.True(t, !ok)
	be.Equal(t, rest, in)
}

func TestManyStopsAtFirstFailure(t *testing.T) {
	digit := Satisfy(func(r rune) bool { return '0' <= r && r <= '9' })

	rest, out, ok := Many(digit)(runes("123ab"))
	be.True(t, ok)
	be.Equal(t, out, []rune("123"))
	be.Equal(t, rest, runes("ab"))
}

func TestManyNeverFails(t *testing.T) {
	digit := Satisfy(func(r rune) bool { return '0' <= r && r <= '9' })

	in := runes("abc")
	rest, out, ok := Many(digit)(in)
	be.True(t, ok)
	be.Equal(t, len(out), 0)
	be.Equal(t, rest, in)
}

func TestManyRefusesEmptySuccess(t *testing.T) {
	// A parser that succeeds without consuming is a caller error under Many;
	// the loop must stop rather than spin.
	rest, out, ok := Many(Pure[rune]('x'))(runes("abc"))
	be.True(t, ok)
	be.Equal(t, len(out), 0)
	be.Equal(t, rest, runes("abc"))
}
