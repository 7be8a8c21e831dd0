package main

// Parser is a backtracking parser over an arbitrary input sequence. It either
// fails (ok == false, nothing consumed) or yields a value together with the
// remaining input. Failure carries no diagnostic payload.
type Parser[T, A any] func(in []T) (rest []T, out A, ok bool)

// Pure succeeds with v, consuming nothing.
func Pure[T, A any](v A) Parser[T, A] {
	return func(in []T) ([]T, A, bool) {
		return in, v, true
	}
}

// Satisfy consumes exactly one element matching pred, else fails without
// consuming.
func Satisfy[T any](pred func(T) bool) Parser[T, T] {
	return func(in []T) ([]T, T, bool) {
		var zero T
		if len(in) == 0 || !pred(in[0]) {
			return in, zero, false
		}
		return in[1:], in[0], true
	}
}

// Lit succeeds iff the next input element equals want.
func Lit[T comparable](want T) Parser[T, T] {
	return Satisfy(func(got T) bool { return got == want })
}

// Seq succeeds iff the next len(want) input elements equal want, in order.
func Seq[T comparable](want ...T) Parser[T, []T] {
	return func(in []T) ([]T, []T, bool) {
		if len(in) < len(want) {
			return in, nil, false
		}
		for i, w := range want {
			if in[i] != w {
				return in, nil, false
			}
		}
		return in[len(want):], in[:len(want)], true
	}
}

// Bind sequences p with a parser derived from p's value. Position advancement
// concatenates; the whole fails if either step fails.
func Bind[T, A, B any](p Parser[T, A], f func(A) Parser[T, B]) Parser[T, B] {
	return func(in []T) ([]T, B, bool) {
		var zero B
		mid, a, ok := p(in)
		if !ok {
			return in, zero, false
		}
		rest, b, ok := f(a)(mid)
		if !ok {
			return in, zero, false
		}
		return rest, b, true
	}
}

// Map transforms a successful parse result without affecting position.
func Map[T, A, B any](p Parser[T, A], f func(A) B) Parser[T, B] {
	return func(in []T) ([]T, B, bool) {
		var zero B
		rest, a, ok := p(in)
		if !ok {
			return in, zero, false
		}
		return rest, f(a), true
	}
}

// Then runs p then q, keeping q's value.
func Then[T, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, B] {
	return Bind(p, func(A) Parser[T, B] { return q })
}

// Skip runs p then q, keeping p's value.
func Skip[T, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, A] {
	return Bind(p, func(a A) Parser[T, A] {
		return Map(q, func(B) A { return a })
	})
}

// Or tries p; if it fails, tries q against the original input position.
// Backtracking is total: a failing p leaves no trace.
func Or[T, A any](p, q Parser[T, A]) Parser[T, A] {
	return func(in []T) ([]T, A, bool) {
		if rest, a, ok := p(in); ok {
			return rest, a, true
		}
		return q(in)
	}
}

// Choice is Or folded over any number of alternatives, first match wins.
func Choice[T, A any](ps ...Parser[T, A]) Parser[T, A] {
	return func(in []T) ([]T, A, bool) {
		var zero A
		for _, p := range ps {
			if rest, a, ok := p(in); ok {
				return rest, a, true
			}
		}
		return in, zero, false
	}
}

// Many applies p zero or more times, stopping at the first failure. It never
// fails itself. Each successful application must consume input: applying Many
// to a parser that can succeed on empty is a caller error, and the loop stops
// rather than spin.
func Many[T, A any](p Parser[T, A]) Parser[T, []A] {
	return func(in []T) ([]T, []A, bool) {
		var out []A
		for {
			rest, a, ok := p(in)
			if !ok || len(rest) == len(in) {
				return in, out, true
			}
			out = append(out, a)
			in = rest
		}
	}
}
