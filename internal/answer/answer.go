// Package answer compares a learner's free-text answer with a reference
// solution. The comparison is deterministic: the same pair of inputs always
// produces the same verdict.
package answer

import (
	"math/big"
	"sort"
	"strings"
	"unicode"
)

// Checker decides whether a learner's answer matches the reference solution.
type Checker interface {
	Check(learner, reference string) bool
}

// CheckerFunc adapts an ordinary function to the Checker interface.
type CheckerFunc func(learner, reference string) bool

// Check calls f(learner, reference).
func (f CheckerFunc) Check(learner, reference string) bool { return f(learner, reference) }

// Default is the comparator used when no other checker is configured.
var Default Checker = CheckerFunc(Check)

// Check compares the learner's input against the reference solution.
//
// Normalization rules:
//   - Whitespace is ignored and comparison is case-insensitive
//   - Unicode operators and superscripts are folded ("3x²" matches "3x^2")
//   - A single left-hand side is dropped ("f'(x) = 6x + 2" matches "6x+2");
//     when both sides name one they must agree ("y = 5" does not match "x = 5")
//   - Relations are kept ("x <= 2" never matches "x >= 2")
//   - Numbers compare as exact rationals ("0.5" matches "1/2" and "2/4")
//   - Top-level sums are order-insensitive ("2 + 6x" matches "6x + 2")
//
// An empty answer is never correct.
func Check(learner, reference string) bool {
	lhsL, l := split(fold(learner))
	if l == "" {
		return false
	}
	lhsR, r := split(fold(reference))
	if lhsL != "" && lhsR != "" && lhsL != lhsR {
		return false
	}
	if l == r {
		return true
	}

	if lr, ok := parseRat(l); ok {
		if rr, ok := parseRat(r); ok {
			return lr.Cmp(rr) == 0
		}
		return false
	}

	return canonicalSum(l) == canonicalSum(r)
}

// Normalize folds an answer into the canonical textual form used for
// comparison. It is exported so callers can show learners how their input
// was read.
func Normalize(s string) string {
	_, out := split(fold(s))
	return out
}

// fold lower-cases s, drops whitespace and rewrites unicode operators and
// superscripts into ASCII.
func fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	inSup := false
	for _, r := range s {
		if d, ok := superscripts[r]; ok {
			if !inSup {
				b.WriteByte('^')
				inSup = true
			}
			b.WriteString(d)
			continue
		}
		inSup = false
		if unicode.IsSpace(r) {
			continue
		}
		if rep, ok := operators[r]; ok {
			b.WriteString(rep)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// split separates a single "lhs =" from the answer and tidies the rest.
// An "=" that belongs to a relation ("<=", ">=", "!=") or appears more than
// once is left in place.
func split(s string) (lhs, rhs string) {
	if i := strings.IndexByte(s, '='); i >= 0 && strings.Count(s, "=") == 1 &&
		(i == 0 || strings.IndexByte("<>!", s[i-1]) < 0) {
		lhs, s = dropImplicitTimes(s[:i]), s[i+1:]
	}
	s = dropImplicitTimes(s)
	return lhs, strings.TrimPrefix(s, "+")
}

var superscripts = map[rune]string{
	'⁰': "0", '¹': "1", '²': "2", '³': "3", '⁴': "4",
	'⁵': "5", '⁶': "6", '⁷': "7", '⁸': "8", '⁹': "9",
	'⁻': "-",
}

var operators = map[rune]string{
	'−': "-",
	'–': "-",
	'×': "*",
	'·': "*",
	'÷': "/",
	'≤': "<=",
	'≥': ">=",
	'≠': "!=",
}

// dropImplicitTimes removes "*" between a coefficient and a variable or
// group, so "6*x" and "6x" read the same.
func dropImplicitTimes(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		if r == '*' && i > 0 && i < len(rs)-1 &&
			unicode.IsDigit(rs[i-1]) && (unicode.IsLetter(rs[i+1]) || rs[i+1] == '(') {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseRat parses decimal integers, decimals and simple fractions. Exponents
// and base prefixes ("0x6") are not numbers here.
func parseRat(s string) (*big.Rat, bool) {
	if s == "" || strings.Trim(s, "0123456789.-/") != "" {
		return nil, false
	}
	if strings.Count(s, "/") == 1 {
		parts := strings.SplitN(s, "/", 2)
		num, ok1 := new(big.Rat).SetString(parts[0])
		den, ok2 := new(big.Rat).SetString(parts[1])
		if !ok1 || !ok2 || den.Sign() == 0 {
			return nil, false
		}
		return num.Quo(num, den), true
	}
	r, ok := new(big.Rat).SetString(s)
	return r, ok
}

// canonicalSum splits s into its top-level signed terms, rewrites numeric
// terms in lowest form and returns them sorted.
func canonicalSum(s string) string {
	terms := splitTerms(s)
	for i, t := range terms {
		sign, body := t[:1], t[1:]
		if r, ok := parseRat(body); ok {
			terms[i] = sign + r.RatString()
		}
	}
	sort.Strings(terms)
	return strings.Join(terms, "")
}

func splitTerms(s string) []string {
	var terms []string
	depth := 0
	sign := byte('+')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '+', '-':
			if depth != 0 {
				continue
			}
			if i == 0 {
				sign = c
				start = 1
				continue
			}
			if strings.IndexByte("^*/(", s[i-1]) >= 0 {
				continue
			}
			terms = append(terms, string(sign)+s[start:i])
			sign = c
			start = i + 1
		}
	}
	return append(terms, string(sign)+s[start:])
}
