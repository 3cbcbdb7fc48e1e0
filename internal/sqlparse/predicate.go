package sqlparse

import (
	"strings"

	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// Expr is a parsed predicate node. The parser produces an OR-of-ANDs tree
// with possible nesting from parenthesized groups; a row satisfies the
// predicate iff at least one OR branch has all its AND terms true.
type Expr interface {
	Match(row types.Record) bool
}

type orExpr []Expr

func (e orExpr) Match(row types.Record) bool {
	for _, branch := range e {
		if branch.Match(row) {
			return true
		}
	}
	return false
}

type andExpr []Expr

func (e andExpr) Match(row types.Record) bool {
	for _, clause := range e {
		if !clause.Match(row) {
			return false
		}
	}
	return true
}

type cmpExpr struct {
	field  string
	value  any
	negate bool
}

func (e cmpExpr) Match(row types.Record) bool {
	eq := valuesEqual(row[e.field], e.value)
	if e.negate {
		return !eq
	}
	return eq
}

// trueExpr stands in for a term the parser does not recognize. Unparseable
// terms match every row rather than failing the statement.
type trueExpr struct{}

func (trueExpr) Match(types.Record) bool { return true }

// parsePredicate builds the predicate tree for a WHERE clause. Placeholders
// consume params in textual order: OR branches are parsed left to right, so
// each branch draws exactly its own placeholders from the shared cursor.
func parsePredicate(condition string, params []any) Expr {
	cur := &paramCursor{params: params}
	return parseOr(condition, cur)
}

func parseOr(condition string, cur *paramCursor) Expr {
	branches := splitKeyword(condition, "OR")
	if len(branches) == 1 {
		return parseAnd(branches[0], cur)
	}
	out := make(orExpr, 0, len(branches))
	for _, b := range branches {
		out = append(out, parseAnd(b, cur))
	}
	return out
}

func parseAnd(condition string, cur *paramCursor) Expr {
	clauses := splitKeyword(condition, "AND")
	if len(clauses) == 1 {
		return parseTerm(clauses[0], cur)
	}
	out := make(andExpr, 0, len(clauses))
	for _, c := range clauses {
		out = append(out, parseTerm(c, cur))
	}
	return out
}

func parseTerm(term string, cur *paramCursor) Expr {
	t := strings.TrimSpace(term)
	if inner, ok := outerParens(t); ok {
		return parseOr(inner, cur)
	}
	if idx := strings.Index(t, "!="); idx >= 0 {
		return comparison(t[:idx], t[idx+2:], true, cur)
	}
	if idx := strings.Index(t, "="); idx >= 0 {
		return comparison(t[:idx], t[idx+1:], false, cur)
	}
	return trueExpr{}
}

func comparison(field, value string, negate bool, cur *paramCursor) Expr {
	e := cmpExpr{field: strings.TrimSpace(field), negate: negate}
	v := strings.TrimSpace(value)
	if v == "?" {
		e.value = cur.take()
	} else {
		e.value = unquote(v)
	}
	return e
}

// splitKeyword splits condition on a boolean keyword at parenthesis depth
// zero. Returns the original string as a single segment when the keyword
// is absent at the top level.
func splitKeyword(condition, keyword string) []string {
	upper := strings.ToUpper(condition)
	var parts []string
	last := 0
	offset := 0
	for {
		idx := keywordIndex(upper[offset:], keyword)
		if idx < 0 {
			break
		}
		abs := offset + idx
		parts = append(parts, condition[last:abs])
		last = abs + len(keyword)
		offset = last
	}
	parts = append(parts, condition[last:])
	return parts
}

// outerParens reports whether the whole term is one parenthesized group and
// returns its contents.
func outerParens(s string) (string, bool) {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return "", false
	}
	depth := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			inQuote = !inQuote
		case '(':
			if !inQuote {
				depth++
			}
		case ')':
			if !inQuote {
				depth--
				if depth == 0 && i != len(s)-1 {
					return "", false
				}
			}
		}
	}
	if depth != 0 {
		return "", false
	}
	return s[1 : len(s)-1], true
}
