// Package sqlparse translates the constrained SQL subset used by the
// data-access layer into structural intent the docstore backend can execute
// against an in-memory collection.
//
// The supported grammar is deliberately narrow:
//
//	INSERT [OR IGNORE] INTO <table> (<col>[, <col>...]) VALUES (<val-or-?>[, ...])
//	UPDATE <table> SET <col>=<val-or-?>[, ...] [WHERE <predicate>]
//	DELETE FROM <table> [WHERE <predicate>]
//	SELECT * FROM <table> [WHERE <predicate>] [ORDER BY <col> [ASC|DESC][, ...]]
//	<predicate> ::= <term> ( (AND|OR) <term> )*   parenthesized groups allowed,
//	                                              OR binds looser than AND
//	<term>      ::= <col> ('=' | '!=') ('?' | literal)
//
// Positional parameters bind to '?' placeholders in textual order. For
// UPDATE and DELETE the WHERE clause draws its parameters from the tail of
// the params slice (callers pass SET params first, WHERE params last);
// within a clause, placeholders still bind left to right.
//
// A statement that cannot be parsed is not an error: it yields a Statement
// with an empty Collection, which executes as a no-op. Validation happens
// one layer up.
package sqlparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// Kind identifies the statement class.
type Kind int

const (
	KindNone Kind = iota
	KindSelect
	KindInsert
	KindUpdate
	KindDelete
)

// Assignment is one SET clause element with its bound value.
type Assignment struct {
	Field string
	Value any
}

// OrderKey is one ORDER BY element.
type OrderKey struct {
	Field string
	Desc  bool
}

// Statement is the structural intent of a parsed statement with all
// parameters bound.
type Statement struct {
	Kind           Kind
	Collection     string
	Row            types.Record // INSERT: column -> bound value
	IgnoreConflict bool         // INSERT OR IGNORE
	Assignments    []Assignment // UPDATE, in source order
	Where          Expr         // nil matches every row
	Order          []OrderKey
}

var collectionRe = regexp.MustCompile(`(?i)\bFROM\s+(\w+)|\bINTO\s+(\w+)|\bUPDATE\s+(\w+)`)

// Parse translates a statement and binds params. It never returns an
// error; unparseable input yields an empty Collection.
func Parse(statement string, params []any) Statement {
	stmt := Statement{Kind: kindOf(statement)}
	if stmt.Kind == KindNone {
		return stmt
	}
	stmt.Collection = extractCollection(statement)
	if stmt.Collection == "" {
		return stmt
	}

	switch stmt.Kind {
	case KindInsert:
		parseInsert(statement, params, &stmt)
	case KindUpdate:
		parseUpdate(statement, params, &stmt)
	case KindDelete:
		where := clauseAfter(statement, "WHERE", "ORDER BY")
		if where != "" {
			stmt.Where = parsePredicate(where, params)
		}
	case KindSelect:
		where := clauseAfter(statement, "WHERE", "ORDER BY")
		if where != "" {
			stmt.Where = parsePredicate(where, params)
		}
		stmt.Order = parseOrder(statement)
	}
	return stmt
}

func kindOf(statement string) Kind {
	head := strings.ToUpper(strings.TrimSpace(statement))
	switch {
	case strings.HasPrefix(head, "SELECT"):
		return KindSelect
	case strings.HasPrefix(head, "INSERT"):
		return KindInsert
	case strings.HasPrefix(head, "UPDATE"):
		return KindUpdate
	case strings.HasPrefix(head, "DELETE"):
		return KindDelete
	default:
		return KindNone
	}
}

// extractCollection returns the first FROM/INTO/UPDATE target, in that
// priority order.
func extractCollection(statement string) string {
	m := collectionRe.FindStringSubmatch(statement)
	if m == nil {
		return ""
	}
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}

func parseInsert(statement string, params []any, stmt *Statement) {
	upper := strings.ToUpper(statement)
	stmt.IgnoreConflict = strings.Contains(upper, "INSERT OR IGNORE")

	valuesIdx := strings.Index(upper, "VALUES")
	if valuesIdx < 0 {
		stmt.Collection = ""
		return
	}
	cols, ok := parenSpan(statement[:valuesIdx])
	if !ok {
		stmt.Collection = ""
		return
	}
	vals, ok := parenSpan(statement[valuesIdx:])
	if !ok {
		stmt.Collection = ""
		return
	}

	fields := splitTop(cols, ',')
	values := splitTop(vals, ',')
	cur := &paramCursor{params: params}

	row := types.Record{}
	for i, f := range fields {
		if i >= len(values) {
			break
		}
		row[strings.TrimSpace(f)] = resolveValue(values[i], cur)
	}
	stmt.Row = row
}

func parseUpdate(statement string, params []any, stmt *Statement) {
	set := clauseAfter(statement, "SET", "WHERE")
	if set == "" {
		stmt.Collection = ""
		return
	}
	where := clauseAfter(statement, "WHERE", "ORDER BY")

	// WHERE placeholders bind from the tail of params; SET consumes the
	// remainder from the front.
	whereCount := strings.Count(where, "?")
	if whereCount > len(params) {
		whereCount = len(params)
	}
	setParams := params[:len(params)-whereCount]
	whereParams := params[len(params)-whereCount:]

	cur := &paramCursor{params: setParams}
	for _, part := range splitTop(set, ',') {
		eq := strings.Index(part, "=")
		if eq < 0 {
			continue
		}
		field := strings.TrimSpace(part[:eq])
		stmt.Assignments = append(stmt.Assignments, Assignment{
			Field: field,
			Value: resolveValue(part[eq+1:], cur),
		})
	}

	if where != "" {
		stmt.Where = parsePredicate(where, whereParams)
	}
}

func parseOrder(statement string) []OrderKey {
	upper := strings.ToUpper(statement)
	idx := keywordIndex(upper, "ORDER BY")
	if idx < 0 {
		return nil
	}
	segment := statement[idx+len("ORDER BY"):]
	var keys []OrderKey
	for _, part := range splitTop(segment, ',') {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		key := OrderKey{Field: fields[0]}
		if len(fields) > 1 && strings.EqualFold(fields[1], "DESC") {
			key.Desc = true
		}
		keys = append(keys, key)
	}
	return keys
}

// clauseAfter returns the text between keyword and the next terminator
// keyword (or end of statement), trimmed. Empty when keyword is absent.
func clauseAfter(statement, keyword, terminator string) string {
	upper := strings.ToUpper(statement)
	start := keywordIndex(upper, keyword)
	if start < 0 {
		return ""
	}
	segment := statement[start+len(keyword):]
	if end := keywordIndex(strings.ToUpper(segment), terminator); end >= 0 {
		segment = segment[:end]
	}
	return strings.TrimSpace(segment)
}

// keywordIndex finds keyword as a whole word at parenthesis depth zero,
// outside quoted text.
func keywordIndex(upper, keyword string) int {
	depth := 0
	inQuote := false
	for i := 0; i+len(keyword) <= len(upper); i++ {
		switch upper[i] {
		case '\'':
			inQuote = !inQuote
			continue
		case '(':
			if !inQuote {
				depth++
			}
			continue
		case ')':
			if !inQuote {
				depth--
			}
			continue
		}
		if inQuote || depth != 0 {
			continue
		}
		if !strings.HasPrefix(upper[i:], keyword) {
			continue
		}
		beforeOK := i == 0 || isBoundary(upper[i-1])
		afterIdx := i + len(keyword)
		afterOK := afterIdx == len(upper) || isBoundary(upper[afterIdx])
		if beforeOK && afterOK {
			return i
		}
	}
	return -1
}

func isBoundary(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '(' || b == ')'
}

// splitTop splits on sep at parenthesis depth zero, outside quotes. Commas
// nested inside a function call like datetime('now','+1 day') do not split.
func splitTop(s string, sep byte) []string {
	var parts []string
	depth := 0
	inQuote := false
	last := 0
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
			}
		case sep:
			if !inQuote && depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// parenSpan returns the contents of the first balanced parenthesized group
// in s.
func parenSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '(')
	if start < 0 {
		return "", false
	}
	depth := 0
	inQuote := false
	for i := start; i < len(s); i++ {
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
				if depth == 0 {
					return s[start+1 : i], true
				}
			}
		}
	}
	return "", false
}

type paramCursor struct {
	params []any
	next   int
}

func (c *paramCursor) take() any {
	if c.next >= len(c.params) {
		return nil
	}
	v := c.params[c.next]
	c.next++
	return v
}

// resolveValue maps a value token to a bound value: a positional
// placeholder, a recognized time function, or a quoted/bare literal.
func resolveValue(token string, cur *paramCursor) any {
	t := strings.TrimSpace(token)
	if t == "?" {
		return cur.take()
	}
	lower := strings.ToLower(t)
	if strings.Contains(lower, "datetime('now'") || strings.Contains(lower, "now()") {
		return nowISO()
	}
	return unquote(t)
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// compare helpers shared by predicate evaluation and ORDER BY.

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	default:
		return strconv.FormatFloat(mustNumber(v), 'f', -1, 64)
	}
}

func mustNumber(v any) float64 {
	n, _ := toNumber(v)
	return n
}

// valuesEqual compares a row value against a bound predicate value.
// Numeric values compare numerically regardless of representation, so the
// literal 0 matches a stored float64(0); everything else compares as text.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if na, aok := toNumber(a); aok {
		if nb, bok := toNumber(b); bok {
			return na == nb
		}
	}
	return asString(a) == asString(b)
}

// CompareValues orders two row values for ORDER BY: numerically when both
// sides are numeric, lexicographically otherwise (ISO-8601 dates collate
// correctly as text). Returns -1, 0, or 1.
func CompareValues(a, b any) int {
	if na, aok := toNumber(a); aok {
		if nb, bok := toNumber(b); bok {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(asString(a), asString(b))
}
