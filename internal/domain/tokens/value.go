package tokens

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Value is the definition-time value of a token. It is one of Literal,
// SpringRef or ScaleRef; the unexported marker keeps the set closed so
// Resolve can switch over it exhaustively.
type Value interface {
	fmt.Stringer
	isValue()
}

// LiteralKind distinguishes textual from numeric literals.
type LiteralKind int

const (
	KindText LiteralKind = iota
	KindNumber
)

// Literal is a concrete token value. Every entry of a resolved Set is a Literal.
type Literal struct {
	Kind   LiteralKind
	Text   string
	Number float64
}

// Text builds a textual literal.
func Text(s string) Literal {
	return Literal{Kind: KindText, Text: s}
}

// Number builds a numeric literal.
func Number(f float64) Literal {
	return Literal{Kind: KindNumber, Number: f}
}

func (Literal) isValue() {}

// String renders the literal the way it is published to style variables.
func (l Literal) String() string {
	if l.Kind == KindNumber {
		return strconv.FormatFloat(l.Number, 'f', -1, 64)
	}
	return l.Text
}

// Float returns the numeric reading of the literal. Text literals are parsed
// best-effort: the longest leading numeric prefix wins, so "200px" reads as
// 200. The boolean is false when nothing numeric could be read.
func (l Literal) Float() (float64, bool) {
	if l.Kind == KindNumber {
		return l.Number, true
	}
	return parseLeadingFloat(l.Text)
}

// IsZero reports whether the literal is the empty text value.
func (l Literal) IsZero() bool {
	return l.Kind == KindText && l.Text == ""
}

// SpringRef points at one property of a spring preset in the reference
// table: tokens.spring('<type>').<property>.
type SpringRef struct {
	Type     string
	Property string
	raw      string
}

func (SpringRef) isValue() {}

func (r SpringRef) String() string {
	if r.raw != "" {
		return r.raw
	}
	return fmt.Sprintf("tokens.spring('%s').%s", r.Type, r.Property)
}

// ScaleRef points at an entry of a named scale in the reference table:
// tokens.<namespace>('<key>').
type ScaleRef struct {
	Namespace string
	Key       string
	raw       string
}

func (ScaleRef) isValue() {}

func (r ScaleRef) String() string {
	if r.raw != "" {
		return r.raw
	}
	return fmt.Sprintf("tokens.%s('%s')", r.Namespace, r.Key)
}

var (
	springRefPattern = regexp.MustCompile(`^tokens\.spring\('(.+?)'\)\.(.+)$`)
	scaleRefPattern  = regexp.MustCompile(`^tokens\.(\w+)\('([^']+)'\)$`)
	leadingFloat     = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// ReferencePrefix marks a definition string as a symbolic reference.
const ReferencePrefix = "tokens."

// ParseValue converts a raw definition into a Value. Strings written in the
// reference grammar become SpringRef or ScaleRef; everything else, including
// strings that start with the reference prefix but are malformed, is a
// Literal.
func ParseValue(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Text("")
	case Value:
		return v
	case string:
		return parseString(v)
	case int:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case float32:
		return Number(float64(v))
	case float64:
		return Number(v)
	case bool:
		return Text(strconv.FormatBool(v))
	default:
		return Text(fmt.Sprint(v))
	}
}

func parseString(s string) Value {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, ReferencePrefix) {
		return Text(s)
	}
	if m := springRefPattern.FindStringSubmatch(trimmed); m != nil {
		return SpringRef{Type: m[1], Property: m[2], raw: s}
	}
	if m := scaleRefPattern.FindStringSubmatch(trimmed); m != nil && m[1] != "spring" {
		return ScaleRef{Namespace: m[1], Key: m[2], raw: s}
	}
	return Text(s)
}

// IsMalformedReference reports whether a literal looks like a symbolic
// reference that failed to parse.
func IsMalformedReference(v Value) bool {
	l, ok := v.(Literal)
	return ok && l.Kind == KindText && strings.HasPrefix(strings.TrimSpace(l.Text), ReferencePrefix)
}

func parseLeadingFloat(s string) (float64, bool) {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
