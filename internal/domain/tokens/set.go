package tokens

import (
	"sort"
)

// Definition is one entry of the component token document.
type Definition struct {
	Name  Name
	Value Value
}

// Definitions keeps document order so resolution and display are stable.
type Definitions []Definition

// Set is a mapping from token name to a concrete value.
type Set map[Name]Literal

// Get returns the literal stored for name.
func (s Set) Get(name Name) (Literal, bool) {
	l, ok := s[name]
	return l, ok
}

// Text returns the textual form of the token, or "" when absent.
func (s Set) Text(name Name) string {
	l, ok := s[name]
	if !ok {
		return ""
	}
	return l.String()
}

// Float returns the numeric reading of the token.
func (s Set) Float(name Name) (float64, bool) {
	l, ok := s[name]
	if !ok {
		return 0, false
	}
	return l.Float()
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge returns a copy of s with every entry of overrides applied on top.
func (s Set) Merge(overrides Set) Set {
	out := s.Clone()
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Names returns the token names in sorted order.
func (s Set) Names() []Name {
	names := make([]Name, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// StyleVariables renders the set as global style variables keyed by
// CSSVariable name.
func (s Set) StyleVariables() map[string]string {
	vars := make(map[string]string, len(s))
	for name, value := range s {
		vars[name.CSSVariable()] = value.String()
	}
	return vars
}
