package tokens

import (
	"fmt"
	"strings"
)

// Warning records a token that could not be resolved. The token keeps its
// raw definition string in the resolved set so consumers still have
// something to display.
type Warning struct {
	Name   Name
	Raw    string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s (%s)", w.Name, w.Reason, w.Raw)
}

// Resolution outcome reasons.
const (
	ReasonUnknownPreset   = "unknown spring preset"
	ReasonUnknownProperty = "unknown spring property"
	ReasonUnknownKey      = "unknown scale key"
	ReasonUnknownScale    = "unknown scale namespace"
	ReasonMalformed       = "malformed reference"
	ReasonNotNumeric      = "spring parameter is not numeric"
)

const (
	namespaceDuration = "duration"
	namespaceMotion   = "motion"
	namespaceEasing   = "easing"
)

// Resolve translates the symbolic definitions into concrete values. Preset
// selectors are copied first and verbatim; every other token is resolved
// against ref. Unresolvable tokens are kept as their raw string and reported
// as warnings, never as errors.
func Resolve(defs Definitions, ref Reference) (Set, []Warning) {
	resolved := make(Set, len(defs))
	var warnings []Warning

	for _, def := range defs {
		if def.Name.IsPreset() {
			resolved[def.Name] = Text(def.Value.String())
		}
	}

	for _, def := range defs {
		if def.Name.IsPreset() {
			continue
		}
		value, warning := resolveOne(def, ref)
		resolved[def.Name] = value
		if warning != nil {
			warnings = append(warnings, *warning)
		}
	}

	return resolved, warnings
}

func resolveOne(def Definition, ref Reference) (Literal, *Warning) {
	unresolved := func(reason string) (Literal, *Warning) {
		raw := def.Value.String()
		return Text(raw), &Warning{Name: def.Name, Raw: raw, Reason: reason}
	}

	switch v := def.Value.(type) {
	case SpringRef:
		preset, ok := ref.Spring[v.Type]
		if !ok {
			return unresolved(ReasonUnknownPreset)
		}
		f, ok := preset.Property(v.Property)
		if !ok {
			return unresolved(ReasonUnknownProperty)
		}
		if def.Name.IsSpringParameter() {
			return Number(f), nil
		}
		return Text(Number(f).String()), nil

	case ScaleRef:
		var scale map[string]string
		switch strings.ToLower(v.Namespace) {
		case namespaceDuration:
			scale = ref.Duration
		case namespaceMotion, namespaceEasing:
			scale = ref.Motion
		default:
			return unresolved(ReasonUnknownScale)
		}
		s, ok := scale[v.Key]
		if !ok || s == "" {
			return unresolved(ReasonUnknownKey)
		}
		return Text(s), nil

	case Literal:
		if IsMalformedReference(v) {
			return unresolved(ReasonMalformed)
		}
		if !def.Name.IsSpringParameter() {
			return v, nil
		}
		f, ok := v.Float()
		if !ok {
			return unresolved(ReasonNotNumeric)
		}
		return Number(f), nil

	default:
		return unresolved(fmt.Sprintf("unsupported value %T", v))
	}
}
