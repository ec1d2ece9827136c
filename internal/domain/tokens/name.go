package tokens

import (
	"strings"
)

// Name is the globally unique key of a token, e.g. ACCORDION_CONTENT_STIFFNESS.
type Name string

// Category groups tokens by the kind of value they carry. It is inferred
// from the token name.
type Category int

const (
	CategoryOther Category = iota
	CategoryDuration
	CategoryEasing
	CategoryPreset
	CategorySpring
)

func (c Category) String() string {
	switch c {
	case CategoryDuration:
		return "duration"
	case CategoryEasing:
		return "easing"
	case CategoryPreset:
		return "preset"
	case CategorySpring:
		return "spring"
	default:
		return "other"
	}
}

// Category infers the token category from its name. PRESET wins over the
// spring parameters so ACCORDION_ARROW_PRESET is never treated as numeric.
func (n Name) Category() Category {
	s := string(n)
	switch {
	case strings.Contains(s, "PRESET"):
		return CategoryPreset
	case n.IsSpringParameter():
		return CategorySpring
	case strings.Contains(s, "DURATION"):
		return CategoryDuration
	case strings.Contains(s, "EASING"), strings.Contains(s, "MOTION"):
		return CategoryEasing
	default:
		return CategoryOther
	}
}

// IsPreset reports whether the name identifies a preset selector.
func (n Name) IsPreset() bool {
	return strings.Contains(string(n), "PRESET")
}

// IsSpringParameter reports whether the name holds a numeric spring constant.
func (n Name) IsSpringParameter() bool {
	s := string(n)
	return strings.Contains(s, "STIFFNESS") || strings.Contains(s, "DAMPING") || strings.Contains(s, "MASS")
}

// CSSVariable returns the global style variable for the token:
// ACCORDION_ARROW_MASS becomes --accordion-arrow-mass.
func (n Name) CSSVariable() string {
	return "--" + strings.ReplaceAll(strings.ToLower(string(n)), "_", "-")
}

// Target selects which spring of the accordion a preset applies to.
type Target string

const (
	TargetArrow   Target = "ARROW"
	TargetContent Target = "CONTENT"
)

// Custom is the preset selector value that detaches a target from presets.
const Custom = "custom"

// ParseTarget normalises user input into a Target.
func ParseTarget(raw string) (Target, error) {
	switch Target(strings.ToUpper(strings.TrimSpace(raw))) {
	case TargetArrow:
		return TargetArrow, nil
	case TargetContent:
		return TargetContent, nil
	default:
		return "", newInvalidTargetError(raw)
	}
}

// Targets lists every preset target in display order.
func Targets() []Target {
	return []Target{TargetArrow, TargetContent}
}

// PresetName is the selector token recording the active preset of a target.
func (t Target) PresetName() Name {
	return Name("ACCORDION_" + string(t) + "_PRESET")
}

// Stiffness returns the stiffness token of the target.
func (t Target) Stiffness() Name {
	return Name("ACCORDION_" + string(t) + "_STIFFNESS")
}

// Damping returns the damping token of the target.
func (t Target) Damping() Name {
	return Name("ACCORDION_" + string(t) + "_DAMPING")
}

// Mass returns the mass token of the target.
func (t Target) Mass() Name {
	return Name("ACCORDION_" + string(t) + "_MASS")
}

// SpringNames returns the stiffness, damping and mass tokens of the target.
func (t Target) SpringNames() [3]Name {
	return [3]Name{t.Stiffness(), t.Damping(), t.Mass()}
}

// Well-known tokens consumed by the animation layer.
const (
	AccordionTransitionDuration     Name = "ACCORDION_TRANSITION_DURATION"
	AccordionTransitionEasing       Name = "ACCORDION_TRANSITION_EASING"
	AccordionAnimationDuration      Name = "ACCORDION_ANIMATION_DURATION"
	AccordionContentOpacityDuration Name = "ACCORDION_CONTENT_OPACITY_DURATION"
	AccordionContentOpacityEasing   Name = "ACCORDION_CONTENT_OPACITY_EASING"
	SliderTransitionDuration        Name = "SLIDER_TRANSITION_DURATION"
	SliderTransitionEasing          Name = "SLIDER_TRANSITION_EASING"
)
