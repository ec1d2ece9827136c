package tokens

import (
	"sort"
	"strconv"
)

// SpringPreset is an immutable bundle of spring physics constants.
type SpringPreset struct {
	Stiffness float64 `yaml:"stiffness" json:"stiffness" validate:"gt=0"`
	Damping   float64 `yaml:"damping" json:"damping" validate:"gte=0"`
	Mass      float64 `yaml:"mass" json:"mass" validate:"gt=0"`
}

// Property returns the named constant of the preset.
func (p SpringPreset) Property(name string) (float64, bool) {
	switch name {
	case "stiffness":
		return p.Stiffness, true
	case "damping":
		return p.Damping, true
	case "mass":
		return p.Mass, true
	default:
		return 0, false
	}
}

// Strings renders the triple the way preset application stores it.
func (p SpringPreset) Strings() [3]string {
	return [3]string{
		strconv.FormatFloat(p.Stiffness, 'f', -1, 64),
		strconv.FormatFloat(p.Damping, 'f', -1, 64),
		strconv.FormatFloat(p.Mass, 'f', -1, 64),
	}
}

// Reference is the read-only base document every symbolic token resolves
// against.
type Reference struct {
	Duration map[string]string       `yaml:"duration" json:"duration"`
	Motion   map[string]string       `yaml:"motion" json:"motion"`
	Spring   map[string]SpringPreset `yaml:"spring" json:"spring" validate:"dive"`
}

// Preset looks up a spring preset by type.
func (r Reference) Preset(kind string) (SpringPreset, bool) {
	p, ok := r.Spring[kind]
	return p, ok
}

// PresetNames returns the spring preset types from stiffest to softest.
func (r Reference) PresetNames() []string {
	names := make([]string, 0, len(r.Spring))
	for name := range r.Spring {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := r.Spring[names[i]], r.Spring[names[j]]
		if a.Stiffness != b.Stiffness {
			return a.Stiffness > b.Stiffness
		}
		return names[i] < names[j]
	})
	return names
}

// Option is a selectable scale entry, labelled "key (value)".
type Option struct {
	Key   string
	Value string
	Label string
}

// DurationOptions lists the duration scale for configurator pickers.
func (r Reference) DurationOptions() []Option {
	return scaleOptions(r.Duration)
}

// MotionOptions lists the easing scale for configurator pickers.
func (r Reference) MotionOptions() []Option {
	return scaleOptions(r.Motion)
}

func scaleOptions(scale map[string]string) []Option {
	keys := make([]string, 0, len(scale))
	for k := range scale {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	opts := make([]Option, 0, len(keys))
	for _, k := range keys {
		opts = append(opts, Option{Key: k, Value: scale[k], Label: k + " (" + scale[k] + ")"})
	}
	return opts
}
