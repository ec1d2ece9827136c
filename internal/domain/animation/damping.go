// Package animation derives per-render animation parameters from the current
// token values: spring bundles, tweens, the height-dependent damping curve
// and the open/close state machine of the accordion.
package animation

// Damping curve bounds, in terminal rows for the TUI host and pixels for a
// browser-like host. The curve only cares about the ratio.
const (
	DefaultMinHeight = 100
	DefaultMaxHeight = 800

	// DefaultMaxDampingMultiplier is the damping multiplier applied to
	// content at or above the max height. Override through DampingCurve.
	DefaultMaxDampingMultiplier = 1.25
)

// DampingCurve parameterises ComputeDamping.
type DampingCurve struct {
	MinHeight     float64 `yaml:"min_height" validate:"gte=0"`
	MaxHeight     float64 `yaml:"max_height" validate:"gtfield=MinHeight"`
	MaxMultiplier float64 `yaml:"max_multiplier" validate:"gte=1"`
}

// DefaultDampingCurve returns the 100..800 curve with the default multiplier.
func DefaultDampingCurve() DampingCurve {
	return DampingCurve{
		MinHeight:     DefaultMinHeight,
		MaxHeight:     DefaultMaxHeight,
		MaxMultiplier: DefaultMaxDampingMultiplier,
	}
}

// Damping evaluates the curve for the measured height.
func (c DampingCurve) Damping(height, base float64) float64 {
	return ComputeDamping(height, base, c.MinHeight, c.MaxHeight, c.MaxMultiplier)
}

// ComputeDamping scales base damping with content height: unchanged up to
// minHeight, base*maxMultiplier from maxHeight on, linear in between. A
// height of 0 means not yet measured and yields base.
func ComputeDamping(height, base, minHeight, maxHeight, maxMultiplier float64) float64 {
	switch {
	case height <= minHeight:
		return base
	case height >= maxHeight:
		return base * maxMultiplier
	}
	ratio := (height - minHeight) / (maxHeight - minHeight)
	multiplier := 1 + ratio*(maxMultiplier-1)
	return base * multiplier
}
