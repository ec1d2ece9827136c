package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDampingBelowMinHeightReturnsBase(t *testing.T) {
	t.Parallel()

	for _, h := range []float64{0, 1, 50, 99.9, 100} {
		assert.Equal(t, 20.0, ComputeDamping(h, 20, 100, 800, 2.5), "height %v", h)
	}
}

func TestComputeDampingAboveMaxHeightScales(t *testing.T) {
	t.Parallel()

	for _, h := range []float64{800, 801, 5000} {
		assert.Equal(t, 20*2.5, ComputeDamping(h, 20, 100, 800, 2.5), "height %v", h)
		assert.Equal(t, 20*1.25, ComputeDamping(h, 20, 100, 800, 1.25), "height %v", h)
	}
}

func TestComputeDampingInterpolatesLinearly(t *testing.T) {
	t.Parallel()

	// halfway between 100 and 800 with multiplier 2 -> 1.5x
	assert.InDelta(t, 30.0, ComputeDamping(450, 20, 100, 800, 2), 1e-9)
	assert.InDelta(t, 20*1.125, ComputeDamping(450, 20, 100, 800, 1.25), 1e-9)
}

func TestComputeDampingMonotonic(t *testing.T) {
	t.Parallel()

	for _, m := range []float64{1, 1.25, 2.5} {
		prev := ComputeDamping(0, 18, 100, 800, m)
		for h := 0.0; h <= 1000; h += 7 {
			cur := ComputeDamping(h, 18, 100, 800, m)
			require.GreaterOrEqual(t, cur, prev, "multiplier %v height %v", m, h)
			prev = cur
		}
	}
}

func TestDefaultDampingCurve(t *testing.T) {
	t.Parallel()

	curve := DefaultDampingCurve()
	assert.Equal(t, 20.0, curve.Damping(0, 20))
	assert.Equal(t, 25.0, curve.Damping(900, 20))
}

func TestExtractMs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"300ms", 300, true},
		{" 120 ", 120, true},
		{"0ms", 0, true},
		{"ms", 0, false},
		{"", 0, false},
		{"tokens.duration('x')", 0, false},
	}
	for _, tc := range cases {
		got, ok := ExtractMs(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestDurationOrFallsBack(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 450*time.Millisecond, DurationOr("450ms", DefaultToggleLock))
	assert.Equal(t, DefaultToggleLock, DurationOr("0ms", DefaultToggleLock))
	assert.Equal(t, DefaultFade, DurationOr("fast", DefaultFade))
}
