package widgets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apptokens "github.com/alexisbeaulieu97/motionkit/internal/application/tokens"
	"github.com/alexisbeaulieu97/motionkit/internal/domain/animation"
	"github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
)

func scopedContext(t *testing.T) (context.Context, *apptokens.Service) {
	t.Helper()
	svc := apptokens.New(tokens.StaticDefaults(), tokens.StaticDefaults(), tokens.Reference{}, nil, nil)
	return apptokens.WithService(context.Background(), svc), svc
}

func settle(step func() bool, frames int) {
	for i := 0; i < frames; i++ {
		if !step() {
			return
		}
	}
}

func TestWidgetsRequireTokenScope(t *testing.T) {
	t.Parallel()

	_, err := NewAccordion(context.Background(), "Details", []string{"a"})
	require.ErrorIs(t, err, tokens.ErrContextUnavailable)

	_, err = NewSlider(context.Background(), "Volume", 0, 10, 1, 5, 60)
	require.ErrorIs(t, err, tokens.ErrContextUnavailable)
}

func TestAccordionOpensAndLocks(t *testing.T) {
	t.Parallel()

	ctx, _ := scopedContext(t)
	clock := animation.NewManualClock()
	acc, err := NewAccordion(ctx, "Details", []string{"one", "two", "three"}, WithClock(clock))
	require.NoError(t, err)
	defer acc.Close()

	assert.Zero(t, acc.VisibleRows())
	require.True(t, acc.Toggle())
	assert.False(t, acc.Toggle(), "requests are dropped while locked")

	snap := acc.State()
	assert.Equal(t, animation.Opening, snap.State)
	assert.Equal(t, 3*RowUnits, snap.Height)

	settle(acc.Step, 600)
	assert.Equal(t, 3, acc.VisibleRows())
	assert.InDelta(t, 90, acc.ArrowAngle(), 0.01)
	assert.Equal(t, 1.0, acc.Opacity())

	clock.Advance(300*time.Millisecond + animation.SettleBuffer)
	snap = acc.State()
	assert.Equal(t, animation.Open, snap.State)
	assert.False(t, snap.Animating)
	assert.False(t, acc.Step())

	require.True(t, acc.Toggle())
	settle(acc.Step, 600)
	assert.Zero(t, acc.VisibleRows())
	assert.Zero(t, acc.Opacity())
}

func TestAccordionExpandedAndView(t *testing.T) {
	t.Parallel()

	ctx, _ := scopedContext(t)
	acc, err := NewAccordion(ctx, "Details", []string{"first line"}, Expanded(), WithClock(animation.NewManualClock()))
	require.NoError(t, err)
	defer acc.Close()

	assert.Equal(t, 1, acc.VisibleRows())
	view := acc.View(40, true, DefaultTheme())
	assert.Contains(t, view, "▼ Details")
	assert.Contains(t, view, "first line")
}

func TestAccordionDampingFollowsHeight(t *testing.T) {
	t.Parallel()

	ctx, _ := scopedContext(t)
	body := make([]string, 40)
	acc, err := NewAccordion(ctx, "Tall", body, WithClock(animation.NewManualClock()))
	require.NoError(t, err)
	defer acc.Close()

	acc.Toggle()
	content := acc.Content()
	assert.Equal(t, 40*RowUnits, content.MeasuredHeight)
	assert.Greater(t, content.Height.Damping, 20.0)
}

func TestAccordionZeroStiffnessSnaps(t *testing.T) {
	t.Parallel()

	ctx, svc := scopedContext(t)
	require.NoError(t, svc.Set(ctx, tokens.TargetArrow.Stiffness(), tokens.Number(0)))

	acc, err := NewAccordion(ctx, "Snap", []string{"x"}, WithClock(animation.NewManualClock()))
	require.NoError(t, err)
	defer acc.Close()

	acc.Toggle()
	acc.Step()
	assert.Equal(t, 90.0, acc.ArrowAngle())
}

func TestSliderGlidesToValue(t *testing.T) {
	t.Parallel()

	ctx, _ := scopedContext(t)
	slider, err := NewSlider(ctx, "Volume", 0, 10, 1, 5, 60)
	require.NoError(t, err)

	slider.Increase()
	assert.Equal(t, 6.0, slider.Value())
	assert.Equal(t, 5.0, slider.Position())

	require.True(t, slider.Step())
	assert.Greater(t, slider.Position(), 5.0)
	settle(slider.Step, 120)
	assert.Equal(t, 6.0, slider.Position())

	slider.SetValue(42)
	assert.Equal(t, 10.0, slider.Value())
	assert.Contains(t, slider.View(40, false, DefaultTheme()), "Volume")
}

func TestSliderIncrement(t *testing.T) {
	t.Parallel()

	ctx, _ := scopedContext(t)
	cases := []struct {
		name      string
		step      float64
		increment float64
		up, down  float64
	}{
		{name: "explicit", step: 10, increment: 10, up: 260, down: 240},
		{name: "derived from range", step: 0, increment: 45, up: 295, down: 205},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slider, err := NewSlider(ctx, "Stiffness", 50, 500, tc.step, 250, 60)
			require.NoError(t, err)
			assert.Equal(t, tc.increment, slider.Increment)

			slider.Increase()
			assert.Equal(t, tc.up, slider.Value())
			slider.Decrease()
			slider.Decrease()
			assert.Equal(t, tc.down, slider.Value())
		})
	}
}

func TestSliderRejectsEmptyRange(t *testing.T) {
	t.Parallel()

	ctx, _ := scopedContext(t)
	_, err := NewSlider(ctx, "Bad", 5, 5, 1, 5, 60)
	require.Error(t, err)
}

func TestThemeFadeClamps(t *testing.T) {
	t.Parallel()

	theme := DefaultTheme()
	assert.Equal(t, "236", string(theme.Fade(-1)))
	assert.Equal(t, "252", string(theme.Fade(2)))
}
