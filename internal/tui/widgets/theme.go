package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the widget styles.
type Theme struct {
	Header        lipgloss.Style
	HeaderFocused lipgloss.Style
	Body          lipgloss.Style
	Track         lipgloss.Style
	Thumb         lipgloss.Style
	Label         lipgloss.Style

	// FadeFrom and FadeTo are the 256-color codes the body fades between.
	FadeFrom int
	FadeTo   int
}

// DefaultTheme returns the stock widget palette.
func DefaultTheme() Theme {
	return Theme{
		Header:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		HeaderFocused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Body:          lipgloss.NewStyle().PaddingLeft(2),
		Track:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Thumb:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Label:         lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		FadeFrom:      236,
		FadeTo:        252,
	}
}

// Fade maps an opacity in [0, 1] onto the grayscale ramp.
func (t Theme) Fade(opacity float64) lipgloss.Color {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	code := t.FadeFrom + int(float64(t.FadeTo-t.FadeFrom)*opacity+0.5)
	return lipgloss.Color(fmt.Sprintf("%d", code))
}
