package tui

import (
	"fmt"
	"strings"
)

// View renders the current UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("motionkit"))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render(m.paneTitle(paneDemo, "Demo")))
	b.WriteString("\n")
	for i, acc := range m.accordions {
		b.WriteString(acc.View(m.opts.Width, m.pane == paneDemo && m.focus == i, m.theme))
		b.WriteString("\n")
	}
	b.WriteString(m.slider.View(m.opts.Width, m.pane == paneDemo && m.focus == len(m.accordions), m.theme))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render(m.paneTitle(paneTokens, "Tokens")))
	b.WriteString("\n")
	b.WriteString(m.tokensView())

	switch m.mode {
	case modeEditValue:
		b.WriteString(fmt.Sprintf("\nvalue for %s: %s\n", m.config.current(), m.input.View()))
	case modeEditAlias:
		b.WriteString(fmt.Sprintf("\nlabel for %s: %s\n", m.config.current(), m.input.View()))
	}

	if m.status != "" {
		style := statusStyle
		if m.failed {
			style = failureStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	if m.opts.Logs != nil {
		if lines := m.opts.Logs.Tail(3); len(lines) > 0 {
			b.WriteString("\n")
			for _, line := range lines {
				b.WriteString(logStyle.Render(line))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) paneTitle(p pane, title string) string {
	if m.pane == p {
		return "» " + title
	}
	return "  " + title
}

func (m Model) tokensView() string {
	var b strings.Builder
	for i, name := range m.config.rows {
		cursor := "  "
		line := fmt.Sprintf("%-28s %s", m.config.label(name), m.config.display(name))
		switch {
		case m.pane == paneTokens && i == m.config.cursor:
			cursor = "> "
			line = selectedStyle.Render(line)
		case !m.config.editable(name):
			line = lockedStyle.Render(line)
		default:
			line = valueStyle.Render(line)
		}
		b.WriteString(cursor)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
