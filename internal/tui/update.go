package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if m.step() {
			return m, frame(m.opts.FPS)
		}
		m.ticking = false
		return m, nil
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.opts.Width = msg.Width
			m.help.Width = msg.Width
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeEditValue, modeEditAlias:
			return m.updateInput(msg)
		case modeConfirmReset:
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	case tea.QuitMsg:
		m.quitting = true
		return m, nil
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Pane):
		if m.pane == paneDemo {
			m.pane = paneTokens
		} else {
			m.pane = paneDemo
		}
		return m, nil
	}

	if m.pane == paneTokens {
		return m.updateTokens(msg)
	}
	return m.updateDemo(msg)
}

func (m Model) updateDemo(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.focus = (m.focus - 1 + m.focusCount()) % m.focusCount()
	case key.Matches(msg, m.keys.Down):
		m.focus = (m.focus + 1) % m.focusCount()
	case key.Matches(msg, m.keys.Toggle):
		if m.focus < len(m.accordions) && !m.accordions[m.focus].Toggle() {
			m.setStatus("animation in progress", false)
		}
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		if m.focus != len(m.accordions) {
			return m, nil
		}
		if key.Matches(msg, m.keys.Left) {
			m.slider.Decrease()
		} else {
			m.slider.Increase()
		}
		status, err := m.writeStiffness(m.slider.Value())
		m.report(status, err)
		if err != nil {
			m.slider.SetValue(m.stiffness())
		} else {
			m.refresh()
		}
	}
	return m, m.startFrames()
}

// writeStiffness stores the slider value as the content stiffness. Dragging
// the slider is a custom edit, so an active content preset is detached first.
func (m *Model) writeStiffness(value float64) (string, error) {
	name := tokens.TargetContent.Stiffness()
	status := ""
	if m.svc.IsDerived(name) {
		if err := m.svc.ApplyPreset(m.ctx, tokens.TargetContent, tokens.Custom); err != nil {
			return "", err
		}
		status = "content spring switched to custom"
	}
	return status, m.svc.Set(m.ctx, name, tokens.Number(value))
}

func (m Model) updateTokens(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.config.move(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.config.move(1)
		return m, nil
	case key.Matches(msg, m.keys.Left):
		m.report(m.config.cycle(m.ctx, -1))
	case key.Matches(msg, m.keys.Right):
		m.report(m.config.cycle(m.ctx, 1))
	case key.Matches(msg, m.keys.Custom):
		name := m.config.current()
		if !m.config.editable(name) {
			m.report("", tokens.ErrDerivedToken)
			return m, nil
		}
		m.mode = modeEditValue
		m.input.Placeholder = m.svc.Get(name).String()
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Alias):
		m.mode = modeEditAlias
		m.input.Placeholder = m.config.label(m.config.current())
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Reset):
		m.mode = modeConfirmReset
		m.setStatus("reset all aliases to defaults? (y/n)", false)
		return m, nil
	default:
		return m, nil
	}
	m.refresh()
	return m, m.startFrames()
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		value := m.input.Value()
		editing := m.mode
		m.mode = modeBrowse
		m.input.Blur()
		if editing == modeEditAlias {
			m.report(m.config.rename(m.ctx, value))
		} else {
			m.report(m.config.setCustom(m.ctx, value))
		}
		m.refresh()
		return m, m.startFrames()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	if key.Matches(msg, m.keys.Confirm) {
		m.report(m.config.resetAliases(m.ctx))
		m.refresh()
		return m, m.startFrames()
	}
	m.setStatus("alias reset cancelled", false)
	return m, nil
}

// step advances every widget one frame and reports whether anything moves.
func (m *Model) step() bool {
	moving := false
	for _, acc := range m.accordions {
		if acc.Step() {
			moving = true
		}
	}
	if m.slider.Step() {
		moving = true
	}
	return moving
}

// startFrames restarts the frame loop once it has gone idle.
func (m *Model) startFrames() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return frame(m.opts.FPS)
}

func (m *Model) report(status string, err error) {
	if err != nil {
		msg := err.Error()
		if errors.Is(err, tokens.ErrDerivedToken) {
			msg = "value is set by the active preset; choose custom first"
		}
		m.setStatus(msg, true)
		return
	}
	m.setStatus(status, false)
}

func (m *Model) setStatus(status string, failed bool) {
	m.status = status
	m.failed = failed
}
