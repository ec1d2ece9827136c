package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)

	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	failureStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	logStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)
