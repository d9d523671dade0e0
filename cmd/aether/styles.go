package main

import "github.com/charmbracelet/lipgloss"

var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	styleDim = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	styleKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	styleOK = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	styleErr = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleErrTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	styleBound = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)
