package main

import "github.com/charmbracelet/lipgloss"

var (
	// titleStyle for root section titles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75"))

	// dimStyle for markers and counts
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// overStyle for sections above their target
	overStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// underStyle for sections at or below their target
	underStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	// summaryStyle for the document totals box
	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("75")).
			Padding(0, 1)
)
