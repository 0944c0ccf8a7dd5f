package main

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	rest   lipgloss.Style
	box    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(4)).Padding(0, 1),
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		label:  lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(6)).Width(12),
		value:  lipgloss.NewStyle().Bold(true),
		rest:   lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)),
		box:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.ANSIColor(4)).Padding(0, 1),
	}
}
