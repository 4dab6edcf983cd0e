// Package tui implements the bubbletea inspector launched by
// "analyze inspect": a read-only, opt-in view over an already-loaded
// types.Challenge, navigable by stage, tick, and party member.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor   = lipgloss.Color("#7C3AED")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#3B82F6")
	deadColor      = lipgloss.Color("#EF4444")
	aliveColor     = lipgloss.Color("#10B981")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	selectedPlayerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(highlightColor)

	aliveStyle = lipgloss.NewStyle().Foreground(aliveColor)
	deadStyle  = lipgloss.NewStyle().Foreground(deadColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)
