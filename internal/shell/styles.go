// SPDX-License-Identifier: MPL-2.0

package shell

import "github.com/charmbracelet/lipgloss"

var (
	promptNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	promptPathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))

	promptModeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))
)
