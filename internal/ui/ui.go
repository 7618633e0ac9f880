// Package ui holds the presentation values feature pipelines produce and renders them for a terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Text struct {
	Value string `json:"value" yaml:"value"`
}

type ListItem struct {
	ID       int64  `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Selected bool   `json:"selected" yaml:"selected"`
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// Render draws a view state as a bordered panel.
func Render(header Text, items []ListItem, loading bool, errMsg string) string {
	lines := []string{headerStyle.Render(header.Value)}

	if loading {
		lines = append(lines, pendingStyle.Render("… loading"))
	}
	if errMsg != "" {
		lines = append(lines, errorStyle.Render("✖ "+errMsg))
	}

	for _, item := range items {
		mark := "•"
		title := item.Title
		if item.Selected {
			mark = "✔"
			title = selectedStyle.Render(title)
		}

		line := fmt.Sprintf("%s %s", mark, title)
		if item.Subtitle != "" {
			line += " " + mutedStyle.Render(item.Subtitle)
		}
		lines = append(lines, line)
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}
