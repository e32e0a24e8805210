package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the key binding overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	groups := []string{"Critérios", "Tabela", "Detalhes", "Geral"}

	var sections []string
	for i, column := range m.keys.FullHelp() {
		lines := []string{styles.AccentText.Bold(true).Render(groups[i])}
		for _, b := range column {
			h := b.Help()
			lines = append(lines, styles.Text.Render(padRight(h.Key, 12))+styles.MutedText.Render(h.Desc))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.Logo.Render("Atalhos"),
		"",
		strings.Join(sections, "\n\n"),
		"",
		styles.FaintText.Render("qualquer tecla para fechar"),
	)
	box := m.theme.BoxStyle(true).Padding(1, 2).Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
