package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := lipgloss.Color(m.theme.Surface)
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := []string{styles.Logo.Render("apolice")}

	switch {
	case m.inFlight > 0:
		parts = append(parts, styles.InfoText.Background(bg).Render(m.spinner.View()+" "+searchingText))
	case m.snapshot.IsOffline():
		parts = append(parts, styles.DangerText.Background(bg).Render("SEM CONEXÃO"))
	case m.snapshot.HasResults:
		parts = append(parts, styles.SuccessText.Background(bg).Render(resultCount(len(m.snapshot.Records))))
	}

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, styles.MutedText.Background(bg).Render("atualizado "+m.snapshot.LastUpdated.Format("15:04:05")))
	}
	if m.refreshInterval > 0 {
		parts = append(parts, styles.FaintText.Background(bg).Render("auto "+m.refreshInterval.String()))
	}
	if m.width >= LayoutCompactWidth && m.baseURL != "" {
		parts = append(parts, styles.FaintText.Background(bg).Render(truncateMiddle(m.baseURL, 40)))
	}

	return lipgloss.NewStyle().
		Background(bg).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(strings.Join(parts, sep))
}

// renderCommandBar renders the key hints under the header.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	var bindings []string
	hints := m.keys.ShortHelp()
	if m.form.active {
		hints = append(hints[:0:0], m.keys.NextField, m.keys.Submit, m.keys.ClearForm, m.keys.Escape)
	}
	for _, b := range hints {
		h := b.Help()
		bindings = append(bindings, styles.AccentText.Render(h.Key)+" "+styles.MutedText.Render(h.Desc))
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(strings.Join(bindings, "   "))
}
