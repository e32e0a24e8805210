package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/apolice/internal/logtail"
)

type logLinesMsg struct {
	lines []string
	err   error
}

func readLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logLinesMsg{}
		}
		lines, err := logtail.Read(path, LogTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

// openLogs shows the log overlay and starts reading the tail.
func (m *Model) openLogs() tea.Cmd {
	m.showLogs = true
	m.sizeLogViewport()
	return readLogCmd(m.logPath)
}

func (m *Model) sizeLogViewport() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	m.logViewport.Width = w - 4
	m.logViewport.Height = h - 2
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	styles := m.theme.Styles()
	switch {
	case msg.err != nil:
		m.logLines = []string{styles.DangerText.Render(msg.err.Error())}
	case m.logPath == "":
		m.logLines = []string{styles.MutedText.Render("Log do cliente desativado (log_file vazio).")}
	case len(msg.lines) == 0:
		m.logLines = []string{styles.MutedText.Render("Log vazio.")}
	default:
		m.logLines = make([]string, 0, len(msg.lines))
		for _, line := range msg.lines {
			m.logLines = append(m.logLines, colorizeLogLine(logtail.Parse(line), styles))
		}
	}
	m.logViewport.SetContent(strings.Join(m.logLines, "\n"))
	m.logViewport.GotoBottom()
}

func colorizeLogLine(e logtail.Entry, styles Styles) string {
	text := logtail.Format(e)
	switch strings.ToLower(e.Level) {
	case "error", "dpanic", "panic", "fatal":
		return styles.DangerText.Render(text)
	case "warn":
		return styles.WarningText.Render(text)
	case "debug":
		return styles.FaintText.Render(text)
	}
	return styles.Text.Render(text)
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "L":
		m.showLogs = false
		return m, nil
	case "r":
		return m, readLogCmd(m.logPath)
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Log do cliente")
	if m.logPath != "" {
		title += " " + styles.FaintText.Render(truncateMiddle(m.logPath, m.logViewport.Width-16))
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.logViewport.View(),
		styles.MutedText.Render("esc fechar  r recarregar"),
	)
	box := m.theme.BoxStyle(true).Padding(0, 1).Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
