package ui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/apolice/internal/policy"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

type clipboardMsg struct {
	value string
	err   error
}

func copyCmd(value string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{value: value, err: copyToClipboard(value)}
	}
}

const (
	detailMaxWidth  = 78
	detailMinWidth  = 36
	detailMaxHeight = 28
)

// rect is a screen region in cells.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// detailSize returns the outer size of the overlay box, border included.
func (m Model) detailSize() (int, int) {
	w := m.width - 4
	if w > detailMaxWidth {
		w = detailMaxWidth
	}
	if w < detailMinWidth {
		w = detailMinWidth
	}
	h := m.height - 4
	if h > detailMaxHeight {
		h = detailMaxHeight
	}
	if h < 8 {
		h = 8
	}
	return w, h
}

// overlayRect is where lipgloss.Place centers the overlay box. Place puts
// the extra cell of an odd gap after the box.
func (m Model) overlayRect() rect {
	w, h := m.detailSize()
	return rect{
		x: centerOffset(m.width, w),
		y: centerOffset(m.height, h),
		w: w,
		h: h,
	}
}

func centerOffset(total, size int) int {
	gap := total - size
	if gap <= 0 {
		return 0
	}
	return gap / 2
}

// openDetail shows the record highlighted in the table.
func (m *Model) openDetail() {
	if !m.modal.Open(m.table.SelectedKey()) {
		return
	}
	m.detailViewport.GotoTop()
	m.updateDetailViewport()
}

// closeDetail is the single close path for the overlay.
func (m *Model) closeDetail() {
	m.modal.Close()
}

func (m *Model) updateDetailViewport() {
	w, h := m.detailSize()
	// border (2) + padding (2) horizontally; border (2) + title and footer (2) vertically
	m.detailViewport.Width = w - 4
	m.detailViewport.Height = h - 4
	rec, ok := m.modal.Record()
	if !ok {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(renderDetail(rec, m.theme, m.detailViewport.Width))
}

// renderDetail lays out the projected fields as aligned label/value lines.
func renderDetail(rec policy.Record, theme Theme, width int) string {
	styles := theme.Styles()
	fields := policy.Project(rec)

	labelWidth := 0
	for _, f := range fields {
		if n := lipgloss.Width(f.Label); n > labelWidth {
			labelWidth = n
		}
	}
	if limit := width / 2; labelWidth > limit {
		labelWidth = limit
	}
	valueWidth := width - labelWidth - 2
	if valueWidth < 8 {
		valueWidth = 8
	}

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('\n')
		}
		label := styles.Label.Render(padRight(truncate(f.Label, labelWidth), labelWidth))
		var value string
		switch f.Kind {
		case policy.KindStatus:
			value = theme.StatusStyle(f.Expired).Render(f.Value)
		case policy.KindList:
			value = styles.Text.Width(valueWidth).Render(f.Value)
		default:
			if f.Value == policy.Placeholder {
				value = styles.FaintText.Render(f.Value)
			} else {
				value = styles.Text.Width(valueWidth).Render(f.Value)
			}
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, "  ", value))
	}
	return b.String()
}

func (m Model) renderDetailOverlay() string {
	styles := m.theme.Styles()
	w, h := m.detailSize()
	inner := w - 2

	title := "Apólice " + m.modal.Key()
	if rec, ok := m.modal.Record(); ok {
		title = "Apólice " + rec.Key()
	}
	footer := styles.MutedText.Render("esc/x fechar  c copiar número  ↑/↓ rolar")

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.AccentText.Bold(true).Render(truncate(title, inner-2)),
		m.detailViewport.View(),
		footer,
	)
	return m.theme.BoxStyle(true).
		Padding(0, 1).
		Width(inner).
		Height(h - 2).
		Render(body)
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CloseDetail):
		m.closeDetail()
		return m, nil
	case key.Matches(msg, m.keys.CopyNumber):
		rec, ok := m.modal.Record()
		if !ok || rec.Key() == "" {
			return m, nil
		}
		return m, copyCmd(rec.Key())
	}
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m Model) handleDetailMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if !m.overlayRect().contains(msg.X, msg.Y) {
			m.closeDetail()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}
