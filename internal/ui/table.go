package ui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/apolice/internal/policy"
	"github.com/five82/apolice/internal/state"
)

// TableRow is one summary line of the results table. Key is the stable
// record key used to open the detail overlay; it is empty for records that
// cannot be selected.
type TableRow struct {
	Key        string
	Numero     string
	Cliente    string
	Vencimento string
}

// TableView is the projection of a result set into table rows.
type TableView struct {
	Rows        []TableRow
	Empty       bool
	Placeholder string
}

// ProjectTable builds the table rows for a result set. It has no side effects.
func ProjectTable(set policy.ResultSet) TableView {
	if len(set) == 0 {
		return TableView{Empty: true, Placeholder: EmptyPlaceholder}
	}
	rows := make([]TableRow, 0, len(set))
	for _, rec := range set {
		key := rec.Key()
		numero := key
		if numero == "" {
			numero = policy.Placeholder
		}
		venc, _ := rec.Lookup(policy.FieldVencimento)
		rows = append(rows, TableRow{
			Key:        key,
			Numero:     numero,
			Cliente:    policy.FormatValue(rec.Cliente()),
			Vencimento: policy.FormatDate(venc),
		})
	}
	return TableView{Rows: rows}
}

const (
	numeroColumnWidth     = 16
	vencimentoColumnWidth = 12
	minClienteColumnWidth = 12
)

// resultsTable renders the current TableView with bubbles/table and remembers
// which store sequence it last projected.
type resultsTable struct {
	model     table.Model
	view      TableView
	seq       uint64
	projected bool
}

func newResultsTable() resultsTable {
	t := table.New(
		table.WithColumns(tableColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	return resultsTable{model: t}
}

func tableColumns(width int) []table.Column {
	// each column carries one cell of padding on both sides
	cliente := width - numeroColumnWidth - vencimentoColumnWidth - 6
	if cliente < minClienteColumnWidth {
		cliente = minClienteColumnWidth
	}
	return []table.Column{
		{Title: "Número", Width: numeroColumnWidth},
		{Title: "Cliente", Width: cliente},
		{Title: "Vencimento", Width: vencimentoColumnWidth},
	}
}

// sync re-projects the rows when the store holds a result set the table has
// not shown yet. It reports whether the rows changed.
func (t *resultsTable) sync(snap state.Snapshot) bool {
	if !snap.HasResults {
		return false
	}
	if t.projected && snap.Seq == t.seq {
		return false
	}
	t.view = ProjectTable(snap.Records)
	t.seq = snap.Seq
	t.projected = true

	rows := make([]table.Row, len(t.view.Rows))
	for i, r := range t.view.Rows {
		rows[i] = table.Row{r.Numero, r.Cliente, r.Vencimento}
	}
	t.model.SetRows(rows)
	t.model.SetCursor(0)
	return true
}

// SelectedKey returns the key of the highlighted row.
func (t resultsTable) SelectedKey() string {
	if t.view.Empty || len(t.view.Rows) == 0 {
		return ""
	}
	i := t.model.Cursor()
	if i < 0 || i >= len(t.view.Rows) {
		return ""
	}
	return t.view.Rows[i].Key
}

func (t *resultsTable) setSize(width, height int) {
	if height < 3 {
		height = 3
	}
	t.model.SetColumns(tableColumns(width))
	t.model.SetWidth(width)
	t.model.SetHeight(height)
}

func (t *resultsTable) applyTheme(theme Theme) {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		BorderBottom(true).
		Foreground(lipgloss.Color(theme.Accent)).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(theme.SelectionText)).
		Background(lipgloss.Color(theme.SelectionBg)).
		Bold(false)
	s.Cell = s.Cell.Foreground(lipgloss.Color(theme.Text))
	t.model.SetStyles(s)
}

func (t *resultsTable) focus(on bool) {
	if on {
		t.model.Focus()
	} else {
		t.model.Blur()
	}
}

func (t *resultsTable) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return cmd
}

func (t resultsTable) render() string {
	return t.model.View()
}
