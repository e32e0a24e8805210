package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/apolice/internal/query"
)

type formField struct {
	name        string
	label       string
	placeholder string
}

// formFields lists the criteria inputs in tab order.
var formFields = []formField{
	{name: query.Numero, label: "Número", placeholder: "ex.: 0001"},
	{name: query.Cliente, label: "Cliente", placeholder: "nome do segurado"},
	{name: query.DocumentNumber, label: "Documento", placeholder: "CPF ou CNPJ"},
	{name: query.TipoBeneficiario, label: "Tipo de Beneficiário", placeholder: "titular, dependente..."},
	{name: query.StartDate, label: "Data Início", placeholder: "AAAA-MM-DD"},
	{name: query.EndDate, label: "Data Fim", placeholder: "AAAA-MM-DD"},
}

const formColumns = 3

// searchForm holds the criteria inputs.
type searchForm struct {
	inputs []textinput.Model
	focus  int
	active bool
}

func newSearchForm(initial map[string]string) searchForm {
	inputs := make([]textinput.Model, len(formFields))
	for i, f := range formFields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = f.placeholder
		in.CharLimit = 128
		in.Width = 20
		if v, ok := initial[f.name]; ok {
			in.SetValue(v)
		}
		inputs[i] = in
	}
	return searchForm{inputs: inputs}
}

// Values returns the raw input values keyed by parameter name. Blank values
// are included; query.Build drops them.
func (f searchForm) Values() map[string]string {
	out := make(map[string]string, len(f.inputs))
	for i, in := range f.inputs {
		out[formFields[i].name] = in.Value()
	}
	return out
}

// Focus activates the form, focusing the current field.
func (f *searchForm) Focus() tea.Cmd {
	f.active = true
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.focus].Focus()
}

// Blur deactivates the form.
func (f *searchForm) Blur() {
	f.active = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *searchForm) Next() tea.Cmd {
	f.focus = (f.focus + 1) % len(f.inputs)
	return f.Focus()
}

func (f *searchForm) Prev() tea.Cmd {
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	return f.Focus()
}

// Clear empties every input.
func (f *searchForm) Clear() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
}

func (f *searchForm) Update(msg tea.Msg) tea.Cmd {
	if !f.active {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *searchForm) setWidth(width int) {
	cell := width/formColumns - 2
	if cell < 10 {
		cell = 10
	}
	for i := range f.inputs {
		f.inputs[i].Width = cell
	}
}

// View lays the fields out in rows of formColumns cells.
func (f searchForm) View(theme Theme, width int) string {
	styles := theme.Styles()
	cellWidth := width / formColumns
	if cellWidth < 12 {
		cellWidth = 12
	}
	var rows []string
	for start := 0; start < len(f.inputs); start += formColumns {
		end := start + formColumns
		if end > len(f.inputs) {
			end = len(f.inputs)
		}
		cells := make([]string, 0, formColumns)
		for i := start; i < end; i++ {
			label := styles.Label
			if f.active && i == f.focus {
				label = styles.AccentText.Bold(true)
			}
			cell := lipgloss.JoinVertical(lipgloss.Left,
				label.Render(truncate(formFields[i].label, cellWidth-1)),
				f.inputs[i].View(),
			)
			cells = append(cells, lipgloss.NewStyle().Width(cellWidth).Render(cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}
