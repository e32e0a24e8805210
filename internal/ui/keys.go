package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	ForceQuit  key.Binding
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Logs       key.Binding

	// Form
	FocusForm key.Binding
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	ClearForm key.Binding
	Escape    key.Binding

	// Table
	OpenDetail key.Binding
	Rerun      key.Binding

	// Overlay
	CloseDetail key.Binding
	CopyNumber  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Sair"),
		),
		Quit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Sair"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Ajuda"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Trocar tema"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Log do cliente"),
		),

		FocusForm: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Editar critérios"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Próximo campo"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Campo anterior"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Buscar"),
		),
		ClearForm: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Limpar critérios"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Voltar à tabela"),
		),

		OpenDetail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Detalhes"),
		),
		Rerun: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Repetir busca"),
		),

		CloseDetail: key.NewBinding(
			key.WithKeys("esc", "x"),
			key.WithHelp("esc/x", "Fechar"),
		),
		CopyNumber: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Copiar número"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusForm, k.OpenDetail, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusForm, k.NextField, k.PrevField, k.Submit, k.ClearForm, k.Escape},
		{k.OpenDetail, k.Rerun},
		{k.CloseDetail, k.CopyNumber},
		{k.CycleTheme, k.Logs, k.Help, k.Quit, k.ForceQuit},
	}
}
