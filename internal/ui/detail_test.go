package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestRenderDetail(t *testing.T) {
	set := decodeSet(t, `[{"numero":"0001","cliente":"Maria Silva","vencimento":"2020-01-31",
		"details":{"status":"VENCIDA","coberturas":["Roubo","Incêndio"],"corretor":"Ana"}}]`)

	out := renderDetail(set[0], GetTheme("Nightfox"), 60)
	for _, want := range []string{"Número", "0001", "Maria Silva", "31/01/2020", "VENCIDA", "Roubo, Incêndio", "Corretor", "Ana"} {
		if !strings.Contains(out, want) {
			t.Fatalf("detail output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Número") > strings.Index(out, "Corretor") {
		t.Fatal("priority fields should come before residual fields")
	}
}

func TestCenterOffset(t *testing.T) {
	cases := []struct{ total, size, want int }{
		{100, 78, 11},
		{101, 78, 11},
		{83, 78, 2},
		{41, 28, 6},
		{40, 40, 0},
		{30, 40, 0},
	}
	for _, tc := range cases {
		if got := centerOffset(tc.total, tc.size); got != tc.want {
			t.Fatalf("centerOffset(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

// boxOrigin finds the top-left corner of the rounded overlay border in a
// rendered view.
func boxOrigin(t *testing.T, view string) (int, int) {
	t.Helper()
	for y, line := range strings.Split(view, "\n") {
		if i := strings.Index(line, "╭"); i >= 0 {
			return lipgloss.Width(line[:i]), y
		}
	}
	t.Fatalf("no overlay border in view:\n%s", view)
	return 0, 0
}

func TestModel_OverlayRectMatchesRenderedBox(t *testing.T) {
	sizes := []struct{ w, h int }{
		{100, 40},
		{101, 41},
		{83, 25},
		{84, 26},
	}
	for _, size := range sizes {
		m, _ := newTestModel(t, Options{})
		m = step(t, m, tea.WindowSizeMsg{Width: size.w, Height: size.h})
		m = openOn(t, m, `[{"numero":"A","cliente":"Ana"}]`)
		if !m.modal.IsOpen() {
			t.Fatalf("%dx%d: overlay did not open", size.w, size.h)
		}

		x, y := boxOrigin(t, m.View())
		r := m.overlayRect()
		if r.x != x || r.y != y {
			t.Fatalf("%dx%d: overlayRect origin = (%d,%d), rendered box at (%d,%d)", size.w, size.h, r.x, r.y, x, y)
		}

		// the border cell itself is inside the overlay
		m = step(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		if !m.modal.IsOpen() {
			t.Fatalf("%dx%d: click on the border at (%d,%d) closed the overlay", size.w, size.h, x, y)
		}

		if x > 0 {
			m = step(t, m, tea.MouseMsg{X: x - 1, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
			if m.modal.IsOpen() {
				t.Fatalf("%dx%d: click left of the border did not close the overlay", size.w, size.h)
			}
		}
	}
}
