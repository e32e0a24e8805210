// Package ui provides the terminal user interface for querying insurance
// policies ("apólices").
//
// # Architecture Overview
//
// The UI is a single Bubble Tea program. The root Model owns a criteria form,
// a results table, a detail overlay and two informational overlays (help and
// the client log). Searches run inside tea.Cmds and come back as
// searchResultMsg values; the Update loop applies them to a state.Store,
// which drops any response older than one already applied.
//
// # Package Structure
//
//   - app.go: Model, Update/View, search dispatch and Run
//   - form.go: criteria inputs (bubbles/textinput)
//   - table.go: TableView projection and the bubbles/table wrapper
//   - modal.go: ModalController, the key-addressed overlay state
//   - detail.go: detail overlay rendering, clipboard and mouse handling
//   - header.go, help.go, logs.go: status bar and overlays
//   - theme.go, keys.go, strings.go, layout.go: styling, bindings, text
//
// # Event Flow
//
//  1. Enter in the form builds query.Params and dispatches a search.
//  2. The Searcher assigns a sequence number; the request runs in a Cmd.
//  3. The result is applied with Store.Replace or Store.Fail. Stale results
//     are logged and counted, never shown.
//  4. The table re-projects and the overlay revalidates its record key.
//
// # Key Bindings
//
//   - /: Edit criteria (Tab/Shift+Tab move, Enter searches, Esc leaves)
//   - Enter: Open details for the selected row
//   - r: Repeat the last search
//   - Esc, x or click outside: Close details
//   - c: Copy the policy number
//   - T: Cycle theme
//   - L: Client log
//   - h or ?: Help
//   - e or Ctrl+C: Exit
package ui
