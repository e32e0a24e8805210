package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/apolice/internal/metrics"
	"github.com/five82/apolice/internal/prefs"
	"github.com/five82/apolice/internal/query"
	"github.com/five82/apolice/internal/search"
	"github.com/five82/apolice/internal/state"
)

// Options configures the UI.
type Options struct {
	Context         context.Context
	Client          search.Searcher
	Store           *state.Store
	Logger          *zap.Logger
	BaseURL         string
	ThemeName       string
	PrefsPath       string
	LogPath         string
	RequireCriteria bool
	RefreshInterval time.Duration
	// InitialCriteria prefills the form, usually from saved preferences.
	InitialCriteria map[string]string
}

type searchResultMsg struct {
	result search.Result
}

type refreshTickMsg struct{}

type noticeExpiredMsg struct {
	id int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx             context.Context
	client          search.Searcher
	store           *state.Store
	logger          *zap.Logger
	baseURL         string
	prefsPath       string
	logPath         string
	requireCriteria bool
	refreshInterval time.Duration

	// UI state
	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool

	form           searchForm
	table          resultsTable
	modal          ModalController
	detailViewport viewport.Model
	spinner        spinner.Model

	// Search state
	snapshot      state.Snapshot
	inFlight      int
	lastSubmitted query.Params
	hasSubmitted  bool
	lastApplied   query.Params
	hasApplied    bool

	notice   string
	noticeID int

	// Overlays
	showHelp    bool
	showLogs    bool
	logViewport viewport.Model
	logLines    []string
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = ThemeNames()[0]
	}

	m := Model{
		ctx:             ctx,
		client:          opts.Client,
		store:           store,
		logger:          logger,
		baseURL:         opts.BaseURL,
		prefsPath:       opts.PrefsPath,
		logPath:         opts.LogPath,
		requireCriteria: opts.RequireCriteria,
		refreshInterval: opts.RefreshInterval,
		theme:           GetTheme(themeName),
		keys:            DefaultKeyMap(),
		form:            newSearchForm(opts.InitialCriteria),
		table:           newResultsTable(),
		detailViewport:  viewport.New(0, 0),
		logViewport:     viewport.New(0, 0),
		spinner:         spinner.New(spinner.WithSpinner(spinner.Dot)),
		snapshot:        store.Snapshot(),
	}
	m.modal = NewModalController(store.Lookup)
	m.table.applyTheme(m.theme)
	m.table.focus(false)
	m.form.Focus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.refreshInterval > 0 {
		cmds = append(cmds, refreshCmd(m.refreshInterval))
	}
	return tea.Batch(cmds...)
}

func refreshCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func searchCmd(ctx context.Context, client search.Searcher, req search.Request) tea.Cmd {
	return func() tea.Msg {
		return searchResultMsg{result: client.Do(ctx, req)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case searchResultMsg:
		m.handleSearchResult(msg.result)
		return m, nil

	case refreshTickMsg:
		var cmds []tea.Cmd
		if m.hasApplied && m.inFlight == 0 {
			cmds = append(cmds, m.dispatch(m.lastApplied))
		}
		cmds = append(cmds, refreshCmd(m.refreshInterval))
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if m.inFlight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clipboardMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard copy failed", zap.Error(msg.err))
			return m, m.setNotice(noticeCopyFailed)
		}
		return m, m.setNotice(noticeCopied)

	case noticeExpiredMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}

	if m.form.active {
		return m, m.form.Update(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return loadingText
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogs()
	}
	if m.modal.IsOpen() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderDetailOverlay())
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.showHelp {
		// any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.showLogs {
		return m.handleLogsKey(msg)
	}
	if m.modal.BackgroundLocked() {
		return m.handleDetailKey(msg)
	}
	if m.form.active {
		return m.handleFormKey(msg)
	}
	return m.handleTableKey(msg)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.focusTable()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.form.Next()
	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.Prev()
	case key.Matches(msg, m.keys.ClearForm):
		m.form.Clear()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()
	}
	return m, m.form.Update(msg)
}

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.table.applyTheme(m.theme)
		return m, m.savePrefs()
	case key.Matches(msg, m.keys.Logs):
		return m, m.openLogs()
	case key.Matches(msg, m.keys.FocusForm):
		m.table.focus(false)
		return m, m.form.Focus()
	case key.Matches(msg, m.keys.OpenDetail):
		m.openDetail()
		return m, nil
	case key.Matches(msg, m.keys.Rerun):
		if !m.hasSubmitted {
			return m, m.setNotice(noticeNoQuery)
		}
		return m, m.dispatch(m.lastSubmitted)
	}
	return m, m.table.update(msg)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.showHelp:
		return m, nil
	case m.showLogs:
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		return m, cmd
	case m.modal.BackgroundLocked():
		return m.handleDetailMouse(msg)
	}
	return m, nil
}

func (m *Model) focusTable() {
	m.form.Blur()
	m.table.focus(true)
}

// submit builds the query from the form and dispatches it. With
// require_criteria set an empty query shows a notice instead.
func (m *Model) submit() tea.Cmd {
	params := query.Build(m.form.Values())
	if params.Empty() && m.requireCriteria {
		return m.setNotice(noticeNoCriteria)
	}
	m.lastSubmitted = params
	m.hasSubmitted = true
	m.focusTable()
	return tea.Batch(m.dispatch(params), m.savePrefs())
}

// dispatch starts one search. Responses may arrive in any order; the store
// decides which one is shown.
func (m *Model) dispatch(params query.Params) tea.Cmd {
	if m.client == nil {
		return nil
	}
	req := m.client.Prepare(params)
	m.inFlight++
	cmds := []tea.Cmd{searchCmd(m.ctx, m.client, req)}
	if m.inFlight == 1 {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleSearchResult(res search.Result) {
	if m.inFlight > 0 {
		m.inFlight--
	}

	var err error
	if res.OK() {
		err = m.store.Replace(res.Request.Seq, res.Records)
	} else {
		err = m.store.Fail(res.Request.Seq, res.Err)
	}
	if errors.Is(err, state.ErrStaleResponse) {
		m.logger.Info("discarded stale search response",
			zap.Uint64("seq", res.Request.Seq),
			zap.Uint64("resolved", m.store.Resolved()),
			zap.String("request_id", res.Request.ID),
		)
		metrics.StaleResponsesTotal.Inc()
		return
	}
	if res.OK() {
		m.lastApplied = res.Request.Params
		m.hasApplied = true
	}
	m.syncFromStore()
}

// syncFromStore pulls the latest snapshot into the table and overlay.
func (m *Model) syncFromStore() {
	m.snapshot = m.store.Snapshot()
	m.table.sync(m.snapshot)
	if !m.modal.Revalidate() && m.modal.IsOpen() {
		m.updateDetailViewport()
	}
	metrics.SearchResults.Set(float64(len(m.snapshot.Records)))
}

func (m *Model) setNotice(text string) tea.Cmd {
	m.noticeID++
	m.notice = text
	id := m.noticeID
	return tea.Tick(DefaultNoticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{id: id} })
}

// savePrefs persists the theme and last criteria.
func (m *Model) savePrefs() tea.Cmd {
	if m.prefsPath == "" {
		return nil
	}
	p := prefs.Prefs{Theme: m.theme.Name}
	if m.hasSubmitted {
		p.LastCriteria = map[string]string(m.lastSubmitted.Clone())
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save preferences failed", zap.String("path", m.prefsPath), zap.Error(err))
		return m.setNotice(noticeThemeSaveErr)
	}
	return nil
}

// formBoxHeight is two rows of label+input plus the border.
const formBoxHeight = 6

func (m *Model) layout() {
	m.form.setWidth(m.width - 4)
	// header, command bar, form box, status line, table border
	tableHeight := m.height - 1 - 1 - formBoxHeight - 1 - 2
	if tableHeight < LayoutMinTableHeight {
		tableHeight = LayoutMinTableHeight
	}
	m.table.setSize(m.width-2, tableHeight)
	m.updateDetailViewport()
	m.sizeLogViewport()
}

func (m Model) renderMain() string {
	styles := m.theme.Styles()

	formBox := m.theme.BoxStyle(m.form.active).
		Width(m.width - 2).
		Render(m.form.View(m.theme, m.width-4))

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = styles.Banner.Width(m.width).Render(truncate(describeError(m.snapshot.LastError), m.width-2))
	case m.notice != "":
		status = styles.WarningText.Padding(0, 1).Render(truncate(m.notice, m.width-2))
	}

	var body string
	switch {
	case !m.snapshot.HasResults:
		body = styles.MutedText.Padding(1, 1).Render(IntroHint)
	case m.table.view.Empty:
		body = styles.MutedText.Padding(1, 1).Render(m.table.view.Placeholder)
	default:
		body = m.table.render()
	}
	bodyBox := m.theme.BoxStyle(!m.form.active).
		Width(m.width - 2).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderCommandBar(),
		formBox,
		status,
		bodyBox,
	)
}

// Run starts the program and blocks until it exits.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
