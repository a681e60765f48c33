package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvarley/shopkeep/internal/portal"
	"github.com/nvarley/shopkeep/internal/prefs"
	"github.com/nvarley/shopkeep/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewLogin View = iota
	ViewProducts
	ViewFavourites
	ViewEditor
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    portal.API
	Store     *state.Store
	Logger    *slog.Logger
	PollTick  time.Duration
	ThemeName string
	StartView string // prefs.ViewProducts or prefs.ViewFavourites
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    portal.API
	store     *state.Store
	logger    *slog.Logger
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme       Theme
	styles      Styles
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// View state
	login   loginState
	catalog catalogState
	editor  *editorState

	// Notifications
	toast    *toast
	toastSeq int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = 30 * time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)

	m := Model{
		ctx:         ctx,
		client:      opts.Client,
		store:       opts.Store,
		logger:      logger,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		theme:       theme,
		styles:      theme.Styles(),
		currentView: ViewLogin,
		login:       newLoginState(),
		catalog:     newCatalogState(theme),
	}

	// A resumed session skips the login screen and lands on the view the
	// user left off in.
	if opts.Store != nil {
		m.snapshot = opts.Store.Snapshot()
		if m.snapshot.Authenticated() {
			m.currentView = ViewProducts
			if opts.StartView == prefs.ViewFavourites {
				m.currentView = ViewFavourites
			}
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewLogin {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.catalog.resize(msg.Width, msg.Height)
		if m.editor != nil {
			m.editor.resize(msg.Width, msg.Height)
		}
		m.refreshCatalogRows()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		return m.handleSnapshot(state.Snapshot(msg))

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case logoutDoneMsg:
		// The jar is already dropped server-side; local state goes too.
		m.store.SetUser(nil)
		m.snapshot = m.store.Snapshot()
		m.closeEditor()
		m.login = newLoginState()
		m.currentView = ViewLogin
		return m, textinput.Blink

	case productFetchedMsg:
		return m.handleProductFetched(msg)

	case saveResultMsg:
		return m.handleSaveResult(msg)

	case deleteResultMsg:
		if msg.err != nil {
			m.logger.Error("delete product failed", "id", msg.id, "error", msg.err)
			return m, m.pushToast(toastError, "Failed to delete product")
		}
		return m, tea.Batch(
			m.pushToast(toastSuccess, "Product deleted"),
			refreshCatalogCmd(m.ctx, m.client, m.store),
		)

	case favouriteResultMsg:
		if msg.err != nil {
			m.logger.Error("favourite toggle failed", "id", msg.id, "error", msg.err)
			return m, m.pushToast(toastError, "Failed to update favourite")
		}
		return m, refreshCatalogCmd(m.ctx, m.client, m.store)

	case fileReadMsg:
		return m.handleFileRead(msg)

	case toastExpiredMsg:
		if m.toast != nil && m.toast.id == msg.id {
			m.toast = nil
		}
		return m, nil
	}

	// Everything else (blink ticks, spinner frames, filepicker traversal)
	// belongs to whichever component currently has focus.
	return m.updateFocused(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.currentView {
	case ViewLogin:
		return m.renderLogin()
	case ViewEditor:
		return m.renderEditor()
	default:
		return m.renderCatalog()
	}
}

// handleKey routes keyboard input to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.closeEditor()
		return m, tea.Quit
	}

	switch m.currentView {
	case ViewLogin:
		return m.handleLoginKey(msg)
	case ViewEditor:
		return m.handleEditorKey(msg)
	default:
		return m.handleCatalogKey(msg)
	}
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleSnapshot(snap state.Snapshot) (tea.Model, tea.Cmd) {
	m.snapshot = snap
	m.lastUpdated = time.Now()
	m.refreshCatalogRows()

	// The refresher may discover an expired session before the UI does.
	if !snap.Authenticated() && m.currentView != ViewLogin {
		m.closeEditor()
		m.login = newLoginState()
		m.currentView = ViewLogin
		return m, textinput.Blink
	}
	return m, nil
}

// cycleTheme switches to the next theme and persists the choice.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.styles = m.theme.Styles()
	m.catalog.applyTheme(m.theme)
	m.savePrefs()
}

// savePrefs persists the theme and the active catalog view.
func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	view := prefs.ViewProducts
	if m.currentView == ViewFavourites {
		view = prefs.ViewFavourites
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, View: view})
}

// closeEditor disposes the active edit session, if any. Safe to call twice.
func (m *Model) closeEditor() {
	if m.editor == nil {
		return
	}
	m.editor.dispose()
	m.editor = nil
}

// sessionExpired reports whether an API error means the cookie died.
func sessionExpired(err error) bool {
	return errors.Is(err, portal.ErrUnauthorized)
}

// updateFocused forwards component-internal messages to the focused widget.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewLogin:
		return m.updateLoginInputs(msg)
	case ViewEditor:
		return m.updateEditorComponents(msg)
	default:
		return m.updateCatalogComponents(msg)
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
