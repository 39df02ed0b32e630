// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/tensaku-tui/internal/compose"
	"github.com/jeranaias/tensaku-tui/internal/config"
	"github.com/jeranaias/tensaku-tui/internal/correction"
	"github.com/jeranaias/tensaku-tui/internal/history"
	"github.com/jeranaias/tensaku-tui/internal/model"
	"github.com/jeranaias/tensaku-tui/internal/preference"
	"github.com/jeranaias/tensaku-tui/internal/session"
	"github.com/jeranaias/tensaku-tui/internal/ui/styles"
	"github.com/jeranaias/tensaku-tui/internal/undo"
)

// =============================================================================
// MODE
// =============================================================================

// Mode is the surface currently receiving keys.
type Mode int

const (
	ModeCompose Mode = iota
	ModeCorrection
	ModeModelPicker
	ModeHistory
)

// Gateway is the service surface the UI's components call.
type Gateway interface {
	correction.Gateway
	preference.Gateway
	history.Gateway
}

// Options configures a Model.
type Options struct {
	Config  *config.Config
	Session session.Context
	Gateway Gateway
	Logger  *zap.Logger

	// Reloads, when set, delivers configs re-read from disk. Display
	// settings are applied live; the rest takes effect on restart.
	Reloads <-chan *config.Config

	// Static disables the spinner and cursor blink. Used by tests, which
	// run commands synchronously.
	Static bool
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model of the composition view. It holds no
// correction, preference or history state itself; it maps keys onto the
// intents of those components and renders their state.
type Model struct {
	cfg    *config.Config
	sess   session.Context
	logger *zap.Logger
	theme  *styles.Theme
	keys   KeyMap
	static bool

	reloads <-chan *config.Config

	composer *compose.Composer
	prefs    *preference.Store
	hist     *history.Paginator
	style    model.CorrectionStyle

	mode          Mode
	variantCursor int
	pickerCursor  int

	// notice is a one-line status message, cleared on the next key.
	notice string

	input   textarea.Model
	log     viewport.Model
	histVP  viewport.Model
	spinner spinner.Model

	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates the composition view.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("ui")

	corr := correction.NewController(opts.Gateway, correction.ParseLocale(cfg.UI.Locale), logger)

	ta := textarea.New()
	ta.Placeholder = "メッセージを入力… (C-e で添削)"
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	if opts.Static {
		ta.Cursor.SetMode(cursor.CursorStatic)
	}
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		cfg:      cfg,
		sess:     opts.Session,
		logger:   logger,
		theme:    styles.NewTheme(cfg.UI.Color),
		keys:     DefaultKeyMap(),
		static:   opts.Static,
		reloads:  opts.Reloads,
		composer: compose.New(corr, undo.NewStack(cfg.Undo.MaxDepth), logger),
		prefs:    preference.NewStore(opts.Gateway, logger),
		hist:     history.New(opts.Gateway, cfg.History.PageSize, logger),
		style:    cfg.Style(),
		input:    ta,
		log:      viewport.New(80, 10),
		histVP:   viewport.New(80, 10),
		spinner:  sp,
		width:    80,
		height:   24,
	}
	m.spinner.Style = m.theme.Spinner
	m.refreshLog()
	return m
}

// Init loads the model preference for the session.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.sess.Valid() {
		cmds = append(cmds, m.prefs.Load(m.sess))
	}
	cmds = append(cmds, m.waitForReload())
	if !m.static {
		cmds = append(cmds, textarea.Blink, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// ConfigReloadedMsg carries a config re-read from disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// waitForReload blocks until the next reload. A closed channel ends the
// subscription.
func (m *Model) waitForReload() tea.Cmd {
	ch := m.reloads
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Config: cfg}
	}
}

// applyConfig takes the display settings of cfg. Connection, identity and
// paging settings are fixed for the life of the view.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	next := m.cfg.Clone()
	next.UI.Color = cfg.UI.Color
	next.UI.ShowReasons = cfg.UI.ShowReasons
	m.cfg = next

	m.theme = styles.NewTheme(next.UI.Color)
	m.spinner.Style = m.theme.Spinner
	m.notice = "設定を再読み込みしました"
	m.refreshLog()
	m.refreshHistory()
}

// =============================================================================
// ACCESSORS (used by tests and the status line)
// =============================================================================

// Mode returns the surface receiving keys.
func (m *Model) Mode() Mode { return m.mode }

// Composer returns the composition state.
func (m *Model) Composer() *compose.Composer { return m.composer }

// Preferences returns the model preference store.
func (m *Model) Preferences() *preference.Store { return m.prefs }

// History returns the history paginator.
func (m *Model) History() *history.Paginator { return m.hist }

// Style returns the correction style used for new requests.
func (m *Model) Style() model.CorrectionStyle { return m.style }

// InputValue returns the text in the input box.
func (m *Model) InputValue() string { return m.input.Value() }

// Notice returns the current status message.
func (m *Model) Notice() string { return m.notice }
