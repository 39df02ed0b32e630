// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/tensaku-tui/internal/correction"
	"github.com/jeranaias/tensaku-tui/internal/history"
	"github.com/jeranaias/tensaku-tui/internal/model"
	"github.com/jeranaias/tensaku-tui/internal/preference"
	"github.com/jeranaias/tensaku-tui/internal/ui/styles"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update routes messages: component results go to their owners, keys to
// the handler of the current mode.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.static {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case correction.ResultMsg:
		if m.composer.Update(msg) {
			m.variantCursor = 0
		}
		return m, nil

	case preference.CatalogMsg, preference.SettingsMsg:
		_ = m.prefs.Update(msg)
		m.syncPickerCursor()
		return m, nil

	case preference.SelectedMsg:
		// Failures are logged by the store; the UI keeps the old model.
		if err := m.prefs.Update(msg); err == nil && m.prefs.Preferred() == msg.Model {
			m.notice = styles.StatusIndicators.Success + " モデルを変更しました: " + m.prefs.DisplayName(msg.Model)
		}
		return m, nil

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		return m, m.waitForReload()

	case history.PageMsg:
		if m.hist.Update(msg) {
			m.refreshHistory()
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, m.quit()
		}
		m.notice = ""
		switch m.mode {
		case ModeCorrection:
			return m.handleCorrectionKey(msg)
		case ModeModelPicker:
			return m.handlePickerKey(msg)
		case ModeHistory:
			return m.handleHistoryKey(msg)
		default:
			return m.handleComposeKey(msg)
		}
	}

	return m, nil
}

func (m *Model) quit() tea.Cmd {
	m.composer.Teardown()
	m.hist.Close()
	m.quitting = true
	return tea.Quit
}

// =============================================================================
// COMPOSE MODE
// =============================================================================

func (m *Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Send):
		m.composer.SetText(m.input.Value())
		if _, err := m.composer.Send(); err != nil {
			return m, nil
		}
		m.input.Reset()
		m.refreshLog()
		return m, nil

	case key.Matches(msg, m.keys.Newline):
		m.input.InsertString("\n")
		m.composer.SetText(m.input.Value())
		return m, nil

	case key.Matches(msg, m.keys.Correct):
		return m, m.openCorrection()

	case key.Matches(msg, m.keys.Undo):
		if text, ok := m.composer.Undo(); ok {
			m.input.SetValue(text)
		}
		return m, nil

	case key.Matches(msg, m.keys.ModelPick):
		return m, m.openPicker()

	case key.Matches(msg, m.keys.CycleStyle):
		m.style = m.style.Next()
		m.notice = "スタイル: " + styleLabel(m.style)
		return m, nil

	case key.Matches(msg, m.keys.History):
		return m, m.openHistory()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.composer.SetText(m.input.Value())
	return m, cmd
}

func (m *Model) openCorrection() tea.Cmd {
	m.composer.SetText(m.input.Value())

	opts := correction.Options{
		UserID:         m.sess.UserID,
		PreferredModel: m.prefs.Preferred(),
	}
	if m.style != model.StyleDefault {
		opts.Style = m.style.String()
	}

	cmd, err := m.composer.OpenCorrection(opts)
	if err != nil {
		if errors.Is(err, correction.ErrEmptyInput) {
			m.notice = "添削するテキストを入力してください"
		}
		return nil
	}
	m.mode = ModeCorrection
	m.variantCursor = 0
	return m.withSpinner(cmd)
}

// =============================================================================
// CORRECTION DIALOG
// =============================================================================

func (m *Model) handleCorrectionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	corr := m.composer.Correction()

	if key.Matches(msg, m.keys.Close) {
		m.composer.CloseCorrection()
		m.mode = ModeCompose
		return m, nil
	}

	switch corr.Status() {
	case correction.StatusReady:
		n := len(corr.Session().Variants)
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.variantCursor > 0 {
				m.variantCursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.variantCursor < n-1 {
				m.variantCursor++
			}
		case key.Matches(msg, m.keys.Choose):
			if n == 0 {
				m.composer.CloseCorrection()
				m.mode = ModeCompose
				return m, nil
			}
			m.selectVariant(m.variantCursor)
		default:
			if idx, ok := variantIndex(msg.String()); ok && idx < n {
				m.selectVariant(idx)
			}
		}

	case correction.StatusFailed:
		if key.Matches(msg, m.keys.Retry) {
			cmd, err := m.composer.RetryCorrection()
			if err != nil {
				m.logger.Debug("retry rejected", zap.Error(err))
				return m, nil
			}
			return m, m.withSpinner(cmd)
		}

	case correction.StatusIdle:
		m.mode = ModeCompose
	}
	return m, nil
}

func (m *Model) selectVariant(index int) {
	text, err := m.composer.SelectVariant(index)
	if err != nil {
		m.logger.Debug("variant selection rejected", zap.Int("index", index), zap.Error(err))
		return
	}
	m.input.SetValue(text)
	m.mode = ModeCompose
}

// =============================================================================
// MODEL PICKER
// =============================================================================

func (m *Model) openPicker() tea.Cmd {
	if !m.sess.Valid() {
		m.notice = "ユーザーIDが設定されていません (tensaku config set user.id <id>)"
		return nil
	}
	m.mode = ModeModelPicker
	m.syncPickerCursor()
	if !m.prefs.Loaded() {
		return m.withSpinner(m.prefs.Load(m.sess))
	}
	return nil
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	opts := m.prefs.Options()
	switch {
	case key.Matches(msg, m.keys.Close):
		m.mode = ModeCompose
	case key.Matches(msg, m.keys.Up):
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.pickerCursor < len(opts)-1 {
			m.pickerCursor++
		}
	case key.Matches(msg, m.keys.Choose):
		if m.pickerCursor >= len(opts) {
			return m, nil
		}
		cmd, err := m.prefs.SelectModel(m.sess, opts[m.pickerCursor].ID)
		if err != nil {
			m.logger.Debug("model selection rejected", zap.Error(err))
			return m, nil
		}
		m.mode = ModeCompose
		return m, cmd
	}
	return m, nil
}

func (m *Model) syncPickerCursor() {
	for i, opt := range m.prefs.Options() {
		if opt.ID == m.prefs.Preferred() {
			m.pickerCursor = i
			return
		}
	}
	m.pickerCursor = 0
}

// =============================================================================
// HISTORY PANEL
// =============================================================================

func (m *Model) openHistory() tea.Cmd {
	if !m.sess.Valid() {
		m.notice = "ユーザーIDが設定されていません (tensaku config set user.id <id>)"
		return nil
	}
	m.mode = ModeHistory
	cmd := m.hist.Open(m.sess)
	m.refreshHistory()
	return m.withSpinner(cmd)
}

func (m *Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.hist.Close()
		m.mode = ModeCompose
		return m, nil

	case key.Matches(msg, m.keys.LoadMore):
		return m, m.loadMoreHistory()

	case key.Matches(msg, m.keys.PageDown):
		m.histVP.ViewDown()
		if m.histVP.AtBottom() {
			return m, m.loadMoreHistory()
		}
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.histVP.ViewUp()
	case key.Matches(msg, m.keys.Up):
		m.histVP.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.histVP.LineDown(1)
	}
	return m, nil
}

func (m *Model) loadMoreHistory() tea.Cmd {
	cmd := m.hist.LoadMore()
	if cmd == nil {
		return nil
	}
	m.refreshHistory()
	return m.withSpinner(cmd)
}

// =============================================================================
// HELPERS
// =============================================================================

// withSpinner pairs a request command with a spinner tick so the loading
// indicator animates while it is in flight.
func (m *Model) withSpinner(cmd tea.Cmd) tea.Cmd {
	if cmd == nil || m.static {
		return cmd
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.ready = true

	inner := width - 4
	if inner < 20 {
		inner = 20
	}
	m.input.SetWidth(inner)

	// header + notice + input box (3 lines + border) + status bar
	logHeight := height - 1 - 1 - (m.input.Height() + 2) - 1
	if logHeight < 3 {
		logHeight = 3
	}
	m.log.Width = width
	m.log.Height = logHeight

	m.histVP.Width = inner
	m.histVP.Height = height - 8
	if m.histVP.Height < 3 {
		m.histVP.Height = 3
	}

	m.refreshLog()
	m.refreshHistory()
}

