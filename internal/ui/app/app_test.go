// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tensaku-tui/internal/api"
	"github.com/jeranaias/tensaku-tui/internal/config"
	"github.com/jeranaias/tensaku-tui/internal/correction"
	"github.com/jeranaias/tensaku-tui/internal/model"
	"github.com/jeranaias/tensaku-tui/internal/session"
	"github.com/jeranaias/tensaku-tui/internal/util"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type fakeGateway struct {
	correctErr  error
	lastReq     model.CorrectionRequest
	models      map[string]string
	preferred   string
	historySize int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		models: map[string]string{
			"openai-gpt4o":      "GPT-4o",
			"anthropic-claude3": "Claude 3",
		},
		preferred:   "openai-gpt4o",
		historySize: 45,
	}
}

func (f *fakeGateway) Correct(_ context.Context, req model.CorrectionRequest) (*model.CorrectionResult, error) {
	f.lastReq = req
	if f.correctErr != nil {
		return nil, f.correctErr
	}
	return &model.CorrectionResult{
		OriginalText: req.Text,
		Variants: []model.Variant{
			model.NewVariant("こんにちは。", "corrected", "句点を追加しました"),
			model.NewVariant("こんにちは、お元気ですか。", "polite", "丁寧な表現"),
		},
	}, nil
}

func (f *fakeGateway) ListModels(context.Context) (map[string]string, error) {
	return f.models, nil
}

func (f *fakeGateway) GetUserSettings(_ context.Context, userID string) (*model.UserSettings, error) {
	return &model.UserSettings{UserID: userID, PreferredModel: f.preferred}, nil
}

func (f *fakeGateway) SetUserModel(_ context.Context, _ string, name string) (string, error) {
	f.preferred = name
	return "ok", nil
}

func (f *fakeGateway) GetHistory(_ context.Context, _ string, limit, offset int) (*model.HistoryPage, error) {
	page := &model.HistoryPage{TotalCount: f.historySize}
	for i := offset; i < offset+limit && i < f.historySize; i++ {
		page.Items = append(page.Items, model.HistoryItem{
			ID:             int64(i + 1),
			OriginalText:   fmt.Sprintf("原文 %d", i+1),
			CorrectedText:  fmt.Sprintf("添削 %d", i+1),
			CorrectionType: model.VariantCorrected,
			RawType:        "corrected",
		})
	}
	return page, nil
}

func newTestModel(t *testing.T, gw *fakeGateway, user string) *Model {
	t.Helper()
	cfg := config.Default()
	cfg.UI.Color = false

	var sess session.Context
	if user != "" {
		var err error
		sess, err = session.New(user)
		require.NoError(t, err)
	}

	m := New(Options{Config: cfg, Session: sess, Gateway: gw, Static: true})
	pump(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	runCmd(m, m.Init())
	return m
}

// pump delivers msg and then every message its commands produce, until the
// model settles.
func pump(m *Model, msg tea.Msg) {
	_, cmd := m.Update(msg)
	runCmd(m, cmd)
}

func runCmd(m *Model, cmd tea.Cmd) {
	for _, out := range util.RunCmd(cmd) {
		if _, ok := out.(tea.QuitMsg); ok {
			continue
		}
		pump(m, out)
	}
}

func press(m *Model, t tea.KeyType) {
	pump(m, tea.KeyMsg{Type: t})
}

func typeText(m *Model, s string) {
	pump(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// =============================================================================
// COMPOSE
// =============================================================================

func TestModel_TypingSyncsComposer(t *testing.T) {
	m := newTestModel(t, newFakeGateway(), "")
	typeText(m, "こんにちは")

	assert.Equal(t, "こんにちは", m.InputValue())
	assert.Equal(t, "こんにちは", m.Composer().Text())
	assert.Equal(t, ModeCompose, m.Mode())
}

func TestModel_SendAppendsMessage(t *testing.T) {
	m := newTestModel(t, newFakeGateway(), "")
	assert.Contains(t, m.View(), "メッセージはまだありません")

	typeText(m, "送ります")
	press(m, tea.KeyEnter)

	require.Len(t, m.Composer().Messages(), 1)
	assert.Equal(t, "送ります", m.Composer().Messages()[0].Text)
	assert.Empty(t, m.InputValue())
	assert.Contains(t, m.View(), "送ります")
}

func TestModel_SendIgnoresBlankInput(t *testing.T) {
	m := newTestModel(t, newFakeGateway(), "")
	typeText(m, "   ")
	press(m, tea.KeyEnter)

	assert.Empty(t, m.Composer().Messages())
	assert.Equal(t, "   ", m.InputValue())
}

func TestModel_NewlineKeyInsertsLineBreak(t *testing.T) {
	m := newTestModel(t, newFakeGateway(), "")
	typeText(m, "一行目")
	press(m, tea.KeyCtrlJ)
	typeText(m, "二行目")

	assert.Equal(t, "一行目\n二行目", m.Composer().Text())
}

func TestModel_CycleStyle(t *testing.T) {
	gw := newFakeGateway()
	m := newTestModel(t, gw, "")
	require.Equal(t, model.StyleDefault, m.Style())

	press(m, tea.KeyCtrlT)
	assert.Equal(t, model.StyleDefault.Next(), m.Style())
	assert.Contains(t, m.Notice(), "スタイル")

	typeText(m, "テスト")
	press(m, tea.KeyCtrlE)
	assert.Equal(t, m.Style().String(), gw.lastReq.Style)
}

// =============================================================================
// CORRECTION DIALOG
// =============================================================================

func TestModel_CorrectSelectAndUndo(t *testing.T) {
	gw := newFakeGateway()
	m := newTestModel(t, gw, "user-1")
	typeText(m, "こんにちは")

	press(m, tea.KeyCtrlE)
	require.Equal(t, ModeCorrection, m.Mode())
	require.Equal(t, correction.StatusReady, m.Composer().Correction().Status())
	assert.Equal(t, "user-1", gw.lastReq.UserID)
	assert.Equal(t, "openai-gpt4o", gw.lastReq.PreferredModel)
	assert.Empty(t, gw.lastReq.Style)

	view := m.View()
	assert.Contains(t, view, "添削候補")
	assert.Contains(t, view, "[polite]")

	typeText(m, "2")
	assert.Equal(t, ModeCompose, m.Mode())
	assert.Equal(t, "こんにちは、お元気ですか。", m.InputValue())
	assert.Equal(t, correction.StatusIdle, m.Composer().Correction().Status())

	press(m, tea.KeyCtrlZ)
	assert.Equal(t, "こんにちは", m.InputValue())
	assert.Equal(t, "こんにちは", m.Composer().Text())
}

func TestModel_CorrectChooseWithCursor(t *testing.T) {
	m := newTestModel(t, newFakeGateway(), "")
	typeText(m, "こんにちは")
	press(m, tea.KeyCtrlE)

	press(m, tea.KeyDown)
	press(m, tea.KeyEnter)
	assert.Equal(t, "こんにちは、お元気ですか。", m.InputValue())
	assert.Empty(t, m.Composer().Messages(), "enter in the dialog must not send")
}

func TestModel_CorrectEmptyInputShowsNotice(t *testing.T) {
	m := newTestModel(t, newFakeGateway(), "")
	press(m, tea.KeyCtrlE)

	assert.Equal(t, ModeCompose, m.Mode())
	assert.NotEmpty(t, m.Notice())
}

func TestModel_CorrectFailureAndRetry(t *testing.T) {
	gw := newFakeGateway()
	gw.correctErr = api.ErrUnreachable
	m := newTestModel(t, gw, "")
	typeText(m, "こんにちは")

	press(m, tea.KeyCtrlE)
	require.Equal(t, correction.StatusFailed, m.Composer().Correction().Status())
	assert.Contains(t, m.Composer().Correction().Session().ErrorMessage, "ネットワークを確認してください")
	assert.Contains(t, m.View(), "再試行")

	gw.correctErr = nil
	typeText(m, "r")
	assert.Equal(t, correction.StatusReady, m.Composer().Correction().Status())
	assert.Equal(t, "こんにちは", gw.lastReq.Text)
}

func TestModel_EscClosesCorrection(t *testing.T) {
	m := newTestModel(t, newFakeGateway(), "")
	typeText(m, "こんにちは")
	press(m, tea.KeyCtrlE)

	press(m, tea.KeyEsc)
	assert.Equal(t, ModeCompose, m.Mode())
	assert.False(t, m.Composer().Correction().Active())
	assert.Equal(t, "こんにちは", m.InputValue())
}

// =============================================================================
// MODEL PICKER
// =============================================================================

func TestModel_InitLoadsPreference(t *testing.T) {
	m := newTestModel(t, newFakeGateway(), "user-1")

	assert.True(t, m.Preferences().Loaded())
	assert.Equal(t, "openai-gpt4o", m.Preferences().Preferred())
	assert.Contains(t, m.View(), "GPT-4o")
}

func TestModel_PickerSelectsModel(t *testing.T) {
	gw := newFakeGateway()
	m := newTestModel(t, gw, "user-1")

	press(m, tea.KeyCtrlO)
	require.Equal(t, ModeModelPicker, m.Mode())
	assert.Contains(t, m.View(), "AIモデル")

	// options are ordered by id; the cursor starts on the preferred model
	press(m, tea.KeyUp)
	press(m, tea.KeyEnter)

	assert.Equal(t, ModeCompose, m.Mode())
	assert.Equal(t, "anthropic-claude3", m.Preferences().Preferred())
	assert.Equal(t, "anthropic-claude3", gw.preferred)
	assert.Contains(t, m.Notice(), "Claude 3")
}

func TestModel_PickerRequiresUser(t *testing.T) {
	m := newTestModel(t, newFakeGateway(), "")
	press(m, tea.KeyCtrlO)

	assert.Equal(t, ModeCompose, m.Mode())
	assert.Contains(t, m.Notice(), "ユーザーID")
}

// =============================================================================
// HISTORY PANEL
// =============================================================================

func TestModel_HistoryLoadsPages(t *testing.T) {
	m := newTestModel(t, newFakeGateway(), "user-1")

	press(m, tea.KeyCtrlR)
	require.Equal(t, ModeHistory, m.Mode())
	assert.Equal(t, 20, m.History().Len())
	assert.Contains(t, m.View(), "20 / 45 件")

	typeText(m, "m")
	assert.Equal(t, 40, m.History().Len())

	typeText(m, "m")
	assert.Equal(t, 45, m.History().Len())
	assert.False(t, m.History().HasMore())

	press(m, tea.KeyEsc)
	assert.Equal(t, ModeCompose, m.Mode())
	assert.False(t, m.History().IsOpen())
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

func TestModel_ConfigReloadAppliesDisplaySettings(t *testing.T) {
	m := newTestModel(t, newFakeGateway(), "")
	typeText(m, "こんにちは")
	press(m, tea.KeyCtrlE)
	require.Contains(t, m.View(), "丁寧な表現")

	cfg := config.Default()
	cfg.UI.Color = false
	cfg.UI.ShowReasons = false
	cfg.API.BaseURL = "http://elsewhere.invalid/api"
	pump(m, ConfigReloadedMsg{Config: cfg})

	assert.NotContains(t, m.View(), "丁寧な表現")
	assert.Equal(t, "設定を再読み込みしました", m.Notice())
	assert.Equal(t, config.Default().API.BaseURL, m.cfg.API.BaseURL)
}

func TestModel_ConfigReloadFromChannel(t *testing.T) {
	ch := make(chan *config.Config, 1)
	cfg := config.Default()
	cfg.UI.Color = false
	m := New(Options{Config: cfg, Gateway: newFakeGateway(), Reloads: ch, Static: true})

	next := config.Default()
	next.UI.Color = false
	next.UI.ShowReasons = false
	ch <- next
	close(ch)

	runCmd(m, m.Init())
	assert.False(t, m.cfg.UI.ShowReasons)
}

// =============================================================================
// QUIT
// =============================================================================

func TestModel_QuitTearsDown(t *testing.T) {
	m := newTestModel(t, newFakeGateway(), "")
	typeText(m, "こんにちは")
	press(m, tea.KeyCtrlE)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.Composer().Correction().Active())
	assert.Empty(t, m.View())
}
