// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tensaku-tui/internal/correction"
	"github.com/jeranaias/tensaku-tui/internal/model"
	"github.com/jeranaias/tensaku-tui/internal/ui/styles"
	"github.com/jeranaias/tensaku-tui/internal/util"
)

var styleLabels = map[model.CorrectionStyle]string{
	model.StyleDefault:    "標準",
	model.StyleFormal:     "フォーマル",
	model.StyleCasual:     "カジュアル",
	model.StyleBusiness:   "ビジネス",
	model.StyleErrorFocus: "誤り重視",
	model.StyleConcise:    "簡潔",
}

func styleLabel(s model.CorrectionStyle) string {
	if label, ok := styleLabels[s]; ok {
		return label
	}
	return s.String()
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the header, the current surface and the status bar.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.mode {
	case ModeCorrection:
		body = m.renderCorrection()
	case ModeModelPicker:
		body = m.renderPicker()
	case ModeHistory:
		body = m.renderHistory()
	default:
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.log.View(),
			m.theme.InputBox.Render(m.input.View()),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderNotice(),
		m.renderStatusBar(),
	)
}

func (m *Model) renderHeader() string {
	t := m.theme
	parts := []string{t.HeaderBrand.Render("添削 tensaku")}

	if m.sess.Valid() {
		parts = append(parts, t.HeaderMeta.Render("ユーザー: "+m.sess.UserID))
	}

	modelName := m.prefs.DisplayName(m.prefs.Preferred())
	if pending := m.prefs.Pending(); pending != "" {
		modelName += t.Pending.Render(" → " + m.prefs.DisplayName(pending) + " " + m.spinnerView())
	}
	parts = append(parts,
		t.HeaderMeta.Render("モデル: ")+modelName,
		t.HeaderMeta.Render("スタイル: "+styleLabel(m.style)),
	)

	return t.Header.Width(m.width).Render(strings.Join(parts, t.Muted.Render("  │  ")))
}

func (m *Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	return m.theme.InputHint.Render(m.notice)
}

func (m *Model) renderStatusBar() string {
	t := m.theme
	var bindings []key.Binding
	switch m.mode {
	case ModeCorrection:
		switch m.composer.Correction().Status() {
		case correction.StatusReady:
			bindings = []key.Binding{m.keys.Up, m.keys.Choose, m.keys.Close}
		case correction.StatusFailed:
			bindings = []key.Binding{m.keys.Retry, m.keys.Close}
		default:
			bindings = []key.Binding{m.keys.Close}
		}
	case ModeModelPicker:
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Choose, m.keys.Close}
	case ModeHistory:
		bindings = []key.Binding{m.keys.PageDown, m.keys.LoadMore, m.keys.Close}
	default:
		bindings = m.keys.ComposeHelp()
	}

	items := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		items = append(items, t.ShortcutKey.Render(h.Key)+" "+t.ShortcutDesc.Render(h.Desc))
	}
	return t.StatusBar.Render(strings.Join(items, "  "))
}

func (m *Model) spinnerView() string {
	if m.static {
		return "…"
	}
	return m.spinner.View()
}

// =============================================================================
// MESSAGE LOG
// =============================================================================

func (m *Model) refreshLog() {
	t := m.theme
	msgs := m.composer.Messages()
	if len(msgs) == 0 {
		m.log.SetContent(t.Muted.Render("メッセージはまだありません"))
		return
	}

	width := m.log.Width - 8
	if width < 10 {
		width = 10
	}

	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		stamp := t.Timestamp.Render(msg.Timestamp.Format("15:04"))
		style := t.UserMessage
		if msg.Sender == model.SenderSystem {
			style = t.SystemMessage
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, stamp, " ", style.Width(width).Render(msg.Text)))
	}
	m.log.SetContent(b.String())
	m.log.GotoBottom()
}

// =============================================================================
// CORRECTION DIALOG
// =============================================================================

func (m *Model) renderCorrection() string {
	t := m.theme
	sess := m.composer.Correction().Session()
	width := m.dialogWidth()

	var b strings.Builder
	b.WriteString(t.DialogTitle.Render("添削候補"))
	b.WriteString("\n")
	b.WriteString(t.Muted.Render("原文: "))
	b.WriteString(util.TruncateWidth(util.SingleLine(sess.OriginalText), width-8))
	b.WriteString("\n\n")

	switch sess.Status {
	case correction.StatusRequesting:
		b.WriteString(m.spinnerView() + " " + t.Pending.Render("添削中…"))

	case correction.StatusFailed:
		b.WriteString(t.ErrorText.Render(styles.StatusIndicators.Error + " " + sess.ErrorMessage))
		b.WriteString("\n")
		b.WriteString(t.Muted.Render("r: 再試行   Esc: 閉じる"))

	case correction.StatusReady:
		if len(sess.Variants) == 0 {
			b.WriteString(t.Muted.Render("候補はありません"))
			break
		}
		for i, v := range sess.Variants {
			line := fmt.Sprintf("%d. %s %s", i+1, t.Tag(styles.VariantColor(v.Type), v.Tag()), v.Text)
			if i == m.variantCursor {
				b.WriteString(t.ItemSelected.Width(width - 4).Render(line))
			} else {
				b.WriteString(t.Item.Width(width - 4).Render(line))
			}
			b.WriteString("\n")
			if m.cfg.UI.ShowReasons && strings.TrimSpace(v.Reason) != "" {
				b.WriteString(t.ItemReason.Width(width - 4).Render(v.Reason))
				b.WriteString("\n")
			}
		}
	}

	return t.Dialog.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

// =============================================================================
// MODEL PICKER
// =============================================================================

func (m *Model) renderPicker() string {
	t := m.theme
	width := m.dialogWidth()

	var b strings.Builder
	b.WriteString(t.DialogTitle.Render("AIモデル"))
	b.WriteString("\n")

	opts := m.prefs.Options()
	if len(opts) == 0 {
		if m.prefs.Loaded() {
			b.WriteString(t.Muted.Render("モデル一覧を取得できませんでした"))
		} else {
			b.WriteString(m.spinnerView() + " " + t.Pending.Render("読み込み中…"))
		}
		return t.Dialog.Width(width).Render(b.String())
	}

	preferred := m.prefs.Preferred()
	for i, opt := range opts {
		marker := "  "
		if opt.ID == preferred {
			marker = "* "
		}
		line := marker + util.PadRight(opt.Name, 24) + " " + t.Muted.Render(opt.ID)
		if i == m.pickerCursor {
			b.WriteString(t.ItemSelected.Width(width - 4).Render(line))
		} else {
			b.WriteString(t.Item.Width(width - 4).Render(line))
		}
		b.WriteString("\n")
	}
	return t.Dialog.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

// =============================================================================
// HISTORY PANEL
// =============================================================================

func (m *Model) refreshHistory() {
	t := m.theme
	items := m.hist.Items()
	if len(items) == 0 {
		if m.hist.Loading() {
			m.histVP.SetContent(t.Pending.Render("読み込み中…"))
		} else {
			m.histVP.SetContent(t.Muted.Render("履歴はありません"))
		}
		return
	}

	textWidth := (m.histVP.Width - 30) / 2
	if textWidth < 10 {
		textWidth = 10
	}

	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s %s → %s",
			t.Timestamp.Render(it.CreatedAt.Local().Format("01/02 15:04")),
			t.Tag(styles.VariantColor(it.CorrectionType), it.Tag()),
			util.TruncateWidth(util.SingleLine(it.OriginalText), textWidth),
			util.TruncateWidth(util.SingleLine(it.CorrectedText), textWidth),
		)
	}
	m.histVP.SetContent(b.String())
}

func (m *Model) renderHistory() string {
	t := m.theme

	footer := fmt.Sprintf("%d / %d 件", m.hist.Len(), m.hist.TotalCount())
	switch {
	case m.hist.Loading():
		footer += "  " + m.spinnerView()
	case m.hist.HasMore():
		footer += "  " + t.Muted.Render("m: さらに読み込む")
	}

	return t.Dialog.Width(m.dialogWidth()).Render(lipgloss.JoinVertical(lipgloss.Left,
		t.DialogTitle.Render("添削履歴"),
		m.histVP.View(),
		t.Muted.Render(footer),
	))
}

func (m *Model) dialogWidth() int {
	w := m.width - 2
	if w > 100 {
		w = 100
	}
	if w < 30 {
		w = 30
	}
	return w
}
