// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings of the composition view and its
// dialogs.
type KeyMap struct {
	Send       key.Binding
	Newline    key.Binding
	Correct    key.Binding
	Undo       key.Binding
	ModelPick  key.Binding
	CycleStyle key.Binding
	History    key.Binding
	Quit       key.Binding

	// Dialogs
	Up       key.Binding
	Down     key.Binding
	Choose   key.Binding
	Retry    key.Binding
	Close    key.Binding
	LoadMore key.Binding
	PageDown key.Binding
	PageUp   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "送信"),
		),
		Newline: key.NewBinding(
			key.WithKeys("ctrl+j"),
			key.WithHelp("C-j", "改行"),
		),
		Correct: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "添削"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("C-z", "元に戻す"),
		),
		ModelPick: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "モデル"),
		),
		CycleStyle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "スタイル"),
		),
		History: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "履歴"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "終了"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "上へ"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "下へ"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "選択"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "再試行"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "閉じる"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "さらに読み込む"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "次ページ"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "前ページ"),
		),
	}
}

// ComposeHelp returns the bindings shown in the compose status bar.
func (k KeyMap) ComposeHelp() []key.Binding {
	return []key.Binding{k.Send, k.Newline, k.Correct, k.Undo, k.ModelPick, k.CycleStyle, k.History, k.Quit}
}

// variantIndex maps "1".."9" onto a zero-based variant index.
func variantIndex(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}
