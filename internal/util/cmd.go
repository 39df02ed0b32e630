// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the tensaku client.
package util

import tea "github.com/charmbracelet/bubbletea"

// RunCmd executes cmd on the calling goroutine and returns every message it
// produced, flattening nested batches in order. Nil commands and nil
// messages are skipped.
//
// The TUI hands commands to the Bubble Tea runtime instead; this is for the
// one-shot CLI and for tests, which want the result synchronously.
func RunCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, RunCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// Feed runs cmd and delivers each resulting message to update, in order.
func Feed(cmd tea.Cmd, update func(tea.Msg)) {
	for _, msg := range RunCmd(cmd) {
		update(msg)
	}
}
