// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the Bubble Tea front-end of tensaku.
//
// The model is deliberately thin: keys become intents on the composer,
// preference store and history paginator, and their result messages are
// handed back to them unchanged. Rendering reads their state.
//
// # Key Types
//
//   - Model: the tea.Model of the composition view
//   - Mode: which surface has the keyboard (compose, correction, picker, history)
//   - KeyMap: bindings shown in the status bar
//
// # Usage
//
//	m := app.New(app.Options{Config: cfg, Session: sess, Gateway: client, Logger: logger})
//	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
package app
