// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package correction drives the request, variants and selection lifecycle of
// one pending correction.
//
// A session moves Idle -> Requesting -> Ready or Failed, and back to Idle
// when a variant is selected or the dialog is closed. A failed session is
// terminal; Retry starts a new one for the same text. Failures never escape
// as errors: they become the session's Failed status with a localized
// message.
//
// # Key Types
//
//   - Controller: the state machine and request-token guard
//   - Session: immutable snapshot of the active correction
//   - ResultMsg: Bubble Tea message carrying a response
//
// # Usage
//
//	ctrl := correction.NewController(client, correction.LocaleJapanese, logger)
//	cmd, err := ctrl.Submit("こんにちは", correction.Options{UserID: "user1"})
//	if errors.Is(err, correction.ErrEmptyInput) {
//	    return
//	}
//	// later, on the event loop:
//	ctrl.Update(msg)
//	text, err := ctrl.SelectVariant(2)
package correction
