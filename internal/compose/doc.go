// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compose holds the state of the message composition view.
//
// The Composer is the only thing that changes the composed text in response
// to a correction. Selected variant text and restored undo text are passed
// in as copies; the correction controller never sees the composer.
//
// # Usage
//
//	c := compose.New(ctrl, undo.NewStack(cfg.Undo.MaxDepth), logger)
//	c.SetText("こんにちは")
//	cmd, _ := c.OpenCorrection(correction.Options{UserID: sess.UserID})
//	// ... c.Update(msg) on arrival ...
//	c.SelectVariant(2)
//	c.Undo()            // back to "こんにちは"
package compose
