// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session carries the identity of one interactive user session.
//
// A Context is created once at startup from the configured user id and then
// threaded through the preference store and history paginator. When the
// user changes, callers build a new Context and re-open the components with
// it; a component that sees a different user resets its state.
//
// # Key Types
//
//   - Context: user id, generated session id, start time
//
// # Usage
//
//	sess, err := session.New(cfg.User.ID)
//	if err != nil {
//	    return err
//	}
//	cmd := prefs.Load(sess)
package session
