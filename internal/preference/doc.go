// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preference keeps the user's AI model choice consistent between the
// client and the correction service.
//
// # Key Types
//
//   - Store: catalog, confirmed preference, in-flight write
//   - CatalogMsg, SettingsMsg, SelectedMsg: Bubble Tea result messages
//
// # Usage
//
//	store := preference.NewStore(client, logger)
//	util.Feed(store.Load(sess), func(m tea.Msg) { store.Update(m) })
//
//	cmd, err := store.SelectModel(sess, "claude-3")
//	for _, m := range util.RunCmd(cmd) {
//	    if err := store.Update(m); err != nil {
//	        // the preference is unchanged
//	    }
//	}
package preference
