// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history loads a user's past corrections one page at a time.
//
// # Usage
//
//	pager := history.New(client, 20, logger)
//	cmd := pager.Open(sess)      // page 0, replaces items
//	...
//	cmd = pager.LoadMore()       // nil when nothing is left or a fetch is running
package history
