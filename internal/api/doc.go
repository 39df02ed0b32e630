// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the correction service.
//
// The client covers the five endpoints the terminal front-end needs:
// correction, the model catalog, setting and reading the per-user model
// preference, and paginated correction history. Every call shares one fixed
// timeout and is never retried; callers decide what a failure means.
//
// # Key Types
//
//   - Client: the HTTP client
//   - ClientConfig: base URL, timeout, optional rate limit
//   - ClientError: typed failure with ErrorType and HTTP status
//
// # Usage
//
//	client := api.NewClientWithConfig(&api.ClientConfig{
//	    BaseURL: "http://127.0.0.1:8000/api",
//	})
//
//	page, err := client.GetHistory(ctx, "user1", 20, 0)
//	switch {
//	case api.IsTimeout(err):
//	    // slow backend
//	case api.IsServiceError(err):
//	    fmt.Println(api.StatusCode(err))
//	}
package api
