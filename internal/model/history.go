// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the domain types shared by the correction client.
package model

import "time"

// HistoryItem is one past correction. Server-owned and immutable.
type HistoryItem struct {
	ID             int64
	OriginalText   string
	CorrectedText  string
	CorrectionType VariantType
	RawType        string
	AIModelUsed    string
	CreatedAt      time.Time
}

// Tag returns the correction tag, preferring the raw string for unknown types.
func (h HistoryItem) Tag() string {
	if h.CorrectionType == VariantUnknown && h.RawType != "" {
		return h.RawType
	}
	return h.CorrectionType.String()
}

// HistoryPage is one offset-addressed slice of a user's history.
type HistoryPage struct {
	TotalCount int
	Items      []HistoryItem
}
