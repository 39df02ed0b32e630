// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the domain types shared by the correction client.
//
// Server strings that name open-ended categories are parsed at the boundary
// into closed enumerations with an explicit unknown member, so the rest of
// the code can switch exhaustively while new server categories still survive
// the round trip.
//
// # Key Types
//
//   - Message, Sender: sent messages in the composition view
//   - Conversation: append-only message log
//   - Variant, VariantType: candidate corrections returned by the service
//   - CorrectionStyle: requested tone (default, formal, casual, ...)
//   - CorrectionRequest, CorrectionResult, UserSettings: service payloads
//   - HistoryItem, HistoryPage: past corrections
//
// # Usage
//
//	v := model.NewVariant("こんにちは。", "corrected", "句点を追加")
//	if v.Type == model.VariantCorrected {
//	    fmt.Println(v.Text)
//	}
package model
