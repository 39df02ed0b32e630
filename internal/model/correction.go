// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the domain types shared by the correction client.
package model

import "strings"

// =============================================================================
// VARIANT TYPE
// =============================================================================

// VariantType tags a correction variant (and a history entry) by style.
// The server set is open-ended; anything unrecognised parses to
// VariantUnknown and the raw string is kept alongside.
type VariantType int

const (
	VariantUnknown VariantType = iota
	VariantPolite
	VariantCasual
	VariantCorrected
	// VariantError is emitted by the service when every backend model failed.
	VariantError
)

// ParseVariantType maps a server tag onto a VariantType.
func ParseVariantType(s string) VariantType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "polite":
		return VariantPolite
	case "casual":
		return VariantCasual
	case "corrected":
		return VariantCorrected
	case "error":
		return VariantError
	default:
		return VariantUnknown
	}
}

// String returns the canonical server tag for known types.
func (t VariantType) String() string {
	switch t {
	case VariantPolite:
		return "polite"
	case VariantCasual:
		return "casual"
	case VariantCorrected:
		return "corrected"
	case VariantError:
		return "error"
	default:
		return "unknown"
	}
}

// Variant is one candidate rendering of submitted text.
type Variant struct {
	Text   string
	Type   VariantType
	Reason string

	// RawType is the tag exactly as the server sent it.
	RawType string
}

// NewVariant builds a Variant from its wire fields.
func NewVariant(text, rawType, reason string) Variant {
	return Variant{
		Text:    text,
		Type:    ParseVariantType(rawType),
		Reason:  reason,
		RawType: rawType,
	}
}

// Tag returns the server tag, preferring the raw string for unknown types.
func (v Variant) Tag() string {
	if v.Type == VariantUnknown && v.RawType != "" {
		return v.RawType
	}
	return v.Type.String()
}

// =============================================================================
// CORRECTION STYLE
// =============================================================================

// CorrectionStyle is the requested tone of a correction.
type CorrectionStyle int

const (
	StyleDefault CorrectionStyle = iota
	StyleFormal
	StyleCasual
	StyleBusiness
	StyleErrorFocus
	StyleConcise
)

var styleNames = [...]string{
	StyleDefault:    "default",
	StyleFormal:     "formal",
	StyleCasual:     "casual",
	StyleBusiness:   "business",
	StyleErrorFocus: "error_focus",
	StyleConcise:    "concise",
}

// AllStyles lists every style in display order.
func AllStyles() []CorrectionStyle {
	return []CorrectionStyle{StyleDefault, StyleFormal, StyleCasual, StyleBusiness, StyleErrorFocus, StyleConcise}
}

// ParseCorrectionStyle maps a style id onto a CorrectionStyle.
func ParseCorrectionStyle(s string) (CorrectionStyle, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range styleNames {
		if name == s {
			return CorrectionStyle(i), true
		}
	}
	return StyleDefault, false
}

// String returns the wire id of the style.
func (s CorrectionStyle) String() string {
	if int(s) < 0 || int(s) >= len(styleNames) {
		return styleNames[StyleDefault]
	}
	return styleNames[s]
}

// Next cycles to the following style, wrapping around.
func (s CorrectionStyle) Next() CorrectionStyle {
	return CorrectionStyle((int(s) + 1) % len(styleNames))
}

// =============================================================================
// REQUEST / RESULT
// =============================================================================

// CorrectionRequest is built fresh for every submission.
// Empty optional fields are omitted on the wire.
type CorrectionRequest struct {
	Text           string
	UserID         string
	PreferredModel string
	Style          string
}

// CorrectionResult is the service's answer to a CorrectionRequest.
type CorrectionResult struct {
	OriginalText string
	Variants     []Variant
}

// UserSettings is the server-side preference record for a user.
type UserSettings struct {
	UserID         string
	PreferredModel string
	DefaultStyle   string
}
