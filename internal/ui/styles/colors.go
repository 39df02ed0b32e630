// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the tensaku UI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tensaku-tui/internal/model"
)

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Indigo - Brand color, focus rings, selected variants
var Indigo = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#A5B4FC"}

// Cyan - User messages and input prompt
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Success, the "corrected" tag
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - Errors and the "error" tag
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings and in-flight state
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Sky - The "polite" tag
var Sky = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}

// Pink - The "casual" tag
var Pink = lipgloss.AdaptiveColor{Light: "#DB2777", Dark: "#F9A8D4"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#45475A"}

var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// SelectionBg highlights the cursor row in lists.
var SelectionBg = lipgloss.AdaptiveColor{Light: "#E0E7FF", Dark: "#312E81"}

// =============================================================================
// VARIANT TAGS
// =============================================================================

// VariantColor returns the tag color for a variant type. Unknown server
// types render muted.
func VariantColor(t model.VariantType) lipgloss.AdaptiveColor {
	switch t {
	case model.VariantPolite:
		return Sky
	case model.VariantCasual:
		return Pink
	case model.VariantCorrected:
		return Emerald
	case model.VariantError:
		return Rose
	default:
		return TextMuted
	}
}

// StatusIndicators are shape cues shown next to colored states so that
// meaning never depends on color alone.
var StatusIndicators = struct {
	Success string
	Error   string
}{
	Success: "[OK]",
	Error:   "[X]",
}
