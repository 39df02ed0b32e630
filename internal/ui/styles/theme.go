// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the tensaku UI.
package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	renderer *lipgloss.Renderer

	// ==========================================================================
	// HEADER / STATUS BAR
	// ==========================================================================

	Header       lipgloss.Style
	HeaderBrand  lipgloss.Style
	HeaderMeta   lipgloss.Style
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// MESSAGE LOG
	// ==========================================================================

	UserMessage   lipgloss.Style
	SystemMessage lipgloss.Style
	Timestamp     lipgloss.Style

	// ==========================================================================
	// INPUT AREA
	// ==========================================================================

	InputBox  lipgloss.Style
	InputHint lipgloss.Style
	Pending   lipgloss.Style

	// ==========================================================================
	// DIALOGS (correction, model picker, history)
	// ==========================================================================

	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	ItemReason   lipgloss.Style
	ErrorText    lipgloss.Style
	SuccessText  lipgloss.Style
	Muted        lipgloss.Style
	Spinner      lipgloss.Style
}

// NewTheme creates a theme for stdout. With color false every style renders
// without escape sequences.
func NewTheme(color bool) *Theme {
	r := lipgloss.NewRenderer(os.Stdout)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	t := &Theme{
		IsDark:       r.HasDarkBackground(),
		ColorProfile: r.ColorProfile(),
		renderer:     r,
	}
	t.initStyles()
	return t
}

// NewStyle returns a blank style bound to the theme's renderer.
func (t *Theme) NewStyle() lipgloss.Style {
	return t.renderer.NewStyle()
}

// Tag renders a variant tag in its type color.
func (t *Theme) Tag(color lipgloss.AdaptiveColor, tag string) string {
	return t.renderer.NewStyle().Foreground(color).Bold(true).Render("[" + tag + "]")
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	s := t.renderer.NewStyle

	t.Header = s().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderBrand = s().
		Bold(true).
		Foreground(Indigo)

	t.HeaderMeta = s().
		Foreground(TextSecondary)

	t.StatusBar = s().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = s().
		Foreground(Indigo).
		Bold(true)

	t.ShortcutDesc = s().
		Foreground(TextMuted)

	// Message log
	t.UserMessage = s().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Cyan).
		PaddingLeft(1)

	t.SystemMessage = s().
		Foreground(TextSecondary).
		Italic(true).
		PaddingLeft(2)

	t.Timestamp = s().
		Foreground(TextMuted)

	// Input
	t.InputBox = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputHint = s().
		Foreground(TextMuted).
		Italic(true)

	t.Pending = s().
		Foreground(Amber)

	// Dialogs
	t.Dialog = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(0, 1)

	t.DialogTitle = s().
		Bold(true).
		Foreground(Indigo).
		MarginBottom(1)

	t.Item = s().
		Foreground(TextPrimary).
		PaddingLeft(2)

	t.ItemSelected = s().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true).
		PaddingLeft(2)

	t.ItemReason = s().
		Foreground(TextSecondary).
		PaddingLeft(6)

	t.ErrorText = s().
		Foreground(Rose).
		Bold(true)

	t.SuccessText = s().
		Foreground(Emerald)

	t.Muted = s().
		Foreground(TextMuted)

	t.Spinner = s().
		Foreground(Amber)
}
