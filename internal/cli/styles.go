// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared lipgloss styles for tensaku command output.

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tensaku-tui/internal/model"
	"github.com/jeranaias/tensaku-tui/internal/util"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

var (
	// TitleStyle is used for command titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Cyan

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // Light gray
			Width(14)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")). // Green
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	// DimStyle is used for secondary information and hints
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	HighlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))
)

// Variant tag colors, keyed by type.
var variantTagColors = map[model.VariantType]lipgloss.Color{
	model.VariantPolite:    lipgloss.Color("75"),  // Blue
	model.VariantCasual:    lipgloss.Color("213"), // Pink
	model.VariantCorrected: lipgloss.Color("42"),  // Green
	model.VariantError:     lipgloss.Color("196"), // Red
}

// RenderSeparator renders a horizontal rule, 60 cells wide by default.
func RenderSeparator(width ...int) string {
	w := 60
	if len(width) > 0 && width[0] > 0 {
		w = width[0]
	}
	return SeparatorStyle.Render(strings.Repeat("─", w))
}

// RenderLabel renders a fixed-width label. Width is measured in terminal
// cells so Japanese labels line up with ASCII ones.
func RenderLabel(label string) string {
	if !ColorsEnabled() {
		return util.PadRight(label, LabelStyle.GetWidth())
	}
	return LabelStyle.Render(label)
}

// RenderVariantTag renders a variant tag such as [polite].
func RenderVariantTag(v model.Variant) string {
	tag := "[" + v.Tag() + "]"
	color, ok := variantTagColors[v.Type]
	if !ok {
		return DimStyle.Render(tag)
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(tag)
}

// RenderConditional renders text with style if colors are enabled.
func RenderConditional(style lipgloss.Style, text string) string {
	if !ColorsEnabled() {
		return text
	}
	return style.Render(text)
}
