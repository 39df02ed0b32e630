// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the tensaku UI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. Styles are bound to a per-theme renderer so that disabling color
(ui.color = false, NO_COLOR) yields plain text without touching the global
lipgloss profile.

# Key Types

  - Theme: every style used by the UI, created with NewTheme
  - VariantColor: the tag color for a correction variant type

# Usage

	theme := styles.NewTheme(cfg.UI.Color)
	fmt.Println(theme.Tag(styles.VariantColor(v.Type), v.Tag()), v.Text)
*/
package styles
