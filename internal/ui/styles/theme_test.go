// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/jeranaias/tensaku-tui/internal/model"
)

func TestNewTheme_PlainHasNoEscapes(t *testing.T) {
	theme := NewTheme(false)

	if theme.ColorProfile != termenv.Ascii {
		t.Fatalf("ColorProfile = %v, want Ascii", theme.ColorProfile)
	}

	for name, out := range map[string]string{
		"ErrorText":   theme.ErrorText.Render("失敗"),
		"HeaderBrand": theme.HeaderBrand.Render("tensaku"),
		"Tag":         theme.Tag(Emerald, "corrected"),
	} {
		if strings.Contains(out, "\x1b[") {
			t.Errorf("%s rendered escape codes with color disabled: %q", name, out)
		}
	}

	if got := theme.Tag(Sky, "polite"); got != "[polite]" {
		t.Errorf("Tag() = %q, want [polite]", got)
	}
}

func TestVariantColor(t *testing.T) {
	tests := []struct {
		typ  model.VariantType
		want string
	}{
		{model.VariantPolite, Sky.Dark},
		{model.VariantCasual, Pink.Dark},
		{model.VariantCorrected, Emerald.Dark},
		{model.VariantError, Rose.Dark},
		{model.VariantUnknown, TextMuted.Dark},
	}
	for _, tt := range tests {
		if got := VariantColor(tt.typ).Dark; got != tt.want {
			t.Errorf("VariantColor(%v) = %s, want %s", tt.typ, got, tt.want)
		}
	}
}
