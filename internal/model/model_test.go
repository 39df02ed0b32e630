// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
)

// =============================================================================
// ENUM PARSING TESTS
// =============================================================================

func TestParseVariantType(t *testing.T) {
	tests := []struct {
		in   string
		want VariantType
	}{
		{"polite", VariantPolite},
		{"casual", VariantCasual},
		{"corrected", VariantCorrected},
		{"error", VariantError},
		{" Polite ", VariantPolite},
		{"humorous", VariantUnknown},
		{"", VariantUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseVariantType(tc.in); got != tc.want {
				t.Errorf("ParseVariantType(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestVariant_TagKeepsUnknownRawType(t *testing.T) {
	v := NewVariant("text", "humorous", "because")
	if v.Type != VariantUnknown {
		t.Fatalf("Type = %v, want VariantUnknown", v.Type)
	}
	if v.Tag() != "humorous" {
		t.Errorf("Tag() = %q, want %q", v.Tag(), "humorous")
	}

	known := NewVariant("text", "Casual", "")
	if known.Tag() != "casual" {
		t.Errorf("Tag() = %q, want canonical %q", known.Tag(), "casual")
	}
}

func TestHistoryItem_Tag(t *testing.T) {
	h := HistoryItem{CorrectionType: VariantUnknown, RawType: "keigo"}
	if h.Tag() != "keigo" {
		t.Errorf("Tag() = %q, want keigo", h.Tag())
	}
	h = HistoryItem{CorrectionType: VariantPolite, RawType: "polite"}
	if h.Tag() != "polite" {
		t.Errorf("Tag() = %q, want polite", h.Tag())
	}
}

func TestParseSender(t *testing.T) {
	if ParseSender("user") != SenderUser {
		t.Error("user should parse to SenderUser")
	}
	if ParseSender("SYSTEM") != SenderSystem {
		t.Error("SYSTEM should parse to SenderSystem")
	}
	if ParseSender("bot") != SenderUnknown {
		t.Error("bot should parse to SenderUnknown")
	}
	if SenderUnknown.String() != "unknown" {
		t.Errorf("SenderUnknown.String() = %q", SenderUnknown.String())
	}
}

func TestCorrectionStyle(t *testing.T) {
	for _, s := range AllStyles() {
		parsed, ok := ParseCorrectionStyle(s.String())
		if !ok || parsed != s {
			t.Errorf("ParseCorrectionStyle(%q) = %v, %v", s.String(), parsed, ok)
		}
	}

	if _, ok := ParseCorrectionStyle("shouty"); ok {
		t.Error("unknown style should not parse")
	}

	if StyleConcise.Next() != StyleDefault {
		t.Errorf("StyleConcise.Next() = %v, want StyleDefault", StyleConcise.Next())
	}
	if StyleDefault.Next() != StyleFormal {
		t.Errorf("StyleDefault.Next() = %v, want StyleFormal", StyleDefault.Next())
	}
	if CorrectionStyle(99).String() != "default" {
		t.Errorf("out-of-range style should render as default")
	}
}

// =============================================================================
// MESSAGE / CONVERSATION TESTS
// =============================================================================

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("こんにちは")

	if msg.Sender != SenderUser {
		t.Errorf("Sender = %v, want SenderUser", msg.Sender)
	}
	if msg.Text != "こんにちは" {
		t.Errorf("Text = %q", msg.Text)
	}
	if msg.ID == "" {
		t.Error("ID should be generated")
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestMessage_Preview(t *testing.T) {
	msg := NewUserMessage("あいうえおかきくけこ")
	if got := msg.Preview(20); got != msg.Text {
		t.Errorf("Preview(20) = %q, want full text", got)
	}
	if got := msg.Preview(6); got != "あいう..." {
		t.Errorf("Preview(6) = %q, want %q", got, "あいう...")
	}
}

func TestConversation_AppendOnly(t *testing.T) {
	conv := NewConversation()
	conv.AddUserMessage("one")
	conv.AddSystemMessage("two")

	msgs := conv.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len = %d, want 2", len(msgs))
	}

	// Mutating the copy must not affect the log.
	msgs[0].Text = "changed"
	if conv.Messages()[0].Text != "one" {
		t.Error("Messages() should return a copy")
	}

	last, ok := conv.Last()
	if !ok || last.Text != "two" || last.Sender != SenderSystem {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
}
