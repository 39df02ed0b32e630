// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the domain types shared by the correction client.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who authored a message in the composition view.
type Sender int

const (
	SenderUnknown Sender = iota
	SenderUser
	SenderSystem
)

// ParseSender maps a wire string onto a Sender.
// Unrecognised values map to SenderUnknown.
func ParseSender(s string) Sender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return SenderUser
	case "system":
		return SenderSystem
	default:
		return SenderUnknown
	}
}

// String returns the wire representation of the sender.
func (s Sender) String() string {
	switch s {
	case SenderUser:
		return "user"
	case SenderSystem:
		return "system"
	default:
		return "unknown"
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single sent message. Messages are immutable once created.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Sender    Sender    `json:"-"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(sender Sender, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      text,
		Timestamp: time.Now(),
		Sender:    sender,
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(text string) Message {
	return NewMessage(SenderUser, text)
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(text string) Message {
	return NewMessage(SenderSystem, text)
}

// Preview returns a truncated preview of the message text.
// Uses rune-based truncation to handle Japanese text correctly.
func (m Message) Preview(maxLen int) string {
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
