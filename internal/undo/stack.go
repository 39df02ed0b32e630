// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package undo keeps the text snapshots that let a user revert an applied
// correction.
package undo

// Stack is a LIFO of prior composition texts. There is no redo.
//
// A Stack belongs to one composition view and is only touched from that
// view's event loop, so it carries no lock.
type Stack struct {
	entries  []string
	maxDepth int
}

// NewStack creates an empty stack. maxDepth <= 0 means unbounded; otherwise
// recording past the cap drops the oldest entry.
func NewStack(maxDepth int) *Stack {
	if maxDepth < 0 {
		maxDepth = 0
	}
	return &Stack{maxDepth: maxDepth}
}

// Record pushes text. Callers push strictly before the displayed text
// changes, so the top is never the text on screen.
func (s *Stack) Record(text string) {
	if s.maxDepth > 0 && len(s.entries) >= s.maxDepth {
		copy(s.entries, s.entries[1:])
		s.entries[len(s.entries)-1] = text
		return
	}
	s.entries = append(s.entries, text)
}

// Undo pops and returns the most recent snapshot. ok is false when there is
// nothing to undo, which is not an error.
func (s *Stack) Undo() (text string, ok bool) {
	if len(s.entries) == 0 {
		return "", false
	}
	last := len(s.entries) - 1
	text = s.entries[last]
	s.entries[last] = ""
	s.entries = s.entries[:last]
	return text, true
}

// Peek returns the top snapshot without removing it.
func (s *Stack) Peek() (string, bool) {
	if len(s.entries) == 0 {
		return "", false
	}
	return s.entries[len(s.entries)-1], true
}

// Len returns the number of snapshots held.
func (s *Stack) Len() int { return len(s.entries) }

// CanUndo reports whether Undo would return a snapshot.
func (s *Stack) CanUndo() bool { return len(s.entries) > 0 }

// MaxDepth returns the configured cap, 0 for unbounded.
func (s *Stack) MaxDepth() int { return s.maxDepth }

// Clear drops every snapshot. Called when the composition view is torn down.
func (s *Stack) Clear() {
	s.entries = nil
}
