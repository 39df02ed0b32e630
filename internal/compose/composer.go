// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compose holds the state of the message composition view: the text
// being written, the sent-message log, undo snapshots, and the correction
// dialog that can rewrite the text.
package compose

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/tensaku-tui/internal/correction"
	"github.com/jeranaias/tensaku-tui/internal/model"
	"github.com/jeranaias/tensaku-tui/internal/undo"
)

// ErrEmptyMessage is returned when sending blank text.
var ErrEmptyMessage = errors.New("compose: message is empty")

// Composer is the composition view's state. It is owned by one event loop.
type Composer struct {
	text   string
	conv   *model.Conversation
	undo   *undo.Stack
	corr   *correction.Controller
	logger *zap.Logger
}

// New creates a composer around a correction controller and an undo stack.
// A nil stack gets an unbounded one; a nil logger disables logging.
func New(corr *correction.Controller, stack *undo.Stack, logger *zap.Logger) *Composer {
	if stack == nil {
		stack = undo.NewStack(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{
		conv:   model.NewConversation(),
		undo:   stack,
		corr:   corr,
		logger: logger.Named("compose"),
	}
}

// =============================================================================
// TEXT
// =============================================================================

// SetText replaces the composed text, as typing does. It does not record an
// undo snapshot.
func (c *Composer) SetText(text string) { c.text = text }

// Text returns the composed text.
func (c *Composer) Text() string { return c.text }

// Send appends the composed text to the log as a user message and clears the
// input. Undo snapshots survive a send.
func (c *Composer) Send() (*model.Message, error) {
	if strings.TrimSpace(c.text) == "" {
		return nil, ErrEmptyMessage
	}
	msg := c.conv.AddUserMessage(c.text)
	c.text = ""
	c.logger.Debug("message sent", zap.String("id", msg.ID))
	return &msg, nil
}

// Messages returns a copy of the sent-message log.
func (c *Composer) Messages() []model.Message { return c.conv.Messages() }

// =============================================================================
// CORRECTION DIALOG
// =============================================================================

// OpenCorrection requests corrections for the composed text.
func (c *Composer) OpenCorrection(opts correction.Options) (tea.Cmd, error) {
	return c.corr.Submit(c.text, opts)
}

// SelectVariant applies variant index to the composed text. The prior text
// is recorded strictly before the replacement; selecting a variant equal to
// the current text records nothing.
func (c *Composer) SelectVariant(index int) (string, error) {
	text, err := c.corr.SelectVariant(index)
	if err != nil {
		return "", err
	}
	if text != c.text {
		c.undo.Record(c.text)
		c.text = text
	}
	return text, nil
}

// CloseCorrection dismisses the dialog.
func (c *Composer) CloseCorrection() { c.corr.Close() }

// RetryCorrection starts a new request for a failed session's text.
func (c *Composer) RetryCorrection() (tea.Cmd, error) { return c.corr.Retry() }

// Correction exposes the controller for read access by the view.
func (c *Composer) Correction() *correction.Controller { return c.corr }

// Update routes a message to the correction controller.
func (c *Composer) Update(msg tea.Msg) bool { return c.corr.Update(msg) }

// =============================================================================
// UNDO
// =============================================================================

// Undo restores the most recent snapshot. ok is false when there is nothing
// to undo, in which case the text is unchanged.
func (c *Composer) Undo() (string, bool) {
	prev, ok := c.undo.Undo()
	if !ok {
		return c.text, false
	}
	c.text = prev
	return prev, true
}

// CanUndo reports whether Undo would change the text.
func (c *Composer) CanUndo() bool { return c.undo.CanUndo() }

// Teardown ends the view: snapshots are dropped and any open correction is
// closed. The message log is left for the caller to discard.
func (c *Composer) Teardown() {
	c.undo.Clear()
	c.corr.Close()
}
