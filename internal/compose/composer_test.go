// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package compose

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tensaku-tui/internal/correction"
	"github.com/jeranaias/tensaku-tui/internal/model"
	"github.com/jeranaias/tensaku-tui/internal/undo"
	"github.com/jeranaias/tensaku-tui/internal/util"
)

type fakeGateway struct {
	variants []model.Variant
}

func (f *fakeGateway) Correct(_ context.Context, req model.CorrectionRequest) (*model.CorrectionResult, error) {
	return &model.CorrectionResult{OriginalText: req.Text, Variants: f.variants}, nil
}

func newComposer(variants ...model.Variant) *Composer {
	ctrl := correction.NewController(&fakeGateway{variants: variants}, correction.LocaleJapanese, nil)
	return New(ctrl, undo.NewStack(0), nil)
}

func openAndLand(t *testing.T, c *Composer) {
	t.Helper()
	cmd, err := c.OpenCorrection(correction.Options{UserID: "user1"})
	require.NoError(t, err)
	util.Feed(cmd, func(m tea.Msg) { c.Update(m) })
	require.Equal(t, correction.StatusReady, c.Correction().Status())
}

func TestComposer_SelectVariantRecordsPriorText(t *testing.T) {
	c := newComposer(
		model.NewVariant("こんにちは。", "polite", ""),
		model.NewVariant("やあ", "casual", ""),
		model.NewVariant("こんにちは!", "corrected", ""),
	)
	c.SetText("こんにちは")
	openAndLand(t, c)

	text, err := c.SelectVariant(2)
	require.NoError(t, err)
	assert.Equal(t, "こんにちは!", text)
	assert.Equal(t, "こんにちは!", c.Text())
	assert.True(t, c.CanUndo())

	prev, ok := c.Undo()
	require.True(t, ok)
	assert.Equal(t, "こんにちは", prev)
	assert.Equal(t, "こんにちは", c.Text())
	assert.False(t, c.CanUndo())
}

func TestComposer_UndoStackNeverHoldsDisplayedText(t *testing.T) {
	c := newComposer(model.NewVariant("same", "corrected", ""))
	c.SetText("same")
	openAndLand(t, c)

	_, err := c.SelectVariant(0)
	require.NoError(t, err)
	assert.False(t, c.CanUndo(), "identical variant records nothing")
}

func TestComposer_UndoEmpty(t *testing.T) {
	c := newComposer()
	c.SetText("draft")

	text, ok := c.Undo()
	assert.False(t, ok)
	assert.Equal(t, "draft", text)
	assert.Equal(t, "draft", c.Text())
}

func TestComposer_SelectVariantErrorsLeaveText(t *testing.T) {
	c := newComposer(model.NewVariant("b", "corrected", ""))
	c.SetText("a")

	_, err := c.SelectVariant(0)
	assert.ErrorIs(t, err, correction.ErrNotReady)
	assert.Equal(t, "a", c.Text())
	assert.False(t, c.CanUndo())
}

func TestComposer_OpenCorrectionEmpty(t *testing.T) {
	c := newComposer()
	c.SetText("  ")
	_, err := c.OpenCorrection(correction.Options{})
	assert.ErrorIs(t, err, correction.ErrEmptyInput)
}

func TestComposer_Send(t *testing.T) {
	c := newComposer(model.NewVariant("b", "corrected", ""))

	_, err := c.Send()
	assert.ErrorIs(t, err, ErrEmptyMessage)

	c.SetText("a")
	openAndLand(t, c)
	_, err = c.SelectVariant(0)
	require.NoError(t, err)

	msg, err := c.Send()
	require.NoError(t, err)
	assert.Equal(t, "b", msg.Text)
	assert.Equal(t, model.SenderUser, msg.Sender)
	assert.Empty(t, c.Text())
	assert.Len(t, c.Messages(), 1)
	assert.True(t, c.CanUndo(), "send keeps snapshots")
}

func TestComposer_Teardown(t *testing.T) {
	c := newComposer(model.NewVariant("b", "corrected", ""))
	c.SetText("a")
	openAndLand(t, c)
	c.SelectVariant(0)

	cmd, err := c.OpenCorrection(correction.Options{})
	require.NoError(t, err)

	c.Teardown()
	assert.False(t, c.CanUndo())
	assert.False(t, c.Correction().Active())

	// The in-flight response is dropped.
	util.Feed(cmd, func(m tea.Msg) { assert.False(t, c.Update(m)) })
}

func TestComposer_CloseCorrection(t *testing.T) {
	c := newComposer(model.NewVariant("b", "corrected", ""))
	c.SetText("a")
	openAndLand(t, c)

	c.CloseCorrection()
	assert.Equal(t, correction.StatusIdle, c.Correction().Status())
	assert.Equal(t, "a", c.Text())
}
