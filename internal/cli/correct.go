// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// correct.go - One-shot correction command.
//
// Command: correct <text>
// Flags:
//   --model NAME   Override the preferred model for this request
//   --style STYLE  Correction style (default, formal, casual, ...)
//
// Examples:
//   tensaku correct "こんにちわ、元気ですか"
//   tensaku --json correct --style formal "ありがとう"

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/tensaku-tui/internal/correction"
	"github.com/jeranaias/tensaku-tui/internal/model"
	"github.com/jeranaias/tensaku-tui/internal/preference"
	"github.com/jeranaias/tensaku-tui/internal/util"
)

// CorrectOutput is the JSON payload of `tensaku correct`.
type CorrectOutput struct {
	OriginalText string          `json:"original_text"`
	Model        string          `json:"model,omitempty"`
	Style        string          `json:"style"`
	Variants     []VariantOutput `json:"variants"`
}

// VariantOutput is one variant in CorrectOutput.
type VariantOutput struct {
	Text   string `json:"text"`
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// HandleCorrect requests correction variants for args.Text and prints them.
// A failed request prints the localized failure message and exits 1.
func HandleCorrect(env *Env, args Args) error {
	cfg := env.Config

	styleName := args.Style
	if styleName == "" {
		styleName = cfg.User.CorrectionStyle
	}
	style, ok := model.ParseCorrectionStyle(styleName)
	if !ok {
		return NewUsageError(fmt.Sprintf("unknown style %q (valid: %s)", styleName, styleNames()))
	}

	modelName := args.Model
	if modelName == "" {
		modelName = resolvePreferredModel(env)
	}

	opts := correction.Options{
		UserID:         env.Session.UserID,
		PreferredModel: modelName,
	}
	if style != model.StyleDefault {
		opts.Style = style.String()
	}

	ctrl := correction.NewController(env.Gateway, env.locale(), env.logger())
	cmd, err := ctrl.Submit(args.Text, opts)
	if err != nil {
		if errors.Is(err, correction.ErrEmptyInput) {
			return NewUsageError("correct requires non-empty text")
		}
		return err
	}
	util.Feed(cmd, func(msg tea.Msg) { ctrl.Update(msg) })

	sess := ctrl.Session()
	if sess.Status == correction.StatusFailed {
		if args.JSON {
			_ = NewJSONErrorResponseStr(CmdCorrect.String(), sess.ErrorMessage).Write(env.out())
		} else {
			fmt.Fprintf(env.errw(), "%s %s\n", ErrorStyle.Render("[ERROR]"), sess.ErrorMessage)
		}
		return &CommandError{
			Command: "correct",
			Action:  "request",
			Reason:  sess.ErrorMessage,
			Err:     sess.Err,
			Code:    ExitGeneralError,
			Shown:   true,
		}
	}

	out := CorrectOutput{
		OriginalText: sess.OriginalText,
		Model:        modelName,
		Style:        style.String(),
		Variants:     make([]VariantOutput, 0, len(sess.Variants)),
	}
	for _, v := range sess.Variants {
		out.Variants = append(out.Variants, VariantOutput{Text: v.Text, Type: v.Tag(), Reason: v.Reason})
	}

	if args.JSON {
		return NewJSONResponse(CmdCorrect.String(), out).Write(env.out())
	}

	printVariants(env.out(), sess, out, args.Quiet, cfg.UI.ShowReasons)
	return nil
}

// resolvePreferredModel returns the user's server-side preference, falling
// back to the configured default when there is no user or it cannot load.
func resolvePreferredModel(env *Env) string {
	fallback := env.Config.User.DefaultModel
	if !env.Session.Valid() {
		return fallback
	}

	store := preference.NewStore(env.Gateway, env.logger())
	util.Feed(store.Load(env.Session), func(msg tea.Msg) { _ = store.Update(msg) })
	if !store.Loaded() {
		return fallback
	}
	return store.Preferred()
}

func printVariants(w io.Writer, sess correction.Session, out CorrectOutput, quiet, reasons bool) {
	if quiet {
		for _, v := range sess.Variants {
			fmt.Fprintln(w, v.Text)
		}
		return
	}

	fmt.Fprintln(w, TitleStyle.Render("添削結果"))
	fmt.Fprintf(w, "%s%s\n", RenderLabel("原文"), ValueStyle.Render(sess.OriginalText))
	if out.Model != "" {
		fmt.Fprintf(w, "%s%s\n", RenderLabel("モデル"), DimStyle.Render(out.Model))
	}
	fmt.Fprintf(w, "%s%s\n", RenderLabel("スタイル"), DimStyle.Render(out.Style))
	fmt.Fprintln(w, RenderSeparator())

	if len(sess.Variants) == 0 {
		fmt.Fprintln(w, DimStyle.Render("候補はありません"))
		return
	}

	for i, v := range sess.Variants {
		fmt.Fprintf(w, "%d. %s %s\n", i+1, RenderVariantTag(v), v.Text)
		if reasons && strings.TrimSpace(v.Reason) != "" {
			fmt.Fprintln(w, indent(renderReason(v.Reason), "   "))
		}
	}
}

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// renderReason renders a variant rationale. The service writes rationales
// in light markdown; glamour is only used on a color terminal so piped
// output stays plain.
func renderReason(reason string) string {
	if !IsStdoutTTY() || !ColorsEnabled() {
		return reason
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()-6),
	)
	if err != nil {
		return reason
	}
	rendered, err := r.Render(reason)
	if err != nil {
		return reason
	}
	return strings.Trim(rendered, "\n")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func styleNames() string {
	names := make([]string, 0, len(model.AllStyles()))
	for _, s := range model.AllStyles() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}
