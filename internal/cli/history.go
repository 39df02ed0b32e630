// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history.go - Correction history listing.
//
// Command: history [--pages N]
//
// Fetches N pages through the same paginator the UI uses and prints the
// accumulated items, newest first as the service orders them.

package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tensaku-tui/internal/history"
	"github.com/jeranaias/tensaku-tui/internal/util"
)

// HistoryOutput is the JSON payload of `tensaku history`.
type HistoryOutput struct {
	UserID     string              `json:"user_id"`
	TotalCount int                 `json:"total_count"`
	PageSize   int                 `json:"page_size"`
	Pages      int                 `json:"pages_loaded"`
	Items      []HistoryItemOutput `json:"items"`
}

// HistoryItemOutput is one history entry.
type HistoryItemOutput struct {
	ID             int64     `json:"id"`
	OriginalText   string    `json:"original_text"`
	CorrectedText  string    `json:"corrected_text"`
	CorrectionType string    `json:"correction_type"`
	Model          string    `json:"ai_model_used"`
	CreatedAt      time.Time `json:"created_at"`
}

// HandleHistory lists past corrections.
func HandleHistory(env *Env, args Args) error {
	sess, err := env.requireSession("history")
	if err != nil {
		return err
	}

	pages := args.Pages
	if pages < 1 {
		pages = 1
	}

	p := history.New(env.Gateway, env.Config.History.PageSize, env.logger())
	apply := func(msg tea.Msg) { p.Update(msg) }

	util.Feed(p.Open(sess), apply)
	for loaded := 1; loaded < pages && p.HasMore() && p.Err() == nil; loaded++ {
		util.Feed(p.LoadMore(), apply)
	}
	if p.Err() != nil && p.Len() == 0 {
		return NewCommandError("history", "fetch", "could not load history", p.Err())
	}

	out := HistoryOutput{
		UserID:     sess.UserID,
		TotalCount: p.TotalCount(),
		PageSize:   p.PageSize(),
		Pages:      p.PageIndex() + 1,
		Items:      make([]HistoryItemOutput, 0, p.Len()),
	}
	for _, it := range p.Items() {
		out.Items = append(out.Items, HistoryItemOutput{
			ID:             it.ID,
			OriginalText:   it.OriginalText,
			CorrectedText:  it.CorrectedText,
			CorrectionType: it.Tag(),
			Model:          it.AIModelUsed,
			CreatedAt:      it.CreatedAt,
		})
	}

	if args.JSON {
		return NewJSONResponse(CmdHistory.String(), out).Write(env.out())
	}

	w := env.out()
	if len(out.Items) == 0 {
		fmt.Fprintln(w, DimStyle.Render("履歴はありません"))
		return nil
	}

	if !args.Quiet {
		fmt.Fprintln(w, TitleStyle.Render("添削履歴"))
	}
	textWidth := (GetTerminalWidth() - 30) / 2
	if textWidth < 12 {
		textWidth = 12
	}
	for _, it := range out.Items {
		when := it.CreatedAt.Local().Format("2006-01-02 15:04")
		original := util.TruncateWidth(util.SingleLine(it.OriginalText), textWidth)
		corrected := util.TruncateWidth(util.SingleLine(it.CorrectedText), textWidth)
		fmt.Fprintf(w, "%s %s %s → %s\n",
			DimStyle.Render(when),
			DimStyle.Render("["+it.CorrectionType+"]"),
			original,
			ValueStyle.Render(corrected))
	}
	if !args.Quiet {
		fmt.Fprintln(w, DimStyle.Render(fmt.Sprintf("%d / %d 件", len(out.Items), out.TotalCount)))
	}
	return nil
}
