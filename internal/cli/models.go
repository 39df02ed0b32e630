// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// models.go - Model catalog and preference commands.
//
// Commands:
//   models             List the catalog, marking the preferred model
//   model set <name>   Change the preferred model (confirmed by the service)

package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tensaku-tui/internal/preference"
	"github.com/jeranaias/tensaku-tui/internal/util"
)

// ModelsOutput is the JSON payload of `tensaku models` and `model set`.
type ModelsOutput struct {
	UserID    string        `json:"user_id"`
	Preferred string        `json:"preferred_model"`
	Models    []ModelOutput `json:"models"`
	Message   string        `json:"message,omitempty"`
}

// ModelOutput is one catalog entry.
type ModelOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Preferred bool   `json:"preferred"`
}

// loadStore loads the catalog and the user's settings synchronously.
func loadStore(env *Env, command string) (*preference.Store, error) {
	sess, err := env.requireSession(command)
	if err != nil {
		return nil, err
	}
	store := preference.NewStore(env.Gateway, env.logger())
	util.Feed(store.Load(sess), func(msg tea.Msg) { _ = store.Update(msg) })
	return store, nil
}

// HandleModels lists the model catalog.
func HandleModels(env *Env, args Args) error {
	store, err := loadStore(env, "models")
	if err != nil {
		return err
	}
	if len(store.Catalog()) == 0 {
		return NewCommandError("models", "list", "model catalog unavailable", nil)
	}
	return printModels(env, args, store, "")
}

// HandleModelSet changes the preferred model. The local preference only
// changes once the service confirms the write.
func HandleModelSet(env *Env, args Args) error {
	store, err := loadStore(env, "model set")
	if err != nil {
		return err
	}
	name := args.Rest[0]

	cmd, err := store.SelectModel(env.Session, name)
	if err != nil {
		if errors.Is(err, preference.ErrUnknownModel) {
			return NewUsageError(fmt.Sprintf("unknown model %q; run 'tensaku models' to list the catalog", name))
		}
		return err
	}

	var (
		selErr    error
		serverMsg string
	)
	util.Feed(cmd, func(msg tea.Msg) {
		if m, ok := msg.(preference.SelectedMsg); ok {
			serverMsg = m.ServerMessage
		}
		if err := store.Update(msg); err != nil {
			selErr = err
		}
	})
	if selErr != nil {
		return NewCommandError("model", "set", "the service rejected the change", selErr)
	}

	if cmd == nil {
		serverMsg = "already the preferred model"
	}
	return printModels(env, args, store, serverMsg)
}

func printModels(env *Env, args Args, store *preference.Store, message string) error {
	out := ModelsOutput{
		UserID:    env.Session.UserID,
		Preferred: store.Preferred(),
		Message:   message,
	}
	for _, opt := range store.Options() {
		out.Models = append(out.Models, ModelOutput{
			ID:        opt.ID,
			Name:      opt.Name,
			Preferred: opt.ID == out.Preferred,
		})
	}

	command := CmdModels.String()
	if message != "" {
		command = CmdModelSet.String()
	}
	if args.JSON {
		return NewJSONResponse(command, out).Write(env.out())
	}

	w := env.out()
	if message != "" {
		fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("[OK]"), message)
	}
	if args.Quiet {
		fmt.Fprintln(w, out.Preferred)
		return nil
	}

	fmt.Fprintln(w, TitleStyle.Render("モデル一覧"))
	for _, m := range out.Models {
		marker := "  "
		id := util.PadRight(m.ID, 24)
		if m.Preferred {
			marker = HighlightStyle.Render("* ")
			id = HighlightStyle.Render(id)
		}
		fmt.Fprintf(w, "%s%s  %s\n", marker, id, DimStyle.Render(m.Name))
	}
	return nil
}
