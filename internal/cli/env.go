// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jeranaias/tensaku-tui/internal/config"
	"github.com/jeranaias/tensaku-tui/internal/correction"
	"github.com/jeranaias/tensaku-tui/internal/history"
	"github.com/jeranaias/tensaku-tui/internal/preference"
	"github.com/jeranaias/tensaku-tui/internal/session"
)

// Gateway is everything the commands need from the correction service.
// *api.Client satisfies it.
type Gateway interface {
	correction.Gateway
	preference.Gateway
	history.Gateway
}

// Env carries what a command handler runs against.
type Env struct {
	Config *config.Config

	// ConfigPath is the file `config init|set|path` operate on.
	ConfigPath string

	Gateway Gateway

	// Session is invalid when no user id is configured.
	Session session.Context

	Logger *zap.Logger

	Out io.Writer
	Err io.Writer
}

func (e *Env) out() io.Writer {
	if e.Out == nil {
		return os.Stdout
	}
	return e.Out
}

func (e *Env) errw() io.Writer {
	if e.Err == nil {
		return os.Stderr
	}
	return e.Err
}

func (e *Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e *Env) locale() correction.Locale {
	if e.Config == nil {
		return correction.LocaleJapanese
	}
	return correction.ParseLocale(e.Config.UI.Locale)
}

// requireSession fails with a usage error when no user is configured.
func (e *Env) requireSession(command string) (session.Context, error) {
	if !e.Session.Valid() {
		return session.Context{}, NewUsageError(command + " needs a user id: pass --user, set TENSAKU_USER or run 'tensaku config set user.id <id>'")
	}
	return e.Session, nil
}
