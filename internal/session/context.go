// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session carries the identity of one interactive user session.
package session

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNoUser is returned when a session is created without a user id.
var ErrNoUser = errors.New("session: user id is required")

// =============================================================================
// SESSION CONTEXT
// =============================================================================

// Context identifies who the client is acting for. It is passed explicitly
// into every entry point that talks to the service; nothing reads the user
// from ambient state.
//
// Context is a value type. Copies are cheap and never alias.
type Context struct {
	UserID    string
	SessionID string
	StartedAt time.Time
}

// New starts a session for userID with a fresh session id.
func New(userID string) (Context, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Context{}, ErrNoUser
	}
	return Context{
		UserID:    userID,
		SessionID: "sess_" + uuid.NewString(),
		StartedAt: time.Now(),
	}, nil
}

// Valid reports whether the context names a user.
func (c Context) Valid() bool {
	return c.UserID != ""
}

// SameUser reports whether c and other act for the same user.
func (c Context) SameUser(other Context) bool {
	return c.UserID == other.UserID
}

// Duration returns how long the session has been running.
func (c Context) Duration() time.Duration {
	if c.StartedAt.IsZero() {
		return 0
	}
	return time.Since(c.StartedAt)
}

// String renders the context for logs.
func (c Context) String() string {
	return c.UserID + "/" + c.SessionID
}

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return strconv.Itoa(int(d.Seconds())) + "s"
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return strconv.Itoa(mins) + "m"
	}
	return strconv.Itoa(mins) + "m " + strconv.Itoa(secs) + "s"
}
