// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	sess, err := New("  user1 ")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if sess.UserID != "user1" {
		t.Errorf("UserID = %q, want trimmed user1", sess.UserID)
	}
	if !strings.HasPrefix(sess.SessionID, "sess_") {
		t.Errorf("SessionID = %q, want sess_ prefix", sess.SessionID)
	}
	if !sess.Valid() {
		t.Error("session should be valid")
	}
	if sess.StartedAt.IsZero() {
		t.Error("StartedAt should be set")
	}
}

func TestNew_RequiresUser(t *testing.T) {
	_, err := New("   ")
	if !errors.Is(err, ErrNoUser) {
		t.Errorf("err = %v, want ErrNoUser", err)
	}
	if (Context{}).Valid() {
		t.Error("zero Context should be invalid")
	}
}

func TestNew_UniqueSessionIDs(t *testing.T) {
	a, _ := New("user1")
	b, _ := New("user1")
	if a.SessionID == b.SessionID {
		t.Error("session ids should differ")
	}
	if !a.SameUser(b) {
		t.Error("same user id should compare equal")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{2 * time.Minute, "2m"},
		{2*time.Minute + 5*time.Second, "2m 5s"},
	}
	for _, tc := range tests {
		if got := FormatDuration(tc.d); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
