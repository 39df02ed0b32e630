// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, path string) *Watcher {
	t.Helper()
	w, err := NewWatcher(path, 20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestWatcher_ReloadsOnSave(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveTOML(Default(), path); err != nil {
		t.Fatal(err)
	}
	w := startWatcher(t, path)

	cfg := Default()
	cfg.UI.ShowReasons = false
	cfg.UI.Locale = "en"
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Updates():
		if got.UI.ShowReasons {
			t.Error("ShowReasons not reloaded")
		}
		if got.UI.Locale != "en" {
			t.Errorf("Locale = %q, want en", got.UI.Locale)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}

func TestWatcher_SkipsInvalidFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveTOML(Default(), path); err != nil {
		t.Fatal(err)
	}
	w := startWatcher(t, path)

	writeFile(t, path, "[history]\npage_size = -1\n")

	select {
	case got := <-w.Updates():
		t.Fatalf("invalid config published: %+v", got.History)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := SaveTOML(Default(), path); err != nil {
		t.Fatal(err)
	}
	w := startWatcher(t, path)

	writeFile(t, filepath.Join(dir, "tensaku.log"), "{}\n")

	select {
	case <-w.Updates():
		t.Fatal("reload triggered by an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_CloseEndsUpdates(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	w, err := NewWatcher(path, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if _, ok := <-w.Updates(); ok {
		t.Error("Updates still open after Close")
	}
}
