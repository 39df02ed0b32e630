// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package preference

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tensaku-tui/internal/api"
	"github.com/jeranaias/tensaku-tui/internal/model"
	"github.com/jeranaias/tensaku-tui/internal/session"
	"github.com/jeranaias/tensaku-tui/internal/util"
)

type fakeGateway struct {
	models      map[string]string
	modelsErr   error
	settings    map[string]*model.UserSettings
	settingsErr error
	setErr      error
	writes      []string
}

func (f *fakeGateway) ListModels(context.Context) (map[string]string, error) {
	if f.modelsErr != nil {
		return nil, f.modelsErr
	}
	return f.models, nil
}

func (f *fakeGateway) GetUserSettings(_ context.Context, userID string) (*model.UserSettings, error) {
	if f.settingsErr != nil {
		return nil, f.settingsErr
	}
	if st, ok := f.settings[userID]; ok {
		return st, nil
	}
	return &model.UserSettings{UserID: userID}, nil
}

func (f *fakeGateway) SetUserModel(_ context.Context, userID, name string) (string, error) {
	f.writes = append(f.writes, userID+":"+name)
	if f.setErr != nil {
		return "", f.setErr
	}
	return "Model preference updated", nil
}

func newFake() *fakeGateway {
	return &fakeGateway{
		models: map[string]string{
			"openai-gpt4o": "GPT-4o",
			"claude-3":     "Claude 3",
			"gemini-pro":   "Gemini Pro",
		},
		settings: map[string]*model.UserSettings{
			"user1": {UserID: "user1", PreferredModel: "gemini-pro"},
		},
	}
}

func mustSession(t *testing.T, user string) session.Context {
	t.Helper()
	sess, err := session.New(user)
	require.NoError(t, err)
	return sess
}

func feed(t *testing.T, s *Store, cmd tea.Cmd) error {
	t.Helper()
	var last error
	for _, msg := range util.RunCmd(cmd) {
		if err := s.Update(msg); err != nil {
			last = err
		}
	}
	return last
}

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoad(t *testing.T) {
	s := NewStore(newFake(), nil)
	assert.Equal(t, DefaultModel, s.Preferred(), "placeholder before load")
	assert.False(t, s.Loaded())

	require.NoError(t, feed(t, s, s.Load(mustSession(t, "user1"))))

	assert.True(t, s.Loaded())
	assert.Equal(t, "gemini-pro", s.Preferred())
	assert.Len(t, s.Catalog(), 3)
	assert.Equal(t, "Claude 3", s.DisplayName("claude-3"))
	assert.Equal(t, "nope", s.DisplayName("nope"))

	opts := s.Options()
	require.Len(t, opts, 3)
	assert.Equal(t, "claude-3", opts[0].ID)
}

func TestLoad_CatalogFailureKeepsDefaults(t *testing.T) {
	gw := newFake()
	gw.modelsErr = &api.ClientError{Type: api.ErrTypeNetwork}
	s := NewStore(gw, nil)

	require.NoError(t, feed(t, s, s.Load(mustSession(t, "user1"))))

	assert.Empty(t, s.Catalog())
	assert.Equal(t, "gemini-pro", s.Preferred(), "settings still applied")
	assert.False(t, s.Loaded())
}

func TestLoad_SettingsFailureKeepsPlaceholder(t *testing.T) {
	gw := newFake()
	gw.settingsErr = &api.ClientError{Type: api.ErrTypeService, StatusCode: 500}
	s := NewStore(gw, nil)

	require.NoError(t, feed(t, s, s.Load(mustSession(t, "user1"))))

	assert.Len(t, s.Catalog(), 3)
	assert.Equal(t, DefaultModel, s.Preferred())
}

func TestLoad_ReconcilesIntoCatalog(t *testing.T) {
	tests := []struct {
		name      string
		models    map[string]string
		preferred string
		want      string
	}{
		{"present", map[string]string{"claude-3": "", "openai-gpt4o": ""}, "claude-3", "claude-3"},
		{"fallback to default", map[string]string{"openai-gpt4o": "", "zeta": ""}, "retired-model", "openai-gpt4o"},
		{"fallback to first sorted", map[string]string{"zeta": "", "alpha": ""}, "retired-model", "alpha"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw := &fakeGateway{
				models:   tc.models,
				settings: map[string]*model.UserSettings{"u": {PreferredModel: tc.preferred}},
			}
			s := NewStore(gw, nil)
			feed(t, s, s.Load(mustSession(t, "u")))

			assert.Equal(t, tc.want, s.Preferred())
			_, ok := s.Catalog()[s.Preferred()]
			assert.True(t, ok, "preference must be a catalog key once loaded")
		})
	}
}

func TestLoad_DifferentUserResets(t *testing.T) {
	s := NewStore(newFake(), nil)
	feed(t, s, s.Load(mustSession(t, "user1")))
	require.Equal(t, "gemini-pro", s.Preferred())

	cmd := s.Load(mustSession(t, "user2"))
	assert.Equal(t, DefaultModel, s.Preferred(), "placeholder until user2 loads")
	feed(t, s, cmd)
	assert.Equal(t, DefaultModel, s.Preferred())
}

func TestLoad_StaleResponsesIgnored(t *testing.T) {
	s := NewStore(newFake(), nil)
	old := util.RunCmd(s.Load(mustSession(t, "user1")))
	feed(t, s, s.Load(mustSession(t, "user2")))

	for _, msg := range old {
		require.NoError(t, s.Update(msg))
	}
	assert.Equal(t, DefaultModel, s.Preferred(), "user1's settings must not leak into user2")
}

// =============================================================================
// SELECT TESTS
// =============================================================================

func TestSelectModel_ConfirmedWrite(t *testing.T) {
	gw := newFake()
	s := NewStore(gw, nil)
	sess := mustSession(t, "user1")
	feed(t, s, s.Load(sess))

	cmd, err := s.SelectModel(sess, "claude-3")
	require.NoError(t, err)
	require.NotNil(t, cmd)

	assert.Equal(t, "gemini-pro", s.Preferred(), "never updated ahead of confirmation")
	assert.Equal(t, "claude-3", s.Pending())

	require.NoError(t, feed(t, s, cmd))
	assert.Equal(t, "claude-3", s.Preferred())
	assert.Empty(t, s.Pending())
	assert.Equal(t, []string{"user1:claude-3"}, gw.writes)
}

func TestSelectModel_ServiceErrorLeavesPreference(t *testing.T) {
	gw := newFake()
	s := NewStore(gw, nil)
	sess := mustSession(t, "user1")
	feed(t, s, s.Load(sess))

	gw.setErr = &api.ClientError{Type: api.ErrTypeService, StatusCode: 400, Message: "Invalid model"}

	cmd, err := s.SelectModel(sess, "claude-3")
	require.NoError(t, err)

	err = feed(t, s, cmd)
	require.Error(t, err)
	assert.True(t, api.IsServiceError(err))
	assert.Equal(t, "gemini-pro", s.Preferred())
	assert.Empty(t, s.Pending())
}

func TestSelectModel_SameModelIsNoOp(t *testing.T) {
	gw := newFake()
	s := NewStore(gw, nil)
	sess := mustSession(t, "user1")
	feed(t, s, s.Load(sess))

	cmd, err := s.SelectModel(sess, "gemini-pro")
	assert.NoError(t, err)
	assert.Nil(t, cmd)
	assert.Empty(t, gw.writes)
}

func TestSelectModel_Validation(t *testing.T) {
	s := NewStore(newFake(), nil)
	sess := mustSession(t, "user1")

	_, err := s.SelectModel(session.Context{}, "claude-3")
	assert.ErrorIs(t, err, session.ErrNoUser)

	_, err = s.SelectModel(sess, "  ")
	assert.ErrorIs(t, err, ErrUnknownModel)

	// Before the catalog loads any name is accepted.
	cmd, err := s.SelectModel(sess, "anything")
	assert.NoError(t, err)
	assert.NotNil(t, cmd)

	feed(t, s, s.Load(sess))
	_, err = s.SelectModel(sess, "anything-else")
	assert.True(t, errors.Is(err, ErrUnknownModel))
}

func TestSelectModel_LaterIssuedWins(t *testing.T) {
	s := NewStore(newFake(), nil)
	sess := mustSession(t, "user1")
	feed(t, s, s.Load(sess))

	first, err := s.SelectModel(sess, "claude-3")
	require.NoError(t, err)
	second, err := s.SelectModel(sess, "openai-gpt4o")
	require.NoError(t, err)

	// The later-issued write resolves first; the earlier one is stale.
	require.NoError(t, feed(t, s, second))
	require.NoError(t, feed(t, s, first))

	assert.Equal(t, "openai-gpt4o", s.Preferred())
}

func TestSelectModel_NotRolledBackByLateSettings(t *testing.T) {
	s := NewStore(newFake(), nil)
	sess := mustSession(t, "user1")

	load := util.RunCmd(s.Load(sess))
	cmd, err := s.SelectModel(sess, "claude-3")
	require.NoError(t, err)
	require.NoError(t, feed(t, s, cmd))

	for _, msg := range load {
		s.Update(msg)
	}
	assert.Equal(t, "claude-3", s.Preferred())
}
