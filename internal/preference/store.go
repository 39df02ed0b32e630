// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preference keeps the user's AI model choice consistent between the
// client and the correction service.
package preference

import (
	"context"
	"errors"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/tensaku-tui/internal/model"
	"github.com/jeranaias/tensaku-tui/internal/session"
)

// DefaultModel is the placeholder preference used until settings load.
const DefaultModel = "openai-gpt4o"

// ErrUnknownModel is returned when selecting a model absent from a loaded catalog.
var ErrUnknownModel = errors.New("preference: model is not in the catalog")

// Gateway is the slice of the service client the store needs.
type Gateway interface {
	ListModels(ctx context.Context) (map[string]string, error)
	GetUserSettings(ctx context.Context, userID string) (*model.UserSettings, error)
	SetUserModel(ctx context.Context, userID, modelName string) (string, error)
}

// Option is one catalog entry in display order.
type Option struct {
	ID   string
	Name string
}

// =============================================================================
// MESSAGES
// =============================================================================

// CatalogMsg carries the result of a catalog fetch.
type CatalogMsg struct {
	owner  *Store
	token  uint64
	Models map[string]string
	Err    error
}

// SettingsMsg carries the result of a settings fetch.
type SettingsMsg struct {
	owner    *Store
	token    uint64
	Settings *model.UserSettings
	Err      error
}

// SelectedMsg carries the result of a model write.
type SelectedMsg struct {
	owner         *Store
	token         uint64
	UserID        string
	Model         string
	ServerMessage string
	Err           error
}

// =============================================================================
// STORE
// =============================================================================

// Store holds the catalog and the confirmed preference for one user.
//
// Local state changes only when the service has confirmed it. Load and
// SelectModel each carry their own request token; only the most recently
// issued request of each kind is applied.
type Store struct {
	gw     Gateway
	logger *zap.Logger

	sess      session.Context
	preferred string
	catalog   map[string]string

	catalogOK    bool
	settingsDone bool
	// confirmed is set when a write lands after the current Load began, so a
	// late settings response cannot roll it back.
	confirmed bool

	loadToken   uint64
	selectToken uint64
	pending     string
}

// NewStore creates a store holding the placeholder preference and an empty
// catalog. A nil logger disables logging.
func NewStore(gw Gateway, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		gw:        gw,
		logger:    logger.Named("preference"),
		preferred: DefaultModel,
		catalog:   map[string]string{},
	}
}

// Load fetches the catalog and the user's settings concurrently. Either may
// fail independently; a failure is logged and leaves that field as it was.
// Loading for a different user starts from the placeholder state.
func (s *Store) Load(sess session.Context) tea.Cmd {
	if !sess.SameUser(s.sess) {
		s.preferred = DefaultModel
		s.catalog = map[string]string{}
		s.catalogOK = false
		s.pending = ""
		s.selectToken++
	}
	s.sess = sess
	s.settingsDone = false
	s.confirmed = false
	s.loadToken++

	token := s.loadToken
	gw := s.gw
	userID := sess.UserID

	catalog := func() tea.Msg {
		models, err := gw.ListModels(context.Background())
		return CatalogMsg{owner: s, token: token, Models: models, Err: err}
	}
	settings := func() tea.Msg {
		st, err := gw.GetUserSettings(context.Background(), userID)
		return SettingsMsg{owner: s, token: token, Settings: st, Err: err}
	}
	return tea.Batch(catalog, settings)
}

// SelectModel asks the service to store name as the preferred model. It
// returns a nil command when name is already the preference. The local value
// changes only when Update sees the confirmation.
func (s *Store) SelectModel(sess session.Context, name string) (tea.Cmd, error) {
	name = strings.TrimSpace(name)
	if !sess.Valid() {
		return nil, session.ErrNoUser
	}
	if name == "" {
		return nil, ErrUnknownModel
	}
	if name == s.preferred && s.pending == "" {
		return nil, nil
	}
	if s.catalogOK {
		if _, ok := s.catalog[name]; !ok {
			return nil, ErrUnknownModel
		}
	}

	s.selectToken++
	s.pending = name

	token := s.selectToken
	gw := s.gw
	userID := sess.UserID

	s.logger.Debug("selecting model",
		zap.String("user", userID),
		zap.String("model", name),
		zap.Uint64("token", token))

	return func() tea.Msg {
		msg, err := gw.SetUserModel(context.Background(), userID, name)
		return SelectedMsg{owner: s, token: token, UserID: userID, Model: name, ServerMessage: msg, Err: err}
	}, nil
}

// Update applies a store message. It returns the error of a failed model
// write so the caller can surface it; load failures are only logged.
func (s *Store) Update(msg tea.Msg) error {
	switch m := msg.(type) {
	case CatalogMsg:
		if m.owner != s || m.token != s.loadToken {
			s.logger.Debug("discarding stale catalog response", zap.Uint64("token", m.token))
			return nil
		}
		if m.Err != nil {
			s.logger.Warn("failed to load model catalog", zap.Error(m.Err))
			return nil
		}
		s.catalog = make(map[string]string, len(m.Models))
		for id, name := range m.Models {
			s.catalog[id] = name
		}
		s.catalogOK = true
		s.reconcile()

	case SettingsMsg:
		if m.owner != s || m.token != s.loadToken {
			s.logger.Debug("discarding stale settings response", zap.Uint64("token", m.token))
			return nil
		}
		s.settingsDone = true
		if m.Err != nil {
			s.logger.Warn("failed to load user settings",
				zap.String("user", s.sess.UserID),
				zap.Error(m.Err))
		} else if m.Settings != nil && m.Settings.PreferredModel != "" && !s.confirmed {
			s.preferred = m.Settings.PreferredModel
		}
		s.reconcile()

	case SelectedMsg:
		if m.owner != s || m.token != s.selectToken || m.UserID != s.sess.UserID {
			s.logger.Debug("discarding stale model selection",
				zap.String("model", m.Model),
				zap.Uint64("token", m.token))
			return nil
		}
		s.pending = ""
		if m.Err != nil {
			s.logger.Warn("failed to set preferred model",
				zap.String("user", m.UserID),
				zap.String("model", m.Model),
				zap.Error(m.Err))
			return m.Err
		}
		s.preferred = m.Model
		s.confirmed = true
		s.logger.Info("preferred model updated",
			zap.String("user", m.UserID),
			zap.String("model", m.Model))
	}
	return nil
}

// reconcile keeps the preference inside the catalog once both loads are
// done: keep it if present, else the placeholder if present, else the first
// catalog id in sorted order.
func (s *Store) reconcile() {
	if !s.catalogOK || !s.settingsDone || len(s.catalog) == 0 {
		return
	}
	if _, ok := s.catalog[s.preferred]; ok {
		return
	}
	previous := s.preferred
	if _, ok := s.catalog[DefaultModel]; ok {
		s.preferred = DefaultModel
	} else {
		s.preferred = s.sortedIDs()[0]
	}
	s.logger.Warn("preferred model not in catalog",
		zap.String("model", previous),
		zap.String("fallback", s.preferred))
}

func (s *Store) sortedIDs() []string {
	ids := make([]string, 0, len(s.catalog))
	for id := range s.catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Preferred returns the confirmed preferred model id.
func (s *Store) Preferred() string { return s.preferred }

// Pending returns the model being written, or "" when no write is in flight.
func (s *Store) Pending() string { return s.pending }

// Loaded reports whether the catalog loaded and the settings fetch finished.
func (s *Store) Loaded() bool { return s.catalogOK && s.settingsDone }

// Session returns the session the store was last loaded for.
func (s *Store) Session() session.Context { return s.sess }

// Catalog returns a copy of the model catalog.
func (s *Store) Catalog() map[string]string {
	out := make(map[string]string, len(s.catalog))
	for id, name := range s.catalog {
		out[id] = name
	}
	return out
}

// Options returns the catalog sorted by id.
func (s *Store) Options() []Option {
	ids := s.sortedIDs()
	out := make([]Option, len(ids))
	for i, id := range ids {
		out[i] = Option{ID: id, Name: s.catalog[id]}
	}
	return out
}

// DisplayName returns the catalog name for id, or id itself.
func (s *Store) DisplayName(id string) string {
	if name, ok := s.catalog[id]; ok && name != "" {
		return name
	}
	return id
}
