// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package correction drives the request, variants and selection lifecycle of
// one pending correction.
package correction

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/tensaku-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyInput is returned for blank submissions, before any network call.
	ErrEmptyInput = errors.New("correction: text is empty")

	// ErrNotReady is returned when selecting outside the Ready state.
	ErrNotReady = errors.New("correction: no variants are ready")

	// ErrNoSuchVariant is returned for an out-of-range variant index.
	ErrNoSuchVariant = errors.New("correction: no such variant")

	// ErrNotFailed is returned by Retry when the session has not failed.
	ErrNotFailed = errors.New("correction: session has not failed")
)

// =============================================================================
// STATUS
// =============================================================================

// Status is the lifecycle state of a correction session.
type Status int

const (
	StatusIdle Status = iota
	StatusRequesting
	StatusReady
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRequesting:
		return "requesting"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// =============================================================================
// SESSION
// =============================================================================

// Session is a snapshot of the active correction.
type Session struct {
	OriginalText string
	Variants     []model.Variant
	Status       Status
	ErrorMessage string
	Err          error
}

// Options are the optional request fields for a submission.
type Options struct {
	UserID         string
	PreferredModel string
	Style          string
}

// Gateway is the slice of the service client the controller needs.
type Gateway interface {
	Correct(ctx context.Context, req model.CorrectionRequest) (*model.CorrectionResult, error)
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns at most one correction session at a time.
//
// Intent methods (Submit, Retry, SelectVariant, Close) and Update must be
// called from the same event loop. The tea.Cmd returned by Submit performs
// the network call elsewhere and only reports back through Update, where a
// request token discards anything but the most recent response.
type Controller struct {
	gw     Gateway
	logger *zap.Logger
	locale Locale

	session Session
	opts    Options
	token   uint64

	// OnTransition, when set, observes every status change in order.
	OnTransition func(from, to Status)
}

// NewController creates a controller. A nil logger disables logging.
func NewController(gw Gateway, locale Locale, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		gw:     gw,
		logger: logger.Named("correction"),
		locale: locale,
	}
}

// Submit starts a new session for text and returns the command that performs
// the request. Any earlier session, including one still requesting, is
// superseded; its response will be ignored.
func (c *Controller) Submit(text string, opts Options) (tea.Cmd, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	c.token++
	c.opts = opts
	c.setSession(Session{OriginalText: text, Status: StatusRequesting})

	token := c.token
	gw := c.gw
	req := model.CorrectionRequest{
		Text:           norm.NFC.String(text),
		UserID:         opts.UserID,
		PreferredModel: opts.PreferredModel,
		Style:          opts.Style,
	}

	c.logger.Debug("submitting correction",
		zap.Uint64("token", token),
		zap.Int("runes", len([]rune(text))),
		zap.String("model", opts.PreferredModel),
		zap.String("style", opts.Style))

	return func() tea.Msg {
		// The client applies the fixed per-call timeout.
		result, err := gw.Correct(context.Background(), req)
		return ResultMsg{owner: c, token: token, Result: result, Err: err}
	}, nil
}

// Retry starts a brand-new session for the text of a failed session. The
// failed session itself is not revived.
func (c *Controller) Retry() (tea.Cmd, error) {
	if c.session.Status != StatusFailed {
		return nil, ErrNotFailed
	}
	return c.Submit(c.session.OriginalText, c.opts)
}

// Update applies a ResultMsg. It reports whether the message belonged to
// this controller's current request and changed state.
func (c *Controller) Update(msg tea.Msg) bool {
	res, ok := msg.(ResultMsg)
	if !ok || res.owner != c {
		return false
	}
	if res.token != c.token || c.session.Status != StatusRequesting {
		c.logger.Debug("discarding stale correction response",
			zap.Uint64("token", res.token),
			zap.Uint64("current", c.token))
		return false
	}

	if res.Err != nil {
		c.logger.Error("correction failed",
			zap.Uint64("token", res.token),
			zap.Error(res.Err))
		c.setSession(Session{
			OriginalText: c.session.OriginalText,
			Status:       StatusFailed,
			ErrorMessage: FailureMessage(c.locale, res.Err),
			Err:          res.Err,
		})
		return true
	}

	var variants []model.Variant
	if res.Result != nil {
		variants = make([]model.Variant, len(res.Result.Variants))
		copy(variants, res.Result.Variants)
	}
	c.setSession(Session{
		OriginalText: c.session.OriginalText,
		Variants:     variants,
		Status:       StatusReady,
	})
	return true
}

// SelectVariant returns the text of variant index and concludes the session.
func (c *Controller) SelectVariant(index int) (string, error) {
	if c.session.Status != StatusReady {
		return "", ErrNotReady
	}
	if index < 0 || index >= len(c.session.Variants) {
		return "", ErrNoSuchVariant
	}

	text := c.session.Variants[index].Text
	c.conclude()
	return text, nil
}

// Close tears the session down. A response still in flight is ignored when
// it arrives.
func (c *Controller) Close() {
	c.conclude()
}

func (c *Controller) conclude() {
	c.token++
	c.setSession(Session{})
}

func (c *Controller) setSession(s Session) {
	from := c.session.Status
	c.session = s
	if c.OnTransition != nil && from != s.Status {
		c.OnTransition(from, s.Status)
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Status returns the current session status.
func (c *Controller) Status() Status { return c.session.Status }

// Active reports whether a session exists (any state but Idle).
func (c *Controller) Active() bool { return c.session.Status != StatusIdle }

// Session returns a copy of the current session.
func (c *Controller) Session() Session {
	s := c.session
	if s.Variants != nil {
		s.Variants = make([]model.Variant, len(c.session.Variants))
		copy(s.Variants, c.session.Variants)
	}
	return s
}

// Locale returns the locale used for failure messages.
func (c *Controller) Locale() Locale { return c.locale }
