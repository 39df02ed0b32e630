// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history loads a user's past corrections one page at a time.
package history

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/tensaku-tui/internal/model"
	"github.com/jeranaias/tensaku-tui/internal/session"
)

// DefaultPageSize is the number of items requested per page.
const DefaultPageSize = 20

// Gateway is the slice of the service client the paginator needs.
type Gateway interface {
	GetHistory(ctx context.Context, userID string, limit, offset int) (*model.HistoryPage, error)
}

// PageMsg carries one fetched page back to the paginator that asked for it.
type PageMsg struct {
	owner *Paginator
	token uint64
	Index int
	Page  *model.HistoryPage
	Err   error
}

// =============================================================================
// PAGINATOR
// =============================================================================

// Paginator accumulates history pages in ascending offset order.
//
// Items are replaced only by Open; LoadMore appends. The accumulated length
// never exceeds the most recent server-reported total. One request is in
// flight at a time and only the most recently issued one is applied.
type Paginator struct {
	gw       Gateway
	logger   *zap.Logger
	pageSize int

	sess       session.Context
	items      []model.HistoryItem
	totalCount int
	// pageIndex is the last page that landed; it advances only on success.
	pageIndex int
	loading   bool
	open      bool
	err       error
	token     uint64
}

// New creates a paginator. pageSize <= 0 uses DefaultPageSize; a nil logger
// disables logging.
func New(gw Gateway, pageSize int, logger *zap.Logger) *Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Paginator{
		gw:       gw,
		logger:   logger.Named("history"),
		pageSize: pageSize,
	}
}

// Open resets to page 0 for sess and fetches it. Calling Open again, for the
// same user or another, always starts over.
func (p *Paginator) Open(sess session.Context) tea.Cmd {
	p.sess = sess
	p.open = true
	p.items = nil
	p.totalCount = 0
	p.pageIndex = 0
	p.err = nil
	return p.fetch(0)
}

// LoadMore fetches the next page. It is a no-op (nil command) while a fetch
// is in flight, when closed, or when every item has been loaded.
func (p *Paginator) LoadMore() tea.Cmd {
	if !p.open || p.loading || !p.HasMore() {
		return nil
	}
	return p.fetch(p.pageIndex + 1)
}

// Close hides the view. Accumulated items are kept; an in-flight response is
// ignored when it arrives.
func (p *Paginator) Close() {
	p.open = false
	p.loading = false
	p.token++
}

func (p *Paginator) fetch(index int) tea.Cmd {
	p.token++
	p.loading = true

	token := p.token
	gw := p.gw
	userID := p.sess.UserID
	limit := p.pageSize
	offset := index * p.pageSize

	p.logger.Debug("fetching history page",
		zap.String("user", userID),
		zap.Int("page", index),
		zap.Int("offset", offset))

	return func() tea.Msg {
		page, err := gw.GetHistory(context.Background(), userID, limit, offset)
		return PageMsg{owner: p, token: token, Index: index, Page: page, Err: err}
	}
}

// Update applies a PageMsg and reports whether it changed state.
func (p *Paginator) Update(msg tea.Msg) bool {
	m, ok := msg.(PageMsg)
	if !ok || m.owner != p {
		return false
	}
	if m.token != p.token || !p.loading {
		p.logger.Debug("discarding stale history page",
			zap.Int("page", m.Index),
			zap.Uint64("token", m.token))
		return false
	}

	p.loading = false
	if m.Err != nil {
		p.err = m.Err
		p.logger.Warn("failed to load history",
			zap.String("user", p.sess.UserID),
			zap.Int("page", m.Index),
			zap.Error(m.Err))
		return true
	}
	p.err = nil

	var page model.HistoryPage
	if m.Page != nil {
		page = *m.Page
	}

	// The latest response is authoritative for the total.
	p.totalCount = page.TotalCount
	p.pageIndex = m.Index

	incoming := page.Items
	if room := p.totalCount - len(p.items); len(incoming) > room {
		if room < 0 {
			room = 0
		}
		incoming = incoming[:room]
	}
	p.items = append(p.items, incoming...)
	if len(p.items) > p.totalCount {
		p.items = p.items[:p.totalCount]
	}
	return true
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Items returns a copy of the accumulated items.
func (p *Paginator) Items() []model.HistoryItem {
	out := make([]model.HistoryItem, len(p.items))
	copy(out, p.items)
	return out
}

// Len returns the number of accumulated items.
func (p *Paginator) Len() int { return len(p.items) }

// TotalCount returns the server-reported total from the latest page.
func (p *Paginator) TotalCount() int { return p.totalCount }

// PageIndex returns the index of the last page that landed.
func (p *Paginator) PageIndex() int { return p.pageIndex }

// PageSize returns the page size.
func (p *Paginator) PageSize() int { return p.pageSize }

// Loading reports whether a fetch is in flight.
func (p *Paginator) Loading() bool { return p.loading }

// HasMore reports whether items remain beyond those loaded.
func (p *Paginator) HasMore() bool { return len(p.items) < p.totalCount }

// IsOpen reports whether the view is open.
func (p *Paginator) IsOpen() bool { return p.open }

// Err returns the error of the last fetch, or nil.
func (p *Paginator) Err() error { return p.err }

// Session returns the session the paginator was last opened for.
func (p *Paginator) Session() session.Context { return p.sess }
