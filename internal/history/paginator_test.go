// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tensaku-tui/internal/api"
	"github.com/jeranaias/tensaku-tui/internal/model"
	"github.com/jeranaias/tensaku-tui/internal/session"
)

type call struct {
	user          string
	limit, offset int
}

// fakeGateway serves total items per user, optionally failing.
type fakeGateway struct {
	totals map[string]int
	// reported, when set, overrides the total the server claims.
	reported map[string]int
	fail     error
	calls  []call
}

func (f *fakeGateway) GetHistory(_ context.Context, userID string, limit, offset int) (*model.HistoryPage, error) {
	f.calls = append(f.calls, call{userID, limit, offset})
	if f.fail != nil {
		return nil, f.fail
	}
	total := f.totals[userID]
	page := &model.HistoryPage{TotalCount: total}
	if r, ok := f.reported[userID]; ok {
		page.TotalCount = r
	}
	for i := offset; i < offset+limit && i < total; i++ {
		page.Items = append(page.Items, model.HistoryItem{
			ID:           int64(i),
			OriginalText: fmt.Sprintf("%s-%d", userID, i),
		})
	}
	return page, nil
}

func sess(t *testing.T, user string) session.Context {
	t.Helper()
	s, err := session.New(user)
	require.NoError(t, err)
	return s
}

func apply(t *testing.T, p *Paginator, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	p.Update(cmd())
}

func TestPaginator_FortyFiveItems(t *testing.T) {
	gw := &fakeGateway{totals: map[string]int{"user1": 45}}
	p := New(gw, 20, nil)

	apply(t, p, p.Open(sess(t, "user1")))
	assert.Equal(t, 20, p.Len())
	assert.Equal(t, 45, p.TotalCount())
	assert.True(t, p.HasMore())

	apply(t, p, p.LoadMore())
	assert.Equal(t, 40, p.Len())

	apply(t, p, p.LoadMore())
	assert.Equal(t, 45, p.Len())
	assert.False(t, p.HasMore())

	assert.Nil(t, p.LoadMore(), "fourth call is a no-op")
	assert.Equal(t, 45, p.Len())

	require.Len(t, gw.calls, 3)
	assert.Equal(t, []int{0, 20, 40}, []int{gw.calls[0].offset, gw.calls[1].offset, gw.calls[2].offset})

	// Ascending offset order, no duplicates.
	for i, it := range p.Items() {
		assert.Equal(t, int64(i), it.ID)
	}
}

func TestPaginator_DefaultPageSize(t *testing.T) {
	p := New(&fakeGateway{}, 0, nil)
	assert.Equal(t, DefaultPageSize, p.PageSize())
}

func TestPaginator_LoadMoreWhileLoadingIsNoOp(t *testing.T) {
	gw := &fakeGateway{totals: map[string]int{"user1": 45}}
	p := New(gw, 20, nil)
	apply(t, p, p.Open(sess(t, "user1")))

	pending := p.LoadMore()
	require.NotNil(t, pending)
	assert.True(t, p.Loading())
	assert.Nil(t, p.LoadMore())

	apply(t, p, pending)
	assert.Equal(t, 40, p.Len())
}

func TestPaginator_LoadMoreBeforeFirstPage(t *testing.T) {
	p := New(&fakeGateway{totals: map[string]int{"user1": 45}}, 20, nil)
	assert.Nil(t, p.LoadMore(), "not open")

	p.Open(sess(t, "user1"))
	assert.Nil(t, p.LoadMore(), "first page still loading")
}

func TestPaginator_OpenResets(t *testing.T) {
	gw := &fakeGateway{totals: map[string]int{"user1": 45, "user2": 3}}
	p := New(gw, 20, nil)

	apply(t, p, p.Open(sess(t, "user1")))
	apply(t, p, p.LoadMore())
	require.Equal(t, 40, p.Len())

	// Re-opening for the same user starts over.
	apply(t, p, p.Open(sess(t, "user1")))
	assert.Equal(t, 20, p.Len())
	assert.Equal(t, 0, p.PageIndex())

	// Switching user replaces items.
	apply(t, p, p.Open(sess(t, "user2")))
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "user2-0", p.Items()[0].OriginalText)
}

func TestPaginator_StalePageAfterReopen(t *testing.T) {
	gw := &fakeGateway{totals: map[string]int{"user1": 45, "user2": 3}}
	p := New(gw, 20, nil)

	apply(t, p, p.Open(sess(t, "user1")))
	stale := p.LoadMore()

	apply(t, p, p.Open(sess(t, "user2")))
	assert.False(t, p.Update(stale()))

	assert.Equal(t, 3, p.Len())
	for _, it := range p.Items() {
		assert.Contains(t, it.OriginalText, "user2")
	}
}

func TestPaginator_CloseKeepsItemsAndDropsInFlight(t *testing.T) {
	gw := &fakeGateway{totals: map[string]int{"user1": 45}}
	p := New(gw, 20, nil)

	apply(t, p, p.Open(sess(t, "user1")))
	inflight := p.LoadMore()
	p.Close()

	assert.False(t, p.IsOpen())
	assert.False(t, p.Loading())
	assert.Equal(t, 20, p.Len(), "closing does not clear")
	assert.False(t, p.Update(inflight()))
	assert.Equal(t, 20, p.Len())
	assert.Nil(t, p.LoadMore(), "closed")
}

func TestPaginator_FailureDoesNotSkipPage(t *testing.T) {
	gw := &fakeGateway{totals: map[string]int{"user1": 45}}
	p := New(gw, 20, nil)
	apply(t, p, p.Open(sess(t, "user1")))

	gw.fail = &api.ClientError{Type: api.ErrTypeTimeout}
	apply(t, p, p.LoadMore())

	assert.Error(t, p.Err())
	assert.False(t, p.Loading())
	assert.Equal(t, 0, p.PageIndex())
	assert.Equal(t, 20, p.Len())

	gw.fail = nil
	apply(t, p, p.LoadMore())
	assert.NoError(t, p.Err())
	assert.Equal(t, 40, p.Len())
	assert.Equal(t, 20, gw.calls[len(gw.calls)-1].offset, "retries the same offset")
}

func TestPaginator_ClampsToShrinkingTotal(t *testing.T) {
	gw := &fakeGateway{totals: map[string]int{"user1": 45}}
	p := New(gw, 20, nil)
	apply(t, p, p.Open(sess(t, "user1")))

	// Page 1 still carries 20 items but the total has dropped to 30.
	gw.reported = map[string]int{"user1": 30}
	apply(t, p, p.LoadMore())

	assert.Equal(t, 30, p.TotalCount())
	assert.Equal(t, 30, p.Len())
	assert.False(t, p.HasMore())

	gw.reported = map[string]int{"user1": 5}
	apply(t, p, p.Open(sess(t, "user1")))
	assert.Equal(t, 5, p.Len())
}

func TestPaginator_ForeignMessageIgnored(t *testing.T) {
	gw := &fakeGateway{totals: map[string]int{"user1": 45}}
	a := New(gw, 20, nil)
	b := New(gw, 20, nil)

	cmd := a.Open(sess(t, "user1"))
	b.Open(sess(t, "user1"))

	assert.False(t, b.Update(cmd()))
	assert.False(t, a.Update("unrelated"))
}
