package pager_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/minglehq/mingle/internal/pager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errBackend = errors.New("backend unavailable")

type entry struct {
	ID    int64
	Label string
}

func (e entry) ItemID() int64 { return e.ID }

// pagedFetcher serves fixed pages in order, regardless of query parameters.
func pagedFetcher(pages [][]entry) pager.Fetcher[entry] {
	return func(_ context.Context, _ pager.Query, page int) ([]entry, error) {
		if page < 1 || page > len(pages) {
			return nil, nil
		}

		return pages[page-1], nil
	}
}

func testQuery(pageSize int) pager.Query {
	return pager.Query{Kind: pager.KindFriendsFeed, PageSize: pageSize}
}

func TestLoadNextAccumulatesPages(t *testing.T) {
	t.Parallel()

	pages := [][]entry{
		{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}},
		{{ID: 5}, {ID: 6}},
	}
	c := pager.NewController(testQuery(4), pagedFetcher(pages), zap.NewNop())

	require.NoError(t, c.LoadNext(context.Background()))

	snap := c.Snapshot()
	assert.Len(t, snap.Items, 4)
	assert.False(t, snap.Exhausted)
	assert.Equal(t, 2, snap.Page)

	require.NoError(t, c.LoadNext(context.Background()))

	snap = c.Snapshot()
	assert.Len(t, snap.Items, 6)
	assert.True(t, snap.Exhausted, "a page shorter than the page size ends the list")
	assert.Equal(t, int64(1), snap.Items[0].ID)
	assert.Equal(t, int64(6), snap.Items[5].ID)
}

func TestLoadNextDeduplicatesAcrossPages(t *testing.T) {
	t.Parallel()

	// Item 2 drifted onto page two between requests, a new post shifted the
	// backend's pagination window.
	pages := [][]entry{
		{{ID: 1, Label: "first"}, {ID: 2, Label: "first"}},
		{{ID: 2, Label: "second"}, {ID: 3, Label: "second"}},
	}
	c := pager.NewController(testQuery(2), pagedFetcher(pages), zap.NewNop())

	require.NoError(t, c.LoadNext(context.Background()))
	require.NoError(t, c.LoadNext(context.Background()))

	snap := c.Snapshot()
	require.Len(t, snap.Items, 3)
	assert.Equal(t, []int64{1, 2, 3}, ids(snap.Items))
	assert.Equal(t, "first", snap.Items[1].Label, "the earlier occurrence wins")
}

func TestLoadNextAfterExhaustionIsNoop(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	fetch := func(_ context.Context, _ pager.Query, _ int) ([]entry, error) {
		calls.Add(1)
		return []entry{{ID: 1}}, nil
	}

	c := pager.NewController(testQuery(5), fetch, zap.NewNop())

	require.NoError(t, c.LoadNext(context.Background()))
	require.True(t, c.Snapshot().Exhausted)

	require.NoError(t, c.LoadNext(context.Background()))
	require.NoError(t, c.LoadNext(context.Background()))

	assert.Equal(t, int32(1), calls.Load())
}

func TestLoadNextSingleFlight(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	started := make(chan struct{})
	release := make(chan struct{})

	fetch := func(_ context.Context, _ pager.Query, _ int) ([]entry, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
		}

		return []entry{{ID: 1}, {ID: 2}}, nil
	}

	c := pager.NewController(testQuery(2), fetch, zap.NewNop())

	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = c.LoadNext(context.Background())
	}()

	<-started

	// A second request while one is in flight must not fetch.
	require.NoError(t, c.LoadNext(context.Background()))
	assert.Equal(t, int32(1), calls.Load())

	close(release)
	<-done

	assert.Len(t, c.Snapshot().Items, 2)
}

func TestResetDiscardsInFlightResponse(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})

	fetch := func(_ context.Context, query pager.Query, _ int) ([]entry, error) {
		if query.Param("term") == "old" {
			close(started)
			<-release

			return []entry{{ID: 99, Label: "stale"}}, nil
		}

		return []entry{{ID: 1, Label: "fresh"}}, nil
	}

	query := pager.Query{
		Kind:     pager.KindUserSearch,
		Params:   map[string]string{"term": "old"},
		PageSize: 5,
	}
	c := pager.NewController(query, fetch, zap.NewNop())

	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = c.LoadNext(context.Background())
	}()

	<-started

	c.ResetQuery(pager.Query{
		Kind:     pager.KindUserSearch,
		Params:   map[string]string{"term": "new"},
		PageSize: 5,
	})

	close(release)
	<-done

	snap := c.Snapshot()
	assert.Empty(t, snap.Items, "the superseded response must not be applied")
	assert.False(t, snap.Loading, "the discarded response must not wedge the loading flag")

	require.NoError(t, c.LoadNext(context.Background()))

	snap = c.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "fresh", snap.Items[0].Label)
}

func TestLoadNextKeepsStateOnError(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool

	fetch := func(_ context.Context, _ pager.Query, page int) ([]entry, error) {
		if fail.Load() {
			return nil, errBackend
		}

		if page == 1 {
			return []entry{{ID: 1}, {ID: 2}}, nil
		}

		return []entry{{ID: 3}}, nil
	}

	c := pager.NewController(testQuery(2), fetch, zap.NewNop())
	require.NoError(t, c.LoadNext(context.Background()))

	fail.Store(true)
	require.ErrorIs(t, c.LoadNext(context.Background()), errBackend)

	snap := c.Snapshot()
	assert.Len(t, snap.Items, 2, "a failed page leaves the accumulated items alone")
	assert.Equal(t, 2, snap.Page, "a failed page does not advance the cursor")
	assert.ErrorIs(t, snap.Err, errBackend)
	assert.False(t, snap.Exhausted)

	// The next attempt retries the same page.
	fail.Store(false)
	require.NoError(t, c.LoadNext(context.Background()))

	snap = c.Snapshot()
	assert.Len(t, snap.Items, 3)
	assert.NoError(t, snap.Err)
	assert.True(t, snap.Exhausted)
}

func TestAppendItemSkipsKnownIdentity(t *testing.T) {
	t.Parallel()

	c := pager.NewController(testQuery(2), pagedFetcher([][]entry{{{ID: 1}, {ID: 2}}}), zap.NewNop())
	require.NoError(t, c.LoadNext(context.Background()))

	assert.True(t, c.AppendItem(entry{ID: 3}))
	assert.False(t, c.AppendItem(entry{ID: 2}), "an already listed identity is not appended twice")
	assert.Equal(t, []int64{1, 2, 3}, ids(c.Snapshot().Items))
}

func TestRemoveAndUpdateItem(t *testing.T) {
	t.Parallel()

	c := pager.NewController(testQuery(3), pagedFetcher([][]entry{{{ID: 1}, {ID: 2}, {ID: 3}}}), zap.NewNop())
	require.NoError(t, c.LoadNext(context.Background()))

	assert.True(t, c.UpdateItem(2, func(e entry) entry {
		e.Label = "edited"
		return e
	}))

	item, ok := c.Item(2)
	require.True(t, ok)
	assert.Equal(t, "edited", item.Label)

	assert.True(t, c.RemoveItem(1))
	assert.False(t, c.RemoveItem(1))
	assert.Equal(t, []int64{2, 3}, ids(c.Snapshot().Items))

	// A removed identity may legitimately return later.
	assert.True(t, c.AppendItem(entry{ID: 1}))
}

func ids(items []entry) []int64 {
	out := make([]int64, len(items))
	for i, item := range items {
		out[i] = item.ID
	}

	return out
}
