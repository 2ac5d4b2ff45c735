package pager

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Item is anything that can live in a paginated list. The identity is unique
// within one resource kind and drives deduplication, in-place updates and
// removal.
type Item interface {
	ItemID() int64
}

// Fetcher loads one page of a resource. Pages are 1-based; a returned page
// shorter than query.PageSize signals exhaustion.
type Fetcher[T Item] func(ctx context.Context, query Query, page int) ([]T, error)

// State is a point-in-time snapshot of a controller.
type State[T Item] struct {
	Items     []T
	Page      int
	Exhausted bool
	Loading   bool
	Err       error
}

// Controller accumulates a resource's items incrementally. It is purely
// reactive: the owning view watches a scroll-proximity signal and calls
// LoadNext, the controller never schedules or polls on its own.
//
// Invariants: at most one page load in flight, no duplicate identities in the
// item list, exhaustion is permanent until a reset, and a response that
// arrives after a reset superseded its query is discarded.
type Controller[T Item] struct {
	mu         sync.Mutex
	fetch      Fetcher[T]
	query      Query
	page       int
	generation uint64
	items      []T
	seen       map[int64]struct{}
	exhausted  bool
	loading    bool
	err        error
	logger     *zap.Logger
}

// NewController creates a controller scoped to one query. No fetch happens
// until the first LoadNext.
func NewController[T Item](query Query, fetch Fetcher[T], logger *zap.Logger) *Controller[T] {
	return &Controller[T]{
		fetch:  fetch,
		query:  query,
		page:   1,
		seen:   make(map[int64]struct{}),
		logger: logger,
	}
}

// LoadNext fetches the next page and appends its items. It is a no-op while a
// load is already in flight or the resource is exhausted. On failure the
// items and cursor are left untouched and the error is recorded on the state.
func (c *Controller[T]) LoadNext(ctx context.Context) error {
	c.mu.Lock()

	if c.loading || c.exhausted {
		c.mu.Unlock()
		return nil
	}

	c.loading = true
	generation := c.generation
	query := c.query
	page := c.page

	c.mu.Unlock()

	items, err := c.fetch(ctx, query, page)

	c.mu.Lock()
	defer c.mu.Unlock()

	// A reset replaced the query while this request was in flight. The
	// response belongs to a superseded query and must not be applied.
	if generation != c.generation {
		c.logger.Debug("Discarding stale page response",
			zap.Stringer("resource", query.Kind),
			zap.Int("page", page))

		return nil
	}

	c.loading = false

	if err != nil {
		c.err = err

		c.logger.Debug("Page load failed",
			zap.Stringer("resource", query.Kind),
			zap.Int("page", page),
			zap.Error(err))

		return err
	}

	appended := 0

	for _, item := range items {
		id := item.ItemID()
		if _, dup := c.seen[id]; dup {
			continue
		}

		c.seen[id] = struct{}{}
		c.items = append(c.items, item)
		appended++
	}

	c.page++
	c.exhausted = len(items) < query.PageSize
	c.err = nil

	c.logger.Debug("Loaded page",
		zap.Stringer("resource", query.Kind),
		zap.Int("page", page),
		zap.Int("appended", appended),
		zap.Bool("exhausted", c.exhausted))

	return nil
}

// Reset re-initializes the controller against its current query. Any response
// still in flight for the previous generation is discarded on arrival.
func (c *Controller[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked()
}

// ResetQuery replaces the query and re-initializes.
func (c *Controller[T]) ResetQuery(query Query) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = query
	c.resetLocked()
}

func (c *Controller[T]) resetLocked() {
	c.generation++
	c.page = 1
	c.items = nil
	c.seen = make(map[int64]struct{})
	c.exhausted = false
	c.loading = false
	c.err = nil
}

// AppendItem adds a server-confirmed entity to the end of the list, outside
// of paging. Returns false when the identity is already present.
func (c *Controller[T]) AppendItem(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := item.ItemID()
	if _, dup := c.seen[id]; dup {
		return false
	}

	c.seen[id] = struct{}{}
	c.items = append(c.items, item)

	return true
}

// RemoveItem drops the entry with the given identity, if present. The cursor
// and exhaustion flag are unaffected; this is used after a confirmed delete,
// not as part of paging.
func (c *Controller[T]) RemoveItem(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.seen[id]; !ok {
		return false
	}

	delete(c.seen, id)

	for i, item := range c.items {
		if item.ItemID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}

	return true
}

// UpdateItem replaces the entry with the given identity in place. Used after
// an edit confirmation or a like/unlike reconciliation.
func (c *Controller[T]) UpdateItem(id int64, update func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.ItemID() == id {
			c.items[i] = update(item)
			return true
		}
	}

	return false
}

// Item returns the entry with the given identity.
func (c *Controller[T]) Item(id int64) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items {
		if item.ItemID() == id {
			return item, true
		}
	}

	var zero T

	return zero, false
}

// Query returns the controller's current query.
func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.query
}

// Snapshot returns a copy of the current list state.
func (c *Controller[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]T, len(c.items))
	copy(items, c.items)

	return State[T]{
		Items:     items,
		Page:      c.page,
		Exhausted: c.exhausted,
		Loading:   c.loading,
		Err:       c.err,
	}
}
