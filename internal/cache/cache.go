package cache

import (
	"github.com/stanza-tui/stanza/internal/api"
)

// Status is the fetch state of a query cache.
type Status int

const (
	StatusIdle Status = iota
	StatusFetching
	StatusReady
	StatusError
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusFetching:
		return "fetching"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// PageInfo carries the pagination cursor reported by the server alongside a
// fulfilled page. HasMore is authoritative when non-nil; otherwise exhaustion
// is derived from TotalPages or Total against the accumulated item count.
type PageInfo struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
	HasMore    *bool
}

// Ticket identifies one in-flight fetch against a cache. A completion
// presented with a stale ticket (the cache was Reset in the meantime) is
// discarded rather than merged into newer state.
type Ticket struct {
	gen  uint64
	page int
}

// Page returns the page number the ticket's fetch was issued for.
func (t Ticket) Page() int { return t.page }

// Cache holds one view's fetch status, accumulated items, pagination cursor
// and last error. All access is expected from a single event loop; Cache
// performs no locking of its own.
type Cache struct {
	name       string
	status     Status
	items      []api.Poem
	page       int
	pageSize   int
	total      int
	totalPages int
	hasMore    bool
	lastError  error

	gen   uint64
	abort func()
}

// New returns an idle cache with the given display name.
func New(name string) *Cache {
	return &Cache{name: name}
}

// Name returns the cache's display name.
func (c *Cache) Name() string { return c.name }

// Status returns the current fetch state.
func (c *Cache) Status() Status { return c.status }

// LastError returns the failure recorded by the most recent rejected fetch,
// or nil. It is cleared by the next successful fetch or by Reset.
func (c *Cache) LastError() error { return c.lastError }

// Page returns the last fulfilled page number.
func (c *Cache) Page() int { return c.page }

// Total returns the server-reported total record count, when known.
func (c *Cache) Total() int { return c.total }

// HasMore reports whether another page is available.
func (c *Cache) HasMore() bool { return c.hasMore }

// Len returns the number of accumulated items.
func (c *Cache) Len() int { return len(c.items) }

// Items returns a copy of the accumulated items in server page order.
func (c *Cache) Items() []api.Poem {
	if len(c.items) == 0 {
		return nil
	}
	dup := make([]api.Poem, len(c.items))
	for i, p := range c.items {
		dup[i] = p.Clone()
	}
	return dup
}

// Find returns a copy of the item with the given id, if held.
func (c *Cache) Find(id string) (api.Poem, bool) {
	for _, p := range c.items {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return api.Poem{}, false
}

// ContainsID reports whether an item with the given id is held.
func (c *Cache) ContainsID(id string) bool {
	for _, p := range c.items {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Populated reports whether the cache holds usable view state: a fulfilled
// fetch, or a load-more in flight on top of previously loaded items. The
// mutation synchronizer only touches populated caches; it never creates
// state a view has not asked for.
func (c *Cache) Populated() bool {
	if c.status == StatusReady {
		return true
	}
	return c.status == StatusFetching && len(c.items) > 0
}

// Reset returns the cache to idle: items, cursor and error are discarded,
// and any in-flight fetch is aborted. A completion arriving afterwards with
// a ticket from before the reset is discarded. Reset followed by Begin is
// the standard protocol for switching view context (e.g. a genre change).
func (c *Cache) Reset() {
	c.gen++
	if c.abort != nil {
		c.abort()
		c.abort = nil
	}
	c.status = StatusIdle
	c.items = nil
	c.page = 0
	c.pageSize = 0
	c.total = 0
	c.totalPages = 0
	c.hasMore = false
	c.lastError = nil
}

// Begin transitions to fetching and returns the ticket the eventual
// completion must present. It refuses (returns false) while a fetch is
// already in flight, and refuses a load-more (page > 1) once the cache is
// exhausted; both are no-ops, not errors. Previously loaded items stay
// visible for the duration of the fetch.
func (c *Cache) Begin(page int) (Ticket, bool) {
	if c.status == StatusFetching {
		return Ticket{}, false
	}
	if page > 1 && !c.hasMore {
		return Ticket{}, false
	}
	c.status = StatusFetching
	return Ticket{gen: c.gen, page: page}, true
}

// AbortWith registers the cancel function for the fetch issued under the
// current generation. Reset invokes it to abort the request in flight.
func (c *Cache) AbortWith(fn func()) {
	c.abort = fn
}

// Fulfill merges a fetched page into the cache. A first page (or a fetch
// issued without pagination) replaces the items wholesale; a later page
// appends, skipping any item whose id is already held, so concurrent
// like/unlike traffic shifting records across page boundaries can never
// introduce duplicates. Stale tickets are discarded.
func (c *Cache) Fulfill(t Ticket, poems []api.Poem, info PageInfo) {
	if t.gen != c.gen || c.status != StatusFetching {
		return
	}
	if t.page <= 1 {
		c.items = nil
	}
	for _, p := range poems {
		if c.ContainsID(p.ID) {
			continue
		}
		c.items = append(c.items, p.Clone())
	}

	c.page = info.Page
	if c.page == 0 {
		c.page = t.page
	}
	c.pageSize = info.Limit
	c.total = info.Total
	c.totalPages = info.TotalPages
	c.hasMore = deriveHasMore(info, c.page, len(c.items))
	c.status = StatusReady
	c.lastError = nil
	c.abort = nil
}

// Rejected records a failed fetch. Accumulated items are preserved so a
// transient error never blanks a populated view. Stale tickets are
// discarded.
func (c *Cache) Rejected(t Ticket, err error) {
	if t.gen != c.gen || c.status != StatusFetching {
		return
	}
	c.status = StatusError
	c.lastError = err
	c.abort = nil
}

// deriveHasMore prefers the server's explicit flag, then the reported page
// count, then the reported total against what has been accumulated.
func deriveHasMore(info PageInfo, page, accumulated int) bool {
	if info.HasMore != nil {
		return *info.HasMore
	}
	if info.TotalPages > 0 {
		return page < info.TotalPages
	}
	if info.Total > 0 {
		return accumulated < info.Total
	}
	return false
}

// Patch applies fn to the held item with the given id. It reports whether a
// patch happened; unpopulated caches and missing ids no-op.
func (c *Cache) Patch(id string, fn func(*api.Poem)) bool {
	if !c.Populated() {
		return false
	}
	for i := range c.items {
		if c.items[i].ID == id {
			fn(&c.items[i])
			return true
		}
	}
	return false
}

// Remove drops the held item with the given id, reporting whether it was
// present.
func (c *Cache) Remove(id string) bool {
	if !c.Populated() {
		return false
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			if c.total > 0 {
				c.total--
			}
			return true
		}
	}
	return false
}

// InsertFront prepends an item, for views whose sort order is most recent
// first. The duplicate guard makes insertion idempotent: if the id is
// already held this is a no-op.
func (c *Cache) InsertFront(p api.Poem) bool {
	if !c.Populated() {
		return false
	}
	if c.ContainsID(p.ID) {
		return false
	}
	c.items = append([]api.Poem{p.Clone()}, c.items...)
	if c.total > 0 {
		c.total++
	}
	return true
}
