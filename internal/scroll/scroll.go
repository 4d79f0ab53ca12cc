// Package scroll turns sentinel visibility events into load-more requests
// for one query cache. The renderer reports when the sentinel row at the
// bottom of a feed enters or leaves the viewport; where the threshold sits
// is the renderer's concern, not this package's.
package scroll

import "github.com/stanza-tui/stanza/internal/cache"

// Controller requests the next page of its bound cache when the sentinel
// becomes visible. The guard (more pages available, no fetch in flight) is
// re-evaluated on every visibility event, so spurious events are safe.
type Controller struct {
	cache    *cache.Cache
	loadMore func()
	visible  bool
}

// New binds a controller to a cache. loadMore is invoked with the guard
// already satisfied; the callee still goes through Cache.Begin, which
// re-checks, so a racy duplicate request degrades to a no-op.
func New(c *cache.Cache, loadMore func()) *Controller {
	return &Controller{cache: c, loadMore: loadMore}
}

// Visible reports a visibility observation for the sentinel. Only the
// transition to visible can trigger a load; repeated "visible" events and
// any "hidden" event are no-ops.
func (c *Controller) Visible(v bool) {
	if c == nil || c.loadMore == nil {
		return
	}
	wasVisible := c.visible
	c.visible = v
	if !v || wasVisible {
		return
	}
	if !c.cache.HasMore() || c.cache.Status() == cache.StatusFetching {
		return
	}
	c.loadMore()
}

// Close releases the observation. Further events are ignored; failing to
// call Close leaks the callback reference, not correctness.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.loadMore = nil
	c.visible = false
}
