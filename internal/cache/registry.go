package cache

// View names one of the application's query caches. Each view owns exactly
// one cache; the mutation synchronizer has write access to all of them but
// creates none.
type View int

const (
	ViewGlobal View = iota
	ViewGenre
	ViewLeaderboard
	ViewMine
	ViewLiked
	ViewDetail
)

// String returns the view's display name.
func (v View) String() string {
	switch v {
	case ViewGlobal:
		return "global"
	case ViewGenre:
		return "genre"
	case ViewLeaderboard:
		return "leaderboard"
	case ViewMine:
		return "mine"
	case ViewLiked:
		return "liked"
	case ViewDetail:
		return "detail"
	}
	return "unknown"
}

// AllViews lists every view in declaration order.
func AllViews() []View {
	return []View{ViewGlobal, ViewGenre, ViewLeaderboard, ViewMine, ViewLiked, ViewDetail}
}

// Registry is the fixed set of named query caches, one per view, plus the
// genre filter currently applied to the genre feed. Call sites go through
// the registry (or the synchronizer façade on top of it) instead of holding
// direct references to sibling caches.
type Registry struct {
	caches map[View]*Cache
	genre  string
}

// NewRegistry creates all six caches in their idle state.
func NewRegistry() *Registry {
	caches := make(map[View]*Cache, len(AllViews()))
	for _, v := range AllViews() {
		caches[v] = New(v.String())
	}
	return &Registry{caches: caches}
}

// Get returns the cache for a view.
func (r *Registry) Get(v View) *Cache {
	return r.caches[v]
}

// Feeds returns the feed-like caches: the ones holding ordered pages of
// poems (global, genre, mine, liked). The leaderboard is an aggregate and
// the detail cache holds at most one record; neither is a feed.
func (r *Registry) Feeds() []*Cache {
	return []*Cache{
		r.caches[ViewGlobal],
		r.caches[ViewGenre],
		r.caches[ViewMine],
		r.caches[ViewLiked],
	}
}

// FeedViews returns the views corresponding to Feeds, in the same order.
func FeedViews() []View {
	return []View{ViewGlobal, ViewGenre, ViewMine, ViewLiked}
}

// SetGenre records the genre filter the genre feed is currently scoped to.
// Changing the filter is the caller's reset-then-request protocol; the
// registry only remembers the value so the synchronizer can decide whether a
// created poem belongs in the genre feed.
func (r *Registry) SetGenre(genre string) {
	r.genre = genre
}

// Genre returns the genre filter currently applied to the genre feed.
func (r *Registry) Genre() string {
	return r.genre
}
