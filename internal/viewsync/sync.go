package viewsync

import (
	"go.uber.org/zap"

	"github.com/stanza-tui/stanza/internal/api"
	"github.com/stanza-tui/stanza/internal/cache"
)

// Synchronizer keeps every populated query cache consistent with the
// authoritative server state after a confirmed mutation. It patches in place
// where the local change is derivable and requests a targeted refetch where
// it is not (the leaderboard, which is a recomputed aggregate).
//
// Call sites hand the synchronizer the server-confirmed record; nothing here
// runs before confirmation, so there is no speculative state to roll back.
type Synchronizer struct {
	reg     *cache.Registry
	userID  string
	admin   bool
	refetch func(cache.View)
	log     *zap.Logger
}

// Options configures a Synchronizer.
type Options struct {
	Registry *cache.Registry
	// UserID is the viewing user, whose identity defines the liked-poems
	// membership predicate.
	UserID string
	// Admin marks a privileged session whose saves may override like sets.
	Admin bool
	// Refetch is invoked for views whose state cannot be patched locally.
	// Nil disables refetch requests.
	Refetch func(cache.View)
	Logger  *zap.Logger
}

// New builds a Synchronizer over the given registry.
func New(opts Options) *Synchronizer {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	refetch := opts.Refetch
	if refetch == nil {
		refetch = func(cache.View) {}
	}
	return &Synchronizer{
		reg:     opts.Registry,
		userID:  opts.UserID,
		admin:   opts.Admin,
		refetch: refetch,
		log:     log,
	}
}

// Liked reflects a confirmed like by the viewing user. Every populated feed
// and the detail cache toggle the user into the record's like set in place;
// the liked-poems cache additionally gains the record (its membership
// predicate is now satisfied) when it is populated and not already holding
// it. The leaderboard is never patched: its ranking is recomputed from a
// refetch.
func (s *Synchronizer) Liked(p api.Poem) {
	patched := 0
	// "My poems" is skipped: owners cannot like their own records, so the
	// viewer's like can never land on a record that cache holds.
	for _, v := range []cache.View{cache.ViewGlobal, cache.ViewGenre, cache.ViewDetail} {
		if s.reg.Get(v).Patch(p.ID, func(held *api.Poem) { held.AddLike(s.userID) }) {
			patched++
		}
	}

	liked := s.reg.Get(cache.ViewLiked)
	if liked.Patch(p.ID, func(held *api.Poem) { held.AddLike(s.userID) }) {
		patched++
	} else {
		entry := p.Clone()
		entry.AddLike(s.userID)
		if liked.InsertFront(entry) {
			patched++
		}
	}

	s.log.Debug("like fanned out",
		zap.String("poem", p.ID),
		zap.Int("caches", patched))
	s.refetch(cache.ViewLeaderboard)
}

// Unliked reflects a confirmed unlike. Feeds and detail toggle the user out
// of the like set; the liked-poems cache is toggle-then-prune, because its
// membership criterion is "liked by me" and the record no longer qualifies.
func (s *Synchronizer) Unliked(p api.Poem) {
	for _, v := range []cache.View{cache.ViewGlobal, cache.ViewGenre, cache.ViewDetail} {
		s.reg.Get(v).Patch(p.ID, func(held *api.Poem) { held.RemoveLike(s.userID) })
	}

	liked := s.reg.Get(cache.ViewLiked)
	liked.Patch(p.ID, func(held *api.Poem) { held.RemoveLike(s.userID) })
	if got, ok := liked.Find(p.ID); ok && !got.LikedBy(s.userID) {
		liked.Remove(p.ID)
	}

	s.log.Debug("unlike fanned out", zap.String("poem", p.ID))
	s.refetch(cache.ViewLeaderboard)
}

// Deleted removes the record from every cache that holds it and clears the
// detail cache when it targets the deleted id. It reports whether the detail
// cache was cleared so the owner of the edit session can reset it too; the
// synchronizer has no access to session state.
func (s *Synchronizer) Deleted(id string) (detailCleared bool) {
	for _, c := range s.reg.Feeds() {
		c.Remove(id)
	}

	detail := s.reg.Get(cache.ViewDetail)
	if detail.ContainsID(id) {
		detail.Reset()
		detailCleared = true
	}

	s.log.Debug("delete fanned out", zap.String("poem", id))
	s.refetch(cache.ViewLeaderboard)
	return detailCleared
}

// Created inserts the new record into every populated cache whose membership
// predicate it satisfies: the global feed always, the genre feed when the
// record matches its current filter, and "my poems" when the viewer owns it.
// Feed views sort most recent first, so insertion is at the front; caches
// that are not populated are left for their next natural fetch.
func (s *Synchronizer) Created(p api.Poem) {
	s.reg.Get(cache.ViewGlobal).InsertFront(p)

	if genre := s.reg.Genre(); genre == "" || genre == p.Genre {
		s.reg.Get(cache.ViewGenre).InsertFront(p)
	}

	if p.OwnerID == s.userID {
		s.reg.Get(cache.ViewMine).InsertFront(p)
	}

	s.log.Debug("create fanned out", zap.String("poem", p.ID))
	s.refetch(cache.ViewLeaderboard)
}

// Saved merges the confirmed record's fields into every cache that already
// holds its id. It never inserts: a save cannot change which views a record
// belongs to for this user, except through admin like overrides, which is
// why admin saves also refetch the leaderboard.
func (s *Synchronizer) Saved(p api.Poem) {
	merge := func(held *api.Poem) { held.Merge(p) }
	for _, c := range s.reg.Feeds() {
		c.Patch(p.ID, merge)
	}
	s.reg.Get(cache.ViewDetail).Patch(p.ID, merge)

	s.log.Debug("save fanned out", zap.String("poem", p.ID))
	if s.admin {
		s.refetch(cache.ViewLeaderboard)
	}
}
