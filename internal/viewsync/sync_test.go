package viewsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanza-tui/stanza/internal/api"
	"github.com/stanza-tui/stanza/internal/cache"
)

type fixture struct {
	reg       *cache.Registry
	sync      *Synchronizer
	refetched []cache.View
}

func newFixture(t *testing.T, userID string, admin bool) *fixture {
	t.Helper()
	f := &fixture{reg: cache.NewRegistry()}
	f.sync = New(Options{
		Registry: f.reg,
		UserID:   userID,
		Admin:    admin,
		Refetch:  func(v cache.View) { f.refetched = append(f.refetched, v) },
	})
	return f
}

// populate fulfils a first page into the named view.
func (f *fixture) populate(t *testing.T, v cache.View, poems ...api.Poem) {
	t.Helper()
	c := f.reg.Get(v)
	ticket, ok := c.Begin(1)
	require.True(t, ok)
	c.Fulfill(ticket, poems, cache.PageInfo{Page: 1, TotalPages: 1})
}

func likesOf(t *testing.T, c *cache.Cache, id string) []string {
	t.Helper()
	p, ok := c.Find(id)
	require.True(t, ok, "cache %s does not hold %s", c.Name(), id)
	return p.Likes
}

func TestLiked_FansOutAndMarksLeaderboardStale(t *testing.T) {
	f := newFixture(t, "u1", false)
	feed := []api.Poem{{ID: "1"}, {ID: "2"}}
	f.populate(t, cache.ViewGlobal, feed...)
	f.populate(t, cache.ViewGenre, feed[0])
	f.populate(t, cache.ViewLiked)

	confirmed := api.Poem{ID: "1", Likes: []string{"u1"}}
	f.sync.Liked(confirmed)

	global := f.reg.Get(cache.ViewGlobal)
	assert.Equal(t, []string{"u1"}, likesOf(t, global, "1"))
	second, _ := global.Find("2")
	assert.Empty(t, second.Likes, "unrelated record was touched")

	assert.Equal(t, []string{"u1"}, likesOf(t, f.reg.Get(cache.ViewGenre), "1"))

	// Liked-poems cache gains the record; its membership is now satisfied.
	liked := f.reg.Get(cache.ViewLiked)
	assert.True(t, liked.ContainsID("1"))
	assert.Equal(t, []string{"u1"}, likesOf(t, liked, "1"))

	assert.Equal(t, []cache.View{cache.ViewLeaderboard}, f.refetched)
}

func TestLiked_SkipsUnpopulatedViews(t *testing.T) {
	f := newFixture(t, "u1", false)
	f.populate(t, cache.ViewGlobal, api.Poem{ID: "1"})
	// Genre, liked and detail were never fetched.

	f.sync.Liked(api.Poem{ID: "1", Likes: []string{"u1"}})

	assert.Equal(t, cache.StatusIdle, f.reg.Get(cache.ViewGenre).Status())
	assert.Zero(t, f.reg.Get(cache.ViewLiked).Len(), "patch created state in an unpopulated cache")
	assert.Zero(t, f.reg.Get(cache.ViewDetail).Len())
}

func TestLikeUnlike_RoundTripRestoresLikeSet(t *testing.T) {
	f := newFixture(t, "u1", false)
	before := []string{"u2", "u3"}
	f.populate(t, cache.ViewGlobal, api.Poem{ID: "5", Likes: append([]string(nil), before...)})
	f.populate(t, cache.ViewDetail, api.Poem{ID: "5", Likes: append([]string(nil), before...)})

	f.sync.Liked(api.Poem{ID: "5", Likes: []string{"u2", "u3", "u1"}})
	f.sync.Unliked(api.Poem{ID: "5", Likes: []string{"u2", "u3"}})

	for _, v := range []cache.View{cache.ViewGlobal, cache.ViewDetail} {
		assert.ElementsMatch(t, before, likesOf(t, f.reg.Get(v), "5"), "view %s", v)
	}
}

func TestNoDuplicateInvariant_UnderLikeChurn(t *testing.T) {
	f := newFixture(t, "u1", false)
	f.populate(t, cache.ViewGlobal, api.Poem{ID: "1"}, api.Poem{ID: "2"})
	f.populate(t, cache.ViewLiked)

	p := api.Poem{ID: "1"}
	for i := 0; i < 3; i++ {
		liked := p.Clone()
		liked.AddLike("u1")
		f.sync.Liked(liked)
		f.sync.Unliked(p)
		f.sync.Liked(liked)

		for _, c := range append(f.reg.Feeds(), f.reg.Get(cache.ViewDetail)) {
			counts := map[string]int{}
			for _, item := range c.Items() {
				counts[item.ID]++
			}
			for id, n := range counts {
				require.Equal(t, 1, n, "duplicate %s in %s after round %d", id, c.Name(), i)
			}
		}
	}
}

func TestUnliked_PrunesLikedViewKeepsFeeds(t *testing.T) {
	// my-liked holds {id:5, likes:[u1,u2]}; u1 unlikes: the record leaves
	// my-liked entirely but stays in the global feed with likes [u2].
	f := newFixture(t, "u1", false)
	f.populate(t, cache.ViewGlobal, api.Poem{ID: "5", Likes: []string{"u1", "u2"}})
	f.populate(t, cache.ViewLiked, api.Poem{ID: "5", Likes: []string{"u1", "u2"}})

	f.sync.Unliked(api.Poem{ID: "5", Likes: []string{"u2"}})

	assert.False(t, f.reg.Get(cache.ViewLiked).ContainsID("5"), "record still in liked view")
	assert.Equal(t, []string{"u2"}, likesOf(t, f.reg.Get(cache.ViewGlobal), "5"))
}

func TestDeleted_RemovesEverywhereAndClearsDetail(t *testing.T) {
	f := newFixture(t, "u1", false)
	f.populate(t, cache.ViewGlobal, api.Poem{ID: "1"}, api.Poem{ID: "2"})
	f.populate(t, cache.ViewGenre, api.Poem{ID: "1"})
	f.populate(t, cache.ViewMine, api.Poem{ID: "1"})
	f.populate(t, cache.ViewDetail, api.Poem{ID: "1"})

	cleared := f.sync.Deleted("1")

	assert.True(t, cleared)
	assert.False(t, f.reg.Get(cache.ViewGlobal).ContainsID("1"))
	assert.True(t, f.reg.Get(cache.ViewGlobal).ContainsID("2"))
	assert.False(t, f.reg.Get(cache.ViewGenre).ContainsID("1"))
	assert.False(t, f.reg.Get(cache.ViewMine).ContainsID("1"))
	assert.Equal(t, cache.StatusIdle, f.reg.Get(cache.ViewDetail).Status())
	assert.Contains(t, f.refetched, cache.ViewLeaderboard)
}

func TestDeleted_DetailHoldingOtherRecordSurvives(t *testing.T) {
	f := newFixture(t, "u1", false)
	f.populate(t, cache.ViewDetail, api.Poem{ID: "9"})

	cleared := f.sync.Deleted("1")

	assert.False(t, cleared)
	assert.True(t, f.reg.Get(cache.ViewDetail).ContainsID("9"))
}

func TestCreated_InsertsWhereMembershipHolds(t *testing.T) {
	f := newFixture(t, "u1", false)
	f.populate(t, cache.ViewGlobal, api.Poem{ID: "old"})
	f.populate(t, cache.ViewGenre, api.Poem{ID: "old"})
	f.populate(t, cache.ViewMine)
	f.reg.SetGenre(api.GenreHaiku)

	created := api.Poem{ID: "new", Genre: api.GenreSonnet, OwnerID: "u1"}
	f.sync.Created(created)

	global := f.reg.Get(cache.ViewGlobal)
	require.True(t, global.ContainsID("new"))
	assert.Equal(t, "new", global.Items()[0].ID, "create must insert most recent first")

	// Genre feed is filtered to haiku; a sonnet does not belong.
	assert.False(t, f.reg.Get(cache.ViewGenre).ContainsID("new"))

	assert.True(t, f.reg.Get(cache.ViewMine).ContainsID("new"))

	// Someone else's poem does not join "my poems".
	other := api.Poem{ID: "theirs", Genre: api.GenreHaiku, OwnerID: "u2"}
	f.sync.Created(other)
	assert.False(t, f.reg.Get(cache.ViewMine).ContainsID("theirs"))
	assert.True(t, f.reg.Get(cache.ViewGenre).ContainsID("theirs"))
}

func TestCreated_LeavesUnpopulatedCachesAlone(t *testing.T) {
	f := newFixture(t, "u1", false)

	f.sync.Created(api.Poem{ID: "new", OwnerID: "u1"})

	for _, c := range f.reg.Feeds() {
		assert.Zero(t, c.Len(), "create populated %s", c.Name())
		assert.Equal(t, cache.StatusIdle, c.Status())
	}
}

func TestSaved_MergesWithoutInserting(t *testing.T) {
	f := newFixture(t, "u1", false)
	f.populate(t, cache.ViewGlobal, api.Poem{ID: "1", Title: "Old", Likes: []string{"u2"}})
	f.populate(t, cache.ViewDetail, api.Poem{ID: "1", Title: "Old"})
	f.populate(t, cache.ViewGenre, api.Poem{ID: "other"})

	f.sync.Saved(api.Poem{ID: "1", Title: "New", Genre: api.GenreFree, Likes: []string{"u2"}})

	got, ok := f.reg.Get(cache.ViewGlobal).Find("1")
	require.True(t, ok)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, api.GenreFree, got.Genre)

	detail, ok := f.reg.Get(cache.ViewDetail).Find("1")
	require.True(t, ok)
	assert.Equal(t, "New", detail.Title)

	// Caches not holding the id gain nothing from a save.
	assert.False(t, f.reg.Get(cache.ViewGenre).ContainsID("1"))
	assert.Empty(t, f.refetched, "non-admin save must not refetch the leaderboard")
}

func TestSaved_AdminRefetchesLeaderboard(t *testing.T) {
	f := newFixture(t, "admin", true)
	f.populate(t, cache.ViewGlobal, api.Poem{ID: "1", Likes: []string{"u2"}})

	f.sync.Saved(api.Poem{ID: "1", Likes: []string{"u2", "u3"}})

	assert.Equal(t, []cache.View{cache.ViewLeaderboard}, f.refetched)
	assert.ElementsMatch(t, []string{"u2", "u3"}, likesOf(t, f.reg.Get(cache.ViewGlobal), "1"))
}

func TestScenario_LikeUpdatesFeedLeaderboardAndLikedView(t *testing.T) {
	// Feed [{1,[]},{2,[]}]; u1 likes 1. Feed becomes [{1,[u1]},{2,[]}],
	// leaderboard is refetched, liked view gains record 1.
	f := newFixture(t, "u1", false)
	f.populate(t, cache.ViewGlobal, api.Poem{ID: "1"}, api.Poem{ID: "2"})
	f.populate(t, cache.ViewLiked)

	f.sync.Liked(api.Poem{ID: "1", Likes: []string{"u1"}})

	items := f.reg.Get(cache.ViewGlobal).Items()
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, []string{"u1"}, items[0].Likes)
	assert.Empty(t, items[1].Likes)

	assert.True(t, f.reg.Get(cache.ViewLiked).ContainsID("1"))
	assert.Equal(t, []cache.View{cache.ViewLeaderboard}, f.refetched)
}
