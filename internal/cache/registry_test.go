package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_OneCachePerView(t *testing.T) {
	r := NewRegistry()

	for _, v := range AllViews() {
		c := r.Get(v)
		require.NotNil(t, c, "missing cache for %s", v)
		assert.Equal(t, v.String(), c.Name())
		assert.Equal(t, StatusIdle, c.Status())
	}

	// Same instance on every lookup.
	assert.Same(t, r.Get(ViewGlobal), r.Get(ViewGlobal))
}

func TestRegistry_FeedsExcludeAggregateAndDetail(t *testing.T) {
	r := NewRegistry()
	feeds := r.Feeds()

	require.Len(t, feeds, 4)
	for _, c := range feeds {
		assert.NotEqual(t, ViewLeaderboard.String(), c.Name())
		assert.NotEqual(t, ViewDetail.String(), c.Name())
	}
}

func TestRegistry_GenreFilter(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Genre())

	r.SetGenre("haiku")
	assert.Equal(t, "haiku", r.Genre())
}
