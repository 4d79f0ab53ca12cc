package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanza-tui/stanza/internal/api"
)

func TestStandings_AggregatesPerAuthor(t *testing.T) {
	poems := []api.Poem{
		{ID: "p1", OwnerID: "u1", Author: "Ada", Likes: []string{"u2", "u3"}},
		{ID: "p2", OwnerID: "u1", Author: "Ada", Likes: []string{"u2"}},
		{ID: "p3", OwnerID: "u2", Author: "Basho", Likes: []string{"u1", "u3", "u4", "u5"}},
		{ID: "p4", OwnerID: "u3", Author: "Cora"},
	}

	entries := Standings(poems)
	require.Len(t, entries, 3)

	assert.Equal(t, "Basho", entries[0].Author)
	assert.Equal(t, 4, entries[0].Likes)
	assert.Equal(t, 1, entries[0].Poems)

	assert.Equal(t, "Ada", entries[1].Author)
	assert.Equal(t, 3, entries[1].Likes)
	assert.Equal(t, 2, entries[1].Poems)
	assert.Equal(t, 3, entries[1].Points())

	assert.Equal(t, "Cora", entries[2].Author)
	assert.Zero(t, entries[2].Likes)
}

func TestStandings_TieBreaksByName(t *testing.T) {
	poems := []api.Poem{
		{ID: "p1", OwnerID: "u2", Author: "Zeno", Likes: []string{"a"}},
		{ID: "p2", OwnerID: "u1", Author: "Ada", Likes: []string{"b"}},
	}

	entries := Standings(poems)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ada", entries[0].Author)
	assert.Equal(t, "Zeno", entries[1].Author)
}

func TestStandings_Empty(t *testing.T) {
	assert.Empty(t, Standings(nil))
}
