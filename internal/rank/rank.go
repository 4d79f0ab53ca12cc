// Package rank computes the author leaderboard. Standings is a pure
// function of the full record set; the leaderboard view refetches its source
// data after every mutation and recomputes, because ranking is an aggregate
// that cannot be patched per-record.
package rank

import (
	"sort"

	"github.com/stanza-tui/stanza/internal/api"
)

// Entry is one leaderboard row.
type Entry struct {
	OwnerID       string
	Author        string
	AuthorPicture string
	Poems         int
	Likes         int
}

// Points returns the entry's score. One like is one point; the poem count
// breaks nothing but is displayed alongside.
func (e Entry) Points() int { return e.Likes }

// Standings aggregates poems per author and ranks authors by total likes,
// descending, with a stable name tie-break so equal scores render in a
// deterministic order.
func Standings(poems []api.Poem) []Entry {
	byOwner := make(map[string]*Entry)
	order := make([]string, 0)

	for _, p := range poems {
		e, ok := byOwner[p.OwnerID]
		if !ok {
			e = &Entry{OwnerID: p.OwnerID, Author: p.Author, AuthorPicture: p.AuthorPicture}
			byOwner[p.OwnerID] = e
			order = append(order, p.OwnerID)
		}
		e.Poems++
		e.Likes += len(p.Likes)
	}

	entries := make([]Entry, 0, len(order))
	for _, id := range order {
		entries = append(entries, *byOwner[id])
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Likes != entries[j].Likes {
			return entries[i].Likes > entries[j].Likes
		}
		return entries[i].Author < entries[j].Author
	})
	return entries
}
