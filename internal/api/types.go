package api

import (
	"strings"
	"time"
)

// Poem is a single shareable record as served by the poems API. The ID is
// server-assigned and immutable once created. Likes carries user identifiers
// with set semantics: unique entries, order insignificant. The server keeps
// owners out of their own like set; this client assumes that invariant rather
// than enforcing it.
type Poem struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Genre         string    `json:"genre"`
	Author        string    `json:"author"`
	AuthorPicture string    `json:"authorPicture"`
	OwnerID       string    `json:"ownerId"`
	Likes         []string  `json:"likes"`
	CreatedAt     time.Time `json:"createdAt"`
	Origin        string    `json:"origin"`
}

// Known genre values. The server rejects anything outside this set.
const (
	GenreLyric  = "lyric"
	GenreHaiku  = "haiku"
	GenreSonnet = "sonnet"
	GenreFree   = "free"
	GenreSatire = "satire"
)

// Origin values. OriginFamous is only settable by an admin identity.
const (
	OriginUser   = "user"
	OriginFamous = "famous"
)

// Genres returns the fixed genre enumeration in display order.
func Genres() []string {
	return []string{GenreLyric, GenreHaiku, GenreSonnet, GenreFree, GenreSatire}
}

// ValidGenre reports whether g is one of the known genres.
func ValidGenre(g string) bool {
	switch strings.ToLower(strings.TrimSpace(g)) {
	case GenreLyric, GenreHaiku, GenreSonnet, GenreFree, GenreSatire:
		return true
	}
	return false
}

// LikedBy reports whether userID is in the poem's like set.
func (p *Poem) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// AddLike inserts userID into the like set. Inserting an id that is already
// present is a no-op, preserving set semantics.
func (p *Poem) AddLike(userID string) {
	if p.LikedBy(userID) {
		return
	}
	p.Likes = append(p.Likes, userID)
}

// RemoveLike deletes userID from the like set if present.
func (p *Poem) RemoveLike(userID string) {
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return
		}
	}
}

// Merge overlays the server-confirmed fields of upd onto p, keeping p's
// identity. Used when a save is reflected into caches that already hold the
// record.
func (p *Poem) Merge(upd Poem) {
	p.Title = upd.Title
	p.Content = upd.Content
	p.Genre = upd.Genre
	p.Author = upd.Author
	p.AuthorPicture = upd.AuthorPicture
	p.OwnerID = upd.OwnerID
	p.Origin = upd.Origin
	p.Likes = append([]string(nil), upd.Likes...)
}

// Clone returns a deep copy of the poem, including its like set.
func (p Poem) Clone() Poem {
	dup := p
	dup.Likes = append([]string(nil), p.Likes...)
	return dup
}

// ListResponse mirrors the GET /poems payload. HasMore is a pointer because
// not every deployment reports it; callers fall back to deriving exhaustion
// from Total/TotalPages.
type ListResponse struct {
	Poems      []Poem `json:"poems"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Total      int    `json:"total"`
	TotalPages int    `json:"totalPages"`
	HasMore    *bool  `json:"hasMore,omitempty"`
}

// Draft carries the writable fields for create and save requests. OwnerID,
// Likes and Origin are admin-only overrides; leaving them zero omits them
// from the payload so non-admin saves never touch them.
type Draft struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Genre   string   `json:"genre"`
	OwnerID string   `json:"ownerId,omitempty"`
	Likes   []string `json:"likes,omitempty"`
	Origin  string   `json:"origin,omitempty"`
}
