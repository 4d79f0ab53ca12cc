// Package edit tracks which poem, if any, is currently being created or
// edited, and resolves the form's initial field values from whichever source
// can supply them.
package edit

import (
	"github.com/stanza-tui/stanza/internal/api"
	"github.com/stanza-tui/stanza/internal/cache"
)

// Provenance names the source an edit session's initial fields were
// resolved from.
type Provenance int

const (
	// ProvenanceNone means no source held the target; fields start empty.
	ProvenanceNone Provenance = iota
	// ProvenanceNavigation means the caller carried the record along with
	// the edit request.
	ProvenanceNavigation
	// ProvenanceDetail means the single-poem detail cache held the target.
	ProvenanceDetail
	// ProvenanceList means a linear scan of a populated feed cache found
	// the target.
	ProvenanceList
)

// String returns the provenance's display name.
func (p Provenance) String() string {
	switch p {
	case ProvenanceNavigation:
		return "navigation"
	case ProvenanceDetail:
		return "detail"
	case ProvenanceList:
		return "list"
	}
	return "none"
}

// Fields are the in-progress form values. OwnerID, Likes and Origin are
// admin-only overrides and stay zero for ordinary sessions.
type Fields struct {
	Title   string
	Content string
	Genre   string
	OwnerID string
	Likes   []string
	Origin  string
}

// Session is the transient state of the edit surface. An empty TargetID
// means a new poem is being created. The session is mutated on every
// keystroke (the owner writes Fields directly) and cleared on successful
// save, explicit cancel, or navigation away from the edit surface.
type Session struct {
	TargetID   string
	Fields     Fields
	Provenance Provenance

	resolved bool
}

// Active reports whether the session currently targets an existing record.
func (s *Session) Active() bool {
	return s.TargetID != ""
}

// Resolve points the session at targetID and fills the initial fields. When
// the target changes the form is reset to empty before re-resolution, so a
// switch from editing one record to another can never show a mix of both.
// Re-resolving the current target is a no-op to protect in-progress
// keystrokes.
//
// Sources are tried in strict priority order: the navigation payload, the
// detail cache, then a linear scan of the populated feed caches. If none
// hold the target the fields stay empty and provenance is none.
func (s *Session) Resolve(targetID string, nav *api.Poem, reg *cache.Registry) {
	if s.resolved && targetID == s.TargetID {
		return
	}
	s.Clear()
	s.TargetID = targetID
	s.resolved = true
	if targetID == "" {
		return
	}

	if nav != nil && nav.ID == targetID {
		s.Fields = fieldsFrom(*nav)
		s.Provenance = ProvenanceNavigation
		return
	}

	if p, ok := reg.Get(cache.ViewDetail).Find(targetID); ok {
		s.Fields = fieldsFrom(p)
		s.Provenance = ProvenanceDetail
		return
	}

	for _, c := range reg.Feeds() {
		if p, ok := c.Find(targetID); ok {
			s.Fields = fieldsFrom(p)
			s.Provenance = ProvenanceList
			return
		}
	}
}

// Clear resets the session to its initial empty state.
func (s *Session) Clear() {
	*s = Session{}
}

func fieldsFrom(p api.Poem) Fields {
	return Fields{
		Title:   p.Title,
		Content: p.Content,
		Genre:   p.Genre,
		OwnerID: p.OwnerID,
		Likes:   append([]string(nil), p.Likes...),
		Origin:  p.Origin,
	}
}

// Draft converts the form values into the API payload for create or save.
// Admin-only overrides are included only when admin is set, so an ordinary
// session can never submit them.
func (s *Session) Draft(admin bool) api.Draft {
	d := api.Draft{
		Title:   s.Fields.Title,
		Content: s.Fields.Content,
		Genre:   s.Fields.Genre,
	}
	if admin {
		d.OwnerID = s.Fields.OwnerID
		d.Likes = append([]string(nil), s.Fields.Likes...)
		d.Origin = s.Fields.Origin
	}
	return d
}
