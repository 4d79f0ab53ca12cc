package cache

import (
	"github.com/stanza-tui/stanza/internal/api"
)

// QueryScope carries the per-user parameters every view query is built
// from.
type QueryScope struct {
	PageSize int
	Genre    string // current genre filter, genre feed only
	UserID   string // viewing user, selects the mine/liked predicates
}

// ViewQuery builds the GET /poems query for a list-backed view. The detail
// view fetches by id and has no list query; it yields the zero Query.
//
// The leaderboard view deliberately requests the whole collection in one
// unpaginated page: ranking is recomputed from the full record set on every
// refetch. That is how the service has always been consumed, scalability
// warts and all.
func ViewQuery(v View, page int, scope QueryScope) api.Query {
	switch v {
	case ViewGlobal:
		return api.Query{Page: page, Limit: scope.PageSize}
	case ViewGenre:
		return api.Query{Page: page, Limit: scope.PageSize, Genre: scope.Genre}
	case ViewLeaderboard:
		return api.Query{Origin: api.OriginUser}
	case ViewMine:
		return api.Query{Page: page, Limit: scope.PageSize, UserID: scope.UserID}
	case ViewLiked:
		return api.Query{Page: page, Limit: scope.PageSize, LikedBy: scope.UserID}
	}
	return api.Query{}
}
