// Package cache implements the per-view query caches that back every poem
// listing in the application.
//
// # Overview
//
// The same underlying records are independently cached in up to six views:
// the global feed, the genre feed, the leaderboard source, "my poems",
// "liked poems", and the single-poem detail. Each view owns one Cache
// holding its fetch status, accumulated items, pagination cursor and last
// error. The Registry is the fixed set of all six.
//
// # State Machine
//
//	idle → fetching → {ready, error}
//	ready/error → fetching   (refetch or load-more)
//	any → idle               (Reset)
//
// Reset followed by Begin is the protocol for switching view context, such
// as changing the genre filter.
//
// # Pagination
//
// Fulfill with page 1 replaces the items wholesale; a later page appends
// with an id-based duplicate guard. The guard exists because like traffic
// reorders server pages between fetches, so page N+1 can legitimately
// contain a record already seen on page N. Exhaustion (hasMore) comes from
// the server's explicit flag when present, otherwise from totalPages or
// total against the accumulated count.
//
// # Stale Completions
//
// Reset is the cancellation primitive: it aborts the in-flight request and
// bumps the cache generation. Fulfill and Rejected verify the ticket issued
// by Begin against the current generation, so a response that raced a reset
// is discarded instead of being merged into newer state.
//
// # Failure Semantics
//
// Rejected records the error and keeps the last good items; a transient
// failure never blanks a populated view. A fetching status likewise keeps
// previously loaded items visible.
//
// # Concurrency
//
// Caches perform no locking. All access is confined to the application's
// single event loop; overlapping fetches against one cache are prevented
// structurally by the Begin guard, and unrelated caches may fetch
// concurrently because no operation spans more than one cache.
package cache
