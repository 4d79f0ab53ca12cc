// Package viewsync fans a confirmed mutation out to every query cache that
// could hold the affected record.
//
// # Overview
//
// The same poem can be cached in several views at once; a single like,
// unlike, delete, create or save must be reflected in all of them without
// duplicate entries, without stale like counts, and without touching views
// that have not been populated. The Synchronizer is the one writer with
// access to every cache; views own their caches and only read them.
//
// # Patch Policy
//
//   - Like/unlike: toggle the acting user in the like set in place wherever
//     the record is held. An unlike additionally prunes the record from the
//     liked-poems cache, whose membership criterion is "liked by me".
//   - Delete: remove by id everywhere; clear the detail cache if it targets
//     the id.
//   - Create: front-insert into populated caches whose membership predicate
//     the new record satisfies.
//   - Save: field-merge into caches already holding the id; never insert.
//   - Leaderboard: never patched. Ranking is an aggregate over the full
//     record set, so the synchronizer requests a refetch and lets the rank
//     package recompute.
//
// # Failure Semantics
//
// The synchronizer runs only after the server confirms a mutation. On a
// mutation error nothing is patched and the caller surfaces the failure;
// there is no rollback because nothing optimistic was applied. Each patch is
// a pure in-memory operation, so the multi-cache fan-out needs no
// transaction: partial application cannot occur once the confirmed record is
// in hand.
package viewsync
