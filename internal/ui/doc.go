// Package ui implements the terminal interface with Bubble Tea.
//
// The Model owns the query caches through the registry and is the only
// writer to them. Fetches begin synchronously inside Update so the guard
// state is set before the command runs; results come back as messages
// carrying the ticket issued at begin time, and stale results are dropped
// by the caches themselves. Confirmed mutations are handed to the view
// synchronizer, whose refetch requests are queued during the pass and
// drained into fetch commands before Update returns.
package ui
