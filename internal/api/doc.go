// Package api provides the entity model and HTTP client for the poems
// sharing service.
//
// # Overview
//
// This package defines the Poem record and the API client used by every
// query cache in the application. It handles HTTP communication, JSON
// serialization, bearer authentication, and typed errors for non-2xx
// responses.
//
// # Endpoints
//
//   - GET /poems: Paginated listing with genre/origin/likedBy/userId filters
//   - GET /poems/:id: Single record
//   - POST /poems: Create; server assigns id and createdAt
//   - PUT /poems/:id (no body): Toggle the acting user's like
//   - PUT /poems/:id (with body): Save edited fields
//   - DELETE /poems/:id: Delete
//
// The like toggle and the save share a route; the server discriminates by
// payload shape, so the client must never attach a body to ToggleLike.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Carry Accept: application/json and a stanza User-Agent
//   - Carry an X-Request-ID header for server-side correlation
//   - Attach the configured bearer token when present
//   - Have a 10-second timeout
//
// # Error Handling
//
// Network and decoding failures are wrapped with fmt.Errorf context. A
// non-2xx response becomes an *APIError carrying the status code and the
// server's message field when one was present. This layer does not
// distinguish "record not found" from "service unreachable" for callers that
// only inspect the error string; callers that need the status can errors.As
// into *APIError.
//
// # Entity Semantics
//
// Poem.Likes has set semantics: AddLike and RemoveLike keep entries unique,
// and LikedBy answers membership. Merge overlays server-confirmed fields
// onto a cached copy without touching identity. These helpers are what the
// mutation synchronizer uses to patch caches in place.
package api
