// Package api exposes the score simulator over HTTP. Handlers decode and
// validate requests, call the profile service for the session's profile and
// translate service errors into sanitized JSON responses.
//
// Every route under /api/profile requires a session token issued by
// POST /api/sessions; the middleware package places the token's profile ID
// in the request context.
package api
