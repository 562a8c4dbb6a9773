// Package handler provides HTTP request handlers for the Storymap API.
//
// Each handler struct encapsulates the service it serves requests for.
// Community scoping and authorization happen in the middleware chain before
// a handler runs; handlers read the resolved community id and identity from
// the request context.
//
// # Response Format
//
//   - WriteData: resource wrapped in a data envelope
//   - WriteJSON: raw JSON response
//   - WriteError: RFC 9457 Problem Details error response
//
// Errors returned by services are translated centrally by MapServiceError.
package handler
