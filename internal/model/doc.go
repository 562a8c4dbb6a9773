// Package model defines domain entities and data structures for the Storymap API.
//
// The model package contains all struct definitions for domain objects,
// request/response types, and error definitions. Models are used across all
// layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - Place: Geolocated site owned by a community, with restriction flags
//   - Story: Oral history or narrative owned by a community
//   - Speaker: Storyteller belonging to a community, possibly an elder
//   - User: Application account with role and home community
//   - SessionIdentity: Request-scoped authenticated caller
//
// # Multi-Tenancy
//
// Every content entity carries a CommunityID naming its owning tenant.
// CommunityID is immutable after creation; cross-community reads and writes
// are rejected by the authorization middleware and the repositories.
//
// # Errors
//
// API errors use RFC 9457 Problem Details (ProblemDetails) with typed
// ErrorCode constants. Constructors exist for every error the authorization
// chain and the spatial search can produce.
package model
