// Package service contains the business logic between handlers and
// repositories. Services validate input against domain constraints, enforce
// coordinate invariants before any storage access, and translate repository
// absences into typed errors handlers can map to HTTP responses.
package service
