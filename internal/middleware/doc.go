// Package middleware provides HTTP middleware for the storymap API.
//
// It includes request ID tracking, structured logging, panic recovery, CORS,
// gzip compression, JWT authentication, and the community access guards that
// enforce data sovereignty, community isolation, the role hierarchy, and
// cultural protocols.
package middleware
