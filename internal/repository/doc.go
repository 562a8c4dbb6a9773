// Package repository implements the data access layer for the Storymap API.
//
// Each repository struct handles CRUD operations for one domain entity over
// the shared *sql.DB pool. Every read and write is community-scoped: a lookup
// that names a community never returns another community's row, and an absent
// row is indistinguishable from a cross-community row.
//
// Place search delegates to the spatial engine configured at startup; the
// repositories never branch on which spatial backend is active.
//
// Missing rows are reported as (nil, nil) from getters and as a false first
// return from Delete; the service layer translates those into its typed
// not-found errors.
package repository
