// Package client contains the client's outward-facing building blocks.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract for the crop recommendation backend
//     (see the Client interface): Ping and Recommend.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that maps transport
//     failures to ErrUnavailable and non-2xx answers to *APIError.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens
//     the SQLite file backing the session store and applies the embedded
//     goose migrations.
//
// # Error Handling
//
// Callers match ErrUnavailable and ErrBadResponse with errors.Is and
// *APIError with errors.As.
//
// The session store does not depend on the recommendation backend; the
// client works fully offline for account operations.
package client
