// Package sessiongate issues and validates short-lived opaque bearer tokens,
// enforcing a per-user cap on concurrently active sessions with strict FIFO
// eviction. Redis is the source of truth for live sessions; a durable record
// store keeps a write-only audit trail.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// sessiongate is the public surface. It exposes [Engine], [Builder],
// [Config], collaborator contracts ([CredentialVerifier], [IdentityStore],
// [RecordStore]), and value types. All internal coordination — flow
// orchestration, entry encoding, audit dispatch — lives under internal/ and
// is never exported.
//
// # What this package must NOT do
//
//   - Hash or store passwords (credential verification is delegated to the
//     caller's [CredentialVerifier]; package password offers a bundled one).
//   - Decide which roles may access which resources.
//   - Read from the durable record store: Resolve and Authenticate touch
//     Redis only.
//
// # Performance contract
//
// Resolve is the hot path: one Redis GET, no record-store round-trip.
// Authenticate adds exactly one identity re-fetch. Login and Logout are
// allowed one Redis script plus constant-count store calls.
package sessiongate
