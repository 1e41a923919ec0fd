// Package flows implements the session orchestration behind the root engine:
// issuance with FIFO capacity eviction, idempotent revocation, cache-only
// token resolution, and the authentication gate.
//
// Each flow receives its dependencies as a struct of function fields built
// once by the root engine. Sentinel errors are injected by the host so flows
// never import the root package (no upward imports).
package flows
