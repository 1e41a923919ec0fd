// Package middleware exposes the HTTP adapter for the sessiongate access
// guard.
//
// [Guard] reads the Authorization header, calls Engine.Authenticate, and
// injects the freshly-fetched identity into the request context. Any
// rejection — missing header, wrong scheme, dead token, unreachable store —
// answers 401 with one indistinguishable message.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// Engine.Authenticate.
//
// # What this package must NOT do
//
//   - Parse tokens or inspect cache entries directly.
//   - Access Redis or the record store (the Engine handles I/O).
//   - Make authorization decisions beyond pass/reject.
package middleware
