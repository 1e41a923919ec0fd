// Package password implements password hashing and verification with bcrypt.
//
// # Architecture boundaries
//
// This package owns hashing and comparison only. Credential lookup and the
// generic invalid-credentials response live in the root package's
// StoreVerifier.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive
//     hashes.
//   - Report why a comparison failed.
package password
