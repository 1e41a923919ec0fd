// Package session provides the Redis-backed token cache and the per-user FIFO
// session list used by the sessiongate engine.
//
// # Data layout
//
// Two key families, mirroring each other:
//
//	<prefix>:token:<token>     -> binary-encoded Entry, expires with the token TTL
//	<prefix>:sessions:<userID> -> Redis list of live tokens, oldest first
//
// The cache entry is the source of truth for "is this token valid"; the list
// only orders tokens for FIFO capacity eviction.
//
// # Atomicity
//
// The overflow path (push, measure length, pop oldest on overflow) runs as a
// single Lua script. Redis executes scripts atomically, so concurrent logins
// for the same user cannot interleave inside the critical section and the
// list never settles above the configured cap.
//
// # Architecture boundaries
//
// This package owns Redis operations and the Entry wire format. It does NOT
// verify credentials, generate tokens, or talk to the durable record store —
// those responsibilities belong to the Engine.
package session
