// Package audit provides the asynchronous audit event pipeline for
// sessiongate: a canonical event model, pluggable sinks, and a buffered
// dispatcher that keeps audit emission off the login/logout hot paths.
//
// # Architecture boundaries
//
// This package owns event buffering and delivery. It does NOT decide which
// events exist or when they fire — the engine does. Sinks receive events on
// the dispatcher goroutine and must not block indefinitely.
package audit
