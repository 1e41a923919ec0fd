package sessiongate

import (
	"context"
	"io"
	"time"

	internalaudit "github.com/MrEthical07/sessiongate/internal/audit"
)

// Identity is the snapshot of a user the engine works with. The external
// identity store owns and mutates the underlying account; the engine only
// reads snapshots, so role changes after issuance do not propagate to live
// tokens until re-issuance.
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// Claims is the identity snapshot carried by a live token, as stored in the
// token cache.
type Claims struct {
	UserID string
	Role   string
}

// LoginResult is returned by [Engine.Login].
type LoginResult struct {
	Token    string
	Identity Identity
}

// Record is the durable per-token row written on issuance and deleted on
// revocation or eviction. The engine never reads it back.
type Record struct {
	Token     string
	UserID    string
	CreatedAt time.Time
}

// CredentialVerifier checks an email/password pair against the caller's user
// database. Verify must return (nil, nil) for both an unknown email and a
// wrong password so the engine cannot leak account existence. Package
// password ships a bundled bcrypt-based implementation.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*Identity, error)
}

// IdentityStore resolves a user by ID on the authentication path, catching
// accounts deleted or suspended since token issuance. FindByID must return
// (nil, nil) when the user no longer exists.
type IdentityStore interface {
	FindByID(ctx context.Context, userID string) (*Identity, error)
}

// RecordStore persists the durable audit trail of issued tokens. Both
// operations are write paths: the engine treats the store as append/delete
// only. See records/postgres for a pgx-backed implementation.
type RecordStore interface {
	Insert(ctx context.Context, rec Record) error
	DeleteByToken(ctx context.Context, token string) error
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
