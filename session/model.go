package session

// Entry is the token cache payload: the identity snapshot captured at
// issuance. Only existence changes over a token's lifetime — the snapshot
// itself is immutable once written.
type Entry struct {
	Token  string
	UserID string
	Role   string

	CreatedAt int64
}
