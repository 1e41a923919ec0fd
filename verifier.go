package sessiongate

import (
	"context"

	"github.com/MrEthical07/sessiongate/password"
)

// Credential is the lookup result consumed by [StoreVerifier]: the stored
// identity plus its password hash.
type Credential struct {
	Identity     Identity
	PasswordHash string
}

// CredentialLookup fetches a user's credential by email. It must return
// (nil, nil) when the email is unknown.
type CredentialLookup func(ctx context.Context, email string) (*Credential, error)

// StoreVerifier is a bundled [CredentialVerifier]: email lookup plus bcrypt
// comparison. An unknown email and a wrong password produce the same
// outcome, so callers cannot probe for account existence.
type StoreVerifier struct {
	lookup CredentialLookup
	hasher *password.Hasher
}

// NewStoreVerifier creates a [StoreVerifier] over the given lookup.
func NewStoreVerifier(lookup CredentialLookup) (*StoreVerifier, error) {
	hasher, err := password.NewHasher(password.Config{})
	if err != nil {
		return nil, err
	}
	return &StoreVerifier{
		lookup: lookup,
		hasher: hasher,
	}, nil
}

// Verify implements [CredentialVerifier].
func (v *StoreVerifier) Verify(ctx context.Context, email, pass string) (*Identity, error) {
	if pass == "" {
		return nil, nil
	}

	cred, err := v.lookup(ctx, email)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, nil
	}
	if !v.hasher.Verify(pass, cred.PasswordHash) {
		return nil, nil
	}

	identity := cred.Identity
	return &identity, nil
}
