package sessiongate

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func storedCredential(t *testing.T, identity Identity, plaintext string) *Credential {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash fixture: %v", err)
	}
	return &Credential{Identity: identity, PasswordHash: string(hash)}
}

func TestStoreVerifier(t *testing.T) {
	cred := storedCredential(t, Identity{ID: "user-1", Email: "alice@example.com", Role: "member"}, "correct-horse")

	verifier, err := NewStoreVerifier(func(_ context.Context, email string) (*Credential, error) {
		if email != "alice@example.com" {
			return nil, nil
		}
		return cred, nil
	})
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	ctx := context.Background()

	identity, err := verifier.Verify(ctx, "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if identity == nil || identity.ID != "user-1" {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	// Unknown email and wrong password are indistinguishable: both (nil, nil).
	for name, probe := range map[string][2]string{
		"unknown email":  {"nobody@example.com", "correct-horse"},
		"wrong password": {"alice@example.com", "wrong-horse"},
		"empty password": {"alice@example.com", ""},
	} {
		identity, err := verifier.Verify(ctx, probe[0], probe[1])
		if err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
		if identity != nil {
			t.Fatalf("%s: unexpected identity %+v", name, identity)
		}
	}
}

func TestStoreVerifierLookupFailure(t *testing.T) {
	lookupErr := errors.New("directory down")
	verifier, err := NewStoreVerifier(func(context.Context, string) (*Credential, error) {
		return nil, lookupErr
	})
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}

	if _, err := verifier.Verify(context.Background(), "alice@example.com", "correct-horse"); !errors.Is(err, lookupErr) {
		t.Fatalf("expected lookup error surfaced, got %v", err)
	}
}
