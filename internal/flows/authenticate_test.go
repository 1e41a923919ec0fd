package flows

import (
	"context"
	"errors"
	"testing"
)

var (
	errTestNotReady        = errors.New("engine not initialized")
	errTestUnauthenticated = errors.New("unauthenticated")
)

type authProbe struct {
	resolveCalls int
	findCalls    int
	rejected     int
	auditEvents  []string
}

func (p *authProbe) deps() AuthenticateDeps {
	return AuthenticateDeps{
		Scheme: "Bearer",
		Resolve: func(context.Context, string) (*FlowClaims, error) {
			p.resolveCalls++
			return &FlowClaims{UserID: "user-1", Role: "member"}, nil
		},
		FindIdentity: func(context.Context, string) (*FlowIdentity, error) {
			p.findCalls++
			return &FlowIdentity{ID: "user-1", Role: "member"}, nil
		},
		MetricInc: func(id int) {
			if id == 1 {
				p.rejected++
			}
		},
		EmitAudit: func(_ context.Context, event string, _ bool, _, _ string, _ error, _ func() map[string]string) {
			p.auditEvents = append(p.auditEvents, event)
		},
		Metrics: AuthenticateMetrics{Rejected: 1},
		Events:  AuthenticateEvents{Rejected: "authenticate_rejected"},
		Errors: AuthenticateErrors{
			EngineNotReady:  errTestNotReady,
			Unauthenticated: errTestUnauthenticated,
		},
	}
}

func TestAuthenticateMalformedHeaderSkipsBackends(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"empty", ""},
		{"wrong scheme", "Token abc123"},
		{"scheme only", "Bearer"},
		{"extra parts", "Bearer abc def"},
		{"lowercase scheme", "bearer abc123"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			probe := &authProbe{}
			_, err := RunAuthenticate(context.Background(), tc.header, probe.deps())
			if !errors.Is(err, errTestUnauthenticated) {
				t.Fatalf("expected unauthenticated, got %v", err)
			}
			if probe.resolveCalls != 0 || probe.findCalls != 0 {
				t.Fatalf("backends contacted for malformed header: resolve=%d find=%d",
					probe.resolveCalls, probe.findCalls)
			}
			if probe.rejected != 1 {
				t.Fatalf("expected rejection counted once, got %d", probe.rejected)
			}
		})
	}
}

func TestAuthenticateHappyPath(t *testing.T) {
	probe := &authProbe{}
	identity, err := RunAuthenticate(context.Background(), "Bearer tok-1", probe.deps())
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if identity.ID != "user-1" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if probe.resolveCalls != 1 || probe.findCalls != 1 {
		t.Fatalf("expected one resolve and one lookup, got %d / %d", probe.resolveCalls, probe.findCalls)
	}
	if len(probe.auditEvents) != 0 {
		t.Fatalf("unexpected audit events: %v", probe.auditEvents)
	}
}

func TestAuthenticateResolveFailureFailsClosed(t *testing.T) {
	probe := &authProbe{}
	deps := probe.deps()
	deps.Resolve = func(context.Context, string) (*FlowClaims, error) {
		return nil, errors.New("backing store unavailable")
	}

	_, err := RunAuthenticate(context.Background(), "Bearer tok-1", deps)
	if !errors.Is(err, errTestUnauthenticated) {
		t.Fatalf("expected unauthenticated on resolve failure, got %v", err)
	}
	if probe.findCalls != 0 {
		t.Fatal("identity lookup ran after failed resolve")
	}
	if len(probe.auditEvents) != 1 || probe.auditEvents[0] != "authenticate_rejected" {
		t.Fatalf("expected one rejection event, got %v", probe.auditEvents)
	}
}

func TestAuthenticateIdentityGone(t *testing.T) {
	probe := &authProbe{}
	deps := probe.deps()
	deps.FindIdentity = func(context.Context, string) (*FlowIdentity, error) {
		probe.findCalls++
		return nil, nil
	}

	_, err := RunAuthenticate(context.Background(), "Bearer tok-1", deps)
	if !errors.Is(err, errTestUnauthenticated) {
		t.Fatalf("expected unauthenticated for deleted identity, got %v", err)
	}
	if probe.findCalls != 1 {
		t.Fatalf("expected one identity lookup, got %d", probe.findCalls)
	}
}

func TestAuthenticateMissingDeps(t *testing.T) {
	_, err := RunAuthenticate(context.Background(), "Bearer tok-1", AuthenticateDeps{
		Errors: AuthenticateErrors{EngineNotReady: errTestNotReady},
	})
	if !errors.Is(err, errTestNotReady) {
		t.Fatalf("expected not-ready error, got %v", err)
	}
}
