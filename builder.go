package sessiongate

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	internalaudit "github.com/MrEthical07/sessiongate/internal/audit"
	"github.com/MrEthical07/sessiongate/internal/flows"
	"github.com/MrEthical07/sessiongate/session"
)

// Builder assembles an [Engine]. Construction is allocation-only; no I/O
// happens until the engine methods are called.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	verifier   CredentialVerifier
	identities IdentityStore
	records    RecordStore
	auditSink  AuditSink

	built bool
}

// New returns a Builder preloaded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis sets the token-cache client. Required: the cache is the source
// of truth for live sessions.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithCredentialVerifier sets the login credential check. Required.
func (b *Builder) WithCredentialVerifier(v CredentialVerifier) *Builder {
	b.verifier = v
	return b
}

// WithIdentityStore sets the identity re-fetch used by Authenticate.
// Required.
func (b *Builder) WithIdentityStore(s IdentityStore) *Builder {
	b.identities = s
	return b
}

// WithRecordStore sets the durable audit-trail store. Optional: without it
// the engine runs cache-only and sessions are unaudited.
func (b *Builder) WithRecordStore(s RecordStore) *Builder {
	b.records = s
	return b
}

// WithAuditSink sets the destination for audit events. Only consulted when
// Config.Audit.Enabled is true.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the wiring and constructs the engine. A Builder can build
// at most once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if b.verifier == nil {
		return nil, errors.New("credential verifier required")
	}
	if b.identities == nil {
		return nil, errors.New("identity store required")
	}

	e := &Engine{
		config:       cfg,
		sessionStore: session.NewStore(b.redis, cfg.Session.RedisPrefix),
		records:      b.records,
		verifier:     b.verifier,
		identities:   b.identities,
		metrics:      NewMetrics(cfg.Metrics),
	}
	e.audit = internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)

	e.flowDeps = b.buildFlowDeps(e, cfg)

	b.built = true
	return e, nil
}

func (b *Builder) buildFlowDeps(e *Engine, cfg Config) flows.Deps {
	metricInc := func(id int) {
		e.metricInc(MetricID(id))
	}
	emitAudit := func(ctx context.Context, eventType string, success bool, userID, token string, err error, metadata func() map[string]string) {
		e.emitAudit(ctx, eventType, success, userID, token, err, metadata)
	}

	var insertRecord func(context.Context, string, string, time.Time) error
	var deleteRecord func(context.Context, string) error
	if b.records != nil {
		insertRecord = func(ctx context.Context, token, userID string, createdAt time.Time) error {
			return b.records.Insert(ctx, Record{
				Token:     token,
				UserID:    userID,
				CreatedAt: createdAt,
			})
		}
		deleteRecord = func(ctx context.Context, token string) error {
			return b.records.DeleteByToken(ctx, token)
		}
	}

	resolveDeps := flows.ResolveDeps{
		GetEntry:         e.sessionStore.GetEntry,
		EntryMissing:     redis.Nil,
		RedisUnavailable: session.ErrRedisUnavailable,
		MetricInc:        metricInc,
		Warn:             e.warn,
		Metrics: flows.ResolveMetrics{
			ResolveHit:       int(MetricResolveHit),
			ResolveMiss:      int(MetricResolveMiss),
			StoreUnavailable: int(MetricStoreUnavailable),
		},
		Errors: flows.ResolveErrors{
			EngineNotReady:   ErrEngineNotReady,
			TokenInvalid:     ErrTokenInvalid,
			StoreUnavailable: ErrStoreUnavailable,
		},
	}

	return flows.Deps{
		Login: flows.LoginDeps{
			MaxSessions: cfg.Session.MaxConcurrentSessions,
			TokenTTL:    cfg.Session.TokenTTL(),
			Now:         time.Now,
			VerifyCredentials: func(ctx context.Context, email, password string) (*flows.FlowIdentity, error) {
				identity, err := b.verifier.Verify(ctx, email, password)
				if err != nil {
					return nil, err
				}
				if identity == nil {
					return nil, nil
				}
				return &flows.FlowIdentity{
					ID:    identity.ID,
					Email: identity.Email,
					Name:  identity.Name,
					Role:  identity.Role,
				}, nil
			},
			NewToken:     uuid.NewString,
			PushSession:  e.sessionStore.PushSession,
			SaveEntry:    e.sessionStore.SaveEntry,
			DeleteEntry:  e.sessionStore.DeleteEntry,
			InsertRecord: insertRecord,
			DeleteRecord: deleteRecord,
			MetricInc:    metricInc,
			EmitAudit:    emitAudit,
			Warn:         e.warn,
			Metrics: flows.LoginMetrics{
				LoginSuccess:        int(MetricLoginSuccess),
				LoginFailure:        int(MetricLoginFailure),
				SessionCreated:      int(MetricSessionCreated),
				SessionEvicted:      int(MetricSessionEvicted),
				StoreUnavailable:    int(MetricStoreUnavailable),
				RecordWriteFailure:  int(MetricRecordWriteFailure),
				RecordDeleteFailure: int(MetricRecordDeleteFailure),
			},
			Events: flows.LoginEvents{
				LoginSuccess:       auditEventLoginSuccess,
				LoginFailure:       auditEventLoginFailure,
				SessionEvicted:     auditEventSessionEvicted,
				RecordWriteFailed:  auditEventRecordWriteFailed,
				RecordDeleteFailed: auditEventRecordDeleteFailed,
			},
			Errors: flows.LoginErrors{
				EngineNotReady:     ErrEngineNotReady,
				InvalidCredentials: ErrInvalidCredentials,
				StoreUnavailable:   ErrStoreUnavailable,
			},
		},
		Logout: flows.LogoutDeps{
			DeleteEntry:   e.sessionStore.DeleteEntry,
			RemoveSession: e.sessionStore.RemoveSession,
			DeleteRecord:  deleteRecord,
			MetricInc:     metricInc,
			EmitAudit:     emitAudit,
			Warn:          e.warn,
			Metrics: flows.LogoutMetrics{
				Logout:              int(MetricLogout),
				StoreUnavailable:    int(MetricStoreUnavailable),
				RecordDeleteFailure: int(MetricRecordDeleteFailure),
			},
			Events: flows.LogoutEvents{
				Logout:             auditEventLogoutSession,
				RecordDeleteFailed: auditEventRecordDeleteFailed,
			},
			Errors: flows.LogoutErrors{
				EngineNotReady:   ErrEngineNotReady,
				StoreUnavailable: ErrStoreUnavailable,
			},
		},
		Resolve: resolveDeps,
		Authenticate: flows.AuthenticateDeps{
			Scheme: "Bearer",
			Resolve: func(ctx context.Context, token string) (*flows.FlowClaims, error) {
				return flows.RunResolve(ctx, token, resolveDeps)
			},
			FindIdentity: func(ctx context.Context, userID string) (*flows.FlowIdentity, error) {
				identity, err := b.identities.FindByID(ctx, userID)
				if err != nil {
					return nil, err
				}
				if identity == nil {
					return nil, nil
				}
				return &flows.FlowIdentity{
					ID:    identity.ID,
					Email: identity.Email,
					Name:  identity.Name,
					Role:  identity.Role,
				}, nil
			},
			MetricInc: metricInc,
			EmitAudit: emitAudit,
			Metrics: flows.AuthenticateMetrics{
				Rejected: int(MetricAuthenticateRejected),
			},
			Events: flows.AuthenticateEvents{
				Rejected: auditEventAuthenticateReject,
			},
			Errors: flows.AuthenticateErrors{
				EngineNotReady:  ErrEngineNotReady,
				Unauthenticated: ErrUnauthenticated,
			},
		},
	}
}
