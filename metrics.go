package sessiongate

import internalmetrics "github.com/MrEthical07/sessiongate/internal/metrics"

// MetricID identifies a specific counter in the in-process metrics system.
type MetricID = internalmetrics.MetricID

const (
	// MetricLoginSuccess counts issued sessions.
	MetricLoginSuccess = internalmetrics.MetricLoginSuccess
	// MetricLoginFailure counts rejected credential checks.
	MetricLoginFailure = internalmetrics.MetricLoginFailure
	// MetricSessionCreated counts cache entries written on issuance.
	MetricSessionCreated = internalmetrics.MetricSessionCreated
	// MetricSessionEvicted counts FIFO evictions on overflow.
	MetricSessionEvicted = internalmetrics.MetricSessionEvicted
	// MetricLogout counts explicit revocations.
	MetricLogout = internalmetrics.MetricLogout
	// MetricResolveHit counts token lookups that returned a live snapshot.
	MetricResolveHit = internalmetrics.MetricResolveHit
	// MetricResolveMiss counts token lookups with no live cache entry.
	MetricResolveMiss = internalmetrics.MetricResolveMiss
	// MetricAuthenticateRejected counts guard rejections.
	MetricAuthenticateRejected = internalmetrics.MetricAuthenticateRejected
	// MetricStoreUnavailable counts Redis transport failures.
	MetricStoreUnavailable = internalmetrics.MetricStoreUnavailable
	// MetricRecordWriteFailure counts durable-record inserts that were
	// absorbed (login still succeeded, session unaudited).
	MetricRecordWriteFailure = internalmetrics.MetricRecordWriteFailure
	// MetricRecordDeleteFailure counts durable-record deletes that were
	// absorbed during eviction or logout.
	MetricRecordDeleteFailure = internalmetrics.MetricRecordDeleteFailure
)

// Metrics holds atomic counters.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot = internalmetrics.Snapshot

// NewMetrics creates a new [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{
		Enabled: cfg.Enabled,
	})
}
