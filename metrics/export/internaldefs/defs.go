package internaldefs

import sessiongate "github.com/MrEthical07/sessiongate"

// CounterDef binds a metric ID to its exported name and help string.
type CounterDef struct {
	ID   sessiongate.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in render order.
var CounterDefs = []CounterDef{
	{sessiongate.MetricLoginSuccess, "sessiongate_login_success_total", "Sessions issued."},
	{sessiongate.MetricLoginFailure, "sessiongate_login_failure_total", "Logins rejected for bad credentials."},
	{sessiongate.MetricSessionCreated, "sessiongate_session_created_total", "Token cache entries written."},
	{sessiongate.MetricSessionEvicted, "sessiongate_session_evicted_total", "Oldest sessions evicted on capacity overflow."},
	{sessiongate.MetricLogout, "sessiongate_logout_total", "Explicit revocations."},
	{sessiongate.MetricResolveHit, "sessiongate_resolve_hit_total", "Token lookups that returned a live snapshot."},
	{sessiongate.MetricResolveMiss, "sessiongate_resolve_miss_total", "Token lookups with no live cache entry."},
	{sessiongate.MetricAuthenticateRejected, "sessiongate_authenticate_rejected_total", "Requests rejected by the access guard."},
	{sessiongate.MetricStoreUnavailable, "sessiongate_store_unavailable_total", "Token cache transport failures."},
	{sessiongate.MetricRecordWriteFailure, "sessiongate_record_write_failure_total", "Durable record inserts absorbed as degraded."},
	{sessiongate.MetricRecordDeleteFailure, "sessiongate_record_delete_failure_total", "Durable record deletes absorbed as degraded."},
}
