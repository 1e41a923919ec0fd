// Package postgres implements the sessiongate RecordStore on PostgreSQL.
//
// The durable trail lives in one table:
//
//	CREATE TABLE sessiongate.auth_tokens (
//	    token      text PRIMARY KEY,
//	    user_id    text NOT NULL,
//	    created_at timestamptz NOT NULL
//	);
//
// Rows are written on issuance and deleted on revocation or eviction. The
// engine never reads them back; records orphaned by passive cache expiry
// stay until an operator removes them.
package postgres
