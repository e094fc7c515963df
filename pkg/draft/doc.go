// Package draft persists in-progress wizard state so an applicant can leave
// and resume. A draft is derived data, never authoritative: saves are
// best-effort, loads that find an expired or malformed record report absence,
// and every failure degrades the wizard to in-memory-only operation instead
// of interrupting it.
//
// Two scopes back the composite store: a volatile in-memory scope preferred
// on read for recency, and a durable SQLite scope that survives restarts.
// Designated sensitive fields and attachment lists are stripped before
// anything reaches the durable scope.
package draft
