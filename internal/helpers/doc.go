// Package helpers holds the curated utility catalog exposed to sandboxed
// JS Transform scripts.
//
// The catalog is organized into fixed namespaces (string, math, date) of
// pure functions: no I/O, no host state, no side effects beyond the
// returned value. It is constructed once at process start and shared
// read-only across all invocations; the sandbox bridge decides how the
// catalog becomes visible inside a script.
package helpers
