// Package pid parses and formats Software Heritage persistent identifiers
// (PIDs, a.k.a. SWHIDs): textual handles of the form
//
//	swh:1:<type>:<40 lowercase hex digits>
//
// A PID always encodes to exactly 50 ASCII bytes. It projects to and from a
// compact binary form (a NodeType plus a 20-byte SHA-1 digest) so that callers
// holding many PIDs need not keep the textual representation around.
//
// Errors:
//
//	ErrBadPid - malformed textual PID (wrong length, prefix, version, type
//	            token, or non-hex digest).
package pid
