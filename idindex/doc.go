// Package idindex implements the bidirectional mapping between a textual PID
// and its internal node id: id_of applies the minimal perfect hash to get an
// MPH ordinal, then indexes the permutation array to get the BFS-ordered
// internal id; pid_of seeks into the fixed-width node2pid side file.
//
// Because the MPH may return an arbitrary ordinal for a PID outside the
// original key set, id_of always verifies the round trip (pid_of(id) == pid)
// before returning, failing with ErrUnknownPid on mismatch.
package idindex
