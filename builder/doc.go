// Package builder implements the offline compression pipeline: it reads a
// pair of gzip-compressed CSV streams (node PIDs, directed edges), builds a
// minimal perfect hash over the PID set, computes a BFS permutation over the
// symmetrized graph, and emits the permuted forward and transposed
// compressed graphs plus the PID<->id side files and the packed node-type
// table.
//
// The pipeline is modeled as a Pipeline of Stages, mirroring a coordination
// script over independent build phases: stage failure aborts the build and
// the failure's exit code (for an ExecStage wrapping an external process) is
// surfaced verbatim. Every stage here runs in-process; ExecStage exists so a
// deployment with the original external toolchain installed can substitute a
// subprocess for any phase without changing the coordinator.
package builder
