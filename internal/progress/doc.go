// Package progress renders download progress.
//
// A Reporter aggregates the per-chunk progress callbacks emitted by the
// download engine into one terminal progress bar. The engine itself has
// no rendering dependency; the CLI wires the reporter in.
package progress
