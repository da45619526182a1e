// Package abortflag provides a single monotonic cancellation signal
// shared by every render worker and the controller that supervises
// them. Once set, an abort flag never clears; a fresh render gets a
// fresh flag.
package abortflag

import "sync/atomic"

// Flag is a one-way, goroutine-safe abort signal. The zero value is
// ready to use and reports not-aborted.
type Flag struct {
	set atomic.Bool
}

// New returns a Flag that has not been aborted.
func New() *Flag { return &Flag{} }

// Abort sets the flag. Safe to call more than once or concurrently;
// later calls are no-ops.
func (f *Flag) Abort() { f.set.Store(true) }

// Aborted reports whether Abort has been called. Workers poll this at
// the innermost per-pixel loop so an abort takes effect within a
// single sample rather than waiting for a whole tile to finish.
func (f *Flag) Aborted() bool { return f.set.Load() }
