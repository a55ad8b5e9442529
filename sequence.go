package btcfolio

import "sync/atomic"

// Sequence hands out increasing tags to calculations so that a caller
// running several of them can tell whether a result is still the latest one
// requested.
type Sequence struct {
	last atomic.Uint64
}

// Next returns a new tag, greater than all the previous ones.
func (s *Sequence) Next() uint64 { return s.last.Add(1) }

// IsLatest reports whether tag is the last one handed out.
func (s *Sequence) IsLatest(tag uint64) bool { return s.last.Load() == tag }
