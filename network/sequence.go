package network

import "sync"

// SeqFilter implements monotonic apply per sender
// A message is accepted only if its sequence is above the last accepted one from the same sender
type SeqFilter struct {
	mu   sync.Mutex
	last map[string]uint64
}

// NewSeqFilter creates an empty filter
func NewSeqFilter() *SeqFilter {
	return &SeqFilter{last: make(map[string]uint64)}
}

// Accept records seq for sender and reports whether it is newer than any seen before
// Duplicates and out-of-order deliveries return false
func (f *SeqFilter) Accept(sender string, seq uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seq <= f.last[sender] {
		return false
	}
	f.last[sender] = seq
	return true
}

// Senders returns the number of distinct senders accepted so far
func (f *SeqFilter) Senders() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.last)
}
