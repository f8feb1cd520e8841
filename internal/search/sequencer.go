package search

import (
	"math"
	"sync"
)

// retiredEpoch can never equal a minted token, which only ever counts up.
const retiredEpoch = int64(math.MinInt64)

// Sequencer hands out strictly increasing epoch tokens so that only the
// response to the most recently issued request is ever applied. A fetch must
// mint a token before the network call and discard its result unless
// IsCurrent still holds at completion time.
type Sequencer struct {
	mu      sync.Mutex
	next    int64
	current int64
}

// NewSequencer creates a sequencer with no outstanding epoch.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// BeginRequest mints a new epoch token, invalidating all earlier ones.
func (s *Sequencer) BeginRequest() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	s.current = s.next
	return s.next
}

// IsCurrent reports whether no newer request has begun since token was minted.
func (s *Sequencer) IsCurrent(token int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return token == s.current
}

// Retire invalidates the current epoch so every in-flight result is inert.
// Tokens keep counting up from where they were, so a retired sequencer can
// be reused.
func (s *Sequencer) Retire() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = retiredEpoch
}
