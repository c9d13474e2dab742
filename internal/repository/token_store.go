package repository

import (
	"sync"
	"time"

	"github.com/learnpulse/riskwatch-api/internal/models"
)

// MemoryTokenStore keeps pending magic-link tokens in process memory.
// Tokens are single-use and short-lived, so durable storage buys nothing: a
// restart simply means the teacher requests a fresh link.
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]models.MagicLinkToken
	now    func() time.Time
}

// NewMemoryTokenStore constructs an empty token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]models.MagicLinkToken), now: time.Now}
}

// Save records a pending token, discarding any expired entries on the way.
func (s *MemoryTokenStore) Save(token models.MagicLinkToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now()
	for id, t := range s.tokens {
		if t.ExpiresAt.Before(cutoff) {
			delete(s.tokens, id)
		}
	}
	s.tokens[token.ID] = token
}

// Consume removes and returns the token with the given ID. A token can only
// be consumed once; expired tokens are reported as missing.
func (s *MemoryTokenStore) Consume(id string) (models.MagicLinkToken, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[id]
	if !ok {
		return models.MagicLinkToken{}, false
	}
	delete(s.tokens, id)
	if token.ExpiresAt.Before(s.now()) {
		return models.MagicLinkToken{}, false
	}
	return token, true
}
