// Package otp stores short-lived one-time codes behind an injected
// abstraction, replacing ambient global state so a distributed cache can be
// swapped in for multi-instance deployments.
package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("no code found, please request a new one")
	ErrExpired  = errors.New("code has expired, please request a new one")
	ErrMismatch = errors.New("invalid code, please try again")
)

// DefaultTTL matches the five-minute expiry used by the storefront.
const DefaultTTL = 5 * time.Minute

// Store is a keyed one-time-code store. Verify consumes the code on
// success; expired entries are dropped lazily on read and in Sweep.
type Store interface {
	Put(key, code string)
	Verify(key, code string) error
	Sweep()
}

type entry struct {
	code     string
	storedAt time.Time
}

// MemoryStore keeps codes in process memory. The clock is injectable for
// tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(key, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{code: code, storedAt: s.now()}
}

func (s *MemoryStore) Verify(key, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return ErrNotFound
	}
	if s.now().Sub(e.storedAt) > s.ttl {
		delete(s.entries, key)
		return ErrExpired
	}
	if e.code != code {
		return ErrMismatch
	}
	delete(s.entries, key)
	return nil
}

// Sweep removes every expired entry; callers run it periodically.
func (s *MemoryStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, e := range s.entries {
		if now.Sub(e.storedAt) > s.ttl {
			delete(s.entries, key)
		}
	}
}

// Generate returns a 6-digit code.
func Generate() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand only fails when the platform source is broken
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}
