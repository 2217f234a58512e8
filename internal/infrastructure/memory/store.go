// Package memory provides the in-process OTP store. It is only correct for
// single-instance deployments: codes issued by one replica are invisible to
// another. Multi-instance deployments must use the DynamoDB-backed store.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/storefront-api/internal/domain"
)

// Store keeps pending OTP records in a mutex-guarded map. Expired records are
// not swept in the background; the verifier deletes them lazily on lookup,
// matching the record lifecycle the callers enforce.
type Store struct {
	mu      sync.Mutex
	records map[string]*domain.OTPRecord
	ttl     time.Duration

	now func() time.Time // overridable in tests
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		records: make(map[string]*domain.OTPRecord),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put creates or overwrites the record for identifier, resetting the attempt
// counter and restarting the TTL.
func (s *Store) Put(_ context.Context, identifier, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.records[identifier] = &domain.OTPRecord{
		Identifier: identifier,
		Code:       code,
		ExpiresAt:  now.Add(s.ttl).Unix(),
		Attempts:   0,
		CreatedAt:  now.Unix(),
	}
	return nil
}

// Get returns a copy of the record so callers cannot mutate store state.
func (s *Store) Get(_ context.Context, identifier string) (*domain.OTPRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[identifier]
	if !ok {
		return nil, fmt.Errorf("otp record for %s: %w", identifier, domain.ErrNotFound)
	}
	cp := *rec
	return &cp, nil
}

func (s *Store) RecordAttempt(_ context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[identifier]
	if !ok {
		return fmt.Errorf("otp record for %s: %w", identifier, domain.ErrNotFound)
	}
	rec.Attempts++
	return nil
}

func (s *Store) Delete(_ context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, identifier)
	return nil
}
