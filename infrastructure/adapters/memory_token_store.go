package adapters

import (
	"context"
	"sync"
	"time"

	"highlight-reel-pipeline/application/ports/outbound"
	"highlight-reel-pipeline/domain"
)

type memoryTokenEntry struct {
	record    domain.ContinuationRecord
	expiresAt time.Time
}

// memoryTokenStore keeps continuations in process memory. Only valid for
// single-process deployments and tests; multi-process callers need the
// DynamoDB store's storage-level conditional delete.
type memoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]memoryTokenEntry
	ttl     time.Duration
}

func NewMemoryTokenStore(ttl time.Duration) outbound.TokenStorePort {
	return &memoryTokenStore{
		entries: make(map[string]memoryTokenEntry),
		ttl:     ttl,
	}
}

func (s *memoryTokenStore) Store(_ context.Context, record domain.ContinuationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[domain.ContinuationKey(record.OutputLocation, record.Kind)] = memoryTokenEntry{
		record:    record,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *memoryTokenStore) Peek(_ context.Context, outputLocation string,
	kind domain.JobKind) (domain.ContinuationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[domain.ContinuationKey(outputLocation, kind)]
	if !ok || time.Now().After(entry.expiresAt) {
		return domain.ContinuationRecord{}, domain.ErrNotFound
	}
	return entry.record, nil
}

func (s *memoryTokenStore) Consume(_ context.Context, outputLocation string,
	kind domain.JobKind) (domain.ContinuationRecord, error) {
	key := domain.ContinuationKey(outputLocation, kind)
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, key)
		return domain.ContinuationRecord{}, domain.ErrNotFound
	}
	delete(s.entries, key)
	return entry.record, nil
}
