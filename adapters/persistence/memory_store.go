package persistence

import (
	"context"
	"encoding/json"
	"maps"
	"sync"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
)

// MemoryPortfolioStore keeps documents as JSON objects in process memory
// with the same top-level merge rule as the Postgres store. It backs the
// "memory" store driver and tests.
type MemoryPortfolioStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]json.RawMessage
}

func NewMemoryPortfolioStore() *MemoryPortfolioStore {
	return &MemoryPortfolioStore{docs: make(map[string]map[string]json.RawMessage)}
}

func (s *MemoryPortfolioStore) Get(_ context.Context, userID string) (*portfolio.Portfolio, error) {
	s.mu.RLock()
	fields, ok := s.docs[userID]
	var raw []byte
	var err error
	if ok {
		raw, err = json.Marshal(fields)
	}
	s.mu.RUnlock()

	if !ok {
		return nil, apperror.NewNotFound("portfolio", userID)
	}
	if err != nil {
		return nil, apperror.NewInternal("failed to encode stored portfolio", err)
	}
	p := &portfolio.Portfolio{}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, apperror.NewInternal("failed to decode stored portfolio", err)
	}
	p.Normalize()
	return p, nil
}

func (s *MemoryPortfolioStore) Set(_ context.Context, userID string, doc *portfolio.Portfolio, opts portfolio.SetOptions) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return apperror.NewInternal("failed to marshal portfolio", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return apperror.NewInternal("failed to split portfolio fields", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.docs[userID]; ok && opts.Merge {
		maps.Copy(existing, fields)
		return nil
	}
	s.docs[userID] = fields
	return nil
}

// SetRaw stores an arbitrary JSON object, e.g. a document written by an
// older client with fields this version does not know.
func (s *MemoryPortfolioStore) SetRaw(userID string, raw []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return apperror.NewInvalidInput("document must be a JSON object", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[userID] = fields
	return nil
}

// Raw returns the stored JSON object, or nil.
func (s *MemoryPortfolioStore) Raw(userID string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.docs[userID]
	if !ok {
		return nil
	}
	raw, _ := json.Marshal(fields)
	return raw
}
