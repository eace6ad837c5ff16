package repository

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"nft-auction/internal/auctionerrors"
)

// Logical keys of the persisted records
const (
	KeyWallet       = "midnight_wallet"
	KeyAuctions     = "midnight_auctions"
	KeyTransactions = "midnight_transactions"
	KeyContract     = "contract_state"
)

// Store defines the key/value persistence used by every service.
// Load returns auctionerrors.ErrRecordNotFound for a missing key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// LoadJSON decodes the record under key into dest.
// It reports false, without error, when the key does not exist.
func LoadJSON(ctx context.Context, s Store, key string, dest any) (bool, error) {
	raw, err := s.Load(ctx, key)
	if errors.Is(err, auctionerrors.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode record %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key, replacing any previous value
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", key, err)
	}
	return s.Save(ctx, key, raw)
}

// MemoryStore is a concurrency-safe in-memory implementation of Store
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string][]byte),
	}
}

// Load returns a copy of the record stored under key
func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.records[key]
	if !ok {
		return nil, fmt.Errorf("load %s: %w", key, auctionerrors.ErrRecordNotFound)
	}
	return append([]byte(nil), raw...), nil
}

// Save replaces the record stored under key
func (s *MemoryStore) Save(_ context.Context, key string, value []byte) error {
	if key == "" {
		return errors.New("save: empty key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes the record stored under key; deleting a missing key is a no-op
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

// Keys returns the stored keys. This method is intended for tests only.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	return keys
}
