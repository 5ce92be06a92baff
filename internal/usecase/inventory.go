package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pantryscan/backend/internal/domain"
)

// InventoryService owns the collection of inventory items and its
// persistence lifecycle. The collection is one ordered JSON blob under a
// fixed key; insertion order is display order and the index basis for
// deletes. A mutex serializes all operations so every public call mutates
// the in-memory collection and persists it before returning.
type InventoryService struct {
	mu    sync.Mutex
	store domain.KeyValueStore
	key   string
	items []domain.InventoryItem
}

// NewInventoryService creates an inventory service persisting under key
func NewInventoryService(store domain.KeyValueStore, key string) *InventoryService {
	return &InventoryService{
		store: store,
		key:   key,
		items: []domain.InventoryItem{},
	}
}

// Load reads the persisted collection. A missing key or corrupt blob yields
// an empty collection rather than an error; a parse failure must never
// prevent startup. Store I/O failures are returned.
func (s *InventoryService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("loading inventory: %w", err)
	}
	if !ok {
		s.items = []domain.InventoryItem{}
		return nil
	}

	var items []domain.InventoryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("[INVENTORY] Discarding corrupt persisted inventory: %v", err)
		s.items = []domain.InventoryItem{}
		return nil
	}
	if items == nil {
		items = []domain.InventoryItem{}
	}
	s.items = items
	return nil
}

// Items returns a copy of the collection in display order
func (s *InventoryService) Items() []domain.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.InventoryItem, len(s.items))
	copy(out, s.items)
	return out
}

// Add validates and appends an item, persisting before returning.
// An item whose trimmed name is empty is rejected with ErrEmptyItemName and
// the collection is left unchanged.
func (s *InventoryService) Add(ctx context.Context, item domain.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return domain.ErrEmptyItemName
	}

	s.items = append(s.items, item)
	if err := s.persistLocked(ctx); err != nil {
		s.items = s.items[:len(s.items)-1]
		return err
	}
	return nil
}

// DeleteAt removes the item at index and persists.
// Indexes are positional against the current collection; callers must
// recompute them after any deletion.
func (s *InventoryService) DeleteAt(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: %d", domain.ErrIndexOutOfRange, index)
	}

	prev := s.items
	next := make([]domain.InventoryItem, 0, len(prev)-1)
	next = append(next, prev[:index]...)
	next = append(next, prev[index+1:]...)
	s.items = next

	if err := s.persistLocked(ctx); err != nil {
		s.items = prev
		return err
	}
	return nil
}

// DeleteMany removes the items at the given positions in one call and
// persists once. Indexes are deduplicated and removed in descending order so
// earlier removals cannot shift the remaining targets. An empty set is a
// no-op; any out-of-range index rejects the whole call with nothing removed.
func (s *InventoryService) DeleteMany(ctx context.Context, indexes []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(indexes) == 0 {
		return nil
	}

	seen := make(map[int]bool, len(indexes))
	targets := make([]int, 0, len(indexes))
	for _, idx := range indexes {
		if idx < 0 || idx >= len(s.items) {
			return fmt.Errorf("%w: %d", domain.ErrIndexOutOfRange, idx)
		}
		if !seen[idx] {
			seen[idx] = true
			targets = append(targets, idx)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(targets)))

	prev := s.items
	next := make([]domain.InventoryItem, len(prev))
	copy(next, prev)
	for _, idx := range targets {
		next = append(next[:idx], next[idx+1:]...)
	}
	s.items = next

	if err := s.persistLocked(ctx); err != nil {
		s.items = prev
		return err
	}
	return nil
}

// persistLocked serializes the whole collection under the fixed key.
// Callers must hold s.mu.
func (s *InventoryService) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("serializing inventory: %w", err)
	}
	if err := s.store.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("persisting inventory: %w", err)
	}
	return nil
}

// Classify derives the expiry-urgency label for an item as of a reference
// time. An item expires soon when its expiry date is at most one day away by
// ceiling division, which covers "expires today" and "already past". An
// unset or unparseable expiry date classifies as no-expiry.
func Classify(item domain.InventoryItem, asOf time.Time) domain.ExpiryClassification {
	expiry, ok := item.ExpiresOn()
	if !ok {
		return domain.ExpiryNone
	}

	daysLeft := int(math.Ceil(expiry.Sub(asOf).Hours() / 24))
	if daysLeft <= 1 {
		return domain.ExpiryExpiringSoon
	}
	return domain.ExpiryFresh
}
