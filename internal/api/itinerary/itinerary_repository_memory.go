package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

var _ Repository = (*MemoryRepository)(nil)

type memoryEntry struct {
	seq       uint64
	ownerID   string
	createdAt time.Time
	updatedAt time.Time
	body      []byte
}

// MemoryRepository keeps documents in process memory. Bodies are stored
// encoded so callers never share maps with the store.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	seq     uint64
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		entries: make(map[string]*memoryEntry),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) Create(_ context.Context, ownerID string, body types.Document) (*types.StoredDocument, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode itinerary: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := uuid.NewString()
	now := r.now()
	e := &memoryEntry{seq: r.seq, ownerID: ownerID, createdAt: now, updatedAt: now, body: raw}
	r.entries[id] = e
	return e.stored(id)
}

func (r *MemoryRepository) List(_ context.Context, ownerID string) ([]*types.StoredDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type keyed struct {
		id string
		e  *memoryEntry
	}
	owned := make([]keyed, 0)
	for id, e := range r.entries {
		if e.ownerID == ownerID {
			owned = append(owned, keyed{id: id, e: e})
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		a, b := owned[i].e, owned[j].e
		if !a.createdAt.Equal(b.createdAt) {
			return a.createdAt.After(b.createdAt)
		}
		return a.seq > b.seq
	})

	docs := make([]*types.StoredDocument, 0, len(owned))
	for _, k := range owned {
		doc, err := k.e.stored(k.id)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (r *MemoryRepository) Get(_ context.Context, ownerID, id string) (*types.StoredDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok || e.ownerID != ownerID {
		return nil, types.ErrNotFound
	}
	return e.stored(id)
}

func (r *MemoryRepository) Update(_ context.Context, ownerID, id string, body types.Document) (*types.StoredDocument, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode itinerary: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.ownerID != ownerID {
		return nil, types.ErrNotFound
	}
	e.body = raw
	e.updatedAt = r.now()
	return e.stored(id)
}

func (r *MemoryRepository) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.ownerID != ownerID {
		return types.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (e *memoryEntry) stored(id string) (*types.StoredDocument, error) {
	var body types.Document
	if err := json.Unmarshal(e.body, &body); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary body: %w", err)
	}
	if body == nil {
		body = types.Document{}
	}
	return &types.StoredDocument{
		ID:        id,
		OwnerID:   e.ownerID,
		CreatedAt: e.createdAt,
		UpdatedAt: e.updatedAt,
		Body:      body,
	}, nil
}
